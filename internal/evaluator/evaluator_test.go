package evaluator

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/parser"
	"github.com/dmntk-go/dmntk/internal/value"
)

func eval(t *testing.T, src string, scope *value.Scope) value.Value {
	t.Helper()
	e, err := parser.ParseExpression(src, nil)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	ev, err := Build(e, src, "")
	if err != nil {
		t.Fatalf("build %q: %v", src, err)
	}
	if scope == nil {
		scope = value.NewRootScope(nil)
	}
	return ev(scope)
}

func scopeWith(pairs ...any) *value.Scope {
	c := value.NewContext()
	for i := 0; i+1 < len(pairs); i += 2 {
		c.Set(pairs[i].(string), pairs[i+1].(value.Value))
	}
	return value.NewRootScope(c)
}

func TestArithmeticPrecedence(t *testing.T) {
	v := eval(t, "1 + 2 * 3", nil)
	if v.String() != "7" {
		t.Fatalf("got %s", v.String())
	}
}

func TestPowerRightAssociative(t *testing.T) {
	v := eval(t, "2 ** 3 ** 2", nil)
	if v.String() != "512" {
		t.Fatalf("got %s", v.String())
	}
}

func TestIfThenElse(t *testing.T) {
	v := eval(t, "if 1 < 2 then \"yes\" else \"no\"", nil)
	if s, ok := v.(value.Str); !ok || s.V != "yes" {
		t.Fatalf("got %v", v)
	}
}

func TestNullEqualsNull(t *testing.T) {
	v := eval(t, "null = null", nil)
	if b, ok := v.(value.Boolean); !ok || !b.V {
		t.Fatalf("null = null should be true, got %v", v)
	}
}

func TestForReturnsList(t *testing.T) {
	v := eval(t, "for x in [1,2,3] return x * 2", nil)
	l, ok := v.(value.List)
	if !ok || len(l.Elements) != 3 {
		t.Fatalf("got %v", v)
	}
	if l.Elements[2].String() != "6" {
		t.Fatalf("got %v", l.Elements)
	}
}

func TestSomeEverySatisfies(t *testing.T) {
	v := eval(t, "some x in [1,2,3] satisfies x > 2", nil)
	if b, ok := v.(value.Boolean); !ok || !b.V {
		t.Fatalf("got %v", v)
	}
	v2 := eval(t, "every x in [1,2,3] satisfies x > 0", nil)
	if b, ok := v2.(value.Boolean); !ok || !b.V {
		t.Fatalf("got %v", v2)
	}
}

func TestListFilterIndexAndPredicate(t *testing.T) {
	v := eval(t, "[10,20,30][1]", nil)
	if v.String() != "10" {
		t.Fatalf("got %v", v)
	}
	v2 := eval(t, "[10,20,30][-1]", nil)
	if v2.String() != "30" {
		t.Fatalf("got %v", v2)
	}
	v3 := eval(t, "[1,2,3,4][item > 2]", nil)
	l, ok := v3.(value.List)
	if !ok || len(l.Elements) != 2 {
		t.Fatalf("got %v", v3)
	}
}

func TestContextLiteralAndPath(t *testing.T) {
	v := eval(t, "{a: 1, b: a + 1}.b", nil)
	if v.String() != "2" {
		t.Fatalf("got %v", v)
	}
}

func TestRangeMembership(t *testing.T) {
	v := eval(t, "5 in [1..10]", nil)
	if b, ok := v.(value.Boolean); !ok || !b.V {
		t.Fatalf("got %v", v)
	}
	v2 := eval(t, "10 in [1..10)", nil)
	if b, ok := v2.(value.Boolean); !ok || b.V {
		t.Fatalf("got %v", v2)
	}
}

func TestBuiltinCallPositionalAndNamed(t *testing.T) {
	v := eval(t, "string length(\"hello\")", nil)
	if v.String() != "5" {
		t.Fatalf("got %v", v)
	}
	named := eval(t, "string length(string: \"hello\")", nil)
	if named.String() != "5" {
		t.Fatalf("got %v", named)
	}
}

func TestFunctionLiteralAndInvocation(t *testing.T) {
	scope := scopeWith()
	v := eval(t, "(function(x) x + 1)(41)", scope)
	if v.String() != "42" {
		t.Fatalf("got %v", v)
	}
}

func TestInstanceOf(t *testing.T) {
	v := eval(t, "1 instance of number", nil)
	if b, ok := v.(value.Boolean); !ok || !b.V {
		t.Fatalf("got %v", v)
	}
}

func TestNameResolutionFromScope(t *testing.T) {
	scope := scopeWith("age", value.NumberFromInt64(30))
	v := eval(t, "age >= 18", scope)
	if b, ok := v.(value.Boolean); !ok || !b.V {
		t.Fatalf("got %v", v)
	}
}

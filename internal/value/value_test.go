package value

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/decimal"
)

func num(s string) Number {
	d, err := decimal.Parse(s)
	if err != nil {
		panic(err)
	}
	return Number{D: d}
}

func TestNullEqualityIgnoresTrace(t *testing.T) {
	a := Null{Trace: "[division] division by zero"}
	b := Null{}
	r := Equal(a, b)
	if got, ok := r.Bool(); !ok || !got {
		t.Fatalf("Null(trace) should equal Null(), got %+v", r)
	}
}

func TestEqualityNoneOnNullOperand(t *testing.T) {
	r := Equal(Null{}, num("1"))
	if !r.IsNone() {
		t.Fatalf("Equal(null, 1) should be None, got %+v", r)
	}
}

func TestNumberEquality(t *testing.T) {
	r := Equal(num("1.0"), num("1"))
	if got, ok := r.Bool(); !ok || !got {
		t.Fatalf("1.0 should equal 1")
	}
}

func TestListEqualityOrderMatters(t *testing.T) {
	a := List{Elements: []Value{num("1"), num("2")}}
	b := List{Elements: []Value{num("2"), num("1")}}
	r := Equal(a, b)
	if got, ok := r.Bool(); !ok || got {
		t.Fatalf("[1,2] should not equal [2,1]")
	}
}

func TestContextEqualityIgnoresOrder(t *testing.T) {
	a := NewContext()
	a.Set("x", num("1"))
	a.Set("y", num("2"))
	b := NewContext()
	b.Set("y", num("2"))
	b.Set("x", num("1"))
	r := Equal(a, b)
	if got, ok := r.Bool(); !ok || !got {
		t.Fatalf("contexts with same entries in different order should be equal")
	}
}

func TestContextKeyOrderPreserved(t *testing.T) {
	c := NewContext()
	c.Set("b", num("2"))
	c.Set("a", num("1"))
	keys := c.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("expected insertion order [b a], got %v", keys)
	}
}

func TestCompareIncomparableTypes(t *testing.T) {
	_, ok := Compare(num("1"), Str{V: "x"})
	if ok {
		t.Fatal("expected incomparable types to report ok=false")
	}
}

func TestTimeOffsetEqualityLiteral(t *testing.T) {
	withZ := Time{Hour: 23, Minute: 0, Second: 50, OffsetKind: OffsetFixed, OffsetMinutes: 0}
	withoutOffset := Time{Hour: 23, Minute: 0, Second: 50}
	r := Equal(withZ, withoutOffset)
	if got, ok := r.Bool(); !ok || got {
		t.Fatalf("time with Z offset must not equal time without offset, got %+v", r)
	}

	named := Time{Hour: 23, Minute: 0, Second: 50, OffsetKind: OffsetNamed, Zone: "Etc/UTC"}
	r2 := Equal(withZ, named)
	if got, ok := r2.Bool(); !ok || got {
		t.Fatalf("time with Z offset must not equal time with named zone, got %+v", r2)
	}
}

func TestListJSON(t *testing.T) {
	l := List{Elements: []Value{num("1"), Boolean{V: true}, Null{}}}
	got, err := ToJSON(l)
	if err != nil {
		t.Fatal(err)
	}
	want := `[1,true,null]`
	if string(got) != want {
		t.Fatalf("ToJSON = %s, want %s", got, want)
	}
}

func TestRangeJSON(t *testing.T) {
	r := Range{Low: num("1"), High: num("4"), LowClosed: true, HighClosed: false}
	got, err := ToJSON(r)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"start":1,"end":4,"start-included":true,"end-included":false}`
	if string(got) != want {
		t.Fatalf("ToJSON = %s, want %s", got, want)
	}
}

func TestTypeSubtyping(t *testing.T) {
	if !NullType.IsSubtype(NumberType) {
		t.Fatal("Null should be a subtype of every type")
	}
	if !NumberType.IsSubtype(AnyType) {
		t.Fatal("every type should be a subtype of Any")
	}
	listNum := ListOf(NumberType)
	listAny := ListOf(AnyType)
	if !listNum.IsSubtype(listAny) {
		t.Fatal("list<number> should be a subtype of list<Any>")
	}
	if listAny.IsSubtype(listNum) {
		t.Fatal("list<Any> should not be a subtype of list<number>")
	}
}

func TestScopeLookupInnermostWins(t *testing.T) {
	outer := NewContext()
	outer.Set("x", num("1"))
	inner := NewContext()
	inner.Set("x", num("2"))
	s := NewRootScope(outer).Push(inner)
	v, ok := s.Get("x")
	if !ok {
		t.Fatal("expected x to be found")
	}
	if n, isNum := v.(Number); !isNum || n.D.String() != "2" {
		t.Fatalf("expected innermost x=2, got %v", v)
	}
}

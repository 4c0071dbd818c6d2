package dtable

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/evaluator"
	"github.com/dmntk-go/dmntk/internal/parser"
	"github.com/dmntk-go/dmntk/internal/value"
)

func mustExpr(t *testing.T, src string) value.Evaluator {
	t.Helper()
	e, err := parser.ParseExpression(src, nil)
	if err != nil {
		t.Fatalf("parse expr %q: %v", src, err)
	}
	ev, err := evaluator.Build(e, src, "")
	if err != nil {
		t.Fatalf("build expr %q: %v", src, err)
	}
	return ev
}

func mustTest(t *testing.T, src string) value.Evaluator {
	t.Helper()
	if src == "-" {
		return nil
	}
	u, err := parser.ParseUnaryTests(src, nil)
	if err != nil {
		t.Fatalf("parse test %q: %v", src, err)
	}
	ev, err := evaluator.Build(u, src, "")
	if err != nil {
		t.Fatalf("build test %q: %v", src, err)
	}
	return ev
}

// discountTable is a small decision-table fixture: with context
// {Customer:"Business", Order:10} it resolves to 0.15.
func discountTable(t *testing.T) *Table {
	return &Table{
		Inputs: []Input{
			{Name: "Customer", Expr: mustExpr(t, "Customer")},
			{Name: "Order", Expr: mustExpr(t, "Order")},
		},
		Outputs: []Output{{Name: ""}},
		Policy:  Unique,
		Rules: []Rule{
			{Tests: []value.Evaluator{mustTest(t, `"Business"`), mustTest(t, ">=10")}, Outputs: []value.Evaluator{mustExpr(t, "0.15")}},
			{Tests: []value.Evaluator{mustTest(t, `"Business"`), mustTest(t, "<10")}, Outputs: []value.Evaluator{mustExpr(t, "0.1")}},
			{Tests: []value.Evaluator{mustTest(t, `"Private"`), mustTest(t, "-")}, Outputs: []value.Evaluator{mustExpr(t, "0.05")}},
		},
	}
}

func scopeWith(pairs ...any) *value.Scope {
	c := value.NewContext()
	for i := 0; i+1 < len(pairs); i += 2 {
		c.Set(pairs[i].(string), pairs[i+1].(value.Value))
	}
	return value.NewRootScope(c)
}

func TestUniqueHitPolicyMatchesOneRule(t *testing.T) {
	table := discountTable(t)
	ev := table.Build()
	scope := scopeWith("Customer", value.Str{V: "Business"}, "Order", value.NumberFromInt64(10))
	v := ev(scope)
	if v.String() != "0.15" {
		t.Fatalf("got %v", v)
	}
}

func TestUniqueHitPolicyNoMatchIsNull(t *testing.T) {
	table := discountTable(t)
	ev := table.Build()
	scope := scopeWith("Customer", value.Str{V: "Unknown"}, "Order", value.NumberFromInt64(10))
	v := ev(scope)
	if _, ok := v.(value.Null); !ok {
		t.Fatalf("got %v", v)
	}
}

func TestUniqueHitPolicyMultipleMatchIsError(t *testing.T) {
	table := &Table{
		Inputs:  []Input{{Name: "x", Expr: mustExpr(t, "x")}},
		Outputs: []Output{{Name: ""}},
		Policy:  Unique,
		Rules: []Rule{
			{Tests: []value.Evaluator{mustTest(t, "-")}, Outputs: []value.Evaluator{mustExpr(t, "1")}},
			{Tests: []value.Evaluator{mustTest(t, "-")}, Outputs: []value.Evaluator{mustExpr(t, "2")}},
		},
	}
	ev := table.Build()
	v := ev(scopeWith("x", value.NumberFromInt64(1)))
	n, ok := v.(value.Null)
	if !ok || n.Trace == "" {
		t.Fatalf("expected traced Null, got %v", v)
	}
}

func TestPriorityHitPolicy(t *testing.T) {
	table := &Table{
		Inputs:  []Input{{Name: "x", Expr: mustExpr(t, "x")}},
		Outputs: []Output{{Name: "", AllowedValues: []string{`"high"`, `"medium"`, `"low"`}}},
		Policy:  Priority,
		Rules: []Rule{
			{Tests: []value.Evaluator{mustTest(t, "-")}, Outputs: []value.Evaluator{mustExpr(t, `"low"`)}},
			{Tests: []value.Evaluator{mustTest(t, "-")}, Outputs: []value.Evaluator{mustExpr(t, `"high"`)}},
		},
	}
	ev := table.Build()
	v := ev(scopeWith("x", value.NumberFromInt64(1)))
	s, ok := v.(value.Str)
	if !ok || s.V != "high" {
		t.Fatalf("got %v", v)
	}
}

func TestFirstHitPolicy(t *testing.T) {
	table := &Table{
		Inputs:  []Input{{Name: "x", Expr: mustExpr(t, "x")}},
		Outputs: []Output{{Name: ""}},
		Policy:  First,
		Rules: []Rule{
			{Tests: []value.Evaluator{mustTest(t, "-")}, Outputs: []value.Evaluator{mustExpr(t, "1")}},
			{Tests: []value.Evaluator{mustTest(t, "-")}, Outputs: []value.Evaluator{mustExpr(t, "2")}},
		},
	}
	ev := table.Build()
	v := ev(scopeWith("x", value.NumberFromInt64(1)))
	if v.String() != "1" {
		t.Fatalf("got %v", v)
	}
}

func TestCollectSumHitPolicy(t *testing.T) {
	table := &Table{
		Inputs:  []Input{{Name: "x", Expr: mustExpr(t, "x")}},
		Outputs: []Output{{Name: ""}},
		Policy:  CollectSum,
		Rules: []Rule{
			{Tests: []value.Evaluator{mustTest(t, "<10")}, Outputs: []value.Evaluator{mustExpr(t, "1")}},
			{Tests: []value.Evaluator{mustTest(t, "-")}, Outputs: []value.Evaluator{mustExpr(t, "2")}},
		},
	}
	ev := table.Build()
	v := ev(scopeWith("x", value.NumberFromInt64(5)))
	if v.String() != "3" {
		t.Fatalf("got %v", v)
	}
}

func TestMissingInputFailsAllReferencingRules(t *testing.T) {
	table := &Table{
		Inputs:  []Input{{Name: "missing", Expr: mustExpr(t, "missing")}},
		Outputs: []Output{{Name: ""}},
		Policy:  Unique,
		Rules: []Rule{
			{Tests: []value.Evaluator{mustTest(t, ">5")}, Outputs: []value.Evaluator{mustExpr(t, "1")}},
		},
	}
	ev := table.Build()
	v := ev(scopeWith())
	if _, ok := v.(value.Null); !ok {
		t.Fatalf("got %v", v)
	}
}

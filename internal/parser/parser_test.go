package parser

import (
	"testing"

	"github.com/dmntk-go/dmntk/pkg/ast"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := ParseExpression(src, nil)
	if err != nil {
		t.Fatalf("ParseExpression(%q): %v", src, err)
	}
	return e
}

func TestArithmeticPrecedence(t *testing.T) {
	e := mustParse(t, "1 + 2 * 3")
	bin, ok := e.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected top-level '+', got %#v", e)
	}
	rhs, ok := bin.Y.(*ast.BinaryExpr)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected '*' on the right of '+', got %#v", bin.Y)
	}
}

func TestExponentiationRightAssociative(t *testing.T) {
	e := mustParse(t, "2 ** 3 ** 2")
	bin, ok := e.(*ast.BinaryExpr)
	if !ok || bin.Op != "**" {
		t.Fatalf("got %#v", e)
	}
	if _, ok := bin.Y.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected right-associative nesting on Y, got %#v", bin.Y)
	}
	if _, ok := bin.X.(*ast.NumberLit); !ok {
		t.Fatalf("expected bare literal on X, got %#v", bin.X)
	}
}

func TestUnaryMinusBindsLooserThanCall(t *testing.T) {
	e := mustParse(t, "-f(1)")
	u, ok := e.(*ast.UnaryExpr)
	if !ok || u.Op != "-" {
		t.Fatalf("got %#v", e)
	}
	if _, ok := u.X.(*ast.CallExpr); !ok {
		t.Fatalf("expected call expr under unary minus, got %#v", u.X)
	}
}

func TestBetweenExpr(t *testing.T) {
	e := mustParse(t, "2 between 1 and 4")
	b, ok := e.(*ast.BetweenExpr)
	if !ok {
		t.Fatalf("got %#v", e)
	}
	if _, ok := b.X.(*ast.NumberLit); !ok {
		t.Fatal("expected X to be a number literal")
	}
}

func TestIfThenElse(t *testing.T) {
	e := mustParse(t, "if x > 1 then \"a\" else \"b\"")
	f, ok := e.(*ast.IfExpr)
	if !ok {
		t.Fatalf("got %#v", e)
	}
	if _, ok := f.Cond.(*ast.BinaryExpr); !ok {
		t.Fatal("expected condition to be a comparison")
	}
}

func TestForReturn(t *testing.T) {
	e := mustParse(t, "for x in [1,2,3] return x * 2")
	f, ok := e.(*ast.ForExpr)
	if !ok {
		t.Fatalf("got %#v", e)
	}
	if len(f.Clauses) != 1 || f.Clauses[0].Name != "x" {
		t.Fatalf("got clauses %#v", f.Clauses)
	}
	if _, ok := f.Clauses[0].Iterable.(*ast.ListLit); !ok {
		t.Fatal("expected iterable to be a list literal")
	}
}

func TestSomeEverySatisfies(t *testing.T) {
	e := mustParse(t, "some x in [1,2] satisfies x > 1")
	q, ok := e.(*ast.QuantifiedExpr)
	if !ok || q.Every {
		t.Fatalf("got %#v", e)
	}
	e2 := mustParse(t, "every x in [1,2] satisfies x > 0")
	q2, ok := e2.(*ast.QuantifiedExpr)
	if !ok || !q2.Every {
		t.Fatalf("got %#v", e2)
	}
}

func TestListLiteral(t *testing.T) {
	e := mustParse(t, "[1, 2, 3]")
	l, ok := e.(*ast.ListLit)
	if !ok || len(l.Elements) != 3 {
		t.Fatalf("got %#v", e)
	}
}

func TestEmptyListLiteral(t *testing.T) {
	e := mustParse(t, "[]")
	l, ok := e.(*ast.ListLit)
	if !ok || len(l.Elements) != 0 {
		t.Fatalf("got %#v", e)
	}
}

func TestRangeLiteralBracketVariants(t *testing.T) {
	cases := []struct {
		src              string
		loClosed, hiClosed bool
	}{
		{"[1..10]", true, true},
		{"[1..10)", true, false},
		{"(1..10]", false, true},
		{"(1..10)", false, false},
	}
	for _, c := range cases {
		e := mustParse(t, c.src)
		r, ok := e.(*ast.RangeLit)
		if !ok {
			t.Fatalf("%s: got %#v", c.src, e)
		}
		if r.LowClosed != c.loClosed || r.HighClosed != c.hiClosed {
			t.Fatalf("%s: got LowClosed=%v HighClosed=%v", c.src, r.LowClosed, r.HighClosed)
		}
	}
}

func TestContextLiteral(t *testing.T) {
	e := mustParse(t, `{x: 1, "y": 2}`)
	c, ok := e.(*ast.ContextLit)
	if !ok || len(c.Entries) != 2 {
		t.Fatalf("got %#v", e)
	}
	if c.Entries[0].Key != "x" || c.Entries[1].Key != "y" {
		t.Fatalf("got keys %q, %q", c.Entries[0].Key, c.Entries[1].Key)
	}
}

func TestQualifiedNameCollapsed(t *testing.T) {
	e := mustParse(t, "a.b.c")
	q, ok := e.(*ast.QualifiedName)
	if !ok {
		t.Fatalf("expected QualifiedName, got %#v", e)
	}
	want := []string{"a", "b", "c"}
	if len(q.Parts) != len(want) {
		t.Fatalf("got %v", q.Parts)
	}
	for i := range want {
		if q.Parts[i] != want[i] {
			t.Fatalf("got %v, want %v", q.Parts, want)
		}
	}
}

func TestPathThroughCallIsNotCollapsed(t *testing.T) {
	e := mustParse(t, "f().b")
	p, ok := e.(*ast.PathExpr)
	if !ok {
		t.Fatalf("expected PathExpr, got %#v", e)
	}
	if _, ok := p.X.(*ast.CallExpr); !ok {
		t.Fatalf("expected call expr as path base, got %#v", p.X)
	}
}

func TestFilterExpr(t *testing.T) {
	e := mustParse(t, "xs[1]")
	f, ok := e.(*ast.FilterExpr)
	if !ok {
		t.Fatalf("got %#v", e)
	}
	if _, ok := f.Filter.(*ast.NumberLit); !ok {
		t.Fatal("expected numeric filter")
	}
}

func TestNamedCallArgs(t *testing.T) {
	e := mustParse(t, `date and time(date: d, time: t)`)
	c, ok := e.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %#v", e)
	}
	if len(c.Args) != 2 || c.Args[0].Name != "date" || c.Args[1].Name != "time" {
		t.Fatalf("got args %#v", c.Args)
	}
}

func TestInstanceOf(t *testing.T) {
	e := mustParse(t, "x instance of number")
	io, ok := e.(*ast.InstanceOfExpr)
	if !ok || io.TypeName != "number" {
		t.Fatalf("got %#v", e)
	}
}

func TestInRange(t *testing.T) {
	e := mustParse(t, "x in [1..10]")
	b, ok := e.(*ast.BinaryExpr)
	if !ok || b.Op != "in" {
		t.Fatalf("got %#v", e)
	}
	if _, ok := b.Y.(*ast.RangeLit); !ok {
		t.Fatal("expected range literal on the right of 'in'")
	}
}

func TestFirstSyntaxErrorOnly(t *testing.T) {
	_, err := ParseExpression("1 + + +", nil)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
}

func TestUnaryTestsWildcard(t *testing.T) {
	u, err := ParseUnaryTests("-", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !u.Any {
		t.Fatalf("got %#v", u)
	}
}

func TestUnaryTestsComparison(t *testing.T) {
	u, err := ParseUnaryTests("< 10", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(u.Tests) != 1 {
		t.Fatalf("got %#v", u)
	}
	b, ok := u.Tests[0].(*ast.BinaryExpr)
	if !ok || b.Op != "<" {
		t.Fatalf("got %#v", u.Tests[0])
	}
	name, ok := b.X.(*ast.Name)
	if !ok || name.Value != "?" {
		t.Fatalf("expected implicit '?' operand, got %#v", b.X)
	}
}

func TestUnaryTestsCommaList(t *testing.T) {
	u, err := ParseUnaryTests(`"Business", "Private"`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(u.Tests) != 2 {
		t.Fatalf("got %#v", u)
	}
}

func TestUnaryTestsNotWrapper(t *testing.T) {
	u, err := ParseUnaryTests(`not("Business")`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !u.Not || len(u.Tests) != 1 {
		t.Fatalf("got %#v", u)
	}
}

func TestMultiWordNameFromScope(t *testing.T) {
	e, err := ParseExpression("loan amount + 1", []string{"loan amount"})
	if err != nil {
		t.Fatal(err)
	}
	b, ok := e.(*ast.BinaryExpr)
	if !ok || b.Op != "+" {
		t.Fatalf("got %#v", e)
	}
	n, ok := b.X.(*ast.Name)
	if !ok || n.Value != "loan amount" {
		t.Fatalf("got %#v", b.X)
	}
}

// Package ast defines the Abstract Syntax Tree node types produced by the
// FEEL parser. Nodes carry their source span but not their type; typing is
// performed later by the evaluator builder.
package ast

import "github.com/dmntk-go/dmntk/pkg/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Expr is any node that produces a value when evaluated.
type Expr interface {
	Node
	exprNode()
}

type base struct {
	P token.Position
}

func (b base) Pos() token.Position { return b.P }

// NumberLit is a decimal literal such as 1, 1.5, or 1.5e3.
type NumberLit struct {
	base
	Literal string
}

func (n *NumberLit) exprNode()      {}
func (n *NumberLit) String() string { return n.Literal }

// StringLit is a quoted string literal with escapes already resolved.
type StringLit struct {
	base
	Value string
}

func (n *StringLit) exprNode()      {}
func (n *StringLit) String() string { return `"` + n.Value + `"` }

// BoolLit is `true` or `false`.
type BoolLit struct {
	base
	Value bool
}

func (n *BoolLit) exprNode() {}
func (n *BoolLit) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// NullLit is the `null` literal.
type NullLit struct{ base }

func (n *NullLit) exprNode()      {}
func (n *NullLit) String() string { return "null" }

// TemporalLit is an `@"..."` date/time/duration literal.
type TemporalLit struct {
	base
	Raw string
}

func (n *TemporalLit) exprNode()      {}
func (n *TemporalLit) String() string { return `@"` + n.Raw + `"` }

// Name is a resolved, possibly multi-word identifier reference.
type Name struct {
	base
	Value string // canonical string form
}

func (n *Name) exprNode()      {}
func (n *Name) String() string { return n.Value }

// QualifiedName is a dotted path of names (a.b.c), distinct from PathExpr in
// that it is produced at parse time when every segment is a bare identifier,
// letting the evaluator builder resolve it as a single scope lookup chain.
type QualifiedName struct {
	base
	Parts []string
}

func (n *QualifiedName) exprNode() {}
func (n *QualifiedName) String() string {
	s := ""
	for i, p := range n.Parts {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}

// ListLit is `[e1, e2, ...]`.
type ListLit struct {
	base
	Elements []Expr
}

func (n *ListLit) exprNode()      {}
func (n *ListLit) String() string { return "[...]" }

// ContextEntry is one `key: value` pair of a context literal.
type ContextEntry struct {
	Key   string
	Value Expr
}

// ContextLit is `{k1: v1, k2: v2}`.
type ContextLit struct {
	base
	Entries []ContextEntry
}

func (n *ContextLit) exprNode()      {}
func (n *ContextLit) String() string { return "{...}" }

// RangeLit is `[a..b]`, `[a..b)`, `(a..b]`, or `(a..b)`.
type RangeLit struct {
	base
	Low, High           Expr
	LowClosed, HighClosed bool
}

func (n *RangeLit) exprNode()      {}
func (n *RangeLit) String() string { return "range" }

// UnaryExpr is `-x`. The parser turns the `not` keyword into a CallExpr of
// the `not` built-in and never emits Op "not", though the evaluator accepts it.
type UnaryExpr struct {
	base
	Op string
	X  Expr
}

func (n *UnaryExpr) exprNode()      {}
func (n *UnaryExpr) String() string { return n.Op + n.X.String() }

// BinaryExpr covers arithmetic, comparison, boolean, and `in` operators.
type BinaryExpr struct {
	base
	Op   string
	X, Y Expr
}

func (n *BinaryExpr) exprNode()      {}
func (n *BinaryExpr) String() string { return "(" + n.X.String() + " " + n.Op + " " + n.Y.String() + ")" }

// BetweenExpr is `x between lo and hi`.
type BetweenExpr struct {
	base
	X, Lo, Hi Expr
}

func (n *BetweenExpr) exprNode()      {}
func (n *BetweenExpr) String() string { return "between" }

// IfExpr is `if c then t else e`.
type IfExpr struct {
	base
	Cond, Then, Else Expr
}

func (n *IfExpr) exprNode()      {}
func (n *IfExpr) String() string { return "if" }

// ForClause is one `name in iterable` clause of a `for` expression.
type ForClause struct {
	Name     string
	Iterable Expr
}

// ForExpr is `for x in xs, y in ys return body`.
type ForExpr struct {
	base
	Clauses []ForClause
	Body    Expr
}

func (n *ForExpr) exprNode()      {}
func (n *ForExpr) String() string { return "for" }

// QuantifiedExpr is `some`/`every ... satisfies ...`.
type QuantifiedExpr struct {
	base
	Every     bool
	Clauses   []ForClause
	Satisfies Expr
}

func (n *QuantifiedExpr) exprNode()      {}
func (n *QuantifiedExpr) String() string { return "quantified" }

// PathExpr is `x.y` where x is an arbitrary expression (context/list
// navigation), as opposed to QualifiedName which is a bare dotted identifier
// chain produced only when every segment parses as a simple name.
type PathExpr struct {
	base
	X    Expr
	Name string
}

func (n *PathExpr) exprNode()      {}
func (n *PathExpr) String() string { return n.X.String() + "." + n.Name }

// FilterExpr is `x[i]`: a numeric index, or a boolean predicate evaluated
// per item. A filter yielding any other value, such as a range, keeps no items.
type FilterExpr struct {
	base
	X      Expr
	Filter Expr
}

func (n *FilterExpr) exprNode()      {}
func (n *FilterExpr) String() string { return n.X.String() + "[...]" }

// Arg is one actual argument of a CallExpr: either positional (Name=="") or
// named.
type Arg struct {
	Name  string
	Value Expr
}

// CallExpr is a function invocation, built-in or user-defined.
type CallExpr struct {
	base
	Callee Expr
	Args   []Arg
}

func (n *CallExpr) exprNode()      {}
func (n *CallExpr) String() string { return n.Callee.String() + "(...)" }

// InstanceOfExpr is `x instance of T`.
type InstanceOfExpr struct {
	base
	X        Expr
	TypeName string
}

func (n *InstanceOfExpr) exprNode()      {}
func (n *InstanceOfExpr) String() string { return "instance of" }

// FunctionLit is `function(p1, p2) body`, a FEEL function literal used in
// boxed contexts for business knowledge models.
type FunctionLit struct {
	base
	Params []string
	Body   Expr
}

func (n *FunctionLit) exprNode()      {}
func (n *FunctionLit) String() string { return "function(...)" }

// UnaryTests is the top-level node for a "unary tests" entry point (decision
// table cell content): a comma-separated list of tests, any of which may
// match the implicit input value `?`, or the bare `-` wildcard.
type UnaryTests struct {
	base
	Not   bool // `not(...)` wrapper
	Tests []Expr
	Any   bool // bare `-`: matches anything
}

func (n *UnaryTests) exprNode()      {}
func (n *UnaryTests) String() string { return "unary-tests" }

// ExprList is a disjunction of candidate expressions, produced only as the
// right-hand side of a BinaryExpr with Op "in-any" for `x in (t1, t2, ...)`.
type ExprList struct {
	base
	Items []Expr
}

func (n *ExprList) exprNode()      {}
func (n *ExprList) String() string { return "(...)" }

// Constructors below exist because base is unexported: callers outside this
// package (the parser) cannot name it in a composite literal, so node
// construction is funnelled through these one-liners instead.

func NewNumberLit(pos token.Position, lit string) *NumberLit { return &NumberLit{base{pos}, lit} }
func NewStringLit(pos token.Position, v string) *StringLit   { return &StringLit{base{pos}, v} }
func NewBoolLit(pos token.Position, v bool) *BoolLit          { return &BoolLit{base{pos}, v} }
func NewNullLit(pos token.Position) *NullLit                  { return &NullLit{base{pos}} }
func NewTemporalLit(pos token.Position, raw string) *TemporalLit {
	return &TemporalLit{base{pos}, raw}
}
func NewName(pos token.Position, v string) *Name { return &Name{base{pos}, v} }
func NewQualifiedName(pos token.Position, parts []string) *QualifiedName {
	return &QualifiedName{base{pos}, parts}
}
func NewListLit(pos token.Position, elems []Expr) *ListLit { return &ListLit{base{pos}, elems} }
func NewContextLit(pos token.Position, entries []ContextEntry) *ContextLit {
	return &ContextLit{base{pos}, entries}
}
func NewRangeLit(pos token.Position, lo, hi Expr, loClosed, hiClosed bool) *RangeLit {
	return &RangeLit{base{pos}, lo, hi, loClosed, hiClosed}
}
func NewUnaryExpr(pos token.Position, op string, x Expr) *UnaryExpr {
	return &UnaryExpr{base{pos}, op, x}
}
func NewBinaryExpr(pos token.Position, op string, x, y Expr) *BinaryExpr {
	return &BinaryExpr{base{pos}, op, x, y}
}
func NewBetweenExpr(pos token.Position, x, lo, hi Expr) *BetweenExpr {
	return &BetweenExpr{base{pos}, x, lo, hi}
}
func NewIfExpr(pos token.Position, cond, then, els Expr) *IfExpr {
	return &IfExpr{base{pos}, cond, then, els}
}
func NewForExpr(pos token.Position, clauses []ForClause, body Expr) *ForExpr {
	return &ForExpr{base{pos}, clauses, body}
}
func NewQuantifiedExpr(pos token.Position, every bool, clauses []ForClause, satisfies Expr) *QuantifiedExpr {
	return &QuantifiedExpr{base{pos}, every, clauses, satisfies}
}
func NewPathExpr(pos token.Position, x Expr, name string) *PathExpr {
	return &PathExpr{base{pos}, x, name}
}
func NewFilterExpr(pos token.Position, x, filter Expr) *FilterExpr {
	return &FilterExpr{base{pos}, x, filter}
}
func NewCallExpr(pos token.Position, callee Expr, args []Arg) *CallExpr {
	return &CallExpr{base{pos}, callee, args}
}
func NewInstanceOfExpr(pos token.Position, x Expr, typeName string) *InstanceOfExpr {
	return &InstanceOfExpr{base{pos}, x, typeName}
}
func NewFunctionLit(pos token.Position, params []string, body Expr) *FunctionLit {
	return &FunctionLit{base{pos}, params, body}
}
func NewUnaryTests(pos token.Position, not bool, tests []Expr, any bool) *UnaryTests {
	return &UnaryTests{base{pos}, not, tests, any}
}
func NewExprList(pos token.Position, items []Expr) *ExprList {
	return &ExprList{base{pos}, items}
}

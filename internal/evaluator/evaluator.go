// Package evaluator lowers pkg/ast expressions to value.Evaluator closures:
// `Scope -> Value`. Literals are constant-folded at build
// time; anything that can only be known at call time (name resolution,
// short-circuiting, BIF parameter-name binding) is deferred into the
// closure.
package evaluator

import (
	"fmt"

	"github.com/dmntk-go/dmntk/internal/decimal"
	"github.com/dmntk-go/dmntk/internal/srcerr"
	"github.com/dmntk-go/dmntk/internal/value"
	"github.com/dmntk-go/dmntk/pkg/ast"
)

type builder struct {
	source string
	file   string
}

// Build compiles expr into an Evaluator. source is the original text (used
// only for error formatting) and file is an optional display name.
func Build(expr ast.Expr, source, file string) (value.Evaluator, error) {
	b := &builder{source: source, file: file}
	return b.build(expr)
}

func (b *builder) buildErr(n ast.Node, format string, args ...any) error {
	return srcerr.New(srcerr.Evaluator, n.Pos(), fmt.Sprintf(format, args...), b.source, b.file)
}

func (b *builder) build(n ast.Expr) (value.Evaluator, error) {
	switch node := n.(type) {
	case *ast.NumberLit:
		d, err := decimal.Parse(node.Literal)
		if err != nil {
			return nil, b.buildErr(node, "invalid number literal %q", node.Literal)
		}
		v := value.Number{D: d}
		return constEval(v), nil
	case *ast.StringLit:
		v := value.Str{V: node.Value}
		return constEval(v), nil
	case *ast.BoolLit:
		v := value.Boolean{V: node.Value}
		return constEval(v), nil
	case *ast.NullLit:
		return constEval(value.Null{}), nil
	case *ast.TemporalLit:
		v, err := value.ParseTemporal(node.Raw)
		if err != nil {
			return nil, b.buildErr(node, "invalid temporal literal %q", node.Raw)
		}
		return constEval(v), nil
	case *ast.Name:
		name := node.Value
		return func(scope *value.Scope) value.Value {
			v, ok := scope.Get(name)
			if !ok {
				return value.NullOf("[name] '%s' is not defined", name)
			}
			return v
		}, nil
	case *ast.QualifiedName:
		return b.buildQualifiedName(node)
	case *ast.ListLit:
		return b.buildListLit(node)
	case *ast.ContextLit:
		return b.buildContextLit(node)
	case *ast.RangeLit:
		return b.buildRangeLit(node)
	case *ast.UnaryExpr:
		return b.buildUnary(node)
	case *ast.BinaryExpr:
		return b.buildBinary(node)
	case *ast.BetweenExpr:
		return b.buildBetween(node)
	case *ast.IfExpr:
		return b.buildIf(node)
	case *ast.ForExpr:
		return b.buildFor(node)
	case *ast.QuantifiedExpr:
		return b.buildQuantified(node)
	case *ast.PathExpr:
		return b.buildPath(node)
	case *ast.FilterExpr:
		return b.buildFilter(node)
	case *ast.CallExpr:
		return b.buildCall(node)
	case *ast.InstanceOfExpr:
		return b.buildInstanceOf(node)
	case *ast.FunctionLit:
		return b.buildFunctionLit(node)
	case *ast.UnaryTests:
		return b.buildUnaryTests(node)
	default:
		return nil, fmt.Errorf("evaluator: unsupported node %T", n)
	}
}

func constEval(v value.Value) value.Evaluator {
	return func(*value.Scope) value.Value { return v }
}

package evaluator

import (
	"github.com/dmntk-go/dmntk/internal/value"
	"github.com/dmntk-go/dmntk/pkg/ast"
)

func (b *builder) buildBinary(node *ast.BinaryExpr) (value.Evaluator, error) {
	x, err := b.build(node.X)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case "in-any":
		list, ok := node.Y.(*ast.ExprList)
		if !ok {
			return nil, b.buildErr(node, "in-any right-hand side is not a test list")
		}
		tests := make([]value.Evaluator, len(list.Items))
		for i, t := range list.Items {
			ev, err := b.build(t)
			if err != nil {
				return nil, err
			}
			tests[i] = ev
		}
		return func(scope *value.Scope) value.Value {
			xv := x(scope)
			anyNull := false
			for _, t := range tests {
				r := membership(xv, t(scope))
				bv, ok := r.(value.Boolean)
				if !ok {
					anyNull = true
					continue
				}
				if bv.V {
					return value.Boolean{V: true}
				}
			}
			if anyNull {
				return value.Null{}
			}
			return value.Boolean{V: false}
		}, nil
	}

	y, err := b.build(node.Y)
	if err != nil {
		return nil, err
	}
	op := node.Op

	switch op {
	case "and":
		return func(scope *value.Scope) value.Value {
			lv := x(scope)
			if bv, ok := lv.(value.Boolean); ok && !bv.V {
				return value.Boolean{V: false}
			}
			rv := y(scope)
			rb, rok := rv.(value.Boolean)
			lb, lok := lv.(value.Boolean)
			if lok && rok {
				return value.Boolean{V: lb.V && rb.V}
			}
			if rok && !rb.V {
				return value.Boolean{V: false}
			}
			return value.Null{}
		}, nil
	case "or":
		return func(scope *value.Scope) value.Value {
			lv := x(scope)
			if bv, ok := lv.(value.Boolean); ok && bv.V {
				return value.Boolean{V: true}
			}
			rv := y(scope)
			rb, rok := rv.(value.Boolean)
			lb, lok := lv.(value.Boolean)
			if lok && rok {
				return value.Boolean{V: lb.V || rb.V}
			}
			if rok && rb.V {
				return value.Boolean{V: true}
			}
			return value.Null{}
		}, nil
	case "=":
		return func(scope *value.Scope) value.Value {
			return value.Equal(x(scope), y(scope)).ToValue()
		}, nil
	case "!=":
		return func(scope *value.Scope) value.Value {
			r := value.Equal(x(scope), y(scope))
			if r.IsNone() {
				return value.Null{}
			}
			eq, _ := r.Bool()
			return value.Boolean{V: !eq}
		}, nil
	case "<", "<=", ">", ">=":
		return func(scope *value.Scope) value.Value {
			xv, yv := x(scope), y(scope)
			c, ok := value.Compare(xv, yv)
			if !ok {
				return value.NullOf("[compare] operands are not comparable: %s %s %s", xv.String(), op, yv.String())
			}
			switch op {
			case "<":
				return value.Boolean{V: c < 0}
			case "<=":
				return value.Boolean{V: c <= 0}
			case ">":
				return value.Boolean{V: c > 0}
			default:
				return value.Boolean{V: c >= 0}
			}
		}, nil
	case "in":
		return func(scope *value.Scope) value.Value {
			return membership(x(scope), y(scope))
		}, nil
	case "+", "-", "*", "/", "**":
		return func(scope *value.Scope) value.Value {
			return arith(op, x(scope), y(scope))
		}, nil
	default:
		return nil, b.buildErr(node, "unsupported binary operator %q", op)
	}
}

// membership implements `x in y`: y may be a Range (containment test) or any
// other value (equality test).
func membership(x, y value.Value) value.Value {
	if r, ok := y.(value.Range); ok {
		loC, loOk := value.Compare(x, r.Low)
		hiC, hiOk := value.Compare(x, r.High)
		if !loOk || !hiOk {
			return value.Null{}
		}
		loPass := loC > 0 || (loC == 0 && r.LowClosed)
		hiPass := hiC < 0 || (hiC == 0 && r.HighClosed)
		return value.Boolean{V: loPass && hiPass}
	}
	return value.Equal(x, y).ToValue()
}

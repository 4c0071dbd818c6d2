package evaluator

import (
	"github.com/dmntk-go/dmntk/internal/value"
	"github.com/dmntk-go/dmntk/pkg/ast"
)

// buildCall compiles a CallExpr. The callee is resolved at call time, not
// build time: a bare Name may name either a built-in (bif.Registry) or a
// scope-bound Function value, and scope bindings are allowed to shadow
// built-ins.
func (b *builder) buildCall(node *ast.CallExpr) (value.Evaluator, error) {
	calleeName, isName := calleeAsName(node.Callee)

	type arg struct {
		name string
		eval value.Evaluator
	}
	args := make([]arg, len(node.Args))
	for i, a := range node.Args {
		ev, err := b.build(a.Value)
		if err != nil {
			return nil, err
		}
		args[i] = arg{a.Name, ev}
	}

	var calleeEval value.Evaluator
	if !isName {
		var err error
		calleeEval, err = b.build(node.Callee)
		if err != nil {
			return nil, err
		}
	}

	return func(scope *value.Scope) value.Value {
		var fn value.Function
		if isName {
			resolved, ok := lookupCallee(scope, calleeName)
			if !ok {
				return value.NullOf("[call] '%s' is not defined", calleeName)
			}
			fn = resolved
		} else {
			v := calleeEval(scope)
			resolved, ok := v.(value.Function)
			if !ok {
				return value.NullOf("[call] target is not a function")
			}
			fn = resolved
		}

		named := false
		for _, a := range args {
			if a.name != "" {
				named = true
				break
			}
		}

		if named {
			argMap := make(map[string]value.Value, len(args))
			for _, a := range args {
				argMap[a.name] = a.eval(scope)
			}
			if fn.Builtin != nil {
				return fn.Builtin.Named(argMap)
			}
			frame := value.NewContext()
			for _, p := range fn.Params {
				if v, ok := argMap[p.Name]; ok {
					frame.Set(p.Name, v)
				} else if p.Default != nil {
					frame.Set(p.Name, p.Default(fn.Closure))
				} else {
					frame.Set(p.Name, value.Null{})
				}
			}
			closure := fn.Closure
			if closure == nil {
				closure = value.NewRootScope(nil)
			}
			return fn.Body.Eval(closure.Push(frame))
		}

		positional := make([]value.Value, len(args))
		for i, a := range args {
			positional[i] = a.eval(scope)
		}
		return value.Apply(fn, positional)
	}, nil
}

func calleeAsName(e ast.Expr) (string, bool) {
	if n, ok := e.(*ast.Name); ok {
		return n.Value, true
	}
	return "", false
}

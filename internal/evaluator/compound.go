package evaluator

import (
	"github.com/dmntk-go/dmntk/internal/bif"
	"github.com/dmntk-go/dmntk/internal/value"
	"github.com/dmntk-go/dmntk/pkg/ast"
)

func (b *builder) buildQualifiedName(node *ast.QualifiedName) (value.Evaluator, error) {
	parts := node.Parts
	return func(scope *value.Scope) value.Value {
		v, ok := scope.Get(parts[0])
		if !ok {
			return value.NullOf("[name] '%s' is not defined", parts[0])
		}
		for _, p := range parts[1:] {
			v = navigate(v, p)
		}
		return v
	}, nil
}

func (b *builder) buildListLit(node *ast.ListLit) (value.Evaluator, error) {
	evals := make([]value.Evaluator, len(node.Elements))
	for i, e := range node.Elements {
		ev, err := b.build(e)
		if err != nil {
			return nil, err
		}
		evals[i] = ev
	}
	return func(scope *value.Scope) value.Value {
		elems := make([]value.Value, len(evals))
		for i, ev := range evals {
			elems[i] = ev(scope)
		}
		return value.NewList(elems...)
	}, nil
}

func (b *builder) buildContextLit(node *ast.ContextLit) (value.Evaluator, error) {
	type entry struct {
		key string
		ev  value.Evaluator
	}
	entries := make([]entry, len(node.Entries))
	for i, e := range node.Entries {
		ev, err := b.build(e.Value)
		if err != nil {
			return nil, err
		}
		entries[i] = entry{e.Key, ev}
	}
	return func(scope *value.Scope) value.Value {
		c := value.NewContext()
		inner := scope.Push(c)
		for _, e := range entries {
			c.Set(e.key, e.ev(inner))
		}
		return c
	}, nil
}

func (b *builder) buildRangeLit(node *ast.RangeLit) (value.Evaluator, error) {
	lo, err := b.build(node.Low)
	if err != nil {
		return nil, err
	}
	hi, err := b.build(node.High)
	if err != nil {
		return nil, err
	}
	loClosed, hiClosed := node.LowClosed, node.HighClosed
	return func(scope *value.Scope) value.Value {
		return value.Range{Low: lo(scope), High: hi(scope), LowClosed: loClosed, HighClosed: hiClosed}
	}, nil
}

func (b *builder) buildUnary(node *ast.UnaryExpr) (value.Evaluator, error) {
	x, err := b.build(node.X)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case "-":
		return func(scope *value.Scope) value.Value {
			v := x(scope)
			n, ok := v.(value.Number)
			if !ok {
				if value.IsNullish(v) {
					return value.Null{}
				}
				return value.NullOf("[unary -] operand is not a number")
			}
			return value.Number{D: n.D.Negate()}
		}, nil
	case "not":
		return func(scope *value.Scope) value.Value {
			v := x(scope)
			bv, ok := v.(value.Boolean)
			if !ok {
				if value.IsNullish(v) {
					return value.Null{}
				}
				return value.NullOf("[unary not] operand is not a boolean")
			}
			return value.Boolean{V: !bv.V}
		}, nil
	default:
		return nil, b.buildErr(node, "unsupported unary operator %q", node.Op)
	}
}

func (b *builder) buildBetween(node *ast.BetweenExpr) (value.Evaluator, error) {
	x, err := b.build(node.X)
	if err != nil {
		return nil, err
	}
	lo, err := b.build(node.Lo)
	if err != nil {
		return nil, err
	}
	hi, err := b.build(node.Hi)
	if err != nil {
		return nil, err
	}
	return func(scope *value.Scope) value.Value {
		xv, lov, hiv := x(scope), lo(scope), hi(scope)
		c1, ok1 := value.Compare(xv, lov)
		c2, ok2 := value.Compare(xv, hiv)
		if !ok1 || !ok2 {
			return value.Null{}
		}
		return value.Boolean{V: c1 >= 0 && c2 <= 0}
	}, nil
}

func (b *builder) buildIf(node *ast.IfExpr) (value.Evaluator, error) {
	cond, err := b.build(node.Cond)
	if err != nil {
		return nil, err
	}
	then, err := b.build(node.Then)
	if err != nil {
		return nil, err
	}
	els, err := b.build(node.Else)
	if err != nil {
		return nil, err
	}
	return func(scope *value.Scope) value.Value {
		cv := cond(scope)
		if bv, ok := cv.(value.Boolean); ok && bv.V {
			return then(scope)
		}
		return els(scope)
	}, nil
}

func (b *builder) buildFor(node *ast.ForExpr) (value.Evaluator, error) {
	type clause struct {
		name string
		iter value.Evaluator
	}
	clauses := make([]clause, len(node.Clauses))
	for i, c := range node.Clauses {
		ev, err := b.build(c.Iterable)
		if err != nil {
			return nil, err
		}
		clauses[i] = clause{c.Name, ev}
	}
	body, err := b.build(node.Body)
	if err != nil {
		return nil, err
	}
	return func(scope *value.Scope) value.Value {
		var results []value.Value
		var recurse func(i int, s *value.Scope)
		recurse = func(i int, s *value.Scope) {
			if i == len(clauses) {
				results = append(results, body(s))
				return
			}
			c := clauses[i]
			it := c.iter(s)
			items, ok := asIterable(it)
			if !ok {
				results = append(results, value.NullOf("[for] iterable is not a list"))
				return
			}
			for _, item := range items {
				frame := value.NewContext()
				frame.Set(c.name, item)
				recurse(i+1, s.Push(frame))
			}
		}
		recurse(0, scope)
		return value.NewList(results...)
	}, nil
}

func (b *builder) buildQuantified(node *ast.QuantifiedExpr) (value.Evaluator, error) {
	type clause struct {
		name string
		iter value.Evaluator
	}
	clauses := make([]clause, len(node.Clauses))
	for i, c := range node.Clauses {
		ev, err := b.build(c.Iterable)
		if err != nil {
			return nil, err
		}
		clauses[i] = clause{c.Name, ev}
	}
	pred, err := b.build(node.Satisfies)
	if err != nil {
		return nil, err
	}
	every := node.Every
	return func(scope *value.Scope) value.Value {
		anyNull := false
		result := !every // some starts false-seeking-true; every starts true-seeking-false
		var recurse func(i int, s *value.Scope) bool // returns false to stop early
		recurse = func(i int, s *value.Scope) bool {
			if i == len(clauses) {
				v := pred(s)
				bv, ok := v.(value.Boolean)
				if !ok {
					anyNull = true
					return true
				}
				if every && !bv.V {
					result = false
					return false
				}
				if !every && bv.V {
					result = true
					return false
				}
				return true
			}
			c := clauses[i]
			it := c.iter(s)
			items, ok := asIterable(it)
			if !ok {
				anyNull = true
				return true
			}
			for _, item := range items {
				frame := value.NewContext()
				frame.Set(c.name, item)
				if !recurse(i+1, s.Push(frame)) {
					return false
				}
			}
			return true
		}
		recurse(0, scope)
		if anyNull && result == every {
			return value.Null{}
		}
		return value.Boolean{V: result}
	}, nil
}

func asIterable(v value.Value) ([]value.Value, bool) {
	if l, ok := v.(value.List); ok {
		return l.Elements, true
	}
	if value.IsNullish(v) {
		return nil, false
	}
	return []value.Value{v}, true
}

// navigate implements the `.` accessor's known-property surface for the
// structured temporal/duration kinds, falling back to Context field lookup.
func navigate(v value.Value, name string) value.Value {
	switch t := v.(type) {
	case *value.Context:
		r, ok := t.Get(name)
		if !ok {
			return value.Null{}
		}
		return r
	case value.Date:
		switch name {
		case "year":
			return value.NumberFromInt64(int64(t.Year))
		case "month":
			return value.NumberFromInt64(int64(t.Month))
		case "day":
			return value.NumberFromInt64(int64(t.Day))
		}
	case value.Time:
		switch name {
		case "hour":
			return value.NumberFromInt64(int64(t.Hour))
		case "minute":
			return value.NumberFromInt64(int64(t.Minute))
		case "second":
			return value.NumberFromInt64(int64(t.Second))
		}
	case value.DateTime:
		switch name {
		case "year":
			return value.NumberFromInt64(int64(t.Date.Year))
		case "month":
			return value.NumberFromInt64(int64(t.Date.Month))
		case "day":
			return value.NumberFromInt64(int64(t.Date.Day))
		case "hour":
			return value.NumberFromInt64(int64(t.Time.Hour))
		case "minute":
			return value.NumberFromInt64(int64(t.Time.Minute))
		case "second":
			return value.NumberFromInt64(int64(t.Time.Second))
		}
	case value.YearsMonthsDuration:
		switch name {
		case "years":
			return value.NumberFromInt64(t.Months / 12)
		case "months":
			return value.NumberFromInt64(t.Months % 12)
		}
	case value.DaysTimeDuration:
		switch name {
		case "days":
			return value.NumberFromInt64(t.Nanos / (24 * 3600 * 1e9))
		case "hours":
			return value.NumberFromInt64((t.Nanos / (3600 * 1e9)) % 24)
		case "minutes":
			return value.NumberFromInt64((t.Nanos / (60 * 1e9)) % 60)
		case "seconds":
			return value.NumberFromInt64((t.Nanos / 1e9) % 60)
		}
	case value.Range:
		switch name {
		case "start", "low":
			return t.Low
		case "end", "high":
			return t.High
		}
	}
	if value.IsNullish(v) {
		return value.Null{}
	}
	return value.NullOf("[path] '%s' has no property named '%s'", v.String(), name)
}

func (b *builder) buildPath(node *ast.PathExpr) (value.Evaluator, error) {
	x, err := b.build(node.X)
	if err != nil {
		return nil, err
	}
	name := node.Name
	return func(scope *value.Scope) value.Value {
		return navigate(x(scope), name)
	}, nil
}

func (b *builder) buildFilter(node *ast.FilterExpr) (value.Evaluator, error) {
	x, err := b.build(node.X)
	if err != nil {
		return nil, err
	}
	filter, err := b.build(node.Filter)
	if err != nil {
		return nil, err
	}
	return func(scope *value.Scope) value.Value {
		xv := x(scope)
		l, ok := xv.(value.List)
		if !ok {
			return value.NullOf("[filter] target is not a list")
		}
		// Single numeric index form: the filter expression evaluates to a
		// Number against the enclosing scope alone (no per-item binding).
		if n, ok := filter(scope).(value.Number); ok {
			i := int(n.D.Int64())
			if i < 0 {
				i = len(l.Elements) + i + 1
			}
			if i < 1 || i > len(l.Elements) {
				return value.Null{}
			}
			return l.Elements[i-1]
		}
		var out []value.Value
		for _, item := range l.Elements {
			frame := value.NewContext()
			if ctx, ok := item.(*value.Context); ok {
				for _, k := range ctx.Keys() {
					v, _ := ctx.Get(k)
					frame.Set(k, v)
				}
			}
			frame.Set("item", item)
			r := filter(scope.Push(frame))
			if bv, ok := r.(value.Boolean); ok && bv.V {
				out = append(out, item)
			}
		}
		return value.NewList(out...)
	}, nil
}

func (b *builder) buildInstanceOf(node *ast.InstanceOfExpr) (value.Evaluator, error) {
	x, err := b.build(node.X)
	if err != nil {
		return nil, err
	}
	typeName := node.TypeName
	return func(scope *value.Scope) value.Value {
		v := x(scope)
		return value.Boolean{V: value.TypeOf(v).String() == typeName}
	}, nil
}

func (b *builder) buildFunctionLit(node *ast.FunctionLit) (value.Evaluator, error) {
	bodyEval, err := b.build(node.Body)
	if err != nil {
		return nil, err
	}
	params := make([]value.Param, len(node.Params))
	for i, p := range node.Params {
		params[i] = value.Param{Name: p}
	}
	return func(scope *value.Scope) value.Value {
		return value.Function{
			Params:  params,
			Body:    value.FunctionBody{Kind: value.BodyLiteral, Eval: bodyEval},
			Closure: scope,
		}
	}, nil
}

func (b *builder) buildUnaryTests(node *ast.UnaryTests) (value.Evaluator, error) {
	if node.Any {
		return constEval(value.Boolean{V: true}), nil
	}
	evals := make([]value.Evaluator, len(node.Tests))
	for i, t := range node.Tests {
		ev, err := b.build(t)
		if err != nil {
			return nil, err
		}
		evals[i] = ev
	}
	not := node.Not
	return func(scope *value.Scope) value.Value {
		anyNull := false
		matched := false
		for _, ev := range evals {
			r := ev(scope)
			bv, ok := r.(value.Boolean)
			if !ok {
				anyNull = true
				continue
			}
			if bv.V {
				matched = true
				break
			}
		}
		if !matched && anyNull {
			return value.Null{}
		}
		if not {
			return value.Boolean{V: !matched}
		}
		return value.Boolean{V: matched}
	}, nil
}

func lookupCallee(scope *value.Scope, name string) (value.Function, bool) {
	if v, ok := scope.Get(name); ok {
		if fn, ok := v.(value.Function); ok {
			return fn, true
		}
	}
	if b, ok := bif.Registry[name]; ok {
		return value.Function{Name: name, Builtin: b}, true
	}
	return value.Function{}, false
}

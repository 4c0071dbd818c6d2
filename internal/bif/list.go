package bif

import (
	"sort"

	"github.com/dmntk-go/dmntk/internal/decimal"
	"github.com/dmntk-go/dmntk/internal/value"
)

func init() {
	register(&value.Builtin{
		Name: "list contains", MinArity: 2, MaxArity: 2,
		ParamSets: [][]string{{"list", "element"}},
		Core:      listContainsCore,
		Named:     func(a map[string]value.Value) value.Value { return dispatchNamed("list contains", [][]string{{"list", "element"}}, a, listContainsCore) },
	})
	register(&value.Builtin{
		Name: "count", MinArity: 1, MaxArity: 1,
		ParamSets: [][]string{{"list"}},
		Core:      countCore,
		Named:     func(a map[string]value.Value) value.Value { return dispatchNamed("count", [][]string{{"list"}}, a, countCore) },
	})
	register(variadicListBuiltin("min", minCore))
	register(variadicListBuiltin("max", maxCore))
	register(variadicListBuiltin("sum", sumCore))
	register(variadicListBuiltin("mean", meanCore))
	register(variadicListBuiltin("product", productCore))
	register(variadicListBuiltin("median", medianCore))
	register(variadicListBuiltin("stddev", stddevCore))
	register(variadicListBuiltin("mode", modeCore))
	register(&value.Builtin{
		Name: "and", MinArity: 1, MaxArity: -1,
		ParamSets: [][]string{{"list"}},
		Core:      allCore,
		Named:     func(a map[string]value.Value) value.Value { return allCore(flattenNamedSingleList(a)) },
	})
	register(&value.Builtin{
		Name: "or", MinArity: 1, MaxArity: -1,
		ParamSets: [][]string{{"list"}},
		Core:      anyCore,
		Named:     func(a map[string]value.Value) value.Value { return anyCore(flattenNamedSingleList(a)) },
	})
	register(&value.Builtin{
		Name: "sublist", MinArity: 2, MaxArity: 3,
		ParamSets: [][]string{{"list", "start position"}, {"list", "start position", "length"}},
		Core:      sublistCore,
		Named: func(a map[string]value.Value) value.Value {
			return dispatchNamed("sublist", [][]string{{"list", "start position"}, {"list", "start position", "length"}}, a, sublistCore)
		},
	})
	register(&value.Builtin{
		Name: "append", MinArity: 2, MaxArity: -1,
		ParamSets: [][]string{{"list", "item"}},
		Core:      appendCore,
		Named:     func(a map[string]value.Value) value.Value { return dispatchNamed("append", [][]string{{"list", "item"}}, a, appendCore) },
	})
	register(&value.Builtin{
		Name: "concatenate", MinArity: 0, MaxArity: -1,
		ParamSets: [][]string{{"lists"}},
		Core:      concatenateCore,
		Named:     func(a map[string]value.Value) value.Value { return concatenateCore(flattenNamedSingleList(a)) },
	})
	register(&value.Builtin{
		Name: "insert before", MinArity: 3, MaxArity: 3,
		ParamSets: [][]string{{"list", "position", "newItem"}},
		Core:      insertBeforeCore,
		Named: func(a map[string]value.Value) value.Value {
			return dispatchNamed("insert before", [][]string{{"list", "position", "newItem"}}, a, insertBeforeCore)
		},
	})
	register(&value.Builtin{
		Name: "remove", MinArity: 2, MaxArity: 2,
		ParamSets: [][]string{{"list", "position"}},
		Core:      removeCore,
		Named:     func(a map[string]value.Value) value.Value { return dispatchNamed("remove", [][]string{{"list", "position"}}, a, removeCore) },
	})
	register(&value.Builtin{
		Name: "reverse", MinArity: 1, MaxArity: 1,
		ParamSets: [][]string{{"list"}},
		Core:      reverseCore,
		Named:     func(a map[string]value.Value) value.Value { return dispatchNamed("reverse", [][]string{{"list"}}, a, reverseCore) },
	})
	register(&value.Builtin{
		Name: "index of", MinArity: 2, MaxArity: 2,
		ParamSets: [][]string{{"list", "match"}},
		Core:      indexOfCore,
		Named:     func(a map[string]value.Value) value.Value { return dispatchNamed("index of", [][]string{{"list", "match"}}, a, indexOfCore) },
	})
	register(&value.Builtin{
		Name: "union", MinArity: 0, MaxArity: -1,
		ParamSets: [][]string{{"lists"}},
		Core:      unionCore,
		Named:     func(a map[string]value.Value) value.Value { return unionCore(flattenNamedSingleList(a)) },
	})
	register(&value.Builtin{
		Name: "distinct values", MinArity: 1, MaxArity: 1,
		ParamSets: [][]string{{"list"}},
		Core:      distinctValuesCore,
		Named:     func(a map[string]value.Value) value.Value { return dispatchNamed("distinct values", [][]string{{"list"}}, a, distinctValuesCore) },
	})
	register(&value.Builtin{
		Name: "flatten", MinArity: 1, MaxArity: 1,
		ParamSets: [][]string{{"list"}},
		Core:      flattenCore,
		Named:     func(a map[string]value.Value) value.Value { return dispatchNamed("flatten", [][]string{{"list"}}, a, flattenCore) },
	})
	register(&value.Builtin{
		Name: "sort", MinArity: 1, MaxArity: 2,
		ParamSets: [][]string{{"list"}, {"list", "precedes"}},
		Core:      sortCore,
		Named: func(a map[string]value.Value) value.Value {
			return dispatchNamed("sort", [][]string{{"list"}, {"list", "precedes"}}, a, sortCore)
		},
	})
}

// variadicListBuiltin registers a BIF that accepts either a single list
// argument or a flattened variadic numeric argument list, the common shape
// of the aggregate functions.
func variadicListBuiltin(name string, core func([]value.Value) value.Value) *value.Builtin {
	return &value.Builtin{
		Name: name, MinArity: 1, MaxArity: -1,
		ParamSets: [][]string{{"list"}},
		Core:      core,
		Named:     func(a map[string]value.Value) value.Value { return core(flattenNamedSingleList(a)) },
	}
}

func flattenNamedSingleList(args map[string]value.Value) []value.Value {
	if v, ok := args["list"]; ok && len(args) == 1 {
		return []value.Value{v}
	}
	out := make([]value.Value, 0, len(args))
	for _, v := range args {
		out = append(out, v)
	}
	return out
}

func flattenNumericArgs(args []value.Value) ([]value.Number, bool) {
	var items []value.Value
	if len(args) == 1 {
		if l, ok := asList(args[0]); ok {
			items = l.Elements
		} else {
			items = args
		}
	} else {
		items = args
	}
	out := make([]value.Number, 0, len(items))
	for _, v := range items {
		n, ok := asNumber(v)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func listContainsCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("list contains", "list", args[0])
	}
	for _, e := range l.Elements {
		if eq, def := value.Equal(e, args[1]).Bool(); def && eq {
			return value.Boolean{V: true}
		}
	}
	return value.Boolean{V: false}
}

func countCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("count", "list", args[0])
	}
	return value.NumberFromInt64(int64(len(l.Elements)))
}

func minCore(args []value.Value) value.Value {
	nums, ok := flattenNumericArgs(args)
	if !ok {
		return invalidType("min", "number", args[0])
	}
	if len(nums) == 0 {
		return value.Null{}
	}
	best := nums[0].D
	for _, n := range nums[1:] {
		if n.D.Cmp(best) < 0 {
			best = n.D
		}
	}
	return value.Number{D: best}
}

func maxCore(args []value.Value) value.Value {
	nums, ok := flattenNumericArgs(args)
	if !ok {
		return invalidType("max", "number", args[0])
	}
	if len(nums) == 0 {
		return value.Null{}
	}
	best := nums[0].D
	for _, n := range nums[1:] {
		if n.D.Cmp(best) > 0 {
			best = n.D
		}
	}
	return value.Number{D: best}
}

func sumCore(args []value.Value) value.Value {
	nums, ok := flattenNumericArgs(args)
	if !ok {
		return invalidType("sum", "number", args[0])
	}
	total := decimal.Zero
	for _, n := range nums {
		total = total.Add(n.D)
	}
	return value.Number{D: total}
}

func meanCore(args []value.Value) value.Value {
	nums, ok := flattenNumericArgs(args)
	if !ok {
		return invalidType("mean", "number", args[0])
	}
	if len(nums) == 0 {
		return value.Null{}
	}
	total := decimal.Zero
	for _, n := range nums {
		total = total.Add(n.D)
	}
	m, err := total.Div(decimal.FromInt64(int64(len(nums))))
	if err != nil {
		return value.NullOf("[core::mean] %s", err.Error())
	}
	return value.Number{D: m}
}

func productCore(args []value.Value) value.Value {
	nums, ok := flattenNumericArgs(args)
	if !ok {
		return invalidType("product", "number", args[0])
	}
	total := decimal.FromInt64(1)
	for _, n := range nums {
		total = total.Mul(n.D)
	}
	return value.Number{D: total}
}

func medianCore(args []value.Value) value.Value {
	nums, ok := flattenNumericArgs(args)
	if !ok {
		return invalidType("median", "number", args[0])
	}
	if len(nums) == 0 {
		return value.Null{}
	}
	sorted := append([]value.Number{}, nums...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].D.Cmp(sorted[j].D) < 0 })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return value.Number{D: sorted[mid].D}
	}
	sum := sorted[mid-1].D.Add(sorted[mid].D)
	m, err := sum.Div(decimal.FromInt64(2))
	if err != nil {
		return value.NullOf("[core::median] %s", err.Error())
	}
	return value.Number{D: m}
}

func stddevCore(args []value.Value) value.Value {
	nums, ok := flattenNumericArgs(args)
	if !ok {
		return invalidType("stddev", "number", args[0])
	}
	if len(nums) < 2 {
		return value.Null{}
	}
	total := decimal.Zero
	for _, n := range nums {
		total = total.Add(n.D)
	}
	mean, err := total.Div(decimal.FromInt64(int64(len(nums))))
	if err != nil {
		return value.NullOf("[core::stddev] %s", err.Error())
	}
	sqSum := decimal.Zero
	for _, n := range nums {
		d := n.D.Sub(mean)
		sqSum = sqSum.Add(d.Mul(d))
	}
	variance, err := sqSum.Div(decimal.FromInt64(int64(len(nums) - 1)))
	if err != nil {
		return value.NullOf("[core::stddev] %s", err.Error())
	}
	r, err := variance.Sqrt()
	if err != nil {
		return value.NullOf("[core::stddev] %s", err.Error())
	}
	return value.Number{D: r}
}

func modeCore(args []value.Value) value.Value {
	nums, ok := flattenNumericArgs(args)
	if !ok {
		return invalidType("mode", "number", args[0])
	}
	if len(nums) == 0 {
		return value.NewList()
	}
	counts := make([]int, len(nums))
	best := 0
	for i, n := range nums {
		for _, m := range nums {
			if n.D.Equal(m.D) {
				counts[i]++
			}
		}
		if counts[i] > best {
			best = counts[i]
		}
	}
	sorted := make([]value.Number, 0)
	seen := make([]value.Number, 0)
	for i, n := range nums {
		if counts[i] != best {
			continue
		}
		dup := false
		for _, s := range seen {
			if s.D.Equal(n.D) {
				dup = true
				break
			}
		}
		if !dup {
			seen = append(seen, n)
			sorted = append(sorted, n)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].D.Cmp(sorted[j].D) < 0 })
	elems := make([]value.Value, len(sorted))
	for i, n := range sorted {
		elems[i] = value.Number{D: n.D}
	}
	return value.NewList(elems...)
}

func resolveListIndex(n, length int) int {
	if n < 0 {
		return length + n + 1
	}
	return n
}

func sublistCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 3); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("sublist", "list", args[0])
	}
	pos, ok := asNumber(args[1])
	if !ok {
		return invalidType("sublist", "number", args[1])
	}
	start := resolveListIndex(int(pos.D.Int64()), len(l.Elements))
	if start < 1 {
		start = 1
	}
	length := len(l.Elements) - start + 1
	if len(args) == 3 {
		ln, ok := asNumber(args[2])
		if !ok {
			return invalidType("sublist", "number", args[2])
		}
		length = int(ln.D.Int64())
	}
	end := start + length - 1
	if end > len(l.Elements) {
		end = len(l.Elements)
	}
	if start > len(l.Elements) || end < start {
		return value.NewList()
	}
	out := make([]value.Value, end-start+1)
	copy(out, l.Elements[start-1:end])
	return value.NewList(out...)
}

func appendCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, -1); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("append", "list", args[0])
	}
	out := append(append([]value.Value{}, l.Elements...), args[1:]...)
	return value.NewList(out...)
}

func concatenateCore(args []value.Value) value.Value {
	var out []value.Value
	for _, a := range args {
		l, ok := asList(a)
		if !ok {
			return invalidType("concatenate", "list", a)
		}
		out = append(out, l.Elements...)
	}
	return value.NewList(out...)
}

func insertBeforeCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 3, 3); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("insert before", "list", args[0])
	}
	pos, ok := asNumber(args[1])
	if !ok {
		return invalidType("insert before", "number", args[1])
	}
	idx := resolveListIndex(int(pos.D.Int64()), len(l.Elements))
	if idx < 1 || idx > len(l.Elements)+1 {
		return value.NullOf("[core::insert before] position %d out of range", idx)
	}
	out := make([]value.Value, 0, len(l.Elements)+1)
	out = append(out, l.Elements[:idx-1]...)
	out = append(out, args[2])
	out = append(out, l.Elements[idx-1:]...)
	return value.NewList(out...)
}

func removeCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("remove", "list", args[0])
	}
	pos, ok := asNumber(args[1])
	if !ok {
		return invalidType("remove", "number", args[1])
	}
	idx := resolveListIndex(int(pos.D.Int64()), len(l.Elements))
	if idx < 1 || idx > len(l.Elements) {
		return value.NullOf("[core::remove] position %d out of range", idx)
	}
	out := make([]value.Value, 0, len(l.Elements)-1)
	out = append(out, l.Elements[:idx-1]...)
	out = append(out, l.Elements[idx:]...)
	return value.NewList(out...)
}

func reverseCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("reverse", "list", args[0])
	}
	out := make([]value.Value, len(l.Elements))
	for i, e := range l.Elements {
		out[len(l.Elements)-1-i] = e
	}
	return value.NewList(out...)
}

func indexOfCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("index of", "list", args[0])
	}
	var out []value.Value
	for i, e := range l.Elements {
		if eq, def := value.Equal(e, args[1]).Bool(); def && eq {
			out = append(out, value.NumberFromInt64(int64(i+1)))
		}
	}
	return value.NewList(out...)
}

func unionCore(args []value.Value) value.Value {
	var out []value.Value
	for _, a := range args {
		l, ok := asList(a)
		if !ok {
			return invalidType("union", "list", a)
		}
		for _, e := range l.Elements {
			dup := false
			for _, o := range out {
				if eq, def := value.Equal(e, o).Bool(); def && eq {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, e)
			}
		}
	}
	return value.NewList(out...)
}

func distinctValuesCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("distinct values", "list", args[0])
	}
	var out []value.Value
	for _, e := range l.Elements {
		dup := false
		for _, o := range out {
			if eq, def := value.Equal(e, o).Bool(); def && eq {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return value.NewList(out...)
}

func flattenCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("flatten", "list", args[0])
	}
	var out []value.Value
	var walk func(value.List)
	walk = func(l value.List) {
		for _, e := range l.Elements {
			if nested, ok := e.(value.List); ok {
				walk(nested)
				continue
			}
			out = append(out, e)
		}
	}
	walk(l)
	return value.NewList(out...)
}

func sortCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 2); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("sort", "list", args[0])
	}
	out := append([]value.Value{}, l.Elements...)
	if len(args) == 2 {
		fn, ok := args[1].(value.Function)
		if !ok {
			return invalidType("sort", "function", args[1])
		}
		sort.SliceStable(out, func(i, j int) bool {
			r := value.Apply(fn, []value.Value{out[i], out[j]})
			b, ok := asBoolean(r)
			return ok && b.V
		})
		return value.NewList(out...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		c, ok := value.Compare(out[i], out[j])
		return ok && c < 0
	})
	return value.NewList(out...)
}

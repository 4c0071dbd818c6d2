package bif

import (
	"github.com/dmntk-go/dmntk/internal/value"
)

func init() {
	register(unary1("not", [][]string{{"negand"}}, notCore))
	register(&value.Builtin{
		Name: "any", MinArity: 0, MaxArity: -1,
		ParamSets: [][]string{{"list"}},
		Core:      anyCore,
		Named: func(args map[string]value.Value) value.Value {
			return dispatchNamed("any", [][]string{{"list"}}, args, func(pos []value.Value) value.Value {
				l, ok := asList(pos[0])
				if !ok {
					return invalidType("any", "list", pos[0])
				}
				return anyCore(l.Elements)
			})
		},
	})
	register(&value.Builtin{
		Name: "all", MinArity: 0, MaxArity: -1,
		ParamSets: [][]string{{"list"}},
		Core:      allCore,
		Named: func(args map[string]value.Value) value.Value {
			return dispatchNamed("all", [][]string{{"list"}}, args, func(pos []value.Value) value.Value {
				l, ok := asList(pos[0])
				if !ok {
					return invalidType("all", "list", pos[0])
				}
				return allCore(l.Elements)
			})
		},
	})
}

func notCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	b, ok := asBoolean(args[0])
	if !ok {
		if value.IsNullish(args[0]) {
			return value.Null{}
		}
		return invalidType("not", "boolean", args[0])
	}
	return value.Boolean{V: !b.V}
}

// anyCore accepts either a single list argument or a variadic flattening of
// boolean positional arguments, matching the FEEL any(list) / any(b1, b2...)
// dual surface.
func anyCore(args []value.Value) value.Value {
	items := flattenBooleanArgs(args)
	sawNull := false
	for _, v := range items {
		b, ok := asBoolean(v)
		if !ok {
			sawNull = true
			continue
		}
		if b.V {
			return value.Boolean{V: true}
		}
	}
	if sawNull {
		return value.Null{}
	}
	return value.Boolean{V: false}
}

func allCore(args []value.Value) value.Value {
	items := flattenBooleanArgs(args)
	sawNull := false
	for _, v := range items {
		b, ok := asBoolean(v)
		if !ok {
			sawNull = true
			continue
		}
		if !b.V {
			return value.Boolean{V: false}
		}
	}
	if sawNull {
		return value.Null{}
	}
	return value.Boolean{V: true}
}

func flattenBooleanArgs(args []value.Value) []value.Value {
	if len(args) == 1 {
		if l, ok := asList(args[0]); ok {
			return l.Elements
		}
	}
	return args
}

package bif

import (
	"github.com/dmntk-go/dmntk/internal/value"
)

func init() {
	register(unary1("decimal", [][]string{{"n", "scale"}}, decimalCore))
	register(unary1("floor", [][]string{{"n"}}, floorCore))
	register(unary1("ceiling", [][]string{{"n"}}, ceilingCore))
	register(unary1("round half up", [][]string{{"n", "scale"}}, roundHalfUpCore))
	register(unary1("round half down", [][]string{{"n", "scale"}}, roundHalfDownCore))
	register(unary1("abs", [][]string{{"n"}}, absCore))
	register(unary1("modulo", [][]string{{"dividend", "divisor"}}, moduloCore))
	register(unary1("sqrt", [][]string{{"number"}}, sqrtCore))
	register(unary1("log", [][]string{{"number"}}, logCore))
	register(unary1("exp", [][]string{{"number"}}, expCore))
	register(unary1("even", [][]string{{"number"}}, evenCore))
	register(unary1("odd", [][]string{{"number"}}, oddCore))
}

// unary1 builds a BIF descriptor whose arity bounds come from its declared
// parameter-name alternatives and whose Named convention dispatches to the
// alternative matching the given names, a pattern shared by most of the
// numeric and string groups.
func unary1(name string, paramSets [][]string, core func([]value.Value) value.Value) *value.Builtin {
	min, max := len(paramSets[0]), len(paramSets[len(paramSets)-1])
	if len(paramSets) > 1 {
		max = -1
		for _, ps := range paramSets {
			if len(ps) > max {
				max = len(ps)
			}
		}
	}
	return &value.Builtin{
		Name: name, MinArity: min, MaxArity: max,
		ParamSets: paramSets,
		Core:      core,
		Named: func(args map[string]value.Value) value.Value {
			return dispatchNamed(name, paramSets, args, core)
		},
	}
}

func decimalCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	n, ok1 := asNumber(args[0])
	scale, ok2 := asNumber(args[1])
	if !ok1 || !ok2 {
		return invalidType("decimal", "number", args[0])
	}
	return value.Number{D: n.D.RoundPlaces(int32(scale.D.Int64()))}
}

func floorCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	n, ok := asNumber(args[0])
	if !ok {
		return invalidType("floor", "number", args[0])
	}
	return value.Number{D: n.D.Floor()}
}

func ceilingCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	n, ok := asNumber(args[0])
	if !ok {
		return invalidType("ceiling", "number", args[0])
	}
	return value.Number{D: n.D.Ceil()}
}

func roundHalfUpCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	n, ok1 := asNumber(args[0])
	scale, ok2 := asNumber(args[1])
	if !ok1 || !ok2 {
		return invalidType("round half up", "number", args[0])
	}
	return value.Number{D: n.D.RoundHalfUp(int32(scale.D.Int64()))}
}

func roundHalfDownCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	n, ok1 := asNumber(args[0])
	scale, ok2 := asNumber(args[1])
	if !ok1 || !ok2 {
		return invalidType("round half down", "number", args[0])
	}
	return value.Number{D: n.D.RoundHalfDown(int32(scale.D.Int64()))}
}

func absCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	n, ok := asNumber(args[0])
	if !ok {
		return invalidType("abs", "number", args[0])
	}
	return value.Number{D: n.D.Abs()}
}

func moduloCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	a, ok1 := asNumber(args[0])
	b, ok2 := asNumber(args[1])
	if !ok1 || !ok2 {
		return invalidType("modulo", "number", args[0])
	}
	m, err := a.D.Modulo(b.D)
	if err != nil {
		return value.NullOf("[core::modulo] %s", err.Error())
	}
	return value.Number{D: m}
}

func sqrtCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	n, ok := asNumber(args[0])
	if !ok {
		return invalidType("sqrt", "number", args[0])
	}
	r, err := n.D.Sqrt()
	if err != nil {
		return value.NullOf("[core::sqrt] %s", err.Error())
	}
	return value.Number{D: r}
}

func logCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	n, ok := asNumber(args[0])
	if !ok {
		return invalidType("log", "number", args[0])
	}
	r, err := n.D.Ln()
	if err != nil {
		return value.NullOf("[core::log] %s", err.Error())
	}
	return value.Number{D: r}
}

func expCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	n, ok := asNumber(args[0])
	if !ok {
		return invalidType("exp", "number", args[0])
	}
	return value.Number{D: n.D.Exp()}
}

func evenCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	n, ok := asNumber(args[0])
	if !ok {
		return invalidType("even", "number", args[0])
	}
	if !n.D.IsInteger() {
		return value.NullOf("[core::even] number is not an integer")
	}
	return value.Boolean{V: n.D.Int64()%2 == 0}
}

func oddCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	n, ok := asNumber(args[0])
	if !ok {
		return invalidType("odd", "number", args[0])
	}
	if !n.D.IsInteger() {
		return value.NullOf("[core::odd] number is not an integer")
	}
	return value.Boolean{V: n.D.Int64()%2 != 0}
}

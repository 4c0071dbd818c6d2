// Package bif implements the FEEL built-in function library. Every function
// is registered under its canonical (possibly multi-word) name in Registry,
// exposing both calling conventions a BIF must support: Core (positional)
// and Named (parameter-name keyed).
//
// Trace-string formats are part of the tested contract and must not be
// reworded: arity mismatches read
// "expected N parameters, actual number of parameters is M"; an unknown
// named parameter reads "[named::<bif>] invalid named parameters"; a
// missing declared parameter reads "parameter '<n>' not found"; a type
// mismatch reads "[core::<bif>] invalid argument type, expected X, actual
// type is Y".
package bif

import (
	"github.com/dmntk-go/dmntk/internal/value"
)

// Registry maps every BIF's canonical name to its descriptor. Populated by
// each group's init() and never mutated afterward.
var Registry = map[string]*value.Builtin{}

func register(b *value.Builtin) {
	Registry[b.Name] = b
}

func invalidType(name, expected string, actual value.Value) value.Null {
	return value.NullOf("[core::%s] invalid argument type, expected %s, actual type is %s", name, expected, value.TypeOf(actual).String())
}

func arityError(min, actual int) value.Null {
	return value.NullOf("expected %d parameters, actual number of parameters is %d", min, actual)
}

func namedInvalid(name string) value.Null {
	return value.NullOf("[named::%s] invalid named parameters", name)
}

func namedMissing(name string) value.Null {
	return value.NullOf("parameter '%s' not found", name)
}

func underConstruction(bifName string, l, r value.Value) value.Null {
	return value.NullOf("[core::%s] under construction: %s | %s", bifName, l.String(), r.String())
}

// checkArity reports (error, false) when len(args) is outside [min,max]
// (max<0 means unbounded).
func checkArity(args []value.Value, min, max int) (value.Value, bool) {
	n := len(args)
	if n < min || (max >= 0 && n > max) {
		return arityError(min, n), false
	}
	return nil, true
}

// namedToPositional validates args' keys against names and returns them in
// declared order, or an error Value and ok=false.
func namedToPositional(bifName string, names []string, args map[string]value.Value) ([]value.Value, value.Value, bool) {
	for k := range args {
		found := false
		for _, n := range names {
			if n == k {
				found = true
				break
			}
		}
		if !found {
			return nil, namedInvalid(bifName), false
		}
	}
	out := make([]value.Value, len(names))
	for i, n := range names {
		v, ok := args[n]
		if !ok {
			return nil, namedMissing(n), false
		}
		out[i] = v
	}
	return out, nil, true
}

func asNumber(v value.Value) (value.Number, bool) {
	n, ok := v.(value.Number)
	return n, ok
}

func asStr(v value.Value) (value.Str, bool) {
	s, ok := v.(value.Str)
	return s, ok
}

func asBoolean(v value.Value) (value.Boolean, bool) {
	b, ok := v.(value.Boolean)
	return b, ok
}

func asList(v value.Value) (value.List, bool) {
	l, ok := v.(value.List)
	return l, ok
}

func asContext(v value.Value) (*value.Context, bool) {
	c, ok := v.(*value.Context)
	return c, ok
}

// dispatchNamed picks the declared ParamSets alternative whose key set
// matches args exactly (BIFs with more than one arity, like `date`, declare
// one alternative per arity) and re-enters core with the resolved positional
// arguments.
func dispatchNamed(bifName string, paramSets [][]string, args map[string]value.Value, core func([]value.Value) value.Value) value.Value {
	for _, names := range paramSets {
		if sameKeys(names, args) {
			pos, errv, ok := namedToPositional(bifName, names, args)
			if !ok {
				return errv
			}
			return core(pos)
		}
	}
	return namedInvalid(bifName)
}

func sameKeys(names []string, args map[string]value.Value) bool {
	if len(names) != len(args) {
		return false
	}
	for _, n := range names {
		if _, ok := args[n]; !ok {
			return false
		}
	}
	return true
}

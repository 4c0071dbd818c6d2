package bif

import (
	"github.com/dmntk-go/dmntk/internal/value"
)

// interval is the point-or-range operand shape every Allen relation below
// normalizes to: a bare point is treated as a degenerate closed interval
// [p..p].
type interval struct {
	lo, hi           value.Value
	loClosed, hiClosed bool
}

func toInterval(v value.Value) interval {
	if r, ok := v.(value.Range); ok {
		return interval{r.Low, r.High, r.LowClosed, r.HighClosed}
	}
	return interval{v, v, true, true}
}

func cmp(a, b value.Value) (int, bool) { return value.Compare(a, b) }

func init() {
	rel := func(name string, fn func(interval, interval) (bool, bool)) *value.Builtin {
		core := func(args []value.Value) value.Value {
			if errv, ok := checkArity(args, 2, 2); !ok {
				return errv
			}
			if value.IsNullish(args[0]) || value.IsNullish(args[1]) {
				return value.Null{}
			}
			a, b := toInterval(args[0]), toInterval(args[1])
			result, ok := fn(a, b)
			if !ok {
				return underConstruction(name, args[0], args[1])
			}
			return value.Boolean{V: result}
		}
		return &value.Builtin{
			Name: name, MinArity: 2, MaxArity: 2,
			ParamSets: [][]string{{"point1", "point2"}, {"range1", "range2"}},
			Core:      core,
			Named: func(a map[string]value.Value) value.Value {
				return dispatchNamed(name, [][]string{{"point1", "point2"}, {"range1", "range2"}}, a, core)
			},
		}
	}

	register(rel("before", beforeRel))
	register(rel("after", afterRel))
	register(rel("meets", meetsRel))
	register(rel("met by", metByRel))
	register(rel("overlaps", overlapsRel))
	register(rel("overlaps before", overlapsBeforeRel))
	register(rel("overlaps after", overlapsAfterRel))
	register(rel("finishes", finishesRel))
	register(rel("finished by", finishedByRel))
	register(rel("includes", includesRel))
	register(rel("during", duringRel))
	register(rel("starts", startsRel))
	register(rel("started by", startedByRel))
	register(rel("coincides", coincidesRel))
}

func beforeRel(a, b interval) (bool, bool) {
	c, ok := cmp(a.hi, b.lo)
	if !ok {
		return false, false
	}
	if c < 0 {
		return true, true
	}
	return c == 0 && (!a.hiClosed || !b.loClosed), true
}

func afterRel(a, b interval) (bool, bool) { return beforeRel(b, a) }

func meetsRel(a, b interval) (bool, bool) {
	c, ok := cmp(a.hi, b.lo)
	if !ok {
		return false, false
	}
	return c == 0 && a.hiClosed && b.loClosed, true
}

func metByRel(a, b interval) (bool, bool) { return meetsRel(b, a) }

func overlapsRel(a, b interval) (bool, bool) {
	c1, ok1 := cmp(a.lo, b.lo)
	c2, ok2 := cmp(a.hi, b.lo)
	c3, ok3 := cmp(a.hi, b.hi)
	if !ok1 || !ok2 || !ok3 {
		return false, false
	}
	return c1 < 0 && c2 >= 0 && c3 < 0, true
}

func overlapsBeforeRel(a, b interval) (bool, bool) { return overlapsRel(a, b) }
func overlapsAfterRel(a, b interval) (bool, bool)  { return overlapsRel(b, a) }

func finishesRel(a, b interval) (bool, bool) {
	c1, ok1 := cmp(a.hi, b.hi)
	c2, ok2 := cmp(a.lo, b.lo)
	if !ok1 || !ok2 {
		return false, false
	}
	return c1 == 0 && c2 > 0, true
}

func finishedByRel(a, b interval) (bool, bool) { return finishesRel(b, a) }

func includesRel(a, b interval) (bool, bool) {
	c1, ok1 := cmp(a.lo, b.lo)
	c2, ok2 := cmp(a.hi, b.hi)
	if !ok1 || !ok2 {
		return false, false
	}
	return c1 <= 0 && c2 >= 0, true
}

func duringRel(a, b interval) (bool, bool) { return includesRel(b, a) }

func startsRel(a, b interval) (bool, bool) {
	c1, ok1 := cmp(a.lo, b.lo)
	c2, ok2 := cmp(a.hi, b.hi)
	if !ok1 || !ok2 {
		return false, false
	}
	return c1 == 0 && c2 < 0, true
}

func startedByRel(a, b interval) (bool, bool) { return startsRel(b, a) }

func coincidesRel(a, b interval) (bool, bool) {
	c1, ok1 := cmp(a.lo, b.lo)
	c2, ok2 := cmp(a.hi, b.hi)
	if !ok1 || !ok2 {
		return false, false
	}
	return c1 == 0 && c2 == 0 && a.loClosed == b.loClosed && a.hiClosed == b.hiClosed, true
}

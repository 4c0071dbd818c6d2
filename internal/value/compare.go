package value

// Compare implements total comparison for ordered types. It returns
// (-1|0|1, true) for a well-ordered pair, or (0, false) when the types are
// incomparable or either operand is nullish; the caller turns the latter
// into `Null(trace="[compare] ...")`.
func Compare(a, b Value) (int, bool) {
	if IsNullish(a) || IsNullish(b) {
		return 0, false
	}
	if a.Kind() != b.Kind() {
		return 0, false
	}
	switch av := a.(type) {
	case Number:
		return av.D.Cmp(b.(Number).D), true
	case Str:
		bv := b.(Str).V
		switch {
		case av.V < bv:
			return -1, true
		case av.V > bv:
			return 1, true
		default:
			return 0, true
		}
	case Date:
		bv := b.(Date)
		return cmp3(av.Year, bv.Year, av.Month, bv.Month, av.Day, bv.Day), true
	case Time:
		bv := b.(Time)
		an, bn := av.totalNanos(), bv.totalNanos()
		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		default:
			return 0, true
		}
	case DateTime:
		bv := b.(DateTime)
		if c, ok := Compare(av.Date, bv.Date); ok && c != 0 {
			return c, true
		}
		return Compare(av.Time, bv.Time)
	case YearsMonthsDuration:
		bv := b.(YearsMonthsDuration)
		return cmpInt64(av.Months, bv.Months), true
	case DaysTimeDuration:
		bv := b.(DaysTimeDuration)
		return cmpInt64(av.Nanos, bv.Nanos), true
	default:
		return 0, false
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmp3(a1, b1, a2, b2, a3, b3 int) int {
	if a1 != b1 {
		return cmpInt(a1, b1)
	}
	if a2 != b2 {
		return cmpInt(a2, b2)
	}
	return cmpInt(a3, b3)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

package value

// TriBool is a ternary logic result: Some(true), Some(false), or None.
type TriBool struct {
	value   bool
	defined bool
}

// SomeTrue, SomeFalse, and None construct the three TriBool states.
var (
	SomeTrue  = TriBool{value: true, defined: true}
	SomeFalse = TriBool{value: false, defined: true}
	None      = TriBool{}
)

// IsNone reports whether t carries no definite answer.
func (t TriBool) IsNone() bool { return !t.defined }

// Bool returns the boolean answer and whether one was defined.
func (t TriBool) Bool() (bool, bool) { return t.value, t.defined }

// ToValue converts a TriBool to the Value a FEEL `=` expression returns:
// None becomes Null, following the usual nullish-propagation rule.
func (t TriBool) ToValue() Value {
	if t.IsNone() {
		return Null{}
	}
	if t.value {
		return Boolean{V: true}
	}
	return Boolean{V: false}
}

func triOf(b bool) TriBool {
	if b {
		return SomeTrue
	}
	return SomeFalse
}

// Equal implements FEEL ternary equality: Some(true), Some(false), or None
// when either operand is nullish (two Nulls are always Some(true)
// regardless of trace content).
func Equal(a, b Value) TriBool {
	aNull, bNull := IsNullish(a), IsNullish(b)
	if aNull || bNull {
		if aNull && bNull {
			return SomeTrue
		}
		return None
	}
	if a.Kind() != b.Kind() {
		return SomeFalse
	}
	switch av := a.(type) {
	case Boolean:
		return triOf(av.V == b.(Boolean).V)
	case Number:
		return triOf(av.D.Equal(b.(Number).D))
	case Str:
		return triOf(av.V == b.(Str).V)
	case Date:
		bv := b.(Date)
		return triOf(av == bv)
	case Time:
		bv := b.(Time)
		return triOf(av.totalNanos() == bv.totalNanos() && sameOffset(av, bv))
	case DateTime:
		bv := b.(DateTime)
		return triOf(av.Date == bv.Date && av.Time.totalNanos() == bv.Time.totalNanos() && sameOffset(av.Time, bv.Time))
	case YearsMonthsDuration:
		return triOf(av.Months == b.(YearsMonthsDuration).Months)
	case DaysTimeDuration:
		return triOf(av.Nanos == b.(DaysTimeDuration).Nanos)
	case List:
		bv := b.(List)
		if len(av.Elements) != len(bv.Elements) {
			return SomeFalse
		}
		for i := range av.Elements {
			r := Equal(av.Elements[i], bv.Elements[i])
			if r.IsNone() {
				return None
			}
			if eq, _ := r.Bool(); !eq {
				return SomeFalse
			}
		}
		return SomeTrue
	case *Context:
		bv := b.(*Context)
		if av.Len() != bv.Len() {
			return SomeFalse
		}
		for _, k := range av.Keys() {
			bval, ok := bv.Get(k)
			if !ok {
				return SomeFalse
			}
			aval, _ := av.Get(k)
			r := Equal(aval, bval)
			if r.IsNone() {
				return None
			}
			if eq, _ := r.Bool(); !eq {
				return SomeFalse
			}
		}
		return SomeTrue
	case Range:
		bv := b.(Range)
		if av.LowClosed != bv.LowClosed || av.HighClosed != bv.HighClosed {
			return SomeFalse
		}
		lo := Equal(av.Low, bv.Low)
		hi := Equal(av.High, bv.High)
		if lo.IsNone() || hi.IsNone() {
			return None
		}
		loEq, _ := lo.Bool()
		hiEq, _ := hi.Bool()
		return triOf(loEq && hiEq)
	case TypeDescriptor:
		return triOf(av.T.String() == b.(TypeDescriptor).T.String())
	default:
		// Functions are never FEEL-equal to anything, including themselves.
		return SomeFalse
	}
}

package bif

import (
	"time"

	"github.com/dmntk-go/dmntk/internal/value"
)

func init() {
	register(unary1("day of year", [][]string{{"date"}}, dayOfYearCore))
	register(unary1("day of week", [][]string{{"date"}}, dayOfWeekCore))
	register(unary1("month of year", [][]string{{"date"}}, monthOfYearCore))
	register(unary1("week of year", [][]string{{"date"}}, weekOfYearCore))
	register(unary1("is", [][]string{{"value1", "value2"}}, isCore))
}

func asGoDate(v value.Value) (time.Time, bool) {
	switch t := v.(type) {
	case value.Date:
		return time.Date(t.Year, time.Month(t.Month), t.Day, 0, 0, 0, 0, time.UTC), true
	case value.DateTime:
		d := t.Date
		return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC), true
	default:
		return time.Time{}, false
	}
}

func dayOfYearCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	t, ok := asGoDate(args[0])
	if !ok {
		return invalidType("day of year", "date or date and time", args[0])
	}
	return value.NumberFromInt64(int64(t.YearDay()))
}

// dayOfWeekCore returns the FEEL-canonical English weekday name (the value
// is a string, not an ISO day ordinal).
func dayOfWeekCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	t, ok := asGoDate(args[0])
	if !ok {
		return invalidType("day of week", "date or date and time", args[0])
	}
	return value.Str{V: t.Weekday().String()}
}

func monthOfYearCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	t, ok := asGoDate(args[0])
	if !ok {
		return invalidType("month of year", "date or date and time", args[0])
	}
	return value.Str{V: t.Month().String()}
}

func weekOfYearCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	t, ok := asGoDate(args[0])
	if !ok {
		return invalidType("week of year", "date or date and time", args[0])
	}
	_, week := t.ISOWeek()
	return value.NumberFromInt64(int64(week))
}

// isCore reports exact calendar+offset identity using the same literal
// offset rule as the `=` operator (value.Equal), so Z and a named
// zero-offset zone differ. Unlike `=` it always returns a boolean: two
// nullish operands are identical, a single nullish operand is not.
func isCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	eq, defined := value.Equal(args[0], args[1]).Bool()
	if !defined {
		return value.Boolean{V: value.IsNullish(args[0]) && value.IsNullish(args[1])}
	}
	return value.Boolean{V: eq}
}

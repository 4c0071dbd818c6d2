package evaluator

import (
	"time"

	"github.com/dmntk-go/dmntk/internal/decimal"
	"github.com/dmntk-go/dmntk/internal/value"
)

// arith implements FEEL `+ - * / **` across numbers, durations, and the
// date/time kinds that durations can be added to or subtracted from.
// Any nullish operand yields Null; anything outside the supported
// combinations yields a traced Null rather than a panic.
func arith(op string, x, y value.Value) value.Value {
	if value.IsNullish(x) || value.IsNullish(y) {
		return value.Null{}
	}
	switch xv := x.(type) {
	case value.Number:
		if yv, ok := y.(value.Number); ok {
			return numberArith(op, xv.D, yv.D)
		}
		if yv, ok := y.(value.DaysTimeDuration); ok && op == "*" {
			return value.DaysTimeDuration{Nanos: scaleNanos(yv.Nanos, xv.D)}
		}
		if yv, ok := y.(value.YearsMonthsDuration); ok && op == "*" {
			return value.YearsMonthsDuration{Months: scaleMonths(yv.Months, xv.D)}
		}
	case value.DaysTimeDuration:
		switch yv := y.(type) {
		case value.DaysTimeDuration:
			switch op {
			case "+":
				return value.DaysTimeDuration{Nanos: xv.Nanos + yv.Nanos}
			case "-":
				return value.DaysTimeDuration{Nanos: xv.Nanos - yv.Nanos}
			case "/":
				r, err := decimal.FromInt64(xv.Nanos).Div(decimal.FromInt64(yv.Nanos))
				if err != nil {
					return value.NullOf("[division] division by zero")
				}
				return value.Number{D: r}
			}
		case value.Number:
			switch op {
			case "*":
				return value.DaysTimeDuration{Nanos: scaleNanos(xv.Nanos, yv.D)}
			case "/":
				if yv.D.Sign() == 0 {
					return value.NullOf("[division] division by zero")
				}
				return value.DaysTimeDuration{Nanos: scaleNanosDiv(xv.Nanos, yv.D)}
			}
		case value.Date, value.DateTime:
			if op == "+" {
				return addDuration(yv, xv.Nanos, 0)
			}
		}
	case value.YearsMonthsDuration:
		switch yv := y.(type) {
		case value.YearsMonthsDuration:
			switch op {
			case "+":
				return value.YearsMonthsDuration{Months: xv.Months + yv.Months}
			case "-":
				return value.YearsMonthsDuration{Months: xv.Months - yv.Months}
			case "/":
				r, err := decimal.FromInt64(xv.Months).Div(decimal.FromInt64(yv.Months))
				if err != nil {
					return value.NullOf("[division] division by zero")
				}
				return value.Number{D: r}
			}
		case value.Number:
			switch op {
			case "*":
				return value.YearsMonthsDuration{Months: scaleMonths(xv.Months, yv.D)}
			case "/":
				if yv.D.Sign() == 0 {
					return value.NullOf("[division] division by zero")
				}
				return value.YearsMonthsDuration{Months: scaleMonthsDiv(xv.Months, yv.D)}
			}
		case value.Date, value.DateTime:
			if op == "+" {
				return addDuration(yv, 0, xv.Months)
			}
		}
	case value.Date:
		switch yv := y.(type) {
		case value.DaysTimeDuration:
			if op == "+" {
				return addDuration(xv, yv.Nanos, 0)
			}
			if op == "-" {
				return addDuration(xv, -yv.Nanos, 0)
			}
		case value.YearsMonthsDuration:
			if op == "+" {
				return addDuration(xv, 0, yv.Months)
			}
			if op == "-" {
				return addDuration(xv, 0, -yv.Months)
			}
		case value.Date:
			if op == "-" {
				return value.DaysTimeDuration{Nanos: dateToTime(xv).Sub(dateToTime(yv)).Nanoseconds()}
			}
		}
	case value.DateTime:
		switch yv := y.(type) {
		case value.DaysTimeDuration:
			if op == "+" {
				return addDuration(xv, yv.Nanos, 0)
			}
			if op == "-" {
				return addDuration(xv, -yv.Nanos, 0)
			}
		case value.YearsMonthsDuration:
			if op == "+" {
				return addDuration(xv, 0, yv.Months)
			}
			if op == "-" {
				return addDuration(xv, 0, -yv.Months)
			}
		case value.DateTime:
			if op == "-" {
				return value.DaysTimeDuration{Nanos: dateTimeToGoTime(xv).Sub(dateTimeToGoTime(yv)).Nanoseconds()}
			}
		}
	}
	return value.NullOf("[arith] unsupported operand combination for '%s': %s, %s", op, x.String(), y.String())
}

func numberArith(op string, a, b decimal.Decimal) value.Value {
	switch op {
	case "+":
		return value.Number{D: a.Add(b)}
	case "-":
		return value.Number{D: a.Sub(b)}
	case "*":
		return value.Number{D: a.Mul(b)}
	case "/":
		r, err := a.Div(b)
		if err != nil {
			return value.NullOf("[division] division by zero")
		}
		return value.Number{D: r}
	case "**":
		r, err := a.PowInt(b.Int64())
		if err != nil {
			return value.NullOf("[**] %s", err.Error())
		}
		return value.Number{D: r}
	}
	return value.NullOf("[arith] unsupported numeric operator '%s'", op)
}

func scaleNanos(nanos int64, d decimal.Decimal) int64 {
	return decimal.FromInt64(nanos).Mul(d).Int64()
}

func scaleNanosDiv(nanos int64, d decimal.Decimal) int64 {
	r, err := decimal.FromInt64(nanos).Div(d)
	if err != nil {
		return 0
	}
	return r.Int64()
}

func scaleMonths(months int64, d decimal.Decimal) int64 {
	return decimal.FromInt64(months).Mul(d).Int64()
}

func scaleMonthsDiv(months int64, d decimal.Decimal) int64 {
	r, err := decimal.FromInt64(months).Div(d)
	if err != nil {
		return 0
	}
	return r.Int64()
}

func dateToTime(d value.Date) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func dateTimeToGoTime(dt value.DateTime) time.Time {
	return time.Date(dt.Date.Year, time.Month(dt.Date.Month), dt.Date.Day,
		dt.Time.Hour, dt.Time.Minute, dt.Time.Second, dt.Time.Nanos, time.UTC)
}

// addDuration shifts a Date/DateTime value by nanos (days-time component)
// and/or months (years-months component), returning the same kind it was
// given.
func addDuration(v value.Value, nanos int64, months int64) value.Value {
	switch dv := v.(type) {
	case value.Date:
		t := dateToTime(dv).AddDate(0, int(months), 0).Add(time.Duration(nanos))
		return value.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
	case value.DateTime:
		t := dateTimeToGoTime(dv).AddDate(0, int(months), 0).Add(time.Duration(nanos))
		return value.DateTime{
			Date: value.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()},
			Time: value.Time{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanos: t.Nanosecond(),
				OffsetKind: dv.Time.OffsetKind, OffsetMinutes: dv.Time.OffsetMinutes, Zone: dv.Time.Zone},
		}
	}
	return value.NullOf("[arith] cannot shift %s by a duration", v.String())
}

package bif

import (
	"strings"

	"github.com/dmntk-go/dmntk/internal/decimal"
	"github.com/dmntk-go/dmntk/internal/value"
)

func init() {
	register(&value.Builtin{
		Name: "number", MinArity: 1, MaxArity: 3,
		ParamSets: [][]string{{"from", "grouping separator", "decimal separator"}},
		Core:      numberCore,
		Named: func(args map[string]value.Value) value.Value {
			return dispatchNamed("number", [][]string{
				{"from"},
				{"from", "grouping separator", "decimal separator"},
			}, args, numberCore)
		},
	})
	register(&value.Builtin{
		Name: "string", MinArity: 1, MaxArity: 1,
		ParamSets: [][]string{{"from"}},
		Core:      stringCore,
		Named:     func(args map[string]value.Value) value.Value { return dispatchNamed("string", [][]string{{"from"}}, args, stringCore) },
	})
	register(&value.Builtin{
		Name: "date", MinArity: 1, MaxArity: 3,
		ParamSets: [][]string{{"from"}, {"year", "month", "day"}},
		Core:      dateCore,
		Named: func(args map[string]value.Value) value.Value {
			return dispatchNamed("date", [][]string{{"from"}, {"year", "month", "day"}}, args, dateCore)
		},
	})
	register(&value.Builtin{
		Name: "time", MinArity: 1, MaxArity: 4,
		ParamSets: [][]string{{"from"}, {"hour", "minute", "second"}, {"hour", "minute", "second", "offset"}},
		Core:      timeCore,
		Named: func(args map[string]value.Value) value.Value {
			return dispatchNamed("time", [][]string{
				{"from"},
				{"hour", "minute", "second"},
				{"hour", "minute", "second", "offset"},
			}, args, timeCore)
		},
	})
	register(&value.Builtin{
		Name: "date and time", MinArity: 1, MaxArity: 2,
		ParamSets: [][]string{{"from"}, {"date", "time"}},
		Core:      dateTimeCore,
		Named: func(args map[string]value.Value) value.Value {
			return dispatchNamed("date and time", [][]string{{"from"}, {"date", "time"}}, args, dateTimeCore)
		},
	})
	register(&value.Builtin{
		Name: "duration", MinArity: 1, MaxArity: 1,
		ParamSets: [][]string{{"from"}},
		Core:      durationCore,
		Named:     func(args map[string]value.Value) value.Value { return dispatchNamed("duration", [][]string{{"from"}}, args, durationCore) },
	})
}

func numberCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 3); !ok {
		return errv
	}
	s, ok := asStr(args[0])
	if !ok {
		return invalidType("number", "string", args[0])
	}
	var groupSep, decimalSep string
	if len(args) > 1 && !value.IsNullish(args[1]) {
		gs, ok := asStr(args[1])
		if !ok {
			return invalidType("number", "string", args[1])
		}
		groupSep = gs.V
	}
	if len(args) > 2 && !value.IsNullish(args[2]) {
		ds, ok := asStr(args[2])
		if !ok {
			return invalidType("number", "string", args[2])
		}
		decimalSep = ds.V
	}
	if groupSep != "" && decimalSep != "" && groupSep == decimalSep {
		return value.NullOf("[core::number] decimal separator must be different from grouping separator")
	}
	text := s.V
	if groupSep != "" {
		text = strings.ReplaceAll(text, groupSep, "")
	}
	if decimalSep != "" && decimalSep != "." {
		text = strings.ReplaceAll(text, decimalSep, ".")
	}
	d, err := decimal.Parse(strings.TrimSpace(text))
	if err != nil {
		return value.NullOf("[core::number] invalid number string '%s'", s.V)
	}
	return value.Number{D: d}
}

func stringCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	x := args[0]
	if s, ok := x.(value.Str); ok {
		return s
	}
	if value.IsNullish(x) {
		return value.Null{}
	}
	return value.Str{V: x.String()}
}

func dateCore(args []value.Value) value.Value {
	switch len(args) {
	case 1:
		switch v := args[0].(type) {
		case value.Str:
			d, err := value.ParseDate(v.V)
			if err != nil {
				return value.NullOf("[core::date] invalid date string '%s'", v.V)
			}
			return d
		case value.DateTime:
			return v.Date
		default:
			return invalidType("date", "string or date and time", args[0])
		}
	case 3:
		y, ok1 := asNumber(args[0])
		m, ok2 := asNumber(args[1])
		d, ok3 := asNumber(args[2])
		if !ok1 || !ok2 || !ok3 {
			return invalidType("date", "number", args[0])
		}
		return value.Date{Year: int(y.D.Int64()), Month: int(m.D.Int64()), Day: int(d.D.Int64())}
	default:
		return arityError(1, len(args))
	}
}

func timeCore(args []value.Value) value.Value {
	switch len(args) {
	case 1:
		switch v := args[0].(type) {
		case value.Str:
			t, err := value.ParseTime(v.V)
			if err != nil {
				return value.NullOf("[core::time] invalid time string '%s'", v.V)
			}
			return t
		case value.DateTime:
			return v.Time
		default:
			return invalidType("time", "string or date and time", args[0])
		}
	case 3, 4:
		h, ok1 := asNumber(args[0])
		m, ok2 := asNumber(args[1])
		s, ok3 := asNumber(args[2])
		if !ok1 || !ok2 || !ok3 {
			return invalidType("time", "number", args[0])
		}
		t := value.Time{Hour: int(h.D.Int64()), Minute: int(m.D.Int64()), Second: int(s.D.Int64())}
		if len(args) == 4 && !value.IsNullish(args[3]) {
			switch off := args[3].(type) {
			case value.DaysTimeDuration:
				mins := off.Nanos / int64(60*1e9)
				t.OffsetKind = value.OffsetFixed
				t.OffsetMinutes = int(mins)
			default:
				return invalidType("time", "days and time duration", args[3])
			}
		}
		return t
	default:
		return arityError(1, len(args))
	}
}

func dateTimeCore(args []value.Value) value.Value {
	switch len(args) {
	case 1:
		s, ok := asStr(args[0])
		if !ok {
			return invalidType("date and time", "string", args[0])
		}
		dt, err := value.ParseDateTime(s.V)
		if err != nil {
			return value.NullOf("[core::date and time] invalid date and time string '%s'", s.V)
		}
		return dt
	case 2:
		d, ok1 := args[0].(value.Date)
		t, ok2 := args[1].(value.Time)
		if !ok1 || !ok2 {
			return invalidType("date and time", "date, time", args[0])
		}
		return value.DateTime{Date: d, Time: t}
	default:
		return arityError(1, len(args))
	}
}

func durationCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	s, ok := asStr(args[0])
	if !ok {
		return invalidType("duration", "string", args[0])
	}
	d, err := value.ParseDuration(s.V)
	if err != nil {
		return value.NullOf("[core::duration] invalid duration string '%s'", s.V)
	}
	return d
}

package bif

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/value"
)

func TestNumberWithSeparators(t *testing.T) {
	got := numberCore([]value.Value{value.Str{V: "1,000.21"}, value.Str{V: ","}, value.Str{V: "."}})
	n, ok := got.(value.Number)
	if !ok {
		t.Fatalf("got %#v", got)
	}
	if n.D.String() != "1000.21" {
		t.Fatalf("got %s", n.D.String())
	}
}

func TestNumberSameSeparatorsIsError(t *testing.T) {
	got := numberCore([]value.Value{value.Str{V: "1.000,21"}, value.Str{V: "."}, value.Str{V: "."}})
	n, ok := got.(value.Null)
	if !ok || n.Trace != "[core::number] decimal separator must be different from grouping separator" {
		t.Fatalf("got %#v", got)
	}
}

func TestDateFromInvalidString(t *testing.T) {
	got := dateCore([]value.Value{value.Str{V: "2017-13-10"}})
	n, ok := got.(value.Null)
	if !ok || n.Trace != "[core::date] invalid date string '2017-13-10'" {
		t.Fatalf("got %#v", got)
	}
}

func TestDateFromYearMonthDay(t *testing.T) {
	got := dateCore([]value.Value{value.NumberFromInt64(2017), value.NumberFromInt64(3), value.NumberFromInt64(10)})
	d, ok := got.(value.Date)
	if !ok || d.Year != 2017 || d.Month != 3 || d.Day != 10 {
		t.Fatalf("got %#v", got)
	}
}

func TestDateAndTimeFromParts(t *testing.T) {
	d := value.Date{Year: 2017, Month: 3, Day: 10}
	tm := value.Time{Hour: 10, Minute: 0, Second: 0}
	got := dateTimeCore([]value.Value{d, tm})
	dt, ok := got.(value.DateTime)
	if !ok || dt.Date != d || dt.Time != tm {
		t.Fatalf("got %#v", got)
	}
}

func TestDurationDaysAndTime(t *testing.T) {
	got := durationCore([]value.Value{value.Str{V: "P1DT2H"}})
	d, ok := got.(value.DaysTimeDuration)
	if !ok {
		t.Fatalf("got %#v", got)
	}
	if d.Nanos != int64(26*3600)*1e9 {
		t.Fatalf("got %d", d.Nanos)
	}
}

func TestStringOfNumber(t *testing.T) {
	got := stringCore([]value.Value{value.NumberFromInt64(42)})
	s, ok := got.(value.Str)
	if !ok || s.V != "42" {
		t.Fatalf("got %#v", got)
	}
}

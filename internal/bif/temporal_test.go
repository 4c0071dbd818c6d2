package bif

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/value"
)

func TestDayOfWeekAndMonth(t *testing.T) {
	d := value.Date{Year: 2017, Month: 3, Day: 10}
	got := dayOfWeekCore([]value.Value{d})
	if got.(value.Str).V != "Friday" {
		t.Fatalf("got %v", got)
	}
	got = monthOfYearCore([]value.Value{d})
	if got.(value.Str).V != "March" {
		t.Fatalf("got %v", got)
	}
}

func TestDayOfYear(t *testing.T) {
	d := value.Date{Year: 2017, Month: 1, Day: 1}
	got := dayOfYearCore([]value.Value{d})
	if got.(value.Number).D.Int64() != 1 {
		t.Fatalf("got %v", got)
	}
}

func TestIsDistinguishesOffsetForms(t *testing.T) {
	withZ := value.Time{Hour: 10, OffsetKind: value.OffsetFixed, OffsetMinutes: 0}
	named := value.Time{Hour: 10, OffsetKind: value.OffsetNamed, Zone: "Etc/UTC"}
	got := isCore([]value.Value{withZ, named})
	if got.(value.Boolean).V {
		t.Fatalf("got %v, want false", got)
	}
}

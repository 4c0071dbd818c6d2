package bif

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/value"
)

func rng(lo, hi int64, loClosed, hiClosed bool) value.Range {
	return value.Range{Low: value.NumberFromInt64(lo), High: value.NumberFromInt64(hi), LowClosed: loClosed, HighClosed: hiClosed}
}

func TestBeforePoints(t *testing.T) {
	b := Registry["before"]
	got := b.Core([]value.Value{value.NumberFromInt64(1), value.NumberFromInt64(5)})
	if !got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
}

func TestMeetsTouchingClosedOpen(t *testing.T) {
	m := Registry["meets"]
	got := m.Core([]value.Value{rng(1, 5, true, true), rng(5, 10, true, true)})
	if !got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
	got = m.Core([]value.Value{rng(1, 5, true, false), rng(5, 10, true, true)})
	if got.(value.Boolean).V {
		t.Fatalf("got %v, want false (open end doesn't meet)", got)
	}
}

func TestIncludesDuring(t *testing.T) {
	inc := Registry["includes"]
	got := inc.Core([]value.Value{rng(1, 10, true, true), rng(3, 5, true, true)})
	if !got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
	dur := Registry["during"]
	got = dur.Core([]value.Value{rng(3, 5, true, true), rng(1, 10, true, true)})
	if !got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
}

func TestCoincidesRequiresSameClosure(t *testing.T) {
	co := Registry["coincides"]
	got := co.Core([]value.Value{rng(1, 5, true, true), rng(1, 5, true, false)})
	if got.(value.Boolean).V {
		t.Fatalf("got %v, want false", got)
	}
}

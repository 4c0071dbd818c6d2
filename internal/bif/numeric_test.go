package bif

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/decimal"
	"github.com/dmntk-go/dmntk/internal/value"
)

func mustParse(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFloorCeiling(t *testing.T) {
	got := floorCore([]value.Value{value.Number{D: mustParse(t, "1.5")}})
	if got.(value.Number).D.String() != "1" {
		t.Fatalf("got %v", got)
	}
	got = ceilingCore([]value.Value{value.Number{D: mustParse(t, "1.5")}})
	if got.(value.Number).D.String() != "2" {
		t.Fatalf("got %v", got)
	}
}

func TestRoundHalfUpDown(t *testing.T) {
	up := roundHalfUpCore([]value.Value{value.Number{D: mustParse(t, "2.5")}, value.NumberFromInt64(0)})
	if up.(value.Number).D.String() != "3" {
		t.Fatalf("got %v", up)
	}
	down := roundHalfDownCore([]value.Value{value.Number{D: mustParse(t, "2.5")}, value.NumberFromInt64(0)})
	if down.(value.Number).D.String() != "2" {
		t.Fatalf("got %v", down)
	}
}

func TestEvenOdd(t *testing.T) {
	if got := evenCore([]value.Value{value.NumberFromInt64(4)}); !got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
	if got := oddCore([]value.Value{value.NumberFromInt64(4)}); got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
}

func TestModuloByZero(t *testing.T) {
	got := moduloCore([]value.Value{value.NumberFromInt64(5), value.NumberFromInt64(0)})
	n, ok := got.(value.Null)
	if !ok || n.Trace == "" {
		t.Fatalf("got %#v", got)
	}
}

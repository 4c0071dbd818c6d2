package bif

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/value"
)

func TestSubstringPositiveAndNegative(t *testing.T) {
	got := substringCore([]value.Value{value.Str{V: "foobar"}, value.NumberFromInt64(4)})
	if got.(value.Str).V != "bar" {
		t.Fatalf("got %v", got)
	}
	got = substringCore([]value.Value{value.Str{V: "foobar"}, value.NumberFromInt64(-3)})
	if got.(value.Str).V != "bar" {
		t.Fatalf("got %v", got)
	}
}

func TestSubstringWithLength(t *testing.T) {
	got := substringCore([]value.Value{value.Str{V: "foobar"}, value.NumberFromInt64(1), value.NumberFromInt64(3)})
	if got.(value.Str).V != "foo" {
		t.Fatalf("got %v", got)
	}
}

func TestSubstringBeforeAfter(t *testing.T) {
	got := substringBeforeCore([]value.Value{value.Str{V: "foobar"}, value.Str{V: "bar"}})
	if got.(value.Str).V != "foo" {
		t.Fatalf("got %v", got)
	}
	got = substringAfterCore([]value.Value{value.Str{V: "foobar"}, value.Str{V: "foo"}})
	if got.(value.Str).V != "bar" {
		t.Fatalf("got %v", got)
	}
}

func TestStringLengthCountsRunes(t *testing.T) {
	got := stringLengthCore([]value.Value{value.Str{V: "café"}})
	if got.(value.Number).D.Int64() != 4 {
		t.Fatalf("got %v", got)
	}
}

func TestMatchesWithIgnoreCase(t *testing.T) {
	got := matchesCore([]value.Value{value.Str{V: "FOOBAR"}, value.Str{V: "foo.*"}, value.Str{V: "i"}})
	if !got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
}

func TestReplaceWithGroupReference(t *testing.T) {
	got := replaceCore([]value.Value{value.Str{V: "2024-01-02"}, value.Str{V: "(\\d+)-(\\d+)-(\\d+)"}, value.Str{V: "$3/$2/$1"}})
	if got.(value.Str).V != "02/01/2024" {
		t.Fatalf("got %v", got)
	}
}

func TestSplitOnDelimiter(t *testing.T) {
	got := splitCore([]value.Value{value.Str{V: "a;b;;c"}, value.Str{V: ";"}})
	l := got.(value.List)
	if len(l.Elements) != 4 {
		t.Fatalf("got %v", l)
	}
}

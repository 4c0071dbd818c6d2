package bif

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/value"
)

func sampleContext() *value.Context {
	c := value.NewContext()
	c.Set("x", value.NumberFromInt64(1))
	c.Set("y", value.NumberFromInt64(2))
	return c
}

func TestGetValueFound(t *testing.T) {
	got := getValueCore([]value.Value{sampleContext(), value.Str{V: "y"}})
	if got.(value.Number).D.Int64() != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestGetValueMissingIsNull(t *testing.T) {
	got := getValueCore([]value.Value{sampleContext(), value.Str{V: "z"}})
	if _, ok := got.(value.Null); !ok {
		t.Fatalf("got %v", got)
	}
}

func TestGetEntriesRoundTrip(t *testing.T) {
	entries := getEntriesCore([]value.Value{sampleContext()})
	rebuilt := contextCore([]value.Value{entries})
	c, ok := rebuilt.(*value.Context)
	if !ok || c.Len() != 2 {
		t.Fatalf("got %v", rebuilt)
	}
}

func TestContextPutDoesNotMutateOriginal(t *testing.T) {
	orig := sampleContext()
	contextPutCore([]value.Value{orig, value.Str{V: "x"}, value.NumberFromInt64(99)})
	v, _ := orig.Get("x")
	if v.(value.Number).D.Int64() != 1 {
		t.Fatalf("original context was mutated: %v", v)
	}
}

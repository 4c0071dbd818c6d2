package bif

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/value"
)

func TestNotOnBoolean(t *testing.T) {
	got := notCore([]value.Value{value.Boolean{V: true}})
	if got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
}

func TestAnyOnList(t *testing.T) {
	l := value.NewList(value.Boolean{V: false}, value.Boolean{V: true})
	got := anyCore([]value.Value{l})
	if !got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
}

func TestAllShortCircuitsOnFalse(t *testing.T) {
	l := value.NewList(value.Boolean{V: true}, value.Boolean{V: false})
	got := allCore([]value.Value{l})
	if got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
}

func TestAnyVariadicForm(t *testing.T) {
	got := anyCore([]value.Value{value.Boolean{V: false}, value.Boolean{V: false}, value.Boolean{V: true}})
	if !got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
}

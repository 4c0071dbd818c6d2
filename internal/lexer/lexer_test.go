package lexer

import (
	"testing"

	"github.com/dmntk-go/dmntk/pkg/token"
)

func tokenTypes(t *testing.T, input string, scope []string) []token.Type {
	t.Helper()
	l := New(input, scope)
	var types []token.Type
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	return types
}

func TestNextTokenBasic(t *testing.T) {
	input := `2 between 1 and 4`
	want := []token.Type{token.NUMBER, token.BETWEEN, token.NUMBER, token.AND, token.NUMBER, token.EOF}
	got := tokenTypes(t, input, nil)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMultiWordNameFromScope(t *testing.T) {
	l := New(`loan amount + 1`, []string{"loan amount"})
	first := l.NextToken()
	if first.Type != token.IDENT || first.Literal != "loan amount" {
		t.Fatalf("expected single IDENT 'loan amount', got %v", first)
	}
	plus := l.NextToken()
	if plus.Type != token.PLUS {
		t.Fatalf("expected PLUS, got %v", plus)
	}
}

func TestMultiWordNameKeywordNotInScope(t *testing.T) {
	// "date and time" is a reserved multi-word function name even with no
	// scope names supplied.
	l := New(`date and time("2017-01-01T10:00:00")`, nil)
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "date and time" {
		t.Fatalf("expected 'date and time' as one token, got %v", tok)
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	l := New(`"a\nb"`, nil)
	tok := l.NextToken()
	if tok.Type != token.STRING || tok.Literal != "a\nb" {
		t.Fatalf("got %v", tok)
	}
}

func TestTemporalLiteral(t *testing.T) {
	l := New(`@"2017-03-10"`, nil)
	tok := l.NextToken()
	if tok.Type != token.TEMPORAL || tok.Literal != "2017-03-10" {
		t.Fatalf("got %v", tok)
	}
}

func TestNumberLiteral(t *testing.T) {
	tests := []string{"123", "1.5", "1.5e10", "1.5e-3"}
	for _, in := range tests {
		l := New(in, nil)
		tok := l.NextToken()
		if tok.Type != token.NUMBER || tok.Literal != in {
			t.Errorf("NUMBER(%q) got %v", in, tok)
		}
	}
}

func TestOperators(t *testing.T) {
	want := []token.Type{token.LE, token.GE, token.NEQ, token.EQ, token.LT, token.GT, token.POW, token.EOF}
	got := tokenTypes(t, `<= >= != = < > **`, nil)
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

// Package lexer implements the FEEL lexical scanner. Unlike an ordinary
// hand-written lexer, this one is context sensitive: multi-word
// identifiers ("date and time", "loan amount") are recognised by greedy
// longest-match against the set of names currently in scope plus the
// fixed reserved-word set, so the Lexer takes that name set as a
// constructor parameter rather than stashing it in process-wide state; it
// is re-entrant per parse.
//
// The overall shape (readChar/peekChar character cursor, line/column
// tracking, table-driven NextToken) is the standard technique for a
// hand-rolled recursive scanner.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmntk-go/dmntk/pkg/token"
)

// namePunct is the fixed punctuation token set that may appear inside a
// multi-word Name, with no surrounding space.
var namePunct = map[rune]bool{'.': true, '/': true, '-': true, '+': true, '*': true, '\'': true}

// Lexer scans FEEL source text into Tokens.
type Lexer struct {
	input        string
	pos          int
	readPos      int
	line, column int
	ch           rune

	errors []Error

	// names holds the multi-word candidates (reserved words + in-scope
	// names), indexed by their first word, longest-first, for greedy
	// longest-match identifier recognition.
	names map[string][][]string
}

// Error is a lexical error with position.
type Error struct {
	Message string
	Pos     token.Position
}

// New creates a Lexer over input, disambiguating multi-word identifiers
// against scopeNames (typically Scope.Names() plus any model-level labels)
// in addition to the fixed reserved-word set.
func New(input string, scopeNames []string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	all := append([]string{}, scopeNames...)
	all = append(all, token.ReservedWords()...)
	all = append(all, token.MultiWordBuiltins()...)
	l.names = buildNameIndex(all)
	l.readChar()
	return l
}

// Errors returns every lexical error collected during scanning.
func (l *Lexer) Errors() []Error { return l.errors }

func (l *Lexer) addError(msg string) {
	l.errors = append(l.errors, Error{Message: msg, Pos: l.currentPos()})
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
	l.column++
	if r == '\n' {
		l.line++
		l.column = 0
	}
	if r == utf8.RuneError && size == 1 {
		l.addError("invalid UTF-8 encoding")
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func isWordStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }
func isWordPart(r rune) bool  { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

// NextToken returns the next token, advancing the scanner.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	// skip line comments
	for l.ch == '/' && l.peekChar() == '/' {
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
		l.skipWhitespace()
	}

	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Pos: pos}
	case l.ch == '"':
		return l.readString(pos)
	case l.ch == '@' && l.peekChar() == '"':
		return l.readTemporal(pos)
	case unicode.IsDigit(l.ch):
		return l.readNumber(pos)
	case isWordStart(l.ch):
		return l.readIdentOrKeyword(pos)
	default:
		return l.readOperator(pos)
	}
}

func (l *Lexer) readOperator(pos token.Position) token.Token {
	ch := l.ch
	two := func(next rune, t token.Type, single token.Type) token.Token {
		if l.peekChar() == next {
			l.readChar()
			l.readChar()
			return token.Token{Type: t, Literal: string(ch) + string(next), Pos: pos}
		}
		l.readChar()
		return token.Token{Type: single, Literal: string(ch), Pos: pos}
	}

	switch ch {
	case '(':
		l.readChar()
		return token.Token{Type: token.LPAREN, Literal: "(", Pos: pos}
	case ')':
		l.readChar()
		return token.Token{Type: token.RPAREN, Literal: ")", Pos: pos}
	case '[':
		l.readChar()
		return token.Token{Type: token.LBRACKET, Literal: "[", Pos: pos}
	case ']':
		l.readChar()
		return token.Token{Type: token.RBRACKET, Literal: "]", Pos: pos}
	case '{':
		l.readChar()
		return token.Token{Type: token.LBRACE, Literal: "{", Pos: pos}
	case '}':
		l.readChar()
		return token.Token{Type: token.RBRACE, Literal: "}", Pos: pos}
	case ',':
		l.readChar()
		return token.Token{Type: token.COMMA, Literal: ",", Pos: pos}
	case ':':
		l.readChar()
		return token.Token{Type: token.COLON, Literal: ":", Pos: pos}
	case '?':
		l.readChar()
		return token.Token{Type: token.QUESTION, Literal: "?", Pos: pos}
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.DOTDOT, Literal: "..", Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.DOT, Literal: ".", Pos: pos}
	case '+':
		l.readChar()
		return token.Token{Type: token.PLUS, Literal: "+", Pos: pos}
	case '-':
		l.readChar()
		return token.Token{Type: token.MINUS, Literal: "-", Pos: pos}
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.POW, Literal: "**", Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.STAR, Literal: "*", Pos: pos}
	case '/':
		l.readChar()
		return token.Token{Type: token.SLASH, Literal: "/", Pos: pos}
	case '=':
		l.readChar()
		return token.Token{Type: token.EQ, Literal: "=", Pos: pos}
	case '!':
		return two('=', token.NEQ, token.ILLEGAL)
	case '<':
		return two('=', token.LE, token.LT)
	case '>':
		return two('=', token.GE, token.GT)
	default:
		l.addError("unexpected character " + string(ch))
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Literal: string(ch), Pos: pos}
	}
}

func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		save := l.pos
		saveRead, saveLine, saveCol, saveCh := l.readPos, l.line, l.column, l.ch
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if unicode.IsDigit(l.ch) {
			for unicode.IsDigit(l.ch) {
				l.readChar()
			}
		} else {
			l.pos, l.readPos, l.line, l.column, l.ch = save, saveRead, saveLine, saveCol, saveCh
		}
	}
	return token.Token{Type: token.NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

func (l *Lexer) readString(pos token.Position) token.Token {
	l.readChar() // consume opening quote
	var sb strings.Builder
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == 0 {
		l.addError("unterminated string literal")
	} else {
		l.readChar() // consume closing quote
	}
	return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
}

func (l *Lexer) readTemporal(pos token.Position) token.Token {
	l.readChar() // '@'
	l.readChar() // '"'
	start := l.pos
	for l.ch != '"' && l.ch != 0 {
		l.readChar()
	}
	raw := l.input[start:l.pos]
	if l.ch == 0 {
		l.addError("unterminated temporal literal")
	} else {
		l.readChar()
	}
	return token.Token{Type: token.TEMPORAL, Literal: raw, Pos: pos}
}

// readIdentOrKeyword implements the scope-sensitive greedy longest-match
// multi-word identifier recognition. Matching against the
// candidate set is case-insensitive (mirroring how reserved words are
// declared lowercase while scope names may be mixed case), but the token's
// literal preserves the original casing as written in the source.
func (l *Lexer) readIdentOrKeyword(pos token.Position) token.Token {
	first := l.readWord()
	canon, consumed := l.tryExtendName(first)
	if consumed > 0 {
		return token.Token{Type: identTypeFor(canon), Literal: canon, Pos: pos}
	}
	return token.Token{Type: identTypeFor(first), Literal: first, Pos: pos}
}

func identTypeFor(canon string) token.Type {
	if t, ok := token.LookupKeyword(strings.ToLower(canon)); ok {
		return t
	}
	return token.IDENT
}

// readWord consumes one run of word characters (the lexer cursor must be
// sitting on a word-start rune on entry).
func (l *Lexer) readWord() string {
	start := l.pos
	for isWordPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// tryExtendName attempts to greedily extend the already-consumed first word
// into the longest registered multi-word name, by speculatively scanning
// ahead over "<space>word" and "<punct>word" continuations and checking the
// accumulated canonical string against the candidate set after every step.
// It commits to (consumes) the longest prefix of the remaining input that
// matches a registered candidate; on no match it leaves the cursor where
// readWord() left it (after the first word only).
func (l *Lexer) tryExtendName(first string) (string, int) {
	candidates := l.names[strings.ToLower(first)]
	if len(candidates) == 0 {
		return first, 0
	}

	// Snapshot lexer position so we can roll back to the best match.
	type state struct {
		pos, readPos, line, column int
		ch                         rune
	}
	save := state{l.pos, l.readPos, l.line, l.column, l.ch}

	best := ""
	bestState := save

	wordsLower := []string{strings.ToLower(first)}
	wordsOrig := []string{first}
	for {
		matchedAny := false
		for _, cand := range candidates {
			if len(cand) > len(wordsLower) && equalPrefix(cand, wordsLower) {
				matchedAny = true
			}
			if len(cand) == len(wordsLower) && equalPrefix(cand, wordsLower) {
				best = joinCanonical(wordsOrig)
				bestState = state{l.pos, l.readPos, l.line, l.column, l.ch}
			}
		}
		if !matchedAny {
			break
		}
		next, ok := l.peekNextNameToken()
		if !ok {
			break
		}
		wordsLower = append(wordsLower, strings.ToLower(next))
		wordsOrig = append(wordsOrig, next)
	}

	if best == "" {
		l.pos, l.readPos, l.line, l.column, l.ch = save.pos, save.readPos, save.line, save.column, save.ch
		return first, 0
	}
	l.pos, l.readPos, l.line, l.column, l.ch = bestState.pos, bestState.readPos, bestState.line, bestState.column, bestState.ch
	return best, len(best)
}

// peekNextNameToken consumes (advancing the real cursor) either a single
// " word" continuation or a punctuation-token continuation, returning the
// token text consumed. Returns ok=false and performs no mutation when the
// next input cannot continue a multi-word name.
func (l *Lexer) peekNextNameToken() (string, bool) {
	if l.ch == ' ' && isWordStart(l.peekChar()) {
		l.readChar() // consume the space
		return l.readWord(), true
	}
	if namePunct[l.ch] && isWordStart(l.peekChar()) {
		p := l.ch
		l.readChar()
		return string(p), true
	}
	return "", false
}

func equalPrefix(cand, words []string) bool {
	if len(words) > len(cand) {
		return false
	}
	for i, w := range words {
		if cand[i] != w {
			return false
		}
	}
	return true
}

// joinCanonical renders the canonical multi-word name form: words joined
// by single spaces, punctuation tokens with no surrounding space.
func joinCanonical(words []string) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 && !(len(w) == 1 && namePunct[rune(w[0])]) && !(len(words[i-1]) == 1 && namePunct[rune(words[i-1][0])]) {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	return b.String()
}

// buildNameIndex groups multi-word candidate names by their first word.
func buildNameIndex(names []string) map[string][][]string {
	idx := make(map[string][][]string)
	for _, n := range names {
		words := tokenizeCanonical(n)
		if len(words) < 2 {
			continue // single-word names need no extension
		}
		first := words[0]
		idx[first] = append(idx[first], words)
	}
	return idx
}

// tokenizeCanonical splits a canonical name string (as produced by
// joinCanonical, or as supplied by a caller for a scope name) back into its
// word/punctuation tokens.
func tokenizeCanonical(s string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}
	for _, r := range s {
		if r == ' ' {
			flush()
			continue
		}
		if namePunct[r] {
			flush()
			words = append(words, string(r))
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return words
}

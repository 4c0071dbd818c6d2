// Package parser implements the FEEL parser: a hand-written
// recursive-descent, precedence-climbing parser over the lexer's
// NextToken() stream, with one entry point per grammar start symbol
// (textual expression, unary tests, context, and range), each re-entrant
// and parameterised by the caller's current scope names, mirroring the
// lexer's own re-entrancy requirement.
//
// Error semantics: the parser reports the first syntax error encountered,
// with no recovery; later syntax errors in the same input are never
// reported.
package parser

import (
	"fmt"
	"strings"

	"github.com/dmntk-go/dmntk/internal/lexer"
	"github.com/dmntk-go/dmntk/internal/srcerr"
	"github.com/dmntk-go/dmntk/pkg/ast"
	"github.com/dmntk-go/dmntk/pkg/token"
)

type parser struct {
	input     string
	l         *lexer.Lexer
	cur, peek token.Token
	err       *srcerr.SourceError
}

// abort unwinds the recursive descent to the entry point once the first
// syntax error has been recorded; see (*parser).fail.
type abort struct{ err *srcerr.SourceError }

func newParser(input string, scopeNames []string) *parser {
	p := &parser{input: input, l: lexer.New(input, scopeNames)}
	p.next()
	p.next()
	return p
}

func (p *parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *parser) fail(msg string) {
	if p.err == nil {
		p.err = srcerr.New(srcerr.Parser, p.cur.Pos, msg, p.input, "")
	}
	panic(abort{p.err})
}

func (p *parser) expect(t token.Type) token.Token {
	if p.cur.Type != t {
		p.fail(fmt.Sprintf("expected %s, got %s %q", t, p.cur.Type, p.cur.Literal))
	}
	tok := p.cur
	p.next()
	return tok
}

func (p *parser) run(f func() ast.Expr) (result ast.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ab, ok := r.(abort); ok {
				err = ab.err
				return
			}
			panic(r)
		}
	}()
	result = f()
	if p.err != nil {
		return nil, p.err
	}
	return result, nil
}

// ParseExpression parses a standalone FEEL textual expression.
func ParseExpression(input string, scopeNames []string) (ast.Expr, error) {
	p := newParser(input, scopeNames)
	return p.run(func() ast.Expr {
		e := p.parseExpr()
		if p.cur.Type != token.EOF {
			p.fail("unexpected trailing input")
		}
		return e
	})
}

// ParseBoxedExpression parses a boxed-expression cell (a decision literal
// expression, function literal, or decision-table body); syntactically
// identical to a textual expression at the top level.
func ParseBoxedExpression(input string, scopeNames []string) (ast.Expr, error) {
	return ParseExpression(input, scopeNames)
}

// ParseContext parses a standalone context literal `{k: v, ...}`.
func ParseContext(input string, scopeNames []string) (*ast.ContextLit, error) {
	p := newParser(input, scopeNames)
	e, err := p.run(func() ast.Expr {
		if p.cur.Type != token.LBRACE {
			p.fail("expected context literal")
		}
		c := p.parseContext(p.cur.Pos)
		if p.cur.Type != token.EOF {
			p.fail("unexpected trailing input")
		}
		return c
	})
	if err != nil {
		return nil, err
	}
	return e.(*ast.ContextLit), nil
}

// ParseRange parses a standalone range literal `[a..b]`.
func ParseRange(input string, scopeNames []string) (*ast.RangeLit, error) {
	p := newParser(input, scopeNames)
	e, err := p.run(func() ast.Expr {
		r := p.parseExpr()
		if p.cur.Type != token.EOF {
			p.fail("unexpected trailing input")
		}
		return r
	})
	if err != nil {
		return nil, err
	}
	rng, ok := e.(*ast.RangeLit)
	if !ok {
		return nil, srcerr.New(srcerr.Parser, e.Pos(), "expected a range literal", input, "")
	}
	return rng, nil
}

// ParseUnaryTests parses a decision-table cell's unary-test list, the
// entry point distinct from ParseExpression because of the bare `-`
// wildcard and the implicit `?` comparisons.
func ParseUnaryTests(input string, scopeNames []string) (*ast.UnaryTests, error) {
	p := newParser(input, scopeNames)
	e, err := p.run(func() ast.Expr {
		u := p.parseUnaryTests()
		if p.cur.Type != token.EOF {
			p.fail("unexpected trailing input")
		}
		return u
	})
	if err != nil {
		return nil, err
	}
	return e.(*ast.UnaryTests), nil
}

// --- precedence ladder (lowest to highest) ---
// if/then/else, for/return, some/every satisfies, or, and, comparison
// (=, !=, <, <=, >, >=, between, in), additive, multiplicative,
// exponentiation (right-assoc), unary -/not, path (.), filter ([...]),
// call (), instance-of, atom.

func (p *parser) parseExpr() ast.Expr { return p.parseIf() }

func (p *parser) parseIf() ast.Expr {
	if p.cur.Type != token.IF {
		return p.parseFor()
	}
	pos := p.cur.Pos
	p.next()
	cond := p.parseExpr()
	p.expect(token.THEN)
	then := p.parseExpr()
	p.expect(token.ELSE)
	els := p.parseExpr()
	return ast.NewIfExpr(pos, cond, then, els)
}

func (p *parser) parseFor() ast.Expr {
	if p.cur.Type != token.FOR {
		return p.parseQuantified()
	}
	pos := p.cur.Pos
	p.next()
	clauses := p.parseForClauses()
	p.expect(token.RETURN)
	body := p.parseExpr()
	return ast.NewForExpr(pos, clauses, body)
}

func (p *parser) parseQuantified() ast.Expr {
	if p.cur.Type != token.SOME && p.cur.Type != token.EVERY {
		return p.parseOr()
	}
	every := p.cur.Type == token.EVERY
	pos := p.cur.Pos
	p.next()
	clauses := p.parseForClauses()
	p.expect(token.SATISFIES)
	sat := p.parseExpr()
	return ast.NewQuantifiedExpr(pos, every, clauses, sat)
}

func (p *parser) parseForClauses() []ast.ForClause {
	var clauses []ast.ForClause
	for {
		name := p.expect(token.IDENT).Literal
		p.expect(token.IN)
		iter := p.parseExpr()
		clauses = append(clauses, ast.ForClause{Name: name, Iterable: iter})
		if p.cur.Type != token.COMMA {
			break
		}
		p.next()
	}
	return clauses
}

func (p *parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.cur.Type == token.OR {
		pos := p.cur.Pos
		p.next()
		right := p.parseAnd()
		left = ast.NewBinaryExpr(pos, "or", left, right)
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	left := p.parseComparison()
	for p.cur.Type == token.AND {
		pos := p.cur.Pos
		p.next()
		right := p.parseComparison()
		left = ast.NewBinaryExpr(pos, "and", left, right)
	}
	return left
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	switch p.cur.Type {
	case token.EQ, token.NEQ, token.LT, token.LE, token.GT, token.GE:
		op := opString(p.cur.Type)
		pos := p.cur.Pos
		p.next()
		right := p.parseAdditive()
		return ast.NewBinaryExpr(pos, op, left, right)
	case token.BETWEEN:
		pos := p.cur.Pos
		p.next()
		lo := p.parseAdditive()
		p.expect(token.AND)
		hi := p.parseAdditive()
		return ast.NewBetweenExpr(pos, left, lo, hi)
	case token.IN:
		pos := p.cur.Pos
		p.next()
		if p.cur.Type == token.LPAREN {
			// `x in (test1, test2, ...)`: disjunction of unary tests.
			p.next()
			tests := p.parseUnaryTestListAsExprs()
			p.expect(token.RPAREN)
			return ast.NewBinaryExpr(pos, "in-any", left, ast.NewExprList(pos, tests))
		}
		right := p.parseAdditive()
		return ast.NewBinaryExpr(pos, "in", left, right)
	}
	return left
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		op := opString(p.cur.Type)
		pos := p.cur.Pos
		p.next()
		right := p.parseMultiplicative()
		left = ast.NewBinaryExpr(pos, op, left, right)
	}
	return left
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseExponent()
	for p.cur.Type == token.STAR || p.cur.Type == token.SLASH {
		op := opString(p.cur.Type)
		pos := p.cur.Pos
		p.next()
		right := p.parseExponent()
		left = ast.NewBinaryExpr(pos, op, left, right)
	}
	return left
}

func (p *parser) parseExponent() ast.Expr {
	left := p.parseUnary()
	if p.cur.Type == token.POW {
		pos := p.cur.Pos
		p.next()
		right := p.parseExponent() // right-associative
		return ast.NewBinaryExpr(pos, "**", left, right)
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	if p.cur.Type == token.MINUS {
		pos := p.cur.Pos
		p.next()
		x := p.parseUnary()
		return ast.NewUnaryExpr(pos, "-", x)
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.cur.Type {
		case token.DOT:
			pos := p.cur.Pos
			p.next()
			name := p.expectFieldName()
			expr = ast.NewPathExpr(pos, expr, name)
		case token.LBRACKET:
			pos := p.cur.Pos
			p.next()
			filter := p.parseExpr()
			p.expect(token.RBRACKET)
			expr = ast.NewFilterExpr(pos, expr, filter)
		case token.LPAREN:
			pos := p.cur.Pos
			p.next()
			args := p.parseArgs()
			p.expect(token.RPAREN)
			expr = ast.NewCallExpr(pos, expr, args)
		case token.INSTANCEOF:
			pos := p.cur.Pos
			p.next()
			typeName := p.parseTypeName()
			expr = ast.NewInstanceOfExpr(pos, expr, typeName)
		default:
			return collapseQualified(expr)
		}
	}
}

// collapseQualified rewrites a dotted chain of plain names (a.b.c, built by
// parsePostfix as nested PathExprs) into a single QualifiedName, per ast.go's
// documented distinction between PathExpr (arbitrary base) and QualifiedName
// (every segment a bare identifier). Any chain containing a filter or call
// step is left as PathExpr/FilterExpr/CallExpr untouched.
func collapseQualified(e ast.Expr) ast.Expr {
	var parts []string
	cur := e
	for {
		switch v := cur.(type) {
		case *ast.PathExpr:
			parts = append([]string{v.Name}, parts...)
			cur = v.X
			continue
		case *ast.Name:
			if cur == e {
				return e
			}
			parts = append([]string{v.Value}, parts...)
			return ast.NewQualifiedName(e.Pos(), parts)
		default:
			return e
		}
	}
}

func (p *parser) expectFieldName() string {
	if p.cur.Type == token.IDENT {
		v := p.cur.Literal
		p.next()
		return v
	}
	lit := p.cur.Literal
	if lit == "" {
		p.fail("expected field name after '.'")
	}
	p.next()
	return lit
}

func (p *parser) parseArgs() []ast.Arg {
	var args []ast.Arg
	if p.cur.Type == token.RPAREN {
		return args
	}
	for {
		args = append(args, p.parseArg())
		if p.cur.Type != token.COMMA {
			break
		}
		p.next()
	}
	return args
}

func (p *parser) parseArg() ast.Arg {
	if p.cur.Type == token.IDENT && p.peek.Type == token.COLON {
		name := p.cur.Literal
		p.next()
		p.next()
		return ast.Arg{Name: name, Value: p.parseExpr()}
	}
	return ast.Arg{Value: p.parseExpr()}
}

func (p *parser) parseTypeName() string {
	words := []string{p.consumeTypeWord()}
	for p.cur.Type == token.AND {
		p.next()
		words = append(words, "and", p.consumeTypeWord())
	}
	for p.cur.Type == token.IDENT {
		words = append(words, p.consumeTypeWord())
	}
	return strings.Join(words, " ")
}

func (p *parser) consumeTypeWord() string {
	if p.cur.Type != token.IDENT {
		p.fail("expected type name after 'instance of'")
	}
	v := p.cur.Literal
	p.next()
	return v
}

func (p *parser) parsePrimary() ast.Expr {
	pos := p.cur.Pos
	switch p.cur.Type {
	case token.NUMBER:
		lit := p.cur.Literal
		p.next()
		return ast.NewNumberLit(pos, lit)
	case token.STRING:
		v := p.cur.Literal
		p.next()
		return ast.NewStringLit(pos, v)
	case token.TEMPORAL:
		v := p.cur.Literal
		p.next()
		return ast.NewTemporalLit(pos, v)
	case token.TRUE:
		p.next()
		return ast.NewBoolLit(pos, true)
	case token.FALSE:
		p.next()
		return ast.NewBoolLit(pos, false)
	case token.NULL:
		p.next()
		return ast.NewNullLit(pos)
	case token.NOT:
		p.next()
		callee := ast.NewName(pos, "not")
		if p.cur.Type == token.LPAREN {
			p.next()
			args := p.parseArgs()
			p.expect(token.RPAREN)
			return ast.NewCallExpr(pos, callee, args)
		}
		x := p.parseUnary()
		return ast.NewCallExpr(pos, callee, []ast.Arg{{Value: x}})
	case token.IDENT:
		name := p.cur.Literal
		p.next()
		return ast.NewName(pos, name)
	case token.FUNCTION:
		p.next()
		p.expect(token.LPAREN)
		var params []string
		if p.cur.Type != token.RPAREN {
			for {
				params = append(params, p.expect(token.IDENT).Literal)
				if p.cur.Type != token.COMMA {
					break
				}
				p.next()
			}
		}
		p.expect(token.RPAREN)
		body := p.parseExpr()
		return ast.NewFunctionLit(pos, params, body)
	case token.LBRACKET, token.LPAREN:
		return p.parseBracketedOrGroup(pos)
	case token.LBRACE:
		return p.parseContext(pos)
	default:
		p.fail("unexpected token " + p.cur.Type.String())
		return nil
	}
}

// parseBracketedOrGroup handles every construct that opens with `[` or `(`:
// an empty or comma-separated list literal, a range literal (whichever
// bracket pair closes it, independent of which opened it), or a parenthesised
// grouping expression.
func (p *parser) parseBracketedOrGroup(pos token.Position) ast.Expr {
	openType := p.cur.Type
	p.next()
	if openType == token.LBRACKET && p.cur.Type == token.RBRACKET {
		p.next()
		return ast.NewListLit(pos, nil)
	}
	first := p.parseExpr()
	if p.cur.Type == token.COMMA {
		elems := []ast.Expr{first}
		for p.cur.Type == token.COMMA {
			p.next()
			elems = append(elems, p.parseExpr())
		}
		p.expect(token.RBRACKET)
		return ast.NewListLit(pos, elems)
	}
	if p.cur.Type == token.DOTDOT {
		p.next()
		high := p.parseExpr()
		loClosed := openType == token.LBRACKET
		var hiClosed bool
		switch p.cur.Type {
		case token.RBRACKET:
			hiClosed = true
		case token.RPAREN:
			hiClosed = false
		default:
			p.fail("expected ']' or ')' to close range literal")
		}
		p.next()
		return ast.NewRangeLit(pos, first, high, loClosed, hiClosed)
	}
	if openType == token.LBRACKET {
		p.expect(token.RBRACKET)
		return ast.NewListLit(pos, []ast.Expr{first})
	}
	p.expect(token.RPAREN)
	return first
}

func (p *parser) parseContext(pos token.Position) ast.Expr {
	p.expect(token.LBRACE)
	var entries []ast.ContextEntry
	if p.cur.Type != token.RBRACE {
		for {
			key := p.parseContextKey()
			p.expect(token.COLON)
			val := p.parseExpr()
			entries = append(entries, ast.ContextEntry{Key: key, Value: val})
			if p.cur.Type != token.COMMA {
				break
			}
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return ast.NewContextLit(pos, entries)
}

func (p *parser) parseContextKey() string {
	switch p.cur.Type {
	case token.IDENT:
		v := p.cur.Literal
		p.next()
		return v
	case token.STRING:
		v := p.cur.Literal
		p.next()
		return v
	default:
		p.fail("expected context key")
		return ""
	}
}

// parseUnaryTests parses a decision-table cell's test list: a bare `-`
// wildcard, an optional `not(...)` wrapper, and a comma-separated list of
// tests each compared implicitly against `?`.
func (p *parser) parseUnaryTests() *ast.UnaryTests {
	pos := p.cur.Pos
	if p.cur.Type == token.MINUS && p.peek.Type == token.EOF {
		p.next()
		return ast.NewUnaryTests(pos, false, nil, true)
	}
	if p.cur.Type == token.NOT && p.peek.Type == token.LPAREN {
		p.next()
		p.next()
		tests := p.parseUnaryTestListAsExprs()
		p.expect(token.RPAREN)
		return ast.NewUnaryTests(pos, true, tests, false)
	}
	tests := p.parseUnaryTestListAsExprs()
	return ast.NewUnaryTests(pos, false, tests, false)
}

func (p *parser) parseUnaryTestListAsExprs() []ast.Expr {
	var tests []ast.Expr
	tests = append(tests, p.parseUnaryTest())
	for p.cur.Type == token.COMMA {
		p.next()
		tests = append(tests, p.parseUnaryTest())
	}
	return tests
}

func (p *parser) parseUnaryTest() ast.Expr {
	pos := p.cur.Pos
	questionMark := ast.NewName(pos, "?")
	switch p.cur.Type {
	case token.LT, token.LE, token.GT, token.GE, token.NEQ:
		op := opString(p.cur.Type)
		p.next()
		val := p.parseAdditive()
		return ast.NewBinaryExpr(pos, op, questionMark, val)
	default:
		val := p.parseExpr()
		if r, ok := val.(*ast.RangeLit); ok {
			return ast.NewBinaryExpr(pos, "in", questionMark, r)
		}
		return ast.NewBinaryExpr(pos, "=", questionMark, val)
	}
}

func opString(t token.Type) string {
	switch t {
	case token.EQ:
		return "="
	case token.NEQ:
		return "!="
	case token.LT:
		return "<"
	case token.LE:
		return "<="
	case token.GT:
		return ">"
	case token.GE:
		return ">="
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.STAR:
		return "*"
	case token.SLASH:
		return "/"
	case token.POW:
		return "**"
	default:
		return t.String()
	}
}

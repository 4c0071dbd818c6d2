// Package srcerr formats the build-time error channel: structured
// ParserError/FeelEvaluatorError values with source, position, and a
// caret pointing at the offending column. Never converted to an in-band
// Value (that is what internal/value's Null(trace=...) is for).
//
// The formatting style (line-numbered source, caret indicator, optional
// ANSI color, multi-error aggregation) is the conventional shape for a
// compiler-style diagnostic.
package srcerr

import (
	"fmt"
	"strings"

	"github.com/dmntk-go/dmntk/pkg/token"
)

// Kind distinguishes which build-time stage raised the error
// (ParserError, FeelEvaluatorError, ...).
type Kind string

const (
	Lexer     Kind = "LexerError"
	Parser    Kind = "ParserError"
	Evaluator Kind = "FeelEvaluatorError"
	Model     Kind = "ModelError"
)

// SourceError is a single build-time error with position and source context.
type SourceError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New creates a SourceError.
func New(kind Kind, pos token.Position, message, source, file string) *SourceError {
	return &SourceError{Kind: kind, Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format renders the error with a single line of source context and a caret
// pointing at e.Pos.Column. If color is true, ANSI escapes highlight the
// caret and message.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s:%s\n", e.Kind, e.File, e.Pos))
	} else {
		sb.WriteString(fmt.Sprintf("%s at %s\n", e.Kind, e.Pos))
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *SourceError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a slice of errors, numbering them when there is more than
// one.
func FormatAll(errs []*SourceError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("build failed with %d error(s):\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

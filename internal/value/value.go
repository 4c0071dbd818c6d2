// Package value implements the FEEL runtime value domain: the tagged union
// of values a FEEL expression can produce, its pretty-printer, JSON-ify,
// ternary equality, and total comparison operations.
package value

import "github.com/dmntk-go/dmntk/internal/decimal"

// Kind discriminates the tagged union of runtime values. Equal and Compare
// check that both operands share a Kind before type-switching on the
// concrete struct.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindDate
	KindTime
	KindDateTime
	KindYearsMonthsDuration
	KindDaysTimeDuration
	KindList
	KindContext
	KindRange
	KindFunction
	KindType
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "date and time"
	case KindYearsMonthsDuration:
		return "years and months duration"
	case KindDaysTimeDuration:
		return "days and time duration"
	case KindList:
		return "list"
	case KindContext:
		return "context"
	case KindRange:
		return "range"
	case KindFunction:
		return "function"
	case KindType:
		return "type"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Value is the interface every FEEL runtime value implements.
type Value interface {
	Kind() Kind
	// String renders the FEEL canonical literal form.
	String() string
}

// Null is the FEEL null value, optionally carrying a diagnostic trace.
// Two Null values are always FEEL-equal to each other regardless of trace
// content; the trace is diagnostic only.
type Null struct {
	Trace string
}

func (Null) Kind() Kind { return KindNull }

func (n Null) String() string {
	if n.Trace == "" {
		return "null"
	}
	return "null(" + n.Trace + ")"
}

// NullOf builds a Null carrying a formatted trace.
func NullOf(format string, args ...any) Null {
	return Null{Trace: sprintf(format, args...)}
}

// Error is the "error-as-value" variant: a Null-like sink that
// additionally carries a stable error code, used where a BIF must let a
// caller distinguish error *kinds* rather than only read a free-text trace.
// It propagates like Null: IsNullish reports true for it.
type Error struct {
	Code    string
	Message string
}

func (Error) Kind() Kind { return KindError }

func (e Error) String() string {
	if e.Message == "" {
		return "error(" + e.Code + ")"
	}
	return "error(" + e.Code + ": " + e.Message + ")"
}

// Boolean wraps a FEEL boolean.
type Boolean struct{ V bool }

func (Boolean) Kind() Kind      { return KindBoolean }
func (b Boolean) String() string {
	if b.V {
		return "true"
	}
	return "false"
}

// Number wraps a decimal kernel value.
type Number struct{ D decimal.Decimal }

func (Number) Kind() Kind       { return KindNumber }
func (n Number) String() string { return n.D.String() }

// NumberFromInt64 is a convenience constructor.
func NumberFromInt64(v int64) Number { return Number{D: decimal.FromInt64(v)} }

// String wraps a FEEL string. Named Str to avoid colliding with the method.
type Str struct{ V string }

func (Str) Kind() Kind      { return KindString }
func (s Str) String() string { return quoteString(s.V) }

// IsNullish reports whether v is Null or the Error sink variant: the two
// states that propagate through arithmetic and most BIFs unchanged.
func IsNullish(v Value) bool {
	switch v.(type) {
	case Null, Error:
		return true
	default:
		return false
	}
}

// AsBool extracts a Go bool from a Boolean value, reporting ok=false for any
// other kind (including Null).
func AsBool(v Value) (b bool, ok bool) {
	if bv, isBool := v.(Boolean); isBool {
		return bv.V, true
	}
	return false, false
}

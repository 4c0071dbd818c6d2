// Package decimal implements the fixed-precision decimal kernel FEEL's
// number type needs: 34 significant digits of coefficient, IEEE-754-2008
// decimal128-style half-even rounding, and the ±infinity/NaN sentinels a
// correctly-rounded decimal arithmetic needs internally (NaN never escapes
// to a FEEL value; callers convert it to a typed error).
//
// The coefficient arithmetic is delegated to github.com/shopspring/decimal,
// an arbitrary-precision (big.Int-backed) decimal type; this package is a
// thin wrapper that clamps every result back to 34 significant digits using
// RoundBank (banker's / half-even rounding) and tracks the exponent range
// and ±infinity/NaN sentinels the library itself does not model.
package decimal

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	shopspring "github.com/shopspring/decimal"
)

// Precision is the number of significant decimal digits carried by every
// Decimal value, matching the IEEE-754-2008 decimal128 interchange format.
const Precision = 34

// Exponent range allowed by the decimal128 interchange format.
const (
	MinExponent = -6111
	MaxExponent = 6176
)

// form discriminates the sentinel states a Decimal can be in.
type form uint8

const (
	formFinite form = iota
	formInfinite
	formNaN
)

// Decimal is a signed, fixed-precision decimal number.
type Decimal struct {
	d    shopspring.Decimal
	frm  form
	sign int // sign of an infinity; unused otherwise
}

// Error is returned by kernel operations that cannot produce a Decimal
// (parse failure, division by zero, modulo by zero). It never panics or
// escapes as a Go panic; every operation below is total.
type Error struct {
	Op      string
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Message) }

func newError(op, format string, args ...any) *Error {
	return &Error{Op: op, Message: fmt.Sprintf(format, args...)}
}

// Zero is the decimal 0.
var Zero = Decimal{d: shopspring.Zero}

// Infinity returns +infinity (sign >= 0) or -infinity (sign < 0).
func Infinity(sign int) Decimal {
	s := 1
	if sign < 0 {
		s = -1
	}
	return Decimal{frm: formInfinite, sign: s}
}

// NaN returns the kernel's not-a-number sentinel. Never exposed as a FEEL
// value, see package doc.
func NaN() Decimal { return Decimal{frm: formNaN} }

// FromInt64 constructs a Decimal from a signed 64-bit integer.
func FromInt64(v int64) Decimal {
	return round(Decimal{d: shopspring.NewFromInt(v)})
}

// FromFloat64 constructs a Decimal from a float64, rounded to 34 digits.
func FromFloat64(v float64) Decimal {
	return round(Decimal{d: shopspring.NewFromFloat(v)})
}

// Parse parses a textual literal in the form
// `[-]digits[.digits][(e|E)[+-]digits]`. No leading or trailing whitespace
// is tolerated; the caller must strip it.
func Parse(s string) (Decimal, error) {
	if s == "" {
		return Decimal{}, newError("parse", "empty input")
	}
	if strings.TrimSpace(s) != s {
		return Decimal{}, newError("parse", "leading or trailing whitespace in %q", s)
	}
	d, err := shopspring.NewFromString(s)
	if err != nil {
		return Decimal{}, newError("parse", "invalid decimal literal %q", s)
	}
	return round(Decimal{d: d}), nil
}

// FromDigits builds a Decimal from an unsigned digit vector, a sign, and a
// base-10 exponent applied to the least-significant digit (a BCD-like
// constructor, matching the decimal128 "coefficient plus exponent" form).
func FromDigits(negative bool, digits []byte, exp int32) (Decimal, error) {
	if len(digits) == 0 {
		return Decimal{}, newError("from-digits", "empty digit vector")
	}
	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}
	for _, dg := range digits {
		if dg > 9 {
			return Decimal{}, newError("from-digits", "digit out of range: %d", dg)
		}
		sb.WriteByte('0' + dg)
	}
	coeff, err := shopspring.NewFromString(sb.String())
	if err != nil {
		return Decimal{}, newError("from-digits", "invalid digit vector")
	}
	return round(Decimal{d: coeff.Shift(exp)}), nil
}

// round clamps d to Precision significant digits using half-even rounding.
// A rounded result whose exponent lies above the decimal128 range becomes
// infinity; one whose exponent lies below it becomes zero.
func round(d Decimal) Decimal {
	if d.frm != formFinite {
		return d
	}
	coeff := new(big.Int).Abs(d.d.Coefficient())
	digits := len(coeff.String())
	if coeff.Sign() == 0 {
		digits = 1
	}
	if digits <= Precision {
		return d
	}
	places := int32(digits - Precision)
	rounded := d.d.RoundBank(-d.d.Exponent() - places)
	exp := rounded.Exponent()
	if exp < MinExponent {
		return Decimal{}
	}
	if exp > MaxExponent {
		return Infinity(rounded.Sign())
	}
	return Decimal{d: rounded}
}

func (a Decimal) finite() bool { return a.frm == formFinite }

// IsNaN reports whether a is the NaN sentinel.
func (a Decimal) IsNaN() bool { return a.frm == formNaN }

// IsInf reports whether a is +/- infinity.
func (a Decimal) IsInf() bool { return a.frm == formInfinite }

// Sign returns -1, 0, or 1.
func (a Decimal) Sign() int {
	switch a.frm {
	case formInfinite:
		return a.sign
	case formNaN:
		return 0
	default:
		return a.d.Sign()
	}
}

// Add returns a+b, rounded half-even to 34 digits.
func (a Decimal) Add(b Decimal) Decimal {
	if a.IsNaN() || b.IsNaN() {
		return NaN()
	}
	if a.IsInf() || b.IsInf() {
		if a.IsInf() && b.IsInf() && a.Sign() != b.Sign() {
			return NaN()
		}
		if a.IsInf() {
			return a
		}
		return b
	}
	return round(Decimal{d: a.d.Add(b.d)})
}

// Sub returns a-b.
func (a Decimal) Sub(b Decimal) Decimal { return a.Add(b.Negate()) }

// Mul returns a*b, rounded half-even to 34 digits.
func (a Decimal) Mul(b Decimal) Decimal {
	if a.IsNaN() || b.IsNaN() {
		return NaN()
	}
	if a.IsInf() || b.IsInf() {
		if a.Sign() == 0 || b.Sign() == 0 {
			return NaN()
		}
		return Infinity(a.Sign() * b.Sign())
	}
	return round(Decimal{d: a.d.Mul(b.d)})
}

// Div returns a/b. Division by zero returns an *Error; the caller (the
// value/BIF layer) is responsible for turning that into
// `Null(trace="[division] division by zero")`.
//
// Division that would need more than 34 significant digits is rounded at
// guard digits, then rounded half-even to exactly 34 digits (the classic "1/3" non-terminating
// case).
func (a Decimal) Div(b Decimal) (Decimal, error) {
	if a.IsNaN() || b.IsNaN() {
		return NaN(), nil
	}
	if b.finite() && b.d.IsZero() {
		return Decimal{}, newError("division", "division by zero")
	}
	if a.IsInf() || b.IsInf() {
		switch {
		case a.IsInf() && b.IsInf():
			return NaN(), nil
		case a.IsInf():
			return Infinity(a.Sign() * b.Sign()), nil
		default: // b.IsInf()
			return Zero, nil
		}
	}
	// Extra guard digits beyond Precision let RoundBank see the digit that
	// decides the half-even tie-break, then the final round() clamps to
	// exactly 34 significant digits. DivRound counts decimal places, so the
	// places are widened by how far the quotient's leading digit sits below
	// the units place.
	magA := a.d.Exponent() + int32(len(new(big.Int).Abs(a.d.Coefficient()).String()))
	magB := b.d.Exponent() + int32(len(new(big.Int).Abs(b.d.Coefficient()).String()))
	places := int32(Precision + 10)
	if magB > magA {
		places += magB - magA
	}
	q := a.d.DivRound(b.d, places)
	return round(Decimal{d: q}), nil
}

// Cmp returns -1, 0, or +1 comparing a and b under total numeric ordering.
// NaN does not participate in FEEL comparisons (the value layer never lets
// a NaN Decimal reach here); comparisons against NaN return 0 defensively.
func (a Decimal) Cmp(b Decimal) int {
	switch {
	case a.IsNaN() || b.IsNaN():
		return 0
	case a.IsInf() || b.IsInf():
		as, bs := a.effectiveSign(), b.effectiveSign()
		if as == bs {
			return 0
		}
		if as < bs {
			return -1
		}
		return 1
	default:
		return a.d.Cmp(b.d)
	}
}

// effectiveSign treats finite zero as 0 and infinities by their stored sign,
// used only to order +/-infinity against finite values.
func (a Decimal) effectiveSign() int {
	if a.IsInf() {
		if a.sign < 0 {
			return -2
		}
		return 2
	}
	return a.d.Sign()
}

// Equal reports exact numeric equality (−0 == 0).
func (a Decimal) Equal(b Decimal) bool {
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	return a.Cmp(b) == 0
}

// Negate returns -a.
func (a Decimal) Negate() Decimal {
	switch a.frm {
	case formInfinite:
		return Infinity(-a.sign)
	case formNaN:
		return a
	default:
		return Decimal{d: a.d.Neg()}
	}
}

// Abs returns |a|.
func (a Decimal) Abs() Decimal {
	if a.Sign() < 0 {
		return a.Negate()
	}
	return a
}

// Floor returns the largest integer <= a.
func (a Decimal) Floor() Decimal {
	if !a.finite() {
		return a
	}
	return round(Decimal{d: a.d.Floor()})
}

// Ceil returns the smallest integer >= a.
func (a Decimal) Ceil() Decimal {
	if !a.finite() {
		return a
	}
	return round(Decimal{d: a.d.Ceil()})
}

// Modulo implements `x − ⌊x/y⌋·y`, so the result's sign follows the
// divisor's sign.
func (a Decimal) Modulo(b Decimal) (Decimal, error) {
	if b.finite() && b.d.IsZero() {
		return Decimal{}, newError("modulo", "modulo by zero")
	}
	q, err := a.Div(b)
	if err != nil {
		return Decimal{}, err
	}
	return a.Sub(q.Floor().Mul(b)), nil
}

// PowInt raises a to an integer power n (n may be negative).
func (a Decimal) PowInt(n int64) (Decimal, error) {
	if n == 0 {
		if a.Sign() == 0 {
			return Decimal{}, newError("power", "0^0 is undefined")
		}
		return FromInt64(1), nil
	}
	neg := n < 0
	if neg {
		n = -n
	}
	result := FromInt64(1)
	base := a
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	if neg {
		return FromInt64(1).Div(result)
	}
	return result, nil
}

// Sqrt computes the square root by Newton iteration, converged to 34
// digits. Returns an error for negative operands.
func (a Decimal) Sqrt() (Decimal, error) {
	if a.Sign() < 0 {
		return Decimal{}, newError("sqrt", "square root of negative number")
	}
	if a.Sign() == 0 {
		return Zero, nil
	}
	guess := FromFloat64(sqrtGuess(a))
	two := FromInt64(2)
	for i := 0; i < 60; i++ {
		next, err := a.Div(guess)
		if err != nil {
			return Decimal{}, err
		}
		next = guess.Add(next)
		next, err = next.Div(two)
		if err != nil {
			return Decimal{}, err
		}
		if next.Equal(guess) {
			guess = next
			break
		}
		guess = next
	}
	return guess, nil
}

func sqrtGuess(a Decimal) float64 {
	f, _ := a.d.Float64()
	if f <= 0 {
		return 1
	}
	x := f
	for i := 0; i < 30; i++ {
		x = 0.5 * (x + f/x)
	}
	return x
}

// RoundPlaces rounds a to n decimal places using half-even rounding (backs
// the `decimal(x, n)` built-in; distinct from round(), which clamps to
// Precision significant digits).
func (a Decimal) RoundPlaces(n int32) Decimal {
	if !a.finite() {
		return a
	}
	return round(Decimal{d: a.d.RoundBank(n)})
}

// RoundHalfUp rounds a to n decimal places, ties away from zero (backs the
// `round half up(n, scale)` built-in; distinct from RoundPlaces' half-even
// tie-break).
func (a Decimal) RoundHalfUp(n int32) Decimal {
	if !a.finite() {
		return a
	}
	return round(Decimal{d: a.d.Round(n)})
}

// RoundHalfDown rounds a to n decimal places, ties toward zero (the
// `round half down(n, scale)` BIF).
func (a Decimal) RoundHalfDown(n int32) Decimal {
	if !a.finite() {
		return a
	}
	truncated := a.d.Truncate(n)
	remainder := a.d.Sub(truncated).Abs()
	half := shopspring.New(5, -(n + 1))
	if remainder.GreaterThan(half) {
		return round(Decimal{d: a.d.Round(n)})
	}
	return round(Decimal{d: truncated})
}

// Ln computes the natural logarithm. Irrational, so it is bridged through
// float64 rather than carried to the full 34-digit working precision like
// the rest of the kernel.
func (a Decimal) Ln() (Decimal, error) {
	if a.Sign() <= 0 {
		return Decimal{}, newError("log", "logarithm of non-positive number")
	}
	f, _ := a.d.Float64()
	return FromFloat64(math.Log(f)), nil
}

// Exp computes e^a, bridged through float64 for the same reason as Ln.
func (a Decimal) Exp() Decimal {
	f, _ := a.d.Float64()
	return FromFloat64(math.Exp(f))
}

// IsInteger reports whether a has no fractional part.
func (a Decimal) IsInteger() bool {
	if !a.finite() {
		return false
	}
	return a.d.Equal(a.d.Truncate(0))
}

// Int64 returns the integer value of a, truncating any fractional part.
func (a Decimal) Int64() int64 {
	if !a.finite() {
		return 0
	}
	return a.d.Truncate(0).IntPart()
}

// String renders the FEEL canonical minimal decimal form: no trailing
// zeros, no leading zeros, no exponent.
func (a Decimal) String() string {
	switch a.frm {
	case formInfinite:
		if a.sign < 0 {
			return "-Infinity"
		}
		return "Infinity"
	case formNaN:
		return "NaN"
	default:
		return a.d.String()
	}
}

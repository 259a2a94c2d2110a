// Package literal defines the typed constant values a filter expression can
// carry: null, booleans, arbitrary-precision numbers, strings, calendar
// dates, instants, and lists thereof. Values are immutable once constructed
// and never coerce across kinds during comparison - the only
// cross-representation case is Number, where integer and floating forms
// that are numerically equal compare equal (1 == 1.0).
package literal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Value is a sealed interface representing the literal kinds.
// Only Null, Bool, Number, String, Date, DateTime, and List implement it.
// The marker method prevents external implementations and enables
// exhaustive type switches in the evaluator and serializer.
type Value interface {
	literalValue() // Sealed - only types in this package implement it
}

// Null represents the null literal. An explicit type (rather than a nil
// interface) keeps every Value non-nil and type-switchable.
type Null struct{}

func (Null) literalValue() {}

// Bool represents a boolean literal.
type Bool bool

func (Bool) literalValue() {}

// String represents a string literal with escapes already resolved.
type String string

func (String) literalValue() {}

// Number represents a numeric literal. It wraps a decimal so that integer
// and floating source forms keep full precision and compare by numeric
// value, not by representation.
type Number decimal.Decimal

func (Number) literalValue() {}

// Decimal returns the underlying decimal value.
func (n Number) Decimal() decimal.Decimal {
	return decimal.Decimal(n)
}

// Date represents a calendar date (no time-of-day component). Stored as
// midnight UTC; comparisons use the year/month/day triple only.
type Date time.Time

func (Date) literalValue() {}

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// DateTime represents an instant carrying its original UTC offset.
// Comparisons use the absolute instant; the offset only matters for
// rendering.
type DateTime time.Time

func (DateTime) literalValue() {}

// Time returns the underlying instant.
func (dt DateTime) Time() time.Time {
	return time.Time(dt)
}

// List represents an ordered sequence of literal values.
type List []Value

func (List) literalValue() {}

// NumberFromInt64 creates a Number from an integer.
func NumberFromInt64(n int64) Number {
	return Number(decimal.NewFromInt(n))
}

// NumberFromFloat64 creates a Number from a float.
func NumberFromFloat64(f float64) Number {
	return Number(decimal.NewFromFloat(f))
}

// NewDate creates a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Equal reports whether two values are structurally equal. Values of
// different kinds are never equal; Number compares numerically, Date by
// calendar day, DateTime by instant, List element-wise.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av.Decimal().Equal(bv.Decimal())
	case Date:
		bv, ok := b.(Date)
		return ok && sameDay(av.Time(), bv.Time())
	case DateTime:
		bv, ok := b.(DateTime)
		return ok && av.Time().Equal(bv.Time())
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two values. The boolean result reports whether the pair
// is orderable at all: only Number/Number, Date/Date, and
// DateTime/DateTime pairs are. Everything else returns (0, false) so
// callers can degrade to a policy default instead of panicking.
func Compare(a, b Value) (int, bool) {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		if !ok {
			return 0, false
		}
		return av.Decimal().Cmp(bv.Decimal()), true
	case Date:
		bv, ok := b.(Date)
		if !ok {
			return 0, false
		}
		return compareDay(av.Time(), bv.Time()), true
	case DateTime:
		bv, ok := b.(DateTime)
		if !ok {
			return 0, false
		}
		at, bt := av.Time(), bv.Time()
		switch {
		case at.Before(bt):
			return -1, true
		case at.After(bt):
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// Render produces the query-text form of a value: numbers and booleans
// print bare, dates and datetimes print as single-quoted ISO-8601 text
// with a cast suffix, strings print single-quoted with escapes, null
// prints bare, and lists print bracketed. Best-effort inverse of Cast.
func Render(v Value) string {
	switch val := v.(type) {
	case Null:
		return "null"
	case Bool:
		if val {
			return "true"
		}
		return "false"
	case Number:
		return val.Decimal().String()
	case String:
		return quote(string(val))
	case Date:
		return quote(val.Time().Format(dateLayout)) + castSep + castDate
	case DateTime:
		return quote(val.Time().Format(time.RFC3339)) + castSep + castDateTime
	case List:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = Render(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

// quote wraps s in single quotes, escaping backslashes and embedded
// quotes so the result re-parses to the same string.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func compareDay(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case ad.Before(bd):
		return -1
	case ad.After(bd):
		return 1
	default:
		return 0
	}
}

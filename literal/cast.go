package literal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout      = "2006-01-02"
	naiveTimeLayout = "2006-01-02T15:04:05"

	castSep      = "::"
	castDate     = "DATE"
	castDateTime = "DATETIME"
)

// CastError reports raw token text that matches no literal form, or a
// date/datetime body that fails calendar validation.
type CastError struct {
	Raw    string // the raw token text as written in the query
	Reason string
}

// Error implements the error interface.
func (e *CastError) Error() string {
	return fmt.Sprintf("cannot cast %q: %s", e.Raw, e.Reason)
}

// IsCastError returns true if the error is a CastError.
// Uses errors.As to handle wrapped errors.
func IsCastError(err error) bool {
	var ce *CastError
	return errors.As(err, &ce)
}

// Cast converts raw token text into a Value, trying forms in fixed
// priority: list, boolean, null, string (with optional ::DATE/::DATETIME
// suffix), number. Exactly one form can match a given token; no match is
// a CastError, never a silent null.
func Cast(raw string) (Value, error) {
	raw = strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(raw, "["):
		return castList(raw)
	case strings.EqualFold(raw, "true"):
		return Bool(true), nil
	case strings.EqualFold(raw, "false"):
		return Bool(false), nil
	case strings.EqualFold(raw, "null"):
		return Null{}, nil
	case strings.HasPrefix(raw, "'"):
		return castString(raw)
	default:
		return castNumber(raw)
	}
}

// castList splits the bracketed body on commas outside single-quoted
// runs and casts each item independently with the same rules. "[]" is a
// valid empty list.
func castList(raw string) (Value, error) {
	if !strings.HasSuffix(raw, "]") {
		return nil, &CastError{Raw: raw, Reason: "unterminated list"}
	}

	inner := raw[1 : len(raw)-1]
	if strings.TrimSpace(inner) == "" {
		return List{}, nil
	}

	items := splitListItems(inner)
	list := make(List, 0, len(items))
	for i, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, &CastError{Raw: raw, Reason: fmt.Sprintf("empty list item at position %d", i)}
		}
		val, err := Cast(item)
		if err != nil {
			return nil, &CastError{Raw: raw, Reason: fmt.Sprintf("list item %d: %v", i, err)}
		}
		list = append(list, val)
	}
	return list, nil
}

// splitListItems splits on commas, treating commas inside a matched
// single-quoted run as item text rather than separators.
func splitListItems(s string) []string {
	var items []string
	var sb strings.Builder
	inQuote := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(s):
			// Escapes are resolved by the item's own cast; keep them verbatim.
			sb.WriteByte(c)
			sb.WriteByte(s[i+1])
			i++
		case c == '\'':
			inQuote = !inQuote
			sb.WriteByte(c)
		case c == ',' && !inQuote:
			items = append(items, sb.String())
			sb.Reset()
		default:
			sb.WriteByte(c)
		}
	}
	items = append(items, sb.String())
	return items
}

// castString extracts a single-quoted body, resolving \\ and \' escapes,
// and applies an optional ::DATE or ::DATETIME suffix. The suffix
// keywords are exact: they are part of the wire grammar.
func castString(raw string) (Value, error) {
	body, rest, err := unquote(raw)
	if err != nil {
		return nil, &CastError{Raw: raw, Reason: err.Error()}
	}

	if rest == "" {
		return String(body), nil
	}
	suffix, ok := strings.CutPrefix(rest, castSep)
	if !ok {
		return nil, &CastError{Raw: raw, Reason: "unexpected text after closing quote"}
	}

	switch suffix {
	case castDate:
		t, err := time.Parse(dateLayout, body)
		if err != nil {
			return nil, &CastError{Raw: raw, Reason: fmt.Sprintf("invalid date %q", body)}
		}
		return Date(t), nil
	case castDateTime:
		t, err := parseDateTime(body)
		if err != nil {
			return nil, &CastError{Raw: raw, Reason: fmt.Sprintf("invalid datetime %q", body)}
		}
		return DateTime(t), nil
	default:
		return nil, &CastError{Raw: raw, Reason: fmt.Sprintf("unknown cast suffix %q", suffix)}
	}
}

// unquote scans a single-quoted run starting at raw[0] and returns the
// unescaped body plus whatever follows the closing quote.
func unquote(raw string) (body, rest string, err error) {
	var sb strings.Builder
	for i := 1; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '\\':
			if i+1 >= len(raw) {
				return "", "", fmt.Errorf("unterminated string")
			}
			next := raw[i+1]
			if next == '\\' || next == '\'' {
				sb.WriteByte(next)
			} else {
				// Unknown escapes pass through verbatim.
				sb.WriteByte(c)
				sb.WriteByte(next)
			}
			i++
		case '\'':
			return sb.String(), raw[i+1:], nil
		default:
			sb.WriteByte(c)
		}
	}
	return "", "", fmt.Errorf("unterminated string")
}

// ParseDate parses ISO-8601 calendar-date text ("2006-01-02") with
// strict calendar validation.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date(t), nil
}

// ParseDateTime parses RFC 3339 text, or a naive ISO-8601 form without
// an offset which is taken as UTC.
func ParseDateTime(s string) (DateTime, error) {
	t, err := parseDateTime(s)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime(t), nil
}

// parseDateTime accepts RFC 3339 text, or a naive ISO-8601 form without
// an offset which is taken as UTC.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(naiveTimeLayout, s)
}

// castNumber parses an optionally signed decimal with optional fraction
// and exponent. A bare leading ".5" means "0.5".
func castNumber(raw string) (Value, error) {
	if !validNumber(raw) {
		return nil, &CastError{Raw: raw, Reason: "no literal form matches"}
	}

	s := raw
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	} else if strings.HasPrefix(s, "-.") {
		s = "-0" + s[1:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, &CastError{Raw: raw, Reason: "invalid number"}
	}
	return Number(d), nil
}

// validNumber checks the number grammar: optional '-', digits with
// optional '.', optional exponent, at least one mantissa digit.
func validNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}

	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

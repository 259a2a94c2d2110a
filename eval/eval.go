package eval

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/filtq/filtq/literal"
	"github.com/filtq/filtq/query"
)

// Condition evaluates one leaf condition against a record. A missing
// field or non-traversable intermediate resolves to null, and every type
// mismatch degrades to false: evaluation never panics and never raises.
func Condition(cond query.Condition, rec Record) bool {
	var raw any
	var found bool
	if rec != nil {
		raw, found = rec.Lookup(cond.Path)
	}

	switch cond.Op {
	case query.OpEq:
		return equal(raw, found, cond.Expr)
	case query.OpNotEq:
		return !equal(raw, found, cond.Expr)
	case query.OpGt, query.OpGte, query.OpLt, query.OpLte:
		return ordered(cond.Op, raw, found, cond.Expr)
	case query.OpIn:
		list, ok := cond.Expr.(literal.List)
		if !ok {
			return false
		}
		return member(list, subjectValue(raw, found))
	case query.OpContains:
		list, ok := subjectList(raw, found)
		if !ok {
			return false
		}
		return member(list, cond.Expr)
	case query.OpNotContains:
		// Negates the membership test only: containment cannot be
		// asserted about a missing or non-list subject, so that still
		// yields false.
		list, ok := subjectList(raw, found)
		if !ok {
			return false
		}
		return !member(list, cond.Expr)
	default:
		return false
	}
}

// equal applies Eq semantics: date and datetime expressions compare
// calendrically / by instant (an absent subject is never equal);
// everything else is strict structural equality.
func equal(raw any, found bool, expr literal.Value) bool {
	switch expr.(type) {
	case literal.Date:
		d, ok := subjectDate(raw, found)
		if !ok {
			return false
		}
		return literal.Equal(d, expr)
	case literal.DateTime:
		dt, ok := subjectInstant(raw, found)
		if !ok {
			return false
		}
		return literal.Equal(dt, expr)
	default:
		sv := subjectValue(raw, found)
		if sv == nil {
			return false
		}
		return literal.Equal(sv, expr)
	}
}

// ordered applies Gt/Gte/Lt/Lte: date and datetime expressions compare
// calendrically / by instant; otherwise both sides must be numbers. A
// null subject or any other combination yields false.
func ordered(op query.CompareOp, raw any, found bool, expr literal.Value) bool {
	var cmp int
	switch expr.(type) {
	case literal.Date:
		d, ok := subjectDate(raw, found)
		if !ok {
			return false
		}
		cmp, _ = literal.Compare(d, expr)
	case literal.DateTime:
		dt, ok := subjectInstant(raw, found)
		if !ok {
			return false
		}
		cmp, _ = literal.Compare(dt, expr)
	default:
		sn, ok := subjectValue(raw, found).(literal.Number)
		if !ok {
			return false
		}
		en, ok := expr.(literal.Number)
		if !ok {
			return false
		}
		cmp = sn.Decimal().Cmp(en.Decimal())
	}

	switch op {
	case query.OpGt:
		return cmp > 0
	case query.OpGte:
		return cmp >= 0
	case query.OpLt:
		return cmp < 0
	case query.OpLte:
		return cmp <= 0
	default:
		return false
	}
}

// member reports whether v structurally equals some element of list.
func member(list literal.List, v literal.Value) bool {
	if v == nil {
		return false
	}
	for _, el := range list {
		if literal.Equal(el, v) {
			return true
		}
	}
	return false
}

// subjectValue converts a looked-up record value to a literal for
// structural comparison. Missing fields and explicit nulls become Null;
// values with no literal counterpart (nested maps, arbitrary structs)
// return nil and compare equal to nothing.
func subjectValue(raw any, found bool) literal.Value {
	if !found || raw == nil {
		return literal.Null{}
	}

	switch v := raw.(type) {
	case literal.Value:
		return v
	case bool:
		return literal.Bool(v)
	case string:
		return literal.String(v)
	case int:
		return literal.NumberFromInt64(int64(v))
	case int8:
		return literal.NumberFromInt64(int64(v))
	case int16:
		return literal.NumberFromInt64(int64(v))
	case int32:
		return literal.NumberFromInt64(int64(v))
	case int64:
		return literal.NumberFromInt64(v)
	case uint:
		return literal.Number(decimal.NewFromUint64(uint64(v)))
	case uint8:
		return literal.NumberFromInt64(int64(v))
	case uint16:
		return literal.NumberFromInt64(int64(v))
	case uint32:
		return literal.NumberFromInt64(int64(v))
	case uint64:
		return literal.Number(decimal.NewFromUint64(v))
	case float32:
		return literal.NumberFromFloat64(float64(v))
	case float64:
		return literal.NumberFromFloat64(v)
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return nil
		}
		return literal.Number(d)
	case decimal.Decimal:
		return literal.Number(v)
	case time.Time:
		return literal.DateTime(v)
	case []any:
		list, _ := subjectList(raw, true)
		return list
	case []string:
		list, _ := subjectList(raw, true)
		return list
	default:
		return nil
	}
}

// subjectList converts a looked-up record value to a literal list for
// the contains operators. Null and non-list subjects are not lists.
func subjectList(raw any, found bool) (literal.List, bool) {
	if !found || raw == nil {
		return nil, false
	}

	switch v := raw.(type) {
	case literal.List:
		return v, true
	case []any:
		list := make(literal.List, len(v))
		for i, el := range v {
			list[i] = subjectValue(el, true)
		}
		return list, true
	case []string:
		list := make(literal.List, len(v))
		for i, el := range v {
			list[i] = literal.String(el)
		}
		return list, true
	default:
		return nil, false
	}
}

// subjectDate derives a calendar date from the subject: time values are
// truncated to their day, strings are parsed as ISO dates or datetimes.
func subjectDate(raw any, found bool) (literal.Value, bool) {
	if !found || raw == nil {
		return nil, false
	}

	switch v := raw.(type) {
	case literal.Date:
		return v, true
	case literal.DateTime:
		t := v.Time()
		return literal.NewDate(t.Year(), t.Month(), t.Day()), true
	case time.Time:
		return literal.NewDate(v.Year(), v.Month(), v.Day()), true
	case string:
		if d, err := literal.ParseDate(v); err == nil {
			return d, true
		}
		if dt, err := literal.ParseDateTime(v); err == nil {
			t := dt.Time()
			return literal.NewDate(t.Year(), t.Month(), t.Day()), true
		}
		return nil, false
	default:
		return nil, false
	}
}

// subjectInstant derives an instant from the subject: strings parse as
// RFC 3339 (or naive UTC) datetimes, or as bare dates at midnight UTC.
func subjectInstant(raw any, found bool) (literal.Value, bool) {
	if !found || raw == nil {
		return nil, false
	}

	switch v := raw.(type) {
	case literal.DateTime:
		return v, true
	case literal.Date:
		return literal.DateTime(v.Time()), true
	case time.Time:
		return literal.DateTime(v), true
	case string:
		if dt, err := literal.ParseDateTime(v); err == nil {
			return dt, true
		}
		if d, err := literal.ParseDate(v); err == nil {
			return literal.DateTime(d.Time()), true
		}
		return nil, false
	default:
		return nil, false
	}
}

package eval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filtq/filtq/query"
)

// condition parses a single-condition query and returns its leaf.
func condition(t *testing.T, input string) query.Condition {
	t.Helper()
	preds, err := query.Parse(input)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	cond, ok := preds[0].(query.Condition)
	require.True(t, ok)
	return cond
}

func TestCondition_Equality(t *testing.T) {
	rec := MapRecord{
		"age":    30,
		"ratio":  1.0,
		"name":   "ada",
		"active": true,
		"none":   nil,
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"age == 30", true},
		{"age == 30.0", true}, // numeric value equality across forms
		{"age == 31", false},
		{"age != 31", true},
		{"ratio == 1", true},
		{"name == 'ada'", true},
		{"name == 'Ada'", false},
		{"active == true", true},
		{"active != false", true},
		{"none == null", true},
		{"none != null", false},
		{"absent == null", true}, // missing field resolves to null
		{"absent != null", false},
		{"absent == 1", false},
		{"absent != 1", true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Condition(condition(t, tt.query), rec))
		})
	}
}

func TestCondition_NoCrossKindCoercion(t *testing.T) {
	rec := MapRecord{"n": 1, "s": "1", "b": true}

	tests := []string{
		"n == '1'",
		"s == 1",
		"b == 1",
		"n == true",
	}
	for _, q := range tests {
		t.Run(q, func(t *testing.T) {
			assert.False(t, Condition(condition(t, q), rec))
		})
	}
}

func TestCondition_Ordering(t *testing.T) {
	rec := MapRecord{"n": 5, "s": "abc", "none": nil}

	tests := []struct {
		query string
		want  bool
	}{
		{"n > 4", true},
		{"n > 5", false},
		{"n >= 5", true},
		{"n < 5.5", true},
		{"n <= 4", false},
		// Non-numeric or null subjects are never ordered, in either
		// direction.
		{"s > 1", false},
		{"s < 1", false},
		{"none > 1", false},
		{"none <= 1", false},
		{"absent > 1", false},
		{"absent < 1", false},
		{"n > 'x'", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Condition(condition(t, tt.query), rec))
		})
	}
}

func TestCondition_In(t *testing.T) {
	rec := MapRecord{"role": "admin", "n": 2, "none": nil}

	tests := []struct {
		query string
		want  bool
	}{
		{"role in ['admin', 'ops']", true},
		{"role in ['ops']", false},
		{"n in [1, 2.0, 3]", true}, // numeric value equality inside lists
		{"n in []", false},
		{"none in [null]", true},
		{"absent in [null]", true},
		{"absent in [1, 2]", false},
		// A non-list expression never matches.
		{"role in 'admin'", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Condition(condition(t, tt.query), rec))
		})
	}
}

func TestCondition_Contains(t *testing.T) {
	rec := MapRecord{
		"tags":   []any{"urgent", "review"},
		"names":  []string{"ada", "grace"},
		"counts": []any{1, 2, 3},
		"scalar": "urgent",
		"none":   nil,
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"tags contains 'urgent'", true},
		{"tags contains 'done'", false},
		{"names contains 'grace'", true},
		{"counts contains 2.0", true},
		{"tags not contains 'done'", true},
		{"tags not contains 'urgent'", false},
		// Containment cannot be asserted about a non-list subject, even
		// negated.
		{"scalar contains 'urgent'", false},
		{"scalar not contains 'urgent'", false},
		{"none contains 'x'", false},
		{"none not contains 'x'", false},
		{"absent contains 'x'", false},
		{"absent not contains 'x'", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Condition(condition(t, tt.query), rec))
		})
	}
}

func TestCondition_Dates(t *testing.T) {
	rec := MapRecord{
		"day":     "2024-02-29",
		"stamp":   "2024-02-29T23:30:00+02:00",
		"instant": time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"day == '2024-02-29'::DATE", true},
		{"day != '2024-03-01'::DATE", true},
		{"day >= '2024-02-29'::DATE", true},
		{"day > '2024-02-28'::DATE", true},
		{"day < '2024-02-29'::DATE", false},
		// Datetime subjects truncate to their calendar day for DATE
		// comparisons.
		{"stamp == '2024-02-29'::DATE", true},
		{"instant == '2024-02-29'::DATE", true},
		{"absent == '2024-02-29'::DATE", false},
		{"absent < '2024-02-29'::DATE", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Condition(condition(t, tt.query), rec))
		})
	}
}

func TestCondition_DateTimes(t *testing.T) {
	rec := MapRecord{
		"seen":    "2024-01-02T10:00:00+02:00",
		"day":     "2024-01-02",
		"instant": time.Date(2024, time.January, 2, 8, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		query string
		want  bool
	}{
		// Instant equality across offsets.
		{"seen == '2024-01-02T08:00:00Z'::DATETIME", true},
		{"instant == '2024-01-02T08:00:00Z'::DATETIME", true},
		{"seen < '2024-01-02T09:00:00Z'::DATETIME", true},
		{"seen > '2024-01-02T08:00:00Z'::DATETIME", false},
		// Bare-date subjects sit at midnight UTC.
		{"day == '2024-01-02T00:00:00Z'::DATETIME", true},
		{"day < '2024-01-02T08:00:00Z'::DATETIME", true},
		{"absent == '2024-01-02T08:00:00Z'::DATETIME", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Condition(condition(t, tt.query), rec))
		})
	}
}

func TestCondition_NilRecord(t *testing.T) {
	// A nil record behaves as one where every lookup misses.
	assert.True(t, Condition(condition(t, "x == null"), nil))
	assert.False(t, Condition(condition(t, "x == 1"), nil))
	assert.False(t, Condition(condition(t, "x > 1"), nil))
}

func TestCondition_UnconvertibleSubject(t *testing.T) {
	// A nested map has no literal counterpart: it equals nothing, and its
	// negation holds.
	rec := MapRecord{"meta": map[string]any{"k": "v"}}

	assert.False(t, Condition(condition(t, "meta == 'x'"), rec))
	assert.True(t, Condition(condition(t, "meta != 'x'"), rec))
	assert.False(t, Condition(condition(t, "meta == null"), rec))
}

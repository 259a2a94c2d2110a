package literal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_NumberCrossRepresentation(t *testing.T) {
	intForm, err := Cast("1")
	require.NoError(t, err)
	floatForm, err := Cast("1.0")
	require.NoError(t, err)

	// Integer and floating forms that are numerically equal compare equal.
	assert.True(t, Equal(intForm, floatForm))

	expForm, err := Cast("1e2")
	require.NoError(t, err)
	hundred, err := Cast("100")
	require.NoError(t, err)
	assert.True(t, Equal(expForm, hundred))
}

func TestEqual_NoCrossKindCoercion(t *testing.T) {
	one := NumberFromInt64(1)

	assert.False(t, Equal(one, String("1")))
	assert.False(t, Equal(Bool(true), NumberFromInt64(1)))
	assert.False(t, Equal(Null{}, String("")))
	assert.False(t, Equal(Null{}, Bool(false)))
	assert.True(t, Equal(Null{}, Null{}))
}

func TestEqual_DateIsCalendrical(t *testing.T) {
	a := NewDate(2024, time.February, 29)
	b := Date(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.FixedZone("X", 3600)))

	// Same calendar day in different zones is still the same date.
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, NewDate(2024, time.March, 1)))
}

func TestEqual_DateTimeByInstant(t *testing.T) {
	utc, err := ParseDateTime("2024-01-01T08:00:00Z")
	require.NoError(t, err)
	offset, err := ParseDateTime("2024-01-01T10:00:00+02:00")
	require.NoError(t, err)

	assert.True(t, Equal(utc, offset))

	// Date and DateTime are distinct kinds even at midnight.
	assert.False(t, Equal(NewDate(2024, time.January, 1), DateTime(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))))
}

func TestEqual_ListElementwise(t *testing.T) {
	a := List{NumberFromInt64(1), String("x")}
	b := List{NumberFromFloat64(1.0), String("x")}

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, List{NumberFromInt64(1)}))
	assert.False(t, Equal(a, List{NumberFromInt64(1), String("y")}))
	assert.True(t, Equal(List{}, List{}))
}

func TestCompare_Numbers(t *testing.T) {
	cmp, ok := Compare(NumberFromInt64(2), NumberFromFloat64(1.5))
	require.True(t, ok)
	assert.Positive(t, cmp)

	cmp, ok = Compare(NumberFromInt64(1), Number(decimal.RequireFromString("1.000")))
	require.True(t, ok)
	assert.Zero(t, cmp)
}

func TestCompare_Dates(t *testing.T) {
	early := NewDate(2024, time.January, 1)
	late := NewDate(2024, time.June, 15)

	cmp, ok := Compare(early, late)
	require.True(t, ok)
	assert.Negative(t, cmp)
}

func TestCompare_UnorderablePairs(t *testing.T) {
	pairs := [][2]Value{
		{String("a"), String("b")},
		{Bool(true), Bool(false)},
		{NumberFromInt64(1), String("1")},
		{NewDate(2024, time.January, 1), DateTime(time.Now())},
		{Null{}, Null{}},
		{List{}, List{}},
	}
	for _, pair := range pairs {
		_, ok := Compare(pair[0], pair[1])
		assert.False(t, ok, "pair %v should not be orderable", pair)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want string
	}{
		{"number", NumberFromInt64(42), "42"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"null", Null{}, "null"},
		{"string", String("active"), "'active'"},
		{"string with quote", String("it's"), `'it\'s'`},
		{"string with backslash", String(`a\b`), `'a\\b'`},
		{"date", NewDate(2024, time.February, 29), "'2024-02-29'::DATE"},
		{"list", List{NumberFromInt64(1), String("x")}, "[1, 'x']"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.val))
		})
	}
}

func TestRender_DateTimeKeepsOffset(t *testing.T) {
	dt, err := ParseDateTime("2024-01-02T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "'2024-01-02T10:00:00+02:00'::DATETIME", Render(dt))
}

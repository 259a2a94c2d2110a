package filtq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filtq/filtq/eval"
	"github.com/filtq/filtq/query"
)

func TestEvaluateMap(t *testing.T) {
	record := map[string]any{
		"status":  "active",
		"retries": 5,
		"priority": map[string]any{
			"level": 1,
		},
	}

	ok, err := EvaluateMap("status == 'active' AND (retries >= 3 OR priority.level < 2)", record)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = EvaluateMap("status == 'inactive'", record)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateJSON(t *testing.T) {
	doc := []byte(`{"status": "active", "tags": ["urgent"], "deleted": null}`)

	ok, err := EvaluateJSON("tags contains 'urgent' AND deleted == null", doc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = EvaluateJSON("tags contains 'done'", doc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateQuery_SurfacesSyntaxErrors(t *testing.T) {
	ok, err := EvaluateQuery("status ===", eval.MapRecord{"status": "active"})
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, query.IsSyntaxError(err))
}

func TestEvaluate_NilRecord(t *testing.T) {
	preds, err := Parse("x == null")
	require.NoError(t, err)
	assert.True(t, Evaluate(preds, nil))

	preds, err = Parse("x == 1")
	require.NoError(t, err)
	assert.False(t, Evaluate(preds, nil))
}

func TestMatch(t *testing.T) {
	rec := eval.MapRecord{"status": "active"}

	assert.True(t, Match("status == 'active'", rec))
	assert.False(t, Match("status == 'inactive'", rec))

	// A rejected query is logged and reported as no match.
	assert.False(t, Match("status ==", rec))
	assert.False(t, Match("", rec))
}

func TestSerialize_RoundTripsThroughParse(t *testing.T) {
	first, err := Parse("a==1andb==2or(c in [1,2])")
	require.NoError(t, err)

	text := Serialize(first)
	assert.Equal(t, "a == 1 AND b == 2 OR (c in [1, 2])", text)

	second, err := Parse(text)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

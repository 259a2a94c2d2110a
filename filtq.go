// Package filtq is a small filter/query language over dot-addressed
// record fields. A query like
//
//	status == 'active' AND (retries >= 3 OR priority.level < 2)
//
// parses into an immutable predicate tree that can be evaluated against
// any number of records concurrently, and serialized back to canonical
// query text. AND binds tighter than OR; parentheses group; comparisons
// support ==, !=, >, >=, <, <=, in, contains, and not contains over
// null, boolean, number, string, date, datetime, and list literals.
//
// All operations are pure functions over immutable inputs: parse
// failures are returned as errors, and evaluation-time type mismatches
// resolve to false rather than raising.
package filtq

import (
	"log/slog"

	"github.com/filtq/filtq/eval"
	"github.com/filtq/filtq/query"
)

// Parse parses query text into a predicate tree. Empty input is an
// error: there is no implicit always-true predicate.
func Parse(input string) (query.Predicates, error) {
	return query.Parse(input)
}

// Evaluate applies a parsed predicate tree to a record. A nil record
// behaves as a record where every lookup misses.
func Evaluate(preds query.Predicates, rec eval.Record) bool {
	return eval.Predicates(preds, rec)
}

// EvaluateQuery parses and evaluates in one step, surfacing a parse
// failure to the caller. Prefer this over Match when the caller needs
// to distinguish "did not match" from "query rejected".
func EvaluateQuery(input string, rec eval.Record) (bool, error) {
	preds, err := query.Parse(input)
	if err != nil {
		return false, err
	}
	return eval.Predicates(preds, rec), nil
}

// EvaluateMap is EvaluateQuery over a nested-map record.
func EvaluateMap(input string, record map[string]any) (bool, error) {
	return EvaluateQuery(input, eval.MapRecord(record))
}

// EvaluateJSON is EvaluateQuery over a raw JSON document.
func EvaluateJSON(input string, doc []byte) (bool, error) {
	return EvaluateQuery(input, eval.JSONRecord(doc))
}

// Match is the fail-safe convenience form: a query that does not parse
// logs a diagnostic and reports false instead of propagating the error.
// Use EvaluateQuery to observe the failure programmatically.
func Match(input string, rec eval.Record) bool {
	ok, err := EvaluateQuery(input, rec)
	if err != nil {
		slog.Warn("filtq: query rejected", "query", input, "error", err)
		return false
	}
	return ok
}

// Serialize renders a predicate tree back to canonical query text.
func Serialize(preds query.Predicates) string {
	return query.Serialize(preds)
}

// Package eval applies a parsed predicate tree to records: it resolves
// dot-paths through record structures, scores each leaf condition with
// typed comparison semantics, and folds the flat predicate list into a
// single boolean with AND binding tighter than OR.
package eval

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Record is any structure supporting path lookup by a sequence of string
// keys. Lookup returns (value, true) when the full path resolves, and
// (nil, false) when any key is missing or an intermediate value is not
// traversable. A resolved value may itself be nil (an explicit null).
type Record interface {
	Lookup(path []string) (any, bool)
}

// MapRecord adapts nested maps - including what yaml.v3 and
// encoding/json produce - to the Record interface.
type MapRecord map[string]any

// Lookup implements Record by walking nested maps segment by segment.
func (r MapRecord) Lookup(path []string) (any, bool) {
	var cur any = map[string]any(r)
	for _, seg := range path {
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case map[any]any:
			// Older YAML decoders key maps by any.
			v, ok := m[seg]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

// JSONRecord adapts a raw JSON document to the Record interface using
// gjson path lookup; the document is never fully decoded.
type JSONRecord []byte

// Lookup implements Record. Path segments are restricted to identifier
// characters by the grammar, so joining with dots is a valid gjson path.
func (r JSONRecord) Lookup(path []string) (any, bool) {
	res := gjson.GetBytes(r, strings.Join(path, "."))
	if !res.Exists() {
		return nil, false
	}
	return res.Value(), true
}

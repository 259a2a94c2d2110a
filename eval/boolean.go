package eval

import "github.com/filtq/filtq/query"

// Predicates evaluates a flat predicate list against a record with AND
// binding tighter than OR, without the parser having built AND/OR
// subtrees: a running AND accumulator closes into a group whenever the
// current element's forward operator is OR (or the list ends), and the
// result is the OR across closed groups. Groups recurse through the
// same fold, so `a AND b OR c AND d` equals `(a AND b) OR (c AND d)`
// for every assignment.
func Predicates(preds query.Predicates, rec Record) bool {
	if len(preds) == 0 {
		return false
	}

	acc := true
	result := false
	for _, p := range preds {
		var v bool
		switch node := p.(type) {
		case query.Condition:
			v = Condition(node, rec)
		case query.Group:
			v = Predicates(node.Children, rec)
		}

		acc = acc && v
		if p.Forward() != query.LogicAnd {
			// Close the current AND run: an OR follows, or the list ends.
			if acc {
				result = true
			}
			acc = true
		}
	}
	return result
}

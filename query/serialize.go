package query

import (
	"strings"

	"github.com/filtq/filtq/literal"
)

// Serialize renders a predicate tree back to canonical query text:
// groups become parenthesized space-joined children, leaves become
// "identifier comparator literal", and each node's forward operator
// keyword follows it. The result re-parses to an equal tree for trees
// whose string literals survive quoting; list rendering is best-effort.
func Serialize(preds Predicates) string {
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		var part string
		switch node := p.(type) {
		case Condition:
			part = node.Identifier() + " " + node.Op.String() + " " + literal.Render(node.Expr)
		case Group:
			part = "(" + Serialize(node.Children) + ")"
		}
		if op := p.Forward(); op != LogicNone {
			part += " " + string(op)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

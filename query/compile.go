package query

import "github.com/filtq/filtq/literal"

// compile chunks a raw stream into predicates: each comparison or group
// node takes the logical marker that follows it as its forward operator.
// Literal text is cast here, in fixed priority, so a bad literal
// (including inside an in-list) surfaces as a parse-time error rather
// than a tree holding a null placeholder.
func compile(items []rawNode) (Predicates, error) {
	if len(items) == 0 {
		return nil, syntaxErrorf(0, "empty query")
	}

	preds := make(Predicates, 0, (len(items)+1)/2)
	i := 0
	for i < len(items) {
		node := items[i]
		i++

		next := LogicNone
		if i < len(items) {
			logic, ok := items[i].(rawLogic)
			if !ok {
				// Unreachable with parser-produced streams; guards hand-built ones.
				return nil, syntaxErrorf(0, "expected logical operator between predicates")
			}
			next = logic.op
			i++
		}

		switch n := node.(type) {
		case rawCond:
			val, err := literal.Cast(n.lit)
			if err != nil {
				return nil, syntaxErrorf(n.litOff, "%v", err)
			}
			preds = append(preds, Condition{Path: n.path, Op: n.op, Expr: val, Next: next})
		case rawGroup:
			children, err := compile(n.children)
			if err != nil {
				return nil, err
			}
			preds = append(preds, Group{Children: children, Next: next})
		case rawLogic:
			return nil, syntaxErrorf(n.offset, "unexpected %s", n.op)
		}
	}
	return preds, nil
}

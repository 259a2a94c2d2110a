// Package query implements the filter grammar: a scanner-based parser
// producing a raw token stream, a compiler turning that stream into an
// immutable predicate tree, and a serializer rendering the tree back to
// canonical query text.
package query

import (
	"fmt"
	"strings"

	"github.com/filtq/filtq/literal"
)

// CompareOp identifies one of the nine comparison operators.
type CompareOp string

const (
	OpEq          CompareOp = "=="
	OpNotEq       CompareOp = "!="
	OpGt          CompareOp = ">"
	OpGte         CompareOp = ">="
	OpLt          CompareOp = "<"
	OpLte         CompareOp = "<="
	OpIn          CompareOp = "in"
	OpContains    CompareOp = "contains"
	OpNotContains CompareOp = "not contains"
)

// String returns the query-text form of the operator.
func (op CompareOp) String() string {
	return string(op)
}

// LogicOp is the forward operator relating a predicate to the NEXT
// sibling in its list. The zero value means "no next sibling" and is
// required on the last predicate of every list.
type LogicOp string

const (
	LogicNone LogicOp = ""
	LogicAnd  LogicOp = "AND"
	LogicOr   LogicOp = "OR"
)

// Predicate is a node in the filter tree: either a Condition leaf or a
// Group of child predicates.
//
// This is a sealed interface - only types in this package implement it.
// The marker method prevents external implementations and enables
// exhaustive type switches in the evaluator and serializer.
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package

	// Forward returns the logical operator linking this predicate to the
	// next sibling (LogicNone on the last element of a list).
	Forward() LogicOp
}

// Condition is a leaf predicate: a dot-path identifier, a comparison
// operator, and a literal expression.
type Condition struct {
	Path []string      // identifier segments, e.g. ["user", "profile", "name"]
	Op   CompareOp     //
	Expr literal.Value // right-hand side, cast at compile time
	Next LogicOp       // forward operator to the next sibling
}

func (Condition) predicateNode() {}

// Forward implements Predicate.
func (c Condition) Forward() LogicOp { return c.Next }

// Identifier returns the dotted path text.
func (c Condition) Identifier() string {
	return strings.Join(c.Path, ".")
}

// Group is a parenthesized predicate holding an ordered, non-empty list
// of children.
type Group struct {
	Children Predicates
	Next     LogicOp // forward operator that followed the closing paren
}

func (Group) predicateNode() {}

// Forward implements Predicate.
func (g Group) Forward() LogicOp { return g.Next }

// Predicates is an ordered predicate list (the top level of a parsed
// query, or the children of a Group).
type Predicates []Predicate

// Validate checks the structural invariants the compiler guarantees:
// a non-empty list, forward operators on every element except the last,
// none on the last, no empty groups, and no empty paths. Hand-built
// trees should be validated before evaluation or serialization.
func (ps Predicates) Validate() error {
	if len(ps) == 0 {
		return fmt.Errorf("empty predicate list")
	}
	for i, p := range ps {
		last := i == len(ps)-1
		if last && p.Forward() != LogicNone {
			return fmt.Errorf("predicate %d: forward operator on last element", i)
		}
		if !last && p.Forward() == LogicNone {
			return fmt.Errorf("predicate %d: missing forward operator", i)
		}

		switch node := p.(type) {
		case Condition:
			if len(node.Path) == 0 {
				return fmt.Errorf("predicate %d: empty identifier path", i)
			}
			if node.Expr == nil {
				return fmt.Errorf("predicate %d: missing expression", i)
			}
		case Group:
			if err := node.Children.Validate(); err != nil {
				return fmt.Errorf("predicate %d: %w", i, err)
			}
		}
	}
	return nil
}

// Equal reports structural equality of two predicate lists, comparing
// literal expressions by value (so 1 and 1.0 compare equal).
func (ps Predicates) Equal(other Predicates) bool {
	if len(ps) != len(other) {
		return false
	}
	for i := range ps {
		if !predicateEqual(ps[i], other[i]) {
			return false
		}
	}
	return true
}

func predicateEqual(a, b Predicate) bool {
	if a.Forward() != b.Forward() {
		return false
	}
	switch av := a.(type) {
	case Condition:
		bv, ok := b.(Condition)
		if !ok || av.Op != bv.Op || len(av.Path) != len(bv.Path) {
			return false
		}
		for i := range av.Path {
			if av.Path[i] != bv.Path[i] {
				return false
			}
		}
		return literal.Equal(av.Expr, bv.Expr)
	case Group:
		bv, ok := b.(Group)
		return ok && av.Children.Equal(bv.Children)
	default:
		return false
	}
}

// Builder constructs a predicate list that cannot violate the
// forward-operator invariant: every element added through Then carries
// an explicit operator, and Close marks the terminal element.
type Builder struct {
	preds Predicates
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Then appends a predicate linked to its successor by op.
func (b *Builder) Then(p Predicate, op LogicOp) *Builder {
	b.preds = append(b.preds, withForward(p, op))
	return b
}

// Close appends the terminal predicate and returns the finished list.
func (b *Builder) Close(p Predicate) (Predicates, error) {
	preds := append(b.preds, withForward(p, LogicNone))
	if err := preds.Validate(); err != nil {
		return nil, err
	}
	return preds, nil
}

// withForward returns a copy of p with its forward operator replaced.
func withForward(p Predicate, op LogicOp) Predicate {
	switch node := p.(type) {
	case Condition:
		node.Next = op
		return node
	case Group:
		node.Next = op
		return node
	default:
		return p
	}
}

package query

import (
	"errors"
	"fmt"
)

// SyntaxError reports a query that the grammar rejects: unmatched or
// empty parens, a missing operand, an unknown operator, a literal that
// casts to no form, or trailing unparsed text. Offset is the byte
// position in the query text where scanning stopped.
type SyntaxError struct {
	Offset  int
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Message)
}

// IsSyntaxError returns true if the error is a SyntaxError.
// Uses errors.As to handle wrapped errors.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// syntaxErrorf builds a SyntaxError at the given offset.
func syntaxErrorf(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}

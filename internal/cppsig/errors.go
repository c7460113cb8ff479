package cppsig

import (
	"errors"
	"fmt"
)

// ErrUnbalanced reports an argument region with no closing parenthesis.
// Unlike an ordinary grammar mismatch this means the pre-grammar split saw a
// shape it never expects from a documentation generator, so callers may want
// to surface it more loudly than a *ParseError.
var ErrUnbalanced = errors.New("closing parenthesis expected but not found")

// ParseError is the anticipated failure: the argument list does not conform
// to the supported declarator subset. Offset is a byte position into Input
// near where recognition stopped.
type ParseError struct {
	Input   string
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q at offset %d: %s", e.Input, e.Offset, e.Message)
}

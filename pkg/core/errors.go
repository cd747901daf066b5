package core

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is used as a panic value when a square outside the 8x8
// grid reaches the board. That is a caller bug, not a recoverable state.
var ErrOutOfBounds = errors.New("core: square out of bounds")

// ParseError reports malformed FEN or move text. Field names the FEN field
// (or "move") that failed so the caller can explain what was wrong.
type ParseError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("core: cannot parse %s %q: %s", e.Field, e.Value, e.Reason)
}

// IllegalMoveError reports a well-formed move rejected by the rules.
// The UI is expected to show Reason and re-prompt.
type IllegalMoveError struct {
	Move   string
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("core: illegal move %s: %s", e.Move, e.Reason)
}

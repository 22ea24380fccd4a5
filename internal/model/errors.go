package model

import (
	"errors"
	"fmt"
)

// ErrMalformedInput matches every *MalformedInputError under errors.Is.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError reports an input string that does not match the
// expected format.
type MalformedInputError struct {
	Input    string
	Expected string
	Err      error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %q: expected %s", e.Input, e.Expected)
}

// Is reports whether target is ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

package syntax

import (
	"errors"
	"fmt"
)

// Errors returned while building a Definition.
var (
	// ErrInvalidPattern indicates one of the configured patterns does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrEmptyPattern indicates a pattern matches the empty string.
	ErrEmptyPattern = errors.New("pattern matches empty string")
)

// PatternError reports which pattern of a Definition failed to compile.
type PatternError struct {
	// Field names the option holding the pattern (e.g. "identifier").
	Field string
	// Pattern is the offending pattern text.
	Pattern string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("syntax: %s pattern %q: %v", e.Field, e.Pattern, e.Err)
}

// Unwrap returns the underlying error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidPattern for every PatternError.
func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

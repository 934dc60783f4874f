package language

import (
	"errors"
	"fmt"
)

// Errors returned while loading language bundles.
var (
	// ErrNoName indicates a language file without a name.
	ErrNoName = errors.New("language has no name")

	// ErrInvalidEntry indicates a function entry with neither name nor label.
	ErrInvalidEntry = errors.New("function entry has no name or label")

	// ErrUnknownFormat indicates a library file with an unsupported extension.
	ErrUnknownFormat = errors.New("unknown library format")

	// ErrNotArray indicates a JSON library whose top level is not an array.
	ErrNotArray = errors.New("library must be a JSON array")

	// ErrNotFound indicates an unknown language name or extension.
	ErrNotFound = errors.New("language not found")
)

// ParseError represents an error while parsing a language or library file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

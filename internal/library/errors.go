package library

import "errors"

// Errors returned by tree construction.
var (
	// ErrNotFound indicates a node id or path does not resolve.
	ErrNotFound = errors.New("library node not found")

	// ErrEmptyName indicates an attempt to add a node without a name.
	ErrEmptyName = errors.New("library node name is empty")
)

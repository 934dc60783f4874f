package highlight

import "errors"

// Errors returned when building themes.
var (
	// ErrUnknownColor indicates a color name tcell does not know.
	ErrUnknownColor = errors.New("unknown color")

	// ErrUnknownTag indicates a style tag other than keyword or symbol.
	ErrUnknownTag = errors.New("unknown style tag")
)

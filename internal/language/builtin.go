package language

import (
	_ "embed"
	"sync"
)

//go:embed filterscript.toml
var filterscriptTOML []byte

var (
	builtinOnce sync.Once
	builtin     *Bundle
	builtinErr  error
)

// Builtin returns the bundled filterscript language: a JavaScript-like
// reserved word set and a small mesh-processing library.
func Builtin() (*Bundle, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = Parse("filterscript.toml", filterscriptTOML)
	})
	return builtin, builtinErr
}

// DefaultRegistry returns a registry holding the built-in language.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	b, err := Builtin()
	if err != nil {
		return nil, err
	}
	r.Register(b)
	return r, nil
}

package language

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry manages loaded languages.
type Registry struct {
	mu sync.RWMutex

	// byName maps language names to bundles
	byName map[string]*Bundle

	// byExtension maps file extensions to bundles
	byExtension map[string]*Bundle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:      make(map[string]*Bundle),
		byExtension: make(map[string]*Bundle),
	}
}

// Register adds a bundle, replacing any bundle with the same name. Its
// extensions take over from earlier registrations.
func (r *Registry) Register(b *Bundle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byName[b.Name]; ok {
		for _, ext := range old.Extensions {
			if r.byExtension[ext] == old {
				delete(r.byExtension, ext)
			}
		}
	}
	r.byName[b.Name] = b
	for _, ext := range b.Extensions {
		r.byExtension[ext] = b
	}
}

// LoadFile loads the language file at path and registers it.
func (r *Registry) LoadFile(path string) (*Bundle, error) {
	b, err := Load(path)
	if err != nil {
		return nil, err
	}
	r.Register(b)
	return b, nil
}

// Get returns the bundle for a language name.
func (r *Registry) Get(name string) (*Bundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return b, nil
}

// ByExtension returns the bundle for a file extension, with or without
// the leading dot.
func (r *Registry) ByExtension(ext string) (*Bundle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Handle empty extension
	if ext == "" {
		return nil, false
	}

	ext = strings.ToLower(ext)
	if ext[0] != '.' {
		ext = "." + ext
	}
	b, ok := r.byExtension[ext]
	return b, ok
}

// ForFile returns the bundle matching the extension of a file name.
func (r *Registry) ForFile(path string) (*Bundle, bool) {
	return r.ByExtension(filepath.Ext(path))
}

// Languages returns the registered language names, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]string, 0, len(r.byName))
	for name := range r.byName {
		langs = append(langs, name)
	}
	sort.Strings(langs)
	return langs
}

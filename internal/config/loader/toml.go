package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultIncludeDepth limits nested @include directives.
const DefaultIncludeDepth = 8

// IncludeKey is the top-level key listing files merged beneath a file.
const IncludeKey = "@include"

// Errors returned by the TOML loader.
var (
	ErrIncludeDepth = errors.New("include depth exceeded")
	ErrIncludeCycle = errors.New("include cycle")
	ErrIncludeType  = errors.New("@include must be a string or an array of strings")
)

// TOMLLoader loads configuration from a TOML file. The file may name other
// files under @include; their values sit beneath the including file's.
type TOMLLoader struct {
	fs       FileSystem
	path     string
	maxDepth int
}

// NewTOMLLoader creates a TOML loader for path.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader reading through fsys.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:       fsys,
		path:     path,
		maxDepth: DefaultIncludeDepth,
	}
}

// Path returns the configured file path.
func (l *TOMLLoader) Path() string {
	return l.path
}

// Load reads the configured file and its includes.
func (l *TOMLLoader) Load() (map[string]any, error) {
	if l.path == "" {
		return nil, nil
	}
	return l.load(l.path, l.maxDepth, nil)
}

// Parse decodes TOML data without resolving includes.
func Parse(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return nil, pe
	}
	return config, nil
}

func (l *TOMLLoader) load(path string, depth int, stack []string) (map[string]any, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrIncludeDepth)
	}
	for _, p := range stack {
		if p == path {
			return nil, fmt.Errorf("%s: %w", path, ErrIncludeCycle)
		}
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && len(stack) == 0 {
			return nil, nil // A missing top-level file is not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	config, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	includes, err := includeList(config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	delete(config, IncludeKey)

	stack = append(stack, path)
	base := make(map[string]any)
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(path), inc)
		}
		sub, err := l.load(inc, depth-1, stack)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", inc, err)
		}
		base = DeepMerge(base, sub)
	}

	return DeepMerge(base, config), nil
}

func includeList(config map[string]any) ([]string, error) {
	switch v := config[IncludeKey].(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, ErrIncludeType
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w, got %T", ErrIncludeType, v)
	}
}

// ParseError represents an error while parsing a configuration file.
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

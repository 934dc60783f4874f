package language

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/scriptedit/internal/highlight"
	"github.com/dshills/scriptedit/internal/library"
	"github.com/dshills/scriptedit/internal/naming"
	"github.com/dshills/scriptedit/internal/syntax"
)

// Bundle is a loaded language.
type Bundle struct {
	// Name is the language name.
	Name string
	// Extensions lists file extensions, with leading dot.
	Extensions []string
	// Path is the file the bundle was loaded from, if any.
	Path string
	// Libraries lists the resolved library files the bundle was built from.
	Libraries []string

	Syntax *syntax.Definition
	Tree   *library.Tree
	Theme  *highlight.Theme
}

// File is the on-disk shape of a language file.
type File struct {
	Name       string                         `toml:"name"`
	Extensions []string                       `toml:"extensions"`
	Library    []string                       `toml:"library"`
	Syntax     SyntaxSection                  `toml:"syntax"`
	Theme      map[string]highlight.StyleSpec `toml:"theme"`
	Functions  []Entry                        `toml:"functions"`
}

// SyntaxSection holds the lexical rules of a language file. Empty
// patterns select the syntax package defaults.
type SyntaxSection struct {
	Reserved   []string `toml:"reserved"`
	Identifier string   `toml:"identifier"`
	Symbol     string   `toml:"symbol"`
	Delimiters string   `toml:"delimiters"`
	Open       string   `toml:"open"`
	Close      string   `toml:"close"`
	Joiner     string   `toml:"joiner"`
}

// Options converts the section to syntax options.
func (s SyntaxSection) Options() syntax.Options {
	return syntax.Options{
		Reserved:   s.Reserved,
		Identifier: s.Identifier,
		Symbol:     s.Symbol,
		Delimiters: s.Delimiters,
		Open:       s.Open,
		Close:      s.Close,
		Joiner:     s.Joiner,
	}
}

// Entry is one function library node.
type Entry struct {
	Name     string  `toml:"name"`
	Label    string  `toml:"label"`
	Tooltip  string  `toml:"tooltip"`
	Closer   string  `toml:"closer"`
	Children []Entry `toml:"children"`
}

// Load reads and builds the language file at path, including the library
// files it lists.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading language file %s: %w", path, err)
	}
	b, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	b.Path = path
	return b, nil
}

// Parse builds a bundle from language file data. source names the data in
// errors and anchors relative library paths.
func Parse(source string, data []byte) (*Bundle, error) {
	f, err := decode(source, data)
	if err != nil {
		return nil, err
	}
	return Build(f, filepath.Dir(source))
}

func decode(source string, data []byte) (*File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, tomlParseError(source, err)
	}
	return &f, nil
}

// tomlParseError converts go-toml errors, keeping their position.
func tomlParseError(source string, err error) error {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
		return pe
	}
	var serr *toml.StrictMissingError
	if errors.As(err, &serr) && len(serr.Errors) > 0 {
		pe.Line, pe.Column = serr.Errors[0].Position()
		pe.Message = "unknown field " + strings.Join(serr.Errors[0].Key(), ".")
	}
	return pe
}

// Build compiles a decoded language file. Library files are resolved
// relative to dir.
func Build(f *File, dir string) (*Bundle, error) {
	if strings.TrimSpace(f.Name) == "" {
		return nil, ErrNoName
	}

	def, err := syntax.New(f.Syntax.Options())
	if err != nil {
		return nil, fmt.Errorf("language %s: %w", f.Name, err)
	}

	tree := library.New()
	if err := AddEntries(tree, library.Root, f.Functions); err != nil {
		return nil, fmt.Errorf("language %s: %w", f.Name, err)
	}
	libs := make([]string, 0, len(f.Library))
	for _, lib := range f.Library {
		p := lib
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		if err := LoadLibraryFile(tree, def, p); err != nil {
			return nil, fmt.Errorf("language %s: %w", f.Name, err)
		}
		libs = append(libs, p)
	}

	theme := highlight.DefaultTheme()
	if len(f.Theme) > 0 {
		if theme, err = theme.WithTokenStyles(f.Theme); err != nil {
			return nil, fmt.Errorf("language %s: theme: %w", f.Name, err)
		}
	}
	theme.Name = f.Name

	return &Bundle{
		Name:       f.Name,
		Extensions: normalizeExtensions(f.Extensions),
		Libraries:  libs,
		Syntax:     def,
		Tree:       tree,
		Theme:      theme,
	}, nil
}

// AddEntries appends entries, and their children, under parent. Names are
// derived from labels where missing, and colliding sibling names are
// renamed.
func AddEntries(tree *library.Tree, parent library.NodeID, entries []Entry) error {
	siblings := tree.Names(parent)
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = naming.FunctionName(e.Label)
		}
		if name == "" {
			return fmt.Errorf("entry %d under %q: %w", i, tree.Name(parent), ErrInvalidEntry)
		}
		name = naming.Dedupe(name, append(siblings, name))
		siblings = append(siblings, name)

		id, err := tree.Add(parent, name, e.Tooltip, e.Closer)
		if err != nil {
			return fmt.Errorf("adding %q: %w", name, err)
		}
		if err := AddEntries(tree, id, e.Children); err != nil {
			return err
		}
	}
	return nil
}

// LoadLibraryFile adds the nodes of a JSON or Lua library file to tree.
func LoadLibraryFile(tree *library.Tree, def *syntax.Definition, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading library %s: %w", path, err)
		}
		return LoadJSONLibrary(tree, path, data)
	case ".lua":
		return RunLuaLibrary(tree, def, path)
	}
	return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

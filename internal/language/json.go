package language

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/scriptedit/internal/library"
)

// LoadJSONLibrary adds the entries of a JSON library to the root of tree.
// The document is an array of objects with the keys name, label, tooltip,
// closer and children.
func LoadJSONLibrary(tree *library.Tree, source string, data []byte) error {
	if !gjson.ValidBytes(data) {
		return &ParseError{Path: source, Message: "invalid JSON"}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return &ParseError{Path: source, Line: lineAt(data, doc.Index), Message: "top level is not an array", Err: ErrNotArray}
	}

	entries, err := jsonEntries(source, data, doc, true)
	if err != nil {
		return err
	}
	return AddEntries(tree, library.Root, entries)
}

// jsonEntries converts an array of entry objects. Only top-level values
// carry offsets into data, so nested errors have no line.
func jsonEntries(source string, data []byte, arr gjson.Result, top bool) ([]Entry, error) {
	line := func(r gjson.Result) int {
		if !top {
			return 0
		}
		return lineAt(data, r.Index)
	}

	var (
		out []Entry
		err error
	)
	arr.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			err = &ParseError{
				Path:    source,
				Line:    line(v),
				Message: fmt.Sprintf("library entry must be an object, got %s", v.Type),
			}
			return false
		}

		e := Entry{
			Name:    v.Get("name").String(),
			Label:   v.Get("label").String(),
			Tooltip: v.Get("tooltip").String(),
			Closer:  v.Get("closer").String(),
		}
		if children := v.Get("children"); children.Exists() {
			if !children.IsArray() {
				err = &ParseError{
					Path:    source,
					Line:    line(v),
					Message: "children must be an array",
					Err:     ErrNotArray,
				}
				return false
			}
			if e.Children, err = jsonEntries(source, data, children, false); err != nil {
				return false
			}
		}
		out = append(out, e)
		return true
	})
	return out, err
}

// lineAt returns the 1-based line of byte offset off, or 0 when unknown.
func lineAt(data []byte, off int) int {
	if off <= 0 || off > len(data) {
		return 0
	}
	return bytes.Count(data[:off], []byte("\n")) + 1
}

// Package library provides the function library: an ordered, rooted tree
// of callable and member symbols used for highlighting and completion.
//
// Nodes live in an arena and are addressed by NodeID. The root sentinel is
// always Root and carries no data; its children are the top-level symbols.
// Child order is insertion order and defines both display order and
// tie-break order for matching.
package library

import (
	"regexp"
)

// NodeID addresses a node in a Tree.
type NodeID int

const (
	// Root is the sentinel root node.
	Root NodeID = 0

	// NotFound is returned by lookups that do not resolve.
	NotFound NodeID = -1
)

// Column selects a data field of a node.
type Column int

// Node data columns.
const (
	ColumnName    Column = iota // symbol name
	ColumnTooltip               // tooltip / signature text
	ColumnCloser                // token expected right after the name
)

type node struct {
	name     string
	tooltip  string
	closer   string
	parent   NodeID
	depth    int
	children []NodeID
	pattern  *regexp.Regexp
}

// Tree is a function library. Build it with Add, then treat it as
// read-only; concurrent readers are safe once construction is done.
type Tree struct {
	nodes []node
}

// New creates an empty tree holding only the root sentinel.
func New() *Tree {
	return &Tree{
		nodes: []node{{parent: NotFound}},
	}
}

// Add appends a child to parent and returns its id.
func (t *Tree) Add(parent NodeID, name, tooltip, closer string) (NodeID, error) {
	if !t.Valid(parent) {
		return NotFound, ErrNotFound
	}
	if name == "" {
		return NotFound, ErrEmptyName
	}

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		name:    name,
		tooltip: tooltip,
		closer:  closer,
		parent:  parent,
		depth:   t.nodes[parent].depth + 1,
		pattern: nodePattern(name, closer),
	})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id, nil
}

// nodePattern matches the word-bounded name optionally followed by the
// closer with surrounding whitespace.
func nodePattern(name, closer string) *regexp.Regexp {
	expr := regexp.QuoteMeta(name)
	if isWordByte(name[0]) {
		expr = `\b` + expr
	}
	if isWordByte(name[len(name)-1]) {
		expr += `\b`
	}
	if closer != "" {
		expr += `(?:\s*` + regexp.QuoteMeta(closer) + `\s*)?`
	}
	return regexp.MustCompile(expr)
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Len returns the number of nodes, root excluded.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Valid reports whether id addresses a node of t.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// IsRoot reports whether id is the root sentinel.
func (t *Tree) IsRoot(id NodeID) bool {
	return id == Root
}

// ChildCount returns the number of children of id, 0 for invalid ids.
func (t *Tree) ChildCount(id NodeID) int {
	if !t.Valid(id) {
		return 0
	}
	return len(t.nodes[id].children)
}

// Child returns the i-th child of id, or NotFound.
func (t *Tree) Child(id NodeID, i int) NodeID {
	if !t.Valid(id) || i < 0 || i >= len(t.nodes[id].children) {
		return NotFound
	}
	return t.nodes[id].children[i]
}

// Children returns the children of id in order. The slice must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.Valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// Parent returns the parent of id. The root and invalid ids yield NotFound.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.Valid(id) {
		return NotFound
	}
	return t.nodes[id].parent
}

// Depth returns the distance from the root; top-level symbols have depth 1.
func (t *Tree) Depth(id NodeID) int {
	if !t.Valid(id) {
		return -1
	}
	return t.nodes[id].depth
}

// Data returns a data column of id. The root and invalid ids yield "".
func (t *Tree) Data(id NodeID, col Column) string {
	if !t.Valid(id) {
		return ""
	}
	n := &t.nodes[id]
	switch col {
	case ColumnName:
		return n.name
	case ColumnTooltip:
		return n.tooltip
	case ColumnCloser:
		return n.closer
	}
	return ""
}

// Name returns the name of id.
func (t *Tree) Name(id NodeID) string { return t.Data(id, ColumnName) }

// Tooltip returns the tooltip of id.
func (t *Tree) Tooltip(id NodeID) string { return t.Data(id, ColumnTooltip) }

// Closer returns the closer token of id.
func (t *Tree) Closer(id NodeID) string { return t.Data(id, ColumnCloser) }

// Pattern returns the compiled name+closer pattern of id, nil for the root.
func (t *Tree) Pattern(id NodeID) *regexp.Regexp {
	if !t.Valid(id) {
		return nil
	}
	return t.nodes[id].pattern
}

// GetItem resolves a path of names from the root. An empty path yields
// Root; an unresolvable path yields NotFound. The first child with a
// matching name wins at every level.
func (t *Tree) GetItem(path []string) NodeID {
	id := Root
	for _, name := range path {
		next := NotFound
		for _, c := range t.nodes[id].children {
			if t.nodes[c].name == name {
				next = c
				break
			}
		}
		if next == NotFound {
			return NotFound
		}
		id = next
	}
	return id
}

// Walk visits every node below the root depth-first in sibling order.
// Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(id NodeID) bool) {
	t.walk(Root, fn)
}

func (t *Tree) walk(id NodeID, fn func(NodeID) bool) bool {
	for _, c := range t.nodes[id].children {
		if !fn(c) {
			return false
		}
		if !t.walk(c, fn) {
			return false
		}
	}
	return true
}

// Find returns the first node named name in walk order, or NotFound.
func (t *Tree) Find(name string) NodeID {
	found := NotFound
	t.Walk(func(id NodeID) bool {
		if t.nodes[id].name == name {
			found = id
			return false
		}
		return true
	})
	return found
}

// Names returns the names of the children of id in order.
func (t *Tree) Names(id NodeID) []string {
	children := t.Children(id)
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = t.nodes[c].name
	}
	return out
}

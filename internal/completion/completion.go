package completion

import (
	"strings"

	"github.com/dshills/scriptedit/internal/library"
	"github.com/dshills/scriptedit/internal/syntax"
)

// Phase is the state of the completion popup.
type Phase int

// Completion phases.
const (
	PhaseIdle Phase = iota
	PhaseShowing
	PhaseAccepting
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseShowing:
		return "showing"
	case PhaseAccepting:
		return "accepting"
	}
	return "unknown"
}

// Candidate is a completion suggestion.
type Candidate struct {
	// Node is the library node behind the candidate.
	Node library.NodeID
	// Name is the node name; acceptance completes toward it.
	Name string
	// Path is the fully-qualified name (see PathFromIndex).
	Path string
	// Tooltip is the node's signature text.
	Tooltip string
	// Closer is the token expected right after the name.
	Closer string
}

// State holds the current completion session.
type State struct {
	// Prefix is the text being completed.
	Prefix string
	// Qualifier is the resolved path left of the prefix, if any.
	Qualifier []string
	// Items holds the candidates in tree order.
	Items []Candidate
	// Selected is the highlighted row.
	Selected int
}

// Completer matches prefixes against a function library.
type Completer struct {
	def  *syntax.Definition
	tree *library.Tree

	// entries is the tree flattened depth-first, built once.
	entries []Candidate

	phase Phase
	state State
}

// New creates a Completer. A nil def or tree yields a Completer that
// never shows candidates.
func New(def *syntax.Definition, tree *library.Tree) *Completer {
	c := &Completer{def: def, tree: tree}
	if def == nil || tree == nil {
		return c
	}
	tree.Walk(func(id library.NodeID) bool {
		c.entries = append(c.entries, Candidate{
			Node:    id,
			Name:    tree.Name(id),
			Path:    c.PathFromIndex(id),
			Tooltip: tree.Tooltip(id),
			Closer:  tree.Closer(id),
		})
		return true
	})
	return c
}

// PathFromIndex builds the qualified name of id. Walking up to the root,
// each ancestor contributes its name followed by its closer, or by the
// path joiner when it has none. The root contributes nothing.
func (c *Completer) PathFromIndex(id library.NodeID) string {
	if c.tree == nil || !c.tree.Valid(id) || c.tree.IsRoot(id) {
		return ""
	}

	path := c.tree.Name(id)
	for p := c.tree.Parent(id); p != library.NotFound && !c.tree.IsRoot(p); p = c.tree.Parent(p) {
		sep := c.tree.Closer(p)
		if sep == "" {
			sep = c.joiner()
		}
		path = c.tree.Name(p) + sep + path
	}
	return path
}

// SplitPath removes parenthesis groups from path and splits the rest on
// the path joiner. An unclosed opening token, as left by a parent whose
// closer is "(", also separates segments.
func (c *Completer) SplitPath(path string) []string {
	if c.def != nil {
		path = c.def.StripParenGroups(path)
		path = c.def.ReplaceOpen(path, c.joiner())
	}
	parts := strings.Split(path, c.joiner())
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Completer) joiner() string {
	if c.def == nil {
		return syntax.DefaultJoiner
	}
	return c.def.Joiner()
}

// WordUnderCursor returns the prefix for a cursor at byte column col of
// line: the last identifier found in the line truncated at the cursor.
// When no identifier occurs, fallback supplies the host's own word under
// the cursor.
func (c *Completer) WordUnderCursor(line string, col int, fallback func() string) string {
	m, ok := c.lastIdentifier(line, col)
	if ok {
		return m.Text
	}
	if fallback != nil {
		return fallback()
	}
	return ""
}

func (c *Completer) lastIdentifier(line string, col int) (syntax.Match, bool) {
	if c.def == nil {
		return syntax.Match{}, false
	}
	text := truncate(line, col)

	var last syntax.Match
	found := false
	for pos := 0; pos < len(text); {
		m, ok := c.def.NextIdentifier(text, pos)
		if !ok {
			break
		}
		last, found = m, true
		pos = m.End
	}
	return last, found
}

// qualifierBefore returns the qualifier chain ending right at column end,
// e.g. ["Mesh"] for "x = Mesh." when end is the length of the text.
func (c *Completer) qualifierBefore(text string, end int) ([]string, bool) {
	text = truncate(text, end)
	joiner := c.def.Joiner()
	trimmed := strings.TrimRight(text, " \t")
	if !strings.HasSuffix(trimmed, joiner) {
		return nil, false
	}

	var chain syntax.Match
	found := false
	for pos := 0; pos < len(trimmed); {
		m, ok := c.def.NextSymbol(trimmed, pos)
		if !ok {
			break
		}
		chain, found = m, true
		pos = m.End
	}
	if !found || chain.End != len(trimmed) {
		return nil, false
	}
	return c.SplitPath(strings.TrimSuffix(chain.Text, joiner)), true
}

// Filter returns every library entry whose name starts with prefix, in
// tree order. Matching is case-sensitive.
func (c *Completer) Filter(prefix string) []Candidate {
	var out []Candidate
	for _, e := range c.entries {
		if strings.HasPrefix(e.Name, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// FilterIn returns the children of the node at qualifier whose name starts
// with prefix. An unresolvable qualifier yields no candidates.
func (c *Completer) FilterIn(qualifier []string, prefix string) []Candidate {
	if c.tree == nil {
		return nil
	}
	parent := c.tree.GetItem(qualifier)
	if parent == library.NotFound {
		return nil
	}
	var out []Candidate
	for _, e := range c.entries {
		if c.tree.Parent(e.Node) == parent && strings.HasPrefix(e.Name, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// Update recomputes the prefix and candidates for a cursor at column col
// of line. It returns true when the popup should be visible.
func (c *Completer) Update(line string, col int, fallback func() string) bool {
	if c.def == nil || c.tree == nil {
		c.Cancel()
		return false
	}

	var (
		prefix    string
		qualifier []string
		items     []Candidate
	)
	if m, ok := c.lastIdentifier(line, col); ok {
		prefix = m.Text
		qualifier, _ = c.qualifierBefore(line, m.Start)
	} else {
		if fallback != nil {
			prefix = fallback()
		}
	}

	switch {
	case qualifier != nil:
		items = c.FilterIn(qualifier, prefix)
	case prefix != "":
		items = c.Filter(prefix)
	}

	if len(items) == 0 {
		c.Cancel()
		c.state.Prefix = prefix
		return false
	}

	c.state = State{
		Prefix:    prefix,
		Qualifier: qualifier,
		Items:     items,
	}
	c.phase = PhaseShowing
	return true
}

// Phase returns the current phase.
func (c *Completer) Phase() Phase {
	return c.phase
}

// Visible reports whether the popup is showing.
func (c *Completer) Visible() bool {
	return c.phase == PhaseShowing
}

// State returns a copy of the current session state.
func (c *Completer) State() State {
	s := c.state
	s.Items = append([]Candidate(nil), c.state.Items...)
	return s
}

// Prefix returns the current completion prefix.
func (c *Completer) Prefix() string {
	return c.state.Prefix
}

// Selected returns the highlighted candidate.
func (c *Completer) Selected() (Candidate, bool) {
	if c.phase != PhaseShowing || len(c.state.Items) == 0 {
		return Candidate{}, false
	}
	return c.state.Items[c.state.Selected], true
}

// Select highlights row, clamped to the candidate list.
func (c *Completer) Select(row int) {
	n := len(c.state.Items)
	if n == 0 {
		return
	}
	if row < 0 {
		row = 0
	}
	if row >= n {
		row = n - 1
	}
	c.state.Selected = row
}

// Move moves the highlighted row by delta, wrapping around.
func (c *Completer) Move(delta int) {
	n := len(c.state.Items)
	if c.phase != PhaseShowing || n == 0 {
		return
	}
	c.state.Selected += delta
	if c.state.Selected < 0 {
		c.state.Selected = n - 1
	} else if c.state.Selected >= n {
		c.state.Selected = 0
	}
}

// Insertion is the text accepting a candidate adds around the typed
// prefix, which ends at the cursor.
type Insertion struct {
	// Before goes in front of the prefix. It holds the qualifier of a
	// nested candidate reached without typing one, e.g. "Mesh." for
	// vertexNumber.
	Before string
	// After goes at the cursor and completes the prefix.
	After string
}

// Accept completes the highlighted candidate and hides the popup. The
// result turns the prefix into the candidate's Path, or into its Name
// when a qualifier was typed.
func (c *Completer) Accept() (Insertion, bool) {
	cand, ok := c.Selected()
	if !ok {
		return Insertion{}, false
	}
	c.phase = PhaseAccepting
	ins := Insertion{After: Suffix(cand.Name, c.state.Prefix)}
	if c.state.Qualifier == nil {
		ins.Before = Qualifier(cand)
	}
	c.Cancel()
	return ins, true
}

// Qualifier returns the part of cand.Path in front of its name.
func Qualifier(cand Candidate) string {
	if len(cand.Path) <= len(cand.Name) || !strings.HasSuffix(cand.Path, cand.Name) {
		return ""
	}
	return cand.Path[:len(cand.Path)-len(cand.Name)]
}

// Cancel hides the popup and clears the candidate list.
func (c *Completer) Cancel() {
	c.phase = PhaseIdle
	c.state.Items = nil
	c.state.Selected = 0
	c.state.Qualifier = nil
}

// Suffix returns the trailing len(candidate)-len(prefix) bytes of
// candidate: the part still to be typed.
func Suffix(candidate, prefix string) string {
	extra := len(candidate) - len(prefix)
	if extra <= 0 {
		return ""
	}
	return candidate[len(candidate)-extra:]
}

func truncate(line string, col int) string {
	if col < 0 {
		return ""
	}
	if col > len(line) {
		return line
	}
	return line[:col]
}

package session

import (
	"fmt"
	"strings"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/scriptedit/internal/completion"
	"github.com/dshills/scriptedit/internal/highlight"
	"github.com/dshills/scriptedit/internal/library"
	"github.com/dshills/scriptedit/internal/syntax"
)

// Key identifies a special key delivered to HandleKey.
type Key int

// Keys handled by the Editor. Everything else is KeyOther and passes
// through to the host.
const (
	KeyOther Key = iota
	KeyEnter
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyBackspace
)

// pageSize is the row delta for PageUp and PageDown.
const pageSize = 10

// Host is the text engine the Editor edits through.
type Host interface {
	// CurrentLine returns the text of the line holding the cursor.
	CurrentLine() string
	// Cursor returns the cursor line and byte column.
	Cursor() (line, col int)
	// SetCursor moves the cursor.
	SetCursor(line, col int)
	// InsertText inserts text at the cursor and moves the cursor past it.
	InsertText(text string)
	// LeadingWhitespace returns the leading blanks of a line.
	LeadingWhitespace(line int) string
	// WordUnderCursor returns the host's own notion of the current word.
	WordUnderCursor() string
}

// Popup is the widget listing completion candidates.
type Popup interface {
	SetModel(items []completion.Candidate)
	CurrentRow() int
	SetCurrentRow(row int)
	SetVisible(visible bool)
	Visible() bool
}

// Editor routes input between a Host, a Popup and the active Session.
type Editor struct {
	host  Host
	popup Popup

	current atomic.Pointer[Session]

	// provider, when set, follows the active session's highlighter.
	provider *highlight.Provider
}

// NewEditor creates an Editor with an inert session. popup may be nil,
// in which case completion state is tracked without being displayed.
func NewEditor(host Host, popup Popup) (*Editor, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	e := &Editor{host: host, popup: popup}
	e.current.Store(New("", nil, nil))
	return e, nil
}

// Session returns the active session.
func (e *Editor) Session() *Session {
	return e.current.Load()
}

// SetProvider attaches a highlight provider. Session swaps install the
// new highlighter on it.
func (e *Editor) SetProvider(p *highlight.Provider) {
	e.provider = p
	if p != nil {
		p.SetHighlighter(e.Session().Highlighter())
	}
}

// SetSession makes s the active session. Any open popup is hidden.
func (e *Editor) SetSession(s *Session) error {
	if s == nil {
		return ErrNoSession
	}
	if old := e.current.Swap(s); old != nil {
		old.Completer().Cancel()
	}
	e.hidePopup()
	if e.provider != nil {
		e.provider.SetHighlighter(s.Highlighter())
	}
	return nil
}

// SetSyntax compiles opts and activates a session using it together with
// the current library. On a compile error the active session is kept.
func (e *Editor) SetSyntax(opts syntax.Options) error {
	def, err := syntax.New(opts)
	if err != nil {
		return fmt.Errorf("set syntax: %w", err)
	}
	cur := e.Session()
	return e.SetSession(New(cur.Language(), def, cur.Tree()))
}

// SetLibrary activates a session using tree and the current definition.
func (e *Editor) SetLibrary(tree *library.Tree) error {
	cur := e.Session()
	return e.SetSession(New(cur.Language(), cur.Definition(), tree))
}

// SetLanguage activates a fresh session for a named language.
func (e *Editor) SetLanguage(name string, def *syntax.Definition, tree *library.Tree) error {
	return e.SetSession(New(name, def, tree))
}

// InsertChar inserts text produced by a keystroke and refreshes the
// completion popup. Empty text (a bare modifier) and text containing a
// word delimiter never open the popup; a delimiter closes it.
func (e *Editor) InsertChar(text string) {
	if text != "" {
		e.host.InsertText(text)
	}

	s := e.Session()
	if !s.ShouldTrigger(text) {
		if text != "" {
			e.cancel(s)
		}
		return
	}
	e.refresh(s)
}

// Refresh recomputes the candidates for the current cursor position.
func (e *Editor) Refresh() {
	e.refresh(e.Session())
}

func (e *Editor) refresh(s *Session) {
	_, col := e.host.Cursor()
	c := s.Completer()
	if !c.Update(e.host.CurrentLine(), col, e.host.WordUnderCursor) {
		e.hidePopup()
		return
	}
	if e.popup != nil {
		st := c.State()
		e.popup.SetModel(st.Items)
		e.popup.SetCurrentRow(st.Selected)
		e.popup.SetVisible(true)
	}
}

// HandleKey processes a special key. It returns true when the key was
// consumed and the host must not apply its default action.
func (e *Editor) HandleKey(k Key) bool {
	s := e.Session()
	showing := s.Completer().Visible()

	switch k {
	case KeyEnter:
		if showing {
			e.accept(s)
			return true
		}
		e.newline()
		return true

	case KeyTab:
		if showing {
			e.accept(s)
			return true
		}
		return false

	case KeyEscape:
		if showing {
			e.cancel(s)
			return true
		}
		return false

	case KeyUp, KeyDown, KeyPageUp, KeyPageDown:
		if !showing {
			return false
		}
		e.syncRow(s)
		s.Completer().Move(moveDelta(k))
		if e.popup != nil {
			e.popup.SetCurrentRow(s.Completer().State().Selected)
		}
		return true

	case KeyBackspace:
		if showing {
			e.cancel(s)
		}
		return false
	}
	return false
}

func moveDelta(k Key) int {
	switch k {
	case KeyUp:
		return -1
	case KeyDown:
		return 1
	case KeyPageUp:
		return -pageSize
	case KeyPageDown:
		return pageSize
	}
	return 0
}

// Accept inserts the highlighted candidate, if the popup is showing.
func (e *Editor) Accept() bool {
	s := e.Session()
	if !s.Completer().Visible() {
		return false
	}
	e.accept(s)
	return true
}

func (e *Editor) accept(s *Session) {
	e.syncRow(s)
	prefix := s.Completer().Prefix()
	ins, ok := s.Completer().Accept()
	e.hidePopup()
	if !ok {
		return
	}
	if ins.Before != "" {
		line, col := e.host.Cursor()
		if start := col - len(prefix); start >= 0 {
			e.host.SetCursor(line, start)
			e.host.InsertText(ins.Before)
			e.host.SetCursor(line, col+len(ins.Before))
		}
	}
	if ins.After != "" {
		e.host.InsertText(ins.After)
	}
}

func (e *Editor) cancel(s *Session) {
	s.Completer().Cancel()
	e.hidePopup()
}

// syncRow adopts a row picked directly in the popup.
func (e *Editor) syncRow(s *Session) {
	if e.popup != nil {
		s.Completer().Select(e.popup.CurrentRow())
	}
}

func (e *Editor) hidePopup() {
	if e.popup != nil && e.popup.Visible() {
		e.popup.SetVisible(false)
	}
}

// newline inserts a line break. When the current line starts with a run
// of tabs directly followed by a word character, the run is repeated on
// the new line.
func (e *Editor) newline() {
	line, _ := e.host.Cursor()
	indent := tabIndent(e.host.CurrentLine(), e.host.LeadingWhitespace(line))
	e.host.InsertText("\n" + indent)
}

func tabIndent(text, lead string) string {
	if lead == "" || strings.Trim(lead, "\t") != "" || !strings.HasPrefix(text, lead) {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(text[len(lead):])
	if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return lead
	}
	return ""
}

// Tooltip returns the signature text of the highlighted candidate.
func (e *Editor) Tooltip() string {
	cand, ok := e.Session().Completer().Selected()
	if !ok {
		return ""
	}
	return cand.Tooltip
}

// Candidates returns the candidates currently offered.
func (e *Editor) Candidates() []completion.Candidate {
	return e.Session().Completer().State().Items
}

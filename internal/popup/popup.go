// Package popup implements the completion candidate list shown under the
// cursor. It keeps the model, highlighted row, visibility and scroll
// offset, and computes its preferred size from the display width of its
// rows. Drawing is left to the frontend.
package popup

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/scriptedit/internal/completion"
)

// Default limits.
const (
	DefaultMaxRows  = 8
	DefaultMaxWidth = 60

	// scrollbarWidth is the column reserved for the scroll indicator.
	scrollbarWidth = 1
)

// Row is one visible popup line.
type Row struct {
	Text     string
	Selected bool
}

// List is a scrolling list of completion candidates.
type List struct {
	items   []completion.Candidate
	row     int
	top     int
	visible bool

	maxRows  int
	maxWidth int
}

// New creates a List showing at most maxRows rows, each at most maxWidth
// cells wide. Non-positive limits select the defaults.
func New(maxRows, maxWidth int) *List {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	return &List{maxRows: maxRows, maxWidth: maxWidth}
}

// SetModel replaces the candidates and resets the highlighted row.
func (l *List) SetModel(items []completion.Candidate) {
	l.items = items
	l.row = 0
	l.top = 0
}

// Items returns the current candidates.
func (l *List) Items() []completion.Candidate {
	return l.items
}

// CurrentRow returns the highlighted row.
func (l *List) CurrentRow() int {
	return l.row
}

// SetCurrentRow highlights row, clamped to the model, and scrolls it into
// view.
func (l *List) SetCurrentRow(row int) {
	if len(l.items) == 0 {
		l.row = 0
		return
	}
	if row < 0 {
		row = 0
	}
	if row >= len(l.items) {
		row = len(l.items) - 1
	}
	l.row = row

	if l.row < l.top {
		l.top = l.row
	}
	if l.row >= l.top+l.maxRows {
		l.top = l.row - l.maxRows + 1
	}
}

// SetVisible shows or hides the list. An empty list never shows.
func (l *List) SetVisible(visible bool) {
	l.visible = visible && len(l.items) > 0
}

// Visible reports whether the list is showing.
func (l *List) Visible() bool {
	return l.visible
}

// PreferredSize returns the width and height the list wants: the widest
// row plus the scrollbar column, and one line per row up to the limit.
func (l *List) PreferredSize() (width, height int) {
	for _, it := range l.items {
		if w := runewidth.StringWidth(label(it)); w > width {
			width = w
		}
	}
	if width > l.maxWidth {
		width = l.maxWidth
	}
	if len(l.items) > 0 {
		width += scrollbarWidth
	}

	height = len(l.items)
	if height > l.maxRows {
		height = l.maxRows
	}
	return width, height
}

// Rows returns the visible rows, each truncated to the content width.
func (l *List) Rows() []Row {
	width, height := l.PreferredSize()
	width -= scrollbarWidth

	rows := make([]Row, 0, height)
	for i := l.top; i < len(l.items) && i < l.top+height; i++ {
		rows = append(rows, Row{
			Text:     runewidth.Truncate(label(l.items[i]), width, "…"),
			Selected: i == l.row,
		})
	}
	return rows
}

// Scrollable reports whether some rows are out of view.
func (l *List) Scrollable() bool {
	return len(l.items) > l.maxRows
}

// Tooltip returns the tooltip of the highlighted row.
func (l *List) Tooltip() string {
	if !l.visible || l.row >= len(l.items) {
		return ""
	}
	return l.items[l.row].Tooltip
}

func label(c completion.Candidate) string {
	if c.Path != "" {
		return c.Path
	}
	return c.Name
}

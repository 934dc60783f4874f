// Package textbuf is a small line buffer with a single cursor. It is the
// text engine behind the bundled frontends and satisfies session.Host.
//
// Columns are byte offsets into the line.
package textbuf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Buffer holds lines of text and a cursor.
type Buffer struct {
	lines []string
	line  int
	col   int
	dirty bool

	// wordFunc, when set, picks the fallback word from the text left of
	// the cursor.
	wordFunc func(string) string
}

// New creates a buffer holding text with the cursor at the start.
// CRLF line endings are normalized.
func New(text string) *Buffer {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Buffer{lines: strings.Split(text, "\n")}
}

// Text returns the buffer content.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines. It is at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line i, or "" when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// Dirty reports whether the buffer changed since the last MarkClean.
func (b *Buffer) Dirty() bool { return b.dirty }

// MarkClean clears the dirty flag.
func (b *Buffer) MarkClean() { b.dirty = false }

// SetWordFunc installs the function computing the fallback word under
// the cursor, such as syntax.Definition.LastWord.
func (b *Buffer) SetWordFunc(fn func(string) string) {
	b.wordFunc = fn
}

// CurrentLine returns the cursor line.
func (b *Buffer) CurrentLine() string {
	return b.lines[b.line]
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() (line, col int) {
	return b.line, b.col
}

// SetCursor moves the cursor, clamping to the buffer.
func (b *Buffer) SetCursor(line, col int) {
	if line < 0 {
		line = 0
	}
	if line >= len(b.lines) {
		line = len(b.lines) - 1
	}
	b.line = line
	b.col = clampCol(b.lines[line], col)
}

// InsertText inserts text at the cursor and leaves the cursor after it.
func (b *Buffer) InsertText(text string) {
	if text == "" {
		return
	}
	cur := b.lines[b.line]
	before, after := cur[:b.col], cur[b.col:]

	parts := strings.Split(before+text, "\n")
	last := len(parts) - 1
	b.col = len(parts[last])
	parts[last] += after

	lines := make([]string, 0, len(b.lines)+last)
	lines = append(lines, b.lines[:b.line]...)
	lines = append(lines, parts...)
	lines = append(lines, b.lines[b.line+1:]...)
	b.lines = lines
	b.line += last
	b.dirty = true
}

// Backspace deletes the rune left of the cursor, joining lines at column 0.
func (b *Buffer) Backspace() {
	ln := b.lines[b.line]
	switch {
	case b.col > 0:
		_, size := utf8.DecodeLastRuneInString(ln[:b.col])
		b.lines[b.line] = ln[:b.col-size] + ln[b.col:]
		b.col -= size
	case b.line > 0:
		prev := b.lines[b.line-1]
		b.lines[b.line-1] = prev + ln
		b.lines = append(b.lines[:b.line], b.lines[b.line+1:]...)
		b.line--
		b.col = len(prev)
	default:
		return
	}
	b.dirty = true
}

// Delete deletes the rune under the cursor, joining lines at line end.
func (b *Buffer) Delete() {
	ln := b.lines[b.line]
	switch {
	case b.col < len(ln):
		_, size := utf8.DecodeRuneInString(ln[b.col:])
		b.lines[b.line] = ln[:b.col] + ln[b.col+size:]
	case b.line < len(b.lines)-1:
		b.lines[b.line] += b.lines[b.line+1]
		b.lines = append(b.lines[:b.line+1], b.lines[b.line+2:]...)
	default:
		return
	}
	b.dirty = true
}

// MoveLeft moves the cursor one rune left, wrapping to the previous line.
func (b *Buffer) MoveLeft() {
	if b.col > 0 {
		_, size := utf8.DecodeLastRuneInString(b.lines[b.line][:b.col])
		b.col -= size
	} else if b.line > 0 {
		b.line--
		b.col = len(b.lines[b.line])
	}
}

// MoveRight moves the cursor one rune right, wrapping to the next line.
func (b *Buffer) MoveRight() {
	ln := b.lines[b.line]
	if b.col < len(ln) {
		_, size := utf8.DecodeRuneInString(ln[b.col:])
		b.col += size
	} else if b.line < len(b.lines)-1 {
		b.line++
		b.col = 0
	}
}

// MoveUp moves the cursor n lines up.
func (b *Buffer) MoveUp(n int) {
	b.SetCursor(b.line-n, b.col)
}

// MoveDown moves the cursor n lines down.
func (b *Buffer) MoveDown(n int) {
	b.SetCursor(b.line+n, b.col)
}

// Home moves the cursor to the line start.
func (b *Buffer) Home() { b.col = 0 }

// End moves the cursor to the line end.
func (b *Buffer) End() { b.col = len(b.lines[b.line]) }

// LeadingWhitespace returns the spaces and tabs starting line.
func (b *Buffer) LeadingWhitespace(line int) string {
	s := b.Line(line)
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// WordUnderCursor returns the word ending at the cursor. Without a word
// function it is the run of letters, digits and underscores left of the
// cursor.
func (b *Buffer) WordUnderCursor() string {
	left := b.lines[b.line][:b.col]
	if b.wordFunc != nil {
		return b.wordFunc(left)
	}
	start := len(left)
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(left[:start])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		start -= size
	}
	return left[start:]
}

// clampCol keeps col inside line and on a rune boundary.
func clampCol(line string, col int) int {
	if col < 0 {
		return 0
	}
	if col > len(line) {
		return len(line)
	}
	for col > 0 && col < len(line) && !utf8.RuneStart(line[col]) {
		col--
	}
	return col
}

package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/scriptedit/internal/highlight"
)

// Draw renders the buffer, the popup and the status line.
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	textH := a.textHeight()
	line, col := a.buf.Cursor()
	a.scrollTo(line, textH)

	gw := 0
	if a.cfg.Editor.ShowLineNumbers {
		gw = LineNumberAreaWidth(a.buf.LineCount())
	}

	for row := 0; row < textH && a.top+row < a.buf.LineCount(); row++ {
		i := a.top + row
		base := a.theme.Base
		if i == line && a.cfg.Editor.HighlightCurrentLine {
			base = a.theme.LineHighlight
			fill(a.screen, gw, row, w-gw, base)
		}
		if gw > 0 {
			drawString(a.screen, 0, row, gw, gutterLabel(i, gw), a.theme.Gutter)
		}
		a.drawLine(gw, row, w, i, base)
	}

	text := a.buf.Line(line)
	cx := gw + a.displayWidth(text[:col])
	cy := line - a.top
	a.screen.ShowCursor(cx, cy)

	if a.popup.Visible() {
		prefix := a.editor.Session().Completer().Prefix()
		a.drawPopup(cx-runewidth.StringWidth(prefix), cy, w, textH)
	}
	if a.cfg.UI.StatusLine && h > 0 {
		a.drawStatus(h-1, w, line, col)
	}
	a.screen.Show()
}

// textHeight is the number of screen rows available to the buffer.
func (a *App) textHeight() int {
	_, h := a.screen.Size()
	if a.cfg.UI.StatusLine {
		h--
	}
	return max(1, h)
}

func (a *App) scrollTo(line, height int) {
	if line < a.top {
		a.top = line
	}
	if line >= a.top+height {
		a.top = line - height + 1
	}
}

// drawLine draws buffer line i at screen row, starting at column x0.
func (a *App) drawLine(x0, row, w, i int, base tcell.Style) {
	spans := a.provider.HighlightsForLine(uint32(i))
	tab := a.tabWidth()
	x := x0
	for off, r := range a.buf.Line(i) {
		if x >= w {
			return
		}
		style := styleAt(spans, off, base)
		if r == '\t' {
			n := tab - (x-x0)%tab
			fill(a.screen, x, row, min(n, w-x), style)
			x += n
			continue
		}
		rw := runewidth.RuneWidth(r)
		if x+rw > w {
			return
		}
		a.screen.SetContent(x, row, r, nil, style)
		x += rw
	}
}

// styleAt returns the token style covering byte offset off, drawn over the
// background of base.
func styleAt(spans []highlight.StyleSpan, off int, base tcell.Style) tcell.Style {
	for _, sp := range spans {
		if uint32(off) < sp.StartCol || uint32(off) >= sp.EndCol {
			continue
		}
		fg, _, attrs := sp.Style.Decompose()
		_, bg, _ := base.Decompose()
		return tcell.StyleDefault.Foreground(fg).Background(bg).Attributes(attrs)
	}
	return base
}

// displayWidth returns the cells s occupies, with tabs expanded.
func (a *App) displayWidth(s string) int {
	tab := a.tabWidth()
	x := 0
	for _, r := range s {
		if r == '\t' {
			x += tab - x%tab
			continue
		}
		x += runewidth.RuneWidth(r)
	}
	return x
}

func (a *App) tabWidth() int {
	return max(1, a.cfg.Editor.TabWidth)
}

// drawPopup places the completion list below the cursor row, or above it
// when there is no room below.
func (a *App) drawPopup(x, cy, w, textH int) {
	pw, ph := a.popup.PreferredSize()
	if pw == 0 || ph == 0 {
		return
	}
	if x+pw > w {
		x = w - pw
	}
	x = max(0, x)

	y := cy + 1
	if y+ph > textH {
		y = max(0, cy-ph)
	}

	rows := a.popup.Rows()
	n := len(a.popup.Items())
	thumb := -1
	if a.popup.Scrollable() && n > 1 {
		thumb = a.popup.CurrentRow() * (ph - 1) / (n - 1)
	}

	for i, r := range rows {
		style := a.theme.Popup
		if r.Selected {
			style = a.theme.PopupSelected
		}
		drawString(a.screen, x, y+i, pw-1, r.Text, style)
		bar := ' '
		if i == thumb {
			bar = '█'
		}
		a.screen.SetContent(x+pw-1, y+i, bar, nil, a.theme.Popup.Reverse(i == thumb))
	}
}

func (a *App) drawStatus(row, w, line, col int) {
	style := tcell.StyleDefault.Reverse(true)
	fill(a.screen, 0, row, w, style)

	right := fmt.Sprintf(" %s %d:%d ", a.language, line+1, col+1)
	if a.buf.Dirty() {
		right = " [+]" + right
	}
	rw := runewidth.StringWidth(right)

	left := a.editor.Tooltip()
	if left == "" {
		left = a.status
	}
	drawString(a.screen, 1, row, w-rw-2, left, style)
	drawString(a.screen, max(0, w-rw), row, rw, right, style)
}

// drawString draws s from x, padded or truncated to width cells.
func drawString(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	if width <= 0 {
		return
	}
	text = runewidth.Truncate(text, width, "…")
	end := x + width
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	fill(s, x, y, end-x, style)
}

func fill(s tcell.Screen, x, y, n int, style tcell.Style) {
	for i := 0; i < n; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}

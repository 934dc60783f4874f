package terminal

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// gutterPadding is the blank space around the line numbers.
const gutterPadding = 3

// LineNumberAreaWidth returns the gutter width for a buffer of lineCount
// lines: the digit count of the largest line number, at the display width
// of a digit, plus padding. An empty buffer still gets one digit.
func LineNumberAreaWidth(lineCount int) int {
	digits := len(strconv.Itoa(max(1, lineCount)))
	return gutterPadding + runewidth.StringWidth("9")*digits
}

// gutterLabel right-aligns the 1-based line number in a gutter of width w,
// leaving one blank column before the text.
func gutterLabel(line, w int) string {
	num := strconv.Itoa(line + 1)
	pad := w - 1 - len(num)
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + num + " "
}

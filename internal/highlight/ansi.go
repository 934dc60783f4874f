package highlight

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const ansiReset = "\x1b[0m"

// SGR returns the ANSI select-graphic-rendition sequence for style, or ""
// for the default style.
func SGR(style tcell.Style) string {
	fg, bg, attrs := style.Decompose()

	var codes []string
	if attrs&tcell.AttrBold != 0 {
		codes = append(codes, "1")
	}
	if attrs&tcell.AttrItalic != 0 {
		codes = append(codes, "3")
	}
	if attrs&tcell.AttrUnderline != 0 {
		codes = append(codes, "4")
	}
	if fg != tcell.ColorDefault {
		r, g, b := fg.RGB()
		codes = append(codes, "38;2;"+rgb(r, g, b))
	}
	if bg != tcell.ColorDefault {
		r, g, b := bg.RGB()
		codes = append(codes, "48;2;"+rgb(r, g, b))
	}
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func rgb(r, g, b int32) string {
	return strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b))
}

// RenderANSI returns line with each flattened token wrapped in the escape
// sequence of its theme style.
func RenderANSI(line string, tokens []Token, theme *Theme) string {
	if theme == nil {
		theme = DefaultTheme()
	}

	var b strings.Builder
	pos := 0
	for _, tok := range Flatten(tokens) {
		start, end := int(tok.StartCol), int(tok.EndCol)
		if start < pos || end > len(line) {
			continue
		}
		b.WriteString(line[pos:start])
		if seq := SGR(theme.StyleForToken(tok.Type)); seq != "" {
			b.WriteString(seq)
			b.WriteString(line[start:end])
			b.WriteString(ansiReset)
		} else {
			b.WriteString(line[start:end])
		}
		pos = end
	}
	b.WriteString(line[pos:])
	return b.String()
}

// HighlightANSI highlights line with h and renders it for a terminal.
func HighlightANSI(h Highlighter, theme *Theme, line string) string {
	if h == nil {
		return line
	}
	tokens, _ := h.HighlightLine(line, LexerStateNormal)
	return RenderANSI(line, tokens, theme)
}

package highlight

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme defines colors and styles for syntax highlighting.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Base is the style of unhighlighted text.
	Base tcell.Style

	// LineHighlight is the style of the line holding the cursor.
	LineHighlight tcell.Style

	// Gutter is the style of the line-number gutter.
	Gutter tcell.Style

	// Popup and PopupSelected style the completion popup rows.
	Popup         tcell.Style
	PopupSelected tcell.Style

	// TokenStyles maps token types to their styles.
	TokenStyles map[TokenType]tcell.Style
}

// StyleForToken returns the style for a given token type.
func (t *Theme) StyleForToken(tokenType TokenType) tcell.Style {
	if style, ok := t.TokenStyles[tokenType]; ok {
		return style
	}
	return t.Base
}

// DefaultTheme returns the classic script-editor palette: dark blue bold
// reserved words and red library symbols.
func DefaultTheme() *Theme {
	return &Theme{
		Name:          "Default",
		Base:          tcell.StyleDefault,
		LineHighlight: tcell.StyleDefault.Background(tcell.ColorLightYellow),
		Gutter:        tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
		Popup:         tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
		PopupSelected: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy),
		TokenStyles: map[TokenType]tcell.Style{
			TokenKeyword: tcell.StyleDefault.Foreground(tcell.ColorDarkBlue).Bold(true),
			TokenSymbol:  tcell.StyleDefault.Foreground(tcell.ColorRed),
		},
	}
}

// StyleSpec is the textual description of a style, as found in language
// and configuration files.
type StyleSpec struct {
	Fg        string `toml:"fg"`
	Bg        string `toml:"bg"`
	Bold      bool   `toml:"bold"`
	Italic    bool   `toml:"italic"`
	Underline bool   `toml:"underline"`
}

// Style converts the spec into a tcell style layered over base.
func (s StyleSpec) Style(base tcell.Style) (tcell.Style, error) {
	style := base
	if s.Fg != "" {
		c, err := parseColor(s.Fg)
		if err != nil {
			return base, err
		}
		style = style.Foreground(c)
	}
	if s.Bg != "" {
		c, err := parseColor(s.Bg)
		if err != nil {
			return base, err
		}
		style = style.Background(c)
	}
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Underline {
		style = style.Underline(true)
	}
	return style, nil
}

func parseColor(name string) (tcell.Color, error) {
	c := tcell.GetColor(strings.ToLower(strings.TrimSpace(name)))
	if c == tcell.ColorDefault && !strings.EqualFold(name, "default") {
		return c, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}

// WithTokenStyles returns a copy of the theme with the given tag styles
// applied on top of the existing ones. Keys are tag names ("keyword",
// "symbol").
func (t *Theme) WithTokenStyles(specs map[string]StyleSpec) (*Theme, error) {
	out := *t
	out.TokenStyles = make(map[TokenType]tcell.Style, len(t.TokenStyles)+len(specs))
	for k, v := range t.TokenStyles {
		out.TokenStyles[k] = v
	}
	for name, spec := range specs {
		tt := TokenTypeFromString(name)
		if tt == TokenNone {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
		}
		style, err := spec.Style(t.Base)
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", name, err)
		}
		out.TokenStyles[tt] = style
	}
	return &out, nil
}

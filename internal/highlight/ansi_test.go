package highlight

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestSGR(t *testing.T) {
	tests := []struct {
		name  string
		style tcell.Style
		want  string
	}{
		{"default", tcell.StyleDefault, ""},
		{"bold", tcell.StyleDefault.Bold(true), "\x1b[1m"},
		{"red", tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 0, 0)), "\x1b[38;2;255;0;0m"},
		{
			"bold underline on blue",
			tcell.StyleDefault.Bold(true).Underline(true).Background(tcell.NewRGBColor(0, 0, 128)),
			"\x1b[1;4;48;2;0;0;128m",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SGR(tt.style); got != tt.want {
				t.Errorf("SGR() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderANSI(t *testing.T) {
	theme := &Theme{
		Base: tcell.StyleDefault,
		TokenStyles: map[TokenType]tcell.Style{
			TokenKeyword: tcell.StyleDefault.Bold(true),
		},
	}

	tokens := []Token{{Type: TokenKeyword, StartCol: 0, EndCol: 3}}
	got := RenderANSI("var x", tokens, theme)
	want := "\x1b[1mvar\x1b[0m x"
	if got != want {
		t.Errorf("RenderANSI() = %q, want %q", got, want)
	}

	if got := RenderANSI("plain", nil, theme); got != "plain" {
		t.Errorf("RenderANSI(no tokens) = %q", got)
	}

	// Tokens whose style is the default are emitted without escapes.
	tokens = []Token{{Type: TokenSymbol, StartCol: 0, EndCol: 5}}
	if got := RenderANSI("plain", tokens, theme); got != "plain" {
		t.Errorf("RenderANSI(default style) = %q", got)
	}

	// Out-of-range tokens are ignored.
	tokens = []Token{{Type: TokenKeyword, StartCol: 2, EndCol: 40}}
	if got := RenderANSI("abc", tokens, theme); got != "abc" {
		t.Errorf("RenderANSI(out of range) = %q", got)
	}
}

func TestHighlightANSI_NilHighlighter(t *testing.T) {
	if got := HighlightANSI(nil, nil, "x"); got != "x" {
		t.Errorf("HighlightANSI(nil) = %q", got)
	}
}

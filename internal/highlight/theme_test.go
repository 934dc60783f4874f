package highlight

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	fg, _, attrs := theme.StyleForToken(TokenKeyword).Decompose()
	if fg != tcell.ColorDarkBlue || attrs&tcell.AttrBold == 0 {
		t.Errorf("keyword style fg=%v attrs=%v, want dark blue bold", fg, attrs)
	}

	fg, _, _ = theme.StyleForToken(TokenSymbol).Decompose()
	if fg != tcell.ColorRed {
		t.Errorf("symbol fg = %v, want red", fg)
	}

	if theme.StyleForToken(TokenNone) != theme.Base {
		t.Error("untagged text should use the base style")
	}
}

func TestStyleSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    StyleSpec
		wantFg  tcell.Color
		wantErr bool
	}{
		{"named", StyleSpec{Fg: "green", Bold: true}, tcell.ColorGreen, false},
		{"hex", StyleSpec{Fg: "#ff0000"}, tcell.NewHexColor(0xff0000), false},
		{"default", StyleSpec{Fg: "default"}, tcell.ColorDefault, false},
		{"unknown", StyleSpec{Fg: "notacolor"}, tcell.ColorDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style, err := tt.spec.Style(tcell.StyleDefault)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Style() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownColor) {
					t.Errorf("error = %v, want ErrUnknownColor", err)
				}
				return
			}
			fg, _, _ := style.Decompose()
			if fg != tt.wantFg {
				t.Errorf("fg = %v, want %v", fg, tt.wantFg)
			}
		})
	}
}

func TestWithTokenStyles(t *testing.T) {
	base := DefaultTheme()

	theme, err := base.WithTokenStyles(map[string]StyleSpec{
		"symbol": {Fg: "purple", Underline: true},
	})
	if err != nil {
		t.Fatalf("WithTokenStyles() error = %v", err)
	}

	fg, _, attrs := theme.StyleForToken(TokenSymbol).Decompose()
	if fg != tcell.ColorPurple || attrs&tcell.AttrUnderline == 0 {
		t.Errorf("symbol style fg=%v attrs=%v", fg, attrs)
	}
	if theme.StyleForToken(TokenKeyword) != base.StyleForToken(TokenKeyword) {
		t.Error("keyword style should be inherited")
	}
	// Base theme must be untouched.
	if fg, _, _ := base.StyleForToken(TokenSymbol).Decompose(); fg != tcell.ColorRed {
		t.Error("WithTokenStyles modified the receiver")
	}

	if _, err := base.WithTokenStyles(map[string]StyleSpec{"comment": {Fg: "red"}}); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("unknown tag error = %v, want ErrUnknownTag", err)
	}
}

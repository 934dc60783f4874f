package highlight

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

// countingHighlighter wraps a highlighter and counts calls.
type countingHighlighter struct {
	Highlighter
	calls int
}

func (c *countingHighlighter) HighlightLine(line string, prev LexerState) ([]Token, LexerState) {
	c.calls++
	return c.Highlighter.HighlightLine(line, prev)
}

func TestNewProvider(t *testing.T) {
	t.Run("with nil theme", func(t *testing.T) {
		p := NewProvider(nil, 0)
		if p.theme == nil {
			t.Error("Provider should have default theme when nil passed")
		}
		if p.theme.Name != "Default" {
			t.Errorf("Default theme name = %q, want 'Default'", p.theme.Name)
		}
	})

	t.Run("with zero cache size", func(t *testing.T) {
		p := NewProvider(nil, 0)
		if p.maxCacheSize != 1000 {
			t.Errorf("Default cache size = %d, want 1000", p.maxCacheSize)
		}
	})

	t.Run("with custom cache size", func(t *testing.T) {
		p := NewProvider(nil, 500)
		if p.maxCacheSize != 500 {
			t.Errorf("Cache size = %d, want 500", p.maxCacheSize)
		}
	})
}

func TestProviderHighlightsForLine(t *testing.T) {
	tree, _ := testTree(t)
	inner := NewScriptHighlighter("script", testDefinition(t, "if"), tree)
	h := &countingHighlighter{Highlighter: inner}

	lines := []string{"if(x) Rotate(1)", "", "Print"}
	p := NewProvider(nil, 100)
	p.SetHighlighter(h)
	p.SetLineGetter(func(line uint32) string {
		if int(line) < len(lines) {
			return lines[line]
		}
		return ""
	})

	spans := p.HighlightsForLine(0)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	theme := p.Theme()
	if spans[0].Style != theme.StyleForToken(TokenKeyword) {
		t.Error("first span should use keyword style")
	}
	if spans[1].StartCol != 6 || spans[1].EndCol != 13 {
		t.Errorf("symbol span = [%d,%d), want [6,13)", spans[1].StartCol, spans[1].EndCol)
	}

	// Cached: no second call for the same text.
	p.HighlightsForLine(0)
	if h.calls != 1 {
		t.Errorf("highlighter calls = %d, want 1", h.calls)
	}

	// Changed text invalidates implicitly.
	lines[0] = "Print"
	spans = p.HighlightsForLine(0)
	if h.calls != 2 || len(spans) != 1 {
		t.Errorf("after edit calls = %d spans = %d", h.calls, len(spans))
	}

	if spans := p.HighlightsForLine(1); spans != nil {
		t.Errorf("empty line spans = %+v", spans)
	}
}

func TestProviderWithoutHighlighter(t *testing.T) {
	p := NewProvider(nil, 10)
	p.SetLineGetter(func(uint32) string { return "if x" })
	if spans := p.HighlightsForLine(0); spans != nil {
		t.Errorf("spans without highlighter = %+v", spans)
	}
}

func TestProviderInvalidate(t *testing.T) {
	tree, _ := testTree(t)
	p := NewProvider(nil, 100)
	p.SetHighlighter(NewScriptHighlighter("script", testDefinition(t), tree))
	p.SetLineGetter(func(uint32) string { return "Print" })

	for i := uint32(0); i < 5; i++ {
		p.TokensForLine(i)
	}
	if p.CacheLen() != 5 {
		t.Fatalf("CacheLen() = %d, want 5", p.CacheLen())
	}

	p.InvalidateLines(1, 2)
	if p.CacheLen() != 3 {
		t.Errorf("after InvalidateLines CacheLen() = %d, want 3", p.CacheLen())
	}

	p.InvalidateAll()
	if p.CacheLen() != 0 {
		t.Errorf("after InvalidateAll CacheLen() = %d, want 0", p.CacheLen())
	}
}

func TestProviderEviction(t *testing.T) {
	tree, _ := testTree(t)
	p := NewProvider(nil, 20)
	p.SetHighlighter(NewScriptHighlighter("script", testDefinition(t), tree))
	p.SetLineGetter(func(uint32) string { return "Print" })

	for i := uint32(0); i < 50; i++ {
		p.TokensForLine(i)
	}
	if p.CacheLen() > 20 {
		t.Errorf("CacheLen() = %d exceeds max 20", p.CacheLen())
	}
}

func TestProviderSetTheme(t *testing.T) {
	p := NewProvider(nil, 10)
	theme := &Theme{Name: "custom", Base: tcell.StyleDefault}
	p.SetTheme(theme)
	if p.Theme() != theme {
		t.Error("SetTheme should update the theme")
	}
	p.SetTheme(nil)
	if p.Theme().Name != "Default" {
		t.Error("SetTheme(nil) should restore the default theme")
	}
}

package highlight

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// StyleSpan is a styled, disjoint column range of a line.
type StyleSpan struct {
	StartCol uint32
	EndCol   uint32
	Style    tcell.Style
}

// Provider bridges a Highlighter with a renderer. It caches tokens per
// line, keyed by the line text, and converts them to styles.
type Provider struct {
	mu sync.Mutex

	// highlighter is the active highlighter
	highlighter Highlighter

	// theme is the active color theme
	theme *Theme

	// lineCache caches flattened tokens per line
	lineCache map[uint32]*cachedLine

	// maxCacheSize limits the cache size
	maxCacheSize int

	// lineGetter retrieves line content by line number
	lineGetter func(line uint32) string
}

// cachedLine holds cached highlighting for a line.
type cachedLine struct {
	text   string
	tokens []Token
}

// NewProvider creates a new highlight provider.
func NewProvider(theme *Theme, maxCache int) *Provider {
	if theme == nil {
		theme = DefaultTheme()
	}
	if maxCache <= 0 {
		maxCache = 1000
	}
	return &Provider{
		theme:        theme,
		lineCache:    make(map[uint32]*cachedLine),
		maxCacheSize: maxCache,
	}
}

// SetHighlighter sets the active highlighter and drops the cache.
func (p *Provider) SetHighlighter(h Highlighter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.highlighter = h
	p.clearCache()
}

// Highlighter returns the active highlighter.
func (p *Provider) Highlighter() Highlighter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.highlighter
}

// SetTheme sets the active theme.
func (p *Provider) SetTheme(theme *Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if theme == nil {
		theme = DefaultTheme()
	}
	p.theme = theme
}

// Theme returns the current theme.
func (p *Provider) Theme() *Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.theme
}

// SetLineGetter sets the function to retrieve line content.
func (p *Provider) SetLineGetter(getter func(line uint32) string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lineGetter = getter
}

// TokensForLine returns the flattened tokens of a line.
func (p *Provider) TokensForLine(line uint32) []Token {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.highlighter == nil || p.lineGetter == nil {
		return nil
	}
	return p.getTokensForLine(line, p.lineGetter(line))
}

// HighlightsForLine returns style spans for the given line.
func (p *Provider) HighlightsForLine(line uint32) []StyleSpan {
	tokens := p.TokensForLine(line)
	if len(tokens) == 0 {
		return nil
	}

	theme := p.Theme()
	spans := make([]StyleSpan, 0, len(tokens))
	for _, tok := range tokens {
		spans = append(spans, StyleSpan{
			StartCol: tok.StartCol,
			EndCol:   tok.EndCol,
			Style:    theme.StyleForToken(tok.Type),
		})
	}
	return spans
}

// InvalidateLines drops cached highlighting for lines in [startLine, endLine].
// Lines are independent, so nothing past endLine is touched.
func (p *Provider) InvalidateLines(startLine, endLine uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for line := range p.lineCache {
		if line >= startLine && line <= endLine {
			delete(p.lineCache, line)
		}
	}
}

// InvalidateAll clears all cached highlighting.
func (p *Provider) InvalidateAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearCache()
}

// CacheLen returns the number of cached lines.
func (p *Provider) CacheLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.lineCache)
}

// getTokensForLine returns tokens for a line, using cache if available.
func (p *Provider) getTokensForLine(line uint32, text string) []Token {
	if cached, ok := p.lineCache[line]; ok && cached.text == text {
		return cached.tokens
	}

	tokens, _ := p.highlighter.HighlightLine(text, LexerStateNormal)
	tokens = Flatten(tokens)

	if len(p.lineCache) >= p.maxCacheSize {
		p.evictCache()
	}
	p.lineCache[line] = &cachedLine{text: text, tokens: tokens}

	return tokens
}

// evictCache removes some entries from the cache.
func (p *Provider) evictCache() {
	// Simple strategy: remove ~25% of entries
	toRemove := len(p.lineCache) / 4
	if toRemove < 10 {
		toRemove = 10
	}

	removed := 0
	for line := range p.lineCache {
		delete(p.lineCache, line)
		removed++
		if removed >= toRemove {
			break
		}
	}
}

// clearCache clears all cached data.
func (p *Provider) clearCache() {
	p.lineCache = make(map[uint32]*cachedLine)
}

package highlight

import (
	"github.com/dshills/scriptedit/internal/library"
	"github.com/dshills/scriptedit/internal/syntax"
)

// Highlighter defines the interface for syntax highlighters.
type Highlighter interface {
	// HighlightLine tokenizes a single line and returns the tokens.
	// prevState is the lexer state from the previous line.
	// Returns the tokens and the state at the end of the line.
	HighlightLine(line string, prevState LexerState) ([]Token, LexerState)

	// Language returns the language this highlighter supports.
	Language() string
}

// ScriptHighlighter colors reserved words and function-library symbols.
//
// Each line is processed in two passes. The first marks every reserved
// word as TokenKeyword. The second runs the tree matcher over every symbol
// chain of the line and marks matched prefixes as TokenSymbol. Tokens are
// returned in application order; where spans coincide the second pass wins
// (see Flatten).
type ScriptHighlighter struct {
	language string
	def      *syntax.Definition
	tree     *library.Tree
}

// NewScriptHighlighter creates a highlighter for def and tree. A nil def
// yields a highlighter that produces no tokens; a nil tree disables the
// symbol pass.
func NewScriptHighlighter(language string, def *syntax.Definition, tree *library.Tree) *ScriptHighlighter {
	return &ScriptHighlighter{
		language: language,
		def:      def,
		tree:     tree,
	}
}

// Language returns the language name.
func (h *ScriptHighlighter) Language() string {
	return h.language
}

// HighlightLine tokenizes a single line. The returned state is always
// LexerStateNormal.
func (h *ScriptHighlighter) HighlightLine(line string, _ LexerState) ([]Token, LexerState) {
	if h.def == nil {
		return nil, LexerStateNormal
	}

	tokens := h.keywords(line, nil)
	tokens = h.symbols(line, tokens)
	return tokens, LexerStateNormal
}

// keywords is the reserved-word pass.
func (h *ScriptHighlighter) keywords(line string, out []Token) []Token {
	for pos := 0; ; {
		m, ok := h.def.NextReserved(line, pos)
		if !ok {
			return out
		}
		out = append(out, Token{
			Type:     TokenKeyword,
			StartCol: uint32(m.Start),
			EndCol:   uint32(m.End),
		})
		pos = m.End
	}
}

// symbols is the function-library pass.
func (h *ScriptHighlighter) symbols(line string, out []Token) []Token {
	if h.tree == nil {
		return out
	}
	for pos := 0; ; {
		m, ok := h.def.NextSymbol(line, pos)
		if !ok {
			return out
		}
		_, out = MatchTree(h.tree, m.Text, library.Root, m.Start, out)
		pos = m.End
	}
}

// MatchTree reports whether the subtree at id consumes all of text, where
// text starts at column start of its line. Every node whose pattern occurs
// in text appends a TokenSymbol span to out, whether or not the whole
// chain resolves, so valid prefixes of a call chain stay colored.
//
// At the root every child is tried in order and the first full match
// wins. Below the root, the node's name (plus optional closer) is searched
// in text; when it does not reach the end of text, children are tried on
// the remainder.
func MatchTree(tree *library.Tree, text string, id library.NodeID, start int, out []Token) (bool, []Token) {
	if !tree.Valid(id) {
		return false, out
	}

	if tree.IsRoot(id) {
		for _, child := range tree.Children(id) {
			var ok bool
			if ok, out = MatchTree(tree, text, child, start, out); ok {
				return true, out
			}
		}
		return false, out
	}

	loc := tree.Pattern(id).FindStringIndex(text)
	if loc == nil {
		return false, out
	}
	out = append(out, Token{
		Type:     TokenSymbol,
		StartCol: uint32(start + loc[0]),
		EndCol:   uint32(start + loc[1]),
	})
	if loc[0] == 0 && loc[1] == len(text) {
		return true, out
	}

	rest := text[loc[1]:]
	for _, child := range tree.Children(id) {
		var ok bool
		if ok, out = MatchTree(tree, rest, child, start+loc[1], out); ok {
			return true, out
		}
	}
	return false, out
}

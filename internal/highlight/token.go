// Package highlight provides syntax highlighting for script buffers.
package highlight

// TokenType is the style tag applied to a span of a line.
type TokenType uint8

// Token types produced by the script highlighter.
const (
	TokenNone TokenType = iota
	TokenKeyword
	TokenSymbol

	tokenTypeCount
)

var tokenTypeNames = [...]string{
	TokenNone:    "none",
	TokenKeyword: "keyword",
	TokenSymbol:  "symbol",
}

// String returns the tag name of the token type.
func (t TokenType) String() string {
	if t < tokenTypeCount {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// TokenTypeFromString converts a tag name to a TokenType.
func TokenTypeFromString(name string) TokenType {
	for i, n := range tokenTypeNames {
		if n == name {
			return TokenType(i)
		}
	}
	return TokenNone
}

// Token is a styled span of a line.
type Token struct {
	// Type is the style tag.
	Type TokenType

	// StartCol is the starting byte column (0-indexed).
	StartCol uint32

	// EndCol is the ending byte column (exclusive).
	EndCol uint32
}

// Len returns the length of the token.
func (t Token) Len() uint32 {
	return t.EndCol - t.StartCol
}

// Contains returns true if the column is within the token.
func (t Token) Contains(col uint32) bool {
	return col >= t.StartCol && col < t.EndCol
}

// Overlaps reports whether two tokens share at least one column.
func (t Token) Overlaps(o Token) bool {
	return t.StartCol < o.EndCol && o.StartCol < t.EndCol
}

// LexerState is the state carried from one line to the next. Script
// lines are highlighted independently, so only LexerStateNormal is used.
type LexerState uint32

// LexerStateNormal is the reset state.
const LexerStateNormal LexerState = 0

// Flatten resolves overlapping tokens into disjoint, sorted spans. Tokens
// later in the slice win over earlier ones on the columns they share.
func Flatten(tokens []Token) []Token {
	if len(tokens) == 0 {
		return nil
	}

	var width uint32
	for _, tok := range tokens {
		if tok.EndCol > width {
			width = tok.EndCol
		}
	}

	cols := make([]TokenType, width)
	for _, tok := range tokens {
		for c := tok.StartCol; c < tok.EndCol; c++ {
			cols[c] = tok.Type
		}
	}

	var out []Token
	for c := uint32(0); c < width; {
		typ := cols[c]
		start := c
		for c < width && cols[c] == typ {
			c++
		}
		if typ != TokenNone {
			out = append(out, Token{Type: typ, StartCol: start, EndCol: c})
		}
	}
	return out
}

// TokenAt returns the token covering col in a flattened token list.
func TokenAt(tokens []Token, col uint32) (Token, bool) {
	for _, tok := range tokens {
		if tok.Contains(col) {
			return tok, true
		}
		if tok.StartCol > col {
			break
		}
	}
	return Token{}, false
}

package highlight

import (
	"reflect"
	"testing"
)

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		expected  string
	}{
		{TokenNone, "none"},
		{TokenKeyword, "keyword"},
		{TokenSymbol, "symbol"},
		{TokenType(200), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.tokenType.String(); got != tt.expected {
				t.Errorf("TokenType.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTokenTypeFromString(t *testing.T) {
	if TokenTypeFromString("keyword") != TokenKeyword {
		t.Error("keyword should map to TokenKeyword")
	}
	if TokenTypeFromString("symbol") != TokenSymbol {
		t.Error("symbol should map to TokenSymbol")
	}
	if TokenTypeFromString("comment") != TokenNone {
		t.Error("unknown tag should map to TokenNone")
	}
}

func TestTokenContains(t *testing.T) {
	tok := Token{Type: TokenKeyword, StartCol: 5, EndCol: 10}

	if tok.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tok.Len())
	}
	for col, want := range map[uint32]bool{4: false, 5: true, 9: true, 10: false} {
		if got := tok.Contains(col); got != want {
			t.Errorf("Contains(%d) = %v, want %v", col, got, want)
		}
	}
	if !tok.Overlaps(Token{StartCol: 9, EndCol: 12}) {
		t.Error("tokens sharing column 9 should overlap")
	}
	if tok.Overlaps(Token{StartCol: 10, EndCol: 12}) {
		t.Error("adjacent tokens should not overlap")
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   []Token
	}{
		{
			name:   "empty",
			tokens: nil,
			want:   nil,
		},
		{
			name: "disjoint stays sorted",
			tokens: []Token{
				{Type: TokenSymbol, StartCol: 6, EndCol: 9},
				{Type: TokenKeyword, StartCol: 0, EndCol: 2},
			},
			want: []Token{
				{Type: TokenKeyword, StartCol: 0, EndCol: 2},
				{Type: TokenSymbol, StartCol: 6, EndCol: 9},
			},
		},
		{
			name: "later wins",
			tokens: []Token{
				{Type: TokenKeyword, StartCol: 0, EndCol: 4},
				{Type: TokenSymbol, StartCol: 2, EndCol: 6},
			},
			want: []Token{
				{Type: TokenKeyword, StartCol: 0, EndCol: 2},
				{Type: TokenSymbol, StartCol: 2, EndCol: 6},
			},
		},
		{
			name: "adjacent same type merge",
			tokens: []Token{
				{Type: TokenSymbol, StartCol: 0, EndCol: 5},
				{Type: TokenSymbol, StartCol: 5, EndCol: 12},
			},
			want: []Token{
				{Type: TokenSymbol, StartCol: 0, EndCol: 12},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.tokens)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTokenAt(t *testing.T) {
	tokens := []Token{
		{Type: TokenKeyword, StartCol: 0, EndCol: 2},
		{Type: TokenSymbol, StartCol: 6, EndCol: 13},
	}
	if tok, ok := TokenAt(tokens, 7); !ok || tok.Type != TokenSymbol {
		t.Errorf("TokenAt(7) = %+v, %v", tok, ok)
	}
	if _, ok := TokenAt(tokens, 4); ok {
		t.Error("TokenAt(4) should find nothing")
	}
}

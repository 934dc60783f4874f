package syntax

import (
	"regexp"
	"sort"
	"strings"
)

// Default patterns used when Options leaves a field empty.
const (
	DefaultIdentifier = `[A-Za-z_][A-Za-z0-9_]*`
	DefaultDelimiters = `[^A-Za-z0-9_]`
	DefaultOpen       = `\(`
	DefaultClose      = `\)`
	DefaultJoiner     = "."
)

// Options describes the lexical rules of a language before compilation.
type Options struct {
	// Reserved lists the reserved words. Matching is case-sensitive.
	Reserved []string

	// Identifier is the identifier pattern.
	Identifier string

	// Symbol optionally overrides the symbol-chain pattern. When empty it is
	// derived from Identifier, Open and Joiner.
	Symbol string

	// Delimiters matches a single word-delimiter character.
	Delimiters string

	// Open and Close match the opening and closing parenthesis tokens.
	Open  string
	Close string

	// Joiner is the literal token placed between the segments of a
	// qualified name.
	Joiner string
}

// Match is a matched region of a line. Start and End are byte offsets,
// End exclusive.
type Match struct {
	Start int
	End   int
	Text  string
}

// Len returns the match length in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Definition holds the compiled matchers of a language.
// A Definition is immutable after New returns.
type Definition struct {
	reserved map[string]struct{}
	words    []string // longest first

	reservedRe *regexp.Regexp // nil when there are no reserved words
	identRe    *regexp.Regexp
	identHead  *regexp.Regexp // identifier anchored at the start
	symbolRe   *regexp.Regexp
	delimRe    *regexp.Regexp
	parenRe    *regexp.Regexp
	openRe     *regexp.Regexp

	joiner string
}

// New compiles a Definition from opts.
func New(opts Options) (*Definition, error) {
	opts = withDefaults(opts)

	d := &Definition{
		reserved: make(map[string]struct{}, len(opts.Reserved)),
		joiner:   opts.Joiner,
	}

	for _, w := range opts.Reserved {
		if w == "" {
			continue
		}
		if _, dup := d.reserved[w]; dup {
			continue
		}
		d.reserved[w] = struct{}{}
		d.words = append(d.words, w)
	}
	// Longest first so an alternation never stops at a shorter word that
	// is a prefix of a longer one.
	sort.SliceStable(d.words, func(i, j int) bool {
		return len(d.words[i]) > len(d.words[j])
	})

	var err error
	if len(d.words) > 0 {
		quoted := make([]string, len(d.words))
		for i, w := range d.words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		d.reservedRe, err = compile("reserved", strings.Join(quoted, "|"))
		if err != nil {
			return nil, err
		}
	}

	if d.identRe, err = compile("identifier", opts.Identifier); err != nil {
		return nil, err
	}
	if d.identRe.MatchString("") {
		return nil, &PatternError{Field: "identifier", Pattern: opts.Identifier, Err: ErrEmptyPattern}
	}
	if d.identHead, err = compile("identifier", `^(?:`+opts.Identifier+`)`); err != nil {
		return nil, err
	}

	symbol := opts.Symbol
	if symbol == "" {
		symbol = symbolPattern(opts.Identifier, opts.Open, opts.Joiner)
	}
	if d.symbolRe, err = compile("symbol", symbol); err != nil {
		return nil, err
	}

	if d.delimRe, err = compile("delimiters", opts.Delimiters); err != nil {
		return nil, err
	}
	if d.delimRe.MatchString("") {
		return nil, &PatternError{Field: "delimiters", Pattern: opts.Delimiters, Err: ErrEmptyPattern}
	}

	if d.openRe, err = compile("open", opts.Open); err != nil {
		return nil, err
	}
	if _, err = compile("close", opts.Close); err != nil {
		return nil, err
	}
	if d.parenRe, err = compile("paren", `\s*(?:`+opts.Open+`).*?(?:`+opts.Close+`)`); err != nil {
		return nil, err
	}

	return d, nil
}

// MustNew is like New but panics on error. Intended for built-in languages.
func MustNew(opts Options) *Definition {
	d, err := New(opts)
	if err != nil {
		panic(err)
	}
	return d
}

func withDefaults(opts Options) Options {
	if opts.Identifier == "" {
		opts.Identifier = DefaultIdentifier
	}
	if opts.Delimiters == "" {
		opts.Delimiters = DefaultDelimiters
	}
	if opts.Open == "" {
		opts.Open = DefaultOpen
	}
	if opts.Close == "" {
		opts.Close = DefaultClose
	}
	if opts.Joiner == "" {
		opts.Joiner = DefaultJoiner
	}
	return opts
}

// symbolPattern builds the identifier-chain pattern:
// ident (joiner ident)* followed by an optional opening token or joiner.
func symbolPattern(ident, open, joiner string) string {
	id := `(?:` + ident + `)`
	j := regexp.QuoteMeta(joiner)
	return id + `(?:\s*` + j + `\s*` + id + `)*(?:\s*(?:` + open + `|` + j + `))?`
}

func compile(field, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Field: field, Pattern: pattern, Err: err}
	}
	return re, nil
}

// NextReserved finds the leftmost reserved word in text at or after from.
// The word must not be part of a longer word.
func (d *Definition) NextReserved(text string, from int) (Match, bool) {
	if d.reservedRe == nil {
		return Match{}, false
	}
	for pos := clampOffset(text, from); pos < len(text); {
		loc := d.reservedRe.FindStringIndex(text[pos:])
		if loc == nil {
			return Match{}, false
		}
		start := pos + loc[0]
		for _, w := range d.words {
			end := start + len(w)
			if strings.HasPrefix(text[start:], w) && bounded(text, start, end) {
				return Match{Start: start, End: end, Text: w}, true
			}
		}
		pos = start + 1
	}
	return Match{}, false
}

// NextIdentifier finds the leftmost identifier in text at or after from.
func (d *Definition) NextIdentifier(text string, from int) (Match, bool) {
	return nextBounded(d.identRe, text, from)
}

// NextSymbol finds the leftmost identifier chain at or after from whose
// leading identifier is not a reserved word.
func (d *Definition) NextSymbol(text string, from int) (Match, bool) {
	for pos := clampOffset(text, from); pos < len(text); {
		m, ok := nextBounded(d.symbolRe, text, pos)
		if !ok {
			return Match{}, false
		}
		head := d.identHead.FindString(m.Text)
		if _, reserved := d.reserved[head]; reserved && head != "" {
			pos = m.Start + len(head)
			continue
		}
		return m, true
	}
	return Match{}, false
}

// IsReserved reports whether word is a reserved word.
func (d *Definition) IsReserved(word string) bool {
	_, ok := d.reserved[word]
	return ok
}

// Reserved returns the reserved words, longest first.
func (d *Definition) Reserved() []string {
	out := make([]string, len(d.words))
	copy(out, d.words)
	return out
}

// IsDelimiter reports whether text contains a word delimiter.
func (d *Definition) IsDelimiter(text string) bool {
	return d.delimRe.MatchString(text)
}

// Split splits line on word delimiters, dropping empty tokens.
func (d *Definition) Split(line string) []string {
	parts := d.delimRe.Split(line, -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LastWord returns the last delimiter-separated token of line, or "".
func (d *Definition) LastWord(line string) string {
	parts := d.Split(line)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// Joiner returns the path joiner token.
func (d *Definition) Joiner() string {
	return d.joiner
}

// StripParenGroups removes every "whitespace + parenthesis group" from s.
func (d *Definition) StripParenGroups(s string) string {
	return d.parenRe.ReplaceAllString(s, "")
}

// ReplaceOpen replaces every opening token left in s with repl.
func (d *Definition) ReplaceOpen(s, repl string) string {
	return d.openRe.ReplaceAllLiteralString(s, repl)
}

// nextBounded finds the leftmost non-empty match of re at or after from
// that does not start or end inside a word.
func nextBounded(re *regexp.Regexp, text string, from int) (Match, bool) {
	for pos := clampOffset(text, from); pos < len(text); {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			return Match{}, false
		}
		start, end := pos+loc[0], pos+loc[1]
		if end > start && bounded(text, start, end) {
			return Match{Start: start, End: end, Text: text[start:end]}, true
		}
		pos = start + 1
	}
	return Match{}, false
}

// bounded reports whether text[start:end] is not glued to surrounding
// word characters. Edges made of non-word characters always qualify.
func bounded(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start]) && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && end > start && isWordByte(text[end-1]) && isWordByte(text[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func clampOffset(text string, from int) int {
	if from < 0 {
		return 0
	}
	if from > len(text) {
		return len(text)
	}
	return from
}

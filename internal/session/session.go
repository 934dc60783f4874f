package session

import (
	"github.com/google/uuid"

	"github.com/dshills/scriptedit/internal/completion"
	"github.com/dshills/scriptedit/internal/highlight"
	"github.com/dshills/scriptedit/internal/library"
	"github.com/dshills/scriptedit/internal/syntax"
)

// Session is one activation of a language: its definition, library and
// the highlighter and completer built from them. The definition and tree
// are never modified through a Session.
type Session struct {
	id       uuid.UUID
	language string

	def  *syntax.Definition
	tree *library.Tree

	highlighter *highlight.ScriptHighlighter
	completer   *completion.Completer
}

// New builds a Session. A nil def produces an inert session: no
// highlighting and no completion, plain editing still works.
func New(language string, def *syntax.Definition, tree *library.Tree) *Session {
	return &Session{
		id:          uuid.New(),
		language:    language,
		def:         def,
		tree:        tree,
		highlighter: highlight.NewScriptHighlighter(language, def, tree),
		completer:   completion.New(def, tree),
	}
}

// ID returns the unique session id.
func (s *Session) ID() uuid.UUID { return s.id }

// Language returns the language name.
func (s *Session) Language() string { return s.language }

// Definition returns the syntax definition, or nil for an inert session.
func (s *Session) Definition() *syntax.Definition { return s.def }

// Tree returns the function library.
func (s *Session) Tree() *library.Tree { return s.tree }

// Highlighter returns the session highlighter.
func (s *Session) Highlighter() *highlight.ScriptHighlighter { return s.highlighter }

// Completer returns the session completer.
func (s *Session) Completer() *completion.Completer { return s.completer }

// Inert reports whether the session lacks a syntax definition.
func (s *Session) Inert() bool { return s.def == nil }

// ShouldTrigger reports whether inserting text should open or refresh the
// completion popup: text must be non-empty and free of word delimiters.
func (s *Session) ShouldTrigger(text string) bool {
	if s.def == nil || text == "" {
		return false
	}
	return !s.def.IsDelimiter(text)
}

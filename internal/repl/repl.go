// Package repl is the line-oriented front end of scriptedit. Each entered
// line is echoed back highlighted, and Tab completes library names through
// the session's Completer.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/dshills/scriptedit/internal/completion"
	"github.com/dshills/scriptedit/internal/highlight"
	"github.com/dshills/scriptedit/internal/session"
)

// Prompt is the input prompt.
const Prompt = "script> "

// WordCompleter returns a liner word completer backed by the completion
// state machine of s. The word before pos is the prefix; the candidates
// are returned whole, qualified when no qualifier was typed, and liner
// replaces the prefix with the chosen one.
func WordCompleter(s *session.Session) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		// pos counts runes.
		r := []rune(line)
		pos = min(max(pos, 0), len(r))
		left, tail := string(r[:pos]), string(r[pos:])
		if s == nil || s.Inert() {
			return left, nil, tail
		}

		c := s.Completer()
		defer c.Cancel()

		fallback := func() string { return s.Definition().LastWord(left) }
		if !c.Update(left, len(left), fallback) {
			return left, nil, tail
		}
		prefix := c.Prefix()
		if !strings.HasSuffix(left, prefix) {
			return left, nil, tail
		}

		st := c.State()
		names := make([]string, len(st.Items))
		for i, it := range st.Items {
			names[i] = it.Name
			if st.Qualifier == nil {
				names[i] = completion.Qualifier(it) + it.Name
			}
		}
		return left[:len(left)-len(prefix)], names, tail
	}
}

// Options configures Run.
type Options struct {
	// History is a file to read history from and save it to. Empty
	// disables history.
	History string
	// Out receives the highlighted echo. Defaults to os.Stdout.
	Out io.Writer
	// Color enables ANSI escapes in the echo.
	Color bool
}

// Run reads lines until EOF or Ctrl-C and echoes each one highlighted.
func Run(s *session.Session, theme *highlight.Theme, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetTabCompletionStyle(liner.TabPrints)
	ln.SetWordCompleter(WordCompleter(s))

	if opts.History != "" {
		if f, err := os.Open(opts.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(opts.History); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		line, err := ln.Prompt(Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		fmt.Fprintln(out, Echo(s, theme, line, opts.Color))
	}
}

// Echo renders line the way Run prints it.
func Echo(s *session.Session, theme *highlight.Theme, line string, color bool) string {
	if !color || s == nil || s.Inert() {
		return line
	}
	return highlight.HighlightANSI(s.Highlighter(), theme, line)
}

package repl

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/scriptedit/internal/language"
	"github.com/dshills/scriptedit/internal/session"
)

func builtinSession(t *testing.T) *session.Session {
	t.Helper()
	b, err := language.Builtin()
	if err != nil {
		t.Fatalf("Builtin error = %v", err)
	}
	return session.New(b.Name, b.Syntax, b.Tree)
}

func TestWordCompleter(t *testing.T) {
	complete := WordCompleter(builtinSession(t))

	tests := []struct {
		name     string
		line     string
		pos      int
		wantHead string
		want     []string
		wantTail string
	}{
		{"root prefix", "R", 1, "", []string{"Rotate", "Rename"}, ""},
		{"after text", "x = Sc", 6, "x = ", []string{"Scale"}, ""},
		{"qualified", "Mesh.ve", 7, "Mesh.", []string{"vertexNumber", "vert"}, ""},
		{"keeps tail", "Tr(1)", 2, "", []string{"Translate"}, "(1)"},
		{"no match", "Qq", 2, "Qq", nil, ""},
		{"after delimiter", "Rotate(", 7, "Rotate(", nil, ""},
		{"pos clamped", "Sc", 99, "", []string{"Scale"}, ""},
		{"nested unqualified", "x = vertexN", 11, "x = ", []string{"Mesh.vertexNumber"}, ""},
		{"rune position", `print("é"); Ro`, 14, `print("é"); `, []string{"Rotate"}, ""},
		{"rune position with tail", "é Tr(1)", 4, "é ", []string{"Translate"}, "(1)"},
		{"rune pos clamped", "é Sc", 99, "é ", []string{"Scale"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, got, tail := complete(tt.line, tt.pos)
			if head != tt.wantHead || tail != tt.wantTail {
				t.Errorf("head, tail = %q, %q; want %q, %q", head, tail, tt.wantHead, tt.wantTail)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("completions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWordCompleter_LeavesSessionIdle(t *testing.T) {
	s := builtinSession(t)
	WordCompleter(s)("R", 1)
	if s.Completer().Visible() {
		t.Error("completer should be cancelled after completing")
	}
}

func TestWordCompleter_Inert(t *testing.T) {
	head, got, tail := WordCompleter(session.New("", nil, nil))("Ro", 2)
	if head != "Ro" || got != nil || tail != "" {
		t.Errorf("inert = %q, %v, %q", head, got, tail)
	}
	head, got, _ = WordCompleter(nil)("Ro", 2)
	if head != "Ro" || got != nil {
		t.Errorf("nil session = %q, %v", head, got)
	}
}

func TestEcho(t *testing.T) {
	s := builtinSession(t)
	b, _ := language.Builtin()

	if got := Echo(s, b.Theme, "var x", false); got != "var x" {
		t.Errorf("Echo without color = %q", got)
	}

	got := Echo(s, b.Theme, "var x = Rotate", true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("Echo with color = %q, want escapes around var and Rotate", got)
	}
	if strings.Count(got, "\x1b[0m") != 2 {
		t.Errorf("Echo with color = %q, want two styled spans", got)
	}
}

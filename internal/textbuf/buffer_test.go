package textbuf

import (
	"strings"
	"testing"
)

func TestNewAndText(t *testing.T) {
	b := New("one\r\ntwo\nthree")
	if b.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", b.LineCount())
	}
	if b.Text() != "one\ntwo\nthree" {
		t.Errorf("Text() = %q", b.Text())
	}
	if b.Line(5) != "" || b.Line(-1) != "" {
		t.Error("out of range lines should be empty")
	}
	if New("").LineCount() != 1 {
		t.Error("empty buffer should have one line")
	}
}

func TestInsertText(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		line     int
		col      int
		insert   string
		want     string
		wantLine int
		wantCol  int
	}{
		{"plain", "ab", 0, 1, "X", "aXb", 0, 2},
		{"newline splits", "abcd", 0, 2, "\n", "ab\ncd", 1, 0},
		{"newline with indent", "\tfoo", 0, 4, "\n\t", "\tfoo\n\t", 1, 1},
		{"multi line", "x", 0, 1, "1\n2\n3", "x1\n2\n3", 2, 1},
		{"empty", "x", 0, 0, "", "x", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.initial)
			b.SetCursor(tt.line, tt.col)
			b.InsertText(tt.insert)
			if b.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", b.Text(), tt.want)
			}
			if l, c := b.Cursor(); l != tt.wantLine || c != tt.wantCol {
				t.Errorf("Cursor() = %d,%d, want %d,%d", l, c, tt.wantLine, tt.wantCol)
			}
			if b.Dirty() != (tt.insert != "") {
				t.Errorf("Dirty() = %v", b.Dirty())
			}
		})
	}
}

func TestBackspaceAndDelete(t *testing.T) {
	b := New("ab\ncd")
	b.SetCursor(1, 0)
	b.Backspace()
	if b.Text() != "abcd" {
		t.Fatalf("join by backspace = %q", b.Text())
	}
	if l, c := b.Cursor(); l != 0 || c != 2 {
		t.Errorf("cursor = %d,%d", l, c)
	}

	b.Backspace()
	if b.Text() != "acd" {
		t.Errorf("Backspace() = %q", b.Text())
	}

	b.End()
	b.InsertText("\nz")
	b.SetCursor(0, 3)
	b.Delete()
	if b.Text() != "acdz" {
		t.Errorf("join by delete = %q", b.Text())
	}

	b.SetCursor(0, 0)
	b.Delete()
	if b.Text() != "cdz" {
		t.Errorf("Delete() = %q", b.Text())
	}

	b.MarkClean()
	b.SetCursor(0, 0)
	b.Backspace()
	if b.Dirty() {
		t.Error("no-op backspace marked the buffer dirty")
	}
}

func TestMultibyte(t *testing.T) {
	b := New("aé")
	b.End()
	b.Backspace()
	if b.Text() != "a" {
		t.Errorf("Backspace() over é = %q", b.Text())
	}

	b = New("éx")
	b.SetCursor(0, 1)
	if _, c := b.Cursor(); c != 0 {
		t.Errorf("SetCursor inside rune = %d, want 0", c)
	}
	b.MoveRight()
	if _, c := b.Cursor(); c != 2 {
		t.Errorf("MoveRight() = %d, want 2", c)
	}
	b.MoveLeft()
	if _, c := b.Cursor(); c != 0 {
		t.Errorf("MoveLeft() = %d, want 0", c)
	}
}

func TestMovement(t *testing.T) {
	b := New("long line\nx\nmiddle")
	b.SetCursor(0, 8)
	b.MoveDown(1)
	if l, c := b.Cursor(); l != 1 || c != 1 {
		t.Errorf("MoveDown clamps col: %d,%d", l, c)
	}
	b.MoveDown(10)
	if l, _ := b.Cursor(); l != 2 {
		t.Errorf("MoveDown clamps line: %d", l)
	}
	b.MoveUp(10)
	if l, _ := b.Cursor(); l != 0 {
		t.Errorf("MoveUp clamps line: %d", l)
	}

	b.End()
	b.MoveRight()
	if l, c := b.Cursor(); l != 1 || c != 0 {
		t.Errorf("MoveRight wraps: %d,%d", l, c)
	}
	b.MoveLeft()
	if l, c := b.Cursor(); l != 0 || c != 9 {
		t.Errorf("MoveLeft wraps: %d,%d", l, c)
	}
	b.Home()
	if _, c := b.Cursor(); c != 0 {
		t.Errorf("Home() col = %d", c)
	}
}

func TestLeadingWhitespace(t *testing.T) {
	b := New("\t\tfoo\n  bar\nbaz")
	for i, want := range []string{"\t\t", "  ", ""} {
		if got := b.LeadingWhitespace(i); got != want {
			t.Errorf("LeadingWhitespace(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestWordUnderCursor(t *testing.T) {
	b := New("x = Mesh.rot")
	b.End()
	if got := b.WordUnderCursor(); got != "rot" {
		t.Errorf("WordUnderCursor() = %q, want rot", got)
	}

	b.SetWordFunc(func(s string) string {
		f := strings.Fields(s)
		return f[len(f)-1]
	})
	if got := b.WordUnderCursor(); got != "Mesh.rot" {
		t.Errorf("WordUnderCursor() with word func = %q", got)
	}
}

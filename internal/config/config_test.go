package config

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/dshills/scriptedit/internal/config/loader"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func noEnv() []string { return nil }

func TestDefault(t *testing.T) {
	c := Default()
	if c.Editor.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", c.Editor.TabWidth)
	}
	if c.Editor.PopupRows != 8 {
		t.Errorf("PopupRows = %d, want 8", c.Editor.PopupRows)
	}
	if !c.Editor.ShowLineNumbers || !c.UI.StatusLine || !c.Language.Watch {
		t.Error("line numbers, status line and watch should default on")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	files := memFS{"/settings.toml": `
[editor]
tabWidth = 2
popupRows = 5

[language]
path = "/langs/fs.toml"
watchDelay = "300ms"
`}
	environ := func() []string {
		return []string{
			"SCRIPTEDIT_POPUP_ROWS=12",
			"SCRIPTEDIT_UI_STATUS_LINE=off",
		}
	}

	c, err := Load(WithFS(files), WithFile("/settings.toml"), WithEnviron(environ))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if c.Editor.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want 2 from file", c.Editor.TabWidth)
	}
	if c.Editor.PopupRows != 12 {
		t.Errorf("PopupRows = %d, want 12 from env", c.Editor.PopupRows)
	}
	if c.UI.StatusLine {
		t.Error("StatusLine should be off from env")
	}
	if c.Language.Path != "/langs/fs.toml" {
		t.Errorf("Language.Path = %q", c.Language.Path)
	}
	if c.Language.WatchDelay != 300*time.Millisecond {
		t.Errorf("WatchDelay = %v, want 300ms", c.Language.WatchDelay)
	}
	if len(c.Sources) != 1 || c.Sources[0] != "/settings.toml" {
		t.Errorf("Sources = %v", c.Sources)
	}

	// Command line wins over everything
	if err := c.SetAssignment("editor.popupRows=3"); err != nil {
		t.Fatalf("SetAssignment error = %v", err)
	}
	if c.Editor.PopupRows != 3 {
		t.Errorf("PopupRows = %d, want 3 from flag", c.Editor.PopupRows)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	c, err := Load(WithFS(memFS{}), WithFile("/none.toml"), WithEnviron(noEnv))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if len(c.Sources) != 0 {
		t.Errorf("Sources = %v, want none", c.Sources)
	}
	if c.Editor.TabWidth != Default().Editor.TabWidth {
		t.Error("missing file should leave defaults")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		check func(error) bool
	}{
		{
			name:  "parse error",
			file:  "[editor\n",
			check: func(err error) bool { var pe *loader.ParseError; return errors.As(err, &pe) },
		},
		{
			name:  "type mismatch",
			file:  "[editor]\ntabWidth = \"wide\"\n",
			check: func(err error) bool { return errors.Is(err, ErrTypeMismatch) },
		},
		{
			name:  "out of range",
			file:  "[editor]\ntabWidth = 0\n",
			check: func(err error) bool { return errors.Is(err, ErrValidationFailed) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := memFS{"/s.toml": tt.file}
			_, err := Load(WithFS(files), WithFile("/s.toml"), WithEnviron(noEnv))
			if err == nil || !tt.check(err) {
				t.Errorf("Load error = %v", err)
			}
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	files := memFS{"/s.toml": "[editor]\nfancy = true\n[other]\nx = 1\n"}
	c, err := Load(WithFS(files), WithFile("/s.toml"), WithEnviron(noEnv))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	want := []string{"editor.fancy", "other.x"}
	if len(c.Unknown) != len(want) {
		t.Fatalf("Unknown = %v, want %v", c.Unknown, want)
	}
	for i := range want {
		if c.Unknown[i] != want[i] {
			t.Errorf("Unknown[%d] = %q, want %q", i, c.Unknown[i], want[i])
		}
	}
}

func TestSetString(t *testing.T) {
	tests := []struct {
		path string
		raw  string
		want any
	}{
		{"editor.tabWidth", "8", 8},
		{"editor.showLineNumbers", "false", false},
		{"editor.showLineNumbers", "1", true},
		{"language.path", "123", "123"},
		{"language.watchDelay", "250", 250 * time.Millisecond},
		{"language.watchDelay", "1s", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.path+"="+tt.raw, func(t *testing.T) {
			c := Default()
			if err := c.SetString(tt.path, tt.raw); err != nil {
				t.Fatalf("SetString error = %v", err)
			}
			got, err := c.Get(tt.path)
			if err != nil {
				t.Fatalf("Get error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Get(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSet_Errors(t *testing.T) {
	c := Default()
	if err := c.Set("nope.nothing", 1); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("Set unknown error = %v", err)
	}
	if err := c.Set("editor.tabWidth", 2.5); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Set fractional error = %v", err)
	}
	if err := c.Set("ui.statusLine", "yes please"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Set bool from string error = %v", err)
	}
	if err := c.SetAssignment("no-equals"); err == nil {
		t.Error("SetAssignment without = should fail")
	}
	if _, err := c.Get("nope"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("Get unknown error = %v", err)
	}
}

func TestPaths(t *testing.T) {
	paths := Paths()
	if len(paths) != len(settings) {
		t.Fatalf("Paths() has %d entries, want %d", len(paths), len(settings))
	}
	for i := 1; i < len(paths); i++ {
		if paths[i-1] > paths[i] {
			t.Errorf("Paths() not sorted at %d", i)
		}
	}
}

package loader

import (
	"errors"
	"io/fs"
	"testing"
)

// memFS is an in-memory file system for testing.
type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func TestTOMLLoader_Load(t *testing.T) {
	files := memFS{"/config.toml": `
[editor]
tabWidth = 2
showLineNumbers = false

[language]
path = "lang/filterscript.toml"
`}

	config, err := NewTOMLLoaderWithFS(files, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if v, _ := GetByPath(config, "editor.tabWidth"); v != int64(2) {
		t.Errorf("editor.tabWidth = %v (%T), want 2", v, v)
	}
	if v, _ := GetByPath(config, "editor.showLineNumbers"); v != false {
		t.Errorf("editor.showLineNumbers = %v, want false", v)
	}
	if v, _ := GetByPath(config, "language.path"); v != "lang/filterscript.toml" {
		t.Errorf("language.path = %v", v)
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(memFS{}, "/nope.toml").Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if config != nil {
		t.Errorf("config = %v, want nil", config)
	}

	config, err = NewTOMLLoaderWithFS(memFS{}, "").Load()
	if err != nil || config != nil {
		t.Errorf("Load with empty path = %v, %v", config, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	files := memFS{"/bad.toml": "[editor]\ntabWidth = \n"}

	_, err := NewTOMLLoaderWithFS(files, "/bad.toml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("Path = %q", pe.Path)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestTOMLLoader_Includes(t *testing.T) {
	files := memFS{
		"/cfg/main.toml": `
"@include" = ["base.toml", "/shared/ui.toml"]

[editor]
tabWidth = 8
`,
		"/cfg/base.toml": `
[editor]
tabWidth = 2
popupRows = 5
`,
		"/shared/ui.toml": `
[ui]
statusLine = false
`,
	}

	config, err := NewTOMLLoaderWithFS(files, "/cfg/main.toml").Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if _, ok := config[IncludeKey]; ok {
		t.Error("@include should be removed from the result")
	}

	tests := []struct {
		path string
		want any
	}{
		{"editor.tabWidth", int64(8)},
		{"editor.popupRows", int64(5)},
		{"ui.statusLine", false},
	}
	for _, tt := range tests {
		if got, _ := GetByPath(config, tt.path); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestTOMLLoader_IncludeErrors(t *testing.T) {
	tests := []struct {
		name  string
		files memFS
		want  error
	}{
		{
			name: "cycle",
			files: memFS{
				"/a.toml": `"@include" = "b.toml"`,
				"/b.toml": `"@include" = "a.toml"`,
			},
			want: ErrIncludeCycle,
		},
		{
			name:  "bad type",
			files: memFS{"/a.toml": `"@include" = 3`},
			want:  ErrIncludeType,
		},
		{
			name:  "bad element",
			files: memFS{"/a.toml": `"@include" = ["x.toml", 3]`},
			want:  ErrIncludeType,
		},
		{
			name:  "missing include",
			files: memFS{"/a.toml": `"@include" = "gone.toml"`},
			want:  fs.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTOMLLoaderWithFS(tt.files, "/a.toml").Load()
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTOMLLoader_IncludeDepth(t *testing.T) {
	files := memFS{}
	for i := 0; i < DefaultIncludeDepth+1; i++ {
		files[fileName(i)] = `"@include" = "` + fileName(i+1) + `"`
	}

	_, err := NewTOMLLoaderWithFS(files, fileName(0)).Load()
	if !errors.Is(err, ErrIncludeDepth) {
		t.Errorf("error = %v, want ErrIncludeDepth", err)
	}
}

func fileName(i int) string {
	return "/f" + string(rune('a'+i)) + ".toml"
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"tabWidth": int64(4), "popupRows": int64(8)},
		"ui":     map[string]any{"statusLine": true},
	}
	src := map[string]any{
		"editor": map[string]any{"tabWidth": int64(2)},
		"ui":     "replaced",
	}

	got := DeepMerge(dst, src)

	if v, _ := GetByPath(got, "editor.tabWidth"); v != int64(2) {
		t.Errorf("editor.tabWidth = %v, want 2", v)
	}
	if v, _ := GetByPath(got, "editor.popupRows"); v != int64(8) {
		t.Errorf("editor.popupRows = %v, want 8", v)
	}
	if got["ui"] != "replaced" {
		t.Errorf("ui = %v, want replaced", got["ui"])
	}

	if m := DeepMerge(nil, nil); m == nil || len(m) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v, want empty map", m)
	}
}

func TestSetByPath(t *testing.T) {
	m := map[string]any{"editor": "scalar"}
	SetByPath(m, "editor.tabWidth", int64(3))
	SetByPath(m, "top", true)

	if v, ok := GetByPath(m, "editor.tabWidth"); !ok || v != int64(3) {
		t.Errorf("editor.tabWidth = %v, %v", v, ok)
	}
	if v, ok := GetByPath(m, "top"); !ok || v != true {
		t.Errorf("top = %v, %v", v, ok)
	}
	if _, ok := GetByPath(m, "editor.tabWidth.deeper"); ok {
		t.Error("GetByPath through a scalar should fail")
	}
}

func TestPaths(t *testing.T) {
	m := map[string]any{
		"editor": map[string]any{"tabWidth": 1, "popupRows": 2},
		"x":      true,
	}
	got := map[string]bool{}
	for _, p := range Paths(m) {
		got[p] = true
	}
	for _, want := range []string{"editor.tabWidth", "editor.popupRows", "x"} {
		if !got[want] {
			t.Errorf("Paths missing %q", want)
		}
	}
	if len(got) != 3 {
		t.Errorf("Paths = %v, want 3 entries", got)
	}
}

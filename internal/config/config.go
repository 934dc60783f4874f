package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dshills/scriptedit/internal/config/loader"
)

// EditorConfig holds editing and popup settings.
type EditorConfig struct {
	// TabWidth is the display width of a tab character.
	TabWidth int

	// PopupRows is the number of completion rows shown before scrolling.
	PopupRows int

	// PopupWidth caps the completion popup width in cells.
	PopupWidth int

	// ShowLineNumbers draws the line number gutter.
	ShowLineNumbers bool

	// HighlightCurrentLine paints the cursor line background.
	HighlightCurrentLine bool
}

// LanguageConfig selects and follows the language definition.
type LanguageConfig struct {
	// Path is a language file to load. Empty means the built-in language.
	Path string

	// Name selects a registered language by name when Path is empty.
	Name string

	// Watch reloads the language when its files change.
	Watch bool

	// WatchDelay is the quiet period before a reload.
	WatchDelay time.Duration
}

// UIConfig holds terminal surface settings.
type UIConfig struct {
	// StatusLine shows the status line with tooltips and messages.
	StatusLine bool
}

// Config is the resolved settings of one editor run.
type Config struct {
	Editor   EditorConfig
	Language LanguageConfig
	UI       UIConfig

	// Sources lists the settings files that contributed, in load order.
	Sources []string

	// Unknown lists setting paths found in a source but not recognized.
	Unknown []string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:             4,
			PopupRows:            8,
			PopupWidth:           60,
			ShowLineNumbers:      true,
			HighlightCurrentLine: true,
		},
		Language: LanguageConfig{
			Watch:      true,
			WatchDelay: 150 * time.Millisecond,
		},
		UI: UIConfig{
			StatusLine: true,
		},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	file      string
	fs        loader.FileSystem
	envPrefix string
	env       bool
	environ   func() []string
}

// WithFile sets the settings file. A missing file is not an error.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithFS reads settings files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithEnv enables or disables the environment layer.
func WithEnv(enable bool) Option {
	return func(o *options) {
		o.env = enable
	}
}

// WithEnviron replaces os.Environ as the source of environment variables.
func WithEnviron(fn func() []string) Option {
	return func(o *options) {
		o.environ = fn
	}
}

// DefaultPath returns the per-user settings file path, or "" when the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "scriptedit", "settings.toml")
}

// Load resolves settings from defaults, the settings file and the
// environment.
func Load(opts ...Option) (*Config, error) {
	o := options{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultPrefix,
		env:       true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := Default()

	if o.file != "" {
		m, err := loader.NewTOMLLoaderWithFS(o.fs, o.file).Load()
		if err != nil {
			return nil, err
		}
		if m != nil {
			if err := c.Apply(m); err != nil {
				return nil, fmt.Errorf("%s: %w", o.file, err)
			}
			c.Sources = append(c.Sources, o.file)
		}
	}

	if o.env {
		env := loader.NewEnvLoader(o.envPrefix)
		if o.environ != nil {
			env.SetEnviron(o.environ)
		}
		m, err := env.Load()
		if err != nil {
			return nil, err
		}
		if err := c.Apply(m); err != nil {
			return nil, fmt.Errorf("environment: %w", err)
		}
	}

	c.Language.Path = expandHome(c.Language.Path)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply sets every recognized leaf of m. Unrecognized paths are recorded
// in Unknown; a value of the wrong type is an error.
func (c *Config) Apply(m map[string]any) error {
	paths := loader.Paths(m)
	sort.Strings(paths)
	for _, path := range paths {
		v, _ := loader.GetByPath(m, path)
		s, ok := lookup(path)
		if !ok {
			c.Unknown = append(c.Unknown, path)
			continue
		}
		if err := s.set(c, v); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// Set assigns one setting.
func (c *Config) Set(path string, value any) error {
	s, ok := lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	if err := s.set(c, value); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// SetString assigns one setting from text, as given on a command line.
func (c *Config) SetString(path, raw string) error {
	s, ok := lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	var v any = raw
	if !s.text {
		v = loader.ParseValue(raw)
	}
	if err := s.set(c, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// SetAssignment applies a "path=value" pair.
func (c *Config) SetAssignment(kv string) error {
	path, raw, ok := strings.Cut(kv, "=")
	if !ok {
		return fmt.Errorf("%w: expected path=value, got %q", ErrSettingNotFound, kv)
	}
	return c.SetString(strings.TrimSpace(path), strings.TrimSpace(raw))
}

// Get returns the current value of a setting.
func (c *Config) Get(path string) (any, error) {
	s, ok := lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return s.get(c), nil
}

// Validate checks ranges.
func (c *Config) Validate() error {
	for _, s := range settings {
		if s.check == nil {
			continue
		}
		if err := s.check(c); err != nil {
			return fmt.Errorf("%s: %w", s.path, err)
		}
	}
	return nil
}

// Paths returns every setting path, sorted.
func Paths() []string {
	out := make([]string, len(settings))
	for i, s := range settings {
		out[i] = s.path
	}
	sort.Strings(out)
	return out
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

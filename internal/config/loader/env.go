package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultPrefix is the environment variable prefix for scriptedit settings.
const DefaultPrefix = "SCRIPTEDIT_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix, e.g. "SCRIPTEDIT_"
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates an environment loader with the default mapping.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, DefaultEnvMapping(prefix))
}

// NewEnvLoaderWithMapping creates a loader with custom variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// DefaultEnvMapping returns the short variable names for common settings.
func DefaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LANGUAGE":     "language.path",
		prefix + "TAB_WIDTH":    "editor.tabWidth",
		prefix + "POPUP_ROWS":   "editor.popupRows",
		prefix + "LINE_NUMBERS": "editor.showLineNumbers",
		prefix + "WATCH":        "language.watch",
	}
}

// Load reads prefixed environment variables into a configuration map.
// Mapped names go to their mapped path; other prefixed names are converted
// with EnvToPath. Empty values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = EnvToPath(strings.TrimPrefix(name, l.prefix))
		}
		if path == "" {
			continue
		}
		SetByPath(config, path, ParseValue(value))
	}

	if len(config) == 0 {
		return nil, nil
	}
	return config, nil
}

// SetEnviron replaces os.Environ as the variable source.
func (l *EnvLoader) SetEnviron(fn func() []string) {
	l.environ = fn
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// EnvToPath converts EDITOR_TAB_WIDTH to editor.tabWidth: the first word
// is the section, the rest form a camelCase setting name.
func EnvToPath(name string) string {
	parts := strings.Split(strings.Trim(name, "_"), "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	b.WriteByte('.')
	b.WriteString(strings.ToLower(parts[1]))
	for _, part := range parts[2:] {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}

// ParseValue converts a string to the most specific value it spells: bool,
// int64, float64, a JSON array or object, else the string itself.
func ParseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Only with a decimal point, so ints stay ints
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if (s[0] == '[' || s[0] == '{') && gjson.Valid(s) {
		return gjson.Parse(s).Value()
	}

	return s
}

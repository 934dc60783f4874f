package config

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// setting binds a dotted path to a Config field.
type setting struct {
	path  string
	text  bool // value is taken verbatim from command line text
	set   func(*Config, any) error
	get   func(*Config) any
	check func(*Config) error
}

var settings = []setting{
	intSetting("editor.tabWidth", func(c *Config) *int { return &c.Editor.TabWidth }, 1, 16),
	intSetting("editor.popupRows", func(c *Config) *int { return &c.Editor.PopupRows }, 1, 50),
	intSetting("editor.popupWidth", func(c *Config) *int { return &c.Editor.PopupWidth }, 10, 200),
	boolSetting("editor.showLineNumbers", func(c *Config) *bool { return &c.Editor.ShowLineNumbers }),
	boolSetting("editor.highlightCurrentLine", func(c *Config) *bool { return &c.Editor.HighlightCurrentLine }),
	stringSetting("language.path", func(c *Config) *string { return &c.Language.Path }),
	stringSetting("language.name", func(c *Config) *string { return &c.Language.Name }),
	boolSetting("language.watch", func(c *Config) *bool { return &c.Language.Watch }),
	durationSetting("language.watchDelay", func(c *Config) *time.Duration { return &c.Language.WatchDelay }),
	boolSetting("ui.statusLine", func(c *Config) *bool { return &c.UI.StatusLine }),
}

func lookup(path string) (setting, bool) {
	for _, s := range settings {
		if s.path == path {
			return s, true
		}
	}
	return setting{}, false
}

func intSetting(path string, field func(*Config) *int, lo, hi int) setting {
	return setting{
		path: path,
		set: func(c *Config, v any) error {
			n, err := asInt(v)
			if err != nil {
				return err
			}
			*field(c) = n
			return nil
		},
		get: func(c *Config) any { return *field(c) },
		check: func(c *Config) error {
			if n := *field(c); n < lo || n > hi {
				return fmt.Errorf("%w: %d not in [%d, %d]", ErrValidationFailed, n, lo, hi)
			}
			return nil
		},
	}
}

func boolSetting(path string, field func(*Config) *bool) setting {
	return setting{
		path: path,
		set: func(c *Config, v any) error {
			switch b := v.(type) {
			case bool:
				*field(c) = b
				return nil
			case int64:
				if b == 0 || b == 1 {
					*field(c) = b == 1
					return nil
				}
			}
			return fmt.Errorf("%w: want bool, got %T", ErrTypeMismatch, v)
		},
		get: func(c *Config) any { return *field(c) },
	}
}

func stringSetting(path string, field func(*Config) *string) setting {
	return setting{
		path: path,
		text: true,
		set: func(c *Config, v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: want string, got %T", ErrTypeMismatch, v)
			}
			*field(c) = s
			return nil
		},
		get: func(c *Config) any { return *field(c) },
	}
}

// durationSetting accepts a Go duration string or a number of
// milliseconds.
func durationSetting(path string, field func(*Config) *time.Duration) setting {
	return setting{
		path: path,
		text: true,
		set: func(c *Config, v any) error {
			switch d := v.(type) {
			case time.Duration:
				*field(c) = d
				return nil
			case string:
				if ms, err := strconv.Atoi(d); err == nil {
					*field(c) = time.Duration(ms) * time.Millisecond
					return nil
				}
				parsed, err := time.ParseDuration(d)
				if err != nil {
					return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
				}
				*field(c) = parsed
				return nil
			}
			ms, err := asInt(v)
			if err != nil {
				return err
			}
			*field(c) = time.Duration(ms) * time.Millisecond
			return nil
		},
		get: func(c *Config) any { return *field(c) },
		check: func(c *Config) error {
			if *field(c) < 0 {
				return fmt.Errorf("%w: negative duration", ErrValidationFailed)
			}
			return nil
		},
	}
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("%w: want integer, got %T", ErrTypeMismatch, v)
}

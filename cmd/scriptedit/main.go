// Package main is the entry point for the scriptedit script editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scriptedit/internal/config"
	"github.com/dshills/scriptedit/internal/language"
	"github.com/dshills/scriptedit/internal/language/watcher"
	"github.com/dshills/scriptedit/internal/repl"
	"github.com/dshills/scriptedit/internal/session"
	"github.com/dshills/scriptedit/internal/terminal"
	"github.com/dshills/scriptedit/internal/textbuf"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the command line.
type options struct {
	configPath string
	langPath   string
	langName   string
	sets       setList
	repl       bool
	highlight  bool
	noColor    bool
	noWatch    bool
	files      []string
}

// setList collects repeated -set path=value flags.
type setList []string

func (s *setList) String() string     { return strings.Join(*s, ",") }
func (s *setList) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, path := range cfg.Unknown {
		fmt.Fprintf(os.Stderr, "Warning: unknown setting %s\n", path)
	}

	var file string
	if len(opts.files) > 0 {
		file = opts.files[0]
	}

	bundle, err := resolveLanguage(cfg, file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	switch {
	case opts.highlight:
		return runHighlight(bundle, opts.files, !opts.noColor)
	case opts.repl:
		return runREPL(bundle, !opts.noColor)
	default:
		return runEditor(cfg, bundle, file)
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to settings file (default: user config dir)")
	flag.StringVar(&opts.configPath, "c", "", "Path to settings file (shorthand)")
	flag.StringVar(&opts.langPath, "language", "", "Path to a language file")
	flag.StringVar(&opts.langPath, "l", "", "Path to a language file (shorthand)")
	flag.StringVar(&opts.langName, "lang", "", "Name of a registered language")
	flag.Var(&opts.sets, "set", "Override a setting, e.g. -set editor.tabWidth=2 (repeatable)")
	flag.BoolVar(&opts.repl, "repl", false, "Run the line-oriented REPL instead of the editor")
	flag.BoolVar(&opts.highlight, "highlight", false, "Print files (or stdin) highlighted and exit")
	flag.BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colors in -repl and -highlight output")
	flag.BoolVar(&opts.noWatch, "no-watch", false, "Do not reload the language file on change")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scriptedit - script editor with library-aware completion\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scriptedit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nSettings:\n")
		for _, p := range config.Paths() {
			fmt.Fprintf(os.Stderr, "  %s\n", p)
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  scriptedit filter.js               Edit a script\n")
		fmt.Fprintf(os.Stderr, "  scriptedit -l mylang.toml x.my     Edit with a custom language\n")
		fmt.Fprintf(os.Stderr, "  scriptedit -highlight filter.js    Print a script highlighted\n")
		fmt.Fprintf(os.Stderr, "  scriptedit -repl                   Try completions interactively\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("scriptedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.repl && opts.highlight {
		fmt.Fprintf(os.Stderr, "Error: -repl and -highlight are exclusive\n")
		os.Exit(2)
	}

	opts.files = flag.Args()
	return opts
}

// loadConfig layers the settings file, the environment and the flags.
func loadConfig(opts options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("settings file: %w", err)
	}

	cfg, err := config.Load(config.WithFile(path))
	if err != nil {
		return nil, err
	}

	for _, kv := range opts.sets {
		if err := cfg.SetAssignment(kv); err != nil {
			return nil, fmt.Errorf("-set %s: %w", kv, err)
		}
	}
	if opts.langPath != "" {
		cfg.Language.Path = opts.langPath
	}
	if opts.langName != "" {
		cfg.Language.Name = opts.langName
	}
	if opts.noWatch {
		cfg.Language.Watch = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveLanguage picks the language: an explicit file, then a name, then
// the extension of the edited file, then the built-in language.
func resolveLanguage(cfg *config.Config, file string) (*language.Bundle, error) {
	reg, err := language.DefaultRegistry()
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.Language.Path != "":
		return reg.LoadFile(cfg.Language.Path)
	case cfg.Language.Name != "":
		return reg.Get(cfg.Language.Name)
	}
	if file != "" {
		if b, ok := reg.ForFile(file); ok {
			return b, nil
		}
	}
	return language.Builtin()
}

func runEditor(cfg *config.Config, bundle *language.Bundle, file string) int {
	text, err := readScript(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	app, err := terminal.New(screen, textbuf.New(text), cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	if err := app.SetBundle(bundle); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	app.SetPath(file)
	app.SetStatus("Ctrl-S save  Ctrl-Q quit  Ctrl-Space complete")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Language.Watch && bundle.Path != "" {
		w, err := watcher.New(bundle, watcher.WithDelay(cfg.Language.WatchDelay))
		if err != nil {
			app.SetStatus("language watch disabled: " + err.Error())
		} else {
			defer w.Close()
			app.Follow(ctx, w.Reloads(), w.Errors())
		}
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// readScript returns the content of file; a missing file starts empty.
func readScript(file string) (string, error) {
	if file == "" {
		return "", nil
	}
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", file, err)
	}
	return string(data), nil
}

func runREPL(bundle *language.Bundle, color bool) int {
	s := session.New(bundle.Name, bundle.Syntax, bundle.Tree)

	var history string
	if dir, err := os.UserCacheDir(); err == nil {
		history = filepath.Join(dir, "scriptedit", "history")
		_ = os.MkdirAll(filepath.Dir(history), 0o755)
	}

	fmt.Printf("scriptedit %s (%s). Tab completes, Ctrl-D exits.\n", version, bundle.Name)
	if err := repl.Run(s, bundle.Theme, repl.Options{History: history, Color: color}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

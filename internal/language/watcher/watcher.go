// Package watcher reloads language bundles when their files change on disk.
//
// A Watcher follows the language file of a bundle and every library file it
// was built from. Bursts of file system events are coalesced, and the bundle
// is rebuilt once the files have been quiet for the debounce delay. Rebuilt
// bundles arrive on Reloads; load failures arrive on Errors and leave the
// caller's current bundle in place.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/scriptedit/internal/language"
)

// Errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrNoPath        = errors.New("bundle was not loaded from a file")
)

// DefaultDelay is the debounce delay used when none is configured.
const DefaultDelay = 150 * time.Millisecond

// Loader builds a bundle from a language file.
type Loader func(path string) (*language.Bundle, error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLoader replaces language.Load as the reload function.
func WithLoader(fn Loader) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.load = fn
		}
	}
}

// Stats provides watcher status information.
type Stats struct {
	// Reloads is the number of successful reloads.
	Reloads int
	// Failures is the number of failed reloads.
	Failures int
	// LastReload is when the last successful reload happened.
	LastReload time.Time
	// LastError is the most recent error.
	LastError error
}

// Watcher reloads a language bundle on change.
type Watcher struct {
	mu    sync.Mutex
	fsw   *fsnotify.Watcher
	path  string
	files map[string]struct{}
	dirs  map[string]struct{}
	delay time.Duration
	load  Loader
	stats Stats

	reloads  chan *language.Bundle
	errors   chan error
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New starts watching the files bundle b was built from.
func New(b *language.Bundle, opts ...Option) (*Watcher, error) {
	if b == nil || b.Path == "" {
		return nil, ErrNoPath
	}
	path, err := filepath.Abs(b.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", b.Path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		path:    path,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		delay:   DefaultDelay,
		load:    language.Load,
		reloads: make(chan *language.Bundle, 8),
		errors:  make(chan error, 8),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.follow(b); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path of the watched language file.
func (w *Watcher) Path() string {
	return w.path
}

// Reloads returns the channel of rebuilt bundles.
func (w *Watcher) Reloads() <-chan *language.Bundle {
	return w.reloads
}

// Errors returns the channel of reload and watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Watching reports whether changes to path trigger a reload.
func (w *Watcher) Watching(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[abs]
	return ok
}

// Stats returns watcher statistics.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Close stops the watcher and closes its channels. It is safe to call more
// than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.reloads)
	close(w.errors)

	return w.fsw.Close()
}

// follow registers the language file and the library files of b. Watches
// are set on directories so that files replaced by rename are still seen.
func (w *Watcher) follow(b *language.Bundle) error {
	paths := append([]string{w.path}, b.Libraries...)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	files := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files = files
	return nil
}

// processLoop owns the debounce timer and is the only sender on the
// output channels.
func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Stop()
				timer.Reset(w.delay)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.recordError(err)
			w.sendError(err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

// relevant reports whether ev touches a followed file with content.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[abs]
	return ok
}

func (w *Watcher) reload() {
	b, err := w.load(w.path)
	if err != nil {
		w.mu.Lock()
		w.stats.Failures++
		w.mu.Unlock()
		w.recordError(err)
		w.sendError(fmt.Errorf("reloading %s: %w", w.path, err))
		return
	}
	if err := w.follow(b); err != nil {
		w.recordError(err)
		w.sendError(err)
	}

	w.mu.Lock()
	w.stats.Reloads++
	w.stats.LastReload = time.Now()
	w.mu.Unlock()

	select {
	case w.reloads <- b:
	default:
		// Drop if buffer full; a newer reload will follow the next change
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
		// Drop if buffer full
	}
}

func (w *Watcher) recordError(err error) {
	w.mu.Lock()
	w.stats.LastError = err
	w.mu.Unlock()
}

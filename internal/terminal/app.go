// Package terminal is the tcell frontend of scriptedit: a single-buffer
// script editor with syntax highlighting, a line number gutter and the
// completion popup.
package terminal

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scriptedit/internal/config"
	"github.com/dshills/scriptedit/internal/highlight"
	"github.com/dshills/scriptedit/internal/language"
	"github.com/dshills/scriptedit/internal/popup"
	"github.com/dshills/scriptedit/internal/session"
	"github.com/dshills/scriptedit/internal/textbuf"
)

// ErrNoScreen is returned when an App is created without a screen.
var ErrNoScreen = errors.New("no screen")

// App runs the editor on a tcell screen.
type App struct {
	screen   tcell.Screen
	buf      *textbuf.Buffer
	editor   *session.Editor
	popup    *popup.List
	provider *highlight.Provider
	theme    *highlight.Theme
	cfg      *config.Config

	path     string
	language string
	status   string
	top      int

	// quitArmed is set after a quit request on a modified buffer.
	quitArmed bool
	quit      bool
}

// bundleEvent carries a reloaded language, or a reload error, into the
// event loop.
type bundleEvent struct {
	tcell.EventTime
	bundle *language.Bundle
	err    error
}

func newBundleEvent(b *language.Bundle, err error) *bundleEvent {
	ev := &bundleEvent{bundle: b, err: err}
	ev.SetEventNow()
	return ev
}

// New creates an App editing buf. The screen must already be initialized.
func New(screen tcell.Screen, buf *textbuf.Buffer, cfg *config.Config) (*App, error) {
	if screen == nil {
		return nil, ErrNoScreen
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if buf == nil {
		buf = textbuf.New("")
	}

	list := popup.New(cfg.Editor.PopupRows, cfg.Editor.PopupWidth)
	ed, err := session.NewEditor(buf, list)
	if err != nil {
		return nil, err
	}

	theme := highlight.DefaultTheme()
	provider := highlight.NewProvider(theme, 0)
	provider.SetLineGetter(func(line uint32) string { return buf.Line(int(line)) })
	ed.SetProvider(provider)

	return &App{
		screen:   screen,
		buf:      buf,
		editor:   ed,
		popup:    list,
		provider: provider,
		theme:    theme,
		cfg:      cfg,
	}, nil
}

// Editor returns the completion editor.
func (a *App) Editor() *session.Editor { return a.editor }

// Buffer returns the edited buffer.
func (a *App) Buffer() *textbuf.Buffer { return a.buf }

// Popup returns the completion list.
func (a *App) Popup() *popup.List { return a.popup }

// Status returns the current status message.
func (a *App) Status() string { return a.status }

// SetStatus replaces the status message.
func (a *App) SetStatus(msg string) { a.status = msg }

// SetPath sets the file Save writes to.
func (a *App) SetPath(path string) { a.path = path }

// Path returns the file Save writes to.
func (a *App) Path() string { return a.path }

// Quit reports whether the app has been asked to stop.
func (a *App) Quit() bool { return a.quit }

// SetBundle activates a language bundle: a fresh session, its theme and
// its word splitting for the buffer.
func (a *App) SetBundle(b *language.Bundle) error {
	if b == nil {
		return language.ErrNotFound
	}
	if err := a.editor.SetLanguage(b.Name, b.Syntax, b.Tree); err != nil {
		return fmt.Errorf("activating %s: %w", b.Name, err)
	}
	if b.Theme != nil {
		a.theme = b.Theme
		a.provider.SetTheme(b.Theme)
	}
	if b.Syntax != nil {
		a.buf.SetWordFunc(b.Syntax.LastWord)
	}
	a.language = b.Name
	return nil
}

// Follow forwards reloaded bundles and reload errors into the event loop
// until both channels close or ctx is done.
func (a *App) Follow(ctx context.Context, reloads <-chan *language.Bundle, errs <-chan error) {
	go func() {
		for reloads != nil || errs != nil {
			select {
			case <-ctx.Done():
				return
			case b, ok := <-reloads:
				if !ok {
					reloads = nil
					continue
				}
				_ = a.screen.PostEvent(newBundleEvent(b, nil)) // best-effort; queue may be full
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				_ = a.screen.PostEvent(newBundleEvent(nil, err))
			}
		}
	}()
}

// Run draws and processes events until quit or ctx is done.
func (a *App) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for !a.quit {
		a.Draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		a.HandleEvent(ev)
	}
	return nil
}

// HandleEvent applies one event.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		a.handleKey(ev)
	case *bundleEvent:
		a.handleBundle(ev)
	}
}

func (a *App) handleBundle(ev *bundleEvent) {
	if ev.err != nil {
		a.status = "reload failed: " + ev.err.Error()
		return
	}
	if err := a.SetBundle(ev.bundle); err != nil {
		a.status = err.Error()
		return
	}
	a.status = "language " + ev.bundle.Name + " reloaded"
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyCtrlQ && ev.Key() != tcell.KeyCtrlC {
		a.quitArmed = false
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		a.requestQuit()
		return
	case tcell.KeyCtrlS:
		a.save()
		return
	case tcell.KeyCtrlSpace:
		a.editor.Refresh()
		return
	case tcell.KeyRune:
		a.editor.InsertChar(string(ev.Rune()))
		return
	}

	if k, ok := sessionKey(ev.Key()); ok {
		if a.editor.HandleKey(k) {
			return
		}
		a.defaultAction(k)
		return
	}

	// Any other cursor motion leaves the completion context.
	a.editor.HandleKey(session.KeyEscape)
	switch ev.Key() {
	case tcell.KeyLeft:
		a.buf.MoveLeft()
	case tcell.KeyRight:
		a.buf.MoveRight()
	case tcell.KeyHome:
		a.buf.Home()
	case tcell.KeyEnd:
		a.buf.End()
	case tcell.KeyDelete:
		a.buf.Delete()
	}
}

// defaultAction performs what a key does when completion did not take it.
func (a *App) defaultAction(k session.Key) {
	switch k {
	case session.KeyTab:
		a.buf.InsertText("\t")
	case session.KeyUp:
		a.buf.MoveUp(1)
	case session.KeyDown:
		a.buf.MoveDown(1)
	case session.KeyPageUp:
		a.buf.MoveUp(a.textHeight())
	case session.KeyPageDown:
		a.buf.MoveDown(a.textHeight())
	case session.KeyBackspace:
		a.buf.Backspace()
	}
}

func (a *App) requestQuit() {
	if a.buf.Dirty() && !a.quitArmed {
		a.quitArmed = true
		a.status = "unsaved changes; press Ctrl-Q again to quit"
		return
	}
	a.quit = true
}

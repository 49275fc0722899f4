// Package app wires the screen, the event bus and the player or editor into
// the interactive programs.
package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"

	"github.com/bethropolis/termreel/internal/config"
	"github.com/bethropolis/termreel/internal/event"
	"github.com/bethropolis/termreel/internal/highlighter"
	"github.com/bethropolis/termreel/internal/input"
	"github.com/bethropolis/termreel/internal/logger"
	"github.com/bethropolis/termreel/internal/player"
	"github.com/bethropolis/termreel/internal/script"
	"github.com/bethropolis/termreel/internal/statusbar"
	"github.com/bethropolis/termreel/internal/terminal"
	"github.com/bethropolis/termreel/internal/theme"
	"github.com/bethropolis/termreel/internal/tui"
	"github.com/bethropolis/termreel/internal/typing"
	"github.com/bethropolis/termreel/internal/vim"
)

// Options are the app's injectable dependencies.
type Options struct {
	Screen tcell.Screen    // nil opens the real terminal
	Clock  clockwork.Clock // nil uses the real clock
}

// App encapsulates the screen, the shared state and the main loop.
type App struct {
	cfg                 *config.Config
	tuiManager          *tui.TUI
	themeManager        *theme.Manager
	statusBar           *statusbar.StatusBar
	eventManager        *event.Manager
	inputProcessor      *input.InputProcessor
	highlightingManager *HighlightingManager

	store   *terminal.Store
	session *vim.Session
	player  *player.Player // nil for the editor
	title   string

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	paused   bool
	pausedAt int
	done     atomic.Bool

	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
}

func newApp(cfg *config.Config, opts Options, processor *input.InputProcessor) (*App, error) {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	themeManager := theme.NewManager()
	if err := themeManager.LoadDir(theme.DefaultDir(config.AppName)); err != nil {
		logger.Warnf("App: %v", err)
	}
	activeTheme := themeManager.Resolve(cfg.UI.Theme, cfg.UI.ThemeFile)

	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, activeTheme)
	} else {
		tuiManager, err = tui.New(activeTheme)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	session := vim.NewSession(eventManager, player.VimOptions(cfg.Vim))
	session.UseSystemClipboard(cfg.Vim.SystemClipboard)

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		themeManager:   themeManager,
		statusBar:      statusbar.New(statusbar.ConfigFromTheme(activeTheme), opts.Clock),
		eventManager:   eventManager,
		inputProcessor: processor,
		store:          terminal.NewStore(eventManager, cfg.Player.MaxLines),
		session:        session,
		quit:           make(chan struct{}),
		redrawRequest:  make(chan struct{}, 1),
	}

	var hl *highlighter.Highlighter
	if cfg.UI.Syntax {
		hl = highlighter.NewHighlighter()
	}
	a.highlightingManager = NewHighlightingManager(hl, opts.Clock, a.requestRedraw)

	a.eventManager.SubscribeAll(a.handleStateChanged,
		event.TypeLineAdded, event.TypeLinesChanged, event.TypeTypingChanged, event.TypeModeChanged,
		event.TypeVimChanged, event.TypeVimClosed, event.TypePlaybackPaused, event.TypePlaybackResumed)
	a.eventManager.Subscribe(event.TypeVimChanged, a.handleVimChanged)
	return a, nil
}

// NewPlayerApp creates the app that plays sc.
func NewPlayerApp(cfg *config.Config, sc *script.Script, opts Options) (*App, error) {
	a, err := newApp(cfg, opts, input.NewPlaybackProcessor())
	if err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	typer := typing.New(opts.Clock, player.TypingOptions(cfg.Player))
	a.player = player.New(sc, a.store, a.session, typer, a.eventManager, player.OptionsFromConfig(cfg.Player))
	a.title = fmt.Sprintf("%s: %s", config.AppName, sc.Name)

	a.eventManager.Subscribe(event.TypePlaybackStarted, func(event.Event) bool {
		a.done.Store(false)
		a.requestRedraw()
		return false
	})
	a.eventManager.Subscribe(event.TypePlaybackComplete, func(event.Event) bool {
		a.done.Store(true)
		a.requestRedraw()
		return false
	})
	return a, nil
}

// NewEditorApp creates the interactive editor on filename. lines is the
// initial content; nothing is ever written back to disk.
func NewEditorApp(cfg *config.Config, filename string, lines []string, opts Options) (*App, error) {
	a, err := newApp(cfg, opts, input.NewEditorProcessor())
	if err != nil {
		return nil, err
	}
	a.title = filename
	a.store.SetMode(terminal.ModeVim)
	a.session.Load(vim.WithContent(filename, lines, player.VimOptions(cfg.Vim)))

	a.eventManager.Subscribe(event.TypeVimClosed, func(event.Event) bool {
		a.Quit()
		return false
	})
	return a, nil
}

// Run starts the event loop and draws until Quit or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)
	defer a.shutdown()

	go a.eventLoop()

	if a.player != nil {
		a.player.Start(a.ctx)
	} else {
		a.highlightingManager.Update(a.session.State())
		a.statusBar.SetTemporaryMessage("%s - in-memory only, :q to leave", config.AppName)
	}
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			logger.Infof("Exiting application.")
			return nil
		case <-a.ctx.Done():
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// Quit stops Run. It is safe to call more than once.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

func (a *App) shutdown() {
	if a.player != nil {
		a.player.Pause()
	}
	a.highlightingManager.Shutdown()
	a.cancel()
	a.tuiManager.Close()
}

// eventLoop handles TUI events until the screen is closed.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			a.requestRedraw()
		case *tcell.EventKey:
			if a.handleKey(a.inputProcessor.ProcessEvent(eventData)) {
				a.requestRedraw()
			}
		}
	}
}

// handleKey performs a decoded key press and reports whether to redraw.
func (a *App) handleKey(ev input.ActionEvent) bool {
	switch ev.Action {
	case input.ActionQuit:
		a.Quit()
		return false
	case input.ActionTogglePause:
		a.togglePause()
	case input.ActionReplay:
		a.replay()
	case input.ActionNextTheme:
		a.nextTheme()
	case input.ActionVimKey:
		if a.session.Active() {
			a.session.Feed(ev.Key)
		}
	default:
		return false
	}
	return true
}

func (a *App) togglePause() {
	if a.player == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.paused {
		a.paused = false
		a.player.Resume(a.ctx, a.pausedAt)
		return
	}
	if a.done.Load() && !a.cfg.Player.Loop {
		return
	}
	a.pausedAt = a.player.Pause()
	a.paused = true
}

func (a *App) replay() {
	if a.player == nil {
		return
	}
	a.mu.Lock()
	a.paused = false
	a.mu.Unlock()
	a.player.Reset(a.ctx)
}

func (a *App) nextTheme() {
	names := a.themeManager.ListThemes()
	if len(names) == 0 {
		return
	}
	current := a.themeManager.Current().Name
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := a.themeManager.SetTheme(next); err != nil {
		logger.Warnf("App: %v", err)
		return
	}
	a.SetTheme(a.themeManager.Current())
	a.statusBar.SetTemporaryMessage("theme: %s", next)
}

// SetTheme changes the active theme and triggers a redraw.
func (a *App) SetTheme(t *theme.Theme) {
	if t == nil {
		return
	}
	a.tuiManager.SetTheme(t)
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(t))
	a.requestRedraw()
}

// Paused reports whether playback was paused from the keyboard.
func (a *App) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

// Store exposes the shell state.
func (a *App) Store() *terminal.Store {
	return a.store
}

// Session exposes the editor.
func (a *App) Session() *vim.Session {
	return a.session
}

// Player exposes the player, nil for the editor app.
func (a *App) Player() *player.Player {
	return a.player
}

// Events exposes the bus.
func (a *App) Events() *event.Manager {
	return a.eventManager
}

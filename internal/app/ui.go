package app

import (
	"github.com/bethropolis/termreel/internal/event"
	"github.com/bethropolis/termreel/internal/logger"
	"github.com/bethropolis/termreel/internal/terminal"
	"github.com/bethropolis/termreel/internal/tui"
	"github.com/bethropolis/termreel/internal/vim"
)

// draw clears the screen and redraws the view owning it. A buffer that was
// just closed stays on screen until the store leaves vim mode.
func (a *App) draw() {
	a.tuiManager.Clear()
	st := a.store.State()
	if st.Mode == terminal.ModeVim {
		tui.DrawVim(a.tuiManager, a.session.State(), a.highlightingManager.Result(), a.statusBar)
	} else {
		tui.DrawTerminal(a.tuiManager, st, a.terminalView())
	}
	a.tuiManager.Show()
}

func (a *App) terminalView() tui.TerminalView {
	title := a.title
	if a.done.Load() && !a.cfg.Player.Loop {
		title += " (done, r to replay)"
	}
	return tui.TerminalView{
		Title:        title,
		Prompt:       a.cfg.UI.Prompt,
		VisibleLines: terminal.DefaultVisibleLines,
		Paused:       a.Paused(),
	}
}

// handleStateChanged redraws after any state change.
func (a *App) handleStateChanged(e event.Event) bool {
	logger.DebugTagf("draw", "App: %s, redraw requested", e.Type)
	a.requestRedraw()
	return false
}

func (a *App) handleVimChanged(e event.Event) bool {
	if st, ok := e.Data.(vim.State); ok {
		a.highlightingManager.Update(st)
	}
	return false
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// Package tui owns the tcell screen and draws the terminal and vim views.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/termreel/internal/theme"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
	theme  *theme.Theme
}

// New creates and initializes a TUI on the real terminal.
func New(t *theme.Theme) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, t)
}

// NewWithScreen initializes s and wraps it. Tests pass a simulation screen.
func NewWithScreen(s tcell.Screen, t *theme.Theme) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	tui := &TUI{screen: s}
	tui.SetTheme(t)
	return tui, nil
}

// SetTheme switches the styles used for drawing. nil selects the built-in theme.
func (t *TUI) SetTheme(th *theme.Theme) {
	if th == nil {
		th = &theme.DevComfortDark
	}
	t.theme = th
	t.screen.SetStyle(th.GetStyle("Default"))
}

// Theme returns the active theme.
func (t *TUI) Theme() *theme.Theme {
	return t.theme
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}

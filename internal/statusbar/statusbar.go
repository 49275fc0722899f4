// Package statusbar draws the vim view's status row.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"

	"github.com/bethropolis/termreel/internal/theme"
	"github.com/bethropolis/termreel/internal/utils"
	"github.com/bethropolis/termreel/internal/vim"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleMode      tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleMode:      tcell.StyleDefault.Foreground(tcell.ColorBlue).Background(tcell.ColorBlack).Bold(true),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// ConfigFromTheme takes the status styles from t.
func ConfigFromTheme(t *theme.Theme) Config {
	cfg := DefaultConfig()
	cfg.StyleDefault = t.GetStyle("StatusBar")
	cfg.StyleMode = t.GetStyle("StatusBarMode")
	cfg.StyleModified = t.GetStyle("StatusBarModified")
	cfg.StyleMessage = t.GetStyle("StatusBarMessage")
	return cfg
}

// StatusBar shows the file label, mode and ruler of a vim session.
type StatusBar struct {
	config Config
	clock  clockwork.Clock
	mu     sync.RWMutex

	fileName   string
	isModified bool
	mode       vim.Mode
	ruler      string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a StatusBar. A nil clock uses the real clock.
func New(config Config, clock clockwork.Clock) *StatusBar {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StatusBar{config: config, clock: clock}
}

// SetVim copies what the bar shows from st.
func (sb *StatusBar) SetVim(st vim.State) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.fileName = st.Filename
	sb.isModified = st.Modified()
	sb.mode = st.Mode
	sb.ruler = st.Ruler()
}

// SetTemporaryMessage replaces the file label for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.clock.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the left and right parts of the bar as Draw would show them.
func (sb *StatusBar) Text() (left, right string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	left, _ = sb.leftText()
	return left, sb.rightText()
}

// leftText expires a stale message. Caller holds the write lock.
func (sb *StatusBar) leftText() (string, bool) {
	if !sb.tempMessageTime.IsZero() {
		if sb.clock.Since(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, true
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	name := sb.fileName
	if name == "" {
		name = "[No Name]"
	}
	if sb.isModified {
		name += " [+]"
	}
	return name, false
}

func (sb *StatusBar) rightText() string {
	if sb.mode == vim.ModeClosed {
		return sb.ruler
	}
	return fmt.Sprintf("%s  %s", sb.mode, sb.ruler)
}

// Draw renders the bar on row y.
func (sb *StatusBar) Draw(screen tcell.Screen, y, width int) {
	if width <= 0 {
		return
	}

	sb.mu.Lock()
	left, isMessage := sb.leftText()
	right := sb.rightText()
	modified := sb.isModified
	sb.mu.Unlock()

	utils.Fill(screen, 0, y, width, sb.config.StyleDefault)

	leftStyle := sb.config.StyleDefault
	switch {
	case isMessage:
		leftStyle = sb.config.StyleMessage
	case modified:
		leftStyle = sb.config.StyleModified
	}
	x := utils.DrawText(screen, 1, y, width, left, leftStyle)

	rightX := width - utils.VisualWidth(right) - 1
	if rightX <= x {
		return
	}
	utils.DrawText(screen, rightX, y, width, right, sb.config.StyleMode)
}

// SetConfig swaps the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/bethropolis/termreel/internal/vim"
)

func runeEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestPlaybackBindings(t *testing.T) {
	p := NewPlaybackProcessor()
	assert.Equal(t, ActionTogglePause, p.ProcessEvent(runeEvent(' ')).Action)
	assert.Equal(t, ActionReplay, p.ProcessEvent(runeEvent('r')).Action)
	assert.Equal(t, ActionQuit, p.ProcessEvent(runeEvent('q')).Action)
	assert.Equal(t, ActionQuit, p.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionQuit, p.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)).Action)
	assert.Equal(t, ActionUnknown, p.ProcessEvent(runeEvent('x')).Action)

	p.Bind('x', ActionNextTheme)
	assert.Equal(t, ActionNextTheme, p.ProcessEvent(runeEvent('x')).Action)
}

func TestEditorForwardsKeys(t *testing.T) {
	p := NewEditorProcessor()
	ev := p.ProcessEvent(runeEvent('q'))
	assert.Equal(t, ActionVimKey, ev.Action)
	assert.Equal(t, vim.Rune('q'), ev.Key)

	ev = p.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.Equal(t, vim.Escape, ev.Key)
	ev = p.ProcessEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, vim.Backspace, ev.Key)
	ev = p.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	assert.Equal(t, vim.CtrlR, ev.Key)

	assert.Equal(t, ActionQuit, p.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)).Action)
	assert.Equal(t, ActionUnknown, p.ProcessEvent(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)).Action)
	assert.Equal(t, "vim-key", ActionVimKey.String())
}

package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/termreel/internal/config"
	"github.com/bethropolis/termreel/internal/script"
	"github.com/bethropolis/termreel/internal/terminal"
	"github.com/bethropolis/termreel/internal/vim"
)

func testConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Player = config.PlayerConfig{MaxLines: 50}
	cfg.UI.Syntax = false
	cfg.UI.ThemeFile = ""
	return cfg
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	return s
}

func runApp(t *testing.T, a *App) <-chan error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- a.Run(context.Background()) }()
	return errc
}

func waitErr(t *testing.T, errc <-chan error) {
	t.Helper()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not exit")
	}
}

func TestEditorAppQuitsOnForceQuit(t *testing.T) {
	s := newScreen(t)
	a, err := NewEditorApp(testConfig(), "notes.txt", []string{"one"}, Options{Screen: s})
	require.NoError(t, err)
	s.SetSize(40, 10)
	errc := runApp(t, a)

	for _, r := range "Ahi" {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	require.Eventually(t, func() bool {
		return a.Session().State().Content[0] == "onehi"
	}, 5*time.Second, 5*time.Millisecond)

	for _, r := range ":q!" {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	waitErr(t, errc)

	assert.False(t, a.Session().Active())
	assert.Equal(t, vim.ModeClosed, a.Session().State().Mode)
}

func TestPlayerAppPlaysAndQuits(t *testing.T) {
	sc := &script.Script{Name: "demo", Lines: []script.Line{
		{ID: 1, Text: "echo hi", Kind: script.KindCommand},
		{ID: 2, Text: "hi", Kind: script.KindLog},
	}}
	s := newScreen(t)
	a, err := NewPlayerApp(testConfig(), sc, Options{Screen: s})
	require.NoError(t, err)
	s.SetSize(60, 10)
	errc := runApp(t, a)

	require.Eventually(t, func() bool {
		select {
		case <-a.Player().Done():
			return true
		default:
			return false
		}
	}, 5*time.Second, 5*time.Millisecond)
	assert.Len(t, a.Store().State().Lines, 2)

	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	waitErr(t, errc)
}

func TestTogglePauseAndReplay(t *testing.T) {
	sc := &script.Script{Name: "demo", Lines: []script.Line{
		{ID: 1, Text: "a", Kind: script.KindLog, DelayMs: 10000},
	}}
	s := newScreen(t)
	a, err := NewPlayerApp(testConfig(), sc, Options{Screen: s})
	require.NoError(t, err)
	a.ctx, a.cancel = context.WithCancel(context.Background())
	defer a.cancel()

	a.player.Start(a.ctx)
	a.togglePause()
	assert.True(t, a.Paused())
	assert.False(t, a.player.Running())

	a.togglePause()
	assert.False(t, a.Paused())
	assert.True(t, a.player.Running())

	a.togglePause()
	a.replay()
	assert.False(t, a.Paused())
	assert.True(t, a.player.Running())
	a.player.Pause()
	a.tuiManager.Close()
}

func TestNextThemeCycles(t *testing.T) {
	s := newScreen(t)
	a, err := NewEditorApp(testConfig(), "", nil, Options{Screen: s})
	require.NoError(t, err)
	defer a.tuiManager.Close()

	first := a.tuiManager.Theme().Name
	a.nextTheme()
	assert.NotEqual(t, first, a.tuiManager.Theme().Name)
	left, _ := a.statusBar.Text()
	assert.Equal(t, "theme: "+a.tuiManager.Theme().Name, left)
}

func lastRow(s tcell.SimulationScreen) string {
	s.Show()
	cells, w, h := s.GetContents()
	var b strings.Builder
	for _, c := range cells[(h-1)*w : h*w] {
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
		} else {
			b.WriteRune(c.Runes[0])
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func TestClosedBufferDrawnUntilTerminalMode(t *testing.T) {
	s := newScreen(t)
	a, err := NewPlayerApp(testConfig(), script.Default(), Options{Screen: s})
	require.NoError(t, err)
	defer a.tuiManager.Close()
	s.SetSize(40, 10)

	a.Session().Open("a.txt")
	a.Store().SetMode(terminal.ModeVim)
	a.Session().FeedAll(vim.Runes("ihi")...)
	a.Session().Feed(vim.Escape)
	a.Session().FeedAll(vim.Command("wq")...)
	require.False(t, a.Session().Active())

	a.draw()
	assert.Equal(t, `"a.txt" 1L, 3B written`, lastRow(s))

	a.Store().SetMode(terminal.ModeTerminal)
	a.draw()
	assert.NotContains(t, lastRow(s), "written")
}

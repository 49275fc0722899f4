package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/termreel/internal/highlighter"
	"github.com/bethropolis/termreel/internal/script"
	"github.com/bethropolis/termreel/internal/statusbar"
	"github.com/bethropolis/termreel/internal/terminal"
	"github.com/bethropolis/termreel/internal/theme"
	"github.com/bethropolis/termreel/internal/vim"
)

func newSim(t *testing.T, w, h int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	tui, err := NewWithScreen(s, &theme.DevComfortDark)
	require.NoError(t, err)
	t.Cleanup(tui.Close)
	s.SetSize(w, h)
	return tui, s
}

func rows(s tcell.SimulationScreen) []string {
	s.Show()
	cells, w, h := s.GetContents()
	out := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				b.WriteRune(' ')
			} else {
				b.WriteRune(c.Runes[0])
			}
		}
		out[y] = strings.TrimRight(b.String(), " ")
	}
	return out
}

func cellStyle(s tcell.SimulationScreen, x, y int) tcell.Style {
	cells, w, _ := s.GetContents()
	return cells[y*w+x].Style
}

func TestDrawTerminal(t *testing.T) {
	tui, s := newSim(t, 30, 6)
	st := terminal.State{
		Lines: []script.Line{
			{ID: 1, Text: "ls", Kind: script.KindCommand},
			{ID: 2, Text: "a.txt", Kind: script.KindLog},
		},
		IsTyping:    true,
		CurrentText: "gi",
	}
	DrawTerminal(tui, st, TerminalView{Title: "demo", Prompt: "$ "})

	got := rows(s)
	assert.Equal(t, []string{" demo", "$ ls", "a.txt", "$ gi", "", ""}, got)
	assert.Equal(t, theme.DevComfortDark.GetStyle("Cursor"), cellStyle(s, 4, 3))
	assert.Equal(t, theme.DevComfortDark.LineStyle(script.KindLog), cellStyle(s, 0, 2))
}

func TestDrawTerminalShowsLastVisibleLines(t *testing.T) {
	tui, s := newSim(t, 20, 10)
	var st terminal.State
	for i, text := range []string{"one", "two", "three", "four"} {
		st.Lines = append(st.Lines, script.Line{ID: i + 1, Text: text, Kind: script.KindInfo})
	}
	DrawTerminal(tui, st, TerminalView{Title: "t", Prompt: "> ", VisibleLines: 2, Paused: true})

	got := rows(s)
	assert.Equal(t, " t (paused)", got[0])
	assert.Equal(t, []string{"three", "four", ">"}, got[1:4])
}

func TestDrawVim(t *testing.T) {
	tui, s := newSim(t, 30, 6)
	st := vim.WithContent("a.ts", []string{"const a = 1;", "x"}, vim.DefaultOptions())
	st = vim.ApplyAll(st, vim.Command("set number")...)
	require.True(t, st.ShowLineNumbers)

	hl := highlighter.HighlightResult{0: {{StartCol: 0, EndCol: 5, StyleName: "keyword"}}}
	sb := statusbar.New(statusbar.ConfigFromTheme(tui.Theme()), clockwork.NewFakeClock())
	DrawVim(tui, st, hl, sb)

	got := rows(s)
	assert.Equal(t, "  1 const a = 1;", got[0])
	assert.Equal(t, "  2 x", got[1])
	assert.Equal(t, "~", got[2])
	assert.Equal(t, "~", got[3])
	assert.True(t, strings.HasPrefix(got[4], " a.ts"), got[4])
	assert.True(t, strings.HasSuffix(got[4], "NORMAL  1,1"), got[4])

	assert.Equal(t, theme.DevComfortDark.GetStyle("keyword"), cellStyle(s, 4, 0))
	assert.Equal(t, theme.DevComfortDark.GetStyle("LineNumberCurrent"), cellStyle(s, 2, 0))

	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 4, x)
	assert.Equal(t, 0, y)
}

func TestDrawVimCommandLineAndSelection(t *testing.T) {
	tui, s := newSim(t, 20, 5)
	st := vim.WithContent("", []string{"hello"}, vim.DefaultOptions())
	st = vim.ApplyAll(st, vim.Runes("vl")...)
	DrawVim(tui, st, nil, nil)

	got := rows(s)
	assert.Equal(t, "-- VISUAL --", got[4])
	sel := theme.DevComfortDark.GetStyle("Selection")
	assert.Equal(t, sel, cellStyle(s, 0, 0))
	assert.Equal(t, sel, cellStyle(s, 1, 0))
	assert.NotEqual(t, sel, cellStyle(s, 2, 0))

	st = vim.ApplyAll(st, vim.Escape, vim.Rune(':'), vim.Rune('w'))
	DrawVim(tui, st, nil, nil)
	got = rows(s)
	assert.Equal(t, ":w", got[4])
	x, y, _ := s.GetCursor()
	assert.Equal(t, []int{2, 4}, []int{x, y})
}

func TestDrawVimErrorMessage(t *testing.T) {
	tui, s := newSim(t, 60, 4)
	st := vim.New("", vim.DefaultOptions())
	st = vim.ApplyAll(st, vim.Command("w")...)
	DrawVim(tui, st, nil, nil)

	got := rows(s)
	assert.Equal(t, "E32: No file name", got[3])
	assert.Equal(t, theme.DevComfortDark.GetStyle("StatusBarError"), cellStyle(s, 0, 3))
}

func TestGutterWidth(t *testing.T) {
	st := vim.New("", vim.DefaultOptions())
	assert.Equal(t, 0, GutterWidth(st, 80))
	st.ShowLineNumbers = true
	assert.Equal(t, 4, GutterWidth(st, 80))
	assert.Equal(t, 0, GutterWidth(st, 4))
	st.Content = make([]string, 1200)
	assert.Equal(t, 5, GutterWidth(st, 80))
}

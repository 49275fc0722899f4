package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/termreel/internal/highlighter"
	"github.com/bethropolis/termreel/internal/script"
	"github.com/bethropolis/termreel/internal/statusbar"
	"github.com/bethropolis/termreel/internal/terminal"
	"github.com/bethropolis/termreel/internal/types"
	"github.com/bethropolis/termreel/internal/utils"
	"github.com/bethropolis/termreel/internal/vim"
)

const tabWidth = 4

// TerminalView holds the shell chrome.
type TerminalView struct {
	Title        string
	Prompt       string
	VisibleLines int
	Paused       bool
}

// DrawTerminal draws the title row, the last lines of the shell and the prompt.
func DrawTerminal(t *TUI, st terminal.State, view TerminalView) {
	screen := t.screen
	width, height := t.Size()
	if width <= 0 || height <= 0 {
		return
	}
	defaultStyle := t.theme.GetStyle("Default")
	promptStyle := t.theme.GetStyle("Prompt")

	title := view.Title
	if view.Paused {
		title += " (paused)"
	}
	titleStyle := t.theme.GetStyle("Title")
	utils.Fill(screen, 0, 0, width, titleStyle)
	utils.DrawText(screen, 1, 0, width, title, titleStyle)

	rows := height - 2
	if view.VisibleLines > 0 && view.VisibleLines < rows {
		rows = view.VisibleLines
	}
	if rows < 0 {
		rows = 0
	}

	y := 1
	for _, line := range st.Visible(rows) {
		utils.Fill(screen, 0, y, width, defaultStyle)
		x := 0
		if line.Kind == script.KindCommand {
			x = utils.DrawText(screen, x, y, width, view.Prompt, promptStyle)
		}
		utils.DrawText(screen, x, y, width, expandTabs(line.Text), t.theme.LineStyle(line.Kind))
		y++
	}

	if y >= height {
		screen.HideCursor()
		return
	}
	utils.Fill(screen, 0, y, width, defaultStyle)
	x := utils.DrawText(screen, 0, y, width, view.Prompt, promptStyle)
	if st.IsTyping {
		x = utils.DrawText(screen, x, y, width, st.CurrentText, t.theme.LineStyle(script.KindCommand))
	}
	if x < width {
		screen.SetContent(x, y, ' ', nil, t.theme.GetStyle("Cursor"))
	}
	screen.HideCursor()

	for y++; y < height; y++ {
		utils.Fill(screen, 0, y, width, defaultStyle)
	}
}

// GutterWidth is the width of the line number column including its padding,
// or 0 when numbers are off or the screen is too narrow.
func GutterWidth(st vim.State, width int) int {
	if !st.ShowLineNumbers {
		return 0
	}
	digits := len(strconv.Itoa(len(st.Content)))
	if digits < 3 {
		digits = 3
	}
	if digits+1 >= width {
		return 0
	}
	return digits + 1
}

// DrawVim draws the buffer viewport, the status bar and the command line.
// The last two rows of the screen belong to the status bar and the command line.
func DrawVim(t *TUI, st vim.State, highlights highlighter.HighlightResult, sb *statusbar.StatusBar) {
	screen := t.screen
	width, height := t.Size()
	viewHeight := height - 2
	if viewHeight <= 0 || width <= 0 {
		return
	}

	defaultStyle := t.theme.GetStyle("Default")
	lineNumberStyle := t.theme.GetStyle("LineNumber")
	currentNumberStyle := t.theme.GetStyle("LineNumberCurrent")
	tildeStyle := t.theme.GetStyle("Tilde")
	selectionStyle := t.theme.GetStyle("Selection")
	selStart, selEnd, selecting := st.Selection()

	gutterWidth := GutterWidth(st, width)
	for screenY := 0; screenY < viewHeight; screenY++ {
		row := st.ViewportStart + screenY
		utils.Fill(screen, 0, screenY, width, defaultStyle)

		if row >= len(st.Content) {
			screen.SetContent(0, screenY, '~', nil, tildeStyle)
			continue
		}

		if gutterWidth > 0 {
			numberStyle := lineNumberStyle
			if row == st.CursorRow {
				numberStyle = currentNumberStyle
			}
			number := fmt.Sprintf("%*d ", gutterWidth-1, row+1)
			utils.DrawText(screen, 0, screenY, width, number, numberStyle)
		}

		x := gutterWidth
		runeIndex := 0
		gr := uniseg.NewGraphemes(st.Content[row])
		for gr.Next() && x < width {
			runes := gr.Runes()
			clusterWidth := gr.Width()

			style := defaultStyle
			if name, ok := highlights.StyleAt(row, runeIndex); ok {
				style = t.theme.GetStyle(name)
			}
			pos := types.Position{Line: row, Col: runeIndex}
			if selecting && !pos.Before(selStart) && !selEnd.Before(pos) {
				style = selectionStyle
			}

			if runes[0] == '\t' {
				spaces := tabWidth - ((x - gutterWidth) % tabWidth)
				utils.Fill(screen, x, screenY, minInt(x+spaces, width), style)
				x += spaces
			} else if clusterWidth > 0 && x+clusterWidth <= width {
				screen.SetContent(x, screenY, runes[0], runes[1:], style)
				utils.Fill(screen, x+1, screenY, x+clusterWidth, style)
				x += clusterWidth
			}
			runeIndex += len(runes)
		}
	}

	if sb != nil {
		sb.SetVim(st)
		sb.Draw(screen, height-2, width)
	} else {
		utils.Fill(screen, 0, height-2, width, t.theme.GetStyle("StatusBar"))
	}

	commandStyle := t.theme.GetStyle("CommandLine")
	message := st.StatusLine()
	if isErrorMessage(message) && st.Mode == vim.ModeNormal {
		commandStyle = t.theme.GetStyle("StatusBarError")
	}
	utils.Fill(screen, 0, height-1, width, t.theme.GetStyle("Default"))
	end := utils.DrawText(screen, 0, height-1, width, message, commandStyle)

	drawVimCursor(t, st, gutterWidth, viewHeight, end)
}

// drawVimCursor places the hardware cursor on the buffer, or after the
// command buffer in command mode.
func drawVimCursor(t *TUI, st vim.State, gutterWidth, viewHeight, commandEnd int) {
	width, height := t.Size()
	switch st.Mode {
	case vim.ModeClosed:
		t.screen.HideCursor()
		return
	case vim.ModeCommand:
		if commandEnd < width {
			t.screen.ShowCursor(commandEnd, height-1)
		} else {
			t.screen.HideCursor()
		}
		return
	}

	var runes []rune
	if st.CursorRow < len(st.Content) {
		runes = []rune(st.Content[st.CursorRow])
	}
	n := minInt(st.CursorCol, len(runes))
	screenX := utils.VisualWidth(expandTabs(string(runes[:n]))) + st.CursorCol - n + gutterWidth
	screenY := st.CursorRow - st.ViewportStart
	if screenX >= width || screenY < 0 || screenY >= viewHeight {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}

func isErrorMessage(msg string) bool {
	return len(msg) > 1 && msg[0] == 'E' && msg[1] >= '0' && msg[1] <= '9'
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package player

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/termreel/internal/script"
	"github.com/bethropolis/termreel/internal/vim"
)

func vimLine(text string, delayMs int) script.Line {
	return script.Line{Text: text, Kind: script.KindVim, DelayMs: delayMs}
}

func render(strokes []Stroke) string {
	var b strings.Builder
	for _, s := range strokes {
		b.WriteString(s.Key.String())
	}
	return b.String()
}

func TestKeystrokesTypeLines(t *testing.T) {
	sentinel := vimLine(":wq", 0)
	block := script.VimBlock{
		Entries:  []script.Line{vimLine("ab", 0), vimLine("", 0), vimLine("c", 0)},
		Sentinel: &sentinel,
	}
	assert.Equal(t, "iab<CR><CR>c<Esc>:wq<CR>", render(Keystrokes(block, false, nil)))
	assert.Equal(t, "ab<CR><CR>c<Esc>:wq<CR>", render(Keystrokes(block, true, nil)))
}

func TestKeystrokesSpliceNormalAndEx(t *testing.T) {
	sentinel := vimLine(":x", 0)
	block := script.VimBlock{
		Entries: []script.Line{
			vimLine(":set number", 0),
			vimLine("one", 0),
			vimLine(":vim-cmd:o", 0),
			vimLine("two", 0),
			vimLine(":w", 0),
			vimLine("three", 0),
		},
		Sentinel: &sentinel,
	}
	got := render(Keystrokes(block, false, nil))
	assert.Equal(t, ":set number<CR>ione<Esc>otwo<Esc>:w<CR>A<CR>three<Esc>:x<CR>", got)

	st := vim.ApplyAll(vim.New("f.ts", vim.DefaultOptions()), keysOf(Keystrokes(block, false, nil))...)
	assert.Equal(t, []string{"one", "two", "three"}, st.Content)
	assert.True(t, st.ShowLineNumbers)
	assert.Equal(t, vim.ModeClosed, st.Mode)
}

func TestTextAfterInsertKeyContinuesInPlace(t *testing.T) {
	block := script.VimBlock{Entries: []script.Line{
		vimLine("one", 0),
		vimLine(":vim-cmd:A", 0),
		vimLine(" more", 0),
		vimLine(":vim-cmd:ggI", 0),
		vimLine("// ", 0),
	}}
	got := Keystrokes(block, false, nil)
	assert.Equal(t, "ione<Esc>A more<Esc>ggI// <Esc>:wq<CR>", render(got))

	st := vim.ApplyAll(vim.New("f.ts", vim.DefaultOptions()), keysOf(got)...)
	assert.Equal(t, []string{"// one more"}, st.Content)
}

func TestKeystrokesWithoutSentinelWriteQuit(t *testing.T) {
	block := script.VimBlock{Entries: []script.Line{vimLine("x", 0)}}
	assert.Equal(t, "ix<Esc>:wq<CR>", render(Keystrokes(block, false, nil)))
}

func TestKeystrokeDelays(t *testing.T) {
	sentinel := vimLine(":wq", 300)
	block := script.VimBlock{
		Entries:  []script.Line{vimLine("ab", 100)},
		Sentinel: &sentinel,
	}
	cadence := func(rune) time.Duration { return time.Millisecond }
	strokes := Keystrokes(block, false, cadence)
	require.Len(t, strokes, 8)

	assert.Equal(t, 100*time.Millisecond, strokes[0].Delay) // i
	assert.Equal(t, time.Millisecond, strokes[1].Delay)      // a
	assert.Equal(t, time.Millisecond, strokes[2].Delay)      // b
	assert.Equal(t, 300*time.Millisecond, strokes[3].Delay)  // <Esc>
	assert.Equal(t, time.Millisecond, strokes[4].Delay)      // :
}

func TestDefaultReelBlocks(t *testing.T) {
	sc := script.Default()
	for i, l := range sc.Lines {
		if !l.IsVimCommand() {
			continue
		}
		block := script.CollectVimBlock(sc.Lines, i+1)
		var want []string
		for _, e := range block.Entries {
			if kind, text := e.Entry(); kind == script.EntryText {
				want = append(want, text)
			}
		}
		st := vim.ApplyAll(vim.New(l.VimFilename(), vim.DefaultOptions()), keysOf(Keystrokes(block, false, nil))...)
		assert.Equal(t, want, st.Content, l.Text)
		assert.Equal(t, vim.ModeClosed, st.Mode, l.Text)
		assert.Equal(t, st.Content, st.SavedContent, l.Text)
	}
}

func keysOf(strokes []Stroke) []vim.Key {
	out := make([]vim.Key, len(strokes))
	for i, s := range strokes {
		out[i] = s.Key
	}
	return out
}

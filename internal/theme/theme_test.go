package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/termreel/internal/script"
)

func TestGetStyleFallsBack(t *testing.T) {
	th := &DevComfortDark
	assert.Equal(t, th.Styles["keyword"], th.GetStyle("keyword.control.import"))
	assert.Equal(t, th.Styles["type.builtin"], th.GetStyle("type.builtin"))
	assert.Equal(t, th.Styles["Default"], th.GetStyle("no.such.style"))
	assert.Equal(t, th.Styles["line.error"], th.LineStyle(script.KindError))

	empty := &Theme{Name: "empty"}
	assert.Equal(t, tcell.StyleDefault, empty.GetStyle("keyword"))
}

func TestEveryKindHasDarkStyle(t *testing.T) {
	for k := script.KindCommand; k <= script.KindVim; k++ {
		_, ok := DevComfortDark.Styles[LineStyleName(k)]
		assert.True(t, ok, k.String())
	}
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(`
name = "Paper"
[styles.Default]
fg = "#101010"
bg = "white"
[styles.keyword]
bold = true
[styles.broken]
fg = "#12"
`, "fallback")
	require.NoError(t, err)
	assert.Equal(t, "Paper", th.Name)

	fg, bg, _ := th.GetStyle("keyword").Decompose()
	assert.Equal(t, tcell.NewHexColor(0x101010), fg)
	assert.Equal(t, tcell.ColorWhite, bg)
	_, _, attrs := th.GetStyle("keyword").Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)

	_, ok := th.Styles["broken"]
	assert.False(t, ok)
}

func TestManagerResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.toml")
	require.NoError(t, os.WriteFile(path, []byte("[styles.Default]\nfg = \"red\"\n"), 0o644))

	m := NewManager()
	assert.Equal(t, "DevComfort Dark", m.Current().Name)

	assert.Equal(t, "Mono", m.Resolve("mono", "").Name)
	assert.Equal(t, "Mono", m.Resolve("missing", "").Name)
	assert.Equal(t, "paper", m.Resolve("", path).Name)
	assert.Equal(t, "paper", m.Resolve("", filepath.Join(dir, "absent.toml")).Name)

	require.NoError(t, m.LoadDir(dir))
	require.NoError(t, m.LoadDir(filepath.Join(dir, "nope")))
	assert.Equal(t, []string{"DevComfort Dark", "Mono", "paper"}, m.ListThemes())
}

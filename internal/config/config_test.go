package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[player]
settle_delay_ms = 120
loop = true

[vim]
visible_lines = 10
backspace_joins = false

[ui]
prompt = "$ "
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Player.SettleDelay)
	assert.True(t, cfg.Player.Loop)
	assert.Equal(t, DefaultTypingMinDelay, cfg.Player.TypingMinDelay)
	assert.Equal(t, 10, cfg.Vim.VisibleLines)
	assert.False(t, cfg.Vim.BackspaceJoins)
	assert.Equal(t, "$ ", cfg.UI.Prompt)
	assert.True(t, cfg.UI.Syntax)
}

func TestLoadInvalidFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[player\nbroken")
	cfg, err := Load(path, nil)
	assert.Error(t, err)
	assert.Equal(t, DefaultSettleDelay, cfg.Player.SettleDelay)
}

func TestValidateResetsOutOfRange(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Logger.LogLevel = "shouty"
	cfg.Player.TypingMinDelay = 50
	cfg.Player.TypingMaxDelay = 10
	cfg.Player.ResumeDelay = -5
	cfg.Vim.VisibleLines = 0
	cfg.validate()

	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Equal(t, 50, cfg.Player.TypingMaxDelay)
	assert.Equal(t, 0, cfg.Player.ResumeDelay)
	assert.Equal(t, DefaultVisibleLines, cfg.Vim.VisibleLines)
}

func TestFlagOverridesOnlyWhenSet(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var flags Flags
	flags.DefineFlags(fs)
	require.NoError(t, fs.Parse([]string{"--loop", "--speed=2", "--log-tags=player, vim", "--no-syntax"}))

	path := writeConfig(t, "[vim]\nvisible_lines = 12\n")
	cfg, err := Load(path, &flags)
	require.NoError(t, err)

	assert.True(t, cfg.Player.Loop)
	assert.Equal(t, DefaultSettleDelay/2, cfg.Player.SettleDelay)
	assert.Equal(t, 2.0, cfg.Player.Speed)
	assert.Equal(t, []string{"player", "vim"}, cfg.Logger.EnabledTags)
	assert.False(t, cfg.UI.Syntax)
	assert.Equal(t, 12, cfg.Vim.VisibleLines, "unset flag must not clobber the file value")
}

func TestSpeedFromFileScalesDelays(t *testing.T) {
	path := writeConfig(t, "[player]\nspeed = 4.0\nresume_delay_ms = 1000\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 4.0, cfg.Player.Speed)
	assert.Equal(t, 250, cfg.Player.ResumeDelay)
	assert.Equal(t, DefaultSettleDelay/4, cfg.Player.SettleDelay)
}

func TestNonPositiveSpeedFallsBackToOne(t *testing.T) {
	path := writeConfig(t, "[player]\nspeed = -3.0\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.Player.Speed)
	assert.Equal(t, DefaultSettleDelay, cfg.Player.SettleDelay)
}

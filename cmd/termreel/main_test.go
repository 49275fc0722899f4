package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptCommandPrintsReel(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"script", "--format", "yaml", "--logfile", "-", "--config", filepath.Join(t.TempDir(), "none.toml")})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "text: vim src/auth/auth.service.ts")
	assert.Contains(t, out.String(), "kind: command")
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\r\ntwo\n"), 0o644))

	lines, err := readLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)

	lines, err = readLines(filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.Nil(t, lines)
}

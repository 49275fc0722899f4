package app

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/termreel/internal/highlighter"
	"github.com/bethropolis/termreel/internal/vim"
)

func TestHighlightingManagerDebouncesEdits(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var redraws int32
	hm := NewHighlightingManager(highlighter.NewHighlighter(), clock, func() { atomic.AddInt32(&redraws, 1) })
	defer hm.Shutdown()

	st := vim.WithContent("main.go", []string{"package main"}, vim.DefaultOptions())
	hm.Update(st)
	name, ok := hm.Result().StyleAt(0, 0)
	require.True(t, ok, "a new file is highlighted at once")
	assert.Equal(t, "keyword", name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&redraws))

	st = vim.ApplyAll(st, vim.Runes("o")...)
	st = vim.ApplyAll(st, vim.Runes("func f() {}")...)
	hm.Update(st)
	_, ok = hm.Result().StyleAt(1, 0)
	assert.False(t, ok)

	clock.Advance(highlightDebounceDuration)
	assert.Eventually(t, func() bool {
		name, ok := hm.Result().StyleAt(1, 0)
		return ok && name == "keyword"
	}, 5*time.Second, 5*time.Millisecond)
}

func TestHighlightingManagerSkipsUnsupportedFiles(t *testing.T) {
	hm := NewHighlightingManager(highlighter.NewHighlighter(), clockwork.NewFakeClock(), nil)
	defer hm.Shutdown()

	hm.Update(vim.WithContent("notes.txt", []string{"package main"}, vim.DefaultOptions()))
	assert.Nil(t, hm.Result())

	off := NewHighlightingManager(nil, nil, nil)
	off.Update(vim.WithContent("main.go", []string{"package main"}, vim.DefaultOptions()))
	assert.Nil(t, off.Result())
	off.Shutdown()
}

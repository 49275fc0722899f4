package plain

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/termreel/internal/config"
	"github.com/bethropolis/termreel/internal/event"
	"github.com/bethropolis/termreel/internal/script"
	"github.com/bethropolis/termreel/internal/terminal"
	"github.com/bethropolis/termreel/internal/vim"
)

func TestRendersLinesAndBuffers(t *testing.T) {
	var out bytes.Buffer
	events := event.NewManager()
	New(&out, "$ ").Attach(events)

	store := terminal.NewStore(events, 0)
	store.AddLine(script.Line{ID: 1, Text: "vim a.txt", Kind: script.KindCommand})

	session := vim.NewSession(events, vim.DefaultOptions())
	session.Open("a.txt")
	session.FeedAll(vim.Runes("ihello")...)
	session.FeedAll(vim.Escape)
	session.FeedAll(vim.Command("wq")...)

	store.AddLine(script.Line{ID: 2, Text: "done", Kind: script.KindSuccess})

	got := out.String()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Equal(t, "$ vim a.txt", lines[0])
	assert.Contains(t, got, "a.txt (1L, saved)")
	assert.Contains(t, got, "hello")
	assert.Equal(t, "done", lines[len(lines)-1])
}

// skipPauses fires every timer the player waits on until ctx is done.
func skipPauses(ctx context.Context, clock *clockwork.FakeClock) {
	for clock.BlockUntilContext(ctx, 1) == nil {
		clock.Advance(time.Hour)
	}
}

func TestPlayPrintsWholeReel(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Player = config.PlayerConfig{MaxLines: 10, Loop: true}
	cfg.UI.Prompt = "> "

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	clock := clockwork.NewFakeClock()
	go skipPauses(ctx, clock)

	var out bytes.Buffer
	require.NoError(t, Play(ctx, &out, cfg, script.Default(), clock))

	got := out.String()
	assert.Contains(t, got, "auth.service.ts (")
	assert.Contains(t, got, "jwt.strategy.ts (")
	assert.Contains(t, got, "> ")
}

func TestPlayStopsOnCancel(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Player = config.PlayerConfig{}
	sc := &script.Script{Lines: []script.Line{{ID: 1, Text: "slow", Kind: script.KindLog, DelayMs: 60000}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	assert.ErrorIs(t, Play(ctx, &out, cfg, sc, nil), context.Canceled)
	assert.Empty(t, out.String())
}

package plain

import (
	"context"
	"io"

	"github.com/jonboulle/clockwork"

	"github.com/bethropolis/termreel/internal/config"
	"github.com/bethropolis/termreel/internal/event"
	"github.com/bethropolis/termreel/internal/player"
	"github.com/bethropolis/termreel/internal/script"
	"github.com/bethropolis/termreel/internal/terminal"
	"github.com/bethropolis/termreel/internal/typing"
	"github.com/bethropolis/termreel/internal/vim"
)

// Play runs sc once and prints it to w. It returns when the reel is done or
// ctx is canceled. Looping is ignored.
func Play(ctx context.Context, w io.Writer, cfg *config.Config, sc *script.Script, clock clockwork.Clock) error {
	events := event.NewManager()
	New(w, cfg.UI.Prompt).Attach(events)

	store := terminal.NewStore(events, cfg.Player.MaxLines)
	session := vim.NewSession(events, player.VimOptions(cfg.Vim))
	typer := typing.New(clock, player.TypingOptions(cfg.Player))
	opts := player.OptionsFromConfig(cfg.Player)
	opts.Loop = false

	p := player.New(sc, store, session, typer, events, opts)
	p.Start(ctx)
	defer p.Pause()

	select {
	case <-p.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Package player drives a reel: it types commands, prints output lines and
// replays vim blocks through the embedded editor, one entry at a time.
package player

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bethropolis/termreel/internal/config"
	"github.com/bethropolis/termreel/internal/event"
	"github.com/bethropolis/termreel/internal/logger"
	"github.com/bethropolis/termreel/internal/script"
	"github.com/bethropolis/termreel/internal/terminal"
	"github.com/bethropolis/termreel/internal/typing"
	"github.com/bethropolis/termreel/internal/vim"
)

// Options holds the fixed pauses of playback.
type Options struct {
	SettleDelay   time.Duration // after a command is typed, before it "runs"
	VimOpenDelay  time.Duration
	VimStartDelay time.Duration
	ResumeDelay   time.Duration
	LoopDelay     time.Duration
	Loop          bool

	// Speed divides the delay of every script entry. Zero means 1.
	Speed float64

	// OnComplete runs once per playthrough on the playback goroutine. It must
	// not call Pause or Reset.
	OnComplete func()
}

// OptionsFromConfig converts the configured milliseconds.
func OptionsFromConfig(c config.PlayerConfig) Options {
	return Options{
		SettleDelay:   config.Ms(c.SettleDelay),
		VimOpenDelay:  config.Ms(c.VimOpenDelay),
		VimStartDelay: config.Ms(c.VimStartDelay),
		ResumeDelay:   config.Ms(c.ResumeDelay),
		LoopDelay:     config.Ms(c.LoopDelay),
		Loop:          c.Loop,
		Speed:         c.Speed,
	}
}

// TypingOptions returns the typing cadence configured in c.
func TypingOptions(c config.PlayerConfig) typing.Options {
	return typing.Options{
		MinDelay:    config.Ms(c.TypingMinDelay),
		MaxDelay:    config.Ms(c.TypingMaxDelay),
		SpaceDelay:  config.Ms(c.TypingSpaceDelay),
		SpaceJitter: config.Ms(c.TypingSpaceJitter),
	}
}

// VimOptions converts the editor settings.
func VimOptions(c config.VimConfig) vim.Options {
	return vim.Options{
		VisibleLines:   c.VisibleLines,
		OpenInInsert:   c.OpenInInsert,
		BackspaceJoins: c.BackspaceJoins,
		MaxHistory:     c.MaxHistory,
	}
}

// Player plays a script into a terminal store and a vim session. Playback
// runs on a single goroutine, so entries never overlap.
type Player struct {
	script  *script.Script
	store   *terminal.Store
	session *vim.Session
	typer   *typing.Animator
	events  *event.Manager
	opts    Options

	mu       sync.Mutex
	index    int
	runID    string
	cancel   context.CancelFunc
	stopped  chan struct{}
	finished chan struct{}
}

// New creates a stopped player. The animator's clock times every pause.
func New(sc *script.Script, store *terminal.Store, session *vim.Session, typer *typing.Animator, events *event.Manager, opts Options) *Player {
	return &Player{
		script:   sc,
		store:    store,
		session:  session,
		typer:    typer,
		events:   events,
		opts:     opts,
		finished: make(chan struct{}),
	}
}

// Start plays the script from the beginning.
func (p *Player) Start(ctx context.Context) {
	p.mu.Lock()
	p.runID = ulid.Make().String()
	p.index = 0
	p.mu.Unlock()
	logger.Infof("player[%s]: starting %q (%d lines)", p.RunID(), p.script.Name, p.script.Len())
	p.events.Dispatch(event.TypePlaybackStarted, p.playback())
	p.launch(ctx, 0, 0)
}

// Pause stops playback and returns the index to resume from. An entry that
// was only partly played is rolled back.
func (p *Player) Pause() int {
	p.mu.Lock()
	cancel, stopped := p.cancel, p.stopped
	p.cancel, p.stopped = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return p.Index()
	}
	select {
	case <-stopped:
		return p.Index()
	default:
	}
	cancel()
	<-stopped
	logger.Infof("player[%s]: paused at %d", p.RunID(), p.Index())
	p.events.Dispatch(event.TypePlaybackPaused, p.playback())
	return p.Index()
}

// Resume continues from index after the resume delay.
func (p *Player) Resume(ctx context.Context, index int) {
	p.Pause()
	if index < 0 {
		index = 0
	}
	p.mu.Lock()
	p.index = index
	p.mu.Unlock()
	logger.Infof("player[%s]: resuming at %d", p.RunID(), index)
	p.events.Dispatch(event.TypePlaybackResumed, p.playback())
	p.launch(ctx, index, p.opts.ResumeDelay)
}

// Reset clears the screen and replays from the start.
func (p *Player) Reset(ctx context.Context) {
	p.Pause()
	p.session.Close()
	p.store.Reset()
	p.mu.Lock()
	p.finished = make(chan struct{})
	p.mu.Unlock()
	p.Start(ctx)
}

// Done is closed when the current playthrough completes.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finished
}

// Index is the script index of the entry being played.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// RunID identifies the current playthrough.
func (p *Player) RunID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runID
}

// Running reports whether the playback goroutine is active.
func (p *Player) Running() bool {
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped == nil {
		return false
	}
	select {
	case <-stopped:
		return false
	default:
		return true
	}
}

func (p *Player) playback() event.PlaybackData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return event.PlaybackData{RunID: p.runID, Index: p.index}
}

func (p *Player) setIndex(i int) {
	p.mu.Lock()
	p.index = i
	p.mu.Unlock()
}

func (p *Player) launch(ctx context.Context, start int, delay time.Duration) {
	runCtx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	p.mu.Lock()
	p.cancel, p.stopped = cancel, stopped
	p.mu.Unlock()
	go p.run(runCtx, start, delay, stopped)
}

func (p *Player) run(ctx context.Context, start int, delay time.Duration, stopped chan struct{}) {
	defer close(stopped)
	if err := p.typer.Sleep(ctx, delay); err != nil {
		return
	}
	lines := p.script.Lines
	for {
		for i := start; i < len(lines); {
			p.setIndex(i)
			next, err := p.step(ctx, i)
			if err != nil {
				logger.DebugTagf("player", "entry %d interrupted: %v", lines[i].ID, err)
				return
			}
			i = next
		}
		p.setIndex(len(lines))
		p.complete()

		if !p.opts.Loop {
			return
		}
		if err := p.typer.Sleep(ctx, p.opts.LoopDelay); err != nil {
			return
		}
		p.store.Reset()
		p.mu.Lock()
		p.finished = make(chan struct{})
		p.runID = ulid.Make().String()
		p.mu.Unlock()
		p.events.Dispatch(event.TypePlaybackStarted, p.playback())
		start = 0
	}
}

func (p *Player) complete() {
	p.mu.Lock()
	finished := p.finished
	p.mu.Unlock()
	select {
	case <-finished:
		return
	default:
	}
	logger.Infof("player[%s]: complete", p.RunID())
	if p.opts.OnComplete != nil {
		p.opts.OnComplete()
	}
	close(finished)
	p.events.Dispatch(event.TypePlaybackComplete, p.playback())
}

// step plays entry i and returns the index of the next entry. On error the
// store is back where it was before the entry.
func (p *Player) step(ctx context.Context, i int) (int, error) {
	line := p.script.Lines[i]
	snap := p.store.Snapshot()

	if err := p.typer.Sleep(ctx, p.entryDelay(line)); err != nil {
		return i, err
	}
	if line.Kind != script.KindCommand {
		p.store.AddLine(line)
		return i + 1, nil
	}

	if err := p.typeCommand(ctx, line); err != nil {
		p.store.Restore(snap)
		return i, err
	}
	p.store.AddLine(line)
	if !line.IsVimCommand() {
		return i + 1, nil
	}

	next, err := p.playVim(ctx, line, i+1)
	if err != nil {
		p.session.Close()
		p.store.Restore(snap)
		return i, err
	}
	return next, nil
}

func (p *Player) typeCommand(ctx context.Context, line script.Line) error {
	p.store.UpdateTyping(true, "")
	err := p.typer.Animate(ctx, line.Text, func(text string) {
		p.store.UpdateTyping(true, text)
	})
	if err != nil {
		return err
	}
	if err := p.typer.Sleep(ctx, p.opts.SettleDelay); err != nil {
		return err
	}
	p.store.UpdateTyping(false, "")
	return nil
}

// playVim opens the editor for line and feeds it the vim block starting at
// start. It returns the index after the block.
func (p *Player) playVim(ctx context.Context, line script.Line, start int) (int, error) {
	block := p.scaleBlock(script.CollectVimBlock(p.script.Lines, start))
	logger.DebugTagf("player", "vim %s: %d entries, next %d", line.VimFilename(), len(block.Entries), block.Next)

	p.session.Open(line.VimFilename())
	p.store.SetMode(terminal.ModeVim)
	if err := p.typer.Sleep(ctx, p.opts.VimOpenDelay); err != nil {
		return start, err
	}
	if err := p.typer.Sleep(ctx, p.opts.VimStartDelay); err != nil {
		return start, err
	}

	insert := p.session.State().Mode == vim.ModeInsert
	for _, s := range Keystrokes(block, insert, p.typer.NextDelay) {
		if err := p.typer.Sleep(ctx, s.Delay); err != nil {
			return start, err
		}
		p.session.Feed(s.Key)
	}

	if p.session.Active() {
		st := p.session.State()
		logger.Warnf("player: vim block for %s did not quit (%s), closing", line.VimFilename(), st.Message)
		p.session.Close()
	} else if err := p.typer.Sleep(ctx, p.opts.ResumeDelay); err != nil {
		// the closed buffer and its write message stay up until here
		return start, err
	}
	p.store.SetMode(terminal.ModeTerminal)
	return block.Next, nil
}

func (p *Player) entryDelay(line script.Line) time.Duration {
	if p.opts.Speed <= 0 || p.opts.Speed == 1 {
		return line.Delay()
	}
	return time.Duration(float64(line.Delay()) / p.opts.Speed)
}

// scaleBlock returns a copy of block with entry delays divided by the speed.
func (p *Player) scaleBlock(block script.VimBlock) script.VimBlock {
	if p.opts.Speed <= 0 || p.opts.Speed == 1 {
		return block
	}
	scale := func(l script.Line) script.Line {
		l.DelayMs = int(float64(l.DelayMs) / p.opts.Speed)
		return l
	}
	entries := make([]script.Line, len(block.Entries))
	for i, e := range block.Entries {
		entries[i] = scale(e)
	}
	block.Entries = entries
	if block.Sentinel != nil {
		sentinel := scale(*block.Sentinel)
		block.Sentinel = &sentinel
	}
	return block
}

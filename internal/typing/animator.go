// Package typing emits text one rune at a time with a human-looking cadence.
package typing

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrCanceled is returned by Animate when the animation was superseded or cancelled.
var ErrCanceled = errors.New("typing animation canceled")

// Options configures the cadence. Non-space runes wait a uniform delay in
// [MinDelay, MaxDelay]; spaces wait SpaceDelay plus up to SpaceJitter.
type Options struct {
	MinDelay    time.Duration
	MaxDelay    time.Duration
	SpaceDelay  time.Duration
	SpaceJitter time.Duration

	// OnComplete runs after an animation finishes without being cancelled.
	OnComplete func()

	// Seed fixes the delay sequence; zero seeds from the clock.
	Seed int64
}

// DefaultOptions returns the standard cadence.
func DefaultOptions() Options {
	return Options{
		MinDelay:    30 * time.Millisecond,
		MaxDelay:    60 * time.Millisecond,
		SpaceDelay:  10 * time.Millisecond,
		SpaceJitter: 20 * time.Millisecond,
	}
}

// Animator runs at most one typing animation at a time.
type Animator struct {
	clock clockwork.Clock
	opts  Options

	rngMu sync.Mutex
	rng   *rand.Rand

	mu      sync.Mutex
	current *run
}

type run struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an Animator. A nil clock uses the real clock.
func New(clock clockwork.Clock, opts Options) *Animator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = opts.MinDelay
	}
	seed := opts.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	return &Animator{
		clock: clock,
		opts:  opts,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (a *Animator) jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return time.Duration(a.rng.Int63n(int64(d) + 1))
}

// NextDelay returns the pause that follows typing r.
func (a *Animator) NextDelay(r rune) time.Duration {
	if r == ' ' {
		return a.opts.SpaceDelay + a.jitter(a.opts.SpaceJitter)
	}
	return a.opts.MinDelay + a.jitter(a.opts.MaxDelay-a.opts.MinDelay)
}

// Sleep waits d on the animator's clock or until ctx is done.
func (a *Animator) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := a.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.Chan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Animate calls onUpdate with each growing prefix of text and blocks until the
// whole string has been emitted. Starting a new animation cancels the one in
// flight, which then returns ErrCanceled without further updates. onUpdate runs
// on the caller's goroutine and must not call Cancel.
func (a *Animator) Animate(ctx context.Context, text string, onUpdate func(string)) error {
	runCtx, cancel := context.WithCancel(ctx)
	r := &run{cancel: cancel, done: make(chan struct{})}
	defer func() {
		cancel()
		a.mu.Lock()
		if a.current == r {
			a.current = nil
		}
		a.mu.Unlock()
		close(r.done)
	}()

	a.mu.Lock()
	prev := a.current
	a.current = r
	a.mu.Unlock()
	if prev != nil {
		prev.cancel()
		<-prev.done
	}

	runes := []rune(text)
	for i, ch := range runes {
		if runCtx.Err() != nil {
			return a.stopErr(ctx)
		}
		onUpdate(string(runes[:i+1]))
		if i == len(runes)-1 {
			break
		}
		if err := a.Sleep(runCtx, a.NextDelay(ch)); err != nil {
			return a.stopErr(ctx)
		}
	}
	if runCtx.Err() != nil {
		return a.stopErr(ctx)
	}
	if a.opts.OnComplete != nil {
		a.opts.OnComplete()
	}
	return nil
}

// stopErr distinguishes a parent cancellation from a superseding animation.
func (a *Animator) stopErr(parent context.Context) error {
	if err := parent.Err(); err != nil {
		return err
	}
	return ErrCanceled
}

// Cancel stops the in-flight animation, if any, and waits for it to return.
func (a *Animator) Cancel() {
	a.mu.Lock()
	r := a.current
	a.mu.Unlock()
	if r == nil {
		return
	}
	r.cancel()
	<-r.done
}

// Running reports whether an animation is in flight.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current != nil
}

package typing

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func instant() Options {
	return Options{Seed: 1}
}

func TestAnimateEmitsFullText(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		a := New(clockwork.NewFakeClock(), instant())

		displayed := ""
		var updates int
		err := a.Animate(context.Background(), text, func(s string) {
			displayed = s
			updates++
		})
		if err != nil {
			t.Fatalf("animate: %v", err)
		}
		if displayed != text {
			t.Fatalf("displayed %q, want %q", displayed, text)
		}
		if updates != len([]rune(text)) {
			t.Fatalf("%d updates for %d runes", updates, len([]rune(text)))
		}
	})
}

func TestAnimatePrefixesGrow(t *testing.T) {
	a := New(nil, instant())
	var got []string
	require.NoError(t, a.Animate(context.Background(), "héllo", func(s string) { got = append(got, s) }))
	assert.Equal(t, []string{"h", "hé", "hél", "héll", "héllo"}, got)
}

func TestOnCompleteOnlyOnNaturalFinish(t *testing.T) {
	completed := 0
	opts := instant()
	opts.OnComplete = func() { completed++ }
	a := New(nil, opts)

	require.NoError(t, a.Animate(context.Background(), "ok", func(string) {}))
	assert.Equal(t, 1, completed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := a.Animate(ctx, "never", func(string) {})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, completed)
}

func TestCancelStopsUpdates(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := New(clock, Options{MinDelay: 10 * time.Millisecond, MaxDelay: 10 * time.Millisecond})

	updates := make(chan string, 16)
	result := make(chan error, 1)
	go func() {
		result <- a.Animate(context.Background(), "hello", func(s string) { updates <- s })
	}()

	assert.Equal(t, "h", <-updates)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, "he", <-updates)

	a.Cancel()
	assert.ErrorIs(t, <-result, ErrCanceled)
	assert.False(t, a.Running())

	clock.Advance(time.Second)
	assert.Empty(t, updates)
}

func TestNewAnimationSupersedesOld(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := New(clock, Options{MinDelay: 10 * time.Millisecond, MaxDelay: 10 * time.Millisecond})

	first := make(chan error, 1)
	started := make(chan struct{})
	go func() {
		first <- a.Animate(context.Background(), "abc", func(string) {
			select {
			case <-started:
			default:
				close(started)
			}
		})
	}()
	<-started

	var second []string
	// The second call cancels the first before emitting anything.
	done := make(chan error, 1)
	go func() {
		done <- a.Animate(context.Background(), "xy", func(s string) { second = append(second, s) })
	}()
	assert.ErrorIs(t, <-first, ErrCanceled)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(10 * time.Millisecond)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"x", "xy"}, second)
}

func TestNextDelayBounds(t *testing.T) {
	a := New(nil, DefaultOptions())
	for i := 0; i < 200; i++ {
		d := a.NextDelay('a')
		assert.GreaterOrEqual(t, d, 30*time.Millisecond)
		assert.LessOrEqual(t, d, 60*time.Millisecond)

		s := a.NextDelay(' ')
		assert.GreaterOrEqual(t, s, 10*time.Millisecond)
		assert.LessOrEqual(t, s, 30*time.Millisecond)
	}
}

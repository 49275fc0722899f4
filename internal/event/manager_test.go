package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrderAndConsume(t *testing.T) {
	m := NewManager()
	var calls []string

	m.Subscribe(TypeLineAdded, func(e Event) bool {
		calls = append(calls, "first:"+e.Data.(string))
		return false
	})
	m.Subscribe(TypeLineAdded, func(e Event) bool {
		calls = append(calls, "second")
		return true
	})
	m.Subscribe(TypeLineAdded, func(e Event) bool {
		calls = append(calls, "third")
		return false
	})

	m.Dispatch(TypeLineAdded, "x")
	assert.Equal(t, []string{"first:x", "second"}, calls)
}

func TestDispatchWithoutHandlers(t *testing.T) {
	var nilManager *Manager
	assert.NotPanics(t, func() { nilManager.Dispatch(TypeVimChanged, nil) })
	assert.NotPanics(t, func() { NewManager().Dispatch(TypeVimChanged, nil) })
}

func TestSubscribeAll(t *testing.T) {
	m := NewManager()
	seen := map[Type]int{}
	m.SubscribeAll(func(e Event) bool {
		seen[e.Type]++
		return false
	}, TypePlaybackPaused, TypePlaybackResumed)

	m.Dispatch(TypePlaybackPaused, PlaybackData{Index: 3})
	m.Dispatch(TypePlaybackResumed, PlaybackData{Index: 3})
	m.Dispatch(TypePlaybackComplete, PlaybackData{})

	assert.Equal(t, map[Type]int{TypePlaybackPaused: 1, TypePlaybackResumed: 1}, seen)
	assert.Equal(t, "PlaybackPaused", TypePlaybackPaused.String())
}

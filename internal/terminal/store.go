// Package terminal holds the displayed state of the simulated shell.
package terminal

import (
	"sync"

	"github.com/bethropolis/termreel/internal/event"
	"github.com/bethropolis/termreel/internal/logger"
	"github.com/bethropolis/termreel/internal/script"
)

// DefaultVisibleLines is the height of the shell view.
const DefaultVisibleLines = 18

// Mode says which view owns the screen.
type Mode int

const (
	ModeTerminal Mode = iota
	ModeVim
)

func (m Mode) String() string {
	if m == ModeVim {
		return "vim"
	}
	return "terminal"
}

// State is a snapshot of the shell.
type State struct {
	Lines       []script.Line
	IsTyping    bool
	CurrentText string
	Mode        Mode
}

// Clone returns a deep copy.
func (s State) Clone() State {
	c := s
	c.Lines = append([]script.Line(nil), s.Lines...)
	return c
}

// Visible returns the last n lines.
func (s State) Visible(n int) []script.Line {
	if n <= 0 || len(s.Lines) <= n {
		return s.Lines
	}
	return s.Lines[len(s.Lines)-n:]
}

// Store is the shared holder of the shell state. Every mutation publishes an
// event carrying a copy of the new state.
type Store struct {
	mu       sync.RWMutex
	state    State
	maxLines int
	events   *event.Manager
}

// NewStore creates an empty store. maxLines <= 0 disables automatic trimming.
func NewStore(events *event.Manager, maxLines int) *Store {
	return &Store{events: events, maxLines: maxLines}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// update applies fn under the lock and dispatches t with the resulting state.
func (s *Store) update(t event.Type, fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.Clone()
	s.mu.Unlock()
	s.events.Dispatch(t, snap)
}

// AddLine appends a line, trimming the oldest lines past maxLines.
func (s *Store) AddLine(line script.Line) {
	s.update(event.TypeLineAdded, func(st *State) {
		st.Lines = append(st.Lines, line)
		if s.maxLines > 0 && len(st.Lines) > s.maxLines {
			st.Lines = append([]script.Line(nil), st.Lines[len(st.Lines)-s.maxLines:]...)
		}
	})
}

// UpdateTyping sets the prompt's typing state.
func (s *Store) UpdateTyping(isTyping bool, text string) {
	s.update(event.TypeTypingChanged, func(st *State) {
		st.IsTyping = isTyping
		st.CurrentText = text
	})
}

// SetMode switches between the shell and vim views.
func (s *Store) SetMode(mode Mode) {
	s.update(event.TypeModeChanged, func(st *State) {
		st.Mode = mode
	})
	logger.DebugTagf("terminal", "Mode set to %v", mode)
}

// ClearLines removes every displayed line.
func (s *Store) ClearLines() {
	s.update(event.TypeLinesChanged, func(st *State) {
		st.Lines = nil
	})
}

// TrimLines keeps only the newest max lines.
func (s *Store) TrimLines(max int) {
	if max < 0 {
		max = 0
	}
	s.update(event.TypeLinesChanged, func(st *State) {
		if len(st.Lines) > max {
			st.Lines = append([]script.Line(nil), st.Lines[len(st.Lines)-max:]...)
		}
	})
}

// Reset returns the store to its initial state.
func (s *Store) Reset() {
	s.update(event.TypeLinesChanged, func(st *State) {
		*st = State{}
	})
}

// Snapshot captures the state for a later Restore.
func (s *Store) Snapshot() State {
	return s.State()
}

// Restore replaces the state with a snapshot.
func (s *Store) Restore(snap State) {
	s.update(event.TypeLinesChanged, func(st *State) {
		*st = snap.Clone()
	})
}

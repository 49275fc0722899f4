package vim

import (
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/termreel/internal/event"
	"github.com/bethropolis/termreel/internal/logger"
)

// Session owns the live editor state shared between the player and the
// renderer. Each Feed publishes a TypeVimChanged event carrying a copy.
type Session struct {
	mu     sync.RWMutex
	state  State
	active bool
	opts   Options
	events *event.Manager

	systemClipboard bool
	writeClipboard  func(string) error
}

// NewSession creates an inactive session.
func NewSession(events *event.Manager, opts Options) *Session {
	return &Session{
		opts:           opts,
		events:         events,
		writeClipboard: clipboard.WriteAll,
	}
}

// UseSystemClipboard mirrors yanks to the system clipboard.
func (s *Session) UseSystemClipboard(enabled bool) {
	s.mu.Lock()
	s.systemClipboard = enabled
	s.mu.Unlock()
}

// Open starts editing an empty buffer named filename.
func (s *Session) Open(filename string) {
	s.Load(New(filename, s.opts))
}

// Load replaces the session state.
func (s *Session) Load(st State) {
	s.mu.Lock()
	s.state = st.Clone()
	s.active = st.Mode != ModeClosed
	snap := s.state.Clone()
	s.mu.Unlock()
	logger.Debugf("vim: opened %q", snap.Filename)
	s.events.Dispatch(event.TypeVimChanged, snap)
}

// Feed applies one keystroke and returns the resulting state.
func (s *Session) Feed(k Key) State {
	s.mu.Lock()
	if !s.active {
		snap := s.state.Clone()
		s.mu.Unlock()
		return snap
	}
	prev := s.state
	s.state = Apply(prev, k)
	closed := s.state.Mode == ModeClosed
	if closed {
		s.active = false
	}
	yanked := s.systemClipboard && !equalLines(prev.YankBuffer, s.state.YankBuffer)
	snap := s.state.Clone()
	s.mu.Unlock()

	if yanked {
		s.mirror(snap)
	}
	s.events.Dispatch(event.TypeVimChanged, snap)
	if closed {
		s.events.Dispatch(event.TypeVimClosed, snap)
	}
	return snap
}

// FeedAll applies keys in order.
func (s *Session) FeedAll(keys ...Key) State {
	var st State
	for _, k := range keys {
		st = s.Feed(k)
	}
	return st
}

// Close forces the session closed without saving.
func (s *Session) Close() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.state.Mode = ModeClosed
	snap := s.state.Clone()
	s.mu.Unlock()
	s.events.Dispatch(event.TypeVimChanged, snap)
	s.events.Dispatch(event.TypeVimClosed, snap)
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Active reports whether a buffer is open.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *Session) mirror(st State) {
	text := strings.Join(st.YankBuffer, "\n")
	if st.YankLinewise {
		text += "\n"
	}
	if err := s.writeClipboard(text); err != nil {
		logger.Warnf("vim: clipboard write failed: %v", err)
	}
}

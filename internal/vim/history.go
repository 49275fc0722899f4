package vim

import "github.com/bethropolis/termreel/internal/logger"

// DefaultMaxHistory caps the undo stack.
const DefaultMaxHistory = 100

// Snapshot is a buffer state the history can return to.
type Snapshot struct {
	Content []string
	Row     int
	Col     int
}

// History is an undo/redo stack of whole-buffer snapshots. It is a value type:
// clone it together with the State that owns it.
type History struct {
	changes      []Snapshot
	currentIndex int // number of applied changes; changes[currentIndex:] can be redone
	maxHistory   int
}

// NewHistory creates an empty history.
func NewHistory(maxHistory int) History {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return History{maxHistory: maxHistory}
}

func (h History) clone() History {
	c := h
	c.changes = make([]Snapshot, len(h.changes))
	for i, s := range h.changes {
		c.changes[i] = Snapshot{Content: cloneLines(s.Content), Row: s.Row, Col: s.Col}
	}
	return c
}

// Record stores before as the state to return to on the next undo and drops
// any redo history.
func (h *History) Record(before Snapshot) {
	if h.currentIndex < len(h.changes) {
		h.changes = h.changes[:h.currentIndex]
	}
	h.changes = append(h.changes, before)
	if h.maxHistory > 0 && len(h.changes) > h.maxHistory {
		h.changes = h.changes[len(h.changes)-h.maxHistory:]
	}
	h.currentIndex = len(h.changes)
	logger.DebugTagf("history", "Recorded snapshot. Index: %d, Count: %d", h.currentIndex, len(h.changes))
}

// Undo returns the snapshot to restore and remembers current for Redo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if h.currentIndex <= 0 {
		return Snapshot{}, false
	}
	h.currentIndex--
	target := h.changes[h.currentIndex]
	h.changes[h.currentIndex] = current
	return target, true
}

// Redo reapplies the last undone change.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if h.currentIndex >= len(h.changes) {
		return Snapshot{}, false
	}
	target := h.changes[h.currentIndex]
	h.changes[h.currentIndex] = current
	h.currentIndex++
	return target, true
}

// dropNoop forgets the newest undo point when it matches content, so an insert
// session that typed nothing leaves no empty undo step.
func (h *History) dropNoop(content []string) {
	if h.currentIndex == 0 || h.currentIndex != len(h.changes) {
		return
	}
	if equalLines(h.changes[h.currentIndex-1].Content, content) {
		h.changes = h.changes[:h.currentIndex-1]
		h.currentIndex--
	}
}

// Clear drops all history.
func (h *History) Clear() {
	h.changes = nil
	h.currentIndex = 0
}

// CanUndo reports whether Undo would succeed.
func (h History) CanUndo() bool { return h.currentIndex > 0 }

// CanRedo reports whether Redo would succeed.
func (h History) CanRedo() bool { return h.currentIndex < len(h.changes) }

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

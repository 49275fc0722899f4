package app

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bethropolis/termreel/internal/highlighter"
	"github.com/bethropolis/termreel/internal/logger"
	"github.com/bethropolis/termreel/internal/utils"
	"github.com/bethropolis/termreel/internal/vim"
)

const highlightDebounceDuration = 65 * time.Millisecond

// HighlightingManager re-highlights the vim buffer once edits settle.
type HighlightingManager struct {
	highlighter *highlighter.Highlighter
	debouncer   *utils.Debouncer
	appRedraw   func()

	mu         sync.Mutex
	ctx        context.Context
	cancelFunc context.CancelFunc
	filename   string
	content    []string
	result     highlighter.HighlightResult
}

// NewHighlightingManager creates a manager. hl may be nil to disable highlighting.
func NewHighlightingManager(hl *highlighter.Highlighter, clock clockwork.Clock, redrawFunc func()) *HighlightingManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &HighlightingManager{
		highlighter: hl,
		debouncer:   utils.NewDebouncer(clock),
		appRedraw:   redrawFunc,
		ctx:         ctx,
		cancelFunc:  cancel,
	}
}

// Update schedules highlighting of st's buffer. A new file is highlighted
// without waiting so the first frame is already colored.
func (hm *HighlightingManager) Update(st vim.State) {
	if hm.highlighter == nil || !hm.highlighter.Supports(st.Filename) {
		hm.mu.Lock()
		hm.filename, hm.content, hm.result = st.Filename, nil, nil
		hm.mu.Unlock()
		return
	}

	hm.mu.Lock()
	if hm.filename == st.Filename && equalContent(hm.content, st.Content) {
		hm.mu.Unlock()
		return
	}
	fresh := hm.filename != st.Filename
	hm.filename = st.Filename
	hm.content = append([]string(nil), st.Content...)
	filename, content := hm.filename, hm.content
	hm.mu.Unlock()

	if fresh {
		hm.debouncer.Stop()
		hm.run(filename, content)
		return
	}
	hm.debouncer.Debounce(highlightDebounceDuration, func() {
		hm.run(filename, content)
	})
}

func (hm *HighlightingManager) run(filename string, content []string) {
	result, err := hm.highlighter.Highlight(hm.ctx, filename, content)
	if err != nil {
		if hm.ctx.Err() == nil {
			logger.Warnf("HighlightingManager: highlighting '%s' failed: %v", filename, err)
		}
		return
	}

	hm.mu.Lock()
	if hm.filename != filename {
		hm.mu.Unlock()
		return
	}
	hm.result = result
	hm.mu.Unlock()

	logger.DebugTagf("highlight", "HighlightingManager: %s highlighted, %d lines", filename, len(result))
	if hm.appRedraw != nil {
		hm.appRedraw()
	}
}

// Result returns the latest highlights.
func (hm *HighlightingManager) Result() highlighter.HighlightResult {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return hm.result
}

// Shutdown cancels any pending or running task.
func (hm *HighlightingManager) Shutdown() {
	hm.debouncer.Stop()
	hm.cancelFunc()
}

func equalContent(a, b []string) bool {
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

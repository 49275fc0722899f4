// Package utils holds small helpers shared by the renderers.
package utils

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rivo/uniseg"
)

// DrawText draws text at (x, y) without crossing maxX and returns the column
// after the last drawn cluster. Wide clusters are padded with style.
func DrawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		width := gr.Width()
		if width == 0 {
			continue
		}
		if x+width > maxX {
			break
		}
		screen.SetContent(x, y, runes[0], runes[1:], style)
		for i := 1; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		x += width
	}
	return x
}

// Fill paints cells [x, maxX) of row y.
func Fill(screen tcell.Screen, x, y, maxX int, style tcell.Style) {
	for ; x < maxX; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

// VisualWidth is the number of cells text occupies.
func VisualWidth(text string) int {
	return uniseg.StringWidth(text)
}

// Debouncer runs the last scheduled function once calls stop for a while.
type Debouncer struct {
	mutex sync.Mutex
	clock clockwork.Clock
	timer clockwork.Timer
	gen   int
}

// NewDebouncer creates a debouncer. A nil clock uses the real clock.
func NewDebouncer(clock clockwork.Clock) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Debouncer{clock: clock}
}

// Debounce calls fn after duration, cancelling any call still pending.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(duration, func() {
		d.mutex.Lock()
		if gen != d.gen {
			d.mutex.Unlock()
			return
		}
		d.timer = nil
		d.mutex.Unlock()
		fn()
	})
}

// Stop cancels a pending call.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

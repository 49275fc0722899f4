// Package vim is a small modal editor: a pure state machine over an in-memory
// line buffer, plus a Session that holds the live state for renderers.
package vim

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/termreel/internal/types"
)

// DefaultVisibleLines is the viewport height.
const DefaultVisibleLines = 18

// Options tune behaviors that differ between vi flavours.
type Options struct {
	VisibleLines   int
	OpenInInsert   bool // start sessions in insert mode
	BackspaceJoins bool // insert-mode backspace at column 0 joins with the previous line
	MaxHistory     int
}

// DefaultOptions returns the standard editor options.
func DefaultOptions() Options {
	return Options{
		VisibleLines:   DefaultVisibleLines,
		BackspaceJoins: true,
		MaxHistory:     DefaultMaxHistory,
	}
}

// State is the complete editor state. Transitions never mutate their input.
type State struct {
	Mode          Mode
	Filename      string
	Content       []string
	CursorRow     int
	CursorCol     int // rune index
	ViewportStart int
	VisibleLines  int

	SavedContent  []string
	CommandBuffer string // includes the leading ':'

	YankBuffer   []string
	YankLinewise bool

	VisualStart types.Position
	Pending     string // first key of a two-key normal command
	Message     string

	ShowLineNumbers bool
	Paste           bool

	History History
	Options Options
}

// New opens an empty buffer named filename.
func New(filename string, opts Options) State {
	if opts.VisibleLines <= 0 {
		opts.VisibleLines = DefaultVisibleLines
	}
	s := State{
		Mode:         ModeNormal,
		Filename:     filename,
		Content:      []string{""},
		SavedContent: []string{""},
		VisibleLines: opts.VisibleLines,
		History:      NewHistory(opts.MaxHistory),
		Options:      opts,
	}
	if opts.OpenInInsert {
		s.Mode = ModeInsert
		s.History.Record(s.snapshot())
	}
	return s
}

// WithContent opens filename with existing lines, treated as already saved.
func WithContent(filename string, lines []string, opts Options) State {
	s := New(filename, opts)
	if len(lines) > 0 {
		s.Content = cloneLines(lines)
		s.SavedContent = cloneLines(lines)
	}
	return s
}

// Clone returns a deep copy.
func (s State) Clone() State {
	c := s
	c.Content = cloneLines(s.Content)
	c.SavedContent = cloneLines(s.SavedContent)
	c.YankBuffer = cloneLines(s.YankBuffer)
	c.History = s.History.clone()
	return c
}

// Modified reports whether the buffer differs from the last write.
func (s State) Modified() bool {
	return !equalLines(s.Content, s.SavedContent)
}

// Cursor returns the cursor position.
func (s State) Cursor() types.Position {
	return types.Position{Line: s.CursorRow, Col: s.CursorCol}
}

// Selection returns the visual selection, inclusive of both ends, ordered.
func (s State) Selection() (types.Position, types.Position, bool) {
	if s.Mode != ModeVisual {
		return types.Position{}, types.Position{}, false
	}
	start, end := types.Ordered(s.VisualStart, s.Cursor())
	return start, end, true
}

// Text joins the buffer lines.
func (s State) Text() string {
	return strings.Join(s.Content, "\n")
}

// ByteCount is the size the buffer would have on disk, newline-terminated.
func (s State) ByteCount() int {
	n := 0
	for _, l := range s.Content {
		n += len(l) + 1
	}
	return n
}

// StatusLine renders the left part of the status line.
func (s State) StatusLine() string {
	switch s.Mode {
	case ModeInsert:
		if s.Paste {
			return "-- INSERT (paste) --"
		}
		return "-- INSERT --"
	case ModeVisual:
		return "-- VISUAL --"
	case ModeCommand:
		return s.CommandBuffer
	}
	return s.Message
}

// FileLabel renders the filename with a modified marker.
func (s State) FileLabel() string {
	name := s.Filename
	if name == "" {
		name = "[No Name]"
	}
	if s.Modified() {
		name += " [+]"
	}
	return name
}

// Ruler renders "row,col", 1-based.
func (s State) Ruler() string {
	return fmt.Sprintf("%d,%d", s.CursorRow+1, s.CursorCol+1)
}

func (s State) snapshot() Snapshot {
	return Snapshot{Content: cloneLines(s.Content), Row: s.CursorRow, Col: s.CursorCol}
}

func (s *State) restore(snap Snapshot) {
	s.Content = cloneLines(snap.Content)
	if len(s.Content) == 0 {
		s.Content = []string{""}
	}
	s.CursorRow = snap.Row
	s.CursorCol = snap.Col
	s.clampNormal()
}

// checkpoint records the current buffer before an edit.
func (s *State) checkpoint() {
	s.History.Record(s.snapshot())
}

func (s State) line() string {
	return s.Content[s.CursorRow]
}

func (s State) lineLen(row int) int {
	return utf8.RuneCountInString(s.Content[row])
}

func (s *State) setLine(row int, text string) {
	s.Content[row] = text
}

// clampRow keeps the row inside the buffer.
func (s *State) clampRow() {
	if len(s.Content) == 0 {
		s.Content = []string{""}
	}
	if s.CursorRow >= len(s.Content) {
		s.CursorRow = len(s.Content) - 1
	}
	if s.CursorRow < 0 {
		s.CursorRow = 0
	}
}

// clampNormal limits the column to the last character, as normal mode does.
func (s *State) clampNormal() {
	s.clampRow()
	max := s.lineLen(s.CursorRow) - 1
	if max < 0 {
		max = 0
	}
	if s.CursorCol > max {
		s.CursorCol = max
	}
	if s.CursorCol < 0 {
		s.CursorCol = 0
	}
}

// clampInsert allows the column to sit just past the last character.
func (s *State) clampInsert() {
	s.clampRow()
	if max := s.lineLen(s.CursorRow); s.CursorCol > max {
		s.CursorCol = max
	}
	if s.CursorCol < 0 {
		s.CursorCol = 0
	}
}

// ensureVisible scrolls the viewport so the cursor row is on screen.
func (s *State) ensureVisible() {
	h := s.VisibleLines
	if h <= 0 {
		h = DefaultVisibleLines
	}
	if s.CursorRow < s.ViewportStart {
		s.ViewportStart = s.CursorRow
	} else if s.CursorRow >= s.ViewportStart+h {
		s.ViewportStart = s.CursorRow - h + 1
	}
	if s.ViewportStart < 0 {
		s.ViewportStart = 0
	}
}

func cloneLines(lines []string) []string {
	if lines == nil {
		return nil
	}
	return append([]string(nil), lines...)
}

// splitAt splits a line at a rune index.
func splitAt(line string, col int) (string, string) {
	r := []rune(line)
	if col > len(r) {
		col = len(r)
	}
	if col < 0 {
		col = 0
	}
	return string(r[:col]), string(r[col:])
}

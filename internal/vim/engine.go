package vim

import "github.com/bethropolis/termreel/internal/logger"

// Apply returns the state that follows pressing k in s. s is left untouched.
// Every transition is total: out-of-range motions clamp and bad commands
// only set Message.
func Apply(s State, k Key) State {
	if s.Mode == ModeClosed {
		return s
	}
	next := s.Clone()
	switch next.Mode {
	case ModeNormal:
		next.handleNormal(k)
	case ModeInsert:
		next.handleInsert(k)
	case ModeVisual:
		next.handleVisual(k)
	case ModeCommand:
		next.handleCommand(k)
	}
	next.ensureVisible()
	logger.DebugTagf("vim", "%v %s -> %v (%d,%d)", s.Mode, k, next.Mode, next.CursorRow, next.CursorCol)
	return next
}

// ApplyAll feeds keys in order.
func ApplyAll(s State, keys ...Key) State {
	for _, k := range keys {
		s = Apply(s, k)
	}
	return s
}

func (s *State) handleInsert(k Key) {
	switch k.Kind {
	case KeyRune:
		s.insertRune(k.Rune)
	case KeyEnter:
		s.splitLine()
	case KeyBackspace:
		s.backspace()
	case KeyEscape:
		s.Mode = ModeNormal
		s.CursorCol--
		s.clampNormal()
		s.History.dropNoop(s.Content)
	case KeyLeft:
		s.CursorCol--
		s.clampInsert()
	case KeyRight:
		s.CursorCol++
		s.clampInsert()
	case KeyUp:
		s.CursorRow--
		s.clampInsert()
	case KeyDown:
		s.CursorRow++
		s.clampInsert()
	}
}

func (s *State) insertRune(r rune) {
	before, after := splitAt(s.line(), s.CursorCol)
	s.setLine(s.CursorRow, before+string(r)+after)
	s.CursorCol++
}

func (s *State) splitLine() {
	before, after := splitAt(s.line(), s.CursorCol)
	s.setLine(s.CursorRow, before)
	s.Content = insertLines(s.Content, s.CursorRow+1, after)
	s.CursorRow++
	s.CursorCol = 0
}

func (s *State) backspace() {
	if s.CursorCol > 0 {
		r := []rune(s.line())
		s.setLine(s.CursorRow, string(r[:s.CursorCol-1])+string(r[s.CursorCol:]))
		s.CursorCol--
		return
	}
	if s.CursorRow == 0 || !s.Options.BackspaceJoins {
		return
	}
	prev := s.CursorRow - 1
	col := s.lineLen(prev)
	s.setLine(prev, s.Content[prev]+s.line())
	s.Content = removeLines(s.Content, s.CursorRow, 1)
	s.CursorRow = prev
	s.CursorCol = col
}

func (s *State) handleCommand(k Key) {
	switch k.Kind {
	case KeyRune:
		s.CommandBuffer += string(k.Rune)
	case KeyBackspace:
		if r := []rune(s.CommandBuffer); len(r) > 1 {
			s.CommandBuffer = string(r[:len(r)-1])
			return
		}
		s.CommandBuffer = ""
		s.Mode = ModeNormal
	case KeyEscape:
		s.CommandBuffer = ""
		s.Mode = ModeNormal
	case KeyEnter:
		raw := ""
		if len(s.CommandBuffer) > 0 {
			raw = s.CommandBuffer[1:]
		}
		s.CommandBuffer = ""
		s.Mode = ModeNormal
		s.execute(ParseEx(raw))
		if s.Mode != ModeClosed {
			s.clampNormal()
		}
	}
}

func insertLines(lines []string, at int, add ...string) []string {
	out := make([]string, 0, len(lines)+len(add))
	out = append(out, lines[:at]...)
	out = append(out, add...)
	return append(out, lines[at:]...)
}

func removeLines(lines []string, at, n int) []string {
	out := make([]string, 0, len(lines))
	out = append(out, lines[:at]...)
	return append(out, lines[at+n:]...)
}

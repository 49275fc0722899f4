package vim

import (
	"strings"
	"unicode"

	"github.com/bethropolis/termreel/internal/types"
)

// Action is a normal- or visual-mode command.
type Action int

const (
	ActionNone Action = iota
	ActionInsert
	ActionInsertLineStart
	ActionAppend
	ActionAppendLineEnd
	ActionOpenBelow
	ActionOpenAbove
	ActionLeft
	ActionDown
	ActionUp
	ActionRight
	ActionLineStart
	ActionLineEnd
	ActionFileStart
	ActionFileEnd
	ActionDeleteChar
	ActionDeleteLine
	ActionYankLine
	ActionPasteAfter
	ActionPasteBefore
	ActionUndo
	ActionRedo
	ActionVisual
	ActionCommandMode
	ActionCancel
)

// normalBindings maps key sequences to actions.
var normalBindings = map[string]Action{
	"i":  ActionInsert,
	"I":  ActionInsertLineStart,
	"a":  ActionAppend,
	"A":  ActionAppendLineEnd,
	"o":  ActionOpenBelow,
	"O":  ActionOpenAbove,
	"h":  ActionLeft,
	"j":  ActionDown,
	"k":  ActionUp,
	"l":  ActionRight,
	"0":  ActionLineStart,
	"$":  ActionLineEnd,
	"gg": ActionFileStart,
	"G":  ActionFileEnd,
	"x":  ActionDeleteChar,
	"dd": ActionDeleteLine,
	"yy": ActionYankLine,
	"p":  ActionPasteAfter,
	"P":  ActionPasteBefore,
	"u":  ActionUndo,
	"v":  ActionVisual,
	":":  ActionCommandMode,
}

// specialBindings maps non-printable keys to actions.
var specialBindings = map[KeyKind]Action{
	KeyLeft:   ActionLeft,
	KeyDown:   ActionDown,
	KeyUp:     ActionUp,
	KeyRight:  ActionRight,
	KeyCtrlR:  ActionRedo,
	KeyEscape: ActionCancel,
}

// motions are the actions visual mode accepts unchanged.
var motions = map[Action]bool{
	ActionLeft: true, ActionDown: true, ActionUp: true, ActionRight: true,
	ActionLineStart: true, ActionLineEnd: true, ActionFileStart: true, ActionFileEnd: true,
}

var normalActions map[Action]func(*State)

func init() {
	normalActions = map[Action]func(*State){
		ActionInsert: func(s *State) {
			s.enterInsert()
		},
		ActionInsertLineStart: func(s *State) {
			s.CursorCol = firstNonBlank(s.line())
			s.enterInsert()
		},
		ActionAppend: func(s *State) {
			if s.lineLen(s.CursorRow) > 0 {
				s.CursorCol++
			}
			s.enterInsert()
		},
		ActionAppendLineEnd: func(s *State) {
			s.CursorCol = s.lineLen(s.CursorRow)
			s.enterInsert()
		},
		ActionOpenBelow: func(s *State) {
			s.checkpoint()
			s.Content = insertLines(s.Content, s.CursorRow+1, "")
			s.CursorRow++
			s.CursorCol = 0
			s.Mode = ModeInsert
		},
		ActionOpenAbove: func(s *State) {
			s.checkpoint()
			s.Content = insertLines(s.Content, s.CursorRow, "")
			s.CursorCol = 0
			s.Mode = ModeInsert
		},
		ActionLeft:      func(s *State) { s.CursorCol-- },
		ActionRight:     func(s *State) { s.CursorCol++ },
		ActionDown:      func(s *State) { s.CursorRow++ },
		ActionUp:        func(s *State) { s.CursorRow-- },
		ActionLineStart: func(s *State) { s.CursorCol = 0 },
		ActionLineEnd:   func(s *State) { s.CursorCol = s.lineLen(s.CursorRow) - 1 },
		ActionFileStart: func(s *State) {
			s.CursorRow = 0
			s.CursorCol = firstNonBlank(s.line())
		},
		ActionFileEnd: func(s *State) {
			s.CursorRow = len(s.Content) - 1
			s.CursorCol = firstNonBlank(s.line())
		},
		ActionDeleteChar:  (*State).deleteChar,
		ActionDeleteLine:  (*State).deleteLine,
		ActionYankLine:    (*State).yankLine,
		ActionPasteAfter:  func(s *State) { s.paste(true) },
		ActionPasteBefore: func(s *State) { s.paste(false) },
		ActionUndo: func(s *State) {
			snap, ok := s.History.Undo(s.snapshot())
			if !ok {
				s.Message = "Already at oldest change"
				return
			}
			s.restore(snap)
		},
		ActionRedo: func(s *State) {
			snap, ok := s.History.Redo(s.snapshot())
			if !ok {
				s.Message = "Already at newest change"
				return
			}
			s.restore(snap)
		},
		ActionVisual: func(s *State) {
			s.Mode = ModeVisual
			s.VisualStart = s.Cursor()
		},
		ActionCommandMode: func(s *State) {
			s.Mode = ModeCommand
			s.CommandBuffer = ":"
		},
		ActionCancel: func(s *State) {},
	}
}

// lookup resolves k against the pending prefix. It returns the action to run,
// or ActionNone with the new pending prefix.
func (s *State) lookup(k Key) (Action, string) {
	if k.Kind != KeyRune {
		return specialBindings[k.Kind], ""
	}
	seq := s.Pending + string(k.Rune)
	if action, ok := normalBindings[seq]; ok {
		return action, ""
	}
	for binding := range normalBindings {
		if len(binding) > len(seq) && strings.HasPrefix(binding, seq) {
			return ActionNone, seq
		}
	}
	return ActionNone, ""
}

func (s *State) handleNormal(k Key) {
	action, pending := s.lookup(k)
	s.Pending = pending
	if action == ActionNone {
		return
	}
	s.Message = ""
	normalActions[action](s)
	if s.Mode == ModeNormal || s.Mode == ModeVisual {
		s.clampNormal()
	} else if s.Mode == ModeInsert {
		s.clampInsert()
	}
}

func (s *State) handleVisual(k Key) {
	if k.Kind == KeyEscape {
		s.Mode = ModeNormal
		s.Pending = ""
		return
	}
	if k.Kind == KeyRune && s.Pending == "" {
		switch k.Rune {
		case 'v':
			s.Mode = ModeNormal
			return
		case 'y':
			start, end, _ := s.Selection()
			s.yank(s.selectionText(start, end), false)
			s.Mode = ModeNormal
			s.CursorRow, s.CursorCol = start.Line, start.Col
			s.clampNormal()
			return
		case 'd', 'x':
			start, end, _ := s.Selection()
			s.checkpoint()
			s.yank(s.selectionText(start, end), false)
			s.deleteRange(start, end)
			s.Mode = ModeNormal
			s.clampNormal()
			return
		}
	}
	action, pending := s.lookup(k)
	s.Pending = pending
	if motions[action] {
		normalActions[action](s)
		s.clampNormal()
	}
}

func (s *State) enterInsert() {
	s.checkpoint()
	s.Mode = ModeInsert
}

func (s *State) yank(lines []string, linewise bool) {
	s.YankBuffer = cloneLines(lines)
	s.YankLinewise = linewise
}

func (s *State) deleteChar() {
	r := []rune(s.line())
	if len(r) == 0 {
		return
	}
	s.checkpoint()
	s.yank([]string{string(r[s.CursorCol])}, false)
	s.setLine(s.CursorRow, string(r[:s.CursorCol])+string(r[s.CursorCol+1:]))
}

// deleteLine removes the cursor line; the last line is emptied, never removed.
func (s *State) deleteLine() {
	s.checkpoint()
	s.yank([]string{s.line()}, true)
	if len(s.Content) == 1 {
		s.Content = []string{""}
	} else {
		s.Content = removeLines(s.Content, s.CursorRow, 1)
	}
	s.clampRow()
	s.CursorCol = firstNonBlank(s.line())
}

func (s *State) yankLine() {
	s.yank([]string{s.line()}, true)
}

func (s *State) paste(after bool) {
	if len(s.YankBuffer) == 0 {
		return
	}
	s.checkpoint()
	if s.YankLinewise {
		at := s.CursorRow
		if after {
			at++
		}
		s.Content = insertLines(s.Content, at, s.YankBuffer...)
		s.CursorRow = at
		s.CursorCol = firstNonBlank(s.line())
		return
	}
	col := s.CursorCol
	if after && s.lineLen(s.CursorRow) > 0 {
		col++
	}
	s.insertText(col, s.YankBuffer)
}

// insertText splices chunk (one element per line) at the cursor row and col and
// leaves the cursor on its last character.
func (s *State) insertText(col int, chunk []string) {
	before, after := splitAt(s.line(), col)
	if len(chunk) == 1 {
		s.setLine(s.CursorRow, before+chunk[0]+after)
		s.CursorCol = col + len([]rune(chunk[0])) - 1
		return
	}
	lines := make([]string, len(chunk))
	copy(lines, chunk)
	lines[0] = before + lines[0]
	last := len(lines) - 1
	endCol := len([]rune(lines[last])) - 1
	lines[last] += after
	s.Content = removeLines(s.Content, s.CursorRow, 1)
	s.Content = insertLines(s.Content, s.CursorRow, lines...)
	s.CursorRow += last
	s.CursorCol = endCol
}

// selectionText returns the characters between start and end, inclusive.
func (s *State) selectionText(start, end types.Position) []string {
	var out []string
	for row := start.Line; row <= end.Line; row++ {
		r := []rune(s.Content[row])
		from, to := 0, len(r)
		if row == start.Line {
			from = minInt(start.Col, len(r))
		}
		if row == end.Line {
			to = minInt(end.Col+1, len(r))
		}
		if to < from {
			to = from
		}
		out = append(out, string(r[from:to]))
	}
	return out
}

// deleteRange removes the characters between start and end, inclusive.
func (s *State) deleteRange(start, end types.Position) {
	head, _ := splitAt(s.Content[start.Line], start.Col)
	_, tail := splitAt(s.Content[end.Line], end.Col+1)
	s.Content = removeLines(s.Content, start.Line, end.Line-start.Line+1)
	s.Content = insertLines(s.Content, start.Line, head+tail)
	s.CursorRow = start.Line
	s.CursorCol = start.Col
}

func firstNonBlank(line string) int {
	for i, r := range []rune(line) {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package vim

import (
	"fmt"
	"strconv"
	"strings"
)

// ExKind tags a parsed ex command.
type ExKind int

const (
	ExNone ExKind = iota
	ExWrite
	ExQuit
	ExForceQuit
	ExWriteQuit
	ExForceWriteQuit
	ExSet
	ExGoto
	ExHelp
	ExUnknown
)

func (k ExKind) String() string {
	switch k {
	case ExNone:
		return "none"
	case ExWrite:
		return "write"
	case ExQuit:
		return "quit"
	case ExForceQuit:
		return "quit!"
	case ExWriteQuit:
		return "wq"
	case ExForceWriteQuit:
		return "wq!"
	case ExSet:
		return "set"
	case ExGoto:
		return "goto"
	case ExHelp:
		return "help"
	}
	return "unknown"
}

// ExCommand is a parsed command-line entry.
type ExCommand struct {
	Kind ExKind
	Arg  string // filename for writes, option for :set
	Line int    // 1-based target for ExGoto
	Raw  string
}

var exNames = map[string]ExKind{
	"w":     ExWrite,
	"write": ExWrite,
	"q":     ExQuit,
	"quit":  ExQuit,
	"q!":    ExForceQuit,
	"quit!": ExForceQuit,
	"wq":    ExWriteQuit,
	"x":     ExWriteQuit,
	"xit":   ExWriteQuit,
	"exit":  ExWriteQuit,
	"wq!":   ExForceWriteQuit,
	"x!":    ExForceWriteQuit,
	"set":   ExSet,
	"se":    ExSet,
	"h":     ExHelp,
	"help":  ExHelp,
}

// ParseEx parses the text typed after ':'.
func ParseEx(raw string) ExCommand {
	cmd := ExCommand{Raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return cmd
	}
	name, arg, _ := strings.Cut(trimmed, " ")
	cmd.Arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(name); err == nil && cmd.Arg == "" {
		cmd.Kind = ExGoto
		cmd.Line = n
		return cmd
	}
	kind, ok := exNames[name]
	if !ok {
		cmd.Kind = ExUnknown
		return cmd
	}
	cmd.Kind = kind
	return cmd
}

var exHandlers map[ExKind]func(*State, ExCommand)

func init() {
	exHandlers = map[ExKind]func(*State, ExCommand){
		ExNone:  func(*State, ExCommand) {},
		ExWrite: func(s *State, c ExCommand) { s.write(c.Arg) },
		ExQuit: func(s *State, _ ExCommand) {
			if s.Modified() {
				s.Message = "E37: No write since last change (add ! to override)"
				return
			}
			s.Mode = ModeClosed
		},
		ExForceQuit: func(s *State, _ ExCommand) { s.Mode = ModeClosed },
		ExWriteQuit: func(s *State, c ExCommand) {
			if s.write(c.Arg) {
				s.Mode = ModeClosed
			}
		},
		ExForceWriteQuit: func(s *State, c ExCommand) {
			if s.write(c.Arg) {
				s.Mode = ModeClosed
			}
		},
		ExSet: func(s *State, c ExCommand) {
			for _, opt := range strings.Fields(c.Arg) {
				if !s.setOption(opt) {
					s.Message = "E518: Unknown option: " + opt
					return
				}
			}
		},
		ExGoto: func(s *State, c ExCommand) {
			s.CursorRow = c.Line - 1
			s.clampRow()
			s.CursorCol = firstNonBlank(s.line())
		},
		ExHelp: func(s *State, _ ExCommand) {
			s.Message = "VIM - Vi IMproved. Type :q<Enter> to exit"
		},
		ExUnknown: func(s *State, c ExCommand) {
			s.Message = "E492: Not an editor command: " + c.Raw
		},
	}
}

func (s *State) execute(c ExCommand) {
	s.Message = ""
	exHandlers[c.Kind](s, c)
}

// write marks the buffer saved. A non-empty name renames the buffer first.
func (s *State) write(name string) bool {
	if name != "" {
		s.Filename = name
	}
	if s.Filename == "" {
		s.Message = "E32: No file name"
		return false
	}
	s.SavedContent = cloneLines(s.Content)
	s.Message = fmt.Sprintf("%q %dL, %dB written", s.Filename, len(s.Content), s.ByteCount())
	return true
}

func (s *State) setOption(opt string) bool {
	switch opt {
	case "number", "nu":
		s.ShowLineNumbers = true
	case "nonumber", "nonu":
		s.ShowLineNumbers = false
	case "number!", "nu!", "invnumber", "invnu":
		s.ShowLineNumbers = !s.ShowLineNumbers
	case "paste":
		s.Paste = true
	case "nopaste":
		s.Paste = false
	case "paste!", "invpaste":
		s.Paste = !s.Paste
	default:
		return false
	}
	return true
}

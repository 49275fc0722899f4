package vim

import "fmt"

// Mode is the editor's input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeCommand
	ModeClosed
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeCommand:
		return "COMMAND"
	case ModeClosed:
		return "CLOSED"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// KeyKind tags a keystroke.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlR
)

// Key is one keystroke fed to the engine.
type Key struct {
	Kind KeyKind
	Rune rune // set for KeyRune
}

var (
	Enter     = Key{Kind: KeyEnter}
	Escape    = Key{Kind: KeyEscape}
	Backspace = Key{Kind: KeyBackspace}
	Up        = Key{Kind: KeyUp}
	Down      = Key{Kind: KeyDown}
	Left      = Key{Kind: KeyLeft}
	Right     = Key{Kind: KeyRight}
	CtrlR     = Key{Kind: KeyCtrlR}
)

// Rune makes a printable keystroke.
func Rune(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// Runes makes one keystroke per rune of s.
func Runes(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, Rune(r))
	}
	return keys
}

// Command makes the keystrokes for ":cmd<Enter>".
func Command(cmd string) []Key {
	keys := append([]Key{Rune(':')}, Runes(cmd)...)
	return append(keys, Enter)
}

func (k Key) String() string {
	switch k.Kind {
	case KeyRune:
		return string(k.Rune)
	case KeyEnter:
		return "<CR>"
	case KeyEscape:
		return "<Esc>"
	case KeyBackspace:
		return "<BS>"
	case KeyUp:
		return "<Up>"
	case KeyDown:
		return "<Down>"
	case KeyLeft:
		return "<Left>"
	case KeyRight:
		return "<Right>"
	case KeyCtrlR:
		return "<C-r>"
	}
	return "<?>"
}

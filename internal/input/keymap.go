package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/termreel/internal/vim"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps plain runes to actions.
type RuneKeymap map[rune]Action

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Key    vim.Key // set for ActionVimKey
}

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	passVim    bool // unmapped keys become ActionVimKey
}

// NewPlaybackProcessor binds the player controls: space pauses or resumes,
// r replays, t cycles themes and q, Esc or Ctrl+C quit.
func NewPlaybackProcessor() *InputProcessor {
	return &InputProcessor{
		keymap: Keymap{
			tcell.KeyEscape: ActionQuit,
			tcell.KeyCtrlC:  ActionQuit,
		},
		runeKeymap: RuneKeymap{
			' ': ActionTogglePause,
			'r': ActionReplay,
			'R': ActionReplay,
			't': ActionNextTheme,
			'q': ActionQuit,
			'Q': ActionQuit,
		},
	}
}

// NewEditorProcessor forwards keys to the editor. Ctrl+C and Ctrl+Q leave it.
func NewEditorProcessor() *InputProcessor {
	return &InputProcessor{
		keymap: Keymap{
			tcell.KeyCtrlC: ActionQuit,
			tcell.KeyCtrlQ: ActionQuit,
		},
		runeKeymap: RuneKeymap{},
		passVim:    true,
	}
}

// Bind adds or replaces a rune binding.
func (p *InputProcessor) Bind(r rune, action Action) {
	p.runeKeymap[r] = action
}

// ProcessEvent decodes ev.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action}
	}
	if key == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		if action, ok := p.runeKeymap[ev.Rune()]; ok {
			return ActionEvent{Action: action}
		}
	}
	if p.passVim {
		if k, ok := ToVimKey(ev); ok {
			return ActionEvent{Action: ActionVimKey, Key: k}
		}
	}
	return ActionEvent{Action: ActionUnknown}
}

var vimKeys = map[tcell.Key]vim.Key{
	tcell.KeyEnter:      vim.Enter,
	tcell.KeyEscape:     vim.Escape,
	tcell.KeyBackspace:  vim.Backspace,
	tcell.KeyBackspace2: vim.Backspace,
	tcell.KeyUp:         vim.Up,
	tcell.KeyDown:       vim.Down,
	tcell.KeyLeft:       vim.Left,
	tcell.KeyRight:      vim.Right,
	tcell.KeyCtrlR:      vim.CtrlR,
	tcell.KeyTab:        vim.Rune('\t'),
}

// ToVimKey converts a tcell key to an editor keystroke.
func ToVimKey(ev *tcell.EventKey) (vim.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return vim.Key{}, false
		}
		return vim.Rune(ev.Rune()), true
	}
	k, ok := vimKeys[ev.Key()]
	return k, ok
}

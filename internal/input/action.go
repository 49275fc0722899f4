// Package input turns tcell key events into player and editor actions.
package input

// Action is what a key press asks the app to do.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit

	// Playback
	ActionTogglePause
	ActionReplay
	ActionNextTheme

	// Editor
	ActionVimKey // Key carries the keystroke
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionTogglePause:
		return "toggle-pause"
	case ActionReplay:
		return "replay"
	case ActionNextTheme:
		return "next-theme"
	case ActionVimKey:
		return "vim-key"
	}
	return "unknown"
}

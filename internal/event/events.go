package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Terminal store
	TypeLineAdded     // a line was appended to the terminal
	TypeLinesChanged  // lines were cleared, trimmed or restored
	TypeTypingChanged // the typing prompt text changed
	TypeModeChanged   // terminal <-> vim

	// Vim session
	TypeVimChanged // any change to the vim state
	TypeVimClosed  // the session reached the closed mode

	// Playback lifecycle
	TypePlaybackStarted
	TypePlaybackPaused
	TypePlaybackResumed
	TypePlaybackComplete
)

var typeNames = map[Type]string{
	TypeUnknown:          "Unknown",
	TypeLineAdded:        "LineAdded",
	TypeLinesChanged:     "LinesChanged",
	TypeTypingChanged:    "TypingChanged",
	TypeModeChanged:      "ModeChanged",
	TypeVimChanged:       "VimChanged",
	TypeVimClosed:        "VimClosed",
	TypePlaybackStarted:  "PlaybackStarted",
	TypePlaybackPaused:   "PlaybackPaused",
	TypePlaybackResumed:  "PlaybackResumed",
	TypePlaybackComplete: "PlaybackComplete",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// PlaybackData describes a playback lifecycle change.
type PlaybackData struct {
	RunID string
	Index int // script index the player is at
}

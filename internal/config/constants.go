package config

// Base application details
const AppName = "termreel"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "termreel.log"

// Typing cadence, in milliseconds.
const (
	DefaultTypingMinDelay    = 30
	DefaultTypingMaxDelay    = 60
	DefaultTypingSpaceDelay  = 10
	DefaultTypingSpaceJitter = 20
)

// Playback pauses, in milliseconds.
const (
	DefaultSettleDelay   = 300
	DefaultVimOpenDelay  = 500
	DefaultVimStartDelay = 300
	DefaultResumeDelay   = 1000
	DefaultLoopDelay     = 3000
)

const DefaultMaxLines = 200
const DefaultVisibleLines = 18
const DefaultMaxHistory = 100
const DefaultPrompt = "dev@workstation:~/project$ "
const DefaultTheme = "devcomfort dark"

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/termreel/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Player PlayerConfig  `toml:"player"`
	Vim    VimConfig     `toml:"vim"`
	UI     UIConfig      `toml:"ui"`
}

// PlayerConfig holds reel playback timing. All delays are milliseconds.
type PlayerConfig struct {
	TypingMinDelay    int     `toml:"typing_min_delay_ms"`
	TypingMaxDelay    int     `toml:"typing_max_delay_ms"`
	TypingSpaceDelay  int     `toml:"typing_space_delay_ms"`
	TypingSpaceJitter int     `toml:"typing_space_jitter_ms"`
	SettleDelay       int     `toml:"settle_delay_ms"`
	VimOpenDelay      int     `toml:"vim_open_delay_ms"`
	VimStartDelay     int     `toml:"vim_start_delay_ms"`
	ResumeDelay       int     `toml:"resume_delay_ms"`
	LoopDelay         int     `toml:"loop_delay_ms"`
	MaxLines          int     `toml:"max_lines"`
	Loop              bool    `toml:"loop"`
	Script            string  `toml:"script"`
	Speed             float64 `toml:"speed"` // divides every delay, script entries included
}

// VimConfig holds settings of the embedded editor.
type VimConfig struct {
	VisibleLines    int  `toml:"visible_lines"`
	OpenInInsert    bool `toml:"open_in_insert"`
	BackspaceJoins  bool `toml:"backspace_joins"`
	MaxHistory      int  `toml:"max_history"`
	SystemClipboard bool `toml:"system_clipboard"`
}

// UIConfig holds rendering settings.
type UIConfig struct {
	Prompt    string `toml:"prompt"`
	Theme     string `toml:"theme"`
	ThemeFile string `toml:"theme_file"`
	Syntax    bool   `toml:"syntax"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: DefaultLogFileName,
		},
		Player: PlayerConfig{
			TypingMinDelay:    DefaultTypingMinDelay,
			TypingMaxDelay:    DefaultTypingMaxDelay,
			TypingSpaceDelay:  DefaultTypingSpaceDelay,
			TypingSpaceJitter: DefaultTypingSpaceJitter,
			SettleDelay:       DefaultSettleDelay,
			VimOpenDelay:      DefaultVimOpenDelay,
			VimStartDelay:     DefaultVimStartDelay,
			ResumeDelay:       DefaultResumeDelay,
			LoopDelay:         DefaultLoopDelay,
			MaxLines:          DefaultMaxLines,
			Speed:             1,
		},
		Vim: VimConfig{
			VisibleLines:   DefaultVisibleLines,
			BackspaceJoins: true,
			MaxHistory:     DefaultMaxHistory,
		},
		UI: UIConfig{
			Prompt: DefaultPrompt,
			Theme:  DefaultTheme,
			Syntax: true,
		},
	}
}

// Ms converts a millisecond setting to a time.Duration.
func Ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// loadFromFile decodes filePath over a copy of base. A missing file is not an error.
func loadFromFile(filePath string, base *Config) (*Config, error) {
	cfg := *base
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		logger.DebugTagf("config", "Config file not found: %s", filePath)
		return &cfg, nil
	}
	if err != nil {
		return &cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, &cfg)
	if err != nil {
		return base, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	return &cfg, nil
}

// validate resets out-of-range values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	p := &c.Player
	if p.TypingMinDelay < 0 {
		p.TypingMinDelay = defaults.Player.TypingMinDelay
	}
	if p.TypingMaxDelay < p.TypingMinDelay {
		p.TypingMaxDelay = p.TypingMinDelay
	}
	for _, v := range []*int{&p.TypingSpaceDelay, &p.TypingSpaceJitter, &p.SettleDelay,
		&p.VimOpenDelay, &p.VimStartDelay, &p.ResumeDelay, &p.LoopDelay} {
		if *v < 0 {
			*v = 0
		}
	}
	if p.MaxLines < 0 {
		p.MaxLines = defaults.Player.MaxLines
	}
	if p.Speed <= 0 {
		p.Speed = defaults.Player.Speed
	}

	if c.Vim.VisibleLines <= 0 {
		c.Vim.VisibleLines = defaults.Vim.VisibleLines
	}
	if c.Vim.MaxHistory <= 0 {
		c.Vim.MaxHistory = defaults.Vim.MaxHistory
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// DefaultPath returns ~/.config/termreel/config.toml, or "" if the config dir is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// Load builds a Config from defaults, the TOML file at configFilePath and flag overrides.
// It has no global side effects.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()
	var err error

	path := configFilePath
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		cfg, err = loadFromFile(path, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	if cfg.Player.Speed != 1 {
		cfg.Player.Scale(cfg.Player.Speed)
	}
	return cfg, err
}

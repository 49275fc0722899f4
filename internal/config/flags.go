package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bethropolis/termreel/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero values.
type Flags struct {
	ConfigFilePath  *string
	LogLevel        *string
	LogFilePath     *string
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	Script          *string
	Loop            *bool
	Speed           *float64
	VisibleLines    *int
	OpenInInsert    *bool
	SystemClipboard *bool
	Theme           *string
	NoSyntax        *bool

	set *pflag.FlagSet
}

// DefineFlags registers the persistent flags on fs.
func (f *Flags) DefineFlags(fs *pflag.FlagSet) {
	f.set = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error)")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr)")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of log tags to enable")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of log tags to disable")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable")
	f.Script = fs.String("script", "", "Reel file to play (.toml, .yaml or .yml)")
	f.Loop = fs.Bool("loop", false, "Replay the reel when it finishes")
	f.Speed = fs.Float64("speed", 1, "Playback speed multiplier")
	f.VisibleLines = fs.Int("visible-lines", 0, "Rows shown by the vim viewport")
	f.OpenInInsert = fs.Bool("insert", false, "Open vim sessions directly in insert mode")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Mirror vim yanks to the system clipboard")
	f.Theme = fs.String("theme", "", "Built-in theme name")
	f.NoSyntax = fs.Bool("no-syntax", false, "Disable syntax highlighting in vim sessions")
}

// ApplyOverrides updates cfg with the values of flags that were set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	f.set.Visit(func(fl *pflag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "script":
			cfg.Player.Script = *f.Script
		case "loop":
			cfg.Player.Loop = *f.Loop
		case "speed":
			if *f.Speed > 0 {
				cfg.Player.Speed = *f.Speed
			}
		case "visible-lines":
			if *f.VisibleLines > 0 {
				cfg.Vim.VisibleLines = *f.VisibleLines
			}
		case "insert":
			cfg.Vim.OpenInInsert = *f.OpenInInsert
		case "system-clipboard":
			cfg.Vim.SystemClipboard = *f.SystemClipboard
		case "theme":
			if *f.Theme != "" {
				cfg.UI.Theme = *f.Theme
			}
		case "no-syntax":
			cfg.UI.Syntax = !*f.NoSyntax
		}
	})
}

// Scale divides the configured playback delays by speed. Script entry
// delays are scaled by the player from Speed.
func (p *PlayerConfig) Scale(speed float64) {
	scale := func(v *int) { *v = int(float64(*v) / speed) }
	scale(&p.TypingMinDelay)
	scale(&p.TypingMaxDelay)
	scale(&p.TypingSpaceDelay)
	scale(&p.TypingSpaceJitter)
	scale(&p.SettleDelay)
	scale(&p.VimOpenDelay)
	scale(&p.VimStartDelay)
	scale(&p.ResumeDelay)
	scale(&p.LoopDelay)
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

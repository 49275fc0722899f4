package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/bethropolis/termreel/internal/config"
	"github.com/bethropolis/termreel/internal/logger"
	"github.com/bethropolis/termreel/internal/script"
)

var flags config.Flags

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Play scripted terminal and vim sessions",
	Long: `termreel plays a reel: commands typed at a simulated prompt, their output,
and vim sessions driven keystroke by keystroke.

Running termreel without a subcommand is the same as "termreel play".`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	flags.DefineFlags(rootCmd.PersistentFlags())
}

// setup loads the configuration and opens the log. Close the returned closer
// on exit.
func setup() (*config.Config, io.Closer, error) {
	cfg, err := config.Load(*flags.ConfigFilePath, &flags)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	closer, err := logger.Open(cfg.Logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Debugf("Config loaded, script=%q theme=%q", cfg.Player.Script, cfg.UI.Theme)
	return cfg, closer, nil
}

// loadScript returns the configured reel, or the built-in one.
func loadScript(cfg *config.Config) (*script.Script, error) {
	if cfg.Player.Script == "" {
		return script.Default(), nil
	}
	return script.Load(cfg.Player.Script)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}

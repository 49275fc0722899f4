package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/termreel/internal/app"
	"github.com/bethropolis/termreel/internal/logger"
	"github.com/bethropolis/termreel/internal/plain"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the reel",
	Long: `Play the reel full screen.

Keys: space pauses and resumes, r replays, t switches theme, q quits.

Examples:
  termreel play
  termreel play --script demo.yaml --speed 2
  termreel play --plain > demo.txt`,
	RunE: runPlay,
}

var playPlain bool

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().BoolVar(&playPlain, "plain", false, "Print the reel to stdout instead of taking over the terminal")
	}
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	sc, err := loadScript(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	if playPlain {
		err := plain.Play(ctx, cmd.OutOrStdout(), cfg, sc, nil)
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	a, err := app.NewPlayerApp(cfg, sc, app.Options{})
	if err != nil {
		return fmt.Errorf("error initializing application: %w", err)
	}
	if err := a.Run(ctx); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return err
	}
	return nil
}

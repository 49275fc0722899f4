package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/termreel/internal/config"
	"github.com/bethropolis/termreel/internal/script"
	"github.com/bethropolis/termreel/internal/theme"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print the reel as TOML or YAML",
	Long: `Print the reel that would be played, as a starting point for your own.

Examples:
  termreel script > reel.toml
  termreel script --format yaml --script reel.toml`,
	Args: cobra.NoArgs,
	RunE: runScript,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

var scriptFormat string

func init() {
	scriptCmd.Flags().StringVar(&scriptFormat, "format", "toml", "Output format (toml or yaml)")
	rootCmd.AddCommand(scriptCmd, themesCmd)
}

func runScript(cmd *cobra.Command, _ []string) error {
	format, err := script.ParseFormat(scriptFormat)
	if err != nil {
		return err
	}
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	sc, err := loadScript(cfg)
	if err != nil {
		return err
	}
	return sc.Encode(cmd.OutOrStdout(), format)
}

func runThemes(cmd *cobra.Command, _ []string) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	m := theme.NewManager()
	if err := m.LoadDir(theme.DefaultDir(config.AppName)); err != nil {
		return err
	}
	active := m.Resolve(cfg.UI.Theme, cfg.UI.ThemeFile).Name
	for _, name := range m.ListThemes() {
		marker := " "
		if name == active {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
	}
	return nil
}

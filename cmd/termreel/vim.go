package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bethropolis/termreel/internal/app"
)

var vimCmd = &cobra.Command{
	Use:   "vim [file]",
	Short: "Open the built-in editor",
	Long: `Open the editor that plays vim blocks, driven by your own keys.

The file is read if it exists. Writes only update the in-memory buffer;
nothing is saved to disk. Leave with :q, :q! or Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVim,
}

func init() {
	rootCmd.AddCommand(vimCmd)
}

func runVim(cmd *cobra.Command, args []string) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	var (
		name  string
		lines []string
	)
	if len(args) == 1 {
		lines, err = readLines(args[0])
		if err != nil {
			return err
		}
		name = filepath.Base(args[0])
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	a, err := app.NewEditorApp(cfg, name, lines, app.Options{})
	if err != nil {
		return fmt.Errorf("error initializing application: %w", err)
	}
	return a.Run(ctx)
}

// readLines returns the lines of path. A missing file has no lines.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n"), nil
}

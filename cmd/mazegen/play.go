package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazegen/internal/platform/tui"
	"github.com/vovakirdan/tui-mazegen/internal/registry"
	"github.com/vovakirdan/tui-mazegen/internal/scenes/backtracker"
	"github.com/vovakirdan/tui-mazegen/internal/storage"
)

var playGrid gridFlags

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Animate a maze generator",
	Long: `Animate the given scene (default: backtracker).

The grid is shrunk to the largest odd size that fits the terminal.
Every finished maze is recorded in the runs database.

Controls:
  Space/P     - Pause
  +/-         - Faster / slower (steps per frame)
  ]/[         - Grow / shrink the grid
  R           - Restart with a new seed
  Ctrl+S      - Save a text screenshot
  B/Esc       - Back
  Q/Ctrl+C    - Quit

Examples:
  mazegen play
  mazegen play backtracker-corner
  mazegen play --size small --fps 60
  mazegen play --blocks 31 --start corner --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playGrid.register(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	sceneID := backtracker.IDRandom
	if len(args) > 0 {
		sceneID = args[0]
	}

	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'mazegen list' to see available scenes.")
		os.Exit(1)
	}

	mazeCfg, err := loadMazeConfig(playGrid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := runtimeConfig(cmd, mazeCfg)

	scene, err := registry.Create(sceneID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the animation still works
		store = nil
	}

	logger, closeLog := newLogger()
	defer closeLog()

	_, runErr := tui.Run(scene, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

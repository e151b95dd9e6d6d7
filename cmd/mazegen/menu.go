package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazegen/internal/platform/tui"
	"github.com/vovakirdan/tui-mazegen/internal/registry"
	"github.com/vovakirdan/tui-mazegen/internal/storage"
)

var menuGrid gridFlags

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick generator scenes from a menu",
	Long: `Start mazegen in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a scene.
Press B or Esc in a scene to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select scene
  Tab          - Run statistics
  Q            - Quit

Examples:
  mazegen menu
  mazegen menu --fps 30
  mazegen menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	menuGrid.register(menuCmd)
}

func runMenu(cmd *cobra.Command, _ []string) {
	mazeCfg, err := loadMazeConfig(menuGrid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := runtimeConfig(cmd, mazeCfg)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	logger, closeLog := newLogger()
	defer closeLog()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsStats {
			goBack, sbErr := tui.RunStatsBoard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		scene, err := registry.Create(menuResult.SceneID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
			continue
		}

		// A fresh seed per scene unless --seed pins it
		if !cmd.Flags().Changed("seed") {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(scene, store, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
		}
		if !backToMenu {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}

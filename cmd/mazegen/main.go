// mazegen animates maze generation with a recursive backtracker in the terminal.
//
// Usage:
//
//	mazegen list             - List available generator scenes
//	mazegen play [scene]     - Animate a scene
//	mazegen menu             - Pick scenes interactively
//	mazegen print            - Generate one maze and print it as ASCII
//	mazegen stats [scene]    - Show statistics of finished mazes
//	mazegen serve            - Start SSH server for remote viewing
//
// Global flags:
//
//	--fps <rate>     - Frames per second (default: from config, 24)
//	--seed <value>   - RNG seed for reproducible mazes
//	--db <path>      - Database path (default: ~/.mazegen/runs.db)
//	--config <path>  - Maze config YAML
//	--env <path>     - .env file with MAZEGEN_* overrides (default: .env)
//	--verbose        - Log to ~/.mazegen/mazegen.log
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mazegen/internal/config"
	"github.com/vovakirdan/tui-mazegen/internal/core"
	"github.com/vovakirdan/tui-mazegen/internal/scenes/backtracker"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagEnvFile string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazegen",
	Short: "Watch mazes being carved in your terminal",
	Long: `mazegen animates the recursive backtracker maze algorithm one step
per frame: the red cell carves forward, grey passages are finished,
and white marks the way back along the stack.

Available commands:
  list     - Show all generator scenes
  play     - Animate a scene directly
  menu     - Interactive scene picker
  print    - Print one finished maze as ASCII
  stats    - View statistics of finished mazes
  serve    - Start SSH server for remote viewing

Examples:
  mazegen play
  mazegen play backtracker-corner --size small
  mazegen print --blocks 21 --seed 42
  mazegen serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 24, "Frames per second (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mazegen/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to maze config YAML")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", ".env", "Path to .env file with MAZEGEN_* overrides")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Write a debug log to ~/.mazegen/mazegen.log")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

// gridFlags are the grid overrides shared by play, menu and print.
type gridFlags struct {
	blocks int
	size   string
	start  string
}

func (f *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.blocks, "blocks", 0, "Block-wise count (odd, overrides --size and config)")
	cmd.Flags().StringVar(&f.size, "size", "", "Size preset: small, medium, large, huge")
	cmd.Flags().StringVar(&f.start, "start", "", "Start cell: random or corner")
}

// loadMazeConfig loads the config file, applies .env and flag overrides,
// and hands the result to the scenes.
func loadMazeConfig(f gridFlags) (config.MazeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg, flagEnvFile); err != nil {
		return cfg, err
	}

	if f.size != "" {
		if err := config.ApplySizePreset(&cfg, config.SizePreset(f.size)); err != nil {
			return cfg, err
		}
	}
	if f.blocks != 0 {
		cfg.Grid.BlockWiseCount = f.blocks
		if cfg.Grid.MaxBlocks < f.blocks {
			cfg.Grid.MaxBlocks = f.blocks
		}
	}
	if f.start != "" {
		cfg.Start.Strategy = f.start
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	backtracker.SetConfig(&cfg)
	return cfg, nil
}

// runtimeConfig builds the scene runtime config for the current terminal.
// An explicit --fps wins over the configured frame rate.
func runtimeConfig(cmd *cobra.Command, cfg config.MazeConfig) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	fps := cfg.Animation.FPS
	if cmd.Flags().Changed("fps") {
		fps = flagFPS
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: fps,
		Seed:     flagSeed,
	}
}

// newLogger returns a file logger when --verbose is set, otherwise a silent one.
// The terminal belongs to Bubble Tea, so nothing is logged to stderr.
func newLogger() (*log.Logger, func()) {
	if !flagVerbose {
		return log.New(io.Discard), func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	path := filepath.Join(home, ".mazegen", "mazegen.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "mazegen",
	})
	return logger, func() { f.Close() }
}

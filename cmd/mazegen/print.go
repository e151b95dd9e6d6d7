package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazegen/internal/maze"
)

var printGrid gridFlags

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Generate one maze and print it as ASCII",
	Long: `Run the generator without a terminal UI until the maze is complete,
then print it as ASCII art followed by the step counts.

Examples:
  mazegen print
  mazegen print --blocks 21 --seed 42
  mazegen print --size small --start corner`,
	Args: cobra.NoArgs,
	Run:  runPrint,
}

func init() {
	printGrid.register(printCmd)
}

func runPrint(_ *cobra.Command, _ []string) {
	cfg, err := loadMazeConfig(printGrid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	strategy, err := cfg.StartStrategy()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := maze.NewGenerator(maze.WithSeed(seed), maze.WithStartStrategy(strategy))
	if err := g.Configure(cfg.Grid.BlockWiseCount); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Stop one step short of the restart so the finished maze is kept
	for g.Phase() != maze.PhaseComplete {
		if _, err := g.Step(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	st := g.Stats()
	fmt.Print(g.String())
	fmt.Printf("N=%d seed=%d start=%s carves=%d backtracks=%d max depth=%d\n",
		g.Dimension(), seed, strategy, st.CarveSteps, st.BacktrackSteps, st.MaxStackDepth)
}

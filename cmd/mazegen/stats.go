package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazegen/internal/registry"
	"github.com/vovakirdan/tui-mazegen/internal/storage"
)

var flagStatsClear bool

var statsCmd = &cobra.Command{
	Use:   "stats [scene]",
	Short: "Show statistics of finished mazes",
	Long: `Display aggregated statistics of finished mazes, per scene.
With a scene argument the ten most recent runs are listed as well.

Examples:
  mazegen stats
  mazegen stats backtracker
  mazegen stats backtracker --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete the recorded runs of the scene")
}

func runStats(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagStatsClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a scene")
			return
		}
		printAllStats(store)
		return
	}

	sceneID := args[0]
	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'mazegen list' to see available scenes.")
		return
	}

	if flagStatsClear {
		if err := store.ClearRuns(sceneID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared runs of %s\n", sceneID)
		return
	}

	printSceneStats(store, sceneID)
}

func printAllStats(store *storage.Store) {
	all, err := store.GetAllRunStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'mazegen play' and let a maze finish.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-20s  %6s  %6s  %10s  %8s  %s\n", "Scene", "Mazes", "Max N", "Avg back", "Deepest", "Last run")
	fmt.Printf("  %-20s  %6s  %6s  %10s  %8s  %s\n", "-----", "-----", "-----", "--------", "-------", "--------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-20s  %6d  %6d  %10.1f  %8d  %s\n",
			id, st.Runs, st.LargestDimension, st.AvgBacktracks, st.MaxStackDepth,
			st.LastRun.Format("2006-01-02 15:04"))
	}
}

func printSceneStats(store *storage.Store, sceneID string) {
	st, err := store.GetRunStats(sceneID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	fmt.Printf("Runs - %s\n", sceneID)
	fmt.Println()

	if st.Runs == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'mazegen play %s' and let a maze finish.\n", sceneID)
		return
	}

	runs, err := store.RecentRuns(sceneID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("  %-4s  %-4s  %-10s  %-6s  %-7s  %s\n", "Gen", "N", "Backtracks", "Depth", "Frames", "Date")
	fmt.Printf("  %-4s  %-4s  %-10s  %-6s  %-7s  %s\n", "---", "-", "----------", "-----", "------", "----")
	for _, r := range runs {
		fmt.Printf("  %-4d  %-4d  %-10d  %-6d  %-7d  %s\n",
			r.Generation, r.Dimension, r.BacktrackSteps, r.MaxStackDepth, r.Ticks,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Mazes: %d  Largest N: %d  Avg backtracks: %.1f  Avg depth: %.1f  Deepest: %d\n",
		st.Runs, st.LargestDimension, st.AvgBacktracks, st.AvgStackDepth, st.MaxStackDepth)
}

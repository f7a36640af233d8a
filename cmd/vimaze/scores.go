package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vimaze/internal/level"
	"vimaze/internal/storage"
)

var flagResetScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show best clears for a level",
	Long: `Display the ten fastest clears of the specified level.

Examples:
  vimaze scores level01
  vimaze scores level03
  vimaze scores level01 --reset`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagResetScores, "reset", false, "Delete every recorded clear of the level")
}

func runScores(cmd *cobra.Command, args []string) {
	levelID := args[0]

	lvl, err := level.NewLoader(flagLevelsDir).LoadByID(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'vimaze levels' to see available levels.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening completions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagResetScores {
		if err := store.ClearLevel(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing completions: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all recorded clears of %s.\n", lvl.Name)
		return
	}

	entries, err := store.Completions(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving completions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best clears - %s\n", lvl.Name)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'vimaze play %s' to set the first one!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "Rank", "Time", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "----", "----", "-----", "----")

	for i, e := range entries {
		dateStr := e.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8s  %-6d  %s\n", i+1, fmt.Sprintf("%.1fs", e.ElapsedSecs), e.Moves, dateStr)
	}

	if stats, statsErr := store.GetLevelStats(levelID); statsErr == nil && stats.Clears > 0 {
		fmt.Println()
		fmt.Printf("Clears: %d   Best: %.1fs / %d moves   Last played: %s\n",
			stats.Clears, stats.BestSecs, stats.FewestMove, stats.LastPlayed.Format("2006-01-02"))
	}
}

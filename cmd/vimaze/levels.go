package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vimaze/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long:  `Shows every loaded level with its size, features, and completion mark.`,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	levels, err := loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	// Completion marks are best-effort; the list works without a database
	done := map[string]bool{}
	if store, storeErr := storage.Open(flagDBPath); storeErr == nil {
		if set, setErr := store.CompletedLevels(); setErr == nil {
			done = set
		}
		store.Close()
	}

	maxIDLen := 2 // "ID" header
	for _, lvl := range levels {
		if len(lvl.ID) > maxIDLen {
			maxIDLen = len(lvl.ID)
		}
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s %-*s  %-9s  %-10s  %s\n", "", maxIDLen, "ID", "Size", "Features", "Name")
	fmt.Printf("  %-3s %-*s  %-9s  %-10s  %s\n", "", maxIDLen, "--", "----", "--------", "----")

	for _, lvl := range levels {
		mark := "[ ]"
		if done[lvl.ID] {
			mark = "[*]"
		}
		features := strings.Join(lvl.Features, ",")
		if features == "" {
			features = "-"
		}
		size := fmt.Sprintf("%dx%d", lvl.Rows, lvl.Cols)
		fmt.Printf("  %-3s %-*s  %-9s  %-10s  %s\n", mark, maxIDLen, lvl.ID, size, features, lvl.Name)
	}

	fmt.Println()
	fmt.Println("Run 'vimaze play <id>' to play a level.")
}

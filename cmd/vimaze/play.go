package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vimaze/internal/platform/tui"
	"vimaze/internal/storage"
)

var flagDebug bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the game",
	Long: `Start the game. Without an argument you land on the level menu;
with a level id you drop straight into that level.

Controls:
  h/j/k/l    - Move (arrow keys work too)
  0/$        - Jump to line start/end (where the level allows it)
  gg/G       - Jump to top/bottom (where the level allows it)
  /text      - Search and jump (where the level allows it)
  :q         - Quit; on the exit cell this wins the level
  :q!        - Abandon the run
  Ctrl+C     - Hard quit

Examples:
  vimaze play
  vimaze play level02
  vimaze play --fps 30`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Log state transitions to stderr")
}

func runPlay(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal")
		os.Exit(1)
	}

	levels, err := loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	startID := ""
	if len(args) == 1 {
		startID = args[0]
		found := false
		for _, lvl := range levels {
			if lvl.ID == startID {
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", startID)
			fmt.Fprintln(os.Stderr, "Run 'vimaze levels' to see available levels.")
			os.Exit(1)
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open completions database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	logger := log.New(io.Discard)
	if flagDebug {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	}

	runErr := tui.Run(levels, store, logger, cfg, startID)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

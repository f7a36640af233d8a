// vimaze is a maze game played with editor motions in the terminal.
//
// Usage:
//
//	vimaze play [level]      - Play, optionally jumping straight into a level
//	vimaze levels            - List levels and completion marks
//	vimaze scores <level>    - Show best clears for a level
//	vimaze validate [file]   - Validate level files offline
//	vimaze serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 20)
//	--db <path>      - Set database path (default: ~/.vimaze/completions.db)
//	--levels <dir>   - Load levels from a directory instead of the built-ins
//	--config <path>  - Load tuning from a specific YAML file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vimaze/internal/config"
	"vimaze/internal/level"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagLevelsDir string
	flagConfig    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vimaze",
	Short: "Escape mazes using editor motions",
	Long: `vimaze drops you into a maze drawn as a text buffer. Move with
h/j/k/l, avoid the patrolling spies, reach the exit cell, and leave the
only way an editor lets you: type :q at the right place. :q anywhere
else abandons the run.

Available commands:
  play      - Start the game (menu, or straight into a level)
  levels    - Show all levels with completion marks
  scores    - View best clears for a level
  validate  - Check level files without playing them
  serve     - Start SSH server for remote play

Examples:
  vimaze play
  vimaze play level03
  vimaze levels
  vimaze scores level01
  vimaze validate ./mylevels/custom.yaml
  vimaze serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 20, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.vimaze/completions.db", "Path to completions database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level YAML files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning YAML (default: ~/.vimaze/config.yaml)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadLevels loads the configured level set, embedded or on-disk.
func loadLevels() ([]*level.Level, error) {
	return level.NewLoader(flagLevelsDir).LoadAll()
}

// loadConfig loads the tuning file and applies the --fps override when
// the flag was given explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("fps") {
		cfg.TickRate = flagFPS
	}
	return cfg, nil
}

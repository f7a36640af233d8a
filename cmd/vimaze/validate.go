package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vimaze/internal/level"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate level files without playing them",
	Long: `Check level YAML files for schema problems, walls under the start
or exit, patrol routes that hit walls, and routes that do not close back
on their spawn. Without arguments the configured level set is checked.

Examples:
  vimaze validate
  vimaze validate ./mylevels/custom.yaml
  vimaze validate --levels ./mylevels`,
	Run: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		levels, err := loadLevels()
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
			os.Exit(1)
		}
		for _, lvl := range levels {
			fmt.Printf("ok   %s (%s)\n", lvl.ID, lvl.Name)
		}
		fmt.Printf("\n%d level(s) valid.\n", len(levels))
		return
	}

	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		lvl, err := level.ParseAndBuild(data)
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("ok   %s (%s)\n", path, lvl.ID)
	}

	if failed > 0 {
		fmt.Printf("\n%d file(s) failed validation.\n", failed)
		os.Exit(1)
	}
	fmt.Printf("\n%d file(s) valid.\n", len(args))
}

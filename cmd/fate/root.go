package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fate",
	Short: "Fate - runtime-tunable formula engine for game balance",
	Long: `Fate evaluates numeric expressions over named variables, built for
game formulas that designers tune at runtime without recompiling the game.

It provides:
  - An expression language with arithmetic, comparisons, logic and ternaries
  - Compile-once formulas executed against per-evaluation variable contexts
  - Formula libraries loaded from YAML files or SQLite, with hot reload
  - 19 built-in math functions plus host-registered custom functions`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ludum-hq/fate/pkg/cli"
	"ludum-hq/fate/pkg/formula"
)

var depsFlags struct {
	format string
}

var depsCmd = &cobra.Command{
	Use:   "deps <expression>",
	Short: "Show the variables an expression reads",
	Long: `Compile an expression and print every variable it references, in
first-use order. Both branches of ternaries are included, so the output
covers everything the expression can ever read.

Examples:
  fate deps "base * (crit ? crit_mult : 1)"
  fate deps "lerp(min_dmg, max_dmg, charge / 100)" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)

	depsCmd.Flags().StringVar(&depsFlags.format, "format", "text", "output format: text, json")
}

func runDeps(cmd *cobra.Command, args []string) error {
	c := formula.NewContext()
	if err := c.SeedConstants(); err != nil {
		return err
	}

	f, err := formula.Compile(c, args[0])
	if err != nil {
		return fmt.Errorf("invalid expression: %w", err)
	}

	vars := f.Variables()

	if depsFlags.format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, struct {
			Expression string   `json:"expression"`
			Variables  []string `json:"variables"`
		}{f.Source(), vars})
	}

	for _, name := range vars {
		fmt.Println(name)
	}
	return nil
}

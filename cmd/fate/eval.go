package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ludum-hq/fate/pkg/cli"
	"ludum-hq/fate/pkg/formula"
)

var evalFlags struct {
	vars      []string
	precision int
	format    string
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression",
	Long: `Evaluate a single expression and print the result.

Variables are supplied with repeated --var flags. The standard named
constants (pi, e, tau, phi) and all built-in functions are available.

Examples:
  # Simple arithmetic
  fate eval "2 + 3 * 4"

  # With variables
  fate eval "attack * 2.5 / max(1, defense)" --var attack=120 --var defense=30

  # Fixed precision output
  fate eval "sqrt(2)" --precision 4

  # JSON output for scripting
  fate eval "clamp(level / 10, 0, 1)" --var level=7 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringArrayVar(&evalFlags.vars, "var", nil, "variable as name=value (repeatable)")
	evalCmd.Flags().IntVarP(&evalFlags.precision, "precision", "p", -1, "decimal places in output, -1 for shortest")
	evalCmd.Flags().StringVar(&evalFlags.format, "format", "text", "output format: text, json")
}

// evalResult is the JSON shape of an eval command result. Result is
// omitted for NaN and infinite values, which JSON cannot encode;
// Formatted always carries the printable form.
type evalResult struct {
	Expression string   `json:"expression"`
	Result     *float64 `json:"result,omitempty"`
	Formatted  string   `json:"formatted"`
	Variables  []string `json:"variables,omitempty"`
}

func runEval(cmd *cobra.Command, args []string) error {
	c, err := contextFromFlags(evalFlags.vars)
	if err != nil {
		return err
	}

	f, err := formula.Compile(c, args[0])
	if err != nil {
		return fmt.Errorf("invalid expression: %w", err)
	}

	value := f.Execute(c)
	formatted := formula.Format(value, evalFlags.precision)

	if evalFlags.format == "json" {
		result := evalResult{
			Expression: f.Source(),
			Formatted:  formatted,
			Variables:  f.Variables(),
		}
		if !formula.IsNaN(value) && !formula.IsInf(value) {
			result.Result = &value
		}
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, result)
	}

	fmt.Println(formatted)
	return nil
}

// contextFromFlags builds an evaluation context from name=value flag
// values, with the standard constants seeded first so flags can shadow
// them.
func contextFromFlags(vars []string) (*formula.Context, error) {
	c := formula.NewContext()
	if err := c.SeedConstants(); err != nil {
		return nil, err
	}

	for _, kv := range vars {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --var %q, expected name=value", kv)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for variable %q: %w", name, err)
		}
		if err := c.Define(name, value); err != nil {
			return nil, fmt.Errorf("failed to define variable %q: %w", name, err)
		}
	}

	return c, nil
}

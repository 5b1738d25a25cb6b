package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ludum-hq/fate/pkg/cli"
	felerrors "ludum-hq/fate/pkg/fel/errors"
	"ludum-hq/fate/pkg/formula"
	"ludum-hq/fate/pkg/library/source"
)

var checkFlags struct {
	file   string
	dir    string
	format string
}

var checkCmd = &cobra.Command{
	Use:   "check [expression...]",
	Short: "Validate expressions or formula files",
	Long: `Validate expressions without evaluating them.

Expressions given as arguments are checked directly. With --file or
--dir, formula definition files are loaded and every definition is
compiled, reporting syntax errors, unknown functions and wrong argument
counts.

Examples:
  # Check expressions
  fate check "a + b * c" "clamp(x, 0, 1)"

  # Check a formula file
  fate check --file formulas/combat.yaml

  # Check a directory, JSON output for CI
  fate check --dir formulas/ --format json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.file, "file", "f", "", "formula file to validate")
	checkCmd.Flags().StringVarP(&checkFlags.dir, "dir", "d", "", "directory of formula files")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, json")
}

// checkResult is the outcome of validating one expression.
type checkResult struct {
	Name       string `json:"name,omitempty"`
	Expression string `json:"expression"`
	Valid      bool   `json:"valid"`
	Error      string `json:"error,omitempty"`
	ErrorType  string `json:"error_type,omitempty"`
	Offset     int    `json:"offset,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && checkFlags.file == "" && checkFlags.dir == "" {
		return fmt.Errorf("give expressions as arguments, or use --file or --dir")
	}

	c := formula.NewContext()
	if err := c.SeedConstants(); err != nil {
		return err
	}

	var results []checkResult

	for _, expr := range args {
		results = append(results, checkExpression(c, "", expr))
	}

	for _, path := range checkPaths() {
		src := source.NewFileSource(path, discardLogger())
		doc, err := src.Load(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load %q: %w", path, err)
		}
		for _, def := range doc.Definitions {
			results = append(results, checkExpression(c, def.Name, def.Expr))
		}
	}

	failed := 0
	for _, r := range results {
		if !r.Valid {
			failed++
		}
	}

	if checkFlags.format == "json" {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, results); err != nil {
			return err
		}
	} else {
		printCheckResults(results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d expression(s) invalid", failed, len(results))
	}
	return nil
}

// checkPaths returns the file and directory flags that are set.
func checkPaths() []string {
	var paths []string
	if checkFlags.file != "" {
		paths = append(paths, checkFlags.file)
	}
	if checkFlags.dir != "" {
		paths = append(paths, checkFlags.dir)
	}
	return paths
}

func checkExpression(c *formula.Context, name, expr string) checkResult {
	r := checkResult{Name: name, Expression: expr, Valid: true}

	if err := formula.Check(c, expr); err != nil {
		r.Valid = false
		r.Error = err.Error()
		var fe *felerrors.Error
		if errors.As(err, &fe) {
			r.ErrorType = string(fe.Type)
			r.Offset = fe.Offset
			r.Suggestion = fe.Suggestion
		}
	}
	return r
}

// discardLogger silences source loading logs so check output stays clean.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func printCheckResults(results []checkResult) {
	for _, r := range results {
		label := r.Expression
		if r.Name != "" {
			label = fmt.Sprintf("%s: %s", r.Name, r.Expression)
		}
		if r.Valid {
			fmt.Printf("ok    %s\n", label)
		} else {
			fmt.Printf("FAIL  %s\n      %s\n", label, r.Error)
		}
	}
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ludum-hq/fate/pkg/cli"
	"ludum-hq/fate/pkg/formula"
)

var benchmarkFlags struct {
	vars       []string
	iterations int
	format     string
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark <expression>",
	Short: "Measure compile and execute performance of an expression",
	Long: `Compile an expression once, execute it repeatedly, and report
timings. Useful for checking that a formula is cheap enough for a hot
path before shipping it.

Examples:
  fate benchmark "attack * 2.5 / max(1, defense)" --var attack=120 --var defense=30
  fate benchmark "sqrt(x ^ 2 + y ^ 2)" --var x=3 --var y=4 -n 1000000`,
	Args: cobra.ExactArgs(1),
	RunE: runBenchmark,
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)

	benchmarkCmd.Flags().StringArrayVar(&benchmarkFlags.vars, "var", nil, "variable as name=value (repeatable)")
	benchmarkCmd.Flags().IntVarP(&benchmarkFlags.iterations, "iterations", "n", 100000, "number of executions")
	benchmarkCmd.Flags().StringVar(&benchmarkFlags.format, "format", "text", "output format: text, json")
}

// benchmarkResult is the JSON shape of a benchmark run.
type benchmarkResult struct {
	Expression  string  `json:"expression"`
	Iterations  int     `json:"iterations"`
	CompileNs   int64   `json:"compile_ns"`
	TotalMs     float64 `json:"total_ms"`
	NsPerOp     float64 `json:"ns_per_op"`
	LastResult  string  `json:"last_result"`
	OpsPerSec   float64 `json:"ops_per_sec"`
	VariableSet int     `json:"variable_count"`
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	if benchmarkFlags.iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", benchmarkFlags.iterations)
	}

	c, err := contextFromFlags(benchmarkFlags.vars)
	if err != nil {
		return err
	}

	compileStart := time.Now()
	f, err := formula.Compile(c, args[0])
	if err != nil {
		return fmt.Errorf("invalid expression: %w", err)
	}
	compileTime := time.Since(compileStart)

	var last float64
	execStart := time.Now()
	for i := 0; i < benchmarkFlags.iterations; i++ {
		last = f.Execute(c)
	}
	execTime := time.Since(execStart)

	nsPerOp := float64(execTime.Nanoseconds()) / float64(benchmarkFlags.iterations)
	result := benchmarkResult{
		Expression:  f.Source(),
		Iterations:  benchmarkFlags.iterations,
		CompileNs:   compileTime.Nanoseconds(),
		TotalMs:     float64(execTime.Microseconds()) / 1000,
		NsPerOp:     nsPerOp,
		LastResult:  formula.Format(last, -1),
		OpsPerSec:   1e9 / nsPerOp,
		VariableSet: len(f.Variables()),
	}

	if benchmarkFlags.format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, result)
	}

	fmt.Printf("expression:  %s\n", result.Expression)
	fmt.Printf("compile:     %v\n", compileTime)
	fmt.Printf("iterations:  %d\n", result.Iterations)
	fmt.Printf("total:       %v\n", execTime)
	fmt.Printf("per op:      %.1f ns\n", result.NsPerOp)
	fmt.Printf("throughput:  %.0f ops/s\n", result.OpsPerSec)
	fmt.Printf("last result: %s\n", formula.Format(last, -1))
	return nil
}

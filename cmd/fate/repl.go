package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ludum-hq/fate/pkg/formula"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive expression session",
	Long: `Start an interactive session for trying out expressions.

Session commands:
  let <name> = <value>   define a variable
  unset <name>           remove a variable
  vars                   list defined variables
  funcs                  list available functions
  quit                   leave the session

Anything else is evaluated as an expression.`,
	RunE: runRepl,
}

var replFlags struct {
	precision int
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().IntVarP(&replFlags.precision, "precision", "p", -1, "decimal places in output, -1 for shortest")
}

func runRepl(cmd *cobra.Command, args []string) error {
	c := formula.NewContext()
	if err := c.SeedConstants(); err != nil {
		return err
	}

	fmt.Printf("fate %s - type an expression, or 'quit' to leave\n", Version)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		if handled := replCommand(c, line); handled {
			continue
		}

		value := formula.Evaluate(c, line)
		if c.HasError() {
			fmt.Printf("error: %s\n", c.LastError())
			continue
		}
		fmt.Println(formula.Format(value, replFlags.precision))
	}
}

// replCommand handles session commands, returning false when the line
// should be evaluated as an expression instead.
func replCommand(c *formula.Context, line string) bool {
	switch {
	case strings.HasPrefix(line, "let "):
		replLet(c, strings.TrimPrefix(line, "let "))
		return true

	case strings.HasPrefix(line, "unset "):
		name := strings.TrimSpace(strings.TrimPrefix(line, "unset "))
		if !c.Remove(name) {
			fmt.Printf("no variable %q\n", name)
		}
		return true

	case line == "vars":
		if c.Len() == 0 {
			fmt.Println("no variables defined")
			return true
		}
		for i := 0; ; i++ {
			name, value, ok := c.VariableAt(i)
			if !ok {
				break
			}
			fmt.Printf("%s = %s\n", name, formula.Format(value, replFlags.precision))
		}
		return true

	case line == "funcs":
		for _, name := range c.FunctionNames() {
			fmt.Println(name)
		}
		return true
	}

	return false
}

// replLet parses and applies a "let name = value" assignment. The value
// side is itself an expression, so 'let x = y * 2' works.
func replLet(c *formula.Context, assignment string) {
	name, expr, ok := strings.Cut(assignment, "=")
	if !ok {
		fmt.Println("usage: let <name> = <value>")
		return
	}
	name = strings.TrimSpace(name)
	expr = strings.TrimSpace(expr)

	value, err := strconv.ParseFloat(expr, 64)
	if err != nil {
		value = formula.Evaluate(c, expr)
		if c.HasError() {
			fmt.Printf("error: %s\n", c.LastError())
			return
		}
	}

	if err := c.Define(name, value); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("%s = %s\n", name, formula.Format(value, replFlags.precision))
}

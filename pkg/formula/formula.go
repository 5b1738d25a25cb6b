package formula

import (
	"math"

	"ludum-hq/fate/pkg/fel/ast"
	"ludum-hq/fate/pkg/fel/parser"
)

// Formula is a compiled expression: an owned, immutable tree plus the
// original source text and the set of variable names the expression
// references. Compiling once and executing many times amortizes the parse
// cost across evaluations with changing inputs, which is the per-entity
// loop this engine exists for.
//
// A Formula is independent of the context it was compiled against. It may be
// executed against any context, concurrently from multiple goroutines, as
// long as each goroutine supplies its own context.
type Formula struct {
	source    string
	root      ast.Node
	variables []string
}

// Compile tokenizes and parses an expression once, validating function names
// and arities against the context's registry, and returns the reusable
// compiled form. On failure it returns a nil Formula and records the error
// message on the context.
func Compile(c *Context, input string) (*Formula, error) {
	c.ClearError()

	root, err := parser.New(c).Parse(input)
	if err != nil {
		c.lastErr = err.Error()
		return nil, err
	}

	return &Formula{
		source:    input,
		root:      root,
		variables: ast.Variables(root),
	}, nil
}

// Source returns the original expression text.
func (f *Formula) Source() string {
	return f.source
}

// Variables returns the names of all variables the expression references,
// including ones in branches evaluation may skip. Each name appears once, in
// order of first occurrence. The slice is a copy; callers may keep it.
func (f *Formula) Variables() []string {
	out := make([]string, len(f.variables))
	copy(out, f.variables)
	return out
}

// References reports whether the expression mentions the named variable.
func (f *Formula) References(name string) bool {
	for _, v := range f.variables {
		if v == name {
			return true
		}
	}
	return false
}

// String returns the parsed expression rendered back to FEL syntax with
// explicit parentheses.
func (f *Formula) String() string {
	return f.root.String()
}

// Execute evaluates the compiled expression against the context's current
// variable values. The context need not be the one the formula was compiled
// with, and may have been mutated since the last execution.
func (f *Formula) Execute(c *Context) float64 {
	return evalNode(c, f.root)
}

// Evaluate is the one-shot form: parse and evaluate in a single call, paying
// the parse cost every time. If the expression does not parse, Evaluate
// returns NaN and records the message on the context. A NaN result is
// otherwise a legitimate value (0/0, sqrt(-1)), so callers distinguish the
// two by checking HasError.
func Evaluate(c *Context, input string) float64 {
	f, err := Compile(c, input)
	if err != nil {
		return math.NaN()
	}
	return f.Execute(c)
}

// Check parses the expression without evaluating it, returning the parse,
// arity, or unknown-function error if any. Like Compile, it records the
// failure message on the context.
func Check(c *Context, input string) error {
	_, err := Compile(c, input)
	return err
}

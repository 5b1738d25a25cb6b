package formula

import (
	"math"

	"ludum-hq/fate/pkg/fel/ast"
	"ludum-hq/fate/pkg/fel/token"
)

// evalNode walks a parsed expression against the context's current variable
// bindings. It is a pure function of the tree and the context snapshot: it
// never mutates the tree, and it touches the context only through variable
// reads and custom-function callbacks.
//
// There are no evaluation-time failures. Undefined variables read as 0,
// and NaN/Inf from arithmetic propagate as ordinary values.
func evalNode(c *Context, n ast.Node) float64 {
	switch n := n.(type) {
	case *ast.Literal:
		return n.Value

	case *ast.Variable:
		return c.Get(n.Name)

	case *ast.Unary:
		return evalUnary(c, n)

	case *ast.Binary:
		return evalBinary(c, n)

	case *ast.Ternary:
		// Lazy: only the selected branch runs, so side effects in the
		// dead branch's custom functions must not occur.
		if truthy(evalNode(c, n.Cond)) {
			return evalNode(c, n.Then)
		}
		return evalNode(c, n.Else)

	case *ast.Call:
		return evalCall(c, n)
	}

	return math.NaN()
}

func evalUnary(c *Context, n *ast.Unary) float64 {
	v := evalNode(c, n.Operand)
	switch n.Op {
	case token.Minus:
		return -v
	case token.Bang:
		return b2f(!truthy(v))
	}
	return math.NaN()
}

func evalBinary(c *Context, n *ast.Binary) float64 {
	// Logical operators short-circuit: the right subtree exists in the
	// tree (dependency extraction still sees it) but is not evaluated
	// when the left operand already decides the result.
	switch n.Op {
	case token.And:
		if !truthy(evalNode(c, n.Left)) {
			return 0
		}
		return b2f(truthy(evalNode(c, n.Right)))
	case token.Or:
		if truthy(evalNode(c, n.Left)) {
			return 1
		}
		return b2f(truthy(evalNode(c, n.Right)))
	}

	left := evalNode(c, n.Left)
	right := evalNode(c, n.Right)

	switch n.Op {
	case token.Plus:
		return left + right
	case token.Minus:
		return left - right
	case token.Star:
		return left * right
	case token.Slash:
		// IEEE-754: x/0 is ±Inf, 0/0 is NaN. Not an error.
		return left / right
	case token.Percent:
		// Floating-point remainder; the sign follows the dividend.
		return math.Mod(left, right)
	case token.Caret:
		return math.Pow(left, right)
	case token.Equal:
		return b2f(left == right)
	case token.NotEqual:
		return b2f(left != right)
	case token.Less:
		return b2f(left < right)
	case token.LessEqual:
		return b2f(left <= right)
	case token.Greater:
		return b2f(left > right)
	case token.GreaterEqual:
		return b2f(left >= right)
	}

	return math.NaN()
}

// evalCall evaluates all arguments eagerly, left to right, then invokes the
// function. Custom functions shadow built-ins of the same name.
//
// The parser has already validated name and arity against this context's
// registry, so a miss here can only mean the formula was compiled against a
// different context. That is a supported pattern for variables but not for
// functions, and the call yields NaN.
func evalCall(c *Context, n *ast.Call) float64 {
	args := make([]float64, len(n.Args))
	for i, arg := range n.Args {
		args[i] = evalNode(c, arg)
	}

	if fn, ok := c.funcs[n.Name]; ok {
		return fn.Fn(args)
	}
	if b, ok := builtins[n.Name]; ok {
		return b.fn(args)
	}
	return math.NaN()
}

// truthy implements FEL's boolean policy: any nonzero value is true.
// NaN compares unequal to zero and is therefore true.
func truthy(v float64) bool {
	return v != 0
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

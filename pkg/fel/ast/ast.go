package ast

import (
	"strconv"
	"strings"

	"ludum-hq/fate/pkg/fel/token"
)

// Node is a node of a parsed FEL expression tree. Nodes exclusively own
// their children and are never modified after construction, so a tree may be
// read concurrently once the parser returns it.
type Node interface {
	// Offset returns the byte offset of the node's first token in the
	// expression source.
	Offset() int

	// String renders the node back to expression syntax. Sub-expressions
	// are fully parenthesized, which makes the rendering unambiguous in
	// tests and debug output.
	String() string

	node()
}

// Literal is a numeric constant.
type Literal struct {
	Value float64
	Pos   int
}

// Variable is a reference to a named variable resolved at evaluation time.
type Variable struct {
	Name string
	Pos  int
}

// Unary is a prefix operation: negation (-) or logical not (!).
type Unary struct {
	Op      token.Kind
	Operand Node
	Pos     int
}

// Binary is an infix operation over two operands.
type Binary struct {
	Op    token.Kind
	Left  Node
	Right Node
}

// Call is a function invocation. Arity is validated at parse time, so an
// evaluator may assume the argument count is within the function's declared
// bounds.
type Call struct {
	Name string
	Args []Node
	Pos  int
}

// Ternary is a conditional expression: Cond ? Then : Else. Only the selected
// branch is evaluated.
type Ternary struct {
	Cond Node
	Then Node
	Else Node
}

func (*Literal) node()  {}
func (*Variable) node() {}
func (*Unary) node()    {}
func (*Binary) node()   {}
func (*Call) node()     {}
func (*Ternary) node()  {}

func (n *Literal) Offset() int  { return n.Pos }
func (n *Variable) Offset() int { return n.Pos }
func (n *Unary) Offset() int    { return n.Pos }
func (n *Binary) Offset() int   { return n.Left.Offset() }
func (n *Call) Offset() int     { return n.Pos }
func (n *Ternary) Offset() int  { return n.Cond.Offset() }

func (n *Literal) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *Variable) String() string {
	return n.Name
}

func (n *Unary) String() string {
	return "(" + string(n.Op) + n.Operand.String() + ")"
}

func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + string(n.Op) + " " + n.Right.String() + ")"
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

func (n *Ternary) String() string {
	return "(" + n.Cond.String() + " ? " + n.Then.String() + " : " + n.Else.String() + ")"
}

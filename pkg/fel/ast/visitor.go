package ast

// Visitor provides an interface for traversing an expression tree.
// Implement it to perform analysis on parsed expressions (dependency
// extraction, constant detection, pretty printing, etc.).
type Visitor interface {
	VisitLiteral(*Literal) error
	VisitVariable(*Variable) error
	VisitUnary(*Unary) error
	VisitBinary(*Binary) error
	VisitCall(*Call) error
	VisitTernary(*Ternary) error
}

// Walk traverses the tree in depth-first pre-order, calling the visitor for
// each node. Children are visited left to right; for a ternary that means
// condition, then-branch, else-branch. Walk visits every node regardless of
// evaluation reachability, so the dead branch of a short-circuit operator is
// still reported. It returns the first error the visitor produces.
func Walk(n Node, v Visitor) error {
	switch n := n.(type) {
	case *Literal:
		return v.VisitLiteral(n)

	case *Variable:
		return v.VisitVariable(n)

	case *Unary:
		if err := v.VisitUnary(n); err != nil {
			return err
		}
		return Walk(n.Operand, v)

	case *Binary:
		if err := v.VisitBinary(n); err != nil {
			return err
		}
		if err := Walk(n.Left, v); err != nil {
			return err
		}
		return Walk(n.Right, v)

	case *Call:
		if err := v.VisitCall(n); err != nil {
			return err
		}
		for _, arg := range n.Args {
			if err := Walk(arg, v); err != nil {
				return err
			}
		}
		return nil

	case *Ternary:
		if err := v.VisitTernary(n); err != nil {
			return err
		}
		if err := Walk(n.Cond, v); err != nil {
			return err
		}
		if err := Walk(n.Then, v); err != nil {
			return err
		}
		return Walk(n.Else, v)
	}

	return nil
}

// variableCollector accumulates referenced variable names in first-seen order.
type variableCollector struct {
	seen  map[string]bool
	names []string
}

func (c *variableCollector) VisitVariable(n *Variable) error {
	if !c.seen[n.Name] {
		c.seen[n.Name] = true
		c.names = append(c.names, n.Name)
	}
	return nil
}

func (c *variableCollector) VisitLiteral(*Literal) error { return nil }
func (c *variableCollector) VisitUnary(*Unary) error     { return nil }
func (c *variableCollector) VisitBinary(*Binary) error   { return nil }
func (c *variableCollector) VisitCall(*Call) error       { return nil }
func (c *variableCollector) VisitTernary(*Ternary) error { return nil }

// Variables returns the names of all variables referenced anywhere in the
// tree, including branches that evaluation may skip. Each name appears once,
// in order of first occurrence during a depth-first walk.
func Variables(n Node) []string {
	c := &variableCollector{seen: make(map[string]bool)}
	_ = Walk(n, c) // The collector never errors.
	return c.names
}

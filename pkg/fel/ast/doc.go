// Package ast defines the Abstract Syntax Tree for FEL expressions.
//
// A parsed expression is a strict tree: every node exclusively owns its
// children, there is no sharing and no cycles, and nodes are immutable after
// the parser returns. This makes a tree safe to evaluate concurrently from
// multiple goroutines, provided each goroutine evaluates against its own
// context.
//
// # Node variants
//
//   - Literal:  numeric constant (3, 0.5, 1e-3)
//   - Variable: named variable reference (health, max_health)
//   - Unary:    prefix operator (-x, !ready)
//   - Binary:   infix operator (a + b, hp <= 0)
//   - Call:     function invocation (clamp(x, 0, 1))
//   - Ternary:  conditional (cond ? a : b)
//
// # Traversal
//
// Walk performs a depth-first pre-order traversal with a Visitor. The
// Variables helper builds on it to extract the set of variable names an
// expression depends on:
//
//	deps := ast.Variables(root) // e.g. [health max_health]
package ast

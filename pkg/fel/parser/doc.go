// Package parser builds FEL expression trees using precedence climbing.
//
// # Grammar
//
// Operators by precedence, lowest to highest:
//
//	?:                 conditional (right-associative)
//	||                 logical or
//	&&                 logical and
//	== !=              equality
//	< <= > >=          relational
//	+ -                additive
//	* / %              multiplicative
//	^                  power (right-associative)
//	- !                unary prefix
//	literals, names, name(args...), ( expr )
//
// Comparison and logical operators have no boolean type: they produce 1 or 0
// and treat any nonzero operand as true. That policy lives in the evaluator;
// the parser only builds the tree.
//
// # Parse-time validation
//
// Function calls are validated while parsing. The Parser takes a Registry,
// a read-only view of the function table the expression will later be
// evaluated against, and rejects unknown names and out-of-range argument
// counts immediately, with the offset of the call site. This means a call in
// a branch that evaluation will never take still fails to parse, which is
// deliberate: formula authors find out about typos when the formula is
// loaded, not when a rare branch finally executes.
//
//	p := parser.New(ctx) // *formula.Context implements parser.Registry
//	root, err := p.Parse("clamp(health / max_health, 0, 1)")
package parser

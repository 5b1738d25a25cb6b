// Package fel provides parsing and analysis for the Fate Expression
// Language (FEL).
//
// FEL is a small arithmetic and logical expression language for runtime
// tuning. It lets designers write formulas such as
//
//	clamp(health / max_health, 0, 1)
//	base_damage * power * (1 - armor / (armor + 100))
//	is_crit ? damage * 2 : damage
//
// against named variables supplied by the host, without recompiling it.
//
// # Architecture
//
// The package is organized into subpackages:
//
//   - token:  lexical token kinds
//   - lexer:  source text to token stream
//   - ast:    expression tree and visitor-based traversal
//   - parser: precedence-climbing parser with parse-time call validation
//   - errors: rich error types with offsets and suggestions
//
// Evaluation lives in ludum-hq/fate/pkg/formula, which also supplies the
// binding contexts whose function tables the parser validates against.
//
// # Language summary
//
// Values are IEEE-754 doubles; there are no strings, arrays, or objects.
// Literals may use decimal or scientific notation. Identifiers are
// case-sensitive [A-Za-z_][A-Za-z0-9_]*. Operators, loosest to tightest:
// ?:, ||, &&, == !=, < <= > >=, + -, * / %, ^ (right-associative), unary
// - !. Comparisons yield 1 or 0; logical operators treat nonzero as true
// and short-circuit; the ternary evaluates only the selected branch.
package fel

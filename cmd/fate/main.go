// Fate is a runtime-tunable numeric expression engine for game balance
// formulas.
//
// It compiles arithmetic expressions over named variables into reusable
// formulas, serves libraries of named formulas loaded from YAML files or
// a SQLite database, and reloads them when their sources change.
//
// Usage:
//
//	# Evaluate an expression
//	fate eval "attack * 2.5 / max(1, defense)" --var attack=120 --var defense=30
//
//	# Validate formula files
//	fate check --dir formulas/
//
//	# Show the variables a formula reads
//	fate deps "lerp(min_dmg, max_dmg, charge / 100)"
//
//	# Interactive session
//	fate repl
//
//	# Run the formula service with hot reload and metrics
//	fate run --config /etc/fate/config.yaml
//
//	# Show version information
//	fate version
package main

func main() {
	Execute()
}

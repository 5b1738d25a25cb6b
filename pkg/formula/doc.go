// Package formula is the evaluation engine for FEL expressions.
//
// The engine lets a host program evaluate small arithmetic and logical
// expressions supplied as text at runtime, typically formulas (damage,
// costs, tuning curves) that designers edit without recompiling the game.
//
// # Context
//
// A Context holds the named variables and custom functions an expression is
// evaluated against, plus the error state of the most recent operation:
//
//	ctx := formula.NewContext()
//	ctx.Define("health", 37)
//	ctx.Define("max_health", 120)
//
//	v := formula.Evaluate(ctx, "clamp(health / max_health, 0, 1)")
//
// The variable table holds at most MaxVariables entries. Lookups are
// case-sensitive. A variable an expression references but the context does
// not define reads as 0, silently, with no error recorded.
//
// # Compiled formulas
//
// Compile parses once and returns a Formula that can be executed repeatedly
// while the context's variables change:
//
//	f, err := formula.Compile(ctx, "base * (1 + bonus)")
//	if err != nil { ... }
//	for _, e := range entities {
//	    ctx.Define("base", e.Base)
//	    ctx.Define("bonus", e.Bonus)
//	    e.Damage = f.Execute(ctx)
//	}
//
// A compiled formula also knows which variables it references
// (f.Variables()), collected once at compile time for UI and debugging.
//
// # Errors
//
// All real failures are parse-time failures: syntax errors, unknown
// functions, bad arities. Numeric anomalies (NaN, ±Inf) are ordinary values
// that propagate to the result; test them with IsNaN and IsInf. The one-shot
// Evaluate returns NaN on a parse failure and records the message on the
// context, so callers separate "parse failed" from "formula produced NaN"
// by checking ctx.HasError().
package formula

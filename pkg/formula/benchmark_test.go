package formula

import (
	"testing"
)

const benchExpr = "clamp(base * power * (1 - armor / (armor + 100)), 1, 9999)"

func benchContext() *Context {
	c := NewContext()
	c.Define("base", 12)
	c.Define("power", 3.5)
	c.Define("armor", 61)
	return c
}

// BenchmarkCompile measures the full tokenize + parse + analyze path.
func BenchmarkCompile(b *testing.B) {
	c := benchContext()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Compile(c, benchExpr)
	}
}

// BenchmarkExecute measures repeated evaluation of a compiled formula,
// the per-entity hot path the engine exists for.
func BenchmarkExecute(b *testing.B) {
	c := benchContext()
	f, err := Compile(c, benchExpr)
	if err != nil {
		b.Fatalf("Compile failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Execute(c)
	}
}

// BenchmarkEvaluate measures the one-shot path that re-parses every time,
// for comparison against BenchmarkExecute.
func BenchmarkEvaluate(b *testing.B) {
	c := benchContext()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Evaluate(c, benchExpr)
	}
}

// BenchmarkExecuteSmall measures evaluation overhead on a tiny expression.
func BenchmarkExecuteSmall(b *testing.B) {
	c := benchContext()
	f, err := Compile(c, "base + 1")
	if err != nil {
		b.Fatalf("Compile failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Execute(c)
	}
}

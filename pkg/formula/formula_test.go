package formula

import (
	"math"
	"sort"
	"testing"
)

func TestCompile_RoundTrip(t *testing.T) {
	// For any valid expression, compiling then executing matches the
	// one-shot evaluation under the same bindings.
	exprs := []string{
		"1 + 2 * 3",
		"clamp(health / max_health, 0, 1)",
		"armor > 50 ? damage * 0.5 : damage",
		"lerp(min_dmg, max_dmg, roll)",
		"-(health - max_health) ^ 2",
		"undefined_thing + 1",
	}

	c := NewContext()
	c.Define("health", 37)
	c.Define("max_health", 120)
	c.Define("armor", 61)
	c.Define("damage", 14)
	c.Define("min_dmg", 3)
	c.Define("max_dmg", 9)
	c.Define("roll", 0.42)

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			f, err := Compile(c, expr)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", expr, err)
			}

			got := f.Execute(c)
			want := Evaluate(c, expr)
			if got != want && !(math.IsNaN(got) && math.IsNaN(want)) {
				t.Errorf("Execute = %v, Evaluate = %v, want equal", got, want)
			}
		})
	}
}

func TestFormula_Idempotence(t *testing.T) {
	c := NewContext()
	c.Define("x", 0.3)

	f, err := Compile(c, "sin(x) * exp(x) / (1 + x ^ 3)")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	first := f.Execute(c)
	second := f.Execute(c)
	if math.Float64bits(first) != math.Float64bits(second) {
		t.Errorf("repeat execution = %v, want bit-identical %v", second, first)
	}
}

func TestFormula_ExecuteTracksContextMutation(t *testing.T) {
	c := NewContext()
	c.Define("level", 1)

	f, err := Compile(c, "100 * level ^ 1.5")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if got := f.Execute(c); got != 100 {
		t.Errorf("Execute at level 1 = %v, want 100", got)
	}

	c.Define("level", 4)
	if got := f.Execute(c); got != 800 {
		t.Errorf("Execute at level 4 = %v, want 800", got)
	}
}

func TestFormula_ExecuteAgainstDifferentContext(t *testing.T) {
	compileCtx := NewContext()
	f, err := Compile(compileCtx, "hp * 2")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	other := NewContext()
	other.Define("hp", 21)
	if got := f.Execute(other); got != 42 {
		t.Errorf("Execute against different context = %v, want 42", got)
	}
}

func TestFormula_Variables(t *testing.T) {
	c := NewContext()

	f, err := Compile(c, "a + b * c")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	got := f.Variables()
	sort.Strings(got)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Variables() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Variables()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if !f.References("b") {
		t.Error("References(b) = false, want true")
	}
	if f.References("d") {
		t.Error("References(d) = true, want false")
	}
}

func TestFormula_VariablesDeduplicatedAndComplete(t *testing.T) {
	c := NewContext()

	// x appears twice; y hides in a branch that never evaluates.
	f, err := Compile(c, "x > 0 ? x : y")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	got := f.Variables()
	if len(got) != 2 {
		t.Fatalf("Variables() = %v, want exactly [x y]", got)
	}
	if got[0] != "x" || got[1] != "y" {
		t.Errorf("Variables() = %v, want [x y] in first-occurrence order", got)
	}
}

func TestFormula_SourceAndString(t *testing.T) {
	c := NewContext()
	src := "1 +  2*3" // spacing preserved in Source, normalized in String
	f, err := Compile(c, src)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if got := f.Source(); got != src {
		t.Errorf("Source() = %q, want %q", got, src)
	}
	if got := f.String(); got != "(1 + (2 * 3))" {
		t.Errorf("String() = %q, want %q", got, "(1 + (2 * 3))")
	}
}

func TestCompile_FailureRecordsError(t *testing.T) {
	c := NewContext()

	f, err := Compile(c, "bogus_fn(1)")
	if err == nil {
		t.Fatal("Compile succeeded, want unknown-function error")
	}
	if f != nil {
		t.Error("failed Compile returned a non-nil formula")
	}
	if !c.HasError() {
		t.Error("failed Compile did not record the error on the context")
	}

	// A later successful compile clears it.
	if _, err := Compile(c, "1 + 1"); err != nil {
		t.Fatalf("Compile(1 + 1) failed: %v", err)
	}
	if c.HasError() {
		t.Errorf("error state survived successful compile: %q", c.LastError())
	}
}

func TestCheck(t *testing.T) {
	c := NewContext()

	if err := Check(c, "clamp(x, 0, 1)"); err != nil {
		t.Errorf("Check on valid expression failed: %v", err)
	}
	if err := Check(c, "clamp(x)"); err == nil {
		t.Error("Check on bad arity succeeded, want error")
	}
	if !c.HasError() {
		t.Error("failed Check did not record the error")
	}
}

func TestFormula_ConcurrentExecution(t *testing.T) {
	base := NewContext()
	f, err := Compile(base, "clamp(hp / max_hp, 0, 1)")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	// The tree is immutable; each goroutine gets its own context.
	done := make(chan float64, 8)
	for i := 0; i < 8; i++ {
		go func(i int) {
			ctx := NewContext()
			ctx.Define("hp", float64(i))
			ctx.Define("max_hp", 8)
			done <- f.Execute(ctx)
		}(i)
	}
	for i := 0; i < 8; i++ {
		v := <-done
		if v < 0 || v > 1 {
			t.Errorf("concurrent Execute = %v, want within [0, 1]", v)
		}
	}
}

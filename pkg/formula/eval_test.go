package formula

import (
	"math"
	"testing"
)

func evalOK(t *testing.T, c *Context, input string) float64 {
	t.Helper()
	v := Evaluate(c, input)
	if c.HasError() {
		t.Fatalf("Evaluate(%q) recorded error: %s", input, c.LastError())
	}
	return v
}

func TestEvaluate_Arithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1 + 2", 3},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 - 2 - 3", 5},
		{"7 / 2", 3.5},
		{"2 ^ 10", 1024},
		{"2 ^ 3 ^ 2", 512}, // right-associative: 2^(3^2)
		{"-2 ^ 2", 4},      // unary binds tighter: (-2)^2
		{"7 % 3", 1},
		{"-7 % 3", -1}, // fmod: sign follows the dividend
		{"7 % -3", 1},
		{"-3", -3},
		{"- -3", 3},
		{"1.5e-3 * 1000", 1.5},
	}

	c := NewContext()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := evalOK(t, c, tt.input); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluate_ComparisonAndLogical(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1 == 1", 1},
		{"1 == 2", 0},
		{"1 != 2", 1},
		{"1 < 2", 1},
		{"2 <= 2", 1},
		{"3 > 4", 0},
		{"4 >= 4", 1},
		{"!0", 1},
		{"!5", 0},
		{"1 && 2", 1}, // logical result is normalized to 1/0
		{"1 && 0", 0},
		{"0 || 0", 0},
		{"0 || 7", 1},
		{"1 < 2 && 3 < 4", 1},
	}

	c := NewContext()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := evalOK(t, c, tt.input); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluate_DivisionSemantics(t *testing.T) {
	c := NewContext()

	if v := evalOK(t, c, "1/0"); !math.IsInf(v, 1) {
		t.Errorf("Evaluate(1/0) = %v, want +Inf", v)
	}
	if v := evalOK(t, c, "-1/0"); !math.IsInf(v, -1) {
		t.Errorf("Evaluate(-1/0) = %v, want -Inf", v)
	}

	v := evalOK(t, c, "0/0")
	if !IsNaN(v) {
		t.Errorf("Evaluate(0/0) = %v, want NaN", v)
	}
	// Anomalies are values, not errors.
	if c.HasError() {
		t.Errorf("0/0 recorded error %q, want none", c.LastError())
	}
	if IsNaN(evalOK(t, c, "1/0")) {
		t.Error("IsNaN(1/0) = true, want false (it is Inf)")
	}
}

func TestEvaluate_NaNPropagates(t *testing.T) {
	c := NewContext()
	if v := evalOK(t, c, "sqrt(-1) + 100"); !IsNaN(v) {
		t.Errorf("Evaluate(sqrt(-1) + 100) = %v, want NaN", v)
	}
	if c.HasError() {
		t.Error("numeric anomaly set the error state")
	}
}

func TestEvaluate_Variables(t *testing.T) {
	c := NewContext()
	if err := c.Define("health", 30); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if err := c.Define("max_health", 120); err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	if got := evalOK(t, c, "health / max_health"); got != 0.25 {
		t.Errorf("Evaluate(health / max_health) = %v, want 0.25", got)
	}
}

func TestEvaluate_MissingVariableDefaultsToZero(t *testing.T) {
	c := NewContext()
	got := Evaluate(c, "undefined_var + 1")
	if got != 1.0 {
		t.Errorf("Evaluate(undefined_var + 1) = %v, want 1", got)
	}
	if c.HasError() {
		t.Errorf("missing variable recorded error %q, want none", c.LastError())
	}
}

func TestEvaluate_VariablesAreCaseSensitive(t *testing.T) {
	c := NewContext()
	c.Define("Power", 9)
	if got := evalOK(t, c, "power"); got != 0 {
		t.Errorf("Evaluate(power) = %v, want 0 (names are case-sensitive)", got)
	}
}

func TestEvaluate_ShortCircuit(t *testing.T) {
	c := NewContext()
	calls := 0
	c.RegisterFunction("probe", 0, 0, func([]float64) float64 {
		calls++
		return 1
	})

	if got := evalOK(t, c, "0 && probe()"); got != 0 {
		t.Errorf("Evaluate(0 && probe()) = %v, want 0", got)
	}
	if calls != 0 {
		t.Errorf("probe called %d times by dead && branch, want 0", calls)
	}

	if got := evalOK(t, c, "1 || probe()"); got != 1 {
		t.Errorf("Evaluate(1 || probe()) = %v, want 1", got)
	}
	if calls != 0 {
		t.Errorf("probe called %d times by dead || branch, want 0", calls)
	}

	// The live branch does invoke.
	evalOK(t, c, "1 && probe()")
	if calls != 1 {
		t.Errorf("probe called %d times by live && branch, want 1", calls)
	}
}

// Short-circuit is an evaluation policy only: parse-time validation still
// covers dead branches.
func TestEvaluate_DeadBranchStillFailsStaticChecks(t *testing.T) {
	c := NewContext()
	v := Evaluate(c, "0 && unknown_fn(1, 2)")
	if !IsNaN(v) {
		t.Errorf("Evaluate = %v, want NaN on parse failure", v)
	}
	if !c.HasError() {
		t.Error("unknown function in dead branch did not record an error")
	}
}

func TestEvaluate_TernaryLaziness(t *testing.T) {
	c := NewContext()
	calls := 0
	c.RegisterFunction("side_effect", 0, 0, func([]float64) float64 {
		calls++
		return -1
	})

	if got := evalOK(t, c, "1 ? 10 : side_effect()"); got != 10 {
		t.Errorf("Evaluate = %v, want 10", got)
	}
	if calls != 0 {
		t.Errorf("side_effect called %d times in unselected branch, want 0", calls)
	}

	if got := evalOK(t, c, "0 ? 10 : side_effect()"); got != -1 {
		t.Errorf("Evaluate = %v, want -1", got)
	}
	if calls != 1 {
		t.Errorf("side_effect called %d times in selected branch, want 1", calls)
	}
}

func TestEvaluate_Builtins(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"min(3, 5)", 3},
		{"max(3, 5)", 5},
		{"clamp(-5, 0, 10)", 0},
		{"clamp(15, 0, 10)", 10},
		{"clamp(5, 0, 10)", 5},
		{"floor(2.7)", 2},
		{"ceil(2.1)", 3},
		{"round(2.5)", 3},
		{"round(2.4)", 2},
		{"sqrt(16)", 4},
		{"pow(2, 8)", 256},
		{"abs(-3.5)", 3.5},
		{"log(e)", 1},
		{"exp(0)", 1},
		{"sin(0)", 0},
		{"cos(0)", 1},
		{"tan(0)", 0},
		{"asin(1)", math.Pi / 2},
		{"acos(1)", 0},
		{"atan(0)", 0},
		{"atan2(0, 1)", 0},
		{"atan2(1, 0)", math.Pi / 2},
		{"lerp(0, 10, 0.5)", 5},
		{"lerp(10, 20, 0)", 10},
		{"lerp(10, 20, 1)", 20},
		{"lerp(0, 10, 1.5)", 15}, // t is not clamped
	}

	c := NewContext()
	if err := c.SeedConstants(); err != nil {
		t.Fatalf("SeedConstants failed: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := evalOK(t, c, tt.input)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluate_CustomFunctionEagerArgs(t *testing.T) {
	c := NewContext()
	var got []float64
	c.RegisterFunction("tap", 1, -1, func(args []float64) float64 {
		got = append(got, args...)
		return float64(len(args))
	})

	if v := evalOK(t, c, "tap(1 + 1, 3 * 2, 0/0)"); v != 3 {
		t.Errorf("Evaluate = %v, want 3", v)
	}
	if len(got) != 3 || got[0] != 2 || got[1] != 6 || !math.IsNaN(got[2]) {
		t.Errorf("arguments = %v, want [2 6 NaN]", got)
	}
}

func TestEvaluate_CustomFunctionShadowsBuiltin(t *testing.T) {
	c := NewContext()
	c.RegisterFunction("sqrt", 1, 1, func(args []float64) float64 {
		return args[0] * 100
	})
	if got := evalOK(t, c, "sqrt(4)"); got != 400 {
		t.Errorf("Evaluate(sqrt(4)) with shadowing registration = %v, want 400", got)
	}
}

func TestEvaluate_ParseFailureContract(t *testing.T) {
	c := NewContext()

	v := Evaluate(c, "1 + * 2")
	if !IsNaN(v) {
		t.Errorf("Evaluate on syntax error = %v, want NaN", v)
	}
	if !c.HasError() {
		t.Fatal("syntax error did not record a message")
	}

	// A following successful operation clears the state, so stale errors
	// cannot be mistaken for failures of the current evaluation.
	if got := Evaluate(c, "2 + 2"); got != 4 {
		t.Errorf("Evaluate(2 + 2) = %v, want 4", got)
	}
	if c.HasError() {
		t.Errorf("error state survived a successful evaluation: %q", c.LastError())
	}
}

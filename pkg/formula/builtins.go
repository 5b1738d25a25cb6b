package formula

import (
	"math"
	"sort"
)

// builtin is an entry of the fixed built-in function table. The table is a
// closed set: names and arities never change at runtime, which lets the
// parser validate calls against it without a context round-trip.
type builtin struct {
	minArgs int
	maxArgs int
	fn      Func
}

var builtins = map[string]builtin{
	"min": {2, 2, func(args []float64) float64 {
		return math.Min(args[0], args[1])
	}},
	"max": {2, 2, func(args []float64) float64 {
		return math.Max(args[0], args[1])
	}},
	"clamp": {3, 3, func(args []float64) float64 {
		return clamp(args[0], args[1], args[2])
	}},
	"floor": {1, 1, func(args []float64) float64 {
		return math.Floor(args[0])
	}},
	"ceil": {1, 1, func(args []float64) float64 {
		return math.Ceil(args[0])
	}},
	"round": {1, 1, func(args []float64) float64 {
		return math.Round(args[0])
	}},
	"sqrt": {1, 1, func(args []float64) float64 {
		return math.Sqrt(args[0])
	}},
	"pow": {2, 2, func(args []float64) float64 {
		return math.Pow(args[0], args[1])
	}},
	"log": {1, 1, func(args []float64) float64 {
		return math.Log(args[0])
	}},
	"abs": {1, 1, func(args []float64) float64 {
		return math.Abs(args[0])
	}},
	"sin": {1, 1, func(args []float64) float64 {
		return math.Sin(args[0])
	}},
	"cos": {1, 1, func(args []float64) float64 {
		return math.Cos(args[0])
	}},
	"tan": {1, 1, func(args []float64) float64 {
		return math.Tan(args[0])
	}},
	"asin": {1, 1, func(args []float64) float64 {
		return math.Asin(args[0])
	}},
	"acos": {1, 1, func(args []float64) float64 {
		return math.Acos(args[0])
	}},
	"atan": {1, 1, func(args []float64) float64 {
		return math.Atan(args[0])
	}},
	"atan2": {2, 2, func(args []float64) float64 {
		return math.Atan2(args[0], args[1])
	}},
	"exp": {1, 1, func(args []float64) float64 {
		return math.Exp(args[0])
	}},
	"lerp": {3, 3, func(args []float64) float64 {
		return lerp(args[0], args[1], args[2])
	}},
}

// clamp bounds x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// lerp linearly interpolates from a to b by t. t is not clamped: values
// outside [0, 1] extrapolate, which designers rely on for overshoot curves.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// BuiltinNames returns the names of the built-in function table, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package formula

import (
	"math"
	"strconv"
)

// Format renders a result for display. precision is the number of digits
// after the decimal point; a negative precision uses the shortest
// representation that round-trips. NaN and infinities render as "NaN",
// "+Inf", and "-Inf".
func Format(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// IsNaN reports whether a result is NaN. Expressions produce NaN through
// ordinary arithmetic (0/0, sqrt of a negative); it is a value, not an
// error, and callers that care must test for it explicitly.
func IsNaN(v float64) bool {
	return math.IsNaN(v)
}

// IsInf reports whether a result is infinite in either direction.
func IsInf(v float64) bool {
	return math.IsInf(v, 0)
}

package formula

import (
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      string
	}{
		{3.14159, 2, "3.14"},
		{3.14159, 0, "3"},
		{1.0 / 3.0, 4, "0.3333"},
		{2, 3, "2.000"},
		{1.5, -1, "1.5"},
		{0.1, -1, "0.1"},
		{math.NaN(), 2, "NaN"},
		{math.Inf(1), 2, "+Inf"},
		{math.Inf(-1), -1, "-Inf"},
	}

	for _, tt := range tests {
		if got := Format(tt.v, tt.precision); got != tt.want {
			t.Errorf("Format(%v, %d) = %q, want %q", tt.v, tt.precision, got, tt.want)
		}
	}
}

func TestIsNaNIsInf(t *testing.T) {
	if !IsNaN(math.NaN()) {
		t.Error("IsNaN(NaN) = false")
	}
	if IsNaN(math.Inf(1)) {
		t.Error("IsNaN(+Inf) = true")
	}
	if !IsInf(math.Inf(1)) || !IsInf(math.Inf(-1)) {
		t.Error("IsInf on infinities = false")
	}
	if IsInf(math.NaN()) || IsInf(0) {
		t.Error("IsInf on non-infinite values = true")
	}
}

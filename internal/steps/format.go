package steps

import (
	"math"
	"strconv"
)

// FormatNumber renders a value for display. Whole numbers print without a
// decimal point; everything else is rounded to exactly two decimals.
// Only the display is rounded, callers keep computing with the raw value.
// Overflowed values print as "inf", "-inf" and "nan".
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	if x == math.Trunc(x) {
		if x == 0 {
			// Drops the sign of negative zero.
			return "0"
		}
		return strconv.FormatFloat(x, 'f', 0, 64)
	}
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func formatAll(v [4]float64) [4]string {
	var out [4]string
	for i, x := range v {
		out[i] = FormatNumber(x)
	}
	return out
}

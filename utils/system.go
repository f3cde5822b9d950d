package utils

import (
	"math"
)

// IsFinite reports whether none of vals is NaN or infinite.
func IsFinite(vals ...float64) bool {
	for _, f := range vals {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

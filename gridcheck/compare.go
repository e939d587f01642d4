package gridcheck

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the max norm tolerance used for coordinate comparisons
var DefaultTolerance = 1e5 * (math.Nextafter(1, 2) - 1)

// CompareVec reports whether a and b agree within eps in the max norm
func CompareVec(a, b []float64, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return floats.Distance(a, b, math.Inf(1)) < eps
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package scale

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Extent returns the minimum and maximum of values, ignoring NaN. ok is false when no
// value is a number.
func Extent(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return math.NaN(), math.NaN(), false
	}
	lo = floats.Min(values)
	if math.IsNaN(lo) {
		return math.NaN(), math.NaN(), false
	}
	return lo, floats.Max(values), true
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

// Adder accumulates float64 values with a running error term, so long sums of
// alternating-sign terms keep full precision. The zero value is an empty sum.
type Adder struct {
	s, t float64
}

// Add adds y to the sum.
func (a *Adder) Add(y float64) {
	s, t := twoSum(y, a.t)
	var rt float64
	a.s, rt = twoSum(s, a.s)
	a.t = rt
	if a.s != 0 {
		a.t += t
	} else {
		a.s = t
	}
}

// Value returns the current sum.
func (a *Adder) Value() float64 {
	return a.s
}

// Reset clears the sum.
func (a *Adder) Reset() {
	a.s, a.t = 0, 0
}

func twoSum(a, b float64) (float64, float64) {
	x := a + b
	bv := x - a
	av := x - bv
	return x, (a - av) + (b - bv)
}

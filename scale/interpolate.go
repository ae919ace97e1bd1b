// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package scale

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Interpolator returns a function that maps t in [0, 1] to a value between a and b.
// t outside [0, 1] extrapolates where the value type allows it.
type Interpolator[R any] func(a, b R) func(t float64) R

func InterpolateNumber(a, b float64) func(float64) float64 {
	return func(t float64) float64 {
		return a*(1-t) + b*t
	}
}

// InterpolateRound is InterpolateNumber rounded half up to an integer.
func InterpolateRound(a, b float64) func(float64) float64 {
	return func(t float64) float64 {
		return math.Floor(a*(1-t) + b*t + 0.5)
	}
}

// InterpolateRGB blends channels linearly in sRGB space.
func InterpolateRGB(a, b colorful.Color) func(float64) colorful.Color {
	return func(t float64) colorful.Color {
		return a.BlendRgb(b, t).Clamped()
	}
}

// InterpolateHCL blends in the cylindrical CIE-L*C*h° space along the shorter hue arc.
func InterpolateHCL(a, b colorful.Color) func(float64) colorful.Color {
	return func(t float64) colorful.Color {
		return a.BlendHcl(b, t).Clamped()
	}
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"math"

	"github.com/golang/geo/r3"
)

// cartesian converts spherical coordinates in radians to a unit vector.
func cartesian(lambda, phi float64) r3.Vector {
	cosPhi := math.Cos(phi)
	return r3.Vector{X: cosPhi * math.Cos(lambda), Y: cosPhi * math.Sin(lambda), Z: math.Sin(phi)}
}

// spherical converts a unit vector to spherical coordinates in radians.
func spherical(v r3.Vector) (float64, float64) {
	return math.Atan2(v.Y, v.X), asin(v.Z)
}

// normalize scales v to unit length. Unlike r3.Vector.Normalize, a zero vector yields
// NaN components.
func normalize(v r3.Vector) r3.Vector {
	return v.Mul(1 / v.Norm())
}

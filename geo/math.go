// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import "math"

const (
	epsilon  = 1e-6
	epsilon2 = 1e-12

	halfPi    = math.Pi / 2
	quarterPi = math.Pi / 4
	tau       = 2 * math.Pi

	degrees = 180 / math.Pi
	radians = math.Pi / 180
)

func asin(x float64) float64 {
	if x > 1 {
		return halfPi
	}
	if x < -1 {
		return -halfPi
	}
	return math.Asin(x)
}

func acos(x float64) float64 {
	if x > 1 {
		return 0
	}
	if x < -1 {
		return math.Pi
	}
	return math.Acos(x)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// round rounds to the nearest integer, with halves going towards positive infinity.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// wrapLongitude maps lambda into [-pi, pi] by whole turns.
func wrapLongitude(lambda float64) float64 {
	if math.Abs(lambda) > math.Pi {
		lambda -= round(lambda/tau) * tau
	}
	return lambda
}

func pointEqual(ax, ay, bx, by float64) bool {
	return math.Abs(ax-bx) < epsilon && math.Abs(ay-by) < epsilon
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import "math"

// Raw maps spherical coordinates in radians to unscaled planar coordinates.
type Raw interface {
	Project(lambda, phi float64) (x, y float64)
}

// InvertibleRaw is a Raw projection with an inverse.
type InvertibleRaw interface {
	Raw
	Invert(x, y float64) (lambda, phi float64)
}

// RawFunc adapts a function to the Raw interface.
type RawFunc func(lambda, phi float64) (float64, float64)

func (f RawFunc) Project(lambda, phi float64) (float64, float64) {
	return f(lambda, phi)
}

var (
	// Mercator is the spherical Mercator projection.
	Mercator InvertibleRaw = mercatorRaw{}
	// Equirectangular is the plate carrée projection.
	Equirectangular InvertibleRaw = equirectangularRaw{}
	// Orthographic projects the hemisphere facing the viewer as seen from infinity.
	Orthographic InvertibleRaw = orthographicRaw{}
)

type mercatorRaw struct{}

func (mercatorRaw) Project(lambda, phi float64) (float64, float64) {
	return lambda, math.Log(math.Tan((halfPi + phi) / 2))
}

func (mercatorRaw) Invert(x, y float64) (float64, float64) {
	return x, 2*math.Atan(math.Exp(y)) - halfPi
}

type equirectangularRaw struct{}

func (equirectangularRaw) Project(lambda, phi float64) (float64, float64) {
	return lambda, phi
}

func (equirectangularRaw) Invert(x, y float64) (float64, float64) {
	return x, y
}

type orthographicRaw struct{}

func (orthographicRaw) Project(lambda, phi float64) (float64, float64) {
	cosPhi := math.Cos(phi)
	return cosPhi * math.Sin(lambda), math.Sin(phi)
}

func (orthographicRaw) Invert(x, y float64) (float64, float64) {
	z := math.Hypot(x, y)
	c := asin(z)
	sc, cc := math.Sin(c), math.Cos(c)
	phi := 0.0
	if z != 0 {
		phi = asin(y * sc / z)
	}
	return math.Atan2(x*sc, z*cc), phi
}

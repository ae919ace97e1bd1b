// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import "math"

// affine scales, reflects, rotates by an angle and translates raw planar coordinates
// into screen coordinates with the y axis pointing down.
type affine struct {
	k, dx, dy, sx, sy float64
	rotated           bool
	a, b, ai, bi      float64
	ci, fi            float64
}

func newAffine(k, dx, dy, sx, sy, alpha float64) affine {
	t := affine{k: k, dx: dx, dy: dy, sx: sx, sy: sy}
	if alpha == 0 {
		return t
	}
	cosAlpha, sinAlpha := math.Cos(alpha), math.Sin(alpha)
	t.rotated = true
	t.a, t.b = cosAlpha*k, sinAlpha*k
	t.ai, t.bi = cosAlpha/k, sinAlpha/k
	t.ci = (sinAlpha*dy - cosAlpha*dx) / k
	t.fi = (sinAlpha*dx + cosAlpha*dy) / k
	return t
}

func (t affine) forward(x, y float64) (float64, float64) {
	x *= t.sx
	y *= t.sy
	if !t.rotated {
		return t.dx + t.k*x, t.dy - t.k*y
	}
	return t.a*x - t.b*y + t.dx, t.dy - t.b*x - t.a*y
}

func (t affine) inverse(x, y float64) (float64, float64) {
	if !t.rotated {
		return (x - t.dx) / t.k * t.sx, (t.dy - y) / t.k * t.sy
	}
	return t.sx * (t.ai*x - t.bi*y + t.ci), t.sy * (t.fi - t.bi*x - t.ai*y)
}

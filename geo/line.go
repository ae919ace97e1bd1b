// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import "github.com/golang/geo/r2"

// clipSegment clips the segment a-b to the rectangle [x0, x1] x [y0, y1] with the
// Liang-Barsky algorithm. cutA and cutB report whether the corresponding end point was
// moved onto the rectangle. ok is false when the segment misses the rectangle.
func clipSegment(ax, ay, bx, by, x0, y0, x1, y1 float64) (a, b r2.Point, cutA, cutB, ok bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := bx-ax, by-ay

	// clipEdge narrows [t0, t1] against the edge with offset r along direction d.
	clipEdge := func(r, d float64, lower bool) bool {
		if d == 0 {
			if lower {
				return r <= 0
			}
			return r >= 0
		}
		r /= d
		if (d < 0) == lower {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		} else {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		}
		return true
	}

	if !clipEdge(x0-ax, dx, true) || !clipEdge(x1-ax, dx, false) ||
		!clipEdge(y0-ay, dy, true) || !clipEdge(y1-ay, dy, false) {
		return a, b, false, false, false
	}

	a = r2.Point{X: ax, Y: ay}
	b = r2.Point{X: bx, Y: by}
	if t0 > 0 {
		a = r2.Point{X: ax + t0*dx, Y: ay + t0*dy}
		cutA = true
	}
	if t1 < 1 {
		b = r2.Point{X: ax + t1*dx, Y: ay + t1*dy}
		cutB = true
	}
	return a, b, cutA, cutB, true
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import "math"

// orientErrBound is Shewchuk's relative error bound for the 2D orientation determinant.
const orientErrBound = 3.3306690738754716e-16

// orientIfSure returns the orientation determinant when its sign can be trusted at
// double precision, and 0 otherwise.
func orientIfSure(px, py, rx, ry, qx, qy float64) float64 {
	l := (ry - py) * (qx - px)
	r := (rx - px) * (qy - py)
	if math.Abs(l-r) >= orientErrBound*math.Abs(l+r) {
		return l - r
	}
	return 0
}

// Orient reports whether r lies strictly clockwise of the directed line q->p.
// When the determinant is too close to zero, it is recomputed in each cyclic rotation
// of the inputs and the first certain result is used.
func Orient(rx, ry, qx, qy, px, py float64) bool {
	d := orientIfSure(px, py, rx, ry, qx, qy)
	if d == 0 {
		d = orientIfSure(rx, ry, qx, qy, px, py)
	}
	if d == 0 {
		d = orientIfSure(qx, qy, px, py, rx, ry)
	}
	return d < 0
}

// InCircle reports whether p lies strictly inside the circumcircle of triangle a, b, c.
// The triangle must be oriented as produced by the triangulation.
func InCircle(ax, ay, bx, by, cx, cy, px, py float64) bool {
	dx := ax - px
	dy := ay - py
	ex := bx - px
	ey := by - py
	fx := cx - px
	fy := cy - py

	ap := dx*dx + dy*dy
	bp := ex*ex + ey*ey
	cp := fx*fx + fy*fy

	return dx*(ey*cp-bp*fy)-dy*(ex*cp-bp*fx)+ap*(ex*fy-ey*fx) < 0
}

// Circumradius2 returns the squared circumradius of triangle a, b, c.
// Collinear triangles give +Inf or NaN.
func Circumradius2(ax, ay, bx, by, cx, cy float64) float64 {
	x, y := circumOffset(ax, ay, bx, by, cx, cy)
	return x*x + y*y
}

// Circumcenter returns the center of the circle through a, b and c.
func Circumcenter(ax, ay, bx, by, cx, cy float64) (float64, float64) {
	x, y := circumOffset(ax, ay, bx, by, cx, cy)
	return ax + x, ay + y
}

func circumOffset(ax, ay, bx, by, cx, cy float64) (float64, float64) {
	dx := bx - ax
	dy := by - ay
	ex := cx - ax
	ey := cy - ay

	bl := dx*dx + dy*dy
	cl := ex*ex + ey*ey
	d := 0.5 / (dx*ey - dy*ex)

	return (ey*bl - dy*cl) * d, (dx*cl - ex*bl) * d
}

func dist2(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}

// pseudoAngle increases monotonically with the real angle of (dx, dy) and maps it to
// [0, 1] without trigonometry.
func pseudoAngle(dx, dy float64) float64 {
	p := dx / (math.Abs(dx) + math.Abs(dy))
	if dy > 0 {
		return (3 - p) / 4
	}
	return (1 + p) / 4
}

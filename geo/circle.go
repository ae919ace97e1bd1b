// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

const circleDelta = 2 * radians

// ClipCircle clips to the small circle of the given radius in radians around the
// origin (0, 0). Geometry should be rotated first so that the origin is the center of
// the view.
func ClipCircle(radius float64) Clip {
	c := &circleClip{
		radius:        radius,
		cr:            math.Cos(radius),
		smallRadius:   math.Cos(radius) > 0,
		notHemisphere: math.Abs(math.Cos(radius)) > epsilon,
	}
	start := r2.Point{X: -math.Pi, Y: radius - math.Pi}
	if c.smallRadius {
		start = r2.Point{X: 0, Y: -radius}
	}
	sc := &sphereClip{
		visible: c.visible,
		newLine: c.newLine,
		interpolate: func(from, to *clipPoint, direction float64, s Stream) {
			circleStream(s, radius, circleDelta, direction, from, to)
		},
		compare: compareAntimeridian,
		start:   start,
	}
	return sc.wrap
}

type circleClip struct {
	radius        float64
	cr            float64
	smallRadius   bool
	notHemisphere bool
}

func (c *circleClip) visible(lambda, phi float64) bool {
	return math.Cos(lambda)*math.Cos(phi) > c.cr
}

// code returns the outcode of a point against the square circumscribing the circle.
func (c *circleClip) code(lambda, phi float64) int {
	r := c.radius
	if !c.smallRadius {
		r = math.Pi - c.radius
	}
	code := 0
	if lambda < -r {
		code |= 1
	} else if lambda > r {
		code |= 2
	}
	if phi < -r {
		code |= 4
	} else if phi > r {
		code |= 8
	}
	return code
}

// intersect returns the intersection of the arc a-b with the circle. With two set it
// returns both intersections, and n is 2 only when the second lies on the arc.
func (c *circleClip) intersect(a, b clipPoint, two bool) (q0, q1 clipPoint, n int) {
	pa := cartesian(a.x, a.y)
	pb := cartesian(b.x, b.y)

	n1 := r3.Vector{X: 1}
	n2 := pa.Cross(pb)
	n2n2 := n2.Dot(n2)
	n1n2 := n2.X
	determinant := n2n2 - n1n2*n1n2

	// Two polar points.
	if determinant == 0 {
		if two {
			return q0, q1, 0
		}
		return a, q1, 1
	}

	c1 := c.cr * n2n2 / determinant
	c2 := -c.cr * n1n2 / determinant
	u := n1.Cross(n2)
	A := n1.Mul(c1).Add(n2.Mul(c2))

	w := A.Dot(u)
	uu := u.Dot(u)
	t2 := w*w - uu*(A.Dot(A)-1)
	if t2 < 0 {
		return q0, q1, 0
	}

	t := math.Sqrt(t2)
	q0.x, q0.y = spherical(u.Mul((-w - t) / uu).Add(A))
	if !two {
		return q0, q1, 1
	}

	lambda0, lambda1 := a.x, b.x
	phi0, phi1 := a.y, b.y
	if lambda1 < lambda0 {
		lambda0, lambda1 = lambda1, lambda0
	}
	delta := lambda1 - lambda0
	polar := math.Abs(delta-math.Pi) < epsilon
	meridian := polar || delta < epsilon
	if !polar && phi1 < phi0 {
		phi0, phi1 = phi1, phi0
	}

	var onArc bool
	switch {
	case polar:
		bound := phi1
		if math.Abs(q0.x-lambda0) < epsilon {
			bound = phi0
		}
		onArc = (phi0+phi1 > 0) != (q0.y < bound)
	case meridian:
		onArc = phi0 <= q0.y && q0.y <= phi1
	default:
		onArc = (delta > math.Pi) != (lambda0 <= q0.x && q0.x <= lambda1)
	}
	if !onArc {
		return q0, q1, 0
	}
	q1.x, q1.y = spherical(u.Mul((-w + t) / uu).Add(A))
	return q0, q1, 2
}

func (c *circleClip) newLine(s Stream) lineClipper {
	return &circleLine{c: c, s: s}
}

type circleLine struct {
	c *circleClip
	s Stream

	point0    clipPoint
	hasPoint0 bool
	c0        int
	v0, v00   bool
	cleanFlag int
}

func (l *circleLine) LineStart() {
	l.v00, l.v0 = false, false
	l.cleanFlag = 1
}

func (l *circleLine) Point(lambda, phi float64) {
	c := l.c
	point1 := clipPoint{x: lambda, y: phi}
	v := c.visible(lambda, phi)

	code := 0
	switch {
	case c.smallRadius && !v:
		code = c.code(lambda, phi)
	case !c.smallRadius && v:
		if lambda < 0 {
			code = c.code(lambda+math.Pi, phi)
		} else {
			code = c.code(lambda-math.Pi, phi)
		}
	}

	if !l.hasPoint0 {
		l.v00, l.v0 = v, v
		if v {
			l.s.LineStart()
		}
	}

	if v != l.v0 {
		q, _, n := c.intersect(l.point0, point1, false)
		if n == 0 || pointEqual(l.point0.x, l.point0.y, q.x, q.y) ||
			pointEqual(point1.x, point1.y, q.x, q.y) {
			point1.marked = true
		}

		l.cleanFlag = 0
		if v {
			// Entering.
			l.s.LineStart()
			q, _, n = c.intersect(point1, l.point0, false)
			if n == 0 {
				q = point1
			}
			pointMarked(l.s, q.x, q.y)
		} else {
			// Exiting.
			q, _, n = c.intersect(l.point0, point1, false)
			if n == 0 {
				q = l.point0
			}
			pointMarked(l.s, q.x, q.y)
			l.s.LineEnd()
		}
		l.point0 = q
	} else if c.notHemisphere && l.hasPoint0 && c.smallRadius != v {
		// The arc may pass through the circle even though both ends lie outside it.
		if code&l.c0 == 0 {
			if t0, t1, n := c.intersect(point1, l.point0, true); n == 2 {
				l.cleanFlag = 0
				if c.smallRadius {
					l.s.LineStart()
					pointMarked(l.s, t0.x, t0.y)
					pointMarked(l.s, t1.x, t1.y)
					l.s.LineEnd()
				} else {
					pointMarked(l.s, t1.x, t1.y)
					l.s.LineEnd()
					l.s.LineStart()
					pointMarked(l.s, t0.x, t0.y)
				}
			}
		}
	}

	if v && (!l.hasPoint0 || !pointEqual(l.point0.x, l.point0.y, point1.x, point1.y)) {
		if point1.marked {
			pointMarked(l.s, point1.x, point1.y)
		} else {
			l.s.Point(point1.x, point1.y)
		}
	}

	l.point0, l.hasPoint0 = point1, true
	l.v0, l.c0 = v, code
}

func (l *circleLine) LineEnd() {
	if l.v0 {
		l.s.LineEnd()
	}
	l.hasPoint0 = false
}

func (l *circleLine) PolygonStart() {}
func (l *circleLine) PolygonEnd()   {}

// clean reports 2 when the line started and ended inside the circle.
func (l *circleLine) clean() int {
	if l.v00 && l.v0 {
		return l.cleanFlag | 2
	}
	return l.cleanFlag
}

// circleStream streams the small circle of the given radius around the origin from
// one point to another, or the whole circle when from is nil.
func circleStream(s Stream, radius, delta, direction float64, from, to *clipPoint) {
	if delta == 0 {
		return
	}
	cosRadius, sinRadius := math.Cos(radius), math.Sin(radius)
	step := direction * delta

	var t0, t1 float64
	if from == nil {
		t0 = radius + direction*tau
		t1 = radius - step/2
	} else {
		t0 = circleRadius(cosRadius, from)
		t1 = circleRadius(cosRadius, to)
		if direction > 0 && t0 < t1 || direction <= 0 && t0 > t1 {
			t0 += direction * tau
		}
	}

	for t := t0; direction > 0 && t > t1 || direction <= 0 && t < t1; t -= step {
		x, y := spherical(r3.Vector{X: cosRadius, Y: -sinRadius * math.Cos(t), Z: -sinRadius * math.Sin(t)})
		s.Point(x, y)
	}
}

// circleRadius returns the angle of p around the circle center.
func circleRadius(cosRadius float64, p *clipPoint) float64 {
	v := cartesian(p.x, p.y)
	v.X -= cosRadius
	v = normalize(v)
	radius := acos(-v.Y)
	if -v.Z < 0 {
		radius = -radius
	}
	return math.Mod(radius+tau-epsilon, tau)
}

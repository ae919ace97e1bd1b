// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"math"

	"github.com/golang/geo/r2"
)

var antimeridianClip = &sphereClip{
	visible:     func(lambda, phi float64) bool { return true },
	newLine:     newAntimeridianLine,
	interpolate: antimeridianInterpolate,
	compare:     compareAntimeridian,
	start:       r2.Point{X: -math.Pi, Y: -halfPi},
}

// ClipAntimeridian cuts lines and polygons at the antimeridian so that nothing wraps
// across the edge of a cylindrical map. Coordinates are in radians.
func ClipAntimeridian() Clip {
	return antimeridianClip.wrap
}

type antimeridianLine struct {
	s                    Stream
	lambda0, phi0, sign0 float64
	cleanFlag            int
}

func newAntimeridianLine(s Stream) lineClipper {
	return &antimeridianLine{s: s, lambda0: math.NaN(), phi0: math.NaN(), sign0: math.NaN()}
}

func (l *antimeridianLine) LineStart() {
	l.s.LineStart()
	l.cleanFlag = 1
}

func (l *antimeridianLine) Point(lambda1, phi1 float64) {
	sign1 := -math.Pi
	if lambda1 > 0 {
		sign1 = math.Pi
	}
	delta := math.Abs(lambda1 - l.lambda0)

	switch {
	case math.Abs(delta-math.Pi) < epsilon:
		// Crosses a pole.
		if (l.phi0+phi1)/2 > 0 {
			l.phi0 = halfPi
		} else {
			l.phi0 = -halfPi
		}
		pointMarked(l.s, l.lambda0, l.phi0)
		pointMarked(l.s, l.sign0, l.phi0)
		l.s.LineEnd()
		l.s.LineStart()
		pointMarked(l.s, sign1, l.phi0)
		pointMarked(l.s, lambda1, l.phi0)
		l.cleanFlag = 0
	case l.sign0 != sign1 && delta >= math.Pi:
		// Crosses the antimeridian.
		if math.Abs(l.lambda0-l.sign0) < epsilon {
			l.lambda0 -= l.sign0 * epsilon
		}
		if math.Abs(lambda1-sign1) < epsilon {
			lambda1 -= sign1 * epsilon
		}
		l.phi0 = antimeridianIntersect(l.lambda0, l.phi0, lambda1, phi1)
		pointMarked(l.s, l.sign0, l.phi0)
		l.s.LineEnd()
		l.s.LineStart()
		pointMarked(l.s, sign1, l.phi0)
		l.cleanFlag = 0
	}

	l.lambda0, l.phi0 = lambda1, phi1
	l.s.Point(lambda1, phi1)
	l.sign0 = sign1
}

func (l *antimeridianLine) LineEnd() {
	l.s.LineEnd()
	l.lambda0, l.phi0 = math.NaN(), math.NaN()
}

func (l *antimeridianLine) PolygonStart() {}
func (l *antimeridianLine) PolygonEnd()   {}

// clean reports 2 when the line crossed the antimeridian, so that its first and last
// pieces, which lie on the same side, get joined.
func (l *antimeridianLine) clean() int {
	return 2 - l.cleanFlag
}

// antimeridianIntersect returns the latitude where the great arc between two points
// crosses the antimeridian.
func antimeridianIntersect(lambda0, phi0, lambda1, phi1 float64) float64 {
	sinLambda0Lambda1 := math.Sin(lambda0 - lambda1)
	if math.Abs(sinLambda0Lambda1) <= epsilon {
		return (phi0 + phi1) / 2
	}
	cosPhi0, cosPhi1 := math.Cos(phi0), math.Cos(phi1)
	return math.Atan((math.Sin(phi0)*cosPhi1*math.Sin(lambda1) -
		math.Sin(phi1)*cosPhi0*math.Sin(lambda0)) /
		(cosPhi0 * cosPhi1 * sinLambda0Lambda1))
}

func antimeridianInterpolate(from, to *clipPoint, direction float64, s Stream) {
	switch {
	case from == nil:
		phi := direction * halfPi
		s.Point(-math.Pi, phi)
		s.Point(0, phi)
		s.Point(math.Pi, phi)
		s.Point(math.Pi, 0)
		s.Point(math.Pi, -phi)
		s.Point(0, -phi)
		s.Point(-math.Pi, -phi)
		s.Point(-math.Pi, 0)
		s.Point(-math.Pi, phi)
	case math.Abs(from.x-to.x) > epsilon:
		lambda := -math.Pi
		if from.x < to.x {
			lambda = math.Pi
		}
		phi := direction * lambda / 2
		s.Point(-lambda, phi)
		s.Point(0, phi)
		s.Point(lambda, phi)
	default:
		s.Point(to.x, to.y)
	}
}

// compareAntimeridian orders points on the antimeridian going up the western edge
// and down the eastern one.
func compareAntimeridian(a, b *clipPoint) float64 {
	return antimeridianKey(a) - antimeridianKey(b)
}

func antimeridianKey(p *clipPoint) float64 {
	if p.x < 0 {
		return p.y - halfPi - epsilon
	}
	return halfPi - p.y
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package path

import (
	"math"

	"github.com/2dChan/choropleth/geo"
	"github.com/golang/geo/r2"
)

// areaStream sums the absolute shoelace area of each polygon, twice over.
type areaStream struct {
	sum     geo.Adder
	ringSum geo.Adder

	inPolygon bool
	inRing    bool
	first     bool
	x00, y00  float64
	x0, y0    float64
}

func (s *areaStream) PolygonStart() { s.inPolygon = true }

func (s *areaStream) PolygonEnd() {
	s.inPolygon = false
	s.sum.Add(math.Abs(s.ringSum.Value()))
	s.ringSum.Reset()
}

func (s *areaStream) LineStart() {
	if s.inPolygon {
		s.inRing = true
		s.first = true
	}
}

func (s *areaStream) LineEnd() {
	if s.inRing && !s.first {
		s.point(s.x00, s.y00)
	}
	s.inRing = false
}

func (s *areaStream) Point(x, y float64) {
	switch {
	case !s.inRing:
	case s.first:
		s.first = false
		s.x00, s.y00, s.x0, s.y0 = x, y, x, y
	default:
		s.point(x, y)
	}
}

func (s *areaStream) point(x, y float64) {
	s.ringSum.Add(s.y0*x - s.x0*y)
	s.x0, s.y0 = x, y
}

// centroidStream accumulates point, line and area moments.
type centroidStream struct {
	x0, y0, z0 float64 // points
	x1, y1, z1 float64 // lines
	x2, y2, z2 float64 // polygons

	inPolygon bool
	inLine    bool
	first     bool
	xs, ys    float64 // first point of the ring
	xp, yp    float64 // previous point
}

func (s *centroidStream) PolygonStart() { s.inPolygon = true }
func (s *centroidStream) PolygonEnd()   { s.inPolygon = false }

func (s *centroidStream) LineStart() {
	s.inLine = true
	s.first = true
}

func (s *centroidStream) LineEnd() {
	if s.inPolygon && !s.first {
		s.ringPoint(s.xs, s.ys)
	}
	s.inLine = false
}

func (s *centroidStream) Point(x, y float64) {
	switch {
	case !s.inLine:
		s.addPoint(x, y)
	case s.first:
		s.first = false
		s.xs, s.ys = x, y
		s.xp, s.yp = x, y
		s.addPoint(x, y)
	case s.inPolygon:
		s.ringPoint(x, y)
	default:
		s.linePoint(x, y)
	}
}

func (s *centroidStream) addPoint(x, y float64) {
	s.x0 += x
	s.y0 += y
	s.z0++
}

func (s *centroidStream) linePoint(x, y float64) {
	z := math.Hypot(x-s.xp, y-s.yp)
	s.x1 += z * (s.xp + x) / 2
	s.y1 += z * (s.yp + y) / 2
	s.z1 += z
	s.xp, s.yp = x, y
	s.addPoint(x, y)
}

func (s *centroidStream) ringPoint(x, y float64) {
	xp, yp := s.xp, s.yp
	s.linePoint(x, y)

	z := yp*x - xp*y
	s.x2 += z * (xp + x)
	s.y2 += z * (yp + y)
	s.z2 += z * 3
}

func (s *centroidStream) result() r2.Point {
	switch {
	case s.z2 != 0:
		return r2.Point{X: s.x2 / s.z2, Y: s.y2 / s.z2}
	case s.z1 != 0:
		return r2.Point{X: s.x1 / s.z1, Y: s.y1 / s.z1}
	case s.z0 != 0:
		return r2.Point{X: s.x0 / s.z0, Y: s.y0 / s.z0}
	}
	return r2.Point{X: math.NaN(), Y: math.NaN()}
}

// lengthStream sums segment lengths, closing polygon rings.
type lengthStream struct {
	sum geo.Adder

	inPolygon bool
	inLine    bool
	first     bool
	x00, y00  float64
	x0, y0    float64
}

func (s *lengthStream) PolygonStart() { s.inPolygon = true }
func (s *lengthStream) PolygonEnd()   { s.inPolygon = false }

func (s *lengthStream) LineStart() {
	s.inLine = true
	s.first = true
}

func (s *lengthStream) LineEnd() {
	if s.inPolygon && !s.first {
		s.point(s.x00, s.y00)
	}
	s.inLine = false
}

func (s *lengthStream) Point(x, y float64) {
	switch {
	case !s.inLine:
	case s.first:
		s.first = false
		s.x00, s.y00, s.x0, s.y0 = x, y, x, y
	default:
		s.point(x, y)
	}
}

func (s *lengthStream) point(x, y float64) {
	s.sum.Add(math.Hypot(s.x0-x, s.y0-y))
	s.x0, s.y0 = x, y
}

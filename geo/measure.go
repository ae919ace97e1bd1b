// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s2"
)

// Distance returns the great-circle distance in radians between two points given as
// longitude and latitude in degrees.
func Distance(a, b r2.Point) float64 {
	return lonLatPoint(a.X, a.Y).Distance(lonLatPoint(b.X, b.Y)).Radians()
}

func lonLatPoint(lon, lat float64) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
}

// Length returns the total great-circle length in radians of the lines and polygon
// rings in src. Rings are measured closed. Points contribute nothing.
func Length(src Source) float64 {
	var s lengthStream
	src.StreamTo(&s)
	return s.sum.Value()
}

type lengthStream struct {
	sum       Adder
	inPolygon bool
	inLine    bool

	first, prev s2.Point
	n           int
}

func (s *lengthStream) Point(lon, lat float64) {
	if !s.inLine {
		return
	}
	p := lonLatPoint(lon, lat)
	if s.n == 0 {
		s.first = p
	} else {
		s.sum.Add(s.prev.Distance(p).Radians())
	}
	s.prev = p
	s.n++
}

func (s *lengthStream) LineStart() {
	s.inLine = true
	s.n = 0
}

func (s *lengthStream) LineEnd() {
	if s.inPolygon && s.n > 1 {
		s.sum.Add(s.prev.Distance(s.first).Radians())
	}
	s.inLine = false
}

func (s *lengthStream) PolygonStart() { s.inPolygon = true }
func (s *lengthStream) PolygonEnd()   { s.inPolygon = false }

// Area returns the spherical area in steradians of the polygons in src. A ring wound
// clockwise encloses the smaller area, so a ring wound the other way encloses the rest
// of the sphere. Points and lines contribute nothing.
func Area(src Source) float64 {
	var s areaStream
	src.StreamTo(&s)
	return s.sum.Value() * 2
}

type areaStream struct {
	sum     Adder
	ringSum Adder

	inPolygon bool
	inRing    bool
	first     bool

	lambda00, phi00     float64
	lambda0, cos0, sin0 float64
}

func (s *areaStream) PolygonStart() {
	s.inPolygon = true
	s.ringSum.Reset()
}

func (s *areaStream) PolygonEnd() {
	ring := s.ringSum.Value()
	if ring < 0 {
		ring += tau
	}
	s.sum.Add(ring)
	s.inPolygon = false
}

func (s *areaStream) LineStart() {
	if s.inPolygon {
		s.inRing = true
		s.first = true
	}
}

func (s *areaStream) LineEnd() {
	if s.inRing && !s.first {
		s.point(s.lambda00, s.phi00)
	}
	s.inRing = false
}

func (s *areaStream) Point(lon, lat float64) {
	if !s.inRing {
		return
	}
	if s.first {
		s.first = false
		s.lambda00, s.phi00 = lon, lat
		phi := lat*radians/2 + quarterPi
		s.lambda0 = lon * radians
		s.sin0, s.cos0 = math.Sincos(phi)
		return
	}
	s.point(lon, lat)
}

func (s *areaStream) point(lon, lat float64) {
	lambda := lon * radians
	phi := lat*radians/2 + quarterPi

	dLambda := lambda - s.lambda0
	sd := 1.0
	if dLambda < 0 {
		sd = -1
	}
	adLambda := sd * dLambda
	sinPhi, cosPhi := math.Sincos(phi)
	k := s.sin0 * sinPhi
	u := s.cos0*cosPhi + k*math.Cos(adLambda)
	v := k * sd * math.Sin(adLambda)
	s.ringSum.Add(math.Atan2(v, u))

	s.lambda0, s.cos0, s.sin0 = lambda, cosPhi, sinPhi
}

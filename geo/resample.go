// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"math"

	"github.com/golang/geo/r3"
)

const resampleMaxDepth = 16

var cosMinDistance = math.Cos(30 * radians)

type projectFunc func(lambda, phi float64) (float64, float64)

// resample returns a stream wrapper that projects points and adaptively subdivides
// lines so that the projected path stays within sqrt(delta2) of the true curve.
// A zero delta2 only projects.
func resample(project projectFunc, delta2 float64) Clip {
	if delta2 == 0 {
		return func(sink Stream) Stream {
			return &projectStream{Stream: sink, project: project}
		}
	}
	return func(sink Stream) Stream {
		return &resampleStream{project: project, delta2: delta2, sink: sink}
	}
}

type projectStream struct {
	Stream
	project projectFunc
}

func (s *projectStream) Point(lambda, phi float64) {
	s.Stream.Point(s.project(lambda, phi))
}

// resampleVertex is a point both projected and on the unit sphere.
type resampleVertex struct {
	x, y   float64
	lambda float64
	v      r3.Vector
}

type resampleStream struct {
	project projectFunc
	delta2  float64
	sink    Stream

	inPolygon bool
	inLine    bool
	ringStart bool

	first resampleVertex
	prev  resampleVertex
}

func (s *resampleStream) Point(lambda, phi float64) {
	switch {
	case s.inLine && s.ringStart:
		s.linePoint(lambda, phi)
		s.first = s.prev
		s.ringStart = false
	case s.inLine:
		s.linePoint(lambda, phi)
	default:
		s.sink.Point(s.project(lambda, phi))
	}
}

func (s *resampleStream) LineStart() {
	s.inLine = true
	s.ringStart = s.inPolygon
	s.prev = resampleVertex{x: math.NaN()}
	s.sink.LineStart()
}

func (s *resampleStream) LineEnd() {
	if s.inPolygon && !s.ringStart {
		s.lineTo(s.prev, s.first, resampleMaxDepth)
	}
	s.inLine = false
	s.ringStart = false
	s.sink.LineEnd()
}

func (s *resampleStream) PolygonStart() {
	s.sink.PolygonStart()
	s.inPolygon = true
}

func (s *resampleStream) PolygonEnd() {
	s.sink.PolygonEnd()
	s.inPolygon = false
}

func (s *resampleStream) linePoint(lambda, phi float64) {
	x, y := s.project(lambda, phi)
	next := resampleVertex{x: x, y: y, lambda: lambda, v: cartesian(lambda, phi)}
	s.lineTo(s.prev, next, resampleMaxDepth)
	s.prev = next
	s.sink.Point(x, y)
}

// lineTo streams the intermediate points between p0 and p1, excluding both.
func (s *resampleStream) lineTo(p0, p1 resampleVertex, depth int) {
	dx := p1.x - p0.x
	dy := p1.y - p0.y
	d2 := dx*dx + dy*dy
	if !(d2 > 4*s.delta2) || depth <= 0 {
		return
	}
	depth--

	sum := p0.v.Add(p1.v)
	m := sum.Norm()
	c := sum.Z / m
	phi2 := asin(c)
	lambda2 := math.Atan2(sum.Y, sum.X)
	if math.Abs(math.Abs(c)-1) < epsilon || math.Abs(p0.lambda-p1.lambda) < epsilon {
		lambda2 = (p0.lambda + p1.lambda) / 2
	}
	x2, y2 := s.project(lambda2, phi2)
	dx2 := x2 - p0.x
	dy2 := y2 - p0.y
	dz := dy*dx2 - dx*dy2

	if dz*dz/d2 > s.delta2 || // perpendicular projected distance
		math.Abs((dx*dx2+dy*dy2)/d2-0.5) > 0.3 || // midpoint close to an end
		p0.v.Dot(p1.v) < cosMinDistance { // angular distance
		mid := resampleVertex{
			x: x2, y: y2, lambda: lambda2,
			v: r3.Vector{X: sum.X / m, Y: sum.Y / m, Z: c},
		}
		s.lineTo(p0, mid, depth)
		s.sink.Point(x2, y2)
		s.lineTo(mid, p1, depth)
	}
}

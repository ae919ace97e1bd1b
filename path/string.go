// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package path

import (
	"strings"
)

type pointState int

const (
	pointNone  pointState = iota // outside a line, points are drawn as circles
	pointFirst                   // first point of a line
	pointNext
)

// stringStream writes SVG path data.
type stringStream struct {
	buf       strings.Builder
	f         formatter
	radius    float64
	inPolygon bool
	state     pointState
	circle    string
}

func (s *stringStream) reset() {
	s.inPolygon = false
	s.state = pointNone
}

func (s *stringStream) PolygonStart() { s.inPolygon = true }
func (s *stringStream) PolygonEnd()   { s.inPolygon = false }
func (s *stringStream) LineStart()    { s.state = pointFirst }

func (s *stringStream) LineEnd() {
	if s.inPolygon {
		s.buf.WriteByte('Z')
	}
	s.state = pointNone
}

func (s *stringStream) Point(x, y float64) {
	switch s.state {
	case pointFirst:
		s.f.point(&s.buf, 'M', x, y)
		s.state = pointNext
	case pointNext:
		s.f.point(&s.buf, 'L', x, y)
	default:
		s.f.point(&s.buf, 'M', x, y)
		s.buf.WriteString(s.circlePath())
	}
}

// circlePath returns the relative path of a circle around the current point.
func (s *stringStream) circlePath() string {
	if s.circle != "" {
		return s.circle
	}
	var b strings.Builder
	r := s.radius
	b.WriteString("m0,")
	s.f.number(&b, r)
	b.WriteByte('a')
	s.f.number(&b, r)
	b.WriteByte(',')
	s.f.number(&b, r)
	b.WriteString(" 0 1,1 0,")
	s.f.number(&b, -2*r)
	b.WriteByte('a')
	s.f.number(&b, r)
	b.WriteByte(',')
	s.f.number(&b, r)
	b.WriteString(" 0 1,1 0,")
	s.f.number(&b, 2*r)
	b.WriteByte('z')
	s.circle = b.String()
	return s.circle
}

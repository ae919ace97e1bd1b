// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"slices"

	"github.com/golang/geo/r2"
)

// Clip wraps a sink so that geometry streamed into the result reaches the sink clipped.
type Clip func(sink Stream) Stream

// clipPoint is a buffered point. Marked points lie on the clip boundary.
type clipPoint struct {
	x, y   float64
	marked bool
}

// markedPointer is implemented by streams that keep the boundary marker of a point.
type markedPointer interface {
	markedPoint(x, y float64)
}

// pointMarked emits a point on the clip boundary.
func pointMarked(s Stream, x, y float64) {
	if m, ok := s.(markedPointer); ok {
		m.markedPoint(x, y)
		return
	}
	s.Point(x, y)
}

// clipBuffer collects the lines a clipped ring is cut into.
type clipBuffer struct {
	lines [][]clipPoint
}

func (b *clipBuffer) Point(x, y float64) {
	b.add(clipPoint{x: x, y: y})
}

func (b *clipBuffer) markedPoint(x, y float64) {
	b.add(clipPoint{x: x, y: y, marked: true})
}

func (b *clipBuffer) add(p clipPoint) {
	if len(b.lines) == 0 {
		return
	}
	last := len(b.lines) - 1
	b.lines[last] = append(b.lines[last], p)
}

func (b *clipBuffer) LineStart() {
	b.lines = append(b.lines, nil)
}

func (b *clipBuffer) LineEnd()      {}
func (b *clipBuffer) PolygonStart() {}
func (b *clipBuffer) PolygonEnd()   {}

// rejoin joins the last line to the first one, for rings whose first point is visible.
func (b *clipBuffer) rejoin() {
	if n := len(b.lines); n > 1 {
		merged := append(b.lines[n-1], b.lines[0]...)
		b.lines = append(b.lines[1:n-1], merged)
	}
}

func (b *clipBuffer) result() [][]clipPoint {
	lines := b.lines
	b.lines = nil
	return lines
}

// lineClipper clips lines streamed into it. clean reports 1 when the last line had no
// intersections and 2 when its first and last segments must be joined.
type lineClipper interface {
	Stream
	clean() int
}

// interpolateFunc streams the clip boundary from one intersection to another in the
// given direction, or the whole boundary when from is nil.
type interpolateFunc func(from, to *clipPoint, direction float64, s Stream)

// compareFunc orders intersections along the clip boundary.
type compareFunc func(a, b *clipPoint) float64

// sphereClip describes a clip region on the sphere.
type sphereClip struct {
	visible     func(lambda, phi float64) bool
	newLine     func(s Stream) lineClipper
	interpolate interpolateFunc
	compare     compareFunc
	// start is a point whose containment in a polygon decides whether the clip region
	// itself must be emitted when no ring crosses the boundary.
	start r2.Point
}

func (c *sphereClip) wrap(sink Stream) Stream {
	buffer := &clipBuffer{}
	return &sphereClipStream{
		c:          c,
		sink:       sink,
		line:       c.newLine(sink),
		ringBuffer: buffer,
		ringSink:   c.newLine(buffer),
	}
}

type sphereClipStream struct {
	c    *sphereClip
	sink Stream

	line       lineClipper
	ringBuffer *clipBuffer
	ringSink   lineClipper

	inPolygon      bool
	inLine         bool
	polygonStarted bool

	polygon  [][]r2.Point
	segments [][]clipPoint
	ring     []r2.Point
}

func (cs *sphereClipStream) Point(lambda, phi float64) {
	switch {
	case cs.inPolygon:
		cs.pointRing(lambda, phi)
	case cs.inLine:
		cs.line.Point(lambda, phi)
	case cs.c.visible(lambda, phi):
		cs.sink.Point(lambda, phi)
	}
}

func (cs *sphereClipStream) LineStart() {
	if cs.inPolygon {
		cs.ringSink.LineStart()
		cs.ring = cs.ring[:0:0]
		return
	}
	cs.inLine = true
	cs.line.LineStart()
}

func (cs *sphereClipStream) LineEnd() {
	if cs.inPolygon {
		cs.ringEnd()
		return
	}
	cs.inLine = false
	cs.line.LineEnd()
}

func (cs *sphereClipStream) PolygonStart() {
	cs.inPolygon = true
	cs.segments = nil
	cs.polygon = nil
}

func (cs *sphereClipStream) PolygonEnd() {
	cs.inPolygon = false

	startInside := polygonContains(cs.polygon, cs.c.start)
	switch {
	case len(cs.segments) > 0:
		cs.startPolygon()
		rejoin(cs.segments, cs.c.compare, startInside, cs.c.interpolate, cs.sink)
	case startInside:
		cs.startPolygon()
		cs.sink.LineStart()
		cs.c.interpolate(nil, nil, 1, cs.sink)
		cs.sink.LineEnd()
	}
	if cs.polygonStarted {
		cs.sink.PolygonEnd()
		cs.polygonStarted = false
	}
	cs.segments = nil
	cs.polygon = nil
}

func (cs *sphereClipStream) startPolygon() {
	if !cs.polygonStarted {
		cs.sink.PolygonStart()
		cs.polygonStarted = true
	}
}

func (cs *sphereClipStream) pointRing(lambda, phi float64) {
	cs.ring = append(cs.ring, r2.Point{X: lambda, Y: phi})
	cs.ringSink.Point(lambda, phi)
}

func (cs *sphereClipStream) ringEnd() {
	if len(cs.ring) == 0 {
		cs.ringSink.LineEnd()
		cs.ringBuffer.result()
		return
	}
	first := cs.ring[0]
	cs.pointRing(first.X, first.Y)
	cs.ringSink.LineEnd()

	clean := cs.ringSink.clean()
	ringSegments := cs.ringBuffer.result()

	cs.polygon = append(cs.polygon, cs.ring[:len(cs.ring)-1])
	cs.ring = nil

	n := len(ringSegments)
	if n == 0 {
		return
	}

	// No intersections.
	if clean&1 != 0 {
		segment := ringSegments[0]
		if m := len(segment) - 1; m > 0 {
			cs.startPolygon()
			cs.sink.LineStart()
			for _, p := range segment[:m] {
				cs.sink.Point(p.x, p.y)
			}
			cs.sink.LineEnd()
		}
		return
	}

	// Rejoin connected segments.
	if n > 1 && clean&2 != 0 {
		merged := append(slices.Clone(ringSegments[n-1]), ringSegments[0]...)
		ringSegments = append(ringSegments[1:n-1], merged)
	}

	for _, segment := range ringSegments {
		if len(segment) > 1 {
			cs.segments = append(cs.segments, segment)
		}
	}
}

// intersection is a node in the doubly linked lists of subject and clip intersections.
type intersection struct {
	x    clipPoint
	z    []clipPoint // subject segment, nil for clip nodes
	o    *intersection
	e    bool // entry
	v    bool // visited
	n, p *intersection
}

// rejoin links clipped polygon segments into closed rings, following the clip
// boundary between them.
func rejoin(segments [][]clipPoint, compare compareFunc, startInside bool,
	interpolate interpolateFunc, s Stream) {
	var subject, clip []*intersection

	for _, segment := range segments {
		n := len(segment) - 1
		if n <= 0 {
			continue
		}
		p0, p1 := segment[0], segment[n]

		if pointEqual(p0.x, p0.y, p1.x, p1.y) {
			if !p0.marked && !p1.marked {
				s.LineStart()
				for _, p := range segment[:n] {
					s.Point(p.x, p.y)
				}
				s.LineEnd()
				continue
			}
			// Degenerate ring touching the boundary: nudge the end point.
			segment[n].x += 2 * epsilon
			p1 = segment[n]
		}

		x := &intersection{x: p0, z: segment, e: true}
		x.o = &intersection{x: p0, o: x}
		subject = append(subject, x)
		clip = append(clip, x.o)

		x = &intersection{x: p1, z: segment}
		x.o = &intersection{x: p1, o: x, e: true}
		subject = append(subject, x)
		clip = append(clip, x.o)
	}

	if len(subject) == 0 {
		return
	}

	slices.SortStableFunc(clip, func(a, b *intersection) int {
		return int(sign(compare(&a.x, &b.x)))
	})
	link(subject)
	link(clip)

	for _, c := range clip {
		startInside = !startInside
		c.e = startInside
	}

	start := subject[0]
	for {
		current := start
		isSubject := true
		for current.v {
			current = current.n
			if current == start {
				return
			}
		}
		points := current.z
		s.LineStart()
		for {
			current.v = true
			current.o.v = true
			if current.e {
				if isSubject {
					for _, p := range points {
						s.Point(p.x, p.y)
					}
				} else {
					interpolate(&current.x, &current.n.x, 1, s)
				}
				current = current.n
			} else {
				if isSubject {
					points = current.p.z
					for i := len(points) - 1; i >= 0; i-- {
						s.Point(points[i].x, points[i].y)
					}
				} else {
					interpolate(&current.x, &current.p.x, -1, s)
				}
				current = current.p
			}
			current = current.o
			points = current.z
			isSubject = !isSubject
			if current.v {
				break
			}
		}
		s.LineEnd()
	}
}

func link(nodes []*intersection) {
	n := len(nodes)
	if n == 0 {
		return
	}
	a := nodes[0]
	for _, b := range nodes[1:] {
		a.n = b
		b.p = a
		a = b
	}
	b := nodes[0]
	a.n = b
	b.p = a
}

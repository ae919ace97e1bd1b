// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"math"

	"github.com/golang/geo/r2"
)

// clipMax bounds coordinates before segment clipping so that far away points do not
// lose precision.
const clipMax = 1e9

// ClipRectangle clips planar geometry to the rectangle [x0, x1] x [y0, y1].
func ClipRectangle(x0, y0, x1, y1 float64) Clip {
	r := &rectClip{x0: x0, y0: y0, x1: x1, y1: y1}
	return func(sink Stream) Stream {
		return &rectClipStream{r: r, sink: sink, active: sink, buffer: &clipBuffer{}}
	}
}

type rectClip struct {
	x0, y0, x1, y1 float64
}

func (r *rectClip) visible(x, y float64) bool {
	return r.x0 <= x && x <= r.x1 && r.y0 <= y && y <= r.y1
}

// corner returns the index of the rectangle edge p lies on, counting from the left
// edge in the given direction.
func (r *rectClip) corner(p *clipPoint, direction float64) int {
	switch {
	case math.Abs(p.x-r.x0) < epsilon:
		if direction > 0 {
			return 0
		}
		return 3
	case math.Abs(p.x-r.x1) < epsilon:
		if direction > 0 {
			return 2
		}
		return 1
	case math.Abs(p.y-r.y0) < epsilon:
		if direction > 0 {
			return 1
		}
		return 0
	}
	if direction > 0 {
		return 3
	}
	return 2
}

func (r *rectClip) comparePoint(a, b *clipPoint) float64 {
	ca, cb := r.corner(a, 1), r.corner(b, 1)
	switch {
	case ca != cb:
		return float64(ca - cb)
	case ca == 0:
		return b.y - a.y
	case ca == 1:
		return a.x - b.x
	case ca == 2:
		return a.y - b.y
	}
	return b.x - a.x
}

func (r *rectClip) interpolate(from, to *clipPoint, direction float64, s Stream) {
	a, a1 := 0, 0
	walk := from == nil
	if !walk {
		a, a1 = r.corner(from, direction), r.corner(to, direction)
		walk = a != a1 || (r.comparePoint(from, to) < 0) != (direction > 0)
	}
	if !walk {
		s.Point(to.x, to.y)
		return
	}
	step := 1
	if direction < 0 {
		step = -1
	}
	for {
		x, y := r.x1, r.y0
		if a == 0 || a == 3 {
			x = r.x0
		}
		if a > 1 {
			y = r.y1
		}
		s.Point(x, y)
		a = (a + step + 4) % 4
		if a == a1 {
			break
		}
	}
}

// polygonInside returns the winding number of the polygon around the corner (x0, y1).
func (r *rectClip) polygonInside(polygon [][]r2.Point) int {
	winding := 0
	for _, ring := range polygon {
		if len(ring) == 0 {
			continue
		}
		b0, b1 := ring[0].X, ring[0].Y
		for _, p := range ring[1:] {
			a0, a1 := b0, b1
			b0, b1 = p.X, p.Y
			if a1 <= r.y1 {
				if b1 > r.y1 && (b0-a0)*(r.y1-a1) > (b1-a1)*(r.x0-a0) {
					winding++
				}
			} else if b1 <= r.y1 && (b0-a0)*(r.y1-a1) < (b1-a1)*(r.x0-a0) {
				winding--
			}
		}
	}
	return winding
}

type rectClipStream struct {
	r      *rectClip
	sink   Stream
	active Stream
	buffer *clipBuffer

	inPolygon bool
	segments  [][]clipPoint
	polygon   [][]r2.Point
	ring      []r2.Point
	clean     bool

	inLine bool
	first  bool

	// First point of the current line.
	x__, y__ float64
	v__      bool
	// Previous point of the current line.
	x_, y_ float64
	v_     bool
}

func (cs *rectClipStream) Point(x, y float64) {
	if cs.inLine {
		cs.linePoint(x, y)
		return
	}
	if cs.r.visible(x, y) {
		cs.active.Point(x, y)
	}
}

func (cs *rectClipStream) PolygonStart() {
	cs.active = cs.buffer
	cs.inPolygon = true
	cs.segments = nil
	cs.polygon = nil
	cs.clean = true
}

func (cs *rectClipStream) PolygonEnd() {
	startInside := cs.r.polygonInside(cs.polygon) != 0
	cleanInside := cs.clean && startInside
	visible := len(cs.segments) > 0
	if cleanInside || visible {
		cs.sink.PolygonStart()
		if cleanInside {
			cs.sink.LineStart()
			cs.r.interpolate(nil, nil, 1, cs.sink)
			cs.sink.LineEnd()
		}
		if visible {
			rejoin(cs.segments, cs.r.comparePoint, startInside, cs.r.interpolate, cs.sink)
		}
		cs.sink.PolygonEnd()
	}
	cs.active = cs.sink
	cs.inPolygon = false
	cs.segments = nil
	cs.polygon = nil
}

func (cs *rectClipStream) LineStart() {
	cs.inLine = true
	if cs.inPolygon {
		cs.ring = nil
	}
	cs.first = true
	cs.v_ = false
	cs.x_, cs.y_ = math.NaN(), math.NaN()
}

func (cs *rectClipStream) LineEnd() {
	if cs.inPolygon {
		if !cs.first {
			cs.linePoint(cs.x__, cs.y__)
			if cs.v__ && cs.v_ {
				cs.buffer.rejoin()
			}
		}
		cs.segments = append(cs.segments, cs.buffer.result()...)
		cs.polygon = append(cs.polygon, cs.ring)
		cs.ring = nil
	}
	cs.inLine = false
	if cs.v_ {
		cs.active.LineEnd()
	}
}

func (cs *rectClipStream) linePoint(x, y float64) {
	v := cs.r.visible(x, y)
	if cs.inPolygon {
		cs.ring = append(cs.ring, r2.Point{X: x, Y: y})
	}

	switch {
	case cs.first:
		cs.x__, cs.y__, cs.v__ = x, y, v
		cs.first = false
		if v {
			cs.active.LineStart()
			cs.active.Point(x, y)
		}
	case v && cs.v_:
		cs.active.Point(x, y)
	default:
		ax, ay := clampCoordinate(cs.x_), clampCoordinate(cs.y_)
		x, y = clampCoordinate(x), clampCoordinate(y)
		if a, b, cutA, cutB, ok := clipSegment(ax, ay, x, y, cs.r.x0, cs.r.y0, cs.r.x1, cs.r.y1); ok {
			if !cs.v_ {
				cs.active.LineStart()
				emitClipped(cs.active, a, cutA)
			}
			emitClipped(cs.active, b, cutB)
			if !v {
				cs.active.LineEnd()
			}
			cs.clean = false
		} else if v {
			cs.active.LineStart()
			cs.active.Point(x, y)
			cs.clean = false
		}
	}

	cs.x_, cs.y_, cs.v_ = x, y, v
}

func emitClipped(s Stream, p r2.Point, cut bool) {
	if cut {
		pointMarked(s, p.X, p.Y)
		return
	}
	s.Point(p.X, p.Y)
}

func clampCoordinate(v float64) float64 {
	return math.Max(-clipMax, math.Min(clipMax, v))
}

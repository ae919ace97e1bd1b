// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package path

import (
	"math"

	"github.com/fogleman/gg"
)

// Context is a drawing surface in the style of the canvas API.
type Context interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a clockwise arc around (x, y) from angle a0 to a1 in radians, connected
	// to the current point by a straight line.
	Arc(x, y, r, a0, a1 float64)
	ClosePath()
}

// contextStream draws onto a Context.
type contextStream struct {
	ctx       Context
	radius    float64
	inPolygon bool
	state     pointState
}

func (s *contextStream) reset() {
	s.inPolygon = false
	s.state = pointNone
}

func (s *contextStream) PolygonStart() { s.inPolygon = true }
func (s *contextStream) PolygonEnd()   { s.inPolygon = false }
func (s *contextStream) LineStart()    { s.state = pointFirst }

func (s *contextStream) LineEnd() {
	if s.inPolygon {
		s.ctx.ClosePath()
	}
	s.state = pointNone
}

func (s *contextStream) Point(x, y float64) {
	switch s.state {
	case pointFirst:
		s.ctx.MoveTo(x, y)
		s.state = pointNext
	case pointNext:
		s.ctx.LineTo(x, y)
	default:
		s.ctx.MoveTo(x+s.radius, y)
		s.ctx.Arc(x, y, s.radius, 0, 2*math.Pi)
	}
}

// GGContext draws paths into a gg raster context. Fill or stroke the context
// afterwards to paint them.
type GGContext struct {
	dc *gg.Context
}

// NewGGContext returns a Context backed by dc.
func NewGGContext(dc *gg.Context) *GGContext {
	return &GGContext{dc: dc}
}

func (c *GGContext) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }
func (c *GGContext) LineTo(x, y float64) { c.dc.LineTo(x, y) }
func (c *GGContext) ClosePath()          { c.dc.ClosePath() }

func (c *GGContext) Arc(x, y, r, a0, a1 float64) {
	c.dc.DrawArc(x, y, r, a0, a1)
}

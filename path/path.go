// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package path renders geometry streams as SVG path data or onto a drawing context,
// and measures them in screen space.
package path

import (
	"fmt"

	"github.com/2dChan/choropleth/geo"
	"github.com/golang/geo/r2"
)

const (
	defaultDigits      = 3
	defaultPointRadius = 4.5
)

// Projector turns a sink into a stream that projects geometry before passing it on.
// Both *geo.Projection and *geo.Identity are projectors.
type Projector interface {
	Stream(sink geo.Stream) geo.Stream
}

// Path generates SVG path data and planar measures for geometry sources.
type Path struct {
	projection  Projector
	digits      int
	pointRadius float64
}

// New returns a path generator that projects geometry with projection. A nil
// projection passes coordinates through unchanged.
func New(projection Projector) *Path {
	return &Path{
		projection:  projection,
		digits:      defaultDigits,
		pointRadius: defaultPointRadius,
	}
}

func (p *Path) Projection() Projector { return p.projection }

func (p *Path) SetProjection(projection Projector) *Path {
	p.projection = projection
	return p
}

// Digits returns the number of fractional digits in generated path data, or -1
// when numbers are not rounded.
func (p *Path) Digits() int { return p.digits }

// SetDigits sets the number of fractional digits. -1 disables rounding. It panics on
// values below -1.
func (p *Path) SetDigits(digits int) *Path {
	if digits < -1 {
		panic(fmt.Sprintf("path: invalid digits %d", digits))
	}
	p.digits = digits
	return p
}

// PointRadius returns the radius of circles drawn for points.
func (p *Path) PointRadius() float64 { return p.pointRadius }

// SetPointRadius sets the radius of circles drawn for points. It panics on a negative
// or NaN radius.
func (p *Path) SetPointRadius(radius float64) *Path {
	if !(radius >= 0) {
		panic(fmt.Sprintf("path: negative point radius %v", radius))
	}
	p.pointRadius = radius
	return p
}

// String returns SVG path data for src, or "" when nothing is visible.
func (p *Path) String(src geo.Source) string {
	s := &stringStream{f: newFormatter(p.digits), radius: p.pointRadius}
	s.reset()
	src.StreamTo(p.stream(s))
	return s.buf.String()
}

// Render draws src onto ctx.
func (p *Path) Render(src geo.Source, ctx Context) {
	s := &contextStream{ctx: ctx, radius: p.pointRadius}
	s.reset()
	src.StreamTo(p.stream(s))
}

// Area returns the planar area of the polygons in src after projection.
func (p *Path) Area(src geo.Source) float64 {
	var s areaStream
	src.StreamTo(p.stream(&s))
	return s.sum.Value() / 2
}

// Bounds returns the planar bounding box of src after projection.
func (p *Path) Bounds(src geo.Source) r2.Rect {
	var s geo.BoundsStream
	src.StreamTo(p.stream(&s))
	return s.Bounds()
}

// Centroid returns the planar centroid of src after projection. Polygons are weighted
// by area; without polygons, lines are weighted by length, and without either the
// mean of the points is used. Empty geometry gives NaN coordinates.
func (p *Path) Centroid(src geo.Source) r2.Point {
	var s centroidStream
	src.StreamTo(p.stream(&s))
	return s.result()
}

// Length returns the planar length of lines and the perimeter of polygons in src
// after projection.
func (p *Path) Length(src geo.Source) float64 {
	var s lengthStream
	src.StreamTo(p.stream(&s))
	return s.sum.Value()
}

func (p *Path) stream(sink geo.Stream) geo.Stream {
	if p.projection == nil {
		return sink
	}
	return p.projection.Stream(sink)
}

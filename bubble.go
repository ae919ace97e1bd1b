// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package choropleth

import (
	"errors"
	"fmt"
	"math"

	"github.com/2dChan/choropleth/geo"
	"github.com/2dChan/choropleth/geodelaunay"
	"github.com/2dChan/choropleth/scale"
	"github.com/2dChan/choropleth/voronoi"
	"github.com/golang/geo/r2"
	geojson "github.com/paulmach/go.geojson"
)

type bubble struct {
	lonLat   r2.Point
	name     string
	value    float64
	radius   float64
	position r2.Point
	visible  bool
}

type bubbleSet struct {
	items     []bubble
	spherical *geodelaunay.Triangulation

	// planar indexes the visible bubbles; planarIdx maps its sites to bubbles.
	planar    *voronoi.Diagram
	planarIdx []int
}

// SetBubbles places one bubble per point feature. Radii follow a square-root scale from
// zero to the largest value of valueProperty, reaching maxRadius; bubbles without a
// value get radius zero.
func (m *Map) SetBubbles(points *geojson.FeatureCollection, valueProperty string, maxRadius float64) error {
	if points == nil {
		return errors.New("choropleth: nil bubble collection")
	}
	if !(maxRadius > 0) || math.IsInf(maxRadius, 0) {
		return fmt.Errorf("choropleth: invalid max radius %v", maxRadius)
	}

	items := make([]bubble, len(points.Features))
	values := make([]float64, len(points.Features))
	for i, f := range points.Features {
		if f == nil || f.Geometry == nil || f.Geometry.Type != geojson.GeometryPoint || len(f.Geometry.Point) < 2 {
			return fmt.Errorf("choropleth: bubble %d is not a point", i)
		}
		v, ok := numberProperty(f, valueProperty)
		if !ok {
			m.log.Warn("bubble without a usable value", "bubble", i, "property", valueProperty)
		}
		items[i] = bubble{
			lonLat: r2.Point{X: f.Geometry.Point[0], Y: f.Geometry.Point[1]},
			name:   featureName(f, m.opts.NameProperty),
			value:  v,
		}
		values[i] = v
	}

	hi := 1.0
	if _, top, ok := scale.Extent(values); ok && top > 0 {
		hi = top
	}
	radius := scale.NewSqrt().
		SetDomain(0, hi).
		SetRange(0, maxRadius).
		SetClamp(true).
		SetUnknown(0)
	for i := range items {
		items[i].radius = radius.Scale(items[i].value)
	}

	bs := bubbleSet{items: items}
	if len(items) >= 4 {
		sites := make([]r2.Point, len(items))
		for i, b := range items {
			sites[i] = b.lonLat
		}
		dt, err := geodelaunay.NewTriangulation(sites)
		if err != nil {
			m.log.Warn("spherical bubble index disabled", "error", err)
		} else {
			bs.spherical = dt
		}
	}
	if err := bs.layout(m.projection, m.Viewport()); err != nil {
		return err
	}
	m.bubbles = bs
	return nil
}

// layout projects the bubbles and indexes the visible ones.
func (bs *bubbleSet) layout(p Projector, viewport r2.Rect) error {
	var rec geo.Recorder
	stream := p.Stream(&rec)

	var positions []r2.Point
	bs.planarIdx = bs.planarIdx[:0]
	for i := range bs.items {
		b := &bs.items[i]
		rec.Events = rec.Events[:0]
		stream.Point(b.lonLat.X, b.lonLat.Y)

		b.visible = len(rec.Events) > 0
		if !b.visible {
			b.position = r2.Point{X: math.NaN(), Y: math.NaN()}
			continue
		}
		b.position = r2.Point{X: rec.Events[0].X, Y: rec.Events[0].Y}
		positions = append(positions, b.position)
		bs.planarIdx = append(bs.planarIdx, i)
	}

	bs.planar = nil
	if len(positions) == 0 {
		return nil
	}
	d, err := voronoi.NewDiagram(positions, voronoi.WithBounds(viewport))
	if err != nil {
		return fmt.Errorf("choropleth: %w", err)
	}
	bs.planar = d
	return nil
}

func (m *Map) NumBubbles() int {
	return len(m.bubbles.items)
}

// Bubble returns the view of bubble i.
// It returns an error if i is out of range.
func (m *Map) Bubble(i int) (Bubble, error) {
	if i < 0 || i >= len(m.bubbles.items) {
		return Bubble{}, fmt.Errorf("Bubble: index %d out of range [0 %d)", i, len(m.bubbles.items))
	}
	return Bubble{idx: i, m: m}, nil
}

// Nearest returns the visible bubble whose center is closest to the screen point (x, y).
func (m *Map) Nearest(x, y float64) (Bubble, bool) {
	bs := &m.bubbles
	if bs.planar == nil {
		return Bubble{}, false
	}
	i := bs.planar.Find(x, y, 0)
	if i < 0 {
		return Bubble{}, false
	}
	return Bubble{idx: bs.planarIdx[i], m: m}, true
}

// NearestLonLat returns the bubble closest to (lon, lat) by great-circle distance,
// whether or not it is visible. Bubble coordinates are read as degrees even when the
// map uses an identity projection.
func (m *Map) NearestLonLat(lon, lat float64) (Bubble, bool) {
	bs := &m.bubbles
	if len(bs.items) == 0 || math.IsNaN(lon) || math.IsNaN(lat) {
		return Bubble{}, false
	}
	if bs.spherical != nil {
		return Bubble{idx: bs.spherical.Find(lon, lat, 0), m: m}, true
	}

	q := r2.Point{X: lon, Y: lat}
	best, bestDist := 0, math.Inf(1)
	for i, b := range bs.items {
		if d := geo.Distance(q, b.lonLat); d < bestDist {
			best, bestDist = i, d
		}
	}
	return Bubble{idx: best, m: m}, true
}

// Bubble is a view of one bubble. Its index matches the index of its feature in the
// collection passed to SetBubbles.
type Bubble struct {
	idx int
	m   *Map
}

func (b Bubble) Index() int {
	return b.idx
}

func (b Bubble) Name() string {
	return b.m.bubbles.items[b.idx].name
}

// Value returns the value property, or NaN when the feature has none.
func (b Bubble) Value() float64 {
	return b.m.bubbles.items[b.idx].value
}

// LonLat returns the bubble location in degrees.
func (b Bubble) LonLat() r2.Point {
	return b.m.bubbles.items[b.idx].lonLat
}

// Position returns the projected center. It reports false when the projection clips the
// bubble away.
func (b Bubble) Position() (r2.Point, bool) {
	it := b.m.bubbles.items[b.idx]
	return it.position, it.visible
}

// Radius returns the bubble radius in pixels.
func (b Bubble) Radius() float64 {
	return b.m.bubbles.items[b.idx].radius
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package choropleth lays out province maps: it fits a projection to a viewport,
// renders region paths with value-driven fills, and places proportional bubbles with
// nearest-bubble lookup on screen and on the sphere.
package choropleth

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/2dChan/choropleth/geo"
	"github.com/2dChan/choropleth/path"
	"github.com/2dChan/choropleth/scale"
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
	geojson "github.com/paulmach/go.geojson"
)

const (
	missingColor = "#cccccc"
	legendTicks  = 5
)

var (
	lowColor, _  = colorful.Hex("#eff3ff")
	highColor, _ = colorful.Hex("#08519c")
)

// Map is a choropleth laid out in a viewport. Region paths, bubble positions and the
// nearest-bubble index are rebuilt on every Resize.
type Map struct {
	opts       Options
	log        *slog.Logger
	projection Projector
	fitExtent  func(extent r2.Rect, src geo.Source)
	path       *path.Path
	fitTarget  geo.Source
	colors     *scale.Continuous[colorful.Color]

	width, height float64

	regions []region
	bubbles bubbleSet
}

type region struct {
	feature  *geojson.Feature
	source   geo.Source
	name     string
	value    float64
	fill     string
	path     string
	bounds   r2.Rect
	centroid r2.Point
	area     float64
}

// New lays out regions in the default 960x500 viewport. Every feature of regions
// becomes one region; features without a numeric value property get a missing fill.
func New(regions *geojson.FeatureCollection, setters ...Option) (*Map, error) {
	if regions == nil || len(regions.Features) == 0 {
		return nil, errors.New("choropleth: no regions")
	}
	opts := defaultOptions()
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	if opts.Projection == nil {
		if err := WithProjection(geo.NewMercator())(&opts); err != nil {
			return nil, err
		}
	}

	m := &Map{
		opts:       opts,
		log:        opts.Logger,
		projection: opts.Projection,
		fitExtent:  opts.fitExtent,
		path:       path.New(opts.Projection),
		fitTarget:  geo.FromFeatureCollection(regions),
	}
	if opts.Outline != nil {
		m.fitTarget = geo.FromFeature(opts.Outline)
	}

	m.regions = make([]region, len(regions.Features))
	values := make([]float64, len(regions.Features))
	for i, f := range regions.Features {
		if f == nil || f.Geometry == nil {
			return nil, fmt.Errorf("choropleth: region %d has no geometry", i)
		}
		v, ok := numberProperty(f, opts.ValueProperty)
		if !ok {
			m.log.Warn("region without a usable value", "region", i, "property", opts.ValueProperty)
		}
		m.regions[i] = region{
			feature: f,
			source:  geo.FromFeature(f),
			name:    featureName(f, opts.NameProperty),
			value:   v,
		}
		values[i] = v
	}

	if opts.Thresholds == nil {
		if lo, hi, ok := scale.Extent(values); ok {
			m.colors = scale.NewLinearColor(lowColor, highColor).
				SetInterpolate(scale.InterpolateHCL).
				SetDomain(lo, hi).
				Nice(legendTicks).
				SetClamp(true)
		}
	}
	for i := range m.regions {
		m.regions[i].fill = m.fill(m.regions[i].value)
	}

	if err := m.Resize(defaultWidth, defaultHeight); err != nil {
		return nil, err
	}
	return m, nil
}

// Resize fits the projection to the padded viewport and rebuilds region paths, bubble
// positions and the on-screen nearest-bubble index.
func (m *Map) Resize(width, height float64) error {
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return fmt.Errorf("choropleth: invalid size %vx%v", width, height)
	}
	m.width, m.height = width, height

	mx := width * (1 - m.opts.Padding) / 2
	my := height * (1 - m.opts.Padding) / 2
	extent := r2.RectFromPoints(r2.Point{X: mx, Y: my}, r2.Point{X: width - mx, Y: height - my})
	m.fitExtent(extent, m.fitTarget)

	for i := range m.regions {
		r := &m.regions[i]
		r.path = m.path.String(r.source)
		r.bounds = m.path.Bounds(r.source)
		r.centroid = m.path.Centroid(r.source)
		r.area = m.path.Area(r.source)
	}
	if err := m.bubbles.layout(m.projection, m.Viewport()); err != nil {
		return err
	}

	t := m.projection.Translate()
	m.log.Debug("map resized",
		"width", width,
		"height", height,
		"scale", m.projection.Scale(),
		"translate_x", t.X,
		"translate_y", t.Y,
		"regions", len(m.regions),
		"bubbles", len(m.bubbles.items),
	)
	return nil
}

// Size returns the viewport width and height.
func (m *Map) Size() (float64, float64) {
	return m.width, m.height
}

// Viewport returns the rectangle [0, width] x [0, height].
func (m *Map) Viewport() r2.Rect {
	return r2.RectFromPoints(r2.Point{}, r2.Point{X: m.width, Y: m.height})
}

// Projection returns the fitted projection. Changing it takes effect on the next Resize.
func (m *Map) Projection() Projector {
	return m.projection
}

func (m *Map) NumRegions() int {
	return len(m.regions)
}

// Region returns the view of region i.
// It returns an error if i is out of range.
func (m *Map) Region(i int) (Region, error) {
	if i < 0 || i >= len(m.regions) {
		return Region{}, fmt.Errorf("Region: index %d out of range [0 %d)", i, len(m.regions))
	}
	return Region{idx: i, m: m}, nil
}

// LegendEntry pairs a domain value with its fill.
type LegendEntry struct {
	Value float64
	Color string
}

// Legend returns the fills a reader needs to decode the map: the lower bound of each
// threshold bucket, or about count ticks over the continuous value domain.
func (m *Map) Legend(count int) []LegendEntry {
	if t := m.opts.Thresholds; t != nil {
		entries := make([]LegendEntry, len(t.Buckets))
		for i, b := range t.Buckets {
			entries[i] = LegendEntry{Value: b.Start, Color: b.Color}
		}
		return entries
	}
	if m.colors == nil {
		return nil
	}
	ticks := m.colors.Ticks(count)
	entries := make([]LegendEntry, len(ticks))
	for i, v := range ticks {
		entries[i] = LegendEntry{Value: v, Color: m.colors.Scale(v).Hex()}
	}
	return entries
}

func (m *Map) fill(v float64) string {
	if t := m.opts.Thresholds; t != nil {
		return t.ColorFor(v)
	}
	if m.colors == nil || math.IsNaN(v) {
		return missingColor
	}
	return m.colors.Scale(v).Hex()
}

func numberProperty(f *geojson.Feature, key string) (float64, bool) {
	if v, err := f.PropertyFloat64(key); err == nil {
		return v, !math.IsNaN(v)
	}
	if v, err := f.PropertyInt(key); err == nil {
		return float64(v), true
	}
	return math.NaN(), false
}

func featureName(f *geojson.Feature, key string) string {
	if key != "" {
		if name, err := f.PropertyString(key); err == nil {
			return name
		}
	}
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return ""
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package choropleth

import (
	"github.com/2dChan/choropleth/path"
	"github.com/golang/geo/r2"
	geojson "github.com/paulmach/go.geojson"
)

// Region is a view of one map region. Its index matches the index of its feature in the
// collection passed to New. Screen-space values reflect the last Resize.
type Region struct {
	idx int
	m   *Map
}

func (r Region) Index() int {
	return r.idx
}

func (r Region) Feature() *geojson.Feature {
	return r.m.regions[r.idx].feature
}

// Name returns the name property, falling back to the feature ID.
func (r Region) Name() string {
	return r.m.regions[r.idx].name
}

// Value returns the value property, or NaN when the feature has none.
func (r Region) Value() float64 {
	return r.m.regions[r.idx].value
}

// Fill returns the hex color of the region.
func (r Region) Fill() string {
	return r.m.regions[r.idx].fill
}

// Path returns SVG path data for the projected region. It is empty when the region is
// clipped away entirely.
func (r Region) Path() string {
	return r.m.regions[r.idx].path
}

func (r Region) Bounds() r2.Rect {
	return r.m.regions[r.idx].bounds
}

func (r Region) Centroid() r2.Point {
	return r.m.regions[r.idx].centroid
}

// Area returns the projected area in square pixels.
func (r Region) Area() float64 {
	return r.m.regions[r.idx].area
}

// Render draws the projected region onto ctx.
func (r Region) Render(ctx path.Context) {
	r.m.path.Render(r.m.regions[r.idx].source, ctx)
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"math"

	"github.com/golang/geo/r2"
)

// BoundsStream accumulates the planar bounding box of every point streamed into it.
// Points with a NaN coordinate are skipped. The zero value is ready to use.
type BoundsStream struct {
	rect    r2.Rect
	started bool
}

func (b *BoundsStream) Point(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	p := r2.Point{X: x, Y: y}
	if !b.started {
		b.rect = r2.RectFromPoints(p)
		b.started = true
		return
	}
	b.rect = b.rect.AddPoint(p)
}

func (b *BoundsStream) LineStart()    {}
func (b *BoundsStream) LineEnd()      {}
func (b *BoundsStream) PolygonStart() {}
func (b *BoundsStream) PolygonEnd()   {}

// Bounds returns the bounding box, which is empty when no point was streamed.
func (b *BoundsStream) Bounds() r2.Rect {
	if !b.started {
		return r2.EmptyRect()
	}
	return b.rect
}

// Reset forgets every point.
func (b *BoundsStream) Reset() {
	*b = BoundsStream{}
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"math"

	"github.com/golang/geo/r2"
)

// fitter is a projection that can be scaled and translated to fit geometry.
type fitter interface {
	Scale() float64
	Translate() r2.Point
	Stream(sink Stream) Stream
	setScaleTranslate(k, x, y float64)
	clipExtent() (r2.Rect, bool)
	setClipExtent(r r2.Rect, ok bool)
}

// fit projects src at scale 150 without translation or clip extent, and hands its
// bounds to fitBounds, which returns the new scale factor relative to 150 and the
// translation. Scale and translation are left unchanged when the bounds are empty or
// the factor is not a positive finite number.
func fit(p fitter, src Source, fitBounds func(b r2.Rect) (k, x, y float64)) {
	k0, t0 := p.Scale(), p.Translate()
	extent, hasExtent := p.clipExtent()

	p.setScaleTranslate(150, 0, 0)
	if hasExtent {
		p.setClipExtent(r2.Rect{}, false)
	}

	var bounds BoundsStream
	if src != nil {
		src.StreamTo(p.Stream(&bounds))
	}
	b := bounds.Bounds()

	ok := false
	if !b.IsEmpty() {
		k, x, y := fitBounds(b)
		if k > 0 && !math.IsInf(k, 0) && !math.IsNaN(x) && !math.IsNaN(y) {
			p.setScaleTranslate(150*k, x, y)
			ok = true
		}
	}
	if !ok {
		p.setScaleTranslate(k0, t0.X, t0.Y)
	}

	if hasExtent {
		p.setClipExtent(extent, true)
	}
}

func fitExtent(p fitter, extent r2.Rect, src Source) {
	fit(p, src, func(b r2.Rect) (float64, float64, float64) {
		w, h := extent.X.Length(), extent.Y.Length()
		k := math.Min(w/b.X.Length(), h/b.Y.Length())
		x := extent.X.Lo + (w-k*(b.X.Hi+b.X.Lo))/2
		y := extent.Y.Lo + (h-k*(b.Y.Hi+b.Y.Lo))/2
		return k, x, y
	})
}

func fitWidth(p fitter, width float64, src Source) {
	fit(p, src, func(b r2.Rect) (float64, float64, float64) {
		k := width / b.X.Length()
		x := (width - k*(b.X.Hi+b.X.Lo)) / 2
		y := -k * b.Y.Lo
		return k, x, y
	})
}

func fitHeight(p fitter, height float64, src Source) {
	fit(p, src, func(b r2.Rect) (float64, float64, float64) {
		k := height / b.Y.Length()
		x := -k * b.X.Lo
		y := (height - k*(b.Y.Hi+b.Y.Lo)) / 2
		return k, x, y
	})
}

// FitExtent sets scale and translate so that src fills extent, centered.
func (p *Projection) FitExtent(extent r2.Rect, src Source) *Projection {
	fitExtent(p, extent, src)
	return p
}

// FitSize is FitExtent with the extent [0, width] x [0, height].
func (p *Projection) FitSize(width, height float64, src Source) *Projection {
	return p.FitExtent(sizeRect(width, height), src)
}

// FitWidth sets scale and translate so that src spans width, with its top edge at 0.
func (p *Projection) FitWidth(width float64, src Source) *Projection {
	fitWidth(p, width, src)
	return p
}

// FitHeight sets scale and translate so that src spans height, with its left edge at 0.
func (p *Projection) FitHeight(height float64, src Source) *Projection {
	fitHeight(p, height, src)
	return p
}

func (p *Projection) setScaleTranslate(k, x, y float64) {
	p.k, p.x, p.y = k, x, y
	p.recenter()
}

func (p *Projection) clipExtent() (r2.Rect, bool) {
	return p.extent, p.hasExtent
}

func (p *Projection) setClipExtent(r r2.Rect, ok bool) {
	p.extent, p.hasExtent = r, ok
	p.recenter()
}

func sizeRect(width, height float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{}, r2.Point{X: width, Y: height})
}

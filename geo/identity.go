// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Identity is a planar projection for geometry already in screen units. It scales,
// reflects, rotates and translates points without resampling, and optionally clips to
// a rectangle.
type Identity struct {
	k, tx, ty float64
	sx, sy    float64
	alpha     float64
	ca, sa    float64
	kx, ky    float64

	extent    r2.Rect
	hasExtent bool
}

// NewIdentity returns an identity projection with scale 1 and no translation.
func NewIdentity() *Identity {
	p := &Identity{k: 1, sx: 1, sy: 1, ca: 1}
	return p.reset()
}

func (p *Identity) Project(x, y float64) (float64, float64) {
	x *= p.kx
	y *= p.ky
	if p.alpha != 0 {
		x, y = x*p.ca+y*p.sa, y*p.ca-x*p.sa
	}
	return x + p.tx, y + p.ty
}

// Invert maps a screen point back to input coordinates. ok is always true.
func (p *Identity) Invert(x, y float64) (float64, float64, bool) {
	x -= p.tx
	y -= p.ty
	if p.alpha != 0 {
		x, y = x*p.ca-y*p.sa, y*p.ca+x*p.sa
	}
	return x / p.kx, y / p.ky, true
}

func (p *Identity) Stream(sink Stream) Stream {
	if p.hasExtent {
		sink = ClipRectangle(p.extent.X.Lo, p.extent.Y.Lo, p.extent.X.Hi, p.extent.Y.Hi)(sink)
	}
	return &identityStream{Stream: sink, p: p}
}

type identityStream struct {
	Stream
	p *Identity
}

func (s *identityStream) Point(x, y float64) {
	s.Stream.Point(s.p.Project(x, y))
}

func (p *Identity) Scale() float64 { return p.k }

// SetScale sets the scale factor. It panics if k is not positive.
func (p *Identity) SetScale(k float64) *Identity {
	if !(k > 0) {
		panic(fmt.Sprintf("geo: scale %v is not positive", k))
	}
	p.k = k
	return p.reset()
}

func (p *Identity) Translate() r2.Point { return r2.Point{X: p.tx, Y: p.ty} }

func (p *Identity) SetTranslate(x, y float64) *Identity {
	p.tx, p.ty = x, y
	return p
}

// Angle returns the rotation in degrees.
func (p *Identity) Angle() float64 { return p.alpha * degrees }

func (p *Identity) SetAngle(angle float64) *Identity {
	p.alpha = math.Mod(angle, 360) * radians
	p.sa, p.ca = math.Sincos(p.alpha)
	return p
}

func (p *Identity) ReflectX() bool { return p.sx < 0 }

func (p *Identity) SetReflectX(reflect bool) *Identity {
	p.sx = reflectSign(reflect)
	return p.reset()
}

func (p *Identity) ReflectY() bool { return p.sy < 0 }

func (p *Identity) SetReflectY(reflect bool) *Identity {
	p.sy = reflectSign(reflect)
	return p.reset()
}

func (p *Identity) ClipExtent() (r2.Rect, bool) { return p.extent, p.hasExtent }

func (p *Identity) SetClipExtent(r r2.Rect) *Identity {
	p.extent, p.hasExtent = r, true
	return p
}

func (p *Identity) ClearClipExtent() *Identity {
	p.extent, p.hasExtent = r2.Rect{}, false
	return p
}

// FitExtent sets scale and translate so that src fills extent, centered.
func (p *Identity) FitExtent(extent r2.Rect, src Source) *Identity {
	fitExtent(p, extent, src)
	return p
}

// FitSize is FitExtent with the extent [0, width] x [0, height].
func (p *Identity) FitSize(width, height float64, src Source) *Identity {
	return p.FitExtent(sizeRect(width, height), src)
}

func (p *Identity) FitWidth(width float64, src Source) *Identity {
	fitWidth(p, width, src)
	return p
}

func (p *Identity) FitHeight(height float64, src Source) *Identity {
	fitHeight(p, height, src)
	return p
}

func (p *Identity) setScaleTranslate(k, x, y float64) {
	p.k, p.tx, p.ty = k, x, y
	p.reset()
}

func (p *Identity) clipExtent() (r2.Rect, bool) { return p.ClipExtent() }

func (p *Identity) setClipExtent(r r2.Rect, ok bool) {
	p.extent, p.hasExtent = r, ok
}

func (p *Identity) reset() *Identity {
	p.kx = p.k * p.sx
	p.ky = p.k * p.sy
	return p
}

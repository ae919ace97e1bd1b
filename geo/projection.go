// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Projection maps longitude and latitude in degrees to screen coordinates. It wraps a
// Raw projection with scale, translation, centering, rotation, clipping and adaptive
// resampling. Setters return the receiver so calls can be chained.
type Projection struct {
	raw      Raw
	mercator bool

	k                                 float64
	x, y                              float64
	lambda, phi                       float64
	deltaLambda, deltaPhi, deltaGamma float64
	alpha                             float64
	sx, sy                            float64
	theta                             float64
	hasTheta                          bool
	extent                            r2.Rect
	hasExtent                         bool
	delta2                            float64

	preclip  Clip
	postclip Clip

	rotation         Rotation
	transform        affine
	projectTransform projectFunc
}

// NewProjection returns a projection of raw with scale 150, translate (480, 250),
// antimeridian clipping and precision sqrt(0.5).
func NewProjection(raw Raw) *Projection {
	p := &Projection{
		raw:     raw,
		k:       150,
		x:       480,
		y:       250,
		sx:      1,
		sy:      1,
		delta2:  0.5,
		preclip: ClipAntimeridian(),
	}
	p.recenter()
	return p
}

// NewMercator returns a spherical Mercator projection. Its clip extent always covers
// the whole world around the projected rotation origin, narrowed by any extent set
// with SetClipExtent.
func NewMercator() *Projection {
	p := NewProjection(Mercator)
	p.mercator = true
	return p.SetScale(961 / tau)
}

// NewEquirectangular returns a plate carrée projection.
func NewEquirectangular() *Projection {
	return NewProjection(Equirectangular).SetScale(152.63)
}

// NewOrthographic returns an orthographic projection clipped to the visible
// hemisphere.
func NewOrthographic() *Projection {
	return NewProjection(Orthographic).SetScale(249.5).SetClipAngle(90 + epsilon)
}

// Project returns the screen coordinates of the point at lon, lat degrees.
func (p *Projection) Project(lon, lat float64) (float64, float64) {
	lambda, phi := p.rotation.Rotate(lon*radians, lat*radians)
	return p.projectTransform(lambda, phi)
}

// Invert returns the longitude and latitude in degrees of the screen point x, y.
// ok is false when the raw projection has no inverse.
func (p *Projection) Invert(x, y float64) (lon, lat float64, ok bool) {
	inv, ok := p.raw.(InvertibleRaw)
	if !ok {
		return math.NaN(), math.NaN(), false
	}
	lambda, phi := inv.Invert(p.transform.inverse(x, y))
	lambda, phi = p.rotation.Invert(lambda, phi)
	return lambda * degrees, phi * degrees, true
}

// Stream returns a stream that projects geometry given in degrees into sink.
func (p *Projection) Stream(sink Stream) Stream {
	return radiansStream{&rotateStream{
		Stream:   p.preclip(resample(p.projectTransform, p.delta2)(p.postclip(sink))),
		rotation: p.rotation,
	}}
}

// Scale returns the scale factor.
func (p *Projection) Scale() float64 { return p.k }

// SetScale sets the scale factor. It panics if k is not positive.
func (p *Projection) SetScale(k float64) *Projection {
	if !(k > 0) {
		panic(fmt.Sprintf("geo: scale %v is not positive", k))
	}
	p.k = k
	return p.recenter()
}

// Translate returns the screen position of the projection center.
func (p *Projection) Translate() r2.Point { return r2.Point{X: p.x, Y: p.y} }

func (p *Projection) SetTranslate(x, y float64) *Projection {
	p.x, p.y = x, y
	return p.recenter()
}

// Center returns the longitude and latitude in degrees placed at the translate point.
func (p *Projection) Center() r2.Point {
	return r2.Point{X: p.lambda * degrees, Y: p.phi * degrees}
}

func (p *Projection) SetCenter(lon, lat float64) *Projection {
	p.lambda = math.Mod(lon, 360) * radians
	p.phi = math.Mod(lat, 360) * radians
	return p.recenter()
}

// Rotate returns the rotation angles [lambda, phi, gamma] in degrees.
func (p *Projection) Rotate() [3]float64 {
	return [3]float64{p.deltaLambda * degrees, p.deltaPhi * degrees, p.deltaGamma * degrees}
}

func (p *Projection) SetRotate(lambda, phi, gamma float64) *Projection {
	p.deltaLambda = math.Mod(lambda, 360) * radians
	p.deltaPhi = math.Mod(phi, 360) * radians
	p.deltaGamma = math.Mod(gamma, 360) * radians
	return p.recenter()
}

// Angle returns the post-projection rotation in degrees.
func (p *Projection) Angle() float64 { return p.alpha * degrees }

func (p *Projection) SetAngle(angle float64) *Projection {
	p.alpha = math.Mod(angle, 360) * radians
	return p.recenter()
}

func (p *Projection) ReflectX() bool { return p.sx < 0 }

func (p *Projection) SetReflectX(reflect bool) *Projection {
	p.sx = reflectSign(reflect)
	return p.recenter()
}

func (p *Projection) ReflectY() bool { return p.sy < 0 }

func (p *Projection) SetReflectY(reflect bool) *Projection {
	p.sy = reflectSign(reflect)
	return p.recenter()
}

// ClipAngle returns the small-circle clip radius in degrees, if one is set.
func (p *Projection) ClipAngle() (float64, bool) {
	return p.theta * degrees, p.hasTheta
}

// SetClipAngle clips to the small circle of angle degrees around the projection center.
// A zero or NaN angle restores antimeridian clipping.
func (p *Projection) SetClipAngle(angle float64) *Projection {
	if !(angle > 0) {
		return p.ClearClipAngle()
	}
	p.theta = angle * radians
	p.hasTheta = true
	p.preclip = ClipCircle(p.theta)
	return p.recenter()
}

// ClearClipAngle restores antimeridian clipping.
func (p *Projection) ClearClipAngle() *Projection {
	p.theta = 0
	p.hasTheta = false
	p.preclip = ClipAntimeridian()
	return p.recenter()
}

// ClipExtent returns the screen rectangle set with SetClipExtent, if any.
func (p *Projection) ClipExtent() (r2.Rect, bool) {
	return p.extent, p.hasExtent
}

// SetClipExtent clips projected geometry to r.
func (p *Projection) SetClipExtent(r r2.Rect) *Projection {
	p.extent = r
	p.hasExtent = true
	return p.recenter()
}

func (p *Projection) ClearClipExtent() *Projection {
	p.extent = r2.Rect{}
	p.hasExtent = false
	return p.recenter()
}

// Precision returns the resampling threshold in pixels.
func (p *Projection) Precision() float64 { return math.Sqrt(p.delta2) }

// SetPrecision sets the resampling threshold in pixels. Zero disables resampling.
// It panics on a negative or NaN precision.
func (p *Projection) SetPrecision(precision float64) *Projection {
	if !(precision >= 0) {
		panic(fmt.Sprintf("geo: precision %v is negative", precision))
	}
	p.delta2 = precision * precision
	return p.recenter()
}

func (p *Projection) recenter() *Projection {
	cx, cy := newAffine(p.k, 0, 0, p.sx, p.sy, p.alpha).forward(p.raw.Project(p.lambda, p.phi))
	p.transform = newAffine(p.k, p.x-cx, p.y-cy, p.sx, p.sy, p.alpha)
	p.rotation = NewRotation(p.deltaLambda, p.deltaPhi, p.deltaGamma)
	raw, transform := p.raw, p.transform
	p.projectTransform = func(lambda, phi float64) (float64, float64) {
		return transform.forward(raw.Project(lambda, phi))
	}
	p.reclip()
	return p
}

// reclip rebuilds the post-projection clip from the user extent and, for Mercator, the
// world extent.
func (p *Projection) reclip() {
	if !p.mercator {
		if p.hasExtent {
			p.postclip = ClipRectangle(p.extent.X.Lo, p.extent.Y.Lo, p.extent.X.Hi, p.extent.Y.Hi)
		} else {
			p.postclip = identityClip
		}
		return
	}

	k := math.Pi * p.k
	lambda, phi := p.rotation.Invert(0, 0)
	tx, ty := p.Project(lambda*degrees, phi*degrees)
	x0, y0, x1, y1 := tx-k, ty-k, tx+k, ty+k
	if p.hasExtent {
		x0 = math.Max(tx-k, p.extent.X.Lo)
		y0 = p.extent.Y.Lo
		x1 = math.Min(tx+k, p.extent.X.Hi)
		y1 = p.extent.Y.Hi
	}
	p.postclip = ClipRectangle(x0, y0, x1, y1)
}

func identityClip(sink Stream) Stream { return sink }

func reflectSign(reflect bool) float64 {
	if reflect {
		return -1
	}
	return 1
}

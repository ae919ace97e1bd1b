// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package scale maps numeric domains to numeric or color ranges: continuous linear and
// power scales with nice ticks, and threshold color buckets.
package scale

import (
	"math"
	"slices"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

const niceMaxIterations = 10

// Continuous maps a numeric domain onto a range of R through an optional power
// transform. Domain and range hold at least two stops each; when their lengths differ
// the extra stops are ignored. A Continuous is safe for concurrent reads.
type Continuous[R any] struct {
	domain      []float64
	rng         []R
	interpolate Interpolator[R]
	clamp       bool
	unknown     R
	exponent    float64

	output func(float64) R
	input  func(float64) float64
}

// NewContinuous returns a linear scale with domain [0, 1] onto rng. It panics when rng
// has fewer than two values or interpolate is nil.
func NewContinuous[R any](rng []R, interpolate Interpolator[R]) *Continuous[R] {
	if len(rng) < 2 {
		panic("scale: range needs at least two values")
	}
	if interpolate == nil {
		panic("scale: nil interpolator")
	}
	s := &Continuous[R]{
		domain:      []float64{0, 1},
		rng:         slices.Clone(rng),
		interpolate: interpolate,
		exponent:    1,
	}
	s.rescale()
	return s
}

// NewLinear returns the identity scale over [0, 1]. Unknown inputs map to NaN.
func NewLinear() *Continuous[float64] {
	return NewContinuous([]float64{0, 1}, InterpolateNumber).SetUnknown(math.NaN())
}

// NewPow returns a linear scale whose domain is raised to exponent before mapping.
// Negative inputs keep their sign.
func NewPow(exponent float64) *Continuous[float64] {
	return NewLinear().SetExponent(exponent)
}

func NewSqrt() *Continuous[float64] {
	return NewPow(0.5)
}

// NewLinearColor returns a linear scale from domain [0, 1] to the colors from and to,
// blended in sRGB.
func NewLinearColor(from, to colorful.Color) *Continuous[colorful.Color] {
	return NewContinuous([]colorful.Color{from, to}, InterpolateRGB)
}

// Scale maps x from the domain to the range. NaN maps to the unknown value.
func (s *Continuous[R]) Scale(x float64) R {
	if math.IsNaN(x) {
		return s.unknown
	}
	return s.output(s.transform(s.clampValue(x)))
}

// Invert maps y from the range back to the domain. It reports false when the range is
// not numeric or y is NaN.
func (s *Continuous[R]) Invert(y float64) (float64, bool) {
	if s.input == nil || math.IsNaN(y) {
		return math.NaN(), false
	}
	return s.clampValue(s.untransform(s.input(y))), true
}

func (s *Continuous[R]) Domain() []float64 { return slices.Clone(s.domain) }

// SetDomain replaces the domain stops. It panics with fewer than two values.
func (s *Continuous[R]) SetDomain(domain ...float64) *Continuous[R] {
	if len(domain) < 2 {
		panic("scale: domain needs at least two values")
	}
	s.domain = slices.Clone(domain)
	return s.rescale()
}

func (s *Continuous[R]) Range() []R { return slices.Clone(s.rng) }

// SetRange replaces the range stops. It panics with fewer than two values.
func (s *Continuous[R]) SetRange(rng ...R) *Continuous[R] {
	if len(rng) < 2 {
		panic("scale: range needs at least two values")
	}
	s.rng = slices.Clone(rng)
	return s.rescale()
}

func (s *Continuous[R]) SetInterpolate(interpolate Interpolator[R]) *Continuous[R] {
	if interpolate == nil {
		panic("scale: nil interpolator")
	}
	s.interpolate = interpolate
	return s.rescale()
}

func (s *Continuous[R]) Clamp() bool { return s.clamp }

// SetClamp restricts inputs to the domain extent, and thereby outputs to the range.
func (s *Continuous[R]) SetClamp(clamp bool) *Continuous[R] {
	s.clamp = clamp
	return s
}

func (s *Continuous[R]) Unknown() R { return s.unknown }

func (s *Continuous[R]) SetUnknown(unknown R) *Continuous[R] {
	s.unknown = unknown
	return s
}

func (s *Continuous[R]) Exponent() float64 { return s.exponent }

// SetExponent sets the power transform. An exponent of 1 gives a linear scale.
func (s *Continuous[R]) SetExponent(exponent float64) *Continuous[R] {
	s.exponent = exponent
	return s.rescale()
}

// Ticks returns about count representative values from the domain extent.
func (s *Continuous[R]) Ticks(count int) []float64 {
	return Ticks(s.domain[0], s.domain[len(s.domain)-1], count)
}

// Nice extends the domain so that its first and last stops are round values of the
// tick step for count.
func (s *Continuous[R]) Nice(count int) *Continuous[R] {
	d := slices.Clone(s.domain)
	i0, i1 := 0, len(d)-1
	start, stop := d[i0], d[i1]
	if stop < start {
		start, stop = stop, start
		i0, i1 = i1, i0
	}

	var prestep float64
	for range niceMaxIterations {
		step := TickIncrement(start, stop, count)
		switch {
		case step == prestep:
			d[i0], d[i1] = start, stop
			s.domain = d
			return s.rescale()
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return s
		}
		prestep = step
	}
	return s
}

// Copy returns an independent scale with the same configuration.
func (s *Continuous[R]) Copy() *Continuous[R] {
	c := *s
	c.domain = slices.Clone(s.domain)
	c.rng = slices.Clone(s.rng)
	return c.rescale()
}

func (s *Continuous[R]) rescale() *Continuous[R] {
	domain := make([]float64, len(s.domain))
	for i, v := range s.domain {
		domain[i] = s.transform(v)
	}
	s.output = piecewise(domain, s.rng, s.interpolate)
	s.input = nil
	if rng, ok := any(s.rng).([]float64); ok {
		s.input = piecewise(rng, domain, InterpolateNumber)
	}
	return s
}

func (s *Continuous[R]) clampValue(x float64) float64 {
	if !s.clamp {
		return x
	}
	n := min(len(s.domain), len(s.rng))
	lo, hi := s.domain[0], s.domain[n-1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, x))
}

func (s *Continuous[R]) transform(x float64) float64 {
	switch s.exponent {
	case 1:
		return x
	case 0.5:
		if x < 0 {
			return -math.Sqrt(-x)
		}
		return math.Sqrt(x)
	}
	if x < 0 {
		return -math.Pow(-x, s.exponent)
	}
	return math.Pow(x, s.exponent)
}

func (s *Continuous[R]) untransform(x float64) float64 {
	switch s.exponent {
	case 1:
		return x
	case 0.5:
		if x < 0 {
			return -x * x
		}
		return x * x
	}
	if x < 0 {
		return -math.Pow(-x, 1/s.exponent)
	}
	return math.Pow(x, 1/s.exponent)
}

func piecewise[R any](domain []float64, rng []R, interpolate Interpolator[R]) func(float64) R {
	if min(len(domain), len(rng)) > 2 {
		return polymap(domain, rng, interpolate)
	}
	return bimap(domain, rng, interpolate)
}

func bimap[R any](domain []float64, rng []R, interpolate Interpolator[R]) func(float64) R {
	d0, d1 := domain[0], domain[1]
	var norm func(float64) float64
	var interp func(float64) R
	if d1 < d0 {
		norm = normalize(d1, d0)
		interp = interpolate(rng[1], rng[0])
	} else {
		norm = normalize(d0, d1)
		interp = interpolate(rng[0], rng[1])
	}
	return func(x float64) R {
		return interp(norm(x))
	}
}

func polymap[R any](domain []float64, rng []R, interpolate Interpolator[R]) func(float64) R {
	j := min(len(domain), len(rng)) - 1
	domain = slices.Clone(domain[:j+1])
	rng = slices.Clone(rng[:j+1])
	if domain[j] < domain[0] {
		slices.Reverse(domain)
		slices.Reverse(rng)
	}

	norms := make([]func(float64) float64, j)
	interps := make([]func(float64) R, j)
	for i := range j {
		norms[i] = normalize(domain[i], domain[i+1])
		interps[i] = interpolate(rng[i], rng[i+1])
	}
	return func(x float64) R {
		i := bisectRight(domain, x, 1, j) - 1
		return interps[i](norms[i](x))
	}
}

// normalize maps [a, b] onto [0, 1]. A collapsed interval maps everything to 0.5.
func normalize(a, b float64) func(float64) float64 {
	d := b - a
	if d == 0 || math.IsNaN(d) {
		c := 0.5
		if math.IsNaN(d) {
			c = math.NaN()
		}
		return func(float64) float64 { return c }
	}
	return func(x float64) float64 {
		return (x - a) / d
	}
}

// bisectRight returns the insertion index for x in a[lo:hi] after any equal values.
func bisectRight(a []float64, x float64, lo, hi int) int {
	return lo + sort.Search(hi-lo, func(i int) bool {
		return x < a[lo+i]
	})
}

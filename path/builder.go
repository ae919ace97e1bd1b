// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package path

import (
	"fmt"
	"math"
	"strings"
)

const (
	builderEpsilon    = 1e-6
	builderTauEpsilon = 2*math.Pi - builderEpsilon
)

// Builder is a Context that serializes drawing commands to SVG path data.
type Builder struct {
	buf        strings.Builder
	f          formatter
	x0, y0     float64
	x1, y1     float64
	hasCurrent bool
}

// NewBuilder returns a Builder that rounds numbers to digits fractional digits, or
// does not round them when digits is -1. It panics on digits below -1.
func NewBuilder(digits int) *Builder {
	if digits < -1 {
		panic(fmt.Sprintf("path: invalid digits %d", digits))
	}
	return &Builder{f: newFormatter(digits)}
}

func (b *Builder) MoveTo(x, y float64) {
	b.x0, b.y0, b.x1, b.y1 = x, y, x, y
	b.hasCurrent = true
	b.f.point(&b.buf, 'M', x, y)
}

func (b *Builder) LineTo(x, y float64) {
	b.x1, b.y1 = x, y
	b.hasCurrent = true
	b.f.point(&b.buf, 'L', x, y)
}

func (b *Builder) ClosePath() {
	if !b.hasCurrent {
		return
	}
	b.x1, b.y1 = b.x0, b.y0
	b.buf.WriteByte('Z')
}

// Arc adds a clockwise arc. It panics on a negative radius.
func (b *Builder) Arc(x, y, r, a0, a1 float64) {
	if r < 0 {
		panic(fmt.Sprintf("path: negative radius %v", r))
	}
	dx := r * math.Cos(a0)
	dy := r * math.Sin(a0)
	x0 := x + dx
	y0 := y + dy
	da := a1 - a0

	switch {
	case !b.hasCurrent:
		b.MoveTo(x0, y0)
	case math.Abs(b.x1-x0) > builderEpsilon || math.Abs(b.y1-y0) > builderEpsilon:
		b.LineTo(x0, y0)
	}

	if r == 0 {
		return
	}
	if da < 0 {
		da = math.Mod(da, 2*math.Pi) + 2*math.Pi
	}

	switch {
	case da > builderTauEpsilon:
		// Full circle as two half arcs.
		b.arcTo(r, true, x-dx, y-dy)
		b.arcTo(r, true, x0, y0)
		b.x1, b.y1 = x0, y0
	case da > builderEpsilon:
		b.x1 = x + r*math.Cos(a1)
		b.y1 = y + r*math.Sin(a1)
		b.arcTo(r, da >= math.Pi, b.x1, b.y1)
	}
}

func (b *Builder) arcTo(r float64, large bool, x, y float64) {
	b.buf.WriteByte('A')
	b.f.number(&b.buf, r)
	b.buf.WriteByte(',')
	b.f.number(&b.buf, r)
	if large {
		b.buf.WriteString(",0,1,1,")
	} else {
		b.buf.WriteString(",0,0,1,")
	}
	b.f.number(&b.buf, x)
	b.buf.WriteByte(',')
	b.f.number(&b.buf, y)
}

// Rect adds a closed rectangle with its corner at (x, y).
func (b *Builder) Rect(x, y, w, h float64) {
	b.MoveTo(x, y)
	b.buf.WriteByte('h')
	b.f.number(&b.buf, w)
	b.buf.WriteByte('v')
	b.f.number(&b.buf, h)
	b.buf.WriteByte('h')
	b.f.number(&b.buf, -w)
	b.buf.WriteByte('Z')
}

// String returns the path data built so far.
func (b *Builder) String() string {
	return b.buf.String()
}

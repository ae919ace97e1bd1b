// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package scale

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lucasb-eyer/go-colorful"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestContinuous_Scale(t *testing.T) {
	tests := []struct {
		name  string
		scale *Continuous[float64]
		in    []float64
		want  []float64
	}{
		{
			name:  "identity",
			scale: NewLinear(),
			in:    []float64{0, 0.25, 1, 2},
			want:  []float64{0, 0.25, 1, 2},
		},
		{
			name:  "linear",
			scale: NewLinear().SetDomain(0, 10).SetRange(0, 100),
			in:    []float64{-1, 0, 5, 15},
			want:  []float64{-10, 0, 50, 150},
		},
		{
			name:  "clamp",
			scale: NewLinear().SetDomain(0, 10).SetRange(0, 100).SetClamp(true),
			in:    []float64{-1, 5, 15},
			want:  []float64{0, 50, 100},
		},
		{
			name:  "reversed domain",
			scale: NewLinear().SetDomain(10, 0).SetRange(0, 100),
			in:    []float64{0, 2, 10},
			want:  []float64{100, 80, 0},
		},
		{
			name:  "collapsed domain",
			scale: NewLinear().SetDomain(3, 3).SetRange(0, 100),
			in:    []float64{-5, 3, 8},
			want:  []float64{50, 50, 50},
		},
		{
			name:  "polymap",
			scale: NewLinear().SetDomain(-1, 0, 1).SetRange(-100, 0, 10),
			in:    []float64{-2, -0.5, 0, 0.5, 2},
			want:  []float64{-200, -50, 0, 5, 20},
		},
		{
			name:  "reversed polymap",
			scale: NewLinear().SetDomain(1, 0, -1).SetRange(10, 0, -100),
			in:    []float64{-0.5, 0.5},
			want:  []float64{-50, 5},
		},
		{
			name:  "extra range stops ignored",
			scale: NewLinear().SetDomain(0, 1).SetRange(0, 10, 1000),
			in:    []float64{0.5},
			want:  []float64{5},
		},
		{
			name:  "sqrt",
			scale: NewSqrt().SetDomain(0, 100).SetRange(0, 10),
			in:    []float64{0, 25, 100},
			want:  []float64{0, 5, 10},
		},
		{
			name:  "sqrt keeps sign",
			scale: NewSqrt().SetDomain(-100, 100).SetRange(-10, 10),
			in:    []float64{-25, 25},
			want:  []float64{-5, 5},
		},
		{
			name:  "pow",
			scale: NewPow(2).SetDomain(0, 2).SetRange(0, 4),
			in:    []float64{1, 2},
			want:  []float64{1, 4},
		},
		{
			name:  "round",
			scale: NewLinear().SetRange(0, 10).SetInterpolate(InterpolateRound),
			in:    []float64{0.24, 0.25},
			want:  []float64{2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]float64, len(tt.in))
			for i, x := range tt.in {
				got[i] = tt.scale.Scale(x)
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Scale() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContinuous_Unknown(t *testing.T) {
	s := NewLinear()
	if got := s.Scale(math.NaN()); !math.IsNaN(got) {
		t.Errorf("Scale(NaN) = %v, want NaN", got)
	}
	s.SetUnknown(-1)
	if got := s.Scale(math.NaN()); got != -1 {
		t.Errorf("Scale(NaN) = %v, want -1", got)
	}
}

func TestContinuous_Invert(t *testing.T) {
	tests := []struct {
		name  string
		scale *Continuous[float64]
		in    float64
		want  float64
	}{
		{"linear", NewLinear().SetDomain(0, 10).SetRange(0, 100), 50, 5},
		{"reversed", NewLinear().SetDomain(10, 0).SetRange(0, 100), 80, 2},
		{"sqrt", NewSqrt().SetDomain(0, 100).SetRange(0, 10), 5, 25},
		{"clamp", NewLinear().SetDomain(0, 10).SetRange(0, 100).SetClamp(true), 200, 10},
		{"polymap", NewLinear().SetDomain(-1, 0, 1).SetRange(-100, 0, 10), 5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.scale.Invert(tt.in)
			if !ok {
				t.Fatalf("Invert(%v) not ok", tt.in)
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Invert() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("NaN", func(t *testing.T) {
		if _, ok := NewLinear().Invert(math.NaN()); ok {
			t.Error("Invert(NaN) ok, want false")
		}
	})
	t.Run("color range", func(t *testing.T) {
		s := NewLinearColor(colorful.Color{}, colorful.Color{R: 1, G: 1, B: 1})
		if _, ok := s.Invert(0.5); ok {
			t.Error("Invert() ok for color range, want false")
		}
	})
}

func TestContinuous_Nice(t *testing.T) {
	tests := []struct {
		name   string
		domain []float64
		count  int
		want   []float64
	}{
		{"already nice", []float64{0, 1}, 10, []float64{0, 1}},
		{"fraction", []float64{0.5, 9.7}, 10, []float64{0, 10}},
		{"reversed", []float64{9.7, 0.5}, 10, []float64{10, 0}},
		{"coarse", []float64{1.1, 10.9}, 2, []float64{0, 20}},
		{"large", []float64{123, 9876}, 10, []float64{0, 10000}},
		{"middle stops kept", []float64{0.5, 3, 9.7}, 10, []float64{0, 3, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLinear().SetDomain(tt.domain...).Nice(tt.count).Domain()
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Nice() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContinuous_Copy(t *testing.T) {
	s := NewLinear().SetDomain(0, 10).SetRange(0, 100)
	c := s.Copy().SetDomain(0, 20).SetClamp(true)

	if got := s.Scale(10); got != 100 {
		t.Errorf("original Scale(10) = %v, want 100", got)
	}
	if got := c.Scale(10); got != 50 {
		t.Errorf("copy Scale(10) = %v, want 50", got)
	}
	if s.Clamp() {
		t.Error("original clamp changed by copy")
	}
}

func TestContinuous_Color(t *testing.T) {
	black := colorful.Color{}
	white := colorful.Color{R: 1, G: 1, B: 1}

	s := NewLinearColor(black, white)
	tests := []struct {
		in   float64
		want string
	}{
		{0, "#000000"},
		{0.5, "#808080"},
		{1, "#ffffff"},
		{2, "#ffffff"},
	}
	for _, tt := range tests {
		if got := s.Scale(tt.in).Hex(); got != tt.want {
			t.Errorf("Scale(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}

	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}
	hcl := NewContinuous([]colorful.Color{red, blue}, InterpolateHCL)
	for _, x := range []float64{0, 1} {
		want := []colorful.Color{red, blue}[int(x)]
		if got := hcl.Scale(x); !got.AlmostEqualRgb(want) {
			t.Errorf("HCL Scale(%v) = %v, want %v", x, got.Hex(), want.Hex())
		}
	}
	if got := hcl.Scale(0.5); !got.IsValid() {
		t.Errorf("HCL Scale(0.5) = %v, want valid color", got)
	}
}

func TestContinuous_Panics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"short domain", func() { NewLinear().SetDomain(1) }},
		{"short range", func() { NewLinear().SetRange(1) }},
		{"short constructor range", func() { NewContinuous([]float64{1}, InterpolateNumber) }},
		{"nil interpolator", func() { NewLinear().SetInterpolate(nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestInterpolate(t *testing.T) {
	if got := InterpolateNumber(2, 6)(0.25); got != 3 {
		t.Errorf("InterpolateNumber(2, 6)(0.25) = %v, want 3", got)
	}
	if got := InterpolateNumber(2, 6)(1.5); got != 8 {
		t.Errorf("InterpolateNumber(2, 6)(1.5) = %v, want 8", got)
	}
	if got := InterpolateRound(0, 3)(0.5); got != 2 {
		t.Errorf("InterpolateRound(0, 3)(0.5) = %v, want 2", got)
	}
	red := colorful.Color{R: 1}
	if got := InterpolateRGB(red, colorful.Color{G: 1})(0.5).Hex(); got != "#808000" {
		t.Errorf("InterpolateRGB() = %s, want #808000", got)
	}
}

func BenchmarkContinuous_Scale(b *testing.B) {
	for _, n := range []int{1e+2, 1e+3, 1e+4, 1e+5} {
		b.Run(fmt.Sprintf("Stops=%d", n), func(b *testing.B) {
			domain := make([]float64, n)
			rng := make([]float64, n)
			for i := range n {
				domain[i] = float64(i)
				rng[i] = float64(i * i)
			}
			s := NewLinear().SetDomain(domain...).SetRange(rng...)
			x := float64(n) / 3
			b.ResetTimer()
			for b.Loop() {
				s.Scale(x)
			}
		})
	}
}

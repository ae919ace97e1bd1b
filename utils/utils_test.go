// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package utils

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

func TestGenerateRandomPoints_Length(t *testing.T) {
	tests := []struct {
		name string
		cnt  int
		seed int64
	}{
		{"zero points", 0, 42},
		{"one point", 1, 42},
		{"ten points", 10, 0},
		{"hundred points", 100, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := GenerateRandomPoints(tt.cnt, tt.seed)
			if len(points) != tt.cnt {
				t.Errorf("GenerateRandomPoints(%v, %v) len = %v, want %v", tt.cnt, tt.seed,
					len(points), tt.cnt)
			}
			sites := GenerateRandomLonLat(tt.cnt, tt.seed)
			if len(sites) != tt.cnt {
				t.Errorf("GenerateRandomLonLat(%v, %v) len = %v, want %v", tt.cnt, tt.seed,
					len(sites), tt.cnt)
			}
		})
	}
}

func TestGenerateRandomPoints_InUnitSquare(t *testing.T) {
	const (
		cnt  = 100
		seed = 0
	)
	unit := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1})
	for i, p := range GenerateRandomPoints(cnt, seed) {
		if !unit.ContainsPoint(p) {
			t.Errorf("GenerateRandomPoints(%v, %v)[%d] = %v, want inside %v", cnt, seed, i, p, unit)
		}
	}
}

func TestGenerateRandomLonLat_Range(t *testing.T) {
	const (
		cnt  = 100
		seed = 0
	)
	for i, p := range GenerateRandomLonLat(cnt, seed) {
		if p.X < -180 || p.X > 180 || p.Y < -90 || p.Y > 90 {
			t.Errorf("GenerateRandomLonLat(%v, %v)[%d] = %v, want lon in [-180 180], lat in [-90 90]",
				cnt, seed, i, p)
		}
	}
}

func TestLonLatToPoint_OnUnitSphere(t *testing.T) {
	const (
		cnt     = 100
		seed    = 0
		epsilon = 1e-12
	)
	for i, p := range GenerateRandomLonLat(cnt, seed) {
		norm := LonLatToPoint(p).Norm()
		if math.Abs(norm-1.0) > epsilon {
			t.Errorf("LonLatToPoint(sites[%d]) norm = %v, want ≈1", i, norm)
		}
	}
}

func TestGenerateRandomPoints_Determinism(t *testing.T) {
	const (
		cnt  = 10
		seed = 0
	)
	a := GenerateRandomPoints(cnt, seed)
	b := GenerateRandomPoints(cnt, seed)
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("GenerateRandomPoints(%v, %v) mismatch (-want +got):\n%v", cnt, seed, diff)
	}
	c := GenerateRandomLonLat(cnt, seed)
	d := GenerateRandomLonLat(cnt, seed)
	if diff := cmp.Diff(d, c); diff != "" {
		t.Errorf("GenerateRandomLonLat(%v, %v) mismatch (-want +got):\n%v", cnt, seed, diff)
	}
}

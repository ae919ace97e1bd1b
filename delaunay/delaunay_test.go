// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"fmt"
	"math"
	"testing"

	"github.com/2dChan/choropleth/utils"
	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

// TriangulationOptions

func TestWithEdgeStackCapacity(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"capacity positive", 16, false},
		{"capacity one", 1, false},
		{"capacity zero", 0, true},
		{"capacity negative", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &TriangulationOptions{EdgeStackCapacity: defaultEdgeStackCapacity}
			err := WithEdgeStackCapacity(tt.n)(opts)
			if (err != nil) != tt.wantErr {
				errValMsg := "nil"
				if tt.wantErr {
					errValMsg = "non-nil"
				}
				t.Errorf("WithEdgeStackCapacity(%v) error = %v, want %v", tt.n, err, errValMsg)
			}
			if err == nil && opts.EdgeStackCapacity != tt.n {
				t.Errorf("WithEdgeStackCapacity(%v) opts.EdgeStackCapacity = %v, want %v", tt.n,
					opts.EdgeStackCapacity, tt.n)
			}
		})
	}
}

func TestNewTriangulation_InvalidOption(t *testing.T) {
	points := utils.GenerateRandomPoints(10, 0)
	if _, err := NewTriangulation(points, WithEdgeStackCapacity(0)); err == nil {
		t.Errorf("NewTriangulation(..., WithEdgeStackCapacity(0)) error = nil, want non-nil")
	}
}

// Triangulation

func TestNewTriangulation_DegenerateInput(t *testing.T) {
	tests := []struct {
		name     string
		points   []r2.Point
		wantHull []int
	}{
		{"no points", nil, []int{}},
		{"one point", []r2.Point{{X: 1, Y: 1}}, []int{0}},
		{"two points", []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, []int{0, 1}},
		{"coincident", []r2.Point{{X: 2, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 2}}, []int{0}},
		{
			"collinear horizontal",
			[]r2.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
			[]int{0, 2, 3, 1},
		},
		{
			"collinear vertical",
			[]r2.Point{{X: 5, Y: 2}, {X: 5, Y: 0}, {X: 5, Y: 1}},
			[]int{1, 2, 0},
		},
		{
			"collinear with duplicate",
			[]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 2}},
			[]int{0, 1, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, err := NewTriangulation(tt.points)
			if err != nil {
				t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
			}
			if n := dt.NumTriangles(); n != 0 {
				t.Errorf("dt.NumTriangles() = %d, want 0", n)
			}
			if diff := cmp.Diff(tt.wantHull, dt.Hull); diff != "" {
				t.Errorf("dt.Hull mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewTriangulation_Square(t *testing.T) {
	points := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	dt, err := NewTriangulation(points)
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}
	if n := dt.NumTriangles(); n != 2 {
		t.Errorf("dt.NumTriangles() = %d, want 2", n)
	}
	if n := len(dt.Hull); n != 4 {
		t.Errorf("len(dt.Hull) = %d, want 4", n)
	}
	verifyTriangulation(t, dt)
}

func TestNewTriangulation_NearDuplicateSkipped(t *testing.T) {
	points := []r2.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5},
	}
	dt, err := NewTriangulation(points)
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}
	if n := dt.NumTriangles(); n != 4 {
		t.Errorf("dt.NumTriangles() = %d, want 4", n)
	}
	used := 0
	for _, v := range dt.Triangles {
		if v == 4 || v == 5 {
			used |= 1 << (v - 4)
		}
	}
	if used != 1 && used != 2 {
		t.Errorf("duplicate center points used mask = %b, want exactly one", used)
	}
	verifyTriangulation(t, dt)
}

func TestNewTriangulation_Random(t *testing.T) {
	sizes := []int{3, 10, 100, 1000}
	for _, n := range sizes {
		t.Run(fmt.Sprintf("N%d", n), func(t *testing.T) {
			dt := mustNewTriangulation(t, n)

			if len(dt.Triangles)%3 != 0 {
				t.Fatalf("len(dt.Triangles) = %d, want multiple of 3", len(dt.Triangles))
			}
			if want := 2*n - len(dt.Hull) - 2; dt.NumTriangles() != want {
				t.Errorf("dt.NumTriangles() = %d, want %d", dt.NumTriangles(), want)
			}
			seen := make([]bool, n)
			for _, v := range dt.Triangles {
				seen[v] = true
			}
			for i, ok := range seen {
				if !ok {
					t.Errorf("point %d not referenced by any triangle", i)
				}
			}
			verifyTriangulation(t, dt)
		})
	}
}

func TestNewTriangulation_Grid(t *testing.T) {
	var points []r2.Point
	for y := range 10 {
		for x := range 10 {
			points = append(points, r2.Point{X: float64(x), Y: float64(y)})
		}
	}
	dt, err := NewTriangulation(points)
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}
	verifyTriangulation(t, dt)

	area := 0.0
	for i := range dt.NumTriangles() {
		a, b, c := dt.TriangleVertices(i)
		area += math.Abs(triangleArea(a, b, c))
	}
	if math.Abs(area-81) > 1e-9 {
		t.Errorf("triangle area sum = %v, want 81", area)
	}
}

func TestNewTriangulation_SmallEdgeStack(t *testing.T) {
	points := utils.GenerateRandomPoints(1000, 7)
	want, err := NewTriangulation(points)
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}
	got, err := NewTriangulation(points, WithEdgeStackCapacity(1))
	if err != nil {
		t.Fatalf("NewTriangulation(..., WithEdgeStackCapacity(1)) error = %v, want nil", err)
	}
	if diff := cmp.Diff(want.Triangles, got.Triangles); diff != "" {
		t.Errorf("dt.Triangles mismatch (-want +got):\n%s", diff)
	}
}

func TestTriangulation_TriangleVertices(t *testing.T) {
	assertPanic := func(dt *Triangulation, in int) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("dt.TriangleVertices(%d) did not panic, want panic", in)
			}
		}()
		dt.TriangleVertices(in)
	}

	points := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	dt := &Triangulation{
		Points:    points,
		Triangles: []int{0, 2, 1},
		Halfedges: []int{-1, -1, -1},
	}

	want := [3]r2.Point{points[0], points[2], points[1]}
	a, b, c := dt.TriangleVertices(0)
	got := [3]r2.Point{a, b, c}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dt.TriangleVertices(0) mismatch (-want +got):\n%s", diff)
	}

	assertPanic(dt, -1)
	assertPanic(dt, dt.NumTriangles())
}

func TestNextPrevHalfedge(t *testing.T) {
	tests := []struct {
		e, next, prev int
	}{
		{0, 1, 2},
		{1, 2, 0},
		{2, 0, 1},
		{3, 4, 5},
		{5, 3, 4},
	}
	for _, tt := range tests {
		if got := NextHalfedge(tt.e); got != tt.next {
			t.Errorf("NextHalfedge(%d) = %d, want %d", tt.e, got, tt.next)
		}
		if got := PrevHalfedge(tt.e); got != tt.prev {
			t.Errorf("PrevHalfedge(%d) = %d, want %d", tt.e, got, tt.prev)
		}
	}
}

// Benchmarks

func BenchmarkNewTriangulation(b *testing.B) {
	sizes := []int{1e+2, 1e+3, 1e+4, 1e+5}
	for _, pointsCnt := range sizes {
		b.Run(fmt.Sprintf("N%d", pointsCnt), func(b *testing.B) {
			points := utils.GenerateRandomPoints(pointsCnt, 0)

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				_, err := NewTriangulation(points)
				if err != nil {
					b.Fatalf("NewTriangulation(...) error = %v, want nil", err)
				}
			}
		})
	}
}

// Helpers

func mustNewTriangulation(t *testing.T, n int) *Triangulation {
	t.Helper()
	points := utils.GenerateRandomPoints(n, 0)

	dt, err := NewTriangulation(points)
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}
	return dt
}

// verifyTriangulation checks half-edge symmetry, the local Delaunay condition, hull
// convexity and that triangles tile the hull.
func verifyTriangulation(t *testing.T, dt *Triangulation) {
	t.Helper()
	pts := dt.Points

	for e, o := range dt.Halfedges {
		if o == -1 {
			continue
		}
		if dt.Halfedges[o] != e {
			t.Errorf("dt.Halfedges[%d] = %d, but dt.Halfedges[%d] = %d", e, o, o, dt.Halfedges[o])
			continue
		}
		if dt.Triangles[e] != dt.Triangles[NextHalfedge(o)] {
			t.Errorf("half-edges %d and %d do not share endpoints", e, o)
		}
		p0 := pts[dt.Triangles[PrevHalfedge(e)]]
		pr := pts[dt.Triangles[e]]
		pl := pts[dt.Triangles[NextHalfedge(e)]]
		p1 := pts[dt.Triangles[PrevHalfedge(o)]]
		if InCircle(p0.X, p0.Y, pr.X, pr.Y, pl.X, pl.Y, p1.X, p1.Y) {
			t.Errorf("edge %d is not locally Delaunay", e)
		}
	}

	hull := dt.Hull
	for i, h := range hull {
		q := hull[(i+1)%len(hull)]
		for j, p := range pts {
			if Orient(p.X, p.Y, pts[h].X, pts[h].Y, pts[q].X, pts[q].Y) {
				t.Errorf("point %d lies outside hull edge %d->%d", j, h, q)
			}
		}
	}

	hullArea := 0.0
	for i, h := range hull {
		q := hull[(i+1)%len(hull)]
		hullArea += pts[h].X*pts[q].Y - pts[q].X*pts[h].Y
	}
	hullArea = math.Abs(hullArea) / 2

	area := 0.0
	for i := range dt.NumTriangles() {
		a, b, c := dt.TriangleVertices(i)
		area += math.Abs(triangleArea(a, b, c))
	}
	if math.Abs(area-hullArea) > 1e-9*math.Max(1, hullArea) {
		t.Errorf("triangle area sum = %v, want hull area %v", area, hullArea)
	}
}

func triangleArea(a, b, c r2.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

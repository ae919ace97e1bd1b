// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package geodelaunay triangulates geographic sites on the unit sphere and answers
// great-circle nearest-site queries. Sites are (longitude, latitude) pairs in degrees.
package geodelaunay

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-12
)

// Triangulation is the spherical Delaunay triangulation of a set of sites, which is the
// convex hull of the sites on the unit sphere.
type Triangulation struct {
	Sites     []r2.Point
	Vertices  s2.PointVector
	Triangles [][3]int
	// NOTE: Sort in CCW per vertex(look out of sphere)
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int

	// neighbors[IncidentTriangleOffsets[i]+k] follows vertex i in its k-th incident triangle.
	neighbors []int
}

// TriangulationOptions holds configuration for NewTriangulation.
type TriangulationOptions struct {
	Eps float64
}

// TriangulationOption configures TriangulationOptions.
type TriangulationOption func(*TriangulationOptions) error

// WithEps sets the convex hull tolerance. It must be positive.
func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if !(eps > 0) {
			return fmt.Errorf("WithEps: eps %v must be positive", eps)
		}
		o.Eps = eps
		return nil
	}
}

// NewTriangulation computes the spherical Delaunay triangulation of sites given as
// (longitude, latitude) in degrees. At least four distinct sites not on one great
// circle are required.
func NewTriangulation(sites []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := len(sites)
	if numVertices < 4 {
		return nil,
			errors.New("geodelaunay: insufficient sites for triangulation (minimum 4 required)")
	}
	numTriangles := 2 * (numVertices - 2)
	dt := &Triangulation{
		Sites:                   sites,
		Vertices:                make(s2.PointVector, numVertices),
		Triangles:               make([][3]int, numTriangles),
		IncidentTriangleIndices: make([]int, numTriangles*3),
		IncidentTriangleOffsets: make([]int, numVertices+1),
		neighbors:               make([]int, numTriangles*3),
	}

	r3vertices := make([]r3.Vector, numVertices)
	for i, p := range sites {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return nil, fmt.Errorf("geodelaunay: site %d is NaN", i)
		}
		dt.Vertices[i] = lonLatPoint(p.X, p.Y)
		r3vertices[i] = dt.Vertices[i].Vector
	}
	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(r3vertices, true, true, opts.Eps)
	if len(ch.Indices) != numTriangles*3 {
		return nil, errors.New("geodelaunay: inconsistent number of indices returned from QuickHull")
	}

	for _, idx := range ch.Indices {
		dt.IncidentTriangleOffsets[idx+1]++
	}
	for i := range numVertices {
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}

	nxt := make([]int, numVertices)
	copy(nxt, dt.IncidentTriangleOffsets[:numVertices])
	for i := range numTriangles {
		base := i * 3
		for j := range 3 {
			v := ch.Indices[base+j]
			dt.Triangles[i][j] = v
			dt.IncidentTriangleIndices[nxt[v]] = i
			nxt[v]++
		}
		sortTriangleVerticesCCW(&dt.Triangles[i], dt.Vertices)
	}

	for i := range numVertices {
		incidentTriangles := dt.IncidentTriangles(i)
		sortIncidentTriangleIndicesCCW(i, incidentTriangles, dt.Triangles)

		offset := dt.IncidentTriangleOffsets[i]
		for k, tIdx := range incidentTriangles {
			dt.neighbors[offset+k] = NextVertex(dt.Triangles[tIdx], i)
		}
	}

	return dt, nil
}

// IncidentTriangles returns the triangles around vertex vIdx in counter-clockwise order.
// It panics if vIdx is out of range.
func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

// TriangleVertices returns the corners of triangle tIdx. It panics if tIdx is out of
// range.
func (dt *Triangulation) TriangleVertices(tIdx int) (s2.Point, s2.Point, s2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

// Neighbors returns the sites sharing an edge with site i, in counter-clockwise order
// looking out of the sphere. It returns nil for an out-of-range index.
func (dt *Triangulation) Neighbors(i int) []int {
	if i < 0 || i+1 >= len(dt.IncidentTriangleOffsets) {
		return nil
	}
	return dt.neighbors[dt.IncidentTriangleOffsets[i]:dt.IncidentTriangleOffsets[i+1]]
}

// Find returns the index of the site nearest to (lon, lat) by great-circle distance,
// walking the triangulation from site start. It returns -1 for a NaN query.
func (dt *Triangulation) Find(lon, lat float64, start int) int {
	if math.IsNaN(lon) || math.IsNaN(lat) || len(dt.Vertices) == 0 {
		return -1
	}
	if start < 0 || start >= len(dt.Vertices) {
		start = 0
	}

	q := lonLatPoint(lon, lat)
	i := start
	best := s2.ChordAngleBetweenPoints(q, dt.Vertices[i])
	for {
		next := i
		for _, n := range dt.Neighbors(i) {
			if d := s2.ChordAngleBetweenPoints(q, dt.Vertices[n]); d < best {
				next, best = n, d
			}
		}
		if next == i {
			return i
		}
		i = next
	}
}

func lonLatPoint(lon, lat float64) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
}

func sortTriangleVerticesCCW(t *[3]int, v s2.PointVector) {
	p0, p1, p2 := v[t[0]], v[t[1]], v[t[2]]
	norm := p1.Sub(p0.Vector).Cross(p2.Sub(p0.Vector))
	if norm.Dot(p0.Vector) < 0 {
		t[1], t[2] = t[2], t[1]
	}
}

func sortIncidentTriangleIndicesCCW(vIdx int, incidentTris []int, tris [][3]int) {
	n := len(incidentTris)
	for i := 1; i < n; i++ {
		nxt := NextVertex(tris[incidentTris[i-1]], vIdx)
		for j := i; j < n; j++ {
			prv := PrevVertex(tris[incidentTris[j]], vIdx)
			if nxt == prv {
				incidentTris[i], incidentTris[j] = incidentTris[j], incidentTris[i]
				break
			}
		}
	}
}

// PrevVertex returns the vertex preceding vIdx in triangle t. It panics if vIdx is not a
// corner of t.
func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

// NextVertex returns the vertex following vIdx in triangle t. It panics if vIdx is not a
// corner of t.
func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}

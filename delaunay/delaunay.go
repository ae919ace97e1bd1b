// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunay implements planar Delaunay triangulation with a sweep-hull
// algorithm and robust orientation predicates.
package delaunay

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

const (
	defaultEdgeStackCapacity = 512
)

// epsilon is the distance below which consecutive points in sorted order are treated as
// duplicates.
var epsilon = math.Pow(2, -52)

// Triangulation is a planar Delaunay triangulation stored as flat half-edge arrays.
//
// Triangle t consists of half-edges 3t, 3t+1 and 3t+2; Triangles[e] is the vertex the
// half-edge e starts at. Halfedges[e] is the opposite half-edge in the adjacent
// triangle, or -1 when e lies on the convex hull.
type Triangulation struct {
	Points    []r2.Point
	Triangles []int
	Halfedges []int
	// NOTE: Counter-clockwise with the y axis pointing down.
	Hull []int
}

// NumTriangles returns the number of triangles.
func (dt *Triangulation) NumTriangles() int {
	return len(dt.Triangles) / 3
}

// TriangleVertices returns the three vertices of triangle t.
// It panics if t is out of range.
func (dt *Triangulation) TriangleVertices(t int) (r2.Point, r2.Point, r2.Point) {
	if t < 0 || t >= dt.NumTriangles() {
		panic("TriangleVertices: t out of range")
	}
	return dt.Points[dt.Triangles[3*t]], dt.Points[dt.Triangles[3*t+1]], dt.Points[dt.Triangles[3*t+2]]
}

// NextHalfedge returns the next half-edge of the triangle containing e.
func NextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// PrevHalfedge returns the previous half-edge of the triangle containing e.
func PrevHalfedge(e int) int {
	if e%3 == 0 {
		return e + 2
	}
	return e - 1
}

// TriangulationOptions holds configuration for NewTriangulation.
type TriangulationOptions struct {
	// EdgeStackCapacity is the initial capacity of the edge-flip stack. The stack grows
	// when a flip chain exceeds it.
	EdgeStackCapacity int
}

// TriangulationOption configures TriangulationOptions.
type TriangulationOption func(*TriangulationOptions) error

// WithEdgeStackCapacity sets the initial capacity of the edge-flip stack.
func WithEdgeStackCapacity(n int) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if n <= 0 {
			return fmt.Errorf("WithEdgeStackCapacity: capacity must be positive, got %d", n)
		}
		o.EdgeStackCapacity = n
		return nil
	}
}

// NewTriangulation computes the Delaunay triangulation of points.
//
// Fewer than three distinct points, or points that are all collinear, produce no
// triangles; the hull then lists the distinct points in order along their line.
// The returned error is non-nil only for invalid options.
func NewTriangulation(points []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		EdgeStackCapacity: defaultEdgeStackCapacity,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	b := newBuilder(points, opts)
	b.triangulate()
	return &Triangulation{
		Points:    points,
		Triangles: b.triangles[:b.trianglesLen],
		Halfedges: b.halfedges[:b.trianglesLen],
		Hull:      b.hull,
	}, nil
}

// builder holds the scratch state of a single triangulation run.
type builder struct {
	points []r2.Point

	triangles    []int
	halfedges    []int
	trianglesLen int

	hashSize  int
	hullPrev  []int
	hullNext  []int
	hullTri   []int
	hullHash  []int
	hullStart int
	hull      []int

	ids   []int
	dists []float64

	cx, cy float64

	edgeStack []int
}

func newBuilder(points []r2.Point, opts TriangulationOptions) *builder {
	n := len(points)
	maxTriangles := max(2*n-5, 0)
	return &builder{
		points:    points,
		triangles: make([]int, maxTriangles*3),
		halfedges: make([]int, maxTriangles*3),
		hashSize:  int(math.Ceil(math.Sqrt(float64(n)))),
		hullPrev:  make([]int, n),
		hullNext:  make([]int, n),
		hullTri:   make([]int, n),
		ids:       make([]int, n),
		dists:     make([]float64, n),
		edgeStack: make([]int, 0, opts.EdgeStackCapacity),
	}
}

func (b *builder) triangulate() {
	points := b.points
	n := len(points)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
		b.ids[i] = i
	}
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2

	// Seed point closest to the center.
	i0, i1, i2 := -1, -1, -1
	minDist := math.Inf(1)
	for i, p := range points {
		if d := dist2(cx, cy, p.X, p.Y); d < minDist {
			i0 = i
			minDist = d
		}
	}
	if i0 == -1 {
		b.collinearHull()
		return
	}
	p0 := points[i0]

	// Point closest to the seed.
	minDist = math.Inf(1)
	for i, p := range points {
		if i == i0 {
			continue
		}
		if d := dist2(p0.X, p0.Y, p.X, p.Y); d < minDist && d > 0 {
			i1 = i
			minDist = d
		}
	}
	if i1 == -1 {
		b.collinearHull()
		return
	}
	p1 := points[i1]

	// Third point forming the smallest circumcircle with the first two.
	minRadius := math.Inf(1)
	for i, p := range points {
		if i == i0 || i == i1 {
			continue
		}
		if r := Circumradius2(p0.X, p0.Y, p1.X, p1.Y, p.X, p.Y); r < minRadius {
			i2 = i
			minRadius = r
		}
	}
	if math.IsInf(minRadius, 1) {
		b.collinearHull()
		return
	}
	p2 := points[i2]

	if Orient(p0.X, p0.Y, p1.X, p1.Y, p2.X, p2.Y) {
		i1, i2 = i2, i1
		p1, p2 = p2, p1
	}

	b.cx, b.cy = Circumcenter(p0.X, p0.Y, p1.X, p1.Y, p2.X, p2.Y)
	for i, p := range points {
		b.dists[i] = dist2(p.X, p.Y, b.cx, b.cy)
	}
	quicksort(b.ids, b.dists, 0, n-1)

	b.hullStart = i0
	hullSize := 3

	b.hullNext[i0], b.hullPrev[i2] = i1, i1
	b.hullNext[i1], b.hullPrev[i0] = i2, i2
	b.hullNext[i2], b.hullPrev[i1] = i0, i0

	b.hullTri[i0] = 0
	b.hullTri[i1] = 1
	b.hullTri[i2] = 2

	b.hullHash = make([]int, b.hashSize)
	for i := range b.hullHash {
		b.hullHash[i] = -1
	}
	b.hullHash[b.hashKey(p0.X, p0.Y)] = i0
	b.hullHash[b.hashKey(p1.X, p1.Y)] = i1
	b.hullHash[b.hashKey(p2.X, p2.Y)] = i2

	b.trianglesLen = 0
	b.addTriangle(i0, i1, i2, -1, -1, -1)

	var xp, yp float64
	for k, i := range b.ids {
		x, y := points[i].X, points[i].Y

		// Skip near-duplicate points.
		if k > 0 && math.Abs(x-xp) <= epsilon && math.Abs(y-yp) <= epsilon {
			continue
		}
		xp, yp = x, y

		// Skip seed triangle points.
		if i == i0 || i == i1 || i == i2 {
			continue
		}

		// Find a visible edge on the convex hull using the edge hash.
		start := 0
		key := b.hashKey(x, y)
		for j := range b.hashSize {
			start = b.hullHash[(key+j)%b.hashSize]
			if start != -1 && start != b.hullNext[start] {
				break
			}
		}

		if start == -1 {
			start = b.hullStart
		}
		start = b.hullPrev[start]
		e := start
		for {
			q := b.hullNext[e]
			if Orient(x, y, points[e].X, points[e].Y, points[q].X, points[q].Y) {
				break
			}
			e = q
			if e == start {
				e = -1
				break
			}
		}
		// No visible edge: most likely a near-duplicate point.
		if e == -1 {
			continue
		}

		t := b.addTriangle(e, i, b.hullNext[e], -1, -1, b.hullTri[e])

		b.hullTri[i] = b.legalize(t + 2)
		b.hullTri[e] = t
		hullSize++

		// Walk forward through the hull, adding triangles and flipping.
		nxt := b.hullNext[e]
		for {
			q := b.hullNext[nxt]
			if !Orient(x, y, points[nxt].X, points[nxt].Y, points[q].X, points[q].Y) {
				break
			}
			t = b.addTriangle(nxt, i, q, b.hullTri[i], -1, b.hullTri[nxt])
			b.hullTri[i] = b.legalize(t + 2)
			b.hullNext[nxt] = nxt // removed
			hullSize--
			nxt = q
		}

		// Walk backward from the other side.
		if e == start {
			for {
				q := b.hullPrev[e]
				if !Orient(x, y, points[q].X, points[q].Y, points[e].X, points[e].Y) {
					break
				}
				t = b.addTriangle(q, i, e, -1, b.hullTri[e], b.hullTri[q])
				b.legalize(t + 2)
				b.hullTri[q] = t
				b.hullNext[e] = e // removed
				hullSize--
				e = q
			}
		}

		b.hullStart = e
		b.hullPrev[i] = e
		b.hullNext[e] = i
		b.hullPrev[nxt] = i
		b.hullNext[i] = nxt

		b.hullHash[b.hashKey(x, y)] = i
		b.hullHash[b.hashKey(points[e].X, points[e].Y)] = e
	}

	b.hull = make([]int, hullSize)
	e := b.hullStart
	for i := range hullSize {
		b.hull[i] = e
		e = b.hullNext[e]
	}
}

// collinearHull handles input without a valid seed triangle: points are ordered along
// their common line and duplicates are dropped.
func (b *builder) collinearHull() {
	points := b.points
	n := len(points)
	b.trianglesLen = 0
	if n == 0 {
		b.hull = []int{}
		return
	}
	for i, p := range points {
		d := p.X - points[0].X
		if d == 0 {
			d = p.Y - points[0].Y
		}
		b.dists[i] = d
	}
	quicksort(b.ids, b.dists, 0, n-1)

	b.hull = make([]int, 0, n)
	d0 := math.Inf(-1)
	for _, id := range b.ids {
		if d := b.dists[id]; d > d0 {
			b.hull = append(b.hull, id)
			d0 = d
		}
	}
}

func (b *builder) hashKey(x, y float64) int {
	a := pseudoAngle(x-b.cx, y-b.cy)
	if math.IsNaN(a) {
		return 0
	}
	return int(math.Floor(a*float64(b.hashSize))) % b.hashSize
}

// legalize flips edges until the triangles around half-edge a satisfy the Delaunay
// condition, and returns the half-edge that ends up on the hull side.
func (b *builder) legalize(a int) int {
	points := b.points
	stack := b.edgeStack[:0]
	ar := 0

	for {
		bh := b.halfedges[a]

		a0 := a - a%3
		ar = a0 + (a+2)%3

		// Hull edge.
		if bh == -1 {
			if len(stack) == 0 {
				break
			}
			a = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		b0 := bh - bh%3
		al := a0 + (a+1)%3
		bl := b0 + (bh+2)%3

		p0 := b.triangles[ar]
		pr := b.triangles[a]
		pl := b.triangles[al]
		p1 := b.triangles[bl]

		illegal := InCircle(
			points[p0].X, points[p0].Y,
			points[pr].X, points[pr].Y,
			points[pl].X, points[pl].Y,
			points[p1].X, points[p1].Y)

		if !illegal {
			if len(stack) == 0 {
				break
			}
			a = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		b.triangles[a] = p1
		b.triangles[bh] = p0

		hbl := b.halfedges[bl]

		// The edge was swapped on the other side of the hull; fix the reference.
		if hbl == -1 {
			e := b.hullStart
			for {
				if b.hullTri[e] == bl {
					b.hullTri[e] = a
					break
				}
				e = b.hullPrev[e]
				if e == b.hullStart {
					break
				}
			}
		}
		b.link(a, hbl)
		b.link(bh, b.halfedges[ar])
		b.link(ar, bl)

		br := b0 + (bh+1)%3
		stack = append(stack, br)
	}

	b.edgeStack = stack
	return ar
}

func (b *builder) link(a, c int) {
	b.halfedges[a] = c
	if c != -1 {
		b.halfedges[c] = a
	}
}

func (b *builder) addTriangle(i0, i1, i2, a, bh, c int) int {
	t := b.trianglesLen
	b.triangles[t] = i0
	b.triangles[t+1] = i1
	b.triangles[t+2] = i2
	b.link(t, a)
	b.link(t+1, bh)
	b.link(t+2, c)
	b.trianglesLen += 3
	return t
}

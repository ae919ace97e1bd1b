// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package voronoi implements planar Voronoi diagrams and nearest-site queries, built on
// Delaunay triangulation.
package voronoi

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/2dChan/choropleth/delaunay"
	"github.com/golang/geo/r2"
)

const (
	collinearEps = 1e-10
	jitterScale  = 1e-8
)

// Diagram is a Voronoi diagram of planar sites clipped to a bounding rectangle.
//
// Cell data is stored in flat arrays: the polygon of cell i is
// CellVertices[CellOffsets[i]:CellOffsets[i+1]] and its Delaunay neighbors are
// CellNeighbors[NeighborOffsets[i]:NeighborOffsets[i+1]].
type Diagram struct {
	Sites  []r2.Point
	Bounds r2.Rect

	Triangulation *delaunay.Triangulation
	// Circumcenters holds one Voronoi vertex per Delaunay triangle.
	Circumcenters []r2.Point

	// NOTE: Polygons wind counter-clockwise with the y axis pointing up.
	CellVertices    []r2.Point
	CellOffsets     []int
	CellNeighbors   []int
	NeighborOffsets []int

	// Triangles and Halfedges equal the triangulation's, except for one or two distinct
	// sites where a synthetic triangle keeps neighbor walks uniform.
	triangles []int
	halfedges []int
	hull      []int
	inedges   []int
	hullIndex []int
	// collinear lists site indices in x-then-y order when all sites lie on one line.
	collinear    []int
	collinearPos []int
}

// DiagramOptions holds configuration for NewDiagram.
type DiagramOptions struct {
	// Bounds clips cell polygons. The zero value selects bounds derived from the sites.
	Bounds r2.Rect
}

// DiagramOption configures DiagramOptions.
type DiagramOption func(*DiagramOptions) error

// WithBounds sets the rectangle cell polygons are clipped to.
func WithBounds(bounds r2.Rect) DiagramOption {
	return func(o *DiagramOptions) error {
		if bounds.IsEmpty() || bounds.X.Length() <= 0 || bounds.Y.Length() <= 0 {
			return fmt.Errorf("WithBounds: bounds %v must have positive width and height", bounds)
		}
		o.Bounds = bounds
		return nil
	}
}

// NewDiagram computes the Voronoi diagram of sites. The sites slice is not modified.
//
// Without WithBounds, cells are clipped to the sites' bounding box expanded by half its
// size on each side; a zero extent is padded by 0.5 instead.
func NewDiagram(sites []r2.Point, setters ...DiagramOption) (*Diagram, error) {
	opts := DiagramOptions{}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	if opts.Bounds == (r2.Rect{}) {
		opts.Bounds = defaultBounds(sites)
	}

	dt, err := delaunay.NewTriangulation(sites)
	if err != nil {
		return nil, fmt.Errorf("voronoi: %w", err)
	}

	d := &Diagram{
		Sites:  sites,
		Bounds: opts.Bounds,
	}

	if len(dt.Hull) > 2 && isCollinear(dt) {
		d.collinear = make([]int, len(sites))
		for i := range d.collinear {
			d.collinear[i] = i
		}
		slices.SortStableFunc(d.collinear, func(i, j int) int {
			return cmp.Or(cmp.Compare(sites[i].X, sites[j].X), cmp.Compare(sites[i].Y, sites[j].Y))
		})
		d.collinearPos = make([]int, len(sites))
		for pos, i := range d.collinear {
			d.collinearPos[i] = pos
		}

		first := sites[d.collinear[0]]
		last := sites[d.collinear[len(d.collinear)-1]]
		r := jitterScale * math.Hypot(last.Y-first.Y, last.X-first.X)
		jittered := make([]r2.Point, len(sites))
		for i, p := range sites {
			jittered[i] = jitter(p, r)
		}
		dt, err = delaunay.NewTriangulation(jittered)
		if err != nil {
			return nil, fmt.Errorf("voronoi: %w", err)
		}
	}

	d.Triangulation = dt
	d.init()
	d.computeCircumcenters()
	d.computeCells()

	return d, nil
}

// NumCells returns the number of cells, which equals the number of sites.
func (d *Diagram) NumCells() int {
	return len(d.Sites)
}

// Cell returns the cell of site i.
// It returns an error if i is out of range.
func (d *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= len(d.Sites) {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, len(d.Sites))
	}
	return Cell{idx: i, d: d}, nil
}

// Find returns the index of the site nearest to (x, y), walking the Delaunay graph from
// site start. It returns -1 for a NaN query or an empty diagram.
func (d *Diagram) Find(x, y float64, start int) int {
	if math.IsNaN(x) || math.IsNaN(y) || len(d.Sites) == 0 {
		return -1
	}
	if start < 0 || start >= len(d.Sites) {
		start = 0
	}

	i := start
	for {
		c := d.step(i, x, y)
		if c < 0 || c == i || c == start {
			return c
		}
		i = c
	}
}

// Neighbors returns the Delaunay neighbors of site i in rotational order.
// Coincident duplicate sites have no neighbors.
func (d *Diagram) Neighbors(i int) []int {
	if i < 0 || i >= len(d.Sites) {
		return nil
	}
	return d.CellNeighbors[d.NeighborOffsets[i]:d.NeighborOffsets[i+1]]
}

func (d *Diagram) init() {
	n := len(d.Sites)
	dt := d.Triangulation

	d.triangles = dt.Triangles
	d.halfedges = dt.Halfedges
	d.hull = dt.Hull
	d.inedges = make([]int, n)
	d.hullIndex = make([]int, n)
	for i := range n {
		d.inedges[i] = -1
		d.hullIndex[i] = -1
	}

	// An incoming half-edge per site gives its first neighbor. Hull sites prefer the
	// exterior half-edge so walks start on the hull.
	for e, h := range d.halfedges {
		p := d.triangles[delaunay.NextHalfedge(e)]
		if h == -1 || d.inedges[p] == -1 {
			d.inedges[p] = e
		}
	}
	for i, h := range d.hull {
		d.hullIndex[h] = i
	}

	// One or two distinct sites.
	if len(d.hull) > 0 && len(d.hull) <= 2 {
		d.triangles = []int{d.hull[0], -1, -1}
		d.halfedges = []int{-1, -1, -1}
		d.inedges[d.hull[0]] = 1
		if len(d.hull) == 2 {
			d.inedges[d.hull[1]] = 0
			d.triangles[1] = d.hull[1]
			d.triangles[2] = d.hull[1]
		}
	}
}

func (d *Diagram) computeCircumcenters() {
	dt := d.Triangulation
	d.Circumcenters = make([]r2.Point, dt.NumTriangles())
	for t := range d.Circumcenters {
		a, b, c := dt.TriangleVertices(t)
		x, y := delaunay.Circumcenter(a.X, a.Y, b.X, b.Y, c.X, c.Y)
		d.Circumcenters[t] = r2.Point{X: x, Y: y}
	}
}

func (d *Diagram) computeCells() {
	n := len(d.Sites)
	d.NeighborOffsets = make([]int, n+1)
	d.CellOffsets = make([]int, n+1)
	d.CellNeighbors = make([]int, 0, 6*n)
	d.CellVertices = make([]r2.Point, 0, 6*n)

	for i := range n {
		d.CellNeighbors = d.appendNeighbors(d.CellNeighbors, i)
		d.NeighborOffsets[i+1] = len(d.CellNeighbors)

		poly := d.clipCell(i, d.CellNeighbors[d.NeighborOffsets[i]:d.NeighborOffsets[i+1]])
		d.CellVertices = append(d.CellVertices, poly...)
		d.CellOffsets[i+1] = len(d.CellVertices)
	}
}

func (d *Diagram) appendNeighbors(dst []int, i int) []int {
	if d.collinear != nil {
		l := d.collinearPos[i]
		if l > 0 {
			dst = append(dst, d.collinear[l-1])
		}
		if l < len(d.collinear)-1 {
			dst = append(dst, d.collinear[l+1])
		}
		return dst
	}

	e0 := d.inedges[i]
	if e0 == -1 {
		return dst
	}
	e := e0
	for {
		p0 := d.triangles[e]
		if p0 < 0 {
			return dst
		}
		dst = append(dst, p0)
		e = delaunay.NextHalfedge(e)
		if d.triangles[e] != i {
			return dst
		}
		e = d.halfedges[e]
		if e == -1 {
			if p := d.hull[(d.hullIndex[i]+1)%len(d.hull)]; p != p0 {
				dst = append(dst, p)
			}
			return dst
		}
		if e == e0 {
			return dst
		}
	}
}

// clipCell intersects the bounds with the half-planes closer to site i than to each of
// its neighbors.
func (d *Diagram) clipCell(i int, neighbors []int) []r2.Point {
	if len(d.Sites) > 1 && d.inedges[i] == -1 && d.collinear == nil {
		return nil
	}
	b := d.Bounds
	poly := []r2.Point{
		{X: b.X.Lo, Y: b.Y.Lo},
		{X: b.X.Hi, Y: b.Y.Lo},
		{X: b.X.Hi, Y: b.Y.Hi},
		{X: b.X.Lo, Y: b.Y.Hi},
	}
	site := d.Sites[i]
	for _, j := range neighbors {
		poly = clipHalfPlane(poly, site, d.Sites[j])
		if len(poly) == 0 {
			break
		}
	}
	return poly
}

// step returns a neighbor of site i closer to (x, y) than i, or i itself.
func (d *Diagram) step(i int, x, y float64) int {
	n := len(d.Sites)
	if d.inedges[i] == -1 {
		return (i + 1) % n
	}

	c := i
	dc := dist2(x, y, d.Sites[i])
	e0 := d.inedges[i]
	e := e0
	for {
		t := d.triangles[e]
		if t >= 0 {
			if dt := dist2(x, y, d.Sites[t]); dt < dc {
				dc, c = dt, t
			}
		}
		e = delaunay.NextHalfedge(e)
		if d.triangles[e] != i {
			break
		}
		e = d.halfedges[e]
		if e == -1 {
			e = d.hull[(d.hullIndex[i]+1)%len(d.hull)]
			if e != t && dist2(x, y, d.Sites[e]) < dc {
				return e
			}
			break
		}
		if e == e0 {
			break
		}
	}
	return c
}

func clipHalfPlane(poly []r2.Point, site, other r2.Point) []r2.Point {
	normal := other.Sub(site)
	if normal.X == 0 && normal.Y == 0 {
		return poly
	}
	mid := site.Add(other).Mul(0.5)
	side := func(p r2.Point) float64 {
		return p.Sub(mid).Dot(normal)
	}

	out := make([]r2.Point, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	sp := side(prev)
	for _, cur := range poly {
		sc := side(cur)
		switch {
		case sc <= 0 && sp <= 0:
			out = append(out, cur)
		case sc <= 0:
			out = append(out, lerp(prev, cur, sp/(sp-sc)))
			if sc < 0 {
				out = append(out, cur)
			}
		case sp < 0:
			out = append(out, lerp(prev, cur, sp/(sp-sc)))
		}
		prev, sp = cur, sc
	}
	return out
}

func isCollinear(dt *delaunay.Triangulation) bool {
	for t := range dt.NumTriangles() {
		a, b, c := dt.TriangleVertices(t)
		cross := (c.X-a.X)*(b.Y-a.Y) - (b.X-a.X)*(c.Y-a.Y)
		if cross > collinearEps {
			return false
		}
	}
	return true
}

func jitter(p r2.Point, r float64) r2.Point {
	return r2.Point{X: p.X + math.Sin(p.X+p.Y)*r, Y: p.Y + math.Cos(p.X-p.Y)*r}
}

func defaultBounds(sites []r2.Point) r2.Rect {
	if len(sites) == 0 {
		return r2.RectFromCenterSize(r2.Point{}, r2.Point{X: 1, Y: 1})
	}
	rect := r2.RectFromPoints(sites...)
	size := rect.Size()
	pad := func(v float64) float64 {
		if v <= 0 || math.IsNaN(v) {
			return 0.5
		}
		return v / 2
	}
	return rect.Expanded(r2.Point{X: pad(size.X), Y: pad(size.Y)})
}

func dist2(x, y float64, p r2.Point) float64 {
	dx := x - p.X
	dy := y - p.Y
	return dx*dx + dy*dy
}

func lerp(a, b r2.Point, t float64) r2.Point {
	return r2.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

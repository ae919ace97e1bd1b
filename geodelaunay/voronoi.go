// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geodelaunay

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	geojson "github.com/paulmach/go.geojson"
)

// Diagram is the spherical Voronoi diagram dual to a Triangulation. Its vertices are the
// circumcenters of the Delaunay triangles.
type Diagram struct {
	Sites    s2.PointVector
	Vertices s2.PointVector

	// NOTE: Sort in CCW per Cell(look out of sphere)
	CellVertices []int
	// NOTE: Sort in CCW per Cell(look out of sphere)
	CellNeighbors []int
	CellOffsets   []int
}

// Voronoi returns the Voronoi diagram of the triangulated sites. The diagram shares index
// slices with dt.
func (dt *Triangulation) Voronoi() *Diagram {
	d := &Diagram{
		Sites:         dt.Vertices,
		Vertices:      make(s2.PointVector, len(dt.Triangles)),
		CellVertices:  dt.IncidentTriangleIndices,
		CellNeighbors: dt.neighbors,
		CellOffsets:   dt.IncidentTriangleOffsets,
	}
	for i := range dt.Triangles {
		a, b, c := dt.TriangleVertices(i)
		d.Vertices[i] = s2.Point{Vector: triangleCircumcenter(a, b, c).Normalize()}
	}
	return d
}

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

// FeatureCollection returns every cell as a polygon feature with a "site" property
// holding the site index.
func (d *Diagram) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range d.Sites {
		f := geojson.NewPolygonFeature([][][]float64{Cell{idx: i, d: d}.Ring()})
		f.SetProperty("site", i)
		fc.AddFeature(f)
	}
	return fc
}

// Cell is a view of one Voronoi cell. Its index matches the index of its site.
type Cell struct {
	idx int
	d   *Diagram
}

func (c Cell) SiteIndex() int {
	return c.idx
}

func (c Cell) Site() s2.Point {
	return c.d.Sites[c.idx]
}

// NumVertices returns the number of cell vertices, which equals the number of neighbors.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// VertexIndices returns indices into the diagram's Vertices in counter-clockwise order
// looking out of the sphere.
func (c Cell) VertexIndices() []int {
	return c.d.CellVertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Vertex returns the i-th vertex of the cell.
// It returns an error if the index is out of range.
func (c Cell) Vertex(i int) (s2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return s2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[c.d.CellVertices[start+i]], nil
}

// NeighborIndices returns the indices of the neighboring cells in counter-clockwise
// order looking out of the sphere.
func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Neighbor returns the i-th neighboring cell.
// It returns an error if the index is out of range.
func (c Cell) Neighbor(i int) (Cell, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, fmt.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Cell(c.d.CellNeighbors[start+i])
}

// Relax applies steps rounds of Lloyd relaxation: every site moves to the centroid of its
// cell and the diagram is recomputed from the moved sites with the given options.
func (d *Diagram) Relax(steps int, setters ...TriangulationOption) error {
	if steps < 0 {
		return fmt.Errorf("Relax: negative steps %d", steps)
	}
	for range steps {
		sites := make([]r2.Point, len(d.Sites))
		for i := range d.Sites {
			sites[i] = lonLat(d.cellCentroid(i))
		}
		dt, err := NewTriangulation(sites, setters...)
		if err != nil {
			return err
		}
		*d = *dt.Voronoi()
	}
	return nil
}

// cellCentroid returns the area-weighted centroid of the triangle fan from site i over
// its cell. Empty cells keep their site.
func (d *Diagram) cellCentroid(i int) s2.Point {
	site := d.Sites[i]
	idx := d.CellVertices[d.CellOffsets[i]:d.CellOffsets[i+1]]

	var sum r3.Vector
	for k, v := range idx {
		a := d.Vertices[v]
		b := d.Vertices[idx[(k+1)%len(idx)]]
		sum = sum.Add(s2.PlanarCentroid(site, a, b).Mul(s2.PointArea(site, a, b)))
	}
	if sum.Norm() == 0 {
		return site
	}
	return s2.Point{Vector: sum.Normalize()}
}

// Area returns the cell area in steradians.
func (c Cell) Area() float64 {
	idx := c.VertexIndices()
	vs := make([]s2.Point, len(idx))
	for i, v := range idx {
		// s2 loops run counter-clockwise seen from outside the sphere.
		vs[len(idx)-1-i] = c.d.Vertices[v]
	}
	return s2.LoopFromPoints(vs).Area()
}

// Ring returns the cell boundary as a closed GeoJSON ring of (longitude, latitude)
// degrees. The ring is clockwise on the map, so it encloses the cell.
func (c Cell) Ring() [][]float64 {
	idx := c.VertexIndices()
	ring := make([][]float64, 0, len(idx)+1)
	for _, v := range idx {
		p := lonLat(c.d.Vertices[v])
		ring = append(ring, []float64{p.X, p.Y})
	}
	return append(ring, ring[0])
}

func lonLat(p s2.Point) r2.Point {
	ll := s2.LatLngFromPoint(p)
	return r2.Point{X: ll.Lng.Degrees(), Y: ll.Lat.Degrees()}
}

func triangleCircumcenter(p1, p2, p3 s2.Point) s2.Point {
	v1 := p1.Sub(p2.Vector)
	v2 := p2.Sub(p3.Vector)

	circumcenter := v1.Cross(v2)

	if circumcenter.Dot(p1.Vector.Add(p2.Vector).Add(p3.Vector)) < 0 {
		circumcenter = circumcenter.Mul(-1)
	}

	return s2.Point{Vector: circumcenter}
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package geo implements spherical geometry for map rendering: geometry streams,
// rotations, cartographic projections with adaptive resampling, antimeridian, small
// circle and rectangle clipping, projection fitting and spherical measures.
//
// Geometry flows through a pipeline of Stream values. Each stage transforms the
// events it receives and forwards them to the next one, so projecting and clipping a
// feature never materializes intermediate geometry.
package geo

import (
	geojson "github.com/paulmach/go.geojson"
)

// Stream receives geometry as a sequence of events. Lines are bracketed by LineStart
// and LineEnd; polygons are bracketed by PolygonStart and PolygonEnd and contain one
// line per ring, without the ring's closing point.
type Stream interface {
	Point(x, y float64)
	LineStart()
	LineEnd()
	PolygonStart()
	PolygonEnd()
}

// EventKind identifies a stream event.
type EventKind int

const (
	EventPoint EventKind = iota
	EventLineStart
	EventLineEnd
	EventPolygonStart
	EventPolygonEnd
)

func (k EventKind) String() string {
	switch k {
	case EventPoint:
		return "point"
	case EventLineStart:
		return "lineStart"
	case EventLineEnd:
		return "lineEnd"
	case EventPolygonStart:
		return "polygonStart"
	case EventPolygonEnd:
		return "polygonEnd"
	}
	return "unknown"
}

// Event is a single stream event. X and Y are set for EventPoint only.
type Event struct {
	Kind EventKind
	X, Y float64
}

// Recorder is a Stream that records every event it receives.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Point(x, y float64) {
	r.Events = append(r.Events, Event{Kind: EventPoint, X: x, Y: y})
}

func (r *Recorder) LineStart()    { r.Events = append(r.Events, Event{Kind: EventLineStart}) }
func (r *Recorder) LineEnd()      { r.Events = append(r.Events, Event{Kind: EventLineEnd}) }
func (r *Recorder) PolygonStart() { r.Events = append(r.Events, Event{Kind: EventPolygonStart}) }
func (r *Recorder) PolygonEnd()   { r.Events = append(r.Events, Event{Kind: EventPolygonEnd}) }

// Replay sends events to s in order.
func Replay(events []Event, s Stream) {
	for _, e := range events {
		switch e.Kind {
		case EventPoint:
			s.Point(e.X, e.Y)
		case EventLineStart:
			s.LineStart()
		case EventLineEnd:
			s.LineEnd()
		case EventPolygonStart:
			s.PolygonStart()
		case EventPolygonEnd:
			s.PolygonEnd()
		}
	}
}

// Source is anything that can describe itself as a stream of geometry events.
type Source interface {
	StreamTo(s Stream)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(s Stream)

// StreamTo calls f(s).
func (f SourceFunc) StreamTo(s Stream) {
	f(s)
}

// Sources streams several sources one after another.
type Sources []Source

// StreamTo streams every source to s.
func (ss Sources) StreamTo(s Stream) {
	for _, src := range ss {
		src.StreamTo(s)
	}
}

type geometrySource struct {
	g *geojson.Geometry
}

// FromGeometry returns a Source for a GeoJSON geometry with (longitude, latitude)
// coordinates. A nil geometry streams nothing.
func FromGeometry(g *geojson.Geometry) Source {
	return geometrySource{g: g}
}

func (gs geometrySource) StreamTo(s Stream) {
	streamGeometry(gs.g, s)
}

// FromFeature returns a Source for the geometry of a GeoJSON feature.
func FromFeature(f *geojson.Feature) Source {
	if f == nil {
		return Sources(nil)
	}
	return geometrySource{g: f.Geometry}
}

// FromFeatureCollection returns a Source for every feature of fc in order.
func FromFeatureCollection(fc *geojson.FeatureCollection) Source {
	if fc == nil {
		return Sources(nil)
	}
	ss := make(Sources, len(fc.Features))
	for i, f := range fc.Features {
		ss[i] = FromFeature(f)
	}
	return ss
}

func streamGeometry(g *geojson.Geometry, s Stream) {
	if g == nil {
		return
	}
	switch g.Type {
	case geojson.GeometryPoint:
		streamPoint(g.Point, s)
	case geojson.GeometryMultiPoint:
		for _, p := range g.MultiPoint {
			streamPoint(p, s)
		}
	case geojson.GeometryLineString:
		streamLine(g.LineString, s, false)
	case geojson.GeometryMultiLineString:
		for _, line := range g.MultiLineString {
			streamLine(line, s, false)
		}
	case geojson.GeometryPolygon:
		streamPolygon(g.Polygon, s)
	case geojson.GeometryMultiPolygon:
		for _, polygon := range g.MultiPolygon {
			streamPolygon(polygon, s)
		}
	case geojson.GeometryCollection:
		for _, child := range g.Geometries {
			streamGeometry(child, s)
		}
	}
}

func streamPoint(p []float64, s Stream) {
	if len(p) < 2 {
		return
	}
	s.Point(p[0], p[1])
}

func streamLine(coords [][]float64, s Stream, closed bool) {
	n := len(coords)
	if closed && n > 0 {
		n--
	}
	s.LineStart()
	for _, p := range coords[:n] {
		streamPoint(p, s)
	}
	s.LineEnd()
}

func streamPolygon(rings [][][]float64, s Stream) {
	s.PolygonStart()
	for _, ring := range rings {
		streamLine(ring, s, true)
	}
	s.PolygonEnd()
}

// radiansStream converts degrees to radians.
type radiansStream struct {
	Stream
}

func (s radiansStream) Point(x, y float64) {
	s.Stream.Point(x*radians, y*radians)
}

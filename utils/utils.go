// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides seeded point generators for triangulation and map tests.
package utils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// GenerateRandomPoints generates cnt planar points uniformly distributed in the unit
// square [0, 1) x [0, 1). The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)

	for i := range cnt {
		points[i] = r2.Point{X: random.Float64(), Y: random.Float64()}
	}

	return points
}

// GenerateRandomLonLat generates cnt geographic sites as (longitude, latitude) pairs in
// degrees, uniformly distributed over the sphere's surface.
func GenerateRandomLonLat(cnt int, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	sites := make([]r2.Point, cnt)

	for i := range cnt {
		ll := s2.LatLng{
			Lat: s1.Angle(math.Asin(2*random.Float64() - 1)),
			Lng: s1.Angle((random.Float64()*2 - 1) * math.Pi),
		}
		sites[i] = r2.Point{X: ll.Lng.Degrees(), Y: ll.Lat.Degrees()}
	}

	return sites
}

// LonLatToPoint converts a (longitude, latitude) pair in degrees to a unit-sphere point.
func LonLatToPoint(p r2.Point) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(p.Y, p.X))
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// PolygonContains reports whether point lies inside the spherical polygon. Rings are
// lists of (lambda, phi) in radians without a closing point; a ring wound clockwise
// encloses the smaller area.
func PolygonContains(polygon [][]r2.Point, point r2.Point) bool {
	return polygonContains(polygon, point)
}

func polygonContains(polygon [][]r2.Point, point r2.Point) bool {
	lambda := longitude(point.X)
	phi := point.Y
	sinPhi := math.Sin(phi)
	normal := r3.Vector{X: math.Sin(lambda), Y: -math.Cos(lambda)}

	switch sinPhi {
	case 1:
		phi = halfPi + epsilon
	case -1:
		phi = -halfPi - epsilon
	}

	var sum Adder
	angle := 0.0
	winding := 0

	for _, ring := range polygon {
		m := len(ring)
		if m == 0 {
			continue
		}
		point0 := ring[m-1]
		lambda0 := longitude(point0.X)
		phi0 := point0.Y/2 + quarterPi
		sinPhi0, cosPhi0 := math.Sin(phi0), math.Cos(phi0)

		for _, point1 := range ring {
			lambda1 := longitude(point1.X)
			phi1 := point1.Y/2 + quarterPi
			sinPhi1, cosPhi1 := math.Sin(phi1), math.Cos(phi1)
			delta := lambda1 - lambda0
			sgn := 1.0
			if delta < 0 {
				sgn = -1
			}
			absDelta := sgn * delta
			antimeridian := absDelta > math.Pi
			k := sinPhi0 * sinPhi1

			sum.Add(math.Atan2(k*sgn*math.Sin(absDelta), cosPhi0*cosPhi1+k*math.Cos(absDelta)))
			if antimeridian {
				angle += delta + sgn*tau
			} else {
				angle += delta
			}

			// The edge crosses the meridian through point.
			if antimeridian != (lambda0 >= lambda) != (lambda1 >= lambda) {
				arc := normalize(cartesian(point0.X, point0.Y).Cross(cartesian(point1.X, point1.Y)))
				cross := normalize(normal.Cross(arc))
				flip := antimeridian != (delta >= 0)
				phiArc := asin(cross.Z)
				if flip {
					phiArc = -phiArc
				}
				if phi > phiArc || phi == phiArc && (arc.X != 0 || arc.Y != 0) {
					if flip {
						winding++
					} else {
						winding--
					}
				}
			}

			lambda0, sinPhi0, cosPhi0, point0 = lambda1, sinPhi1, cosPhi1, point1
		}
	}

	return (angle < -epsilon || angle < epsilon && sum.Value() < -epsilon2) != (winding&1 != 0)
}

// longitude wraps lambda into [-pi, pi] keeping its sign.
func longitude(lambda float64) float64 {
	if math.Abs(lambda) <= math.Pi {
		return lambda
	}
	return sign(lambda) * (math.Mod(math.Abs(lambda)+math.Pi, tau) - math.Pi)
}

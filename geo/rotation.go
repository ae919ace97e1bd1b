// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geo

import "math"

// Rotation is a spherical rotation by three Euler angles: lambda about the polar axis,
// then phi and gamma about the resulting axes. Coordinates are in radians.
type Rotation struct {
	forward func(lambda, phi float64) (float64, float64)
	inverse func(lambda, phi float64) (float64, float64)
}

// NewRotation returns the rotation by deltaLambda, deltaPhi and deltaGamma radians.
// Output longitudes are wrapped to [-pi, pi].
func NewRotation(deltaLambda, deltaPhi, deltaGamma float64) Rotation {
	deltaLambda = math.Mod(deltaLambda, tau)
	switch {
	case deltaLambda != 0 && (deltaPhi != 0 || deltaGamma != 0):
		l := rotationLambda(deltaLambda)
		pg := rotationPhiGamma(deltaPhi, deltaGamma)
		return Rotation{
			forward: func(lambda, phi float64) (float64, float64) {
				return pg.forward(l.forward(lambda, phi))
			},
			inverse: func(lambda, phi float64) (float64, float64) {
				return l.inverse(pg.inverse(lambda, phi))
			},
		}
	case deltaLambda != 0:
		return rotationLambda(deltaLambda)
	case deltaPhi != 0 || deltaGamma != 0:
		return rotationPhiGamma(deltaPhi, deltaGamma)
	}
	return Rotation{forward: rotationIdentity, inverse: rotationIdentity}
}

// Rotate applies the rotation to (lambda, phi).
func (r Rotation) Rotate(lambda, phi float64) (float64, float64) {
	return r.forward(lambda, phi)
}

// Invert applies the inverse rotation to (lambda, phi).
func (r Rotation) Invert(lambda, phi float64) (float64, float64) {
	return r.inverse(lambda, phi)
}

// Rotate returns forward and inverse rotations of (longitude, latitude) pairs in degrees
// by the angles [lambda, phi, gamma], also in degrees.
func Rotate(angles [3]float64) (forward, inverse func(lon, lat float64) (float64, float64)) {
	r := NewRotation(angles[0]*radians, angles[1]*radians, angles[2]*radians)
	forward = func(lon, lat float64) (float64, float64) {
		l, p := r.Rotate(lon*radians, lat*radians)
		return l * degrees, p * degrees
	}
	inverse = func(lon, lat float64) (float64, float64) {
		l, p := r.Invert(lon*radians, lat*radians)
		return l * degrees, p * degrees
	}
	return forward, inverse
}

func rotationIdentity(lambda, phi float64) (float64, float64) {
	return wrapLongitude(lambda), phi
}

func rotationLambda(deltaLambda float64) Rotation {
	return Rotation{
		forward: forwardRotationLambda(deltaLambda),
		inverse: forwardRotationLambda(-deltaLambda),
	}
}

func forwardRotationLambda(deltaLambda float64) func(lambda, phi float64) (float64, float64) {
	return func(lambda, phi float64) (float64, float64) {
		return wrapLongitude(lambda + deltaLambda), phi
	}
}

func rotationPhiGamma(deltaPhi, deltaGamma float64) Rotation {
	cosDeltaPhi, sinDeltaPhi := math.Cos(deltaPhi), math.Sin(deltaPhi)
	cosDeltaGamma, sinDeltaGamma := math.Cos(deltaGamma), math.Sin(deltaGamma)

	return Rotation{
		forward: func(lambda, phi float64) (float64, float64) {
			v := cartesian(lambda, phi)
			k := v.Z*cosDeltaPhi + v.X*sinDeltaPhi
			return math.Atan2(v.Y*cosDeltaGamma-k*sinDeltaGamma, v.X*cosDeltaPhi-v.Z*sinDeltaPhi),
				asin(k*cosDeltaGamma + v.Y*sinDeltaGamma)
		},
		inverse: func(lambda, phi float64) (float64, float64) {
			v := cartesian(lambda, phi)
			k := v.Z*cosDeltaGamma - v.Y*sinDeltaGamma
			return math.Atan2(v.Y*cosDeltaGamma+v.Z*sinDeltaGamma, v.X*cosDeltaPhi+k*sinDeltaPhi),
				asin(k*cosDeltaPhi - v.X*sinDeltaPhi)
		},
	}
}

// rotateStream rotates every point before passing it on.
type rotateStream struct {
	Stream
	rotation Rotation
}

func (s *rotateStream) Point(x, y float64) {
	s.Stream.Point(s.rotation.Rotate(x, y))
}

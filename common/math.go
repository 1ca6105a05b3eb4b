package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp restricts v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// Saturate clamps v to [0, 1].
func Saturate(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Smoothstep performs Hermite interpolation between edge0 and edge1.
// Returns 0 below edge0 and 1 above edge1. Equal edges act as a hard step.
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Saturate((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// BuildModelMatrix creates a model matrix from a translation and an Euler rotation.
// The rotation is applied in XYZ order (R = Rx * Ry * Rz), so the resulting
// matrix is T * Rx * Ry * Rz.
//
// Parameters:
//   - position: translation
//   - rotation: Euler angles in radians
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func BuildModelMatrix(position, rotation mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(mgl32.HomogRotate3DX(rotation[0])).
		Mul4(mgl32.HomogRotate3DY(rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(rotation[2]))
}

// Spherical converts an offset from an orbit target into radius, polar angle
// (measured from +Y) and azimuth (measured around +Y from +Z).
//
// Parameters:
//   - offset: vector from the target to the orbiting point
//
// Returns:
//   - radius, phi, theta: spherical coordinates
func Spherical(offset mgl32.Vec3) (radius, phi, theta float32) {
	radius = offset.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = math32.Atan2(offset[0], offset[2])
	phi = math32.Acos(Clamp(offset[1]/radius, -1, 1))
	return radius, phi, theta
}

// FromSpherical is the inverse of Spherical.
func FromSpherical(radius, phi, theta float32) mgl32.Vec3 {
	sinPhi := math32.Sin(phi)
	return mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}
}

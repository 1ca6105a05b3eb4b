package light

import "github.com/go-gl/mathgl/mgl32"

// Affecting filters lights down to those that are visible and can reach a bounding
// sphere. The result reuses dst's backing array when it has capacity.
//
// Parameters:
//   - dst: slice to append into, usually dst[:0] of a reused buffer
//   - lights: candidate lights
//   - center: bounding sphere center in world space
//   - radius: bounding sphere radius
//
// Returns:
//   - []Light: the lights that affect the sphere
func Affecting(dst, lights []Light, center mgl32.Vec3, radius float32) []Light {
	for _, l := range lights {
		if l.Visible() && l.Reaches(center, radius) {
			dst = append(dst, l)
		}
	}
	return dst
}

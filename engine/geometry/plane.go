package geometry

import "github.com/go-gl/mathgl/mgl32"

// Plane builds a single-quad plane in the XY plane facing +Z, centered at the origin.
// UV (0, 1) is the top-left corner.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//
// Returns:
//   - *Geometry: the plane geometry
func Plane(width, height float32) *Geometry {
	hw, hh := width/2, height/2
	normal := mgl32.Vec3{0, 0, 1}
	vertices := []Vertex{
		{Position: mgl32.Vec3{-hw, hh, 0}, Normal: normal, UV: mgl32.Vec2{0, 1}},
		{Position: mgl32.Vec3{hw, hh, 0}, Normal: normal, UV: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{-hw, -hh, 0}, Normal: normal, UV: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{hw, -hh, 0}, Normal: normal, UV: mgl32.Vec2{1, 0}},
	}
	// (top-left, bottom-left, top-right) and (bottom-left, bottom-right, top-right)
	indices := []uint32{0, 2, 1, 2, 3, 1}
	return New("plane", vertices, indices)
}

package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// faceNormal returns the unnormalized normal implied by a triangle's winding.
func faceNormal(g *Geometry, tri int) mgl32.Vec3 {
	v, idx := g.Vertices(), g.Indices()
	a, b, c := v[idx[tri*3]].Position, v[idx[tri*3+1]].Position, v[idx[tri*3+2]].Position
	return b.Sub(a).Cross(c.Sub(a))
}

func TestSphereCounts(t *testing.T) {
	g := Sphere(0.5, 32, 32)
	assert.Len(t, g.Vertices(), 33*33)
	assert.Equal(t, 32*(2*32-2), g.TriangleCount())

	center, radius := g.BoundingSphere()
	assert.InDeltaSlice(t, []float32{0, 0, 0}, center[:], 1e-5)
	assert.InDelta(t, 0.5, radius, 1e-5)
}

func TestSphereNormalsAndWinding(t *testing.T) {
	g := Sphere(1, 8, 6)
	for _, v := range g.Vertices() {
		assert.InDelta(t, 1, v.Normal.Len(), 1e-5)
		assert.InDelta(t, 1, v.Position.Len(), 1e-5)
	}
	for tri := 0; tri < g.TriangleCount(); tri++ {
		idx := g.Indices()[tri*3]
		outward := g.Vertices()[idx].Position
		assert.Greater(t, faceNormal(g, tri).Dot(outward), float32(0), "triangle %d faces inward", tri)
	}
}

func TestPlane(t *testing.T) {
	g := Plane(5, 5)
	assert.Len(t, g.Vertices(), 4)
	assert.Equal(t, 2, g.TriangleCount())
	for tri := 0; tri < 2; tri++ {
		n := faceNormal(g, tri)
		assert.Greater(t, n[2], float32(0), "plane faces +Z")
	}
	_, radius := g.BoundingSphere()
	assert.InDelta(t, 2.5*1.41421356, radius, 1e-4)
}

package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a single mesh vertex in object space.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Geometry is an indexed triangle list with a bounding sphere.
// Triangles wind counter-clockwise when seen from their front side.
type Geometry struct {
	name           string
	vertices       []Vertex
	indices        []uint32
	boundingCenter mgl32.Vec3
	boundingRadius float32
}

// New creates a Geometry from vertices and triangle indices and computes its
// bounding sphere.
//
// Parameters:
//   - name: geometry identifier
//   - vertices: the vertex list
//   - indices: three indices per triangle
//
// Returns:
//   - *Geometry: the geometry
func New(name string, vertices []Vertex, indices []uint32) *Geometry {
	g := &Geometry{name: name, vertices: vertices, indices: indices}
	g.computeBoundingSphere()
	return g
}

// Name returns the geometry identifier.
func (g *Geometry) Name() string {
	return g.name
}

// Vertices returns the vertex list. The slice must not be modified.
func (g *Geometry) Vertices() []Vertex {
	return g.vertices
}

// Indices returns the triangle index list. The slice must not be modified.
func (g *Geometry) Indices() []uint32 {
	return g.indices
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.indices) / 3
}

// BoundingSphere returns the object-space bounding sphere.
func (g *Geometry) BoundingSphere() (center mgl32.Vec3, radius float32) {
	return g.boundingCenter, g.boundingRadius
}

func (g *Geometry) computeBoundingSphere() {
	if len(g.vertices) == 0 {
		return
	}
	lo, hi := g.vertices[0].Position, g.vertices[0].Position
	for _, v := range g.vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math32.Min(lo[i], v.Position[i])
			hi[i] = math32.Max(hi[i], v.Position[i])
		}
	}
	g.boundingCenter = lo.Add(hi).Mul(0.5)
	var r2 float32
	for _, v := range g.vertices {
		d := v.Position.Sub(g.boundingCenter)
		r2 = math32.Max(r2, d.Dot(d))
	}
	g.boundingRadius = math32.Sqrt(r2)
}

package mesh

import (
	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadows/engine/object"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

type meshImpl struct {
	object.Base

	geometry      *geometry.Geometry
	material      material.Material
	castShadow    bool
	receiveShadow bool
}

// Mesh defines the interface for a renderable scene entity: geometry drawn with a
// material at the object's transform.
//
// Like every scene object, a Mesh is mutated from the loop goroutine only.
type Mesh interface {
	object.Object
	common.FloatProperties
	common.BoolProperties

	// Geometry returns the mesh geometry.
	//
	// Returns:
	//   - *geometry.Geometry: the geometry
	Geometry() *geometry.Geometry

	// Material returns the mesh material.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// SetMaterial replaces the mesh material.
	//
	// Parameters:
	//   - mat: the new material
	SetMaterial(mat material.Material)

	// CastShadow returns whether the mesh is drawn into shadow maps.
	//
	// Returns:
	//   - bool: true if the mesh casts shadows
	CastShadow() bool

	// SetCastShadow sets whether the mesh is drawn into shadow maps.
	//
	// Parameters:
	//   - cast: true to cast shadows
	SetCastShadow(cast bool)

	// ReceiveShadow returns whether shadow maps darken the mesh.
	//
	// Returns:
	//   - bool: true if the mesh receives shadows
	ReceiveShadow() bool

	// SetReceiveShadow sets whether shadow maps darken the mesh.
	//
	// Parameters:
	//   - receive: true to receive shadows
	SetReceiveShadow(receive bool)

	// WorldBoundingSphere transforms the geometry's bounding sphere to world space.
	//
	// Returns:
	//   - center: the world-space center
	//   - radius: the radius (rotation and translation preserve it)
	WorldBoundingSphere() (center mgl32.Vec3, radius float32)
}

var _ Mesh = &meshImpl{}

// NewMesh creates a visible Mesh at the origin that neither casts nor receives
// shadows.
//
// Parameters:
//   - geo: the geometry to draw
//   - mat: the material to draw it with
//   - options: functional options to configure the mesh
//
// Returns:
//   - Mesh: the configured mesh
func NewMesh(geo *geometry.Geometry, mat material.Material, options ...MeshBuilderOption) Mesh {
	m := &meshImpl{
		Base:     object.NewBase(geo.Name()),
		geometry: geo,
		material: mat,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *meshImpl) Geometry() *geometry.Geometry {
	return m.geometry
}

func (m *meshImpl) Material() material.Material {
	return m.material
}

func (m *meshImpl) SetMaterial(mat material.Material) {
	if mat != nil {
		m.material = mat
	}
}

func (m *meshImpl) CastShadow() bool {
	return m.castShadow
}

func (m *meshImpl) SetCastShadow(cast bool) {
	m.castShadow = cast
}

func (m *meshImpl) ReceiveShadow() bool {
	return m.receiveShadow
}

func (m *meshImpl) SetReceiveShadow(receive bool) {
	m.receiveShadow = receive
}

func (m *meshImpl) WorldBoundingSphere() (mgl32.Vec3, float32) {
	center, radius := m.geometry.BoundingSphere()
	return mgl32.TransformCoordinate(center, m.ModelMatrix()), radius
}

func (m *meshImpl) FloatProperty(path string) (common.FloatBinding, bool) {
	if b, ok := m.PositionProperty(path); ok {
		return b, true
	}
	return common.Vec3Property(path, "rotation", m.Rotation, func(v mgl32.Vec3) { m.SetRotation(v[0], v[1], v[2]) })
}

func (m *meshImpl) BoolProperty(path string) (common.BoolBinding, bool) {
	switch path {
	case "castShadow":
		return common.BoolBinding{Get: m.CastShadow, Set: m.SetCastShadow}, true
	case "receiveShadow":
		return common.BoolBinding{Get: m.ReceiveShadow, Set: m.SetReceiveShadow}, true
	}
	return m.VisibleProperty(path)
}

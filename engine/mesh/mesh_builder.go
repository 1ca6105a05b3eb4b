package mesh

// MeshBuilderOption is a functional option for configuring a Mesh during construction.
type MeshBuilderOption func(*meshImpl)

// WithName sets the mesh name. Defaults to the geometry name.
//
// Parameters:
//   - name: the mesh name
//
// Returns:
//   - MeshBuilderOption: functional option to set the name
func WithName(name string) MeshBuilderOption {
	return func(m *meshImpl) {
		m.SetName(name)
	}
}

// WithPosition sets the initial position of the mesh.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - MeshBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.SetPosition(x, y, z)
	}
}

// WithRotation sets the initial Euler rotation of the mesh in radians.
//
// Parameters:
//   - rx, ry, rz: rotation angles
//
// Returns:
//   - MeshBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.SetRotation(rx, ry, rz)
	}
}

// WithCastShadow sets whether the mesh casts shadows.
func WithCastShadow(cast bool) MeshBuilderOption {
	return func(m *meshImpl) {
		m.castShadow = cast
	}
}

// WithReceiveShadow sets whether the mesh receives shadows.
func WithReceiveShadow(receive bool) MeshBuilderOption {
	return func(m *meshImpl) {
		m.receiveShadow = receive
	}
}

// WithVisible sets whether the mesh is rendered.
//
// Parameters:
//   - visible: true to render the mesh
//
// Returns:
//   - MeshBuilderOption: functional option to set visibility
func WithVisible(visible bool) MeshBuilderOption {
	return func(m *meshImpl) {
		m.SetVisible(visible)
	}
}

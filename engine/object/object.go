package object

import (
	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Object defines the common surface of everything placed in a scene graph:
// lights, meshes, helpers, cameras and bare transform nodes.
type Object interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uuid.UUID: the object ID
	ID() uuid.UUID

	// Name returns the human-readable object name.
	//
	// Returns:
	//   - string: the name, possibly empty
	Name() string

	// SetName sets the human-readable object name.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// Visible returns whether the object participates in rendering.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible shows or hides the object.
	//
	// Parameters:
	//   - visible: true to show
	SetVisible(visible bool)

	// Position returns the object's local position.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// SetPosition sets the object's local position.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// Rotation returns the object's Euler rotation in radians (XYZ order).
	//
	// Returns:
	//   - mgl32.Vec3: rotation as (rx, ry, rz)
	Rotation() mgl32.Vec3

	// SetRotation sets the object's Euler rotation in radians (XYZ order).
	//
	// Parameters:
	//   - rx, ry, rz: rotation components
	SetRotation(rx, ry, rz float32)

	// ModelMatrix builds the local-to-world matrix from position and rotation.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4
}

// Base implements Object and is embedded by concrete scene objects.
type Base struct {
	id       uuid.UUID
	name     string
	visible  bool
	position mgl32.Vec3
	rotation mgl32.Vec3
}

var _ Object = &Base{}

// NewBase creates a visible Base with a fresh random ID at the origin.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - Base: the initialized base, meant to be embedded by value
func NewBase(name string) Base {
	return Base{
		id:      uuid.New(),
		name:    name,
		visible: true,
	}
}

// New creates a bare transform node, e.g. an aim target for a light.
func New(name string) Object {
	b := NewBase(name)
	return &b
}

func (b *Base) ID() uuid.UUID {
	return b.id
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) SetName(name string) {
	b.name = name
}

func (b *Base) Visible() bool {
	return b.visible
}

func (b *Base) SetVisible(visible bool) {
	b.visible = visible
}

func (b *Base) Position() mgl32.Vec3 {
	return b.position
}

func (b *Base) SetPosition(x, y, z float32) {
	b.position = mgl32.Vec3{x, y, z}
}

func (b *Base) Rotation() mgl32.Vec3 {
	return b.rotation
}

func (b *Base) SetRotation(rx, ry, rz float32) {
	b.rotation = mgl32.Vec3{rx, ry, rz}
}

func (b *Base) ModelMatrix() mgl32.Mat4 {
	return common.BuildModelMatrix(b.position, b.rotation)
}

// PositionProperty resolves "position.x|y|z" against this object.
func (b *Base) PositionProperty(path string) (common.FloatBinding, bool) {
	return common.Vec3Property(path, "position", b.Position, func(v mgl32.Vec3) { b.position = v })
}

// VisibleProperty resolves "visible" against this object.
func (b *Base) VisibleProperty(path string) (common.BoolBinding, bool) {
	if path != "visible" {
		return common.BoolBinding{}, false
	}
	return common.BoolBinding{Get: b.Visible, Set: b.SetVisible}, true
}

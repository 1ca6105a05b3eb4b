package material

import (
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// MaterialType selects the shading model.
type MaterialType int

const (
	// MaterialTypeStandard is physically based metal/roughness shading, lit by the
	// scene lights.
	MaterialTypeStandard MaterialType = iota

	// MaterialTypeBasic is unlit: color multiplied by the color map.
	MaterialTypeBasic
)

func (t MaterialType) String() string {
	switch t {
	case MaterialTypeStandard:
		return "standard"
	case MaterialTypeBasic:
		return "basic"
	}
	return "unknown"
}

// Side selects which triangle faces are rendered.
type Side int

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

// Params is an immutable snapshot of a material's surface properties, taken once
// per draw so workers never contend on the material lock.
type Params struct {
	Type      MaterialType
	Color     mgl32.Vec3
	Side      Side
	Map       texture.Texture
	Roughness float32
	Metalness float32
}

// material is the implementation of the Material interface.
type material struct {
	mu sync.RWMutex

	id        uuid.UUID
	name      string
	typ       MaterialType
	color     mgl32.Vec3
	side      Side
	colorMap  texture.Texture
	roughness float32
	metalness float32
}

// Material defines the interface for a surface material.
//
// Surface properties are mutable at runtime (the debug panel edits roughness and
// metalness while frames render) and are safe for concurrent use. Renderers
// should read them through Params.
type Material interface {
	common.FloatProperties

	// ID returns the unique material identifier.
	//
	// Returns:
	//   - uuid.UUID: the material ID
	ID() uuid.UUID

	// Name retrieves the material name.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Type retrieves the shading model.
	//
	// Returns:
	//   - MaterialType: the material type
	Type() MaterialType

	// Color retrieves the linear base color.
	//
	// Returns:
	//   - mgl32.Vec3: the base color
	Color() mgl32.Vec3

	// SetColor sets the linear base color.
	//
	// Parameters:
	//   - c: the base color
	SetColor(c mgl32.Vec3)

	// Side retrieves which faces are rendered.
	//
	// Returns:
	//   - Side: the rendered side
	Side() Side

	// SetSide sets which faces are rendered.
	//
	// Parameters:
	//   - side: the rendered side
	SetSide(side Side)

	// Map retrieves the color map, or nil if none is set. The map may not be Ready
	// yet; renderers ignore maps that are not.
	//
	// Returns:
	//   - texture.Texture: the color map
	Map() texture.Texture

	// SetMap sets the color map.
	//
	// Parameters:
	//   - tex: the color map, or nil to clear
	SetMap(tex texture.Texture)

	// Roughness retrieves the roughness factor in [0, 1].
	// A value of 0.0 represents a perfectly smooth surface, 1.0 represents a fully rough surface.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// SetRoughness sets the roughness factor, clamped to [0, 1].
	//
	// Parameters:
	//   - r: the roughness factor
	SetRoughness(r float32)

	// Metalness retrieves the metalness factor in [0, 1].
	// A value of 0.0 represents a dielectric surface, 1.0 represents a fully metallic surface.
	//
	// Returns:
	//   - float32: the metalness factor
	Metalness() float32

	// SetMetalness sets the metalness factor, clamped to [0, 1].
	//
	// Parameters:
	//   - m: the metalness factor
	SetMetalness(m float32)

	// Params returns a snapshot of the surface properties.
	//
	// Returns:
	//   - Params: the snapshot
	Params() Params
}

var _ Material = &material{}

// NewStandardMaterial creates a lit metal/roughness material. Defaults: white,
// roughness 1, metalness 0, front side.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new standard material
func NewStandardMaterial(options ...MaterialBuilderOption) Material {
	return newMaterial(MaterialTypeStandard, options...)
}

// NewBasicMaterial creates an unlit material. Defaults: white, no map, front side.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new basic material
func NewBasicMaterial(options ...MaterialBuilderOption) Material {
	return newMaterial(MaterialTypeBasic, options...)
}

func newMaterial(typ MaterialType, options ...MaterialBuilderOption) *material {
	m := &material{
		id:        uuid.New(),
		name:      typ.String(),
		typ:       typ,
		color:     mgl32.Vec3{1, 1, 1},
		roughness: 1.0,
		metalness: 0.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) ID() uuid.UUID {
	return m.id
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Type() MaterialType {
	return m.typ
}

func (m *material) Color() mgl32.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.color
}

func (m *material) SetColor(c mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = c
}

func (m *material) Side() Side {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.side
}

func (m *material) SetSide(side Side) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.side = side
}

func (m *material) Map() texture.Texture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.colorMap
}

func (m *material) SetMap(tex texture.Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.colorMap = tex
}

func (m *material) Roughness() float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.roughness
}

func (m *material) SetRoughness(r float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roughness = common.Saturate(r)
}

func (m *material) Metalness() float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metalness
}

func (m *material) SetMetalness(v float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metalness = common.Saturate(v)
}

func (m *material) Params() Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Params{
		Type:      m.typ,
		Color:     m.color,
		Side:      m.side,
		Map:       m.colorMap,
		Roughness: m.roughness,
		Metalness: m.metalness,
	}
}

func (m *material) FloatProperty(path string) (common.FloatBinding, bool) {
	switch path {
	case "roughness":
		return common.FloatBinding{Get: m.Roughness, Set: m.SetRoughness}, true
	case "metalness":
		return common.FloatBinding{Get: m.Metalness, Set: m.SetMetalness}, true
	case "color.r", "color.g", "color.b":
		idx := strings.IndexByte("rgb", path[len(path)-1])
		return common.FloatBinding{
			Get: func() float32 { return m.Color()[idx] },
			Set: func(v float32) {
				m.mu.Lock()
				defer m.mu.Unlock()
				m.color[idx] = v
			},
		}, true
	}
	return common.FloatBinding{}, false
}

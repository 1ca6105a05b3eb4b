package material

import (
	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/texture"
	"github.com/go-gl/mathgl/mgl32"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the linear base color of the material.
//
// Parameters:
//   - color: the base color as linear RGB
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color mgl32.Vec3) MaterialBuilderOption {
	return func(m *material) {
		m.color = color
	}
}

// WithColorHex is an option builder that sets the base color from a 0xRRGGBB sRGB value.
//
// Parameters:
//   - hex: the sRGB color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColorHex(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.color = common.ColorFromHex(hex)
	}
}

// WithMetalness is an option builder that sets the metalness factor of the material.
//
// Parameters:
//   - metalness: the metalness factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = common.Saturate(metalness)
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = common.Saturate(roughness)
	}
}

// WithMap is an option builder that sets the color map.
//
// Parameters:
//   - tex: the color map; it may still be loading
//
// Returns:
//   - MaterialBuilderOption: a function that applies the map option to a material
func WithMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.colorMap = tex
	}
}

// WithSide is an option builder that sets which faces are rendered.
func WithSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.side = side
	}
}

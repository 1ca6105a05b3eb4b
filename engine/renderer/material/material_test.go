package material

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadows/engine/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardDefaults(t *testing.T) {
	m := NewStandardMaterial()
	assert.Equal(t, MaterialTypeStandard, m.Type())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.Color())
	assert.Equal(t, float32(1), m.Roughness())
	assert.Equal(t, float32(0), m.Metalness())
	assert.Equal(t, SideFront, m.Side())
	assert.Nil(t, m.Map())
	assert.Equal(t, "standard", m.Name())
}

func TestBasicWithMap(t *testing.T) {
	tex := texture.New("baked")
	m := NewBasicMaterial(WithName("plane"), WithMap(tex), WithSide(SideDouble))
	assert.Equal(t, MaterialTypeBasic, m.Type())
	assert.Same(t, tex, m.Map())
	assert.Equal(t, SideDouble, m.Side())
	assert.Equal(t, "plane", m.Name())
	assert.NotEqual(t, NewBasicMaterial().ID(), m.ID())
}

func TestRoughnessMetalnessClamp(t *testing.T) {
	m := NewStandardMaterial(WithRoughness(0.7), WithMetalness(2))
	assert.InDelta(t, 0.7, m.Roughness(), 1e-6)
	assert.Equal(t, float32(1), m.Metalness())

	m.SetRoughness(-1)
	assert.Equal(t, float32(0), m.Roughness())
	m.SetMetalness(0.25)
	assert.Equal(t, float32(0.25), m.Metalness())
}

func TestColorHex(t *testing.T) {
	m := NewBasicMaterial(WithColorHex(0xff0000))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, m.Color())
}

func TestFloatProperties(t *testing.T) {
	m := NewStandardMaterial(WithRoughness(0.7))

	rough, ok := m.FloatProperty("roughness")
	require.True(t, ok)
	assert.InDelta(t, 0.7, rough.Get(), 1e-6)
	rough.Set(0.3)
	assert.InDelta(t, 0.3, m.Roughness(), 1e-6)

	metal, ok := m.FloatProperty("metalness")
	require.True(t, ok)
	metal.Set(0.9)
	assert.InDelta(t, 0.9, m.Metalness(), 1e-6)

	green, ok := m.FloatProperty("color.g")
	require.True(t, ok)
	green.Set(0.5)
	assert.Equal(t, mgl32.Vec3{1, 0.5, 1}, m.Color())

	_, ok = m.FloatProperty("shininess")
	assert.False(t, ok)
}

func TestParamsSnapshot(t *testing.T) {
	tex := texture.FromImage("t", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	m := NewStandardMaterial(WithMap(tex), WithRoughness(0.5))
	p := m.Params()
	m.SetRoughness(0.9)

	assert.InDelta(t, 0.5, p.Roughness, 1e-6)
	assert.Same(t, tex, p.Map)
	assert.Equal(t, MaterialTypeStandard, p.Type)
}

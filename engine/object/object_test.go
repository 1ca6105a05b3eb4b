package object

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseDefaults(t *testing.T) {
	a := New("a")
	b := New("b")
	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Visible())
	assert.Equal(t, mgl32.Vec3{}, a.Position())
	assert.Equal(t, "a", a.Name())
}

func TestModelMatrixRotatesBeforeTranslating(t *testing.T) {
	o := New("plane")
	o.SetRotation(-math32.Pi/2, 0, 0)
	o.SetPosition(0, -0.5, 0)

	// A +Z normal tilted by -90deg about X points up.
	n := o.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	assert.InDelta(t, 0, n.X(), 1e-6, "got %v", n)
	assert.InDelta(t, 1, n.Y(), 1e-6, "got %v", n)
	assert.InDelta(t, 0, n.Z(), 1e-6, "got %v", n)

	p := o.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assert.Equal(t, mgl32.Vec3{0, -0.5, 0}, p)
}

func TestBaseProperties(t *testing.T) {
	b := NewBase("x")
	pos, ok := b.PositionProperty("position.z")
	require.True(t, ok)
	pos.Set(4)
	assert.Equal(t, mgl32.Vec3{0, 0, 4}, b.Position())

	vis, ok := b.VisibleProperty("visible")
	require.True(t, ok)
	vis.Set(false)
	assert.False(t, b.Visible())

	_, ok = b.VisibleProperty("hidden")
	assert.False(t, ok)
}

package common

import (
	"image"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositiveOr(t *testing.T) {
	assert.Equal(t, 3, PositiveOr(3, 1))
	assert.Equal(t, 1, PositiveOr(0, 1))
	assert.Equal(t, 1, PositiveOr(-4, 1))
	assert.Equal(t, float32(1), PositiveOr(float32(math32.NaN()), 1))
	assert.Equal(t, float32(0.5), PositiveOr(float32(0.5), 1))
}

func TestClampAndSmoothstep(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(5, -1, 1))
	assert.Equal(t, float32(-1), Clamp(-5, -1, 1))
	assert.Equal(t, float32(0.5), Smoothstep(0, 1, 0.5))
	assert.Equal(t, float32(0), Smoothstep(0.5, 0.5, 0.4))
	assert.Equal(t, float32(1), Smoothstep(0.5, 0.5, 0.6))
}

func TestColorFromHex(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, ColorFromHex(0xffffff))
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, ColorFromHex(0x000000))
	red := ColorFromHex(0xff0000)
	assert.Equal(t, float32(1), red[0])
	assert.Equal(t, float32(0), red[1])
}

func TestSRGBTables(t *testing.T) {
	for _, c := range []uint8{0, 1, 17, 128, 200, 255} {
		assert.Equal(t, c, EncodeSRGB8(DecodeSRGB8(c)), "channel %d", c)
	}
	assert.Equal(t, uint8(0), EncodeSRGB8(-1))
	assert.Equal(t, uint8(255), EncodeSRGB8(2))
	assert.Equal(t, uint8(0), EncodeSRGB8(math32.NaN()))
}

func TestSphericalRoundTrip(t *testing.T) {
	offset := mgl32.Vec3{1, 1, 2}
	r, phi, theta := Spherical(offset)
	assert.InDelta(t, math32.Sqrt(6), r, 1e-5)
	back := FromSpherical(r, phi, theta)
	assert.True(t, back.ApproxEqualThreshold(offset, 1e-5), "got %v", back)
}

func TestVec3Property(t *testing.T) {
	v := mgl32.Vec3{1, 2, 3}
	get := func() mgl32.Vec3 { return v }
	set := func(n mgl32.Vec3) { v = n }

	b, ok := Vec3Property("position.y", "position", get, set)
	require.True(t, ok)
	assert.Equal(t, float32(2), b.Get())
	b.Set(7)
	assert.Equal(t, mgl32.Vec3{1, 7, 3}, v)

	_, ok = Vec3Property("position.w", "position", get, set)
	assert.False(t, ok)
	_, ok = Vec3Property("rotation.x", "position", get, set)
	assert.False(t, ok)
	_, ok = Vec3Property("position", "position", get, set)
	assert.False(t, ok)
}

func TestFrustumIntersectsSphere(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(75), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	f := ExtractFrustum(proj.Mul4(view))

	assert.True(t, f.IntersectsSphere(mgl32.Vec3{}, 0.5))
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{0, 0, 10}, 0.5), "behind the camera")
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{50, 0, 0}, 0.5), "far off to the side")
}

func TestCorners(t *testing.T) {
	proj := mgl32.Ortho(-1, 1, -1, 1, 1, 6)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	c := Corners(proj.Mul4(view).Inv())
	assert.True(t, c[0].ApproxEqualThreshold(mgl32.Vec3{-1, -1, -1}, 1e-4), "near corner %v", c[0])
	assert.True(t, c[6].ApproxEqualThreshold(mgl32.Vec3{1, 1, -6}, 1e-4), "far corner %v", c[6])
}

func TestNewTextureStagingData(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Pix[0] = 9
	data := NewTextureStagingData(img)
	assert.Equal(t, uint32(4), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.Len(t, data.Pixels, 32)
	assert.Equal(t, byte(9), data.Pixels[0])

	sub := img.SubImage(image.Rect(1, 0, 3, 2)).(*image.RGBA)
	packed := NewTextureStagingData(sub)
	assert.Len(t, packed.Pixels, 16)
}

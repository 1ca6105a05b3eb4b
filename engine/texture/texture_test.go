package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

func TestNewTextureIsNotReady(t *testing.T) {
	tex := New("empty")
	assert.False(t, tex.Ready())
	assert.True(t, tex.FlipY())
	assert.Equal(t, ColorSpaceLinear, tex.ColorSpace())

	w, h := tex.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)

	_, err := tex.Image()
	assert.ErrorIs(t, err, ErrNotReady)

	_, ok := tex.Sampler()
	assert.False(t, ok)
}

func TestSetImageMakesReady(t *testing.T) {
	tex := New("checker")
	tex.SetImage(checker())
	require.True(t, tex.Ready())

	w, h := tex.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
}

func TestSamplerCornersFlipY(t *testing.T) {
	tex := FromImage("checker", checker())
	s, ok := tex.Sampler()
	require.True(t, ok)

	// FlipY: image row 0 is at v = 1.
	assert.InDelta(t, 1, s.Sample(0, 1)[0], 1e-6)
	assert.InDelta(t, 1, s.Sample(1, 1)[1], 1e-6)
	assert.InDelta(t, 1, s.Sample(0, 0)[2], 1e-6)
	white := s.Sample(1, 0)
	assert.InDelta(t, 1, white[0], 1e-6)
	assert.InDelta(t, 1, white[1], 1e-6)
	assert.InDelta(t, 1, white[2], 1e-6)
}

func TestSamplerWithoutFlip(t *testing.T) {
	tex := FromImage("checker", checker())
	tex.SetFlipY(false)
	s, ok := tex.Sampler()
	require.True(t, ok)
	assert.InDelta(t, 1, s.Sample(0, 0)[0], 1e-6)
	assert.InDelta(t, 1, s.Sample(0, 1)[2], 1e-6)
}

func TestSamplerBilinearCenter(t *testing.T) {
	tex := FromImage("checker", checker())
	s, _ := tex.Sampler()
	c := s.Sample(0.5, 0.5)
	assert.InDelta(t, 0.5, c[0], 1e-6)
	assert.InDelta(t, 0.5, c[1], 1e-6)
	assert.InDelta(t, 0.5, c[2], 1e-6)
	assert.InDelta(t, 1, c[3], 1e-6)
}

func TestSamplerClampsOutOfRange(t *testing.T) {
	tex := FromImage("checker", checker())
	s, _ := tex.Sampler()
	assert.Equal(t, s.Sample(0, 1), s.Sample(-3, 7))
}

func TestSamplerSRGBDecodes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{128, 128, 128, 255})
	tex := FromImage("gray", img)

	linear, _ := tex.Sampler()
	assert.InDelta(t, 128.0/255.0, linear.Sample(0.5, 0.5)[0], 1e-6)

	tex.SetColorSpace(ColorSpaceSRGB)
	srgb, _ := tex.Sampler()
	assert.InDelta(t, 0.2158, srgb.Sample(0.5, 0.5)[0], 1e-3)
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker()))

	img, format, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 2, img.Bounds().Dx())
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestToRGBAConvertsAndScales(t *testing.T) {
	gray := image.NewGray(image.Rect(10, 10, 50, 30))
	rgba := ToRGBA(gray, 0)
	assert.Equal(t, image.Rect(0, 0, 40, 20), rgba.Bounds())

	scaled := ToRGBA(gray, 10)
	assert.Equal(t, image.Rect(0, 0, 10, 5), scaled.Bounds())

	src := checker()
	assert.Same(t, src, ToRGBA(src, 0))
}

package texture

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ErrNotReady is returned when pixels are requested from a texture whose image
// has not been set yet.
var ErrNotReady = errors.New("texture: not ready")

// ColorSpace describes how stored 8-bit channels map to linear values.
type ColorSpace int

const (
	// ColorSpaceLinear stores linear values; channels are divided by 255.
	ColorSpaceLinear ColorSpace = iota

	// ColorSpaceSRGB stores sRGB-encoded color; channels are decoded on sampling.
	// Used for color maps authored in image editors.
	ColorSpaceSRGB
)

// Texture is a 2D image sampled by materials.
//
// A texture can exist before its pixels do: loaders hand out the texture
// immediately and publish the image once decoding finishes. Until then Ready
// reports false and renderers treat the texture as absent.
type Texture interface {
	// ID returns the texture's unique identifier.
	//
	// Returns:
	//   - uuid.UUID: the texture ID
	ID() uuid.UUID

	// Name returns the texture name, usually its source path.
	//
	// Returns:
	//   - string: the name
	Name() string

	// ColorSpace returns how channels are decoded when sampled.
	//
	// Returns:
	//   - ColorSpace: the color space
	ColorSpace() ColorSpace

	// SetColorSpace sets how channels are decoded when sampled.
	//
	// Parameters:
	//   - cs: the color space
	SetColorSpace(cs ColorSpace)

	// FlipY reports whether image row 0 maps to v = 1 (the default).
	//
	// Returns:
	//   - bool: true if the image is flipped vertically when sampled
	FlipY() bool

	// SetFlipY sets whether image row 0 maps to v = 1.
	//
	// Parameters:
	//   - flip: true to flip
	SetFlipY(flip bool)

	// Ready reports whether the texture has pixels.
	//
	// Returns:
	//   - bool: true once an image has been set
	Ready() bool

	// Size returns the image dimensions, or zeros when not ready.
	//
	// Returns:
	//   - width, height: dimensions in texels
	Size() (width, height int)

	// Image returns the RGBA pixels.
	//
	// Returns:
	//   - *image.RGBA: the pixels
	//   - error: ErrNotReady when no image has been set
	Image() (*image.RGBA, error)

	// SetImage publishes pixels, converting to RGBA when needed. The image must not
	// be modified afterwards.
	//
	// Parameters:
	//   - img: the decoded image
	SetImage(img image.Image)

	// Sampler returns an immutable sampling view of the current pixels.
	//
	// Returns:
	//   - Sampler: the sampler
	//   - bool: false when the texture is not ready
	Sampler() (Sampler, bool)
}

type textureImpl struct {
	mu         sync.RWMutex
	id         uuid.UUID
	name       string
	colorSpace ColorSpace
	flipY      bool
	ready      atomic.Bool
	img        *image.RGBA
}

var _ Texture = &textureImpl{}

// New creates an empty texture in the linear color space with FlipY enabled.
//
// Parameters:
//   - name: the texture name
//
// Returns:
//   - Texture: the empty texture
func New(name string) Texture {
	return &textureImpl{
		id:    uuid.New(),
		name:  name,
		flipY: true,
	}
}

// FromImage creates a ready texture from an image.
//
// Parameters:
//   - name: the texture name
//   - img: the pixels
//
// Returns:
//   - Texture: the ready texture
func FromImage(name string, img image.Image) Texture {
	t := New(name)
	t.SetImage(img)
	return t
}

func (t *textureImpl) ID() uuid.UUID {
	return t.id
}

func (t *textureImpl) Name() string {
	return t.name
}

func (t *textureImpl) ColorSpace() ColorSpace {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.colorSpace
}

func (t *textureImpl) SetColorSpace(cs ColorSpace) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.colorSpace = cs
}

func (t *textureImpl) FlipY() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.flipY
}

func (t *textureImpl) SetFlipY(flip bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.flipY = flip
}

func (t *textureImpl) Ready() bool {
	return t.ready.Load()
}

func (t *textureImpl) Size() (int, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.img == nil {
		return 0, 0
	}
	return t.img.Rect.Dx(), t.img.Rect.Dy()
}

func (t *textureImpl) Image() (*image.RGBA, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.img == nil {
		return nil, ErrNotReady
	}
	return t.img, nil
}

func (t *textureImpl) SetImage(img image.Image) {
	if img == nil {
		return
	}
	rgba := ToRGBA(img, 0)
	t.mu.Lock()
	t.img = rgba
	t.mu.Unlock()
	t.ready.Store(true)
}

func (t *textureImpl) Sampler() (Sampler, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.img == nil || t.img.Rect.Empty() {
		return Sampler{}, false
	}
	return Sampler{
		pix:    t.img.Pix,
		stride: t.img.Stride,
		width:  t.img.Rect.Dx(),
		height: t.img.Rect.Dy(),
		srgb:   t.colorSpace == ColorSpaceSRGB,
		flipY:  t.flipY,
	}, true
}

// Sampler is a bilinear, clamp-to-edge view over texture pixels. It is safe for
// concurrent use.
type Sampler struct {
	pix           []byte
	stride        int
	width, height int
	srgb          bool
	flipY         bool
}

// Sample returns the linear RGBA color at texture coordinate (u, v).
//
// Parameters:
//   - u, v: texture coordinates; values outside [0, 1] clamp to the edge
//
// Returns:
//   - mgl32.Vec4: linear color with alpha
func (s Sampler) Sample(u, v float32) mgl32.Vec4 {
	u = common.Saturate(u)
	v = common.Saturate(v)
	if s.flipY {
		v = 1 - v
	}
	x := u*float32(s.width) - 0.5
	y := v*float32(s.height) - 0.5
	fx0 := math32.Floor(x)
	fy0 := math32.Floor(y)
	tx, ty := x-fx0, y-fy0

	x0 := clampInt(int(fx0), 0, s.width-1)
	x1 := clampInt(int(fx0)+1, 0, s.width-1)
	y0 := clampInt(int(fy0), 0, s.height-1)
	y1 := clampInt(int(fy0)+1, 0, s.height-1)

	c00 := s.texel(x0, y0)
	c10 := s.texel(x1, y0)
	c01 := s.texel(x0, y1)
	c11 := s.texel(x1, y1)

	top := c00.Mul(1 - tx).Add(c10.Mul(tx))
	bottom := c01.Mul(1 - tx).Add(c11.Mul(tx))
	return top.Mul(1 - ty).Add(bottom.Mul(ty))
}

func (s Sampler) texel(x, y int) mgl32.Vec4 {
	i := y*s.stride + x*4
	p := s.pix[i : i+4 : i+4]
	if s.srgb {
		return mgl32.Vec4{common.DecodeSRGB8(p[0]), common.DecodeSRGB8(p[1]), common.DecodeSRGB8(p[2]), float32(p[3]) / 255}
	}
	return mgl32.Vec4{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package common

import "image"

// TextureStagingData holds tightly packed RGBA8 pixels ready for a GPU upload.
type TextureStagingData struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

// NewTextureStagingData packs an RGBA image into staging data, dropping any row padding.
// The returned Pixels alias img.Pix when the image is already tightly packed.
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - TextureStagingData: packed pixels and dimensions
func NewTextureStagingData(img *image.RGBA) TextureStagingData {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rowBytes := w * 4
	if img.Stride == rowBytes && b.Min == (image.Point{}) {
		return TextureStagingData{Pixels: img.Pix[:rowBytes*h], Width: uint32(w), Height: uint32(h)}
	}
	pix := make([]byte, rowBytes*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[y*rowBytes:(y+1)*rowBytes], img.Pix[off:off+rowBytes])
	}
	return TextureStagingData{Pixels: pix, Width: uint32(w), Height: uint32(h)}
}

package texture

import (
	"fmt"
	"image"
	"io"

	// Register decoders with image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/image/draw"
)

// Decode reads an encoded image (JPEG, PNG, BMP or WebP).
//
// Parameters:
//   - r: the encoded image stream
//
// Returns:
//   - image.Image: the decoded image
//   - string: the format name
//   - error: wrapped decode error
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode texture: %w", err)
	}
	return img, format, nil
}

// ToRGBA converts an image to a zero-origin RGBA image. When maxSize is positive
// and either dimension exceeds it, the image is downscaled with Catmull-Rom
// filtering, preserving aspect ratio.
//
// Parameters:
//   - img: the source image
//   - maxSize: largest allowed dimension, or 0 for no limit
//
// Returns:
//   - *image.RGBA: the converted image; img itself when no conversion is needed
func ToRGBA(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			w, h = maxSize, max(1, h*maxSize/w)
		} else {
			w, h = max(1, w*maxSize/h), maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		return dst
	}
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

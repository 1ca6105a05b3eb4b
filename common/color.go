package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ColorFromHex converts a 0xRRGGBB value into linear RGB components.
// Hex colors are authored in sRGB, so each channel is decoded to linear space.
func ColorFromHex(hex uint32) mgl32.Vec3 {
	r := float32((hex>>16)&0xff) / 255
	g := float32((hex>>8)&0xff) / 255
	b := float32(hex&0xff) / 255
	return mgl32.Vec3{SRGBToLinear(r), SRGBToLinear(g), SRGBToLinear(b)}
}

// SRGBToLinear decodes a single sRGB channel value in [0, 1].
func SRGBToLinear(c float32) float32 {
	if c >= 1 {
		return 1
	}
	if c < 0.04045 {
		return c * 0.0773993808
	}
	return math32.Pow(c*0.9478672986+0.0521327014, 2.4)
}

// LinearToSRGB encodes a single linear channel value in [0, 1].
func LinearToSRGB(c float32) float32 {
	if c < 0.0031308 {
		return c * 12.92
	}
	return 1.055*math32.Pow(c, 0.41666) - 0.055
}

// srgbDecodeTable maps 8-bit sRGB values to linear floats.
var srgbDecodeTable = func() [256]float32 {
	var t [256]float32
	for i := range t {
		t[i] = SRGBToLinear(float32(i) / 255)
	}
	return t
}()

// encodeTableSize is the resolution of the linear-to-sRGB lookup.
const encodeTableSize = 4096

var srgbEncodeTable = func() [encodeTableSize + 1]uint8 {
	var t [encodeTableSize + 1]uint8
	for i := range t {
		t[i] = uint8(LinearToSRGB(float32(i)/encodeTableSize)*255 + 0.5)
	}
	return t
}()

// DecodeSRGB8 returns the linear value of an 8-bit sRGB channel.
func DecodeSRGB8(c uint8) float32 {
	return srgbDecodeTable[c]
}

// EncodeSRGB8 clamps a linear channel to [0, 1] and returns its 8-bit sRGB encoding.
func EncodeSRGB8(c float32) uint8 {
	if !(c > 0) {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return srgbEncodeTable[int(c*encodeTableSize+0.5)]
}

// EncodeLinear8 clamps a linear channel to [0, 1] and scales it to 8 bits without a transfer function.
func EncodeLinear8(c float32) uint8 {
	return uint8(Saturate(c)*255 + 0.5)
}

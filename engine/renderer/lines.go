package renderer

import (
	"image"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/light"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// lineDepthBias lets lines lying on a surface win the depth test.
const lineDepthBias float32 = 1e-4

// drawLines draws world-space segments onto dst, depth tested against t
// without writing depth.
func drawLines(dst *image.RGBA, t *target, lines []light.Line, viewProj mgl32.Mat4) {
	for _, ln := range lines {
		a := viewProj.Mul4x1(ln.From.Vec4(1))
		b := viewProj.Mul4x1(ln.To.Vec4(1))
		a, b, ok := clipSegmentNear(a, b)
		if !ok {
			continue
		}
		col := [3]uint8{common.EncodeSRGB8(ln.Color[0]), common.EncodeSRGB8(ln.Color[1]), common.EncodeSRGB8(ln.Color[2])}
		drawSegment(dst, t, toScreen(a, t.width, t.height), toScreen(b, t.width, t.height), col)
	}
}

// clipSegmentNear trims a clip-space segment to z >= -w.
func clipSegmentNear(a, b mgl32.Vec4) (mgl32.Vec4, mgl32.Vec4, bool) {
	da, db := a[2]+a[3], b[2]+b[3]
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da < 0:
		a = a.Add(b.Sub(a).Mul(da / (da - db)))
	case db < 0:
		b = b.Add(a.Sub(b).Mul(db / (db - da)))
	}
	return a, b, true
}

func toScreen(c mgl32.Vec4, width, height int) mgl32.Vec3 {
	iw := 1 / math32.Max(c[3], 1e-6)
	return mgl32.Vec3{
		(c[0]*iw + 1) * 0.5 * float32(width),
		(1 - c[1]*iw) * 0.5 * float32(height),
		(c[2]*iw + 1) * 0.5,
	}
}

// drawSegment walks the segment one pixel at a time along its major axis.
func drawSegment(dst *image.RGBA, t *target, a, b mgl32.Vec3, col [3]uint8) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	steps := int(math32.Ceil(math32.Max(math32.Abs(dx), math32.Abs(dy))))
	if steps > 4*(t.width+t.height) {
		// Mostly off screen; trim to the viewport before walking.
		var ok bool
		if a, b, ok = clipSegmentRect(a, b, float32(t.width), float32(t.height)); !ok {
			return
		}
		dx, dy = b[0]-a[0], b[1]-a[1]
		steps = int(math32.Ceil(math32.Max(math32.Abs(dx), math32.Abs(dy))))
	}
	steps = max(steps, 1)
	for i := 0; i <= steps; i++ {
		f := float32(i) / float32(steps)
		x := int(math32.Floor(a[0] + dx*f))
		y := int(math32.Floor(a[1] + dy*f))
		if x < 0 || y < 0 || x >= t.width || y >= t.height {
			continue
		}
		z := a[2] + (b[2]-a[2])*f
		if z < 0 || z > 1 || z-lineDepthBias > t.depth[y*t.width+x] {
			continue
		}
		off := dst.PixOffset(x, y)
		dst.Pix[off], dst.Pix[off+1], dst.Pix[off+2], dst.Pix[off+3] = col[0], col[1], col[2], 255
	}
}

// clipSegmentRect clips a screen segment to [0, w] x [0, h] (Liang-Barsky).
func clipSegmentRect(a, b mgl32.Vec3, w, h float32) (mgl32.Vec3, mgl32.Vec3, bool) {
	d := b.Sub(a)
	t0, t1 := float32(0), float32(1)
	clip := func(p, q float32) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = math32.Max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = math32.Min(t1, r)
		}
		return true
	}
	if !clip(-d[0], a[0]) || !clip(d[0], w-a[0]) || !clip(-d[1], a[1]) || !clip(d[1], h-a[1]) {
		return a, b, false
	}
	return a.Add(d.Mul(t0)), a.Add(d.Mul(t1)), true
}

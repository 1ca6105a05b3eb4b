package renderer

import (
	"github.com/Carmen-Shannon/oxy-shadows/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// clipVertex is a vertex after the model and view-projection transforms.
type clipVertex struct {
	clip   mgl32.Vec4
	world  mgl32.Vec3
	normal mgl32.Vec3
	uv     mgl32.Vec2
}

func lerpVertex(a, b clipVertex, t float32) clipVertex {
	return clipVertex{
		clip:   a.clip.Add(b.clip.Sub(a.clip).Mul(t)),
		world:  a.world.Add(b.world.Sub(a.world).Mul(t)),
		normal: a.normal.Add(b.normal.Sub(a.normal).Mul(t)),
		uv:     a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
	}
}

// screenTriangle is a clipped triangle in pixel space, wound so that area > 0.
type screenTriangle struct {
	x, y, z, invW [3]float32

	world  [3]mgl32.Vec3
	normal [3]mgl32.Vec3
	uv     [3]mgl32.Vec2

	area  float32
	front bool
	item  int

	minX, minY, maxX, maxY int
}

// target is a depth buffer with an optional visibility buffer recording which
// triangle covers each pixel and its perspective-correct barycentrics.
type target struct {
	width, height int
	depth         []float32
	tri           []int32
	bary          [][2]float32
}

func newTarget(width, height int, visibility bool) *target {
	t := &target{}
	t.resize(width, height, visibility)
	return t
}

func (t *target) resize(width, height int, visibility bool) {
	n := width * height
	t.width, t.height = width, height
	if cap(t.depth) < n {
		t.depth = make([]float32, n)
	}
	t.depth = t.depth[:n]
	if !visibility {
		t.tri, t.bary = nil, nil
		return
	}
	if cap(t.tri) < n {
		t.tri = make([]int32, n)
		t.bary = make([][2]float32, n)
	}
	t.tri, t.bary = t.tri[:n], t.bary[:n]
}

// clearRows resets rows [y0, y1) to the far plane with no coverage.
func (t *target) clearRows(y0, y1 int) {
	lo, hi := y0*t.width, y1*t.width
	for i := lo; i < hi; i++ {
		t.depth[i] = 1
	}
	if t.tri != nil {
		for i := lo; i < hi; i++ {
			t.tri[i] = -1
		}
	}
}

// transformVertices runs the vertex stage for one mesh into dst.
func transformVertices(dst []clipVertex, verts []geometry.Vertex, model, viewProj mgl32.Mat4) []clipVertex {
	normalMatrix := model.Mat3().Inv().Transpose()
	mvp := viewProj.Mul4(model)
	dst = dst[:0]
	for _, v := range verts {
		dst = append(dst, clipVertex{
			clip:   mvp.Mul4x1(v.Position.Vec4(1)),
			world:  model.Mul4x1(v.Position.Vec4(1)).Vec3(),
			normal: normalMatrix.Mul3x1(v.Normal),
			uv:     v.UV,
		})
	}
	return dst
}

// outsideSamePlane reports whether all three vertices lie outside one of the
// left, right, bottom, top or far clip planes.
func outsideSamePlane(a, b, c mgl32.Vec4) bool {
	for axis := 0; axis < 3; axis++ {
		if a[axis] > a[3] && b[axis] > b[3] && c[axis] > c[3] {
			return true
		}
		if axis < 2 && a[axis] < -a[3] && b[axis] < -b[3] && c[axis] < -c[3] {
			return true
		}
	}
	return false
}

// clipNear clips a triangle against the near plane (z >= -w) and returns the
// resulting polygon size (0, 3 or 4).
func clipNear(in [3]clipVertex, out *[4]clipVertex) int {
	n := 0
	for i := 0; i < 3; i++ {
		a, b := in[i], in[(i+1)%3]
		da, db := a.clip[2]+a.clip[3], b.clip[2]+b.clip[3]
		if da >= 0 {
			out[n] = a
			n++
		}
		if (da >= 0) != (db >= 0) {
			out[n] = lerpVertex(a, b, da/(da-db))
			n++
		}
	}
	return n
}

// assemble clips and projects every triangle of a mesh and appends the visible
// ones to dst.
func assemble(dst []screenTriangle, verts []clipVertex, indices []uint32, side material.Side, item, width, height int) []screenTriangle {
	var poly [4]clipVertex
	for i := 0; i+2 < len(indices); i += 3 {
		tri := [3]clipVertex{verts[indices[i]], verts[indices[i+1]], verts[indices[i+2]]}
		if outsideSamePlane(tri[0].clip, tri[1].clip, tri[2].clip) {
			continue
		}
		n := clipNear(tri, &poly)
		for k := 1; k+1 < n; k++ {
			if st, ok := setupTriangle([3]clipVertex{poly[0], poly[k], poly[k+1]}, side, width, height); ok {
				st.item = item
				dst = append(dst, st)
			}
		}
	}
	return dst
}

// setupTriangle maps a clipped triangle to the viewport, culls it by side and
// computes its pixel bounds.
func setupTriangle(v [3]clipVertex, side material.Side, width, height int) (screenTriangle, bool) {
	var t screenTriangle
	fw, fh := float32(width), float32(height)
	for i := range v {
		w := v[i].clip[3]
		if w <= 0 {
			return t, false
		}
		iw := 1 / w
		t.x[i] = (v[i].clip[0]*iw + 1) * 0.5 * fw
		t.y[i] = (1 - v[i].clip[1]*iw) * 0.5 * fh
		t.z[i] = (v[i].clip[2]*iw + 1) * 0.5
		t.invW[i] = iw
		t.world[i] = v[i].world
		t.normal[i] = v[i].normal
		t.uv[i] = v[i].uv
	}

	area := edge(t.x[0], t.y[0], t.x[1], t.y[1], t.x[2], t.y[2])
	if math32.Abs(area) < 1e-9 {
		return t, false
	}
	// Counter-clockwise in NDC is clockwise once y points down.
	t.front = area < 0
	switch side {
	case material.SideFront:
		if !t.front {
			return t, false
		}
	case material.SideBack:
		if t.front {
			return t, false
		}
	}
	if area < 0 {
		t.swap12()
		area = -area
	}
	t.area = area

	minX := math32.Min(t.x[0], math32.Min(t.x[1], t.x[2]))
	maxX := math32.Max(t.x[0], math32.Max(t.x[1], t.x[2]))
	minY := math32.Min(t.y[0], math32.Min(t.y[1], t.y[2]))
	maxY := math32.Max(t.y[0], math32.Max(t.y[1], t.y[2]))
	t.minX = max(0, int(math32.Floor(minX)))
	t.minY = max(0, int(math32.Floor(minY)))
	t.maxX = min(width-1, int(math32.Ceil(maxX)))
	t.maxY = min(height-1, int(math32.Ceil(maxY)))
	if t.minX > t.maxX || t.minY > t.maxY {
		return t, false
	}
	return t, true
}

func (t *screenTriangle) swap12() {
	t.x[1], t.x[2] = t.x[2], t.x[1]
	t.y[1], t.y[2] = t.y[2], t.y[1]
	t.z[1], t.z[2] = t.z[2], t.z[1]
	t.invW[1], t.invW[2] = t.invW[2], t.invW[1]
	t.world[1], t.world[2] = t.world[2], t.world[1]
	t.normal[1], t.normal[2] = t.normal[2], t.normal[1]
	t.uv[1], t.uv[2] = t.uv[2], t.uv[1]
}

// edge is twice the signed area of (a, b, p).
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// rasterize scan converts tris into rows [y0, y1) of t, sampling pixel centers.
func (t *target) rasterize(tris []screenTriangle, y0, y1 int) {
	for i := range tris {
		tri := &tris[i]
		rowLo, rowHi := max(tri.minY, y0), min(tri.maxY, y1-1)
		if rowLo > rowHi {
			continue
		}
		x0, x1, x2 := tri.x[0], tri.x[1], tri.x[2]
		yy0, yy1, yy2 := tri.y[0], tri.y[1], tri.y[2]
		invArea := 1 / tri.area

		// Edge function increments per pixel step in x.
		dx0, dx1, dx2 := -(yy2 - yy1), -(yy0 - yy2), -(yy1 - yy0)
		startX := float32(tri.minX) + 0.5

		for py := rowLo; py <= rowHi; py++ {
			sy := float32(py) + 0.5
			w0 := edge(x1, yy1, x2, yy2, startX, sy)
			w1 := edge(x2, yy2, x0, yy0, startX, sy)
			w2 := edge(x0, yy0, x1, yy1, startX, sy)
			row := py * t.width
			for px := tri.minX; px <= tri.maxX; px, w0, w1, w2 = px+1, w0+dx0, w1+dx1, w2+dx2 {
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
				l0, l1, l2 := w0*invArea, w1*invArea, w2*invArea
				z := l0*tri.z[0] + l1*tri.z[1] + l2*tri.z[2]
				idx := row + px
				if z < 0 || z >= t.depth[idx] {
					continue
				}
				t.depth[idx] = z
				if t.tri == nil {
					continue
				}
				p0, p1, p2 := l0*tri.invW[0], l1*tri.invW[1], l2*tri.invW[2]
				s := 1 / (p0 + p1 + p2)
				t.tri[idx] = int32(i)
				t.bary[idx] = [2]float32{p1 * s, p2 * s}
			}
		}
	}
}

// interpolate returns the world position, normal and uv of a covered pixel.
func (tri *screenTriangle) interpolate(b [2]float32) (pos, normal mgl32.Vec3, uv mgl32.Vec2) {
	b0 := 1 - b[0] - b[1]
	pos = tri.world[0].Mul(b0).Add(tri.world[1].Mul(b[0])).Add(tri.world[2].Mul(b[1]))
	normal = tri.normal[0].Mul(b0).Add(tri.normal[1].Mul(b[0])).Add(tri.normal[2].Mul(b[1]))
	if l := normal.Len(); l > 0 {
		normal = normal.Mul(1 / l)
	}
	if !tri.front {
		normal = normal.Mul(-1)
	}
	uv = tri.uv[0].Mul(b0).Add(tri.uv[1].Mul(b[0])).Add(tri.uv[2].Mul(b[1]))
	return pos, normal, uv
}

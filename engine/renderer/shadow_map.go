package renderer

import (
	"github.com/Carmen-Shannon/oxy-shadows/engine/light"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ShadowMapType selects how shadow maps are filtered.
type ShadowMapType int

const (
	// ShadowMapBasic takes a single unfiltered depth comparison.
	ShadowMapBasic ShadowMapType = iota

	// ShadowMapPCF averages a 3x3 grid of depth comparisons.
	ShadowMapPCF

	// ShadowMapPCFSoft averages a 3x3 grid of bilinearly filtered comparisons.
	ShadowMapPCFSoft
)

// String returns the filter name.
func (t ShadowMapType) String() string {
	switch t {
	case ShadowMapBasic:
		return "basic"
	case ShadowMapPCF:
		return "pcf"
	case ShadowMapPCFSoft:
		return "pcfsoft"
	}
	return "unknown"
}

// ShadowMap holds the renderer-wide shadow settings. Shadow maps are only
// rendered and sampled while Enabled is true.
type ShadowMap struct {
	Enabled bool
	Type    ShadowMapType
}

// shadowMap is the depth data of one light. Directional and spot lights use a
// single face of normalized device depth; point lights use six faces of
// distance / far.
type shadowMap struct {
	kind          light.LightType
	width, height int
	faces         int
	depth         [light.CubeFaceCount][]float32
	viewProj      [light.CubeFaceCount]mgl32.Mat4

	position   mgl32.Vec3
	far        float32
	bias       float32
	normalBias float32
	radius     float32
}

// prepare updates the light's shadow camera and sizes the map for this frame.
func (m *shadowMap) prepare(l light.Light) {
	s := l.Shadow()
	s.UpdateMatrices(l)

	m.kind = l.Type()
	m.width, m.height = max(1, s.MapWidth), max(1, s.MapHeight)
	m.faces = 1
	if m.kind == light.LightTypePoint {
		m.faces = light.CubeFaceCount
	}
	n := m.width * m.height
	for f := 0; f < m.faces; f++ {
		if cap(m.depth[f]) < n {
			m.depth[f] = make([]float32, n)
		}
		m.depth[f] = m.depth[f][:n]
		m.viewProj[f] = s.FaceViewProjection(l, f)
	}
	m.position = l.Position()
	m.far = s.Camera.Far
	m.bias = s.Bias
	m.normalBias = s.NormalBias
	m.radius = math32.Max(s.Radius, 1)
}

// shadowSide is the face culling used when rendering casters into a shadow map.
// Single-sided casters render their far side to keep acne off lit surfaces.
func shadowSide(side material.Side) material.Side {
	switch side {
	case material.SideFront:
		return material.SideBack
	case material.SideBack:
		return material.SideFront
	}
	return material.SideDouble
}

// resolve copies a rasterized face into the map.
func (m *shadowMap) resolve(face int, t *target, tris []screenTriangle, y0, y1 int) {
	dst := m.depth[face]
	for i := y0 * t.width; i < y1*t.width; i++ {
		if m.kind != light.LightTypePoint {
			dst[i] = t.depth[i]
			continue
		}
		ti := t.tri[i]
		if ti < 0 {
			dst[i] = 1
			continue
		}
		pos, _, _ := tris[ti].interpolate(t.bary[i])
		dst[i] = math32.Min(pos.Sub(m.position).Len()/m.far, 1)
	}
}

// visibility returns the lit fraction of a world position in [0, 1].
func (m *shadowMap) visibility(pos, normal mgl32.Vec3, filter ShadowMapType) float32 {
	p := pos.Add(normal.Mul(m.normalBias))
	face := 0
	var ref float32
	if m.kind == light.LightTypePoint {
		d := p.Sub(m.position)
		face = light.CubeFace(d)
		ref = d.Len()/m.far - m.bias
	}

	clip := m.viewProj[face].Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 1
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	if ndc[0] < -1 || ndc[0] > 1 || ndc[1] < -1 || ndc[1] > 1 || ndc[2] > 1 {
		return 1
	}
	if m.kind != light.LightTypePoint {
		ref = (ndc[2]+1)*0.5 - m.bias
	}

	u := (ndc[0]+1)*0.5*float32(m.width) - 0.5
	v := (1-ndc[1])*0.5*float32(m.height) - 0.5
	depth := m.depth[face]

	switch filter {
	case ShadowMapBasic:
		return m.compare(depth, int(math32.Round(u)), int(math32.Round(v)), ref)
	case ShadowMapPCF:
		var sum float32
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				sum += m.compare(depth, int(math32.Round(u+float32(dx)*m.radius)), int(math32.Round(v+float32(dy)*m.radius)), ref)
			}
		}
		return sum / 9
	default:
		var sum float32
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				sum += m.compareBilinear(depth, u+float32(dx)*m.radius, v+float32(dy)*m.radius, ref)
			}
		}
		return sum / 9
	}
}

// compare is 1 when the texel at (x, y) does not occlude ref.
func (m *shadowMap) compare(depth []float32, x, y int, ref float32) float32 {
	x = min(max(x, 0), m.width-1)
	y = min(max(y, 0), m.height-1)
	if ref <= depth[y*m.width+x] {
		return 1
	}
	return 0
}

func (m *shadowMap) compareBilinear(depth []float32, u, v, ref float32) float32 {
	x0, y0 := math32.Floor(u), math32.Floor(v)
	fx, fy := u-x0, v-y0
	ix, iy := int(x0), int(y0)
	a := m.compare(depth, ix, iy, ref)
	b := m.compare(depth, ix+1, iy, ref)
	c := m.compare(depth, ix, iy+1, ref)
	d := m.compare(depth, ix+1, iy+1, ref)
	top := a + (b-a)*fx
	bottom := c + (d-c)*fx
	return top + (bottom-top)*fy
}

package renderer

import (
	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/light"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-shadows/engine/texture"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	reciprocalPi = 1 / math32.Pi

	// minRoughness keeps the GGX lobe from collapsing to a point highlight.
	minRoughness float32 = 0.0525

	// dielectricF0 is the normal-incidence reflectance of non-metals.
	dielectricF0 float32 = 0.04
)

// lightState is a per-frame snapshot of a light in shading terms.
type lightState struct {
	typ      light.LightType
	radiance mgl32.Vec3

	position mgl32.Vec3
	// toLight is the normalized direction from the scene to a directional light.
	toLight mgl32.Vec3
	// axis is the normalized spot direction from the light to its target.
	axis mgl32.Vec3

	distance float32
	decay    float32

	coneCos     float32
	penumbraCos float32

	castShadow bool
	shadow     *shadowMap
}

func newLightState(l light.Light) *lightState {
	s := &lightState{
		typ:        l.Type(),
		radiance:   l.Color().Mul(l.Intensity()),
		position:   l.Position(),
		distance:   l.Distance(),
		decay:      l.Decay(),
		castShadow: l.CastShadow(),
	}
	switch s.typ {
	case light.LightTypeDirectional:
		s.toLight = l.Direction().Mul(-1)
	case light.LightTypeSpot:
		s.axis = l.Direction()
		s.coneCos = math32.Cos(l.Angle())
		s.penumbraCos = math32.Cos(l.Angle() * (1 - l.Penumbra()))
	}
	return s
}

// incident returns the direction toward the light and the irradiance arriving at
// pos before the cosine term. ok is false when the light contributes nothing.
func (s *lightState) incident(pos mgl32.Vec3) (dir, color mgl32.Vec3, ok bool) {
	switch s.typ {
	case light.LightTypeDirectional:
		return s.toLight, s.radiance, true
	case light.LightTypePoint, light.LightTypeSpot:
		v := s.position.Sub(pos)
		d := v.Len()
		if d == 0 {
			return dir, color, false
		}
		dir = v.Mul(1 / d)
		atten := distanceAttenuation(d, s.distance, s.decay)
		if s.typ == light.LightTypeSpot {
			atten *= common.Smoothstep(s.coneCos, s.penumbraCos, -dir.Dot(s.axis))
		}
		if atten <= 0 {
			return dir, color, false
		}
		return dir, s.radiance.Mul(atten), true
	}
	return dir, color, false
}

// distanceAttenuation is inverse-power falloff with a smooth window reaching zero
// at the cutoff distance (0 = no cutoff).
func distanceAttenuation(d, cutoff, decay float32) float32 {
	falloff := 1 / math32.Max(math32.Pow(d, decay), 0.01)
	if cutoff > 0 {
		r := d / cutoff
		w := common.Saturate(1 - r*r*r*r)
		falloff *= w * w
	}
	return falloff
}

// surface is the shading input of one pixel.
type surface struct {
	pos, normal, view mgl32.Vec3
	uv                mgl32.Vec2
	receiveShadow     bool
}

// drawItem is the per-frame snapshot of a mesh.
type drawItem struct {
	params        material.Params
	sampler       texture.Sampler
	hasMap        bool
	receiveShadow bool
	lights        []*lightState
}

// baseColor returns the material color modulated by its map when the map is ready.
func (d *drawItem) baseColor(uv mgl32.Vec2) mgl32.Vec3 {
	c := d.params.Color
	if d.hasMap {
		t := d.sampler.Sample(uv[0], uv[1])
		c = mgl32.Vec3{c[0] * t[0], c[1] * t[1], c[2] * t[2]}
	}
	return c
}

// shade returns the linear outgoing color of a pixel.
func (d *drawItem) shade(s *surface, filter ShadowMapType, shadows bool) mgl32.Vec3 {
	base := d.baseColor(s.uv)
	if d.params.Type == material.MaterialTypeBasic {
		return base
	}

	metal := common.Saturate(d.params.Metalness)
	rough := common.Clamp(math32.Max(d.params.Roughness, minRoughness), 0, 1)
	diffuseColor := base.Mul(1 - metal)
	f0 := mgl32.Vec3{dielectricF0, dielectricF0, dielectricF0}.Mul(1 - metal).Add(base.Mul(metal))

	var diffuse, specular mgl32.Vec3
	for _, l := range d.lights {
		if l.typ == light.LightTypeAmbient {
			diffuse = diffuse.Add(mulVec(l.radiance, diffuseColor).Mul(reciprocalPi))
			continue
		}
		dir, color, ok := l.incident(s.pos)
		if !ok {
			continue
		}
		dotNL := common.Saturate(s.normal.Dot(dir))
		if dotNL == 0 {
			continue
		}
		if shadows && s.receiveShadow && l.castShadow && l.shadow != nil {
			vis := l.shadow.visibility(s.pos, s.normal, filter)
			if vis == 0 {
				continue
			}
			color = color.Mul(vis)
		}
		irradiance := color.Mul(dotNL)
		diffuse = diffuse.Add(mulVec(irradiance, diffuseColor).Mul(reciprocalPi))
		specular = specular.Add(mulVec(irradiance, brdfGGX(dir, s.view, s.normal, f0, rough)))
	}
	return diffuse.Add(specular)
}

// brdfGGX evaluates the specular microfacet BRDF with Schlick Fresnel, Smith
// height-correlated visibility and the GGX distribution.
func brdfGGX(l, v, n, f0 mgl32.Vec3, roughness float32) mgl32.Vec3 {
	alpha := roughness * roughness
	h := l.Add(v)
	if hl := h.Len(); hl > 0 {
		h = h.Mul(1 / hl)
	}
	dotNL := common.Saturate(n.Dot(l))
	dotNV := common.Saturate(n.Dot(v))
	dotNH := common.Saturate(n.Dot(h))
	dotVH := common.Saturate(v.Dot(h))

	fresnel := math32.Pow(1-dotVH, 5)
	f := f0.Mul(1 - fresnel).Add(mgl32.Vec3{fresnel, fresnel, fresnel})

	a2 := alpha * alpha
	gv := dotNL * math32.Sqrt(a2+(1-a2)*dotNV*dotNV)
	gl := dotNV * math32.Sqrt(a2+(1-a2)*dotNL*dotNL)
	vis := 0.5 / math32.Max(gv+gl, 1e-6)

	denom := dotNH*dotNH*(a2-1) + 1
	dist := reciprocalPi * a2 / (denom * denom)
	return f.Mul(vis * dist)
}

func mulVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

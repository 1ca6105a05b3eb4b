package light

import (
	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/object"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient represents a uniform light applied to every surface with no
	// direction or position. Cannot cast shadows.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a distant source like the sun. Emits parallel
	// rays from its position toward its target with no distance attenuation.
	LightTypeDirectional

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance, optionally cut off at a maximum distance.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position toward
	// its target. Attenuates with distance and with angle from the cone axis.
	LightTypeSpot
)

// String returns the light type name.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	object.Base
	lightType  LightType
	color      mgl32.Vec3
	intensity  float32
	distance   float32
	decay      float32
	angle      float32 // cone half-angle in radians
	penumbra   float32
	castShadow bool
	target     object.Object
	shadow     *Shadow
}

// Light defines the interface for a light source in the scene.
//
// All light types share this interface; type-specific properties (e.g. the cone
// angle of a spot light) are ignored for types that do not use them. Lights
// expose their tweakable fields through FloatProperty and BoolProperty so debug
// controls can bind to them once at construction.
type Light interface {
	object.Object
	common.FloatProperties
	common.BoolProperties

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Color returns the linear RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// SetColor sets the linear RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// Target returns the object directional and spot lights aim at.
	// Moving the target re-aims the light.
	//
	// Returns:
	//   - object.Object: the aim target, positioned at the origin by default
	Target() object.Object

	// Direction returns the normalized direction from the light toward its target.
	//
	// Returns:
	//   - mgl32.Vec3: the light direction, or (0, -1, 0) when degenerate
	Direction() mgl32.Vec3

	// Distance returns the cutoff distance for point and spot lights.
	// Zero means no cutoff.
	//
	// Returns:
	//   - float32: the cutoff distance
	Distance() float32

	// SetDistance sets the cutoff distance for point and spot lights.
	//
	// Parameters:
	//   - distance: the cutoff distance, 0 for none
	SetDistance(distance float32)

	// Decay returns the distance attenuation exponent.
	//
	// Returns:
	//   - float32: the decay exponent (2 is physically correct)
	Decay() float32

	// SetDecay sets the distance attenuation exponent.
	//
	// Parameters:
	//   - decay: the decay exponent
	SetDecay(decay float32)

	// Angle returns the spot cone half-angle in radians.
	//
	// Returns:
	//   - float32: the cone angle
	Angle() float32

	// SetAngle sets the spot cone half-angle in radians, clamped to [0, π/2].
	//
	// Parameters:
	//   - angle: the cone angle
	SetAngle(angle float32)

	// Penumbra returns the fraction of the spot cone that fades out, in [0, 1].
	//
	// Returns:
	//   - float32: the penumbra fraction
	Penumbra() float32

	// SetPenumbra sets the fraction of the spot cone that fades out.
	//
	// Parameters:
	//   - penumbra: fraction in [0, 1]
	SetPenumbra(penumbra float32)

	// CastShadow returns whether this light renders a shadow map when shadow
	// mapping is enabled on the renderer.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastShadow() bool

	// SetCastShadow sets whether the light casts shadows. Ignored for ambient lights.
	//
	// Parameters:
	//   - castShadow: true to enable shadow casting
	SetCastShadow(castShadow bool)

	// Shadow returns the shadow configuration, or nil for ambient lights.
	//
	// Returns:
	//   - *Shadow: the light's shadow settings and shadow camera
	Shadow() *Shadow

	// Reaches reports whether the light can contribute to a bounding sphere.
	//
	// Parameters:
	//   - center: sphere center in world space
	//   - radius: sphere radius
	//
	// Returns:
	//   - bool: false only when the sphere lies entirely beyond the cutoff distance
	Reaches(center mgl32.Vec3, radius float32) bool
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with defaults for that type
// and any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		Base:      object.NewBase(lightType.String() + "-light"),
		lightType: lightType,
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1,
		decay:     2,
		angle:     math32.Pi / 3,
		target:    object.New("target"),
	}
	switch lightType {
	case LightTypeDirectional:
		l.SetPosition(0, 1, 0)
		l.shadow = newShadow(ShadowCameraOrthographic)
	case LightTypeSpot:
		l.SetPosition(0, 1, 0)
		l.shadow = newShadow(ShadowCameraPerspective)
	case LightTypePoint:
		l.shadow = newShadow(ShadowCameraPerspective)
		l.shadow.Camera.Fov = 90
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.shadow != nil {
		l.shadow.Follow(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = mgl32.Vec3{r, g, b}
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) Target() object.Object {
	return l.target
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	d := l.target.Position().Sub(l.Position())
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

func (l *lightImpl) Distance() float32 {
	return l.distance
}

func (l *lightImpl) SetDistance(distance float32) {
	l.distance = math32.Max(0, distance)
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) SetDecay(decay float32) {
	l.decay = decay
}

func (l *lightImpl) Angle() float32 {
	return l.angle
}

func (l *lightImpl) SetAngle(angle float32) {
	l.angle = common.Clamp(angle, 0, math32.Pi/2)
}

func (l *lightImpl) Penumbra() float32 {
	return l.penumbra
}

func (l *lightImpl) SetPenumbra(penumbra float32) {
	l.penumbra = common.Saturate(penumbra)
}

func (l *lightImpl) CastShadow() bool {
	return l.castShadow
}

func (l *lightImpl) SetCastShadow(castShadow bool) {
	l.castShadow = castShadow && l.shadow != nil
}

func (l *lightImpl) Shadow() *Shadow {
	return l.shadow
}

func (l *lightImpl) Reaches(center mgl32.Vec3, radius float32) bool {
	switch l.lightType {
	case LightTypePoint, LightTypeSpot:
		if l.distance <= 0 {
			return true
		}
		return center.Sub(l.Position()).Len()-radius <= l.distance
	default:
		return true
	}
}

func (l *lightImpl) FloatProperty(path string) (common.FloatBinding, bool) {
	switch path {
	case "intensity":
		return common.FloatBinding{Get: l.Intensity, Set: l.SetIntensity}, true
	case "distance":
		return common.FloatBinding{Get: l.Distance, Set: l.SetDistance}, true
	case "decay":
		return common.FloatBinding{Get: l.Decay, Set: l.SetDecay}, true
	case "angle":
		return common.FloatBinding{Get: l.Angle, Set: l.SetAngle}, true
	case "penumbra":
		return common.FloatBinding{Get: l.Penumbra, Set: l.SetPenumbra}, true
	}
	return l.PositionProperty(path)
}

func (l *lightImpl) BoolProperty(path string) (common.BoolBinding, bool) {
	if path == "castShadow" {
		return common.BoolBinding{Get: l.CastShadow, Set: l.SetCastShadow}, true
	}
	return l.VisibleProperty(path)
}

package light

import "github.com/Carmen-Shannon/oxy-shadows/common"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithName sets the light's name.
//
// Parameters:
//   - name: the light name
//
// Returns:
//   - LightBuilderOption: a function that applies the name option to a lightImpl
func WithName(name string) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetName(name)
	}
}

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetPosition(x, y, z)
	}
}

// WithTarget sets the position of the object directional and spot lights aim at.
//
// Parameters:
//   - x, y, z: target position components
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target.SetPosition(x, y, z)
	}
}

// WithColorHex sets the light color from a 0xRRGGBB sRGB value.
//
// Parameters:
//   - hex: the color, e.g. 0xffffff
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColorHex(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.ColorFromHex(hex)
	}
}

// WithColor sets the linear RGB color of the light.
//
// Parameters:
//   - r, g, b: color components
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetColor(r, g, b)
	}
}

// WithIntensity sets the scalar intensity multiplier of the light.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithDistance sets the cutoff distance of point and spot lights. Zero disables the cutoff.
//
// Parameters:
//   - distance: the cutoff distance
//
// Returns:
//   - LightBuilderOption: a function that applies the distance option to a lightImpl
func WithDistance(distance float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetDistance(distance)
	}
}

// WithDecay sets the distance attenuation exponent.
//
// Parameters:
//   - decay: the decay exponent
//
// Returns:
//   - LightBuilderOption: a function that applies the decay option to a lightImpl
func WithDecay(decay float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.decay = decay
	}
}

// WithAngle sets the spot cone half-angle in radians.
//
// Parameters:
//   - angle: the cone angle in radians
//
// Returns:
//   - LightBuilderOption: a function that applies the angle option to a lightImpl
func WithAngle(angle float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetAngle(angle)
	}
}

// WithPenumbra sets the fraction of the spot cone that fades out.
//
// Parameters:
//   - penumbra: fraction in [0, 1]
//
// Returns:
//   - LightBuilderOption: a function that applies the penumbra option to a lightImpl
func WithPenumbra(penumbra float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetPenumbra(penumbra)
	}
}

// WithCastShadow sets whether the light casts shadows. Ignored for ambient lights.
//
// Parameters:
//   - castShadow: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow option to a lightImpl
func WithCastShadow(castShadow bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetCastShadow(castShadow)
	}
}

// WithShadowMapSize sets the shadow map resolution in texels.
//
// Parameters:
//   - width, height: map dimensions
//
// Returns:
//   - LightBuilderOption: a function that applies the map size option to a lightImpl
func WithShadowMapSize(width, height int) LightBuilderOption {
	return func(l *lightImpl) {
		if l.shadow != nil && width > 0 && height > 0 {
			l.shadow.MapWidth = width
			l.shadow.MapHeight = height
		}
	}
}

// WithShadowCameraPlanes sets the near and far planes of the shadow camera.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - LightBuilderOption: a function that applies the planes option to a lightImpl
func WithShadowCameraPlanes(near, far float32) LightBuilderOption {
	return func(l *lightImpl) {
		if l.shadow != nil {
			l.shadow.Camera.Near = near
			l.shadow.Camera.Far = far
		}
	}
}

// WithShadowCameraBounds sets the orthographic bounds of a directional shadow camera.
//
// Parameters:
//   - top, right, bottom, left: frustum bounds in world units
//
// Returns:
//   - LightBuilderOption: a function that applies the bounds option to a lightImpl
func WithShadowCameraBounds(top, right, bottom, left float32) LightBuilderOption {
	return func(l *lightImpl) {
		if l.shadow != nil {
			l.shadow.Camera.Top = top
			l.shadow.Camera.Right = right
			l.shadow.Camera.Bottom = bottom
			l.shadow.Camera.Left = left
		}
	}
}

// WithShadowCameraFov sets the vertical field of view, in degrees, of a perspective
// shadow camera.
//
// Parameters:
//   - fov: field of view in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the fov option to a lightImpl
func WithShadowCameraFov(fov float32) LightBuilderOption {
	return func(l *lightImpl) {
		if l.shadow != nil {
			l.shadow.Camera.Fov = fov
		}
	}
}

// WithShadowBias sets the depth bias and normal bias used in shadow comparisons.
//
// Parameters:
//   - bias: constant depth bias in normalized depth
//   - normalBias: receiver offset along its normal in world units
//
// Returns:
//   - LightBuilderOption: a function that applies the bias option to a lightImpl
func WithShadowBias(bias, normalBias float32) LightBuilderOption {
	return func(l *lightImpl) {
		if l.shadow != nil {
			l.shadow.Bias = bias
			l.shadow.NormalBias = normalBias
		}
	}
}

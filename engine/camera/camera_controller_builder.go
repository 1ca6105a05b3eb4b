package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(cc *cameraControllerImpl)

// WithRadius sets the initial distance from the target.
//
// Parameters:
//   - radius: the orbit radius
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle in radians.
//
// Parameters:
//   - azimuth: the azimuth angle
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial angle above the horizontal plane in radians.
//
// Parameters:
//   - elevation: the elevation angle
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithElevation(elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.elevation = elevation
	}
}

// WithTarget sets the orbit target. Apply before WithPosition so the position is
// measured from the right point.
//
// Parameters:
//   - x, y, z: target components
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = mgl32.Vec3{x, y, z}
	}
}

// WithPosition sets the initial camera position, deriving radius, azimuth and
// elevation from its offset to the target.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.setFromPosition(mgl32.Vec3{x, y, z})
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum radius
//   - max: maximum radius
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation in radians.
//
// Parameters:
//   - min: minimum elevation
//   - max: maximum elevation
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithDamping enables inertia with the given factor, the fraction of pending input
// applied per Update.
//
// Parameters:
//   - factor: damping factor in (0, 1]
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithDamping(factor float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.enableDamping = true
		if factor > 0 && factor <= 1 {
			cc.dampingFactor = factor
		}
	}
}

// WithRotateSpeed scales pointer rotation.
//
// Parameters:
//   - speed: rotation multiplier
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the exponent applied to the 0.95 dolly step.
//
// Parameters:
//   - speed: zoom multiplier
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed scales pointer panning.
//
// Parameters:
//   - speed: pan multiplier
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithViewport sets the initial input surface size in pixels.
//
// Parameters:
//   - width, height: viewport size
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithViewport(width, height int) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if width > 0 && height > 0 {
			cc.viewportWidth = width
			cc.viewportHeight = height
		}
	}
}

package camera

import (
	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraController defines orbit controls: the camera circles a target point at a
// radius, rotated by azimuth (around +Y) and elevation (above the horizontal plane).
//
// Pointer input does not move the camera directly. It accumulates rotate, dolly and
// pan deltas that Update applies once per frame. With damping enabled, each Update
// applies a fraction (the damping factor) of the pending delta and decays the rest,
// so the camera eases toward the requested orientation over several frames.
type CameraController interface {
	// Position returns the current camera position.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera, recomputing radius, azimuth and elevation
	// relative to the current target. Pending deltas are discarded.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// Target returns the orbit target.
	//
	// Returns:
	//   - mgl32.Vec3: the target position
	Target() mgl32.Vec3

	// SetTarget moves the orbit target, keeping the camera's offset from it.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// Radius returns the distance from the target.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// SetRadius sets the distance from the target, clamped to the radius bounds.
	//
	// Parameters:
	//   - radius: the new radius
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around +Y in radians, 0 along +Z.
	//
	// Returns:
	//   - float32: the azimuth
	Azimuth() float32

	// SetAzimuth sets the horizontal angle in radians.
	//
	// Parameters:
	//   - azimuth: the new azimuth
	SetAzimuth(azimuth float32)

	// Elevation returns the angle above the horizontal plane in radians.
	//
	// Returns:
	//   - float32: the elevation
	Elevation() float32

	// SetElevation sets the angle above the horizontal plane, clamped to the
	// elevation bounds.
	//
	// Parameters:
	//   - elevation: the new elevation
	SetElevation(elevation float32)

	// DampingEnabled reports whether inertia is applied to pending deltas.
	//
	// Returns:
	//   - bool: true if damping is enabled
	DampingEnabled() bool

	// DampingFactor returns the fraction of pending deltas applied per Update.
	//
	// Returns:
	//   - float32: the damping factor
	DampingFactor() float32

	// SetDamping enables or disables damping and sets its factor.
	//
	// Parameters:
	//   - enabled: true to enable damping
	//   - factor: fraction in (0, 1] applied per Update
	SetDamping(enabled bool, factor float32)

	// RotateLeft queues a rotation around the target, in radians.
	//
	// Parameters:
	//   - angle: positive moves the camera to its left around the target
	RotateLeft(angle float32)

	// RotateUp queues a change in elevation, in radians.
	//
	// Parameters:
	//   - angle: positive raises the camera
	RotateUp(angle float32)

	// Dolly queues a radius scale. Values below 1 move the camera closer.
	//
	// Parameters:
	//   - scale: the multiplicative radius change
	Dolly(scale float32)

	// Zoom queues a dolly step from a scroll delta.
	//
	// Parameters:
	//   - delta: scroll delta (positive = up/zoom in, negative = down/zoom out)
	Zoom(delta float32)

	// Pan queues a screen-space pan of the target by a pointer delta in pixels.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels (y grows downward)
	Pan(dx, dy float32)

	// PointerDown starts a drag: left rotates, middle dollies, right pans.
	//
	// Parameters:
	//   - button: the pressed button
	//   - x, y: pointer position in pixels
	PointerDown(button common.MouseButton, x, y float32)

	// PointerMove continues the active drag, if any.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PointerMove(x, y float32)

	// PointerUp ends the drag started by button.
	//
	// Parameters:
	//   - button: the released button
	PointerUp(button common.MouseButton)

	// SetViewport sets the size of the input surface in pixels. Rotation and pan
	// speeds are normalized by its height.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height int)

	// SetFov sets the camera field of view (radians) used to scale pans.
	//
	// Parameters:
	//   - fov: vertical field of view in radians
	SetFov(fov float32)

	// Update applies pending deltas. Must be called once per frame.
	//
	// Returns:
	//   - bool: true if the camera position changed
	Update() bool
}

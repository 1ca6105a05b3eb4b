package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// polarEpsilon keeps the camera off the poles where the look-at basis degenerates.
const polarEpsilon float32 = 1e-6

// changeEpsilon is the squared movement below which Update reports no change.
const changeEpsilon float32 = 1e-12

// dragMode is the pointer drag in progress.
type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragDolly
	dragPan
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position mgl32.Vec3
	target   mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	// Pending input, applied by Update
	deltaAzimuth   float32
	deltaElevation float32
	scale          float32
	panOffset      mgl32.Vec3

	enableDamping bool
	dampingFactor float32

	rotateSpeed float32
	zoomSpeed   float32
	panSpeed    float32

	fov            float32
	viewportWidth  int
	viewportHeight int

	drag         dragMode
	dragButton   common.MouseButton
	lastX, lastY float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates orbit controls. Defaults: target at the origin,
// radius 1 on +Z, no radius limit, elevation limited just short of the poles,
// damping disabled with factor 0.05.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:     &sync.Mutex{},
		radius: 1,

		minRadius:    0,
		maxRadius:    math32.Inf(1),
		minElevation: -(math32.Pi/2 - polarEpsilon),
		maxElevation: math32.Pi/2 - polarEpsilon,

		scale:         1,
		dampingFactor: 0.05,
		rotateSpeed:   1,
		zoomSpeed:     1,
		panSpeed:      1,

		fov:            mgl32.DegToRad(50),
		viewportWidth:  1,
		viewportHeight: 1,
	}

	for _, option := range options {
		option(cc)
	}

	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
	return cc
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cc.position = cc.target.Add(common.FromSpherical(cc.radius, math32.Pi/2-cc.elevation, cc.azimuth))
}

// setFromPosition derives spherical coordinates from an absolute camera position.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) setFromPosition(pos mgl32.Vec3) {
	radius, phi, theta := common.Spherical(pos.Sub(cc.target))
	cc.radius = common.Clamp(math32.Max(radius, polarEpsilon), cc.minRadius, cc.maxRadius)
	cc.azimuth = theta
	cc.elevation = common.Clamp(math32.Pi/2-phi, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

// localAxes computes the camera's right and up axes consistent with the LookAt
// matrix. Both are zero when position and target coincide.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up mgl32.Vec3) {
	back := cc.position.Sub(cc.target)
	if back.Len() < 1e-8 {
		return
	}
	back = back.Normalize()
	right = mgl32.Vec3{0, 1, 0}.Cross(back)
	if right.Len() < 1e-8 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up = back.Cross(right)
	return right, up
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.resetDeltas()
	cc.setFromPosition(mgl32.Vec3{x, y, z})
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = mgl32.Vec3{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) DampingEnabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.enableDamping
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dampingFactor
}

func (cc *cameraControllerImpl) SetDamping(enabled bool, factor float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.enableDamping = enabled
	if factor > 0 && factor <= 1 {
		cc.dampingFactor = factor
	}
}

func (cc *cameraControllerImpl) RotateLeft(angle float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.deltaAzimuth -= angle
}

func (cc *cameraControllerImpl) RotateUp(angle float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.deltaElevation += angle
}

func (cc *cameraControllerImpl) Dolly(scale float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if scale > 0 {
		cc.scale *= scale
	}
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	step := math32.Pow(0.95, cc.zoomSpeed)
	switch {
	case delta > 0:
		cc.scale *= step
	case delta < 0:
		cc.scale /= step
	}
}

func (cc *cameraControllerImpl) Pan(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pan(dx, dy)
}

// pan converts a pixel delta into a world-space target offset so that the point
// under the pointer follows it at the target's depth. Caller must hold the mutex.
func (cc *cameraControllerImpl) pan(dx, dy float32) {
	right, up := cc.localAxes()
	targetDistance := cc.position.Sub(cc.target).Len() * math32.Tan(cc.fov/2)
	h := float32(common.PositiveOr(cc.viewportHeight, 1))
	cc.panOffset = cc.panOffset.
		Sub(right.Mul(2 * dx * targetDistance / h * cc.panSpeed)).
		Add(up.Mul(2 * dy * targetDistance / h * cc.panSpeed))
}

func (cc *cameraControllerImpl) PointerDown(button common.MouseButton, x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.drag != dragNone {
		return
	}
	switch button {
	case common.MouseButtonLeft:
		cc.drag = dragRotate
	case common.MouseButtonMiddle:
		cc.drag = dragDolly
	case common.MouseButtonRight:
		cc.drag = dragPan
	default:
		return
	}
	cc.dragButton = button
	cc.lastX, cc.lastY = x, y
}

func (cc *cameraControllerImpl) PointerMove(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	dx, dy := x-cc.lastX, y-cc.lastY
	cc.lastX, cc.lastY = x, y
	h := float32(common.PositiveOr(cc.viewportHeight, 1))

	switch cc.drag {
	case dragRotate:
		cc.deltaAzimuth -= 2 * math32.Pi * dx / h * cc.rotateSpeed
		cc.deltaElevation += 2 * math32.Pi * dy / h * cc.rotateSpeed
	case dragDolly:
		step := math32.Pow(0.95, cc.zoomSpeed)
		if dy > 0 {
			cc.scale /= step
		} else if dy < 0 {
			cc.scale *= step
		}
	case dragPan:
		cc.pan(dx, dy)
	}
}

func (cc *cameraControllerImpl) PointerUp(button common.MouseButton) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.drag != dragNone && button == cc.dragButton {
		cc.drag = dragNone
	}
}

func (cc *cameraControllerImpl) SetViewport(width, height int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if width > 0 && height > 0 {
		cc.viewportWidth = width
		cc.viewportHeight = height
	}
}

func (cc *cameraControllerImpl) SetFov(fov float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.fov = fov
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	before := cc.position
	factor := float32(1)
	if cc.enableDamping {
		factor = cc.dampingFactor
	}

	cc.azimuth += cc.deltaAzimuth * factor
	cc.elevation = common.Clamp(cc.elevation+cc.deltaElevation*factor, cc.minElevation, cc.maxElevation)
	cc.radius = common.Clamp(math32.Max(cc.radius*cc.scale, polarEpsilon), cc.minRadius, cc.maxRadius)
	cc.target = cc.target.Add(cc.panOffset.Mul(factor))
	cc.updatePosition()

	if cc.enableDamping {
		cc.deltaAzimuth *= 1 - factor
		cc.deltaElevation *= 1 - factor
		cc.panOffset = cc.panOffset.Mul(1 - factor)
	} else {
		cc.deltaAzimuth, cc.deltaElevation = 0, 0
		cc.panOffset = mgl32.Vec3{}
	}
	cc.scale = 1

	d := cc.position.Sub(before)
	return d.Dot(d) > changeEpsilon
}

// resetDeltas discards pending input. Caller must hold the mutex.
func (cc *cameraControllerImpl) resetDeltas() {
	cc.deltaAzimuth, cc.deltaElevation = 0, 0
	cc.panOffset = mgl32.Vec3{}
	cc.scale = 1
}

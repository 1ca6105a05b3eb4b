package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamera() (Camera, CameraController) {
	ctrl := NewCameraController(
		WithTarget(0, 0, 0),
		WithPosition(1, 1, 2),
		WithDamping(0.05),
		WithViewport(800, 600),
	)
	cam := NewCamera(
		WithFovDegrees(75),
		WithAspect(800.0/600.0),
		WithNear(0.1),
		WithFar(100),
		WithController(ctrl),
	)
	return cam, ctrl
}

func TestCameraFollowsController(t *testing.T) {
	cam, _ := newTestCamera()
	assert.True(t, cam.Position().ApproxEqualThreshold(mgl32.Vec3{1, 1, 2}, 1e-5), "got %v", cam.Position())
	assert.Equal(t, mgl32.Vec3{}, cam.Target())

	// The target projects to the center of the screen.
	clip := cam.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip[0]/clip[3], 1e-5)
	assert.InDelta(t, 0, clip[1]/clip[3], 1e-5)
}

func TestCameraSetAspect(t *testing.T) {
	cam, _ := newTestCamera()
	cam.SetAspect(1920.0 / 1080.0)
	assert.Equal(t, float32(1920.0/1080.0), cam.Aspect())

	expected := mgl32.Perspective(mgl32.DegToRad(75), 1920.0/1080.0, 0.1, 100)
	assert.True(t, cam.ProjectionMatrix().ApproxEqual(expected))
	ident, product := mgl32.Ident4(), cam.ProjectionMatrix().Mul4(cam.InverseProjectionMatrix())
	assert.InDeltaSlice(t, ident[:], product[:], 1e-4)

	cam.SetAspect(0)
	assert.Equal(t, float32(1920.0/1080.0), cam.Aspect(), "degenerate aspect is ignored")
}

func TestCameraWithoutController(t *testing.T) {
	cam := NewCamera(WithEye(0, 0, 5))
	cam.LookAt(0, 0, 0)
	clip := cam.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip[0]/clip[3], 1e-5)
	assert.Nil(t, cam.Controller())
}

func TestControllerUpdateWithoutInputIsStable(t *testing.T) {
	_, ctrl := newTestCamera()
	before := ctrl.Position()
	for i := 0; i < 100; i++ {
		assert.False(t, ctrl.Update())
	}
	assert.Equal(t, before, ctrl.Position())
	assert.Equal(t, mgl32.Vec3{}, ctrl.Target())
}

func TestControllerDampedRotationConverges(t *testing.T) {
	_, ctrl := newTestCamera()
	start := ctrl.Azimuth()

	ctrl.RotateLeft(0.5)
	assert.True(t, ctrl.Update())
	// The first damped step applies exactly one damping factor of the delta.
	assert.InDelta(t, start-0.5*0.05, ctrl.Azimuth(), 1e-5)

	for i := 0; i < 1000; i++ {
		ctrl.Update()
	}
	assert.InDelta(t, start-0.5, ctrl.Azimuth(), 1e-4)

	settled := ctrl.Position()
	ctrl.Update()
	assert.True(t, settled.ApproxEqualThreshold(ctrl.Position(), 1e-6))
}

func TestControllerWithoutDampingAppliesImmediately(t *testing.T) {
	ctrl := NewCameraController(WithPosition(0, 0, 2))
	ctrl.RotateUp(0.25)
	ctrl.Update()
	assert.InDelta(t, 0.25, ctrl.Elevation(), 1e-6)
	assert.InDelta(t, 2, ctrl.Radius(), 1e-6)
}

func TestControllerElevationClamped(t *testing.T) {
	ctrl := NewCameraController(WithPosition(0, 0, 2))
	ctrl.RotateUp(10)
	ctrl.Update()
	assert.Less(t, ctrl.Elevation(), math32.Pi/2)
	assert.Greater(t, ctrl.Position()[1], float32(1.99))
}

func TestControllerZoomAndBounds(t *testing.T) {
	ctrl := NewCameraController(WithPosition(0, 0, 2), WithRadiusBounds(1, 3))
	ctrl.Zoom(1)
	ctrl.Update()
	assert.InDelta(t, 2*0.95, ctrl.Radius(), 1e-5)

	for i := 0; i < 100; i++ {
		ctrl.Zoom(-1)
		ctrl.Update()
	}
	assert.Equal(t, float32(3), ctrl.Radius())
}

func TestControllerPointerRotate(t *testing.T) {
	ctrl := NewCameraController(WithPosition(0, 0, 2), WithViewport(100, 100))
	ctrl.PointerDown(0, 10, 10)
	ctrl.PointerMove(35, 10)
	ctrl.PointerUp(0)
	ctrl.PointerMove(90, 90) // released, ignored
	ctrl.Update()
	// A quarter-height drag rotates a quarter turn.
	assert.InDelta(t, -math32.Pi/2, ctrl.Azimuth(), 1e-5)
}

func TestControllerPointerPanMovesTarget(t *testing.T) {
	ctrl := NewCameraController(WithPosition(0, 0, 2), WithViewport(100, 100))
	ctrl.SetFov(mgl32.DegToRad(90))
	ctrl.PointerDown(1, 50, 50)
	ctrl.PointerMove(60, 50)
	ctrl.Update()

	target := ctrl.Target()
	// Dragging right slides the target toward -X at the target depth.
	assert.InDelta(t, -0.4, target[0], 1e-5)
	assert.InDelta(t, 0, target[1], 1e-6)
	require.InDelta(t, 2, ctrl.Radius(), 1e-5)
}

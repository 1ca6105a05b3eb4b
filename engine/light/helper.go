package light

import (
	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/object"
	"github.com/go-gl/mathgl/mgl32"
)

// Helper line colors.
var (
	HelperFrustumColor = common.ColorFromHex(0xffaa00)
	HelperConeColor    = common.ColorFromHex(0xff0000)
	HelperTargetColor  = common.ColorFromHex(0xffffff)
)

// Line is a world-space segment drawn by a debug helper.
type Line struct {
	From, To mgl32.Vec3
	Color    mgl32.Vec3
}

// CameraHelper visualizes a light's shadow camera frustum as lines.
// Helpers start hidden and never affect lit output.
type CameraHelper interface {
	object.Object
	common.BoolProperties

	// Light returns the light whose shadow camera is visualized.
	//
	// Returns:
	//   - Light: the owning light
	Light() Light

	// Lines returns the helper geometry for the shadow camera's current state.
	//
	// Returns:
	//   - []Line: frustum edges, cone lines and the target line
	Lines() []Line
}

type cameraHelperImpl struct {
	object.Base
	light Light
}

var _ CameraHelper = &cameraHelperImpl{}

// NewCameraHelper creates a hidden helper for a shadow-capable light.
// Returns nil for lights without a shadow camera.
//
// Parameters:
//   - l: the light to visualize
//
// Returns:
//   - CameraHelper: the helper, or nil
func NewCameraHelper(l Light) CameraHelper {
	if l == nil || l.Shadow() == nil {
		return nil
	}
	h := &cameraHelperImpl{
		Base:  object.NewBase(l.Name() + "-camera-helper"),
		light: l,
	}
	h.SetVisible(false)
	return h
}

func (h *cameraHelperImpl) Light() Light {
	return h.light
}

func (h *cameraHelperImpl) Lines() []Line {
	cam := &h.light.Shadow().Camera
	c := cam.Corners()
	p := cam.Position()

	lines := make([]Line, 0, 17)
	edge := func(a, b int) {
		lines = append(lines, Line{From: c[a], To: c[b], Color: HelperFrustumColor})
	}
	for i := 0; i < 4; i++ {
		edge(i, (i+1)%4)
		edge(4+i, 4+(i+1)%4)
		edge(i, 4+i)
	}
	for i := 0; i < 4; i++ {
		lines = append(lines, Line{From: p, To: c[i], Color: HelperConeColor})
	}
	farCenter := c[4].Add(c[5]).Add(c[6]).Add(c[7]).Mul(0.25)
	lines = append(lines, Line{From: p, To: farCenter, Color: HelperTargetColor})
	return lines
}

func (h *cameraHelperImpl) BoolProperty(path string) (common.BoolBinding, bool) {
	return h.VisibleProperty(path)
}

package light

import (
	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultShadowMapSize is the default width and height in texels of a light's
// shadow depth map.
const DefaultShadowMapSize = 512

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// of a directional light's shadow frustum.
const DefaultShadowHalfExtent float32 = 5.0

// DefaultShadowNear is the default near plane of a shadow camera.
const DefaultShadowNear float32 = 0.5

// DefaultShadowFar is the default far plane of a shadow camera.
const DefaultShadowFar float32 = 500.0

// DefaultShadowFov is the default vertical field of view, in degrees, of a
// perspective shadow camera.
const DefaultShadowFov float32 = 50.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts. Expressed in normalized [0, 1] depth.
const DefaultShadowBias float32 = 0.001

// CubeFaceCount is the number of shadow map faces a point light renders.
const CubeFaceCount = 6

// cubeDirections and cubeUps orient the six point light shadow faces
// (+X, -X, +Z, -Z, +Y, -Y).
var (
	cubeDirections = [CubeFaceCount]mgl32.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 0, 1}, {0, 0, -1}, {0, 1, 0}, {0, -1, 0}}
	cubeUps        = [CubeFaceCount]mgl32.Vec3{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 0, 1}, {0, 0, -1}}
)

// ShadowCameraType selects the projection of a shadow camera.
type ShadowCameraType int

const (
	// ShadowCameraOrthographic is used by directional lights.
	ShadowCameraOrthographic ShadowCameraType = iota

	// ShadowCameraPerspective is used by spot and point lights.
	ShadowCameraPerspective
)

// ShadowCamera is the projection a light renders its shadow map through.
// Orthographic cameras use Left/Right/Top/Bottom; perspective cameras use
// Fov (degrees) and Aspect. Both use Near and Far.
type ShadowCamera struct {
	Type                     ShadowCameraType
	Left, Right, Top, Bottom float32
	Fov, Aspect              float32
	Near, Far                float32

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3
}

// Position returns the world-space position of the camera.
func (c *ShadowCamera) Position() mgl32.Vec3 {
	return c.position
}

// View returns the world-to-camera matrix.
func (c *ShadowCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.target, c.up)
}

// Projection returns the camera projection matrix built from the current fields.
func (c *ShadowCamera) Projection() mgl32.Mat4 {
	if c.Type == ShadowCameraOrthographic {
		return mgl32.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), common.PositiveOr(c.Aspect, 1), c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *ShadowCamera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Corners returns the eight world-space corners of the camera frustum.
func (c *ShadowCamera) Corners() [8]mgl32.Vec3 {
	return common.Corners(c.ViewProjection().Inv())
}

func (c *ShadowCamera) lookAt(position, target, up mgl32.Vec3) {
	c.position = position
	c.target = target
	c.up = up
	// LookAt degenerates when the view direction is parallel to up.
	dir := target.Sub(position)
	if dir.Len() > 0 && math32.Abs(dir.Normalize().Dot(up)) > 0.999 {
		c.up = mgl32.Vec3{0, 0, 1}
	}
}

// Shadow holds the shadow map settings of a shadow-capable light.
type Shadow struct {
	// MapWidth and MapHeight are the shadow map resolution in texels.
	MapWidth, MapHeight int

	// Bias is subtracted from the receiver depth before comparison.
	Bias float32

	// NormalBias offsets the receiver position along its normal, in world units.
	NormalBias float32

	// Radius widens the PCF kernel, in texels.
	Radius float32

	// Focus scales the spot cone when deriving the spot shadow field of view.
	Focus float32

	Camera ShadowCamera
}

func newShadow(cameraType ShadowCameraType) *Shadow {
	s := &Shadow{
		MapWidth:  DefaultShadowMapSize,
		MapHeight: DefaultShadowMapSize,
		Bias:      DefaultShadowBias,
		Radius:    1,
		Focus:     1,
		Camera: ShadowCamera{
			Type:   cameraType,
			Left:   -DefaultShadowHalfExtent,
			Right:  DefaultShadowHalfExtent,
			Top:    DefaultShadowHalfExtent,
			Bottom: -DefaultShadowHalfExtent,
			Fov:    DefaultShadowFov,
			Aspect: 1,
			Near:   DefaultShadowNear,
			Far:    DefaultShadowFar,
			up:     mgl32.Vec3{0, 1, 0},
		},
	}
	return s
}

// Follow places the shadow camera at the light. Directional and spot cameras look
// at the light's target; point cameras look down their first cube face (+X).
//
// Parameters:
//   - l: the owning light
func (s *Shadow) Follow(l Light) {
	pos := l.Position()
	if l.Type() == LightTypePoint {
		s.Camera.lookAt(pos, pos.Add(cubeDirections[0]), cubeUps[0])
		return
	}
	s.Camera.lookAt(pos, l.Target().Position(), mgl32.Vec3{0, 1, 0})
}

// UpdateMatrices prepares the shadow camera for a shadow map pass. In addition to
// Follow, a spot camera derives its field of view from the cone angle
// (2 * angle * focus) and its far plane from the light's cutoff distance.
//
// Parameters:
//   - l: the owning light
func (s *Shadow) UpdateMatrices(l Light) {
	if l.Type() == LightTypeSpot {
		s.Camera.Fov = mgl32.RadToDeg(2 * l.Angle() * s.Focus)
		s.Camera.Aspect = float32(s.MapWidth) / float32(common.PositiveOr(s.MapHeight, 1))
		if d := l.Distance(); d > 0 {
			s.Camera.Far = d
		}
	}
	if l.Type() == LightTypePoint {
		s.Camera.Fov = 90
		s.Camera.Aspect = 1
	}
	s.Follow(l)
}

// FaceViewProjection returns the view-projection matrix of one point light cube
// face. Other light types ignore face and return the camera's view-projection.
//
// Parameters:
//   - l: the owning light
//   - face: cube face index in [0, CubeFaceCount)
//
// Returns:
//   - mgl32.Mat4: the face view-projection matrix
func (s *Shadow) FaceViewProjection(l Light, face int) mgl32.Mat4 {
	if l.Type() != LightTypePoint {
		return s.Camera.ViewProjection()
	}
	pos := l.Position()
	view := mgl32.LookAtV(pos, pos.Add(cubeDirections[face]), cubeUps[face])
	return s.Camera.Projection().Mul4(view)
}

// CubeFace returns the point light cube face a light-to-receiver direction falls on.
func CubeFace(dir mgl32.Vec3) int {
	ax, ay, az := math32.Abs(dir[0]), math32.Abs(dir[1]), math32.Abs(dir[2])
	switch {
	case ax >= ay && ax >= az:
		if dir[0] >= 0 {
			return 0
		}
		return 1
	case az >= ay:
		if dir[2] >= 0 {
			return 2
		}
		return 3
	default:
		if dir[1] >= 0 {
			return 4
		}
		return 5
	}
}

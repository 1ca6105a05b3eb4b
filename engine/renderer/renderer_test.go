package renderer

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadows/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadows/engine/light"
	"github.com/Carmen-Shannon/oxy-shadows/engine/mesh"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-shadows/engine/scene"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, options ...RendererBuilderOption) Renderer {
	t.Helper()
	options = append([]RendererBuilderOption{WithSize(64, 48), WithWorkers(2)}, options...)
	r := NewRenderer(BackendTypeSoftware, nil, options...)
	t.Cleanup(r.Close)
	return r
}

func newTestCamera(x, y, z float32) camera.Camera {
	return camera.NewCamera(
		camera.WithFovDegrees(75),
		camera.WithAspect(64.0/48.0),
		camera.WithNear(0.1),
		camera.WithFar(100),
		camera.WithEye(x, y, z),
	)
}

func pixel(img *image.RGBA, x, y int) [4]uint8 {
	off := img.PixOffset(x, y)
	return [4]uint8{img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3]}
}

func snapshot(img *image.RGBA) []uint8 {
	return append([]uint8(nil), img.Pix...)
}

func redSum(pix []uint8) int {
	sum := 0
	for i := 0; i < len(pix); i += 4 {
		sum += int(pix[i])
	}
	return sum
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer(BackendTypeSoftware, nil)
	defer r.Close()

	w, h := r.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, float32(1), r.PixelRatio())
	assert.False(t, r.ShadowMap().Enabled)
	assert.Equal(t, ShadowMapPCF, r.ShadowMap().Type)
	assert.Equal(t, BackendTypeSoftware, r.BackendType())
	assert.Nil(t, r.Frame())
}

func TestWGPUBackendRequiresWindow(t *testing.T) {
	assert.Panics(t, func() { NewRenderer(BackendTypeWGPU, nil) })
}

func TestDrawingBufferSize(t *testing.T) {
	r := newTestRenderer(t)
	r.SetPixelRatio(2)
	w, h := r.DrawingBufferSize()
	assert.Equal(t, 128, w)
	assert.Equal(t, 96, h)

	r.SetPixelRatio(0)
	r.SetPixelRatio(-1)
	assert.Equal(t, float32(2), r.PixelRatio())

	r.SetSize(0, 10)
	lw, lh := r.Size()
	assert.Equal(t, 64, lw)
	assert.Equal(t, 48, lh)

	require.NoError(t, r.Render(scene.NewScene(), newTestCamera(0, 0, 2)))
	assert.Equal(t, image.Rect(0, 0, 128, 96), r.Frame().Rect)
}

func TestRenderRequiresSceneAndCamera(t *testing.T) {
	r := newTestRenderer(t)
	assert.Error(t, r.Render(nil, newTestCamera(0, 0, 2)))
	assert.Error(t, r.Render(scene.NewScene(), nil))

	r.Close()
	assert.Error(t, r.Render(scene.NewScene(), newTestCamera(0, 0, 2)))
}

func TestEmptySceneUsesClearColor(t *testing.T) {
	r := newTestRenderer(t, WithClearColor(0x808080))
	require.NoError(t, r.Render(scene.NewScene(), newTestCamera(0, 0, 2)))

	c := common.ColorFromHex(0x808080)
	want := [4]uint8{common.EncodeSRGB8(c[0]), common.EncodeSRGB8(c[1]), common.EncodeSRGB8(c[2]), 255}
	frame := r.Frame()
	assert.Equal(t, want, pixel(frame, 0, 0))
	assert.Equal(t, want, pixel(frame, 32, 24))
	assert.Equal(t, want, pixel(frame, 63, 47))
}

func TestBasicMaterialIsUnlit(t *testing.T) {
	quad := mesh.NewMesh(geometry.Plane(2, 2), material.NewBasicMaterial(material.WithColorHex(0xff0000)))
	sun := light.NewLight(light.LightTypeDirectional, light.WithIntensity(5))
	s := scene.NewScene(scene.WithObjects(quad, sun))

	r := newTestRenderer(t)
	require.NoError(t, r.Render(s, newTestCamera(0, 0, 2)))
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, pixel(r.Frame(), 32, 24))
}

func TestSideCulling(t *testing.T) {
	mat := material.NewBasicMaterial(material.WithColorHex(0x00ff00))
	quad := mesh.NewMesh(geometry.Plane(2, 2), mat)
	s := scene.NewScene(scene.WithObjects(quad))
	r := newTestRenderer(t)

	// Looking at the back of a front-sided plane.
	behind := newTestCamera(0, 0, -2)
	require.NoError(t, r.Render(s, behind))
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, pixel(r.Frame(), 32, 24))

	mat.SetSide(material.SideDouble)
	require.NoError(t, r.Render(s, behind))
	assert.Equal(t, [4]uint8{0, 255, 0, 255}, pixel(r.Frame(), 32, 24))

	mat.SetSide(material.SideBack)
	require.NoError(t, r.Render(s, newTestCamera(0, 0, 2)))
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, pixel(r.Frame(), 32, 24))
}

func TestHiddenMeshIsNotDrawn(t *testing.T) {
	quad := mesh.NewMesh(geometry.Plane(2, 2), material.NewBasicMaterial(), mesh.WithVisible(false))
	r := newTestRenderer(t)
	require.NoError(t, r.Render(scene.NewScene(scene.WithObjects(quad)), newTestCamera(0, 0, 2)))
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, pixel(r.Frame(), 32, 24))
}

func TestAmbientOnlyShading(t *testing.T) {
	ball := mesh.NewMesh(geometry.Sphere(0.5, 32, 32), material.NewStandardMaterial())
	amb := light.NewLight(light.LightTypeAmbient, light.WithIntensity(1))
	s := scene.NewScene(scene.WithObjects(ball, amb))

	r := newTestRenderer(t)
	require.NoError(t, r.Render(s, newTestCamera(0, 0, 2)))

	want := common.EncodeSRGB8(1 / math32.Pi)
	got := pixel(r.Frame(), 32, 24)
	assert.InDelta(t, want, got[0], 1)
	assert.InDelta(t, want, got[1], 1)
	assert.InDelta(t, want, got[2], 1)
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, pixel(r.Frame(), 0, 0))
}

func TestDirectionalLightBrightensFacingSide(t *testing.T) {
	ball := mesh.NewMesh(geometry.Sphere(0.5, 32, 32), material.NewStandardMaterial(material.WithRoughness(0.7)))
	amb := light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.2))
	sun := light.NewLight(light.LightTypeDirectional, light.WithPosition(0, 0, 5))
	s := scene.NewScene(scene.WithObjects(ball, amb))

	r := newTestRenderer(t)
	cam := newTestCamera(0, 0, 2)
	require.NoError(t, r.Render(s, cam))
	dim := pixel(r.Frame(), 32, 24)

	s.Add(sun)
	require.NoError(t, r.Render(s, cam))
	lit := pixel(r.Frame(), 32, 24)
	assert.Greater(t, lit[0], dim[0])

	// Light from behind leaves the visible hemisphere at ambient.
	sun.SetPosition(0, 0, -5)
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, dim, pixel(r.Frame(), 32, 24))
}

func TestHelperLinesFollowVisibility(t *testing.T) {
	ball := mesh.NewMesh(geometry.Sphere(0.5, 16, 16), material.NewStandardMaterial())
	amb := light.NewLight(light.LightTypeAmbient)
	sun := light.NewLight(light.LightTypeDirectional,
		light.WithPosition(2, 2, -1),
		light.WithCastShadow(true),
		light.WithShadowCameraBounds(1, 1, -1, -1),
		light.WithShadowCameraPlanes(1, 6),
	)
	helper := light.NewCameraHelper(sun)
	require.NotNil(t, helper)
	s := scene.NewScene(scene.WithObjects(ball, amb, sun, helper))

	r := newTestRenderer(t)
	cam := newTestCamera(1, 1, 2)
	require.NoError(t, r.Render(s, cam))
	hidden := snapshot(r.Frame())

	helper.SetVisible(true)
	require.NoError(t, r.Render(s, cam))
	shown := snapshot(r.Frame())
	assert.NotEqual(t, hidden, shown)

	helper.SetVisible(false)
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, hidden, snapshot(r.Frame()))
}

type fillOverlay struct {
	calls int
	ratio float32
}

func (o *fillOverlay) Draw(dst *image.RGBA, pixelRatio float32) {
	o.calls++
	o.ratio = pixelRatio
	copy(dst.Pix[0:4], []uint8{1, 2, 3, 255})
}

func TestOverlayDrawnLast(t *testing.T) {
	o := &fillOverlay{}
	r := newTestRenderer(t, WithPixelRatio(1.5))
	r.AddOverlay(o)
	r.AddOverlay(nil)
	require.NoError(t, r.Render(scene.NewScene(), newTestCamera(0, 0, 2)))
	assert.Equal(t, 1, o.calls)
	assert.Equal(t, float32(1.5), o.ratio)
	assert.Equal(t, [4]uint8{1, 2, 3, 255}, pixel(r.Frame(), 0, 0))
}

func shadowScene() (scene.Scene, light.Light) {
	ground := mesh.NewMesh(geometry.Plane(4, 4), material.NewStandardMaterial(),
		mesh.WithRotation(-math32.Pi/2, 0, 0),
		mesh.WithReceiveShadow(true),
	)
	ball := mesh.NewMesh(geometry.Sphere(0.5, 24, 24), material.NewStandardMaterial(),
		mesh.WithPosition(0, 1, 0),
		mesh.WithCastShadow(true),
	)
	sun := light.NewLight(light.LightTypeDirectional,
		light.WithPosition(0, 4, 0),
		light.WithCastShadow(true),
		light.WithShadowMapSize(128, 128),
		light.WithShadowCameraBounds(1, 1, -1, -1),
		light.WithShadowCameraPlanes(1, 6),
	)
	amb := light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.3))
	return scene.NewScene(scene.WithObjects(ground, ball, sun, amb)), sun
}

func TestShadowMapDarkensReceivers(t *testing.T) {
	for _, filter := range []ShadowMapType{ShadowMapBasic, ShadowMapPCF, ShadowMapPCFSoft} {
		t.Run(filter.String(), func(t *testing.T) {
			s, sun := shadowScene()
			cam := newTestCamera(0, 3, 3)
			r := newTestRenderer(t, WithShadowMap(false, filter))

			require.NoError(t, r.Render(s, cam))
			unshadowed := redSum(r.Frame().Pix)

			r.ShadowMap().Enabled = true
			require.NoError(t, r.Render(s, cam))
			shadowed := redSum(r.Frame().Pix)
			assert.Less(t, shadowed, unshadowed)

			// A light that stops casting no longer darkens anything.
			sun.SetCastShadow(false)
			require.NoError(t, r.Render(s, cam))
			assert.Equal(t, unshadowed, redSum(r.Frame().Pix))
		})
	}
}

func TestShadowMapsDroppedForNonCasters(t *testing.T) {
	s, sun := shadowScene()
	r := newTestRenderer(t, WithShadowMap(true, ShadowMapPCF))
	impl := r.(*renderer)

	require.NoError(t, r.Render(s, newTestCamera(0, 3, 3)))
	require.Contains(t, impl.shadowMaps, sun.ID())
	m := impl.shadowMaps[sun.ID()]
	assert.Equal(t, 128, m.width)
	assert.Equal(t, 1, m.faces)

	sun.SetCastShadow(false)
	require.NoError(t, r.Render(s, newTestCamera(0, 3, 3)))
	assert.NotContains(t, impl.shadowMaps, sun.ID())
}

func TestShadowPassDerivesSpotCamera(t *testing.T) {
	spot := light.NewLight(light.LightTypeSpot,
		light.WithPosition(0, 4, 0),
		light.WithAngle(math32.Pi/5),
		light.WithDistance(8),
		light.WithCastShadow(true),
		light.WithShadowCameraFov(30),
		light.WithShadowCameraPlanes(1, 6),
	)
	s := scene.NewScene(scene.WithObjects(spot))
	r := newTestRenderer(t)

	// Without shadow maps the configured frustum is kept.
	require.NoError(t, r.Render(s, newTestCamera(0, 3, 3)))
	assert.Equal(t, float32(30), spot.Shadow().Camera.Fov)
	assert.Equal(t, float32(6), spot.Shadow().Camera.Far)

	r.ShadowMap().Enabled = true
	require.NoError(t, r.Render(s, newTestCamera(0, 3, 3)))
	cam := spot.Shadow().Camera
	assert.InDelta(t, 72, cam.Fov, 1e-3)
	assert.Equal(t, float32(8), cam.Far)
	assert.Equal(t, mgl32.Vec3{0, 4, 0}, cam.Position())
}

func TestClipNear(t *testing.T) {
	v := func(z, w float32) clipVertex {
		return clipVertex{clip: mgl32.Vec4{0, 0, z, w}}
	}
	var out [4]clipVertex

	assert.Equal(t, 3, clipNear([3]clipVertex{v(0, 1), v(0, 1), v(0, 1)}, &out))
	assert.Equal(t, 0, clipNear([3]clipVertex{v(-2, 1), v(-2, 1), v(-2, 1)}, &out))

	n := clipNear([3]clipVertex{v(-2, 1), v(0, 1), v(0, 1)}, &out)
	assert.Equal(t, 4, n)
	for i := 0; i < n; i++ {
		assert.GreaterOrEqual(t, out[i].clip[2]+out[i].clip[3], float32(-1e-6))
	}

	n = clipNear([3]clipVertex{v(0, 1), v(-2, 1), v(-2, 1)}, &out)
	assert.Equal(t, 3, n)
}

func TestSetupTriangleWinding(t *testing.T) {
	ccw := [3]clipVertex{
		{clip: mgl32.Vec4{-0.5, -0.5, 0, 1}},
		{clip: mgl32.Vec4{0.5, -0.5, 0, 1}},
		{clip: mgl32.Vec4{0, 0.5, 0, 1}},
	}
	tri, ok := setupTriangle(ccw, material.SideFront, 64, 64)
	require.True(t, ok)
	assert.True(t, tri.front)
	assert.Greater(t, tri.area, float32(0))

	_, ok = setupTriangle(ccw, material.SideBack, 64, 64)
	assert.False(t, ok)

	cw := [3]clipVertex{ccw[0], ccw[2], ccw[1]}
	tri, ok = setupTriangle(cw, material.SideDouble, 64, 64)
	require.True(t, ok)
	assert.False(t, tri.front)
	assert.Greater(t, tri.area, float32(0))
}

func TestRasterizeCoversPixelCenters(t *testing.T) {
	quad := [][3]clipVertex{
		{{clip: mgl32.Vec4{-1, -1, 0, 1}}, {clip: mgl32.Vec4{1, -1, 0, 1}}, {clip: mgl32.Vec4{1, 1, 0, 1}}},
		{{clip: mgl32.Vec4{-1, -1, 0, 1}}, {clip: mgl32.Vec4{1, 1, 0, 1}}, {clip: mgl32.Vec4{-1, 1, 0, 1}}},
	}
	var tris []screenTriangle
	for _, q := range quad {
		st, ok := setupTriangle(q, material.SideFront, 8, 8)
		require.True(t, ok)
		tris = append(tris, st)
	}

	tgt := newTarget(8, 8, true)
	tgt.clearRows(0, 8)
	tgt.rasterize(tris, 0, 8)
	for i := range tgt.depth {
		assert.InDelta(t, 0.5, tgt.depth[i], 1e-6)
		assert.GreaterOrEqual(t, tgt.tri[i], int32(0))
	}
}

func TestDistanceAttenuation(t *testing.T) {
	assert.InDelta(t, 1, distanceAttenuation(1, 0, 2), 1e-6)
	assert.InDelta(t, 0.25, distanceAttenuation(2, 0, 2), 1e-6)
	assert.InDelta(t, 1, distanceAttenuation(3, 0, 0), 1e-6)
	assert.Zero(t, distanceAttenuation(5, 5, 2))
	assert.Zero(t, distanceAttenuation(6, 5, 2))
	// Clamped near the light.
	assert.InDelta(t, 100, distanceAttenuation(0.01, 0, 2), 1e-3)
}

func TestSpotConeFalloff(t *testing.T) {
	spot := light.NewLight(light.LightTypeSpot,
		light.WithPosition(0, 4, 0),
		light.WithAngle(math32.Pi/6),
		light.WithPenumbra(0.5),
	)
	st := newLightState(spot)

	_, center, ok := st.incident(mgl32.Vec3{0, 0, 0})
	require.True(t, ok)
	assert.Greater(t, center[0], float32(0))

	_, _, ok = st.incident(mgl32.Vec3{10, 0, 0})
	assert.False(t, ok, "outside the cone")
}

func TestBRDFGGX(t *testing.T) {
	n := mgl32.Vec3{0, 0, 1}
	f0 := mgl32.Vec3{0.04, 0.04, 0.04}

	smooth := brdfGGX(n, n, n, f0, 0.2)
	rough := brdfGGX(n, n, n, f0, 1)
	assert.Greater(t, smooth[0], rough[0])
}

func TestShadeSkipsGrazingLight(t *testing.T) {
	item := &drawItem{params: material.NewStandardMaterial(material.WithRoughness(0.5)).Params()}
	surf := &surface{normal: mgl32.Vec3{0, 0, 1}, view: mgl32.Vec3{0, 0, 1}}

	grazing := light.NewLight(light.LightTypeDirectional, light.WithPosition(1, 0, 0))
	item.lights = []*lightState{newLightState(grazing)}
	assert.Equal(t, mgl32.Vec3{}, item.shade(surf, ShadowMapPCF, false))

	facing := light.NewLight(light.LightTypeDirectional, light.WithPosition(0, 0, 1))
	item.lights = []*lightState{newLightState(facing)}
	lit := item.shade(surf, ShadowMapPCF, false)
	assert.Greater(t, lit[0], float32(0))
}

func TestShadowMapVisibility(t *testing.T) {
	m := &shadowMap{
		kind:   light.LightTypeDirectional,
		width:  4,
		height: 4,
		faces:  1,
		radius: 1,
	}
	m.viewProj[0] = mgl32.Ident4()
	m.depth[0] = make([]float32, 16)
	for i := range m.depth[0] {
		m.depth[0][i] = 0.5
	}
	up := mgl32.Vec3{0, 0, 1}

	// In front of the occluder.
	assert.Equal(t, float32(1), m.visibility(mgl32.Vec3{0, 0, -0.5}, up, ShadowMapBasic))
	// Behind it.
	assert.Equal(t, float32(0), m.visibility(mgl32.Vec3{0, 0, 0.5}, up, ShadowMapBasic))
	assert.Equal(t, float32(0), m.visibility(mgl32.Vec3{0, 0, 0.5}, up, ShadowMapPCF))
	assert.InDelta(t, 0, m.visibility(mgl32.Vec3{0, 0, 0.5}, up, ShadowMapPCFSoft), 1e-6)
	// Outside the map counts as lit.
	assert.Equal(t, float32(1), m.visibility(mgl32.Vec3{2, 0, 0.5}, up, ShadowMapPCF))

	// Half the map unoccluded gives a partial PCF result on the edge.
	for y := 0; y < 4; y++ {
		for x := 2; x < 4; x++ {
			m.depth[0][y*4+x] = 1
		}
	}
	v := m.visibility(mgl32.Vec3{0, 0, 0.5}, up, ShadowMapPCF)
	assert.Greater(t, v, float32(0))
	assert.Less(t, v, float32(1))
}

func TestShadowSide(t *testing.T) {
	assert.Equal(t, material.SideBack, shadowSide(material.SideFront))
	assert.Equal(t, material.SideFront, shadowSide(material.SideBack))
	assert.Equal(t, material.SideDouble, shadowSide(material.SideDouble))
}

func TestShadowMapTypeString(t *testing.T) {
	assert.Equal(t, "basic", ShadowMapBasic.String())
	assert.Equal(t, "pcf", ShadowMapPCF.String())
	assert.Equal(t, "pcfsoft", ShadowMapPCFSoft.String())
}

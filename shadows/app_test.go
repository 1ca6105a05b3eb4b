package shadows

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine"
	"github.com/Carmen-Shannon/oxy-shadows/engine/gui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bakedShadowPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(32 * (x / 2))})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 64
	cfg.Height = 48
	cfg.Workers = 1
	cfg.FrameRate = 1000
	return cfg
}

func newTestApp(t *testing.T, cfg Config, fsys fstest.MapFS) *App {
	t.Helper()
	if fsys == nil {
		fsys = fstest.MapFS{DefaultBakedShadowPath: {Data: bakedShadowPNG(t)}}
	}
	a, err := New(cfg, WithFS(fsys), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func numberCtl(t *testing.T, f gui.Folder, name string) *gui.NumberController {
	t.Helper()
	require.NotNil(t, f)
	c, ok := f.Controller(name).(*gui.NumberController)
	require.True(t, ok, "missing number control %q", name)
	return c
}

func boolControl(t *testing.T, f gui.Folder, name string) *gui.BooleanController {
	t.Helper()
	require.NotNil(t, f)
	c, ok := f.Controller(name).(*gui.BooleanController)
	require.True(t, ok, "missing bool control %q", name)
	return c
}

func TestNewBuildsScene(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	assert.Len(t, a.Scene.Lights(), 4)
	assert.Len(t, a.Scene.Meshes(), 2)
	require.Len(t, a.Scene.Helpers(), 3)
	for _, h := range a.Scene.Helpers() {
		assert.False(t, h.Visible(), "helpers start hidden")
	}
	assert.NotNil(t, a.Scene.Get(a.Spot.Target().ID()), "spot target is in the scene")
	assert.Equal(t, a.Camera, a.Scene.Camera())

	assert.True(t, a.Sphere.CastShadow())
	assert.False(t, a.Sphere.ReceiveShadow())
	assert.True(t, a.Plane.ReceiveShadow())
	assert.False(t, a.Plane.CastShadow())
	assert.True(t, a.Directional.CastShadow())
	assert.True(t, a.Spot.CastShadow())
	assert.True(t, a.Point.CastShadow())

	assert.Equal(t, mgl32.Vec3{2, 2, -1}, a.Directional.Position())
	assert.Equal(t, mgl32.Vec3{0, 2, 2}, a.Spot.Position())
	assert.Equal(t, mgl32.Vec3{-1, 1, 0}, a.Point.Position())
	assert.Equal(t, float32(1.5), a.Directional.Intensity())
	assert.Equal(t, float32(3.6), a.Spot.Intensity())
	assert.Equal(t, float32(2.7), a.Point.Intensity())
	assert.Equal(t, float32(10), a.Spot.Distance())
	assert.Equal(t, float32(-0.5), a.Plane.Position().Y())
	assert.Same(t, a.Sphere.Material(), a.Material, "sphere uses the shared material")

	cam := a.Camera.Position()
	assert.InDelta(t, 1, cam.X(), 1e-4)
	assert.InDelta(t, 1, cam.Y(), 1e-4)
	assert.InDelta(t, 2, cam.Z(), 1e-4)
	assert.InDelta(t, 64.0/48.0, a.Camera.Aspect(), 1e-6)
	assert.True(t, a.Controls.DampingEnabled())
	assert.Equal(t, float32(0.05), a.Controls.DampingFactor())
}

func TestPanelLayout(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	for _, title := range []string{FolderAmbient, FolderDirectional, FolderSpot} {
		f := a.Panel.Folder(title)
		require.NotNil(t, f, title)
		assert.True(t, f.Closed(), "%s starts closed", title)
	}

	c := numberCtl(t, a.Panel.Folder(FolderAmbient), "Ambient Light Intensity")
	lo, hi := c.Limits()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 3.0, hi)

	c = numberCtl(t, a.Panel.Folder(FolderSpot), "Spot Light Intensity")
	_, hi = c.Limits()
	assert.Equal(t, 10.0, hi)

	for _, name := range []string{"X", "Y", "Z"} {
		c = numberCtl(t, a.Panel.Folder(FolderDirectional), "Directional Light "+name)
		lo, hi = c.Limits()
		assert.Equal(t, -5.0, lo)
		assert.Equal(t, 5.0, hi)
		assert.Equal(t, 0.001, c.StepSize())
	}

	numberCtl(t, a.Panel, "metalness")
	numberCtl(t, a.Panel, "roughness")
	boolControl(t, a.Panel.Folder(FolderDirectional), HelperControlName)
	boolControl(t, a.Panel.Folder(FolderSpot), HelperControlName)
	assert.Nil(t, a.Panel.Folder("Point Light"), "point light has no panel folder")
}

func TestDirectionalXControlOnlyMovesDirectionalLight(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)
	spot, point := a.Spot.Position(), a.Point.Position()

	numberCtl(t, a.Panel.Folder(FolderDirectional), "Directional Light X").SetValue(1.234)

	assert.Equal(t, mgl32.Vec3{1.234, 2, -1}, a.Directional.Position())
	assert.Equal(t, spot, a.Spot.Position())
	assert.Equal(t, point, a.Point.Position())
}

func TestControlsClampToRange(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	numberCtl(t, a.Panel.Folder(FolderAmbient), "Ambient Light Intensity").SetValue(9)
	assert.Equal(t, float32(3), a.Ambient.Intensity())

	numberCtl(t, a.Panel, "roughness").SetValue(-1)
	assert.Equal(t, float32(0), a.Material.Roughness())
}

func TestMaterialControlIsShared(t *testing.T) {
	cfg := testConfig()
	cfg.PlaneMaterial = PlaneMaterialStandard
	a := newTestApp(t, cfg, nil)
	assert.Same(t, a.Plane.Material(), a.Sphere.Material())

	numberCtl(t, a.Panel, "metalness").SetValue(0.5)
	assert.Equal(t, float32(0.5), a.Plane.Material().Metalness())
	assert.Equal(t, float32(0.5), a.Sphere.Material().Metalness())
}

func TestHelperToggleFlipsOnlyItsHelper(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	boolControl(t, a.Panel.Folder(FolderDirectional), HelperControlName).Toggle()
	assert.True(t, a.DirectionalHelper.Visible())
	assert.False(t, a.SpotHelper.Visible())
	assert.False(t, a.PointHelper.Visible())
	assert.True(t, a.Directional.Visible(), "the light itself is untouched")

	boolControl(t, a.Panel.Folder(FolderSpot), HelperControlName).SetValue(true)
	assert.True(t, a.SpotHelper.Visible())
	assert.False(t, a.PointHelper.Visible())
}

func TestResize(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	a.Resize(800, 600, 3)
	assert.InDelta(t, 800.0/600.0, a.Camera.Aspect(), 1e-6)
	w, h := a.Renderer.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, float32(2), a.Renderer.PixelRatio())
	assert.Equal(t, 800-300-15, a.Panel.Bounds().Min.X, "panel stays anchored top-right")
}

func TestTicksWithoutInputLeaveSceneStill(t *testing.T) {
	cfg := testConfig()
	cfg.MaxFrames = 5
	a := newTestApp(t, cfg, nil)

	before := map[string]mgl32.Vec3{}
	for _, o := range a.Scene.Objects() {
		before[o.ID().String()] = o.Position()
	}
	camera := a.Camera.Position()

	require.NoError(t, a.Run(context.Background()))
	for _, o := range a.Scene.Objects() {
		assert.Equal(t, before[o.ID().String()], o.Position(), o.Name())
	}
	assert.Equal(t, camera, a.Camera.Position())
}

func TestDragOutsidePanelRotatesCamera(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 1280, 720
	a := newTestApp(t, cfg, nil)
	azimuth := a.Controls.Azimuth()

	a.PointerDown(common.MouseButtonLeft, 100, 400)
	a.PointerMove(150, 400)
	a.PointerUp(common.MouseButtonLeft, 150, 400)
	for i := 0; i < 200; i++ {
		a.Controls.Update()
	}
	assert.NotEqual(t, azimuth, a.Controls.Azimuth())
}

func TestPanelConsumesPointer(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 1280, 720
	a := newTestApp(t, cfg, nil)
	azimuth := a.Controls.Azimuth()

	b := a.Panel.Bounds()
	x, y := float32(b.Min.X+20), float32(b.Min.Y+5)
	a.PointerDown(common.MouseButtonLeft, x, y)
	a.PointerMove(x-200, y+50)
	a.PointerUp(common.MouseButtonLeft, x-200, y+50)
	for i := 0; i < 200; i++ {
		a.Controls.Update()
	}
	assert.Equal(t, azimuth, a.Controls.Azimuth())
}

func TestScrollOverPanelDoesNotZoom(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 1280, 720
	a := newTestApp(t, cfg, nil)
	radius := a.Controls.Radius()

	b := a.Panel.Bounds()
	a.PointerMove(float32(b.Min.X+20), float32(b.Min.Y+5))
	a.Scroll(3)
	for i := 0; i < 200; i++ {
		a.Controls.Update()
	}
	assert.Equal(t, radius, a.Controls.Radius())

	a.KeyDown(common.KeyH)
	a.Scroll(3)
	for i := 0; i < 200; i++ {
		a.Controls.Update()
	}
	assert.NotEqual(t, radius, a.Controls.Radius(), "a hidden panel lets the wheel through")
}

func TestScrollOutsidePanelZooms(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 1280, 720
	a := newTestApp(t, cfg, nil)
	radius := a.Controls.Radius()

	a.PointerMove(100, 400)
	a.Scroll(3)
	for i := 0; i < 200; i++ {
		a.Controls.Update()
	}
	assert.NotEqual(t, radius, a.Controls.Radius())
}

func TestKeyShortcuts(t *testing.T) {
	cfg := testConfig()
	cfg.FrameRate = 1
	a := newTestApp(t, cfg, nil)

	a.KeyDown(common.KeyH)
	assert.True(t, a.Panel.Hidden())
	a.KeyDown(common.KeyH)
	assert.False(t, a.Panel.Hidden())

	a.KeyDown(common.KeyP)
	assert.True(t, a.profiling)
	a.KeyDown(common.KeyP)
	assert.False(t, a.profiling)

	a.KeyDown(common.KeyEsc)
	require.NoError(t, a.Run(context.Background()))
	assert.Zero(t, a.Engine.Frames())
}

func TestTextureLoads(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.True(t, a.AwaitTexture(ctx))
	assert.True(t, a.BakedShadow.Texture().Ready())
	assert.Same(t, a.PlaneMaterial.Map(), a.BakedShadow.Texture())
}

func TestMissingTextureFallsBack(t *testing.T) {
	cfg := testConfig()
	cfg.MaxFrames = 1
	a := newTestApp(t, cfg, fstest.MapFS{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.False(t, a.AwaitTexture(ctx))
	assert.False(t, a.BakedShadow.Texture().Ready())
	assert.Error(t, a.BakedShadow.Err())

	require.NoError(t, a.Run(context.Background()))
	assert.NotNil(t, a.Renderer.Frame(), "the scene still renders")
}

func TestRunHeadlessWritesSnapshot(t *testing.T) {
	cfg := testConfig()
	cfg.MaxFrames = 2
	cfg.Snapshot = filepath.Join(t.TempDir(), "frame.png")
	a := newTestApp(t, cfg, nil)

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, uint64(2), a.Engine.Frames())
	assert.Equal(t, engine.StateStopped, a.Engine.State())

	f, err := os.Open(cfg.Snapshot)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
}

func TestRunStopsOnCancel(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	a.Engine.SetTickCallback(func(float32) {
		if a.Engine.Frames() >= 1 {
			cancel()
		}
	})

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	assert.Equal(t, engine.StateStopped, a.Engine.State())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 0
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestShadowMapConfigRenders(t *testing.T) {
	cfg := testConfig()
	cfg.ShadowMap = true
	cfg.ShadowMapType = "pcf"
	cfg.PlaneMaterial = PlaneMaterialStandard
	cfg.MaxFrames = 1
	a := newTestApp(t, cfg, nil)

	require.NoError(t, a.Run(context.Background()))
	require.NotNil(t, a.Renderer.Frame())
	assert.InDelta(t, 2*0.3*180, a.Spot.Shadow().Camera.Fov, 0.01, "spot shadow camera follows the cone")
	assert.Equal(t, float32(10), a.Spot.Shadow().Camera.Far)
}

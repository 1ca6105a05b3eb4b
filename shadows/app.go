package shadows

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-shadows/engine"
	"github.com/Carmen-Shannon/oxy-shadows/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadows/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadows/engine/gui"
	"github.com/Carmen-Shannon/oxy-shadows/engine/light"
	"github.com/Carmen-Shannon/oxy-shadows/engine/loader"
	"github.com/Carmen-Shannon/oxy-shadows/engine/mesh"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-shadows/engine/scene"
	"github.com/Carmen-Shannon/oxy-shadows/engine/texture"
	"github.com/Carmen-Shannon/oxy-shadows/engine/window"
	"github.com/chewxy/math32"
)

// App is the application context: every object of the demo, built once by New and
// shared by the panel, input handlers, resize handler and frame loop.
type App struct {
	Config Config

	Scene    scene.Scene
	Camera   camera.Camera
	Controls camera.CameraController
	Renderer renderer.Renderer
	Engine   engine.Engine
	Panel    gui.GUI
	Loader   loader.Loader

	// BakedShadow is the pending ground texture.
	BakedShadow loader.Future

	Ambient     light.Light
	Directional light.Light
	Spot        light.Light
	Point       light.Light

	DirectionalHelper light.CameraHelper
	SpotHelper        light.CameraHelper
	PointHelper       light.CameraHelper

	// Material is the standard material shared by the sphere and panel.
	Material      material.Material
	PlaneMaterial material.Material

	Sphere mesh.Mesh
	Plane  mesh.Mesh

	window    window.Window
	logger    *slog.Logger
	fsys      fs.FS
	profiling bool

	// last pointer position, used to keep wheel events over the panel
	pointerX, pointerY float32
}

// Option configures New.
type Option func(*App)

// WithWindow presents to a window through the WGPU backend and wires its input.
// Without a window the app renders headless with the software backend.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - Option: option function to apply
func WithWindow(w window.Window) Option {
	return func(a *App) {
		a.window = w
	}
}

// WithLogger sets the logger passed to every component.
//
// Parameters:
//   - logger: the logger, ignored when nil
//
// Returns:
//   - Option: option function to apply
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithFS resolves the texture path against fsys instead of the OS filesystem.
//
// Parameters:
//   - fsys: the filesystem
//
// Returns:
//   - Option: option function to apply
func WithFS(fsys fs.FS) Option {
	return func(a *App) {
		a.fsys = fsys
	}
}

// New validates cfg and builds the scene, renderer, panel and engine.
//
// Parameters:
//   - cfg: the configuration
//   - options: functional options
//
// Returns:
//   - *App: the application
//   - error: an error if cfg is invalid or the panel cannot be bound
func New(cfg Config, options ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{Config: cfg, logger: slog.Default(), profiling: cfg.Profiling}
	for _, opt := range options {
		opt(a)
	}

	a.buildLights()
	a.buildMeshes()
	a.buildCamera()

	a.Scene = scene.NewScene(
		scene.WithName("shadows"),
		scene.WithObjects(
			a.Ambient,
			a.Directional, a.DirectionalHelper,
			a.Spot, a.Spot.Target(), a.SpotHelper,
			a.Point, a.PointHelper,
			a.Sphere, a.Plane,
		),
		scene.WithCamera(a.Camera),
	)

	if err := a.buildRenderer(); err != nil {
		a.Loader.Close()
		return nil, err
	}
	if err := a.buildPanel(); err != nil {
		a.Renderer.Close()
		a.Loader.Close()
		return nil, fmt.Errorf("build panel: %w", err)
	}
	a.Renderer.AddOverlay(a.Panel)

	a.Engine = engine.NewEngine(
		engine.WithWindow(a.window),
		engine.WithRenderer(a.Renderer),
		engine.WithScene(a.Scene),
		engine.WithCamera(a.Camera),
		engine.WithUpdaters(a.Controls),
		engine.WithFrameRate(cfg.FrameRate),
		engine.WithMaxFrames(cfg.MaxFrames),
		engine.WithProfiling(cfg.Profiling),
		engine.WithMaxPixelRatio(cfg.MaxPixelRatio),
		engine.WithLogger(a.logger),
	)
	if a.window != nil {
		a.bindInput(a.window)
	}

	a.logger.Info("scene built",
		slog.Int("objects", a.Scene.Count()),
		slog.Bool("shadowMap", cfg.ShadowMap),
		slog.String("planeMaterial", cfg.PlaneMaterial),
	)
	return a, nil
}

func (a *App) buildLights() {
	a.Ambient = light.NewLight(light.LightTypeAmbient,
		light.WithName("ambient"),
		light.WithColorHex(0xffffff),
		light.WithIntensity(1),
	)

	a.Directional = light.NewLight(light.LightTypeDirectional,
		light.WithName("directional"),
		light.WithColorHex(0xffffff),
		light.WithIntensity(1.5),
		light.WithPosition(2, 2, -1),
		light.WithCastShadow(true),
		light.WithShadowMapSize(1024, 1024),
		light.WithShadowCameraBounds(1, 1, -1, -1),
		light.WithShadowCameraPlanes(1, 6),
	)
	a.DirectionalHelper = light.NewCameraHelper(a.Directional)

	a.Spot = light.NewLight(light.LightTypeSpot,
		light.WithName("spot"),
		light.WithColorHex(0xffffff),
		light.WithIntensity(3.6),
		light.WithDistance(10),
		light.WithAngle(math32.Pi*0.3),
		light.WithPosition(0, 2, 2),
		light.WithCastShadow(true),
		light.WithShadowMapSize(1024, 1024),
		light.WithShadowCameraFov(30),
		light.WithShadowCameraPlanes(1, 6),
	)
	a.SpotHelper = light.NewCameraHelper(a.Spot)

	a.Point = light.NewLight(light.LightTypePoint,
		light.WithName("point"),
		light.WithColorHex(0xffffff),
		light.WithIntensity(2.7),
		light.WithPosition(-1, 1, 0),
		light.WithCastShadow(true),
		light.WithShadowMapSize(1024, 1024),
		light.WithShadowCameraPlanes(0.1, 5),
	)
	a.PointHelper = light.NewCameraHelper(a.Point)
}

func (a *App) buildMeshes() {
	a.Material = material.NewStandardMaterial(
		material.WithName("standard"),
		material.WithRoughness(0.7),
		material.WithMetalness(0),
	)

	ldrOpts := []loader.LoaderBuilderOption{loader.WithLogger(a.logger), loader.WithMaxSize(a.Config.Texture.MaxSize)}
	if a.fsys != nil {
		ldrOpts = append(ldrOpts, loader.WithFS(a.fsys))
	}
	a.Loader = loader.NewLoader(ldrOpts...)
	if a.Config.Texture.Path != "" {
		a.BakedShadow = a.Loader.Load(a.Config.Texture.Path)
		a.BakedShadow.Texture().SetColorSpace(texture.ColorSpaceSRGB)
	}

	if a.Config.PlaneMaterial == PlaneMaterialStandard {
		a.PlaneMaterial = a.Material
	} else {
		opts := []material.MaterialBuilderOption{material.WithName("baked-shadow")}
		if a.BakedShadow != nil {
			opts = append(opts, material.WithMap(a.BakedShadow.Texture()))
		}
		a.PlaneMaterial = material.NewBasicMaterial(opts...)
	}

	a.Sphere = mesh.NewMesh(geometry.Sphere(0.5, 32, 32), a.Material,
		mesh.WithName("sphere"),
		mesh.WithCastShadow(true),
	)
	a.Plane = mesh.NewMesh(geometry.Plane(5, 5), a.PlaneMaterial,
		mesh.WithName("plane"),
		mesh.WithRotation(-math32.Pi*0.5, 0, 0),
		mesh.WithPosition(0, -0.5, 0),
		mesh.WithReceiveShadow(true),
	)
}

func (a *App) buildCamera() {
	w, h := a.viewport()
	a.Controls = camera.NewCameraController(
		camera.WithTarget(0, 0, 0),
		camera.WithPosition(1, 1, 2),
		camera.WithDamping(a.Config.DampingFactor),
		camera.WithViewport(w, h),
	)
	a.Camera = camera.NewCamera(
		camera.WithFovDegrees(75),
		camera.WithAspect(float32(w)/float32(h)),
		camera.WithNear(0.1),
		camera.WithFar(100),
		camera.WithController(a.Controls),
	)
}

func (a *App) buildRenderer() error {
	filter, err := a.Config.ShadowFilter()
	if err != nil {
		return err
	}
	w, h := a.viewport()
	mode := renderer.PresentModeVSync
	if !a.Config.VSync {
		mode = renderer.PresentModeUncapped
	}
	opts := []renderer.RendererBuilderOption{
		renderer.WithSize(w, h),
		renderer.WithPixelRatio(math32.Min(a.pixelRatio(), a.Config.MaxPixelRatio)),
		renderer.WithShadowMap(a.Config.ShadowMap, filter),
		renderer.WithPresentMode(mode),
		renderer.WithForceSoftwareRenderer(a.Config.FallbackAdapter),
		renderer.WithLogger(a.logger),
	}
	if a.Config.Workers > 0 {
		opts = append(opts, renderer.WithWorkers(a.Config.Workers))
	}

	backend := renderer.BackendTypeSoftware
	if a.window != nil {
		backend = renderer.BackendTypeWGPU
	}
	a.Renderer = renderer.NewRenderer(backend, a.window, opts...)
	return nil
}

// viewport is the logical size from the window, or the configured size when headless.
func (a *App) viewport() (int, int) {
	if a.window != nil && a.window.Width() > 0 && a.window.Height() > 0 {
		return a.window.Width(), a.window.Height()
	}
	return a.Config.Width, a.Config.Height
}

func (a *App) pixelRatio() float32 {
	if a.window != nil {
		if s := a.window.ContentScale(); s > 0 {
			return s
		}
	}
	return a.Config.PixelRatio
}

// AwaitTexture blocks until the baked shadow texture is decoded or ctx is done.
// Failures are logged and the plane keeps its base color.
//
// Parameters:
//   - ctx: bounds the wait
//
// Returns:
//   - bool: true if the texture is ready
func (a *App) AwaitTexture(ctx context.Context) bool {
	if a.BakedShadow == nil {
		return false
	}
	if err := a.BakedShadow.Wait(ctx); err != nil {
		a.logger.Warn("baked shadow texture unavailable, rendering without it",
			slog.String("path", a.Config.Texture.Path),
			slog.Any("error", err),
		)
		return false
	}
	return true
}

// Resize applies a new viewport to the camera, renderer and panel.
//
// Parameters:
//   - width: logical width in pixels
//   - height: logical height in pixels
//   - pixelRatio: device pixel ratio
func (a *App) Resize(width, height int, pixelRatio float32) {
	a.Engine.Resize(width, height, pixelRatio)
	a.Panel.SetViewport(width, height)
}

// Run optionally awaits the texture, then runs the frame loop until ctx is
// cancelled, the window closes or the frame limit is reached. Headless runs
// write the last frame to the configured snapshot path.
//
// Parameters:
//   - ctx: cancels the loop
//
// Returns:
//   - error: an error if the loop could not start or the snapshot failed
func (a *App) Run(ctx context.Context) error {
	if a.Config.Texture.Await {
		wctx, cancel := context.WithTimeout(ctx, a.Config.Texture.Timeout())
		a.AwaitTexture(wctx)
		cancel()
	}
	if err := a.Engine.Run(ctx); err != nil {
		return err
	}
	if a.window == nil && a.Config.Snapshot != "" {
		if err := a.WriteSnapshot(a.Config.Snapshot); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnapshot encodes the last rendered frame as PNG.
//
// Parameters:
//   - path: the output file
//
// Returns:
//   - error: an error if no frame exists or the file cannot be written
func (a *App) WriteSnapshot(path string) (err error) {
	frame := a.Renderer.Frame()
	if frame == nil {
		return errors.New("snapshot: no frame rendered")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("snapshot: %w", cerr)
		}
	}()
	if err := png.Encode(f, frame); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	a.logger.Info("snapshot written", slog.String("path", path))
	return nil
}

// Close stops the engine and releases the renderer, loader and window.
func (a *App) Close() {
	a.Engine.Quit()
	a.Renderer.Close()
	a.Loader.Close()
	if a.window != nil {
		if err := a.window.Close(); err != nil {
			a.logger.Warn("close window", slog.Any("error", err))
		}
	}
}

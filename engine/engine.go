package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-shadows/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadows/engine/profiler"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadows/engine/scene"
	"github.com/Carmen-Shannon/oxy-shadows/engine/window"
	"github.com/chewxy/math32"
)

// ErrAlreadyRunning is returned by Run when the engine has already been started.
var ErrAlreadyRunning = errors.New("engine: already running")

// State is the lifecycle state of an engine.
type State int32

const (
	// StateIdle is the state before Run.
	StateIdle State = iota

	// StateRunning is the state while the frame loop runs.
	StateRunning

	// StateStopped is the final state after the frame loop exits.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// DefaultMaxPixelRatio caps the renderer pixel ratio applied on resize.
const DefaultMaxPixelRatio float32 = 2

// Updater is advanced once per frame before rendering, e.g. damped orbit controls.
type Updater interface {
	// Update advances the updater by one frame.
	//
	// Returns:
	//   - bool: true if anything changed
	Update() bool
}

// engine implements the Engine interface.
// Runs the frame loop on the calling goroutine.
type engine struct {
	mu     sync.Mutex
	state  atomic.Int32
	logger *slog.Logger

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene
	camera   camera.Camera
	updaters []Updater

	profiler         *profiler.Profiler
	profilingEnabled bool

	clock         *Clock
	frameInterval time.Duration
	maxFrames     uint64
	frames        atomic.Uint64
	maxPixelRatio float32

	tickCallback func(elapsed float32)
}

// Engine is the main entry point for the engine.
// It drives the frame loop: each frame reads the clock, advances the registered
// updaters, renders the scene through the camera and presents the result.
type Engine interface {
	// Window returns the window the engine polls, or nil when headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer frames are drawn with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Scene returns the scene drawn each frame.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Camera returns the camera the scene is drawn through.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameRate sets the headless frame rate in frames per second. With a
	// window, a positive rate caps the loop instead.
	//
	// Parameters:
	//   - fps: target frames per second (0 removes the cap for windowed runs)
	SetFrameRate(fps float64)

	// SetTickCallback registers the function called at the start of each frame.
	//
	// Parameters:
	//   - callback: receives the seconds elapsed since Run started
	SetTickCallback(callback func(elapsed float32))

	// AddUpdater registers an updater advanced once per frame, in registration order.
	//
	// Parameters:
	//   - u: the updater
	AddUpdater(u Updater)

	// Resize applies a new viewport: the camera aspect becomes width/height, the
	// renderer size becomes (width, height) and the renderer pixel ratio becomes
	// min(pixelRatio, the configured maximum). Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: logical width in pixels
	//   - height: logical height in pixels
	//   - pixelRatio: device pixel ratio
	Resize(width, height int, pixelRatio float32)

	// Run moves the engine from idle to running and blocks in the frame loop until
	// ctx is cancelled, Quit is called, the window closes or the frame limit is
	// reached. It can only be called once.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ErrAlreadyRunning if Run was called before
	Run(ctx context.Context) error

	// Quit signals the frame loop to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// State returns the lifecycle state.
	//
	// Returns:
	//   - State: idle, running or stopped
	State() State

	// Frames returns the number of frames rendered so far.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Clock returns the engine clock.
	//
	// Returns:
	//   - *Clock: the clock started by Run
	Clock() *Clock
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Defaults: 60 frames per second, profiling disabled, pixel ratio capped at 2.
// When a window is set, its resize callback is wired to Resize.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, scene, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:        slog.Default(),
		quitChannel:   make(chan struct{}),
		frameInterval: time.Second / 60,
		maxPixelRatio: DefaultMaxPixelRatio,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.clock == nil {
		e.clock = NewClock(nil)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.Resize(width, height, e.window.ContentScale())
		})
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetFrameRate(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameInterval = frameInterval(fps)
}

func (e *engine) SetTickCallback(callback func(elapsed float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) AddUpdater(u Updater) {
	if u == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.updaters = append(e.updaters, u)
}

func (e *engine) Resize(width, height int, pixelRatio float32) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.camera != nil {
		e.camera.SetAspect(float32(width) / float32(height))
		if ctrl := e.camera.Controller(); ctrl != nil {
			ctrl.SetViewport(width, height)
		}
	}
	if e.renderer != nil {
		e.renderer.SetSize(width, height)
		if pixelRatio > 0 {
			e.renderer.SetPixelRatio(math32.Min(pixelRatio, e.maxPixelRatio))
		}
	}
	e.logger.Debug("resize", slog.Int("width", width), slog.Int("height", height), slog.Float64("pixelRatio", float64(pixelRatio)))
}

func (e *engine) State() State {
	return State(e.state.Load())
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}

func (e *engine) Clock() *Clock {
	return e.clock
}

// Quit signals the frame loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Run(ctx context.Context) error {
	if !e.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrAlreadyRunning
	}
	defer e.state.Store(int32(StateStopped))

	e.clock.Start()
	e.logger.Info("engine running", slog.Bool("window", e.window != nil))

	var reason string
	if e.window != nil {
		reason = e.runWindowed(ctx)
	} else {
		reason = e.runHeadless(ctx)
	}
	e.logger.Info("engine stopped", slog.String("reason", reason), slog.Uint64("frames", e.Frames()))
	return nil
}

// runWindowed runs one frame per event poll. Presentation paces the loop; a
// positive frame interval adds a cap on top.
func (e *engine) runWindowed(ctx context.Context) string {
	for {
		start := time.Now()
		select {
		case <-ctx.Done():
			return "context cancelled"
		case <-e.quitChannel:
			return "quit"
		default:
		}
		if !e.window.PollEvents() {
			return "window closed"
		}
		if e.frame() {
			return "frame limit"
		}

		e.mu.Lock()
		interval := e.frameInterval
		e.mu.Unlock()
		if interval > 0 {
			if remaining := interval - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// runHeadless runs one frame per ticker tick.
func (e *engine) runHeadless(ctx context.Context) string {
	e.mu.Lock()
	interval := e.frameInterval
	e.mu.Unlock()
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "context cancelled"
		case <-e.quitChannel:
			return "quit"
		case <-ticker.C:
			if e.frame() {
				return "frame limit"
			}
			e.mu.Lock()
			if e.frameInterval > 0 && e.frameInterval != interval {
				interval = e.frameInterval
				ticker.Reset(interval)
			}
			e.mu.Unlock()
		}
	}
}

// frame runs one iteration of the loop and reports whether the frame limit was reached.
func (e *engine) frame() bool {
	e.mu.Lock()
	tick := e.tickCallback
	updaters := e.updaters
	profiling := e.profilingEnabled
	e.mu.Unlock()

	elapsed := e.clock.ElapsedTime()
	if tick != nil {
		tick(elapsed)
	}
	for _, u := range updaters {
		u.Update()
	}
	if e.camera != nil {
		e.camera.Update()
	}
	if e.renderer != nil && e.scene != nil && e.camera != nil && e.scene.Active() {
		if err := e.renderer.Render(e.scene, e.camera); err != nil {
			e.logger.Warn("render failed", slog.Any("error", err))
		}
	}

	n := e.frames.Add(1)
	if profiling && e.profiler != nil {
		e.profiler.Tick()
	}
	return e.maxFrames > 0 && n >= e.maxFrames
}

func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

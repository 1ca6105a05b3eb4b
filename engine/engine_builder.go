package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-shadows/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadows/engine/profiler"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadows/engine/scene"
	"github.com/Carmen-Shannon/oxy-shadows/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler sets the profiler ticked each frame while profiling is enabled.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithFrameRate sets the frame rate in frames per second. Headless runs tick at this
// rate; windowed runs use it as a cap. Values <= 0 mean 60 headless and uncapped
// with a window.
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameInterval = frameInterval(fps)
	}
}

// WithMaxFrames stops the loop after n frames. Zero runs until stopped otherwise.
//
// Parameters:
//   - n: the frame limit
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxFrames(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.maxFrames = n
	}
}

// WithMaxPixelRatio sets the cap applied to the device pixel ratio on resize.
//
// Parameters:
//   - ratio: the maximum pixel ratio, ignored when not positive
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxPixelRatio(ratio float32) EngineBuilderOption {
	return func(e *engine) {
		if ratio > 0 {
			e.maxPixelRatio = ratio
		}
	}
}

// WithWindow sets a custom configured window for the engine to poll and present to.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer frames are drawn with.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene sets the scene drawn each frame.
//
// Parameters:
//   - s: the Scene to draw
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithCamera sets the camera the scene is drawn through.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithUpdaters registers updaters advanced once per frame before rendering.
//
// Parameters:
//   - updaters: the updaters, in update order
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithUpdaters(updaters ...Updater) EngineBuilderOption {
	return func(e *engine) {
		for _, u := range updaters {
			if u != nil {
				e.updaters = append(e.updaters, u)
			}
		}
	}
}

// WithTickCallback sets the function called at the start of each frame.
//
// Parameters:
//   - callback: receives the seconds elapsed since Run started
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(elapsed float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithLogger sets the engine logger.
//
// Parameters:
//   - logger: the logger, ignored when nil
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock sets the time source of the engine clock.
//
// Parameters:
//   - now: the time source
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		e.clock = NewClock(now)
	}
}

package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-shadows/common"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithSize sets the initial logical output size. Non-positive sizes are ignored.
//
// Parameters:
//   - width: logical width in pixels
//   - height: logical height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithPixelRatio sets the initial drawing buffer pixels per logical pixel.
//
// Parameters:
//   - ratio: the pixel ratio, ignored when not positive
//
// Returns:
//   - RendererBuilderOption: a function that applies the pixel ratio option to a renderer
func WithPixelRatio(ratio float32) RendererBuilderOption {
	return func(r *renderer) {
		if ratio > 0 {
			r.pixelRatio = ratio
		}
	}
}

// WithShadowMap sets whether shadow maps are rendered and how they are filtered.
//
// Parameters:
//   - enabled: true to render and sample shadow maps
//   - filter: the ShadowMapType used when sampling
//
// Returns:
//   - RendererBuilderOption: a function that applies the shadow map option to a renderer
func WithShadowMap(enabled bool, filter ShadowMapType) RendererBuilderOption {
	return func(r *renderer) {
		r.shadowMap = ShadowMap{Enabled: enabled, Type: filter}
	}
}

// WithClearColor sets the background color as a 0xRRGGBB sRGB value.
//
// Parameters:
//   - hex: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(hex uint32) RendererBuilderOption {
	return func(r *renderer) {
		c := common.ColorFromHex(hex)
		r.clearColor = [4]uint8{common.EncodeSRGB8(c[0]), common.EncodeSRGB8(c[1]), common.EncodeSRGB8(c[2]), 255}
	}
}

// WithWorkers sets the number of raster workers. Defaults to one per CPU.
//
// Parameters:
//   - n: worker count, ignored when not positive
//
// Returns:
//   - RendererBuilderOption: a function that applies the workers option to a renderer
func WithWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the renderer logger.
//
// Parameters:
//   - logger: the logger, ignored when nil
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

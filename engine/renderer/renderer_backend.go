package renderer

import "image"

// RendererBackendType identifies where the Renderer delivers finished frames.
type RendererBackendType int

const (
	// BackendTypeSoftware keeps frames in memory only. Used headless and in tests;
	// the last frame is available through Renderer.Frame.
	BackendTypeSoftware RendererBackendType = iota

	// BackendTypeWGPU uploads every frame to a WebGPU texture and draws it onto the
	// window surface.
	BackendTypeWGPU
)

// String returns the backend name.
func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeSoftware:
		return "software"
	case BackendTypeWGPU:
		return "wgpu"
	}
	return "unknown"
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// RendererBackend presents finished frames to a display.
type RendererBackend interface {
	// Present uploads the frame and shows it on the display surface. The surface
	// is reconfigured first when the frame size changed.
	//
	// Parameters:
	//   - frame: the sRGB-encoded frame, sized to the drawing buffer
	//
	// Returns:
	//   - error: an error if the frame could not be presented
	Present(frame *image.RGBA) error

	// SetPresentMode sets the surface present mode. Takes effect on the next
	// surface configuration.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Release frees every GPU resource held by the backend.
	Release()
}

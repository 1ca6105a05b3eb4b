package window

// WindowBuilderOption configures an engineWindow before the platform window is
// created. Sizes are logical pixels; the framebuffer is scaled by ContentScale.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the title bar text.
//
// Parameters:
//   - title: the window title
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial client area in logical pixels. Non-positive values
// keep the default for that axis.
//
// Parameters:
//   - width: initial logical width
//   - height: initial logical height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithMinSize sets the smallest client area a user resize may reach. A
// non-positive value removes the limit on that axis.
//
// Parameters:
//   - width: minimum logical width
//   - height: minimum logical height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = sizeLimit(width), sizeLimit(height)
	}
}

// WithMaxSize sets the largest client area a user resize may reach. A
// non-positive value removes the limit on that axis.
//
// Parameters:
//   - width: maximum logical width
//   - height: maximum logical height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth, w.maxHeight = sizeLimit(width), sizeLimit(height)
	}
}

func sizeLimit(v int) int {
	if v <= 0 {
		return sizeUnlimited
	}
	return v
}

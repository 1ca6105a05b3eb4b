package gui

// GUIBuilderOption is a functional option for configuring the root panel.
type GUIBuilderOption func(*gui)

// WithTitle sets the root panel title.
//
// Parameters:
//   - title: the title
//
// Returns:
//   - GUIBuilderOption: option function to apply
func WithTitle(title string) GUIBuilderOption {
	return func(g *gui) {
		g.title = title
	}
}

// WithWidth sets the panel width in logical pixels.
//
// Parameters:
//   - width: the width; values below 1 are ignored
//
// Returns:
//   - GUIBuilderOption: option function to apply
func WithWidth(width int) GUIBuilderOption {
	return func(g *gui) {
		if width > 0 {
			g.width = width
		}
	}
}

// WithMargin sets the gap between the panel and the viewport's right edge.
func WithMargin(margin int) GUIBuilderOption {
	return func(g *gui) {
		g.margin = max(margin, 0)
	}
}

// WithViewport sets the initial logical viewport size.
//
// Parameters:
//   - width, height: the viewport size
//
// Returns:
//   - GUIBuilderOption: option function to apply
func WithViewport(width, height int) GUIBuilderOption {
	return func(g *gui) {
		g.SetViewport(width, height)
	}
}

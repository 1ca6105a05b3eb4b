package gui

import (
	"errors"
	"fmt"
	"image"

	"github.com/Carmen-Shannon/oxy-shadows/common"
)

// ErrUnknownProperty is returned when a control is bound to a property path the
// target does not expose.
var ErrUnknownProperty = errors.New("gui: unknown property")

// Folder is a titled, collapsible group of controllers and nested folders.
//
// Panels are built once at startup and then driven from the loop goroutine;
// they are not safe for concurrent use.
type Folder interface {
	// Title returns the folder title.
	//
	// Returns:
	//   - string: the title
	Title() string

	// AddFolder appends an open child folder.
	//
	// Parameters:
	//   - title: the folder title
	//
	// Returns:
	//   - Folder: the new folder
	AddFolder(title string) Folder

	// Add appends a number controller bound to target's float property at path.
	// The controller's name defaults to the last path segment.
	//
	// Parameters:
	//   - target: the object exposing the property
	//   - path: the property path, e.g. "intensity" or "position.x"
	//
	// Returns:
	//   - *NumberController: the new controller
	//   - error: ErrUnknownProperty when target has no such property
	Add(target common.FloatProperties, path string) (*NumberController, error)

	// AddNumber appends a number controller over an explicit binding.
	//
	// Parameters:
	//   - name: the controller label
	//   - binding: the getter/setter pair
	//
	// Returns:
	//   - *NumberController: the new controller
	AddNumber(name string, binding common.FloatBinding) *NumberController

	// AddBool appends a boolean controller bound to target's bool property at path.
	//
	// Parameters:
	//   - target: the object exposing the property
	//   - path: the property path, e.g. "visible"
	//
	// Returns:
	//   - *BooleanController: the new controller
	//   - error: ErrUnknownProperty when target has no such property
	AddBool(target common.BoolProperties, path string) (*BooleanController, error)

	// AddBoolean appends a boolean controller over an explicit binding.
	//
	// Parameters:
	//   - name: the controller label
	//   - binding: the getter/setter pair
	//
	// Returns:
	//   - *BooleanController: the new controller
	AddBoolean(name string, binding common.BoolBinding) *BooleanController

	// Open expands the folder.
	Open()

	// Close collapses the folder.
	Close()

	// Closed reports whether the folder is collapsed.
	//
	// Returns:
	//   - bool: true if collapsed
	Closed() bool

	// Folder returns the direct child folder with the given title, or nil.
	//
	// Parameters:
	//   - title: the folder title
	//
	// Returns:
	//   - Folder: the child folder or nil
	Folder(title string) Folder

	// Controller returns the direct child controller with the given name, or nil.
	//
	// Parameters:
	//   - name: the controller name
	//
	// Returns:
	//   - Controller: the controller or nil
	Controller(name string) Controller

	// Controllers returns the direct child controllers in insertion order.
	//
	// Returns:
	//   - []Controller: the controllers
	Controllers() []Controller
}

// GUI is the root panel. It is itself a Folder, drawn as an overlay anchored to
// the top-right corner of the viewport.
type GUI interface {
	Folder

	// Width returns the panel width in logical pixels.
	//
	// Returns:
	//   - int: the width
	Width() int

	// SetViewport sets the logical viewport size used to anchor the panel.
	//
	// Parameters:
	//   - width, height: viewport size in logical pixels
	SetViewport(width, height int)

	// SetHidden hides or shows the panel. A hidden panel draws nothing and
	// consumes no new pointer presses.
	//
	// Parameters:
	//   - hidden: true to hide the panel
	SetHidden(hidden bool)

	// Hidden reports whether the panel is hidden.
	//
	// Returns:
	//   - bool: true if hidden
	Hidden() bool

	// Bounds returns the panel rectangle in logical viewport coordinates.
	//
	// Returns:
	//   - image.Rectangle: the panel bounds
	Bounds() image.Rectangle

	// PointerDown handles a button press at logical coordinates (x, y).
	//
	// Parameters:
	//   - button: the pressed button
	//   - x, y: pointer position
	//
	// Returns:
	//   - bool: true if the panel consumed the event
	PointerDown(button common.MouseButton, x, y float32) bool

	// PointerMove handles pointer motion.
	//
	// Parameters:
	//   - x, y: pointer position
	//
	// Returns:
	//   - bool: true if the panel consumed the event
	PointerMove(x, y float32) bool

	// PointerUp handles a button release.
	//
	// Parameters:
	//   - button: the released button
	//   - x, y: pointer position
	//
	// Returns:
	//   - bool: true if the panel consumed the event
	PointerUp(button common.MouseButton, x, y float32) bool

	// Draw composites the panel onto dst, whose pixels are pixelRatio times the
	// logical viewport.
	//
	// Parameters:
	//   - dst: the frame to draw onto
	//   - pixelRatio: physical pixels per logical pixel
	Draw(dst *image.RGBA, pixelRatio float32)
}

// item is a folder child: a nested folder or a controller.
type item interface {
	appendRows(rows []row, x, y, width, depth int) ([]row, int)
}

type folder struct {
	title    string
	closed   bool
	children []item
}

var _ Folder = &folder{}

func newFolder(title string) *folder {
	return &folder{title: title}
}

func (f *folder) Title() string {
	return f.title
}

func (f *folder) AddFolder(title string) Folder {
	child := newFolder(title)
	f.children = append(f.children, child)
	return child
}

func (f *folder) Add(target common.FloatProperties, path string) (*NumberController, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: %q on nil target", ErrUnknownProperty, path)
	}
	binding, ok := target.FloatProperty(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, path)
	}
	return f.AddNumber(lastSegment(path), binding), nil
}

func (f *folder) AddNumber(name string, binding common.FloatBinding) *NumberController {
	c := newNumberController(name, binding)
	f.children = append(f.children, c)
	return c
}

func (f *folder) AddBool(target common.BoolProperties, path string) (*BooleanController, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: %q on nil target", ErrUnknownProperty, path)
	}
	binding, ok := target.BoolProperty(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, path)
	}
	return f.AddBoolean(lastSegment(path), binding), nil
}

func (f *folder) AddBoolean(name string, binding common.BoolBinding) *BooleanController {
	c := newBooleanController(name, binding)
	f.children = append(f.children, c)
	return c
}

func (f *folder) Open() {
	f.closed = false
}

func (f *folder) Close() {
	f.closed = true
}

func (f *folder) Closed() bool {
	return f.closed
}

func (f *folder) toggle() {
	f.closed = !f.closed
}

func (f *folder) Folder(title string) Folder {
	for _, child := range f.children {
		if sub, ok := child.(*folder); ok && sub.title == title {
			return sub
		}
	}
	return nil
}

func (f *folder) Controller(name string) Controller {
	for _, c := range f.Controllers() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func (f *folder) Controllers() []Controller {
	var out []Controller
	for _, child := range f.children {
		if c, ok := child.(Controller); ok {
			out = append(out, c)
		}
	}
	return out
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}

type gui struct {
	*folder

	width          int
	margin         int
	hidden         bool
	viewportWidth  int
	viewportHeight int

	// pointer state
	pressed  map[common.MouseButton]bool
	dragging Controller
	dragRect image.Rectangle

	canvas *image.RGBA
}

var _ GUI = &gui{}

// New creates a root panel titled "Controls", 245 logical pixels wide, anchored
// 15 pixels from the right edge.
//
// Parameters:
//   - options: functional options to configure the panel
//
// Returns:
//   - GUI: the root panel
func New(options ...GUIBuilderOption) GUI {
	g := &gui{
		folder:         newFolder("Controls"),
		width:          245,
		margin:         15,
		viewportWidth:  800,
		viewportHeight: 600,
		pressed:        make(map[common.MouseButton]bool),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *gui) Width() int {
	return g.width
}

func (g *gui) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		g.viewportWidth, g.viewportHeight = width, height
	}
}

func (g *gui) SetHidden(hidden bool) {
	g.hidden = hidden
}

func (g *gui) Hidden() bool {
	return g.hidden
}

func (g *gui) Bounds() image.Rectangle {
	rows := g.rows()
	h := 0
	if n := len(rows); n > 0 {
		h = rows[n-1].rect.Max.Y
	}
	x0 := g.viewportWidth - g.width - g.margin
	return image.Rect(x0, 0, x0+g.width, h)
}

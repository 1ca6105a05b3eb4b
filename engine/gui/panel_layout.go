package gui

import "image"

// Panel metrics in logical pixels.
const (
	titleHeight  = 24
	rowHeight    = 24
	folderIndent = 7
	rowPadding   = 6
	nameFraction = 0.4
	valueBoxW    = 52
	widgetGap    = 4
)

type rowKind int

const (
	rowTitle rowKind = iota
	rowControl
)

// row is one laid-out line of the panel in panel-local coordinates.
type row struct {
	kind   rowKind
	folder *folder
	ctrl   Controller
	depth  int
	rect   image.Rectangle
}

func (f *folder) appendRows(rows []row, x, y, width, depth int) ([]row, int) {
	rows = append(rows, row{kind: rowTitle, folder: f, depth: depth, rect: image.Rect(x, y, x+width, y+titleHeight)})
	y += titleHeight
	if f.closed {
		return rows, y
	}
	cx, cw := x, width
	if depth > 0 {
		cx, cw = x+folderIndent, width-folderIndent
	}
	for _, child := range f.children {
		rows, y = child.appendRows(rows, cx, y, cw, depth+1)
	}
	return rows, y
}

func (c *NumberController) appendRows(rows []row, x, y, width, depth int) ([]row, int) {
	return appendControlRow(rows, c, x, y, width, depth)
}

func (c *BooleanController) appendRows(rows []row, x, y, width, depth int) ([]row, int) {
	return appendControlRow(rows, c, x, y, width, depth)
}

func appendControlRow(rows []row, c Controller, x, y, width, depth int) ([]row, int) {
	rows = append(rows, row{kind: rowControl, ctrl: c, depth: depth, rect: image.Rect(x, y, x+width, y+rowHeight)})
	return rows, y + rowHeight
}

// rows lays out the whole panel.
func (g *gui) rows() []row {
	rows, _ := g.folder.appendRows(nil, 0, 0, g.width, 0)
	return rows
}

// widgetRect is the area right of the label, inset vertically.
func widgetRect(r image.Rectangle) image.Rectangle {
	nameW := int(float32(r.Dx()) * nameFraction)
	return image.Rect(r.Min.X+nameW, r.Min.Y+2, r.Max.X-rowPadding, r.Max.Y-2)
}

// numberWidgets splits a number row into the value box and, when present, the
// slider to its right.
func numberWidgets(r image.Rectangle, slider bool) (box, bar image.Rectangle) {
	w := widgetRect(r)
	if !slider {
		return w, image.Rectangle{}
	}
	box = image.Rect(w.Min.X, w.Min.Y, min(w.Min.X+valueBoxW, w.Max.X), w.Max.Y)
	bar = image.Rect(box.Max.X+widgetGap, w.Min.Y, w.Max.X, w.Max.Y)
	return box, bar
}

package gui

import (
	"image"

	"github.com/Carmen-Shannon/oxy-shadows/common"
)

// hit returns the row under panel-local point (x, y).
func (g *gui) hit(x, y float32) (row, bool) {
	pt := image.Pt(int(x), int(y))
	for _, rw := range g.rows() {
		if pt.In(rw.rect) {
			return rw, true
		}
	}
	return row{}, false
}

func (g *gui) PointerDown(button common.MouseButton, x, y float32) bool {
	bounds := g.Bounds()
	if g.hidden || !image.Pt(int(x), int(y)).In(bounds) {
		return false
	}
	g.pressed[button] = true
	if button != common.MouseButtonLeft {
		return true
	}

	lx, ly := x-float32(bounds.Min.X), y-float32(bounds.Min.Y)
	rw, ok := g.hit(lx, ly)
	if !ok {
		return true
	}
	switch rw.kind {
	case rowTitle:
		rw.folder.toggle()
	case rowControl:
		if rw.ctrl.press(lx, rw.rect) {
			g.dragging, g.dragRect = rw.ctrl, rw.rect
		}
	}
	return true
}

func (g *gui) PointerMove(x, y float32) bool {
	if g.dragging != nil {
		g.dragging.drag(x-float32(g.Bounds().Min.X), g.dragRect)
		return true
	}
	return len(g.pressed) > 0
}

func (g *gui) PointerUp(button common.MouseButton, x, y float32) bool {
	if !g.pressed[button] {
		return false
	}
	delete(g.pressed, button)
	if button == common.MouseButtonLeft {
		g.dragging = nil
	}
	return true
}

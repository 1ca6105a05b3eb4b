package shadows

import (
	"image"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/window"
)

// bindInput routes window input to the panel first and the orbit controls second,
// and replaces the engine's resize callback so the panel follows the viewport.
func (a *App) bindInput(w window.Window) {
	w.SetMouseDownCallback(a.PointerDown)
	w.SetMouseUpCallback(a.PointerUp)
	w.SetMouseMoveCallback(a.PointerMove)
	w.SetScrollCallback(a.Scroll)
	w.SetKeyDownCallback(a.KeyDown)
	w.SetResizeCallback(func(width, height int) {
		a.Resize(width, height, w.ContentScale())
	})
}

// PointerDown handles a button press at logical coordinates (x, y).
func (a *App) PointerDown(button common.MouseButton, x, y float32) {
	a.pointerX, a.pointerY = x, y
	if a.Panel.PointerDown(button, x, y) {
		return
	}
	a.Controls.PointerDown(button, x, y)
}

// PointerMove handles pointer motion.
func (a *App) PointerMove(x, y float32) {
	a.pointerX, a.pointerY = x, y
	if a.Panel.PointerMove(x, y) {
		return
	}
	a.Controls.PointerMove(x, y)
}

// PointerUp handles a button release. The controls always see the release so an
// orbit drag never sticks.
func (a *App) PointerUp(button common.MouseButton, x, y float32) {
	a.Panel.PointerUp(button, x, y)
	a.Controls.PointerUp(button)
}

// Scroll dollies the camera unless the pointer is over the panel.
func (a *App) Scroll(delta float32) {
	if a.overPanel() {
		return
	}
	a.Controls.Zoom(delta)
}

func (a *App) overPanel() bool {
	if a.Panel.Hidden() {
		return false
	}
	return image.Pt(int(a.pointerX), int(a.pointerY)).In(a.Panel.Bounds())
}

// KeyDown handles the demo shortcuts: Escape quits, H toggles the panel and P
// toggles profiler output.
func (a *App) KeyDown(code uint32) {
	switch code {
	case common.KeyEsc:
		a.Engine.Quit()
	case common.KeyH:
		a.Panel.SetHidden(!a.Panel.Hidden())
	case common.KeyP:
		a.profiling = !a.profiling
		if a.profiling {
			a.Engine.EnableProfiler()
		} else {
			a.Engine.DisableProfiler()
		}
		a.logger.Info("profiler toggled", slog.Bool("enabled", a.profiling))
	}
}

package gui

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Panel colors.
var (
	colorBackground = color.RGBA{0x1f, 0x1f, 0x1f, 0xff}
	colorTitle      = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorText       = color.RGBA{0xeb, 0xeb, 0xeb, 0xff}
	colorWidget     = color.RGBA{0x42, 0x42, 0x42, 0xff}
	colorNumber     = color.RGBA{0x2c, 0xc9, 0xff, 0xff}
)

// textBaseline is the baseline offset of basicfont.Face7x13 inside a row.
const textBaseline = 16

// painter draws primitives onto the panel canvas.
type painter struct {
	dst  *image.RGBA
	face font.Face
}

func (p *painter) fill(r image.Rectangle, c color.Color) {
	draw.Draw(p.dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// text draws s with its baseline at y, truncated to maxWidth pixels.
func (p *painter) text(x, y int, s string, c color.Color, maxWidth int) {
	s = p.fit(s, maxWidth)
	d := font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(c),
		Face: p.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textRight draws s right-aligned against right.
func (p *painter) textRight(right, y int, s string, c color.Color, maxWidth int) {
	s = p.fit(s, maxWidth)
	w := font.MeasureString(p.face, s).Ceil()
	p.text(right-w, y, s, c, maxWidth)
}

func (p *painter) fit(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	for len(s) > 0 && font.MeasureString(p.face, s).Ceil() > maxWidth {
		s = s[:len(s)-1]
	}
	return s
}

// caret draws a small triangle pointing right (closed) or down (open).
func (p *painter) caret(x, y int, open bool, c color.Color) {
	const size = 4
	for i := 0; i <= size; i++ {
		if open {
			p.fill(image.Rect(x+i, y+i, x+2*size-i+1, y+i+1), c)
		} else {
			p.fill(image.Rect(x+i, y+i, x+i+1, y+2*size-i+1), c)
		}
	}
}

func (c *NumberController) draw(p *painter, r image.Rectangle) {
	drawLabel(p, r, c.name)
	box, bar := numberWidgets(r, c.hasSlider())
	p.fill(box, colorWidget)
	p.text(box.Min.X+3, r.Min.Y+textBaseline, c.format(), colorNumber, box.Dx()-6)
	if !c.hasSlider() || bar.Dx() <= 0 {
		return
	}
	p.fill(bar, colorWidget)
	t := (c.Value() - c.min) / (c.max - c.min)
	t = max(0, min(1, t))
	filled := bar
	filled.Max.X = bar.Min.X + int(t*float64(bar.Dx())+0.5)
	p.fill(filled, colorNumber)
}

func (c *BooleanController) draw(p *painter, r image.Rectangle) {
	drawLabel(p, r, c.name)
	w := widgetRect(r)
	box := image.Rect(w.Min.X, w.Min.Y+2, w.Min.X+16, w.Min.Y+18)
	p.fill(box, colorWidget)
	if c.Value() {
		p.fill(box.Inset(4), colorText)
	}
}

func drawLabel(p *painter, r image.Rectangle, name string) {
	w := widgetRect(r)
	p.text(r.Min.X+rowPadding, r.Min.Y+textBaseline, name, colorText, w.Min.X-r.Min.X-rowPadding-4)
}

func drawTitle(p *painter, rw row) {
	p.fill(rw.rect, colorTitle)
	p.caret(rw.rect.Min.X+rowPadding, rw.rect.Min.Y+8, !rw.folder.closed, colorText)
	p.text(rw.rect.Min.X+rowPadding+14, rw.rect.Min.Y+textBaseline, rw.folder.title, colorText, rw.rect.Dx()-rowPadding*2-14)
}

// render paints the panel at logical size and returns it.
func (g *gui) render() *image.RGBA {
	rows := g.rows()
	h := 0
	if n := len(rows); n > 0 {
		h = rows[n-1].rect.Max.Y
	}
	bounds := image.Rect(0, 0, g.width, h)
	if g.canvas == nil || g.canvas.Rect != bounds {
		g.canvas = image.NewRGBA(bounds)
	}
	p := &painter{dst: g.canvas, face: basicfont.Face7x13}
	p.fill(bounds, colorBackground)
	for _, rw := range rows {
		switch rw.kind {
		case rowTitle:
			drawTitle(p, rw)
		case rowControl:
			rw.ctrl.draw(p, rw.rect)
		}
	}
	return g.canvas
}

func (g *gui) Draw(dst *image.RGBA, pixelRatio float32) {
	if dst == nil || g.hidden {
		return
	}
	panel := g.render()
	origin := g.Bounds().Min
	if pixelRatio <= 0 || pixelRatio == 1 {
		draw.Draw(dst, panel.Bounds().Add(origin), panel, image.Point{}, draw.Over)
		return
	}
	target := image.Rect(
		int(float32(origin.X)*pixelRatio),
		int(float32(origin.Y)*pixelRatio),
		int(float32(origin.X+panel.Rect.Dx())*pixelRatio),
		int(float32(origin.Y+panel.Rect.Dy())*pixelRatio),
	)
	draw.ApproxBiLinear.Scale(dst, target, panel, panel.Bounds(), draw.Over, nil)
}

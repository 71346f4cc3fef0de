// Package hud draws a small text overlay onto an RGBA frame with tinyfont.
package hud

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	lineHeight = 12
	baseline   = 9
	padding    = 2
)

var (
	textColor  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelColor = color.RGBA{R: 0x10, G: 0x10, B: 0x20, A: 0xff}
)

// Canvas adapts a row-major RGBA8888 buffer to drivers.Displayer.
type Canvas struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
}

var _ drivers.Displayer = (*Canvas)(nil)

func (c *Canvas) Size() (x, y int16) { return int16(c.Width), int16(c.Height) }

// SetPixel writes c opaque; out-of-bounds writes are dropped.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || int(x) >= c.Width || int(y) >= c.Height {
		return
	}
	i := int(y)*c.Stride + int(x)*4
	if i+3 >= len(c.Pix) {
		return
	}
	c.Pix[i+0] = col.R
	c.Pix[i+1] = col.G
	c.Pix[i+2] = col.B
	c.Pix[i+3] = 0xff
}

// Display is a no-op: the owner of Pix presents it.
func (c *Canvas) Display() error { return nil }

func (c *Canvas) fillRect(x0, y0, x1, y1 int, col color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.SetPixel(int16(x), int16(y), col)
		}
	}
}

// Overlay renders lines of text in the top-left corner over a dark panel.
type Overlay struct {
	font tinyfont.Fonter
}

func New() *Overlay {
	return &Overlay{font: &proggy.TinySZ8pt7b}
}

// Draw paints lines onto c and returns the panel width and height in pixels.
func (o *Overlay) Draw(c *Canvas, lines ...string) (w, h int) {
	if len(lines) == 0 {
		return 0, 0
	}
	for _, s := range lines {
		_, outbox := tinyfont.LineWidth(o.font, s)
		if int(outbox) > w {
			w = int(outbox)
		}
	}
	w += 2 * padding
	h = len(lines)*lineHeight + 2*padding

	c.fillRect(0, 0, w, h, panelColor)
	for i, s := range lines {
		y := int16(padding + i*lineHeight + baseline)
		tinyfont.WriteLine(c, o.font, padding, y, s, textColor)
	}
	return w, h
}

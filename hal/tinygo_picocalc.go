//go:build tinygo && baremetal && picocalc

package hal

import "boxdemo/world"

// The PicoCalc panel is 320x320; the canvas is letterboxed vertically.
const (
	picoCalcPanelW = 320
	picoCalcPanelH = 320
)

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New(opts Options) HAL {
	fb := newPicoCalcFramebuffer(world.Width, world.Height)
	h := newTinyGoHAL(opts, fb)

	lcd, err := initILI9488()
	if err != nil {
		h.logger.Error("display init failed", "err", err)
		return h
	}
	fb.lcd = lcd
	fb.clearPanel(0, 0, 0)
	return h
}

// picoCalcFramebuffer keeps an RGBA canvas and converts it to RGB565 on
// Present.
type picoCalcFramebuffer struct {
	w   int
	h   int
	buf []byte
	row []byte

	lcd *ili9488
}

func newPicoCalcFramebuffer(w, h int) *picoCalcFramebuffer {
	return &picoCalcFramebuffer{
		w:   w,
		h:   h,
		buf: make([]byte, w*h*4),
		row: make([]byte, w*2),
	}
}

func (f *picoCalcFramebuffer) Width() int          { return f.w }
func (f *picoCalcFramebuffer) Height() int         { return f.h }
func (f *picoCalcFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *picoCalcFramebuffer) StrideBytes() int    { return f.w * 4 }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf }

func (f *picoCalcFramebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	x0 := (picoCalcPanelW - f.w) / 2
	y0 := (picoCalcPanelH - f.h) / 2
	stride := f.w * 4
	return f.lcd.blitRows(uint16(x0), uint16(y0), f.w, f.h, func(y int) []byte {
		rgbaToRGB565BE(f.row, f.buf[y*stride:(y+1)*stride])
		return f.row
	})
}

func (f *picoCalcFramebuffer) clearPanel(r, g, b uint8) {
	p := rgb565(r, g, b)
	row := make([]byte, picoCalcPanelW*2)
	for i := 0; i < len(row); i += 2 {
		row[i], row[i+1] = byte(p>>8), byte(p)
	}
	_ = f.lcd.blitRows(0, 0, picoCalcPanelW, picoCalcPanelH, func(int) []byte { return row })
}

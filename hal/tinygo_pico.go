//go:build tinygo && baremetal && !picocalc

package hal

import "boxdemo/world"

// New returns a bare Pico HAL: UART logging and an off-screen framebuffer.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New(opts Options) HAL {
	return newTinyGoHAL(opts, newMemFramebuffer(world.Width, world.Height))
}

// memFramebuffer is an RGBA framebuffer with nowhere to present to.
type memFramebuffer struct {
	w   int
	h   int
	buf []byte
}

func newMemFramebuffer(w, h int) *memFramebuffer {
	return &memFramebuffer{w: w, h: h, buf: make([]byte, w*h*4)}
}

func (f *memFramebuffer) Width() int          { return f.w }
func (f *memFramebuffer) Height() int         { return f.h }
func (f *memFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *memFramebuffer) StrideBytes() int    { return f.w * 4 }
func (f *memFramebuffer) Buffer() []byte      { return f.buf }
func (f *memFramebuffer) Present() error      { return nil }

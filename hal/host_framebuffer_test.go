//go:build !tinygo

package hal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostFramebufferGeometry(t *testing.T) {
	fb := newHostFramebuffer(320, 240)
	assert.Equal(t, 320, fb.Width())
	assert.Equal(t, 240, fb.Height())
	assert.Equal(t, PixelFormatRGBA8888, fb.Format())
	assert.Equal(t, 320*4, fb.StrideBytes())
	assert.Len(t, fb.Buffer(), 320*240*4)
}

func fill(buf []byte, r, g, b uint8) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = r, g, b, 0xFF
	}
}

func TestHostFramebufferPresentPublishesBackBuffer(t *testing.T) {
	fb := newHostFramebuffer(4, 2)
	fill(fb.Buffer(), 0x10, 0x20, 0x30)

	out := make([]byte, len(fb.Buffer()))
	assert.Equal(t, uint64(0), fb.snapshot(out))
	assert.Equal(t, make([]byte, len(out)), out, "nothing presented yet")

	require.NoError(t, fb.Present())
	assert.Equal(t, uint64(1), fb.snapshot(out))
	for i := 0; i < len(out); i += 4 {
		assert.Equal(t, []byte{0x10, 0x20, 0x30, 0xFF}, out[i:i+4])
	}

	// Drawing after Present does not leak into the front buffer.
	fill(fb.Buffer(), 0xFF, 0, 0)
	fb.snapshot(out)
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0xFF}, out[:4])
}

func TestPixelFormatBytesPerPixel(t *testing.T) {
	assert.Equal(t, 2, PixelFormatRGB565.BytesPerPixel())
	assert.Equal(t, 4, PixelFormatRGBA8888.BytesPerPixel())
	assert.Equal(t, 0, PixelFormat(0).BytesPerPixel())
	assert.Equal(t, "rgba8888", PixelFormatRGBA8888.String())
}

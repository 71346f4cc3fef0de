package hal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGB565(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint16
	}{
		{0, 0, 0, 0x0000},
		{0xFF, 0xFF, 0xFF, 0xFFFF},
		{0xFF, 0, 0, 0xF800},
		{0, 0xFF, 0, 0x07E0},
		{0, 0, 0xFF, 0x001F},
		{0x5e, 0x48, 0xe8, 0x5A5D},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rgb565(tt.r, tt.g, tt.b), "rgb565(%#x, %#x, %#x)", tt.r, tt.g, tt.b)
	}
}

func TestRGBAToRGB565BE(t *testing.T) {
	src := []byte{
		0xFF, 0, 0, 0xFF,
		0, 0, 0xFF, 0x00,
		0xFF, 0xFF, 0xFF, 0xFF,
	}

	dst := make([]byte, 6)
	assert.Equal(t, 3, rgbaToRGB565BE(dst, src))
	assert.Equal(t, []byte{0xF8, 0x00, 0x00, 0x1F, 0xFF, 0xFF}, dst)

	short := make([]byte, 3)
	assert.Equal(t, 1, rgbaToRGB565BE(short, src))
	assert.Equal(t, []byte{0xF8, 0x00, 0x00}, short)
}

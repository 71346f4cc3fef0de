package hal

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// rgbaToRGB565BE converts RGBA8888 pixels from src into big-endian RGB565
// in dst, which is the byte order SPI panels expect. Alpha is ignored.
// It returns the number of pixels converted.
func rgbaToRGB565BE(dst, src []byte) int {
	n := len(src) / 4
	if m := len(dst) / 2; m < n {
		n = m
	}
	for i := 0; i < n; i++ {
		p := rgb565(src[i*4], src[i*4+1], src[i*4+2])
		dst[i*2] = byte(p >> 8)
		dst[i*2+1] = byte(p)
	}
	return n
}

//go:build !tinygo && cgo

package hal

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostAudioRingDropsOverflow(t *testing.T) {
	a := &hostAudio{buf: make([]int16, 4)}

	assert.Equal(t, 3, a.WriteSamples([]int16{1, 2, 3}))
	assert.Equal(t, 1, a.WriteSamples([]int16{4, 5, 6}))
	assert.Equal(t, 0, a.WriteSamples([]int16{7}))

	p := make([]byte, 6*4)
	n, err := (&hostAudioReader{a: a}).Read(p)
	require.NoError(t, err)
	assert.Equal(t, len(p), n)

	want := []int16{1, 2, 3, 4, 0, 0}
	for i, s := range want {
		l := int16(uint16(p[i*4]) | uint16(p[i*4+1])<<8)
		r := int16(uint16(p[i*4+2]) | uint16(p[i*4+3])<<8)
		assert.Equal(t, s, l, "frame %d left", i)
		assert.Equal(t, s, r, "frame %d right", i)
	}

	// The ring has room again after the reader drained it.
	assert.Equal(t, 2, a.WriteSamples([]int16{-1, -2}))
}

func TestHostAudioStoppedReaderEOF(t *testing.T) {
	a := &hostAudio{buf: make([]int16, 4)}
	require.NoError(t, a.Stop())
	assert.Equal(t, 0, a.WriteSamples([]int16{1}))

	_, err := (&hostAudioReader{a: a}).Read(make([]byte, 8))
	assert.ErrorIs(t, err, io.EOF)
}

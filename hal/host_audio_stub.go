//go:build !tinygo && !cgo

package hal

// No audio backend without cgo; the HAL reports a nil Audio.
func newHostAudio() Audio { return nil }

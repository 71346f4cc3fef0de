//go:build !tinygo

package hal

import "boxdemo/world"

type hostHAL struct {
	logger Logger
	fb     *hostFramebuffer
	t      *hostTime
	aud    Audio
}

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Title string
	Scale int
	TPS   int
	HAL   Options
}

// New returns a host HAL implementation with a canvas-sized RGBA framebuffer.
func New(opts Options) HAL {
	return newHost(opts)
}

func newHost(opts Options) *hostHAL {
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	h := &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(world.Width, world.Height),
		t:      newHostTime(),
	}
	if opts.Sound {
		h.aud = newHostAudio()
	}
	return h
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Audio() Audio     { return h.aud }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Info(interface{}, ...interface{})  {}
func (nopLogger) Warn(interface{}, ...interface{})  {}
func (nopLogger) Error(interface{}, ...interface{}) {}

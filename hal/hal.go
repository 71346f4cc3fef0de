package hal

import "errors"

// Logger is the structured logger the HAL and the app write to.
//
// *log.Logger from github.com/charmbracelet/log satisfies it on host.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
	// PixelFormatRGBA8888 is 32bpp, bytes in R, G, B, A order.
	PixelFormatRGBA8888
)

// BytesPerPixel returns the size of one pixel, or 0 for an unknown format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGB565:
		return 2
	case PixelFormatRGBA8888:
		return 4
	default:
		return 0
	}
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB565:
		return "rgb565"
	case PixelFormatRGBA8888:
		return "rgba8888"
	default:
		return "unknown"
	}
}

// Framebuffer is a back buffer plus a "present" hook.
//
// Buffer is owned by the framebuffer and stays valid for its lifetime.
// Present publishes the current contents of Buffer to the output.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Time provides a base tick stream.
//
// The tick duration is one millisecond on every platform.
type Time interface {
	Ticks() <-chan uint64
}

// Audio is a mono PCM16 sink.
//
// WriteSamples never blocks: samples that do not fit are dropped and the
// number accepted is returned.
type Audio interface {
	Start(sampleRate uint32) error
	Stop() error
	SetVolume(vol uint8)
	WriteSamples(samples []int16) int
}

// App is what a runner drives: Step once per tick, Close once when the run
// ends for any reason.
type App interface {
	Step() error
	Close()
}

// StepFunc adapts a bare step function to App; its Close does nothing.
type StepFunc func() error

func (f StepFunc) Step() error { return f() }
func (StepFunc) Close()        {}

// Options selects the optional devices a HAL opens.
type Options struct {
	// Logger replaces the platform logger when set.
	Logger Logger
	// Sound opens an audio output. Host headless and terminal runners
	// ignore it.
	Sound bool
}

// HAL provides the only contact point between the program and the outside world.
//
// Audio may be nil when no output device is available.
type HAL interface {
	Logger() Logger
	Display() Display
	Time() Time
	Audio() Audio
}

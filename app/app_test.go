package app

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	goerrors "github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxdemo/hal"
	"boxdemo/world"
)

type fakeFramebuffer struct {
	w, h       int
	format     hal.PixelFormat
	buf        []byte
	presented  [][]byte
	presentErr error
}

func newFakeFramebuffer() *fakeFramebuffer {
	return &fakeFramebuffer{
		w:      world.Width,
		h:      world.Height,
		format: hal.PixelFormatRGBA8888,
		buf:    make([]byte, world.FrameBytes),
	}
}

func (f *fakeFramebuffer) Width() int              { return f.w }
func (f *fakeFramebuffer) Height() int             { return f.h }
func (f *fakeFramebuffer) Format() hal.PixelFormat { return f.format }
func (f *fakeFramebuffer) StrideBytes() int        { return f.w * 4 }
func (f *fakeFramebuffer) Buffer() []byte          { return f.buf }

func (f *fakeFramebuffer) Present() error {
	if f.presentErr != nil {
		return f.presentErr
	}
	f.presented = append(f.presented, append([]byte(nil), f.buf...))
	return nil
}

type fakeAudio struct {
	rate    uint32
	vol     uint8
	samples []int16
	err     error
}

func (a *fakeAudio) Start(rate uint32) error { a.rate = rate; return a.err }
func (a *fakeAudio) Stop() error             { return nil }
func (a *fakeAudio) SetVolume(v uint8)       { a.vol = v }

func (a *fakeAudio) WriteSamples(s []int16) int {
	a.samples = append(a.samples, s...)
	return len(s)
}

type fakeTime struct{ ch chan uint64 }

func (t fakeTime) Ticks() <-chan uint64 { return t.ch }

type logEntry struct {
	level, msg string
	keyvals    []interface{}
}

type fakeLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *fakeLogger) add(level string, msg interface{}, keyvals []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level, fmt.Sprint(msg), keyvals})
}

func (l *fakeLogger) Debug(msg interface{}, kv ...interface{}) { l.add("debug", msg, kv) }
func (l *fakeLogger) Info(msg interface{}, kv ...interface{})  { l.add("info", msg, kv) }
func (l *fakeLogger) Warn(msg interface{}, kv ...interface{})  { l.add("warn", msg, kv) }
func (l *fakeLogger) Error(msg interface{}, kv ...interface{}) { l.add("error", msg, kv) }

// last returns the keyvals of the most recent entry with msg as a map.
func (l *fakeLogger) last(msg string) map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if e.msg != msg {
			continue
		}
		m := make(map[string]interface{}, len(e.keyvals)/2)
		for j := 0; j+1 < len(e.keyvals); j += 2 {
			m[fmt.Sprint(e.keyvals[j])] = e.keyvals[j+1]
		}
		return m
	}
	return nil
}

func (l *fakeLogger) count(level, msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.level == level && e.msg == msg {
			n++
		}
	}
	return n
}

type fakeHAL struct {
	log   *fakeLogger
	fb    *fakeFramebuffer
	t     fakeTime
	audio hal.Audio
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		log: &fakeLogger{},
		fb:  newFakeFramebuffer(),
		t:   fakeTime{ch: make(chan uint64, 8)},
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) Display() hal.Display { return h }
func (h *fakeHAL) Time() hal.Time       { return h.t }
func (h *fakeHAL) Audio() hal.Audio     { return h.audio }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }

func TestStepUpdatesDrawsAndPresents(t *testing.T) {
	h := newFakeHAL()
	a := New(h, Config{})

	ref := world.New()
	want := make([]byte, world.FrameBytes)
	for i := 0; i < 3; i++ {
		require.NoError(t, a.Step())
		ref.Update()
		require.NoError(t, ref.Draw(want))
		require.Len(t, h.fb.presented, i+1)
		assert.True(t, bytes.Equal(want, h.fb.presented[i]), "frame %d differs from the reference raster", i)
	}
	assert.Equal(t, 1, h.log.count("info", "app started"))
}

func TestStepHUDOverlaysCorner(t *testing.T) {
	plain := newFakeHAL()
	withHUD := newFakeHAL()
	require.NoError(t, New(plain, Config{}).Step())
	require.NoError(t, New(withHUD, Config{HUD: true}).Step())

	a, b := plain.fb.presented[0], withHUD.fb.presented[0]
	assert.False(t, bytes.Equal(a[:4*8], b[:4*8]), "HUD did not touch the top-left corner")

	// Bottom row is far from the panel and must match the raw raster.
	last := (world.Height - 1) * world.Width * 4
	assert.Equal(t, a[last:], b[last:])
}

func TestStepBounceClicks(t *testing.T) {
	h := newFakeHAL()
	a := &fakeAudio{}
	h.audio = a
	app := New(h, Config{Sound: true, Volume: 128})
	assert.Equal(t, uint32(clickSampleRate), a.rate)
	assert.Equal(t, uint8(128), a.vol)

	// From (24,16) moving down-right the first bounce is the bottom edge.
	for i := 0; i < 200 && len(a.samples) == 0; i++ {
		require.NoError(t, app.Step())
	}
	require.NotEmpty(t, a.samples)
	assert.Len(t, a.samples, clickSampleRate*clickMillis/1000)
	assert.Equal(t, 1, h.log.count("debug", "bounce"))
}

func TestSoundWithoutAudioWarns(t *testing.T) {
	h := newFakeHAL()
	require.NoError(t, New(h, Config{Sound: true}).Step())
	assert.Equal(t, 1, h.log.count("warn", "sound requested but no audio output is available"))

	h = newFakeHAL()
	h.audio = &fakeAudio{err: errors.New("no device")}
	require.NoError(t, New(h, Config{Sound: true}).Step())
	assert.Equal(t, 1, h.log.count("warn", "audio start failed, sound disabled"))
}

func TestStepPresentError(t *testing.T) {
	h := newFakeHAL()
	boom := errors.New("surface lost")
	h.fb.presentErr = boom

	err := New(h, Config{}).Step()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "present: surface lost", err.Error())

	var ge *goerrors.Error
	require.ErrorAs(t, err, &ge)
	assert.Contains(t, string(ge.Stack()), "(*system).Step", "stack starts where the frame failed")
}

func TestCloseLogsFinalState(t *testing.T) {
	h := newFakeHAL()
	a := New(h, Config{})
	for i := 0; i < 5; i++ {
		require.NoError(t, a.Step())
	}
	a.Close()

	kv := h.log.last("app finished")
	require.NotNil(t, kv)
	assert.Equal(t, uint64(5), kv["frames"])
	assert.Equal(t, 29, kv["x"])
	assert.Equal(t, 21, kv["y"])
	assert.Equal(t, 1, kv["vx"])
	assert.Equal(t, 1, kv["vy"])
}

func TestNewRejectsMismatchedFramebuffer(t *testing.T) {
	h := newFakeHAL()
	h.fb.format = hal.PixelFormatRGB565
	assert.ErrorContains(t, New(h, Config{}).Step(), "unsupported pixel format rgb565")

	h = newFakeHAL()
	h.fb.w = 320
	h.fb.h = 320
	assert.ErrorContains(t, New(h, Config{}).Step(), "framebuffer is 320x320")
}

func TestStepDrainsTicks(t *testing.T) {
	h := newFakeHAL()
	s, err := newSystem(h, Config{})
	require.NoError(t, err)

	h.t.ch <- 1
	h.t.ch <- 2
	h.t.ch <- 2500
	require.NoError(t, s.Step())
	assert.Equal(t, uint64(2500), s.millis)
	assert.Equal(t, uint64(1), s.frames)
}

func TestClickWave(t *testing.T) {
	w := clickWave(441, 44100, 10)
	require.Len(t, w, 441)
	assert.Equal(t, int16(clickAmplitude), w[0])
	// 50 samples per half period.
	assert.Greater(t, w[49], int16(0))
	assert.Less(t, w[50], int16(0))
	assert.Equal(t, int16(0), w[len(w)-1]/100)
}

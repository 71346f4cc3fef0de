package app

import (
	"boxdemo/hal"
	"boxdemo/world"
)

const (
	clickSampleRate = 44100
	clickMillis     = 30
	clickAmplitude  = 6000
)

// clicker plays a short decaying square wave per bounce. A nil clicker is
// silent.
type clicker struct {
	out hal.Audio
	log hal.Logger

	x, y, corner []int16
}

func newClicker(out hal.Audio, vol uint8, log hal.Logger) *clicker {
	if out == nil {
		log.Warn("sound requested but no audio output is available")
		return nil
	}
	if err := out.Start(clickSampleRate); err != nil {
		log.Warn("audio start failed, sound disabled", "err", err)
		return nil
	}
	out.SetVolume(vol)
	return &clicker{
		out:    out,
		log:    log,
		x:      clickWave(660, clickSampleRate, clickMillis),
		y:      clickWave(440, clickSampleRate, clickMillis),
		corner: clickWave(880, clickSampleRate, clickMillis),
	}
}

func (c *clicker) play(r world.Reflect) {
	if c == nil {
		return
	}
	var wave []int16
	switch r {
	case world.ReflectX:
		wave = c.x
	case world.ReflectY:
		wave = c.y
	case world.ReflectX | world.ReflectY:
		wave = c.corner
	default:
		return
	}
	if n := c.out.WriteSamples(wave); n < len(wave) {
		c.log.Debug("click truncated", "written", n, "want", len(wave))
	}
}

// clickWave returns ms milliseconds of a square wave at freq Hz whose
// amplitude falls linearly to zero.
func clickWave(freq, rate, ms int) []int16 {
	n := rate * ms / 1000
	out := make([]int16, n)
	half := rate / (2 * freq)
	if half < 1 {
		half = 1
	}
	for i := range out {
		amp := clickAmplitude * (n - i) / n
		if (i/half)%2 == 1 {
			amp = -amp
		}
		out[i] = int16(amp)
	}
	return out
}

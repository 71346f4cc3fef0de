// Package app drives the bouncing box: one Update, Draw and Present per frame.
package app

import (
	"fmt"
	"time"

	goerrors "github.com/go-errors/errors"

	"boxdemo/hal"
	"boxdemo/hud"
	"boxdemo/internal/buildinfo"
	"boxdemo/world"
)

// Config selects the optional extras layered over the raw raster.
type Config struct {
	// HUD draws build id, frame counter and box position in the corner.
	HUD bool
	// Sound plays a click on every bounce when the HAL has audio.
	Sound bool
	// Volume is the audio volume, 0..255.
	Volume uint8
}

type system struct {
	log hal.Logger
	fb  hal.Framebuffer
	t   hal.Time
	w   *world.World

	hud    *hud.Overlay
	canvas *hud.Canvas
	click  *clicker

	frames  uint64
	bounces uint64
	millis  uint64
}

// New builds the app for h. Each Step advances the world by one step,
// rasterizes it and presents the frame. A setup failure is returned by the
// first Step.
func New(h hal.HAL, cfg Config) hal.App {
	s, err := newSystem(h, cfg)
	if err != nil {
		return hal.StepFunc(func() error { return err })
	}
	return s
}

// Run steps the app at 60 Hz forever (TinyGo entrypoint).
func Run(h hal.HAL, cfg Config) {
	a := New(h, cfg)
	t := time.NewTicker(time.Second / 60)
	defer t.Stop()
	for range t.C {
		if err := a.Step(); err != nil {
			h.Logger().Error("step failed", "err", err)
			a.Close()
			select {}
		}
	}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	disp := h.Display()
	if disp == nil {
		return nil, fmt.Errorf("app: no display")
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return nil, fmt.Errorf("app: no framebuffer")
	}
	if fb.Format() != hal.PixelFormatRGBA8888 {
		return nil, fmt.Errorf("app: unsupported pixel format %s", fb.Format())
	}
	if fb.Width() != world.Width || fb.Height() != world.Height {
		return nil, fmt.Errorf("app: framebuffer is %dx%d, canvas is %dx%d",
			fb.Width(), fb.Height(), world.Width, world.Height)
	}

	s := &system{
		log: h.Logger(),
		fb:  fb,
		t:   h.Time(),
		w:   world.New(),
	}
	if cfg.HUD {
		s.hud = hud.New()
		s.canvas = &hud.Canvas{
			Pix:    fb.Buffer(),
			Width:  fb.Width(),
			Height: fb.Height(),
			Stride: fb.StrideBytes(),
		}
	}
	if cfg.Sound {
		s.click = newClicker(h.Audio(), cfg.Volume, s.log)
	}

	s.log.Info("app started",
		"build", buildinfo.Short(),
		"canvas", fmt.Sprintf("%dx%d", world.Width, world.Height),
		"hud", cfg.HUD,
		"sound", s.click != nil,
	)
	return s, nil
}

// Step runs one frame: Update, Draw, the optional HUD, then Present.
func (s *system) Step() error {
	s.drainTicks()

	if r := s.w.Update(); r != 0 {
		s.bounces++
		s.log.Debug("bounce", "axis", r, "x", s.w.X, "y", s.w.Y, "frame", s.frames)
		s.click.play(r)
	}

	if err := s.w.Draw(s.fb.Buffer()); err != nil {
		return goerrors.WrapPrefix(err, "draw", 0)
	}
	if s.hud != nil {
		s.hud.Draw(s.canvas,
			"boxdemo "+buildinfo.Short(),
			fmt.Sprintf("frame %d bounce %d", s.frames, s.bounces),
			fmt.Sprintf("box %d,%d t %ds", s.w.X, s.w.Y, s.millis/1000),
		)
	}
	if err := s.fb.Present(); err != nil {
		return goerrors.WrapPrefix(err, "present", 0)
	}
	s.frames++
	return nil
}

// Close logs where the box ended up.
func (s *system) Close() {
	s.log.Info("app finished",
		"frames", s.frames,
		"bounces", s.bounces,
		"x", s.w.X, "y", s.w.Y,
		"vx", s.w.VX, "vy", s.w.VY,
	)
}

// drainTicks consumes pending millisecond ticks without blocking.
func (s *system) drainTicks() {
	if s.t == nil {
		return
	}
	ch := s.t.Ticks()
	if ch == nil {
		return
	}
	for {
		select {
		case seq, ok := <-ch:
			if !ok {
				return
			}
			s.millis = seq
		default:
			return
		}
	}
}

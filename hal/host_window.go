//go:build !tinygo && cgo

package hal

import (
	"boxdemo/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer.
// It blocks until the window closes or a step returns an error.
func RunWindow(newApp func(HAL) App, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Title == "" {
		cfg.Title = "boxdemo"
	}

	h := newHost(cfg.HAL)
	a := newApp(h)

	g := &hostGame{h: h, app: a}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.TPS)

	err := ebiten.RunGame(g)
	a.Close()
	if a := h.Audio(); a != nil {
		if stopErr := a.Stop(); err == nil {
			err = stopErr
		}
	}
	return err
}

type hostGame struct {
	h     *hostHAL
	app   App
	fbImg *ebiten.Image
	pix   []byte

	outW, outH int
}

func (g *hostGame) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.h.logger.Info("window close requested")
		return ebiten.Termination
	}
	g.h.t.step(1)
	return g.app.Step()
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.pix = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshot(g.pix)
	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

// Layout keeps the logical screen at canvas size; ebiten scales it to
// whatever size the window is resized to.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.outW || outsideHeight != g.outH {
		g.outW, g.outH = outsideWidth, outsideHeight
		g.h.logger.Debug("window resized", "width", outsideWidth, "height", outsideHeight)
	}
	return g.h.fb.width, g.h.fb.height
}

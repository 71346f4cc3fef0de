//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	goerrors "github.com/go-errors/errors"
	"golang.org/x/image/draw"
)

// TerminalConfig controls the terminal runner.
type TerminalConfig struct {
	Hz  int
	HAL Options
}

// RunTerminal presents the framebuffer in the controlling terminal using
// half-block cells, two pixels per cell. Esc, q or Ctrl-C end the run.
func RunTerminal(ctx context.Context, newApp func(HAL) App, cfg TerminalConfig) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return goerrors.WrapPrefix(err, "terminal", 0)
	}
	if err := scr.Init(); err != nil {
		return goerrors.WrapPrefix(err, "terminal: init", 0)
	}
	defer scr.Fini()
	return runTerminal(ctx, scr, newApp, cfg)
}

func runTerminal(ctx context.Context, scr tcell.Screen, newApp func(HAL) App, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	cfg.HAL.Sound = false

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid terminal hz: %d", cfg.Hz)
	}

	h := newHost(cfg.HAL)
	a := newApp(h)
	defer a.Close()
	tr := newTermRenderer(h.fb)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go scr.ChannelEvents(events, quit)
	defer close(quit)

	scr.HideCursor()
	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					h.logger.Info("terminal quit requested")
					return nil
				}
			case *tcell.EventResize:
				w, hh := ev.Size()
				h.logger.Debug("terminal resized", "cols", w, "rows", hh)
				scr.Sync()
			}

		case <-t.C:
			h.t.step(1)
			if err := a.Step(); err != nil {
				return err
			}
			tr.render(scr)
			scr.Show()
		}
	}
}

// termRenderer scales the presented frame to the screen with nearest
// neighbour sampling, keeping the aspect ratio.
type termRenderer struct {
	fb     *hostFramebuffer
	src    *image.RGBA
	scaled *image.RGBA
}

func newTermRenderer(fb *hostFramebuffer) *termRenderer {
	return &termRenderer{
		fb: fb,
		src: &image.RGBA{
			Pix:    make([]byte, len(fb.buf)),
			Stride: fb.stride,
			Rect:   image.Rect(0, 0, fb.width, fb.height),
		},
	}
}

// fitRect returns the largest rectangle with the aspect of w×h that fits a
// cols×(rows*2) pixel grid, centered.
func fitRect(cols, rows, w, h int) image.Rectangle {
	gw, gh := cols, rows*2
	if gw <= 0 || gh <= 0 || w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	dw, dh := gw, gw*h/w
	if dh > gh {
		dw, dh = gh*w/h, gh
	}
	x0 := (gw - dw) / 2
	y0 := ((gh - dh) / 2) &^ 1
	return image.Rect(x0, y0, x0+dw, y0+dh)
}

func (r *termRenderer) render(scr tcell.Screen) {
	cols, rows := scr.Size()
	dst := fitRect(cols, rows, r.fb.width, r.fb.height)
	scr.Clear()
	if dst.Empty() {
		return
	}

	r.fb.snapshot(r.src.Pix)
	if r.scaled == nil || r.scaled.Bounds() != dst {
		r.scaled = image.NewRGBA(dst)
	}
	draw.NearestNeighbor.Scale(r.scaled, dst, r.src, r.src.Bounds(), draw.Src, nil)

	for y := dst.Min.Y; y < dst.Max.Y; y += 2 {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			top := r.scaled.RGBAAt(x, y)
			bottom := top
			if y+1 < dst.Max.Y {
				bottom = r.scaled.RGBAAt(x, y+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			scr.SetContent(x, y/2, '▀', nil, style)
		}
	}
}

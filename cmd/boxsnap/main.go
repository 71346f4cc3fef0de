// boxsnap renders the bouncing box without a display and writes the frames
// to a PNG (one frame) or an animated GIF.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"boxdemo/hud"
	"boxdemo/internal/buildinfo"
	"boxdemo/world"
)

func main() {
	var (
		outPath = flag.String("out", "", "Output file (.png or .gif).")
		skip    = flag.Int("skip", 0, "Updates to run before the first frame.")
		count   = flag.Int("count", 1, "Frames to write (.gif only).")
		every   = flag.Int("every", 1, "Updates between frames.")
		scale   = flag.Int("scale", 1, "Integer upscale factor.")
		withHUD = flag.Bool("hud", false, "Draw the overlay.")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: boxsnap -out frame.png [-skip N] [-scale S] [-hud]\n       boxsnap -out anim.gif -count K [-every E] [-skip N] [-scale S]")
	}
	if *skip < 0 || *count < 1 || *every < 1 || *scale < 1 {
		fatalf("skip must be >= 0 and count, every, scale >= 1")
	}

	ext, err := outputFormat(*outPath, *count)
	if err != nil {
		fatalf("%v", err)
	}

	frames, err := render(snapOptions{skip: *skip, count: *count, every: *every, scale: *scale, hud: *withHUD})
	if err != nil {
		fatalf("render: %v", err)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fatalf("create: %v", err)
	}
	if ext == ".png" {
		err = png.Encode(f, frames[0])
	} else {
		err = encodeGIF(f, frames)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fatalf("write %s: %v", *outPath, err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// outputFormat returns the lower-cased extension of path once it is known
// to hold count frames.
func outputFormat(path string, count int) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		if count != 1 {
			return "", fmt.Errorf("png output holds one frame; use .gif for -count %d", count)
		}
	case ".gif":
	default:
		return "", fmt.Errorf("unknown output format %q (want .png or .gif)", ext)
	}
	return ext, nil
}

type snapOptions struct {
	skip  int
	count int
	every int
	scale int
	hud   bool
}

func render(opts snapOptions) ([]*image.RGBA, error) {
	w := world.New()
	for i := 0; i < opts.skip; i++ {
		w.Update()
	}

	var overlay *hud.Overlay
	if opts.hud {
		overlay = hud.New()
	}

	frames := make([]*image.RGBA, 0, opts.count)
	for n := 0; n < opts.count; n++ {
		if n > 0 {
			for i := 0; i < opts.every; i++ {
				w.Update()
			}
		}

		img := image.NewRGBA(image.Rect(0, 0, world.Width, world.Height))
		if err := w.Draw(img.Pix); err != nil {
			return nil, err
		}
		if overlay != nil {
			overlay.Draw(&hud.Canvas{Pix: img.Pix, Width: world.Width, Height: world.Height, Stride: img.Stride},
				"boxsnap "+buildinfo.Short(),
				fmt.Sprintf("step %d", opts.skip+n*opts.every),
			)
		}
		frames = append(frames, upscale(img, opts.scale))
	}
	return frames, nil
}

func upscale(src *image.RGBA, s int) *image.RGBA {
	if s == 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*s, b.Dy()*s))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func rgba(c [world.BytesPerPixel]byte) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// gifPalette holds the raster colours exactly, plus greys for the overlay.
var gifPalette = color.Palette{
	rgba(world.BackgroundColor),
	rgba(world.BoxColor),
	color.RGBA{R: 0x10, G: 0x10, B: 0x20, A: 0xff},
	color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

func encodeGIF(out io.Writer, frames []*image.RGBA) error {
	anim := &gif.GIF{}
	for _, f := range frames {
		p := image.NewPaletted(f.Bounds(), gifPalette)
		draw.Draw(p, p.Bounds(), f, f.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, 2) // 1/50 s
	}
	return gif.EncodeAll(out, anim)
}

// Package world holds the bouncing-box simulation and its RGBA rasterizer.
//
// A World is owned by a single frame driver: call Update once per tick and
// Draw once per redraw, in that order. Neither method is safe for
// concurrent use.
package world

import (
	"errors"
	"fmt"
	"image"
)

const (
	// Width and Height are the canvas size in pixels.
	Width  = 320
	Height = 240

	// BoxSize is the side of the box in pixels.
	BoxSize = 64

	// BytesPerPixel is the size of one RGBA tuple.
	BytesPerPixel = 4

	// FrameBytes is the exact length Draw expects.
	FrameBytes = Width * Height * BytesPerPixel
)

var (
	// BoxColor fills pixels inside the box, BackgroundColor everything else.
	BoxColor        = [BytesPerPixel]byte{0x5e, 0x48, 0xe8, 0xff}
	BackgroundColor = [BytesPerPixel]byte{0x48, 0xb2, 0xe8, 0xff}
)

// ErrFrameSize is returned by Draw when the frame is not FrameBytes long.
var ErrFrameSize = errors.New("world: frame buffer length mismatch")

// Reflect reports which axes flipped direction during an Update.
type Reflect uint8

const (
	ReflectX Reflect = 1 << iota
	ReflectY
)

func (r Reflect) String() string {
	switch r {
	case 0:
		return "none"
	case ReflectX:
		return "x"
	case ReflectY:
		return "y"
	case ReflectX | ReflectY:
		return "xy"
	default:
		return fmt.Sprintf("Reflect(%d)", uint8(r))
	}
}

// World is the box position (top-left corner) and its per-step velocity.
// VX and VY are always +1 or -1.
type World struct {
	X, Y   int
	VX, VY int
}

// New returns the world in its start state.
func New() *World {
	return &World{X: 24, Y: 16, VX: 1, VY: 1}
}

// Update advances the box by one step.
//
// Edges are checked against the position before the move, so the box can
// overshoot a canvas edge by at most one pixel before heading back.
func (w *World) Update() Reflect {
	var r Reflect
	if w.X <= 0 || w.X+BoxSize > Width {
		w.VX = -w.VX
		r |= ReflectX
	}
	if w.Y <= 0 || w.Y+BoxSize > Height {
		w.VY = -w.VY
		r |= ReflectY
	}

	w.X += w.VX
	w.Y += w.VY
	return r
}

// Box returns the box rectangle in canvas coordinates.
func (w *World) Box() image.Rectangle {
	return image.Rect(w.X, w.Y, w.X+BoxSize, w.Y+BoxSize)
}

// Draw overwrites every pixel of frame, a row-major RGBA buffer of
// Width*Height pixels with the origin at the top left.
//
// The length is checked before anything is written.
func (w *World) Draw(frame []byte) error {
	if len(frame) != FrameBytes {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(frame), FrameBytes)
	}

	for i := 0; i < Width*Height; i++ {
		x := i % Width
		y := i / Width

		c := &BackgroundColor
		if x >= w.X && x < w.X+BoxSize && y >= w.Y && y < w.Y+BoxSize {
			c = &BoxColor
		}
		copy(frame[i*BytesPerPixel:i*BytesPerPixel+BytesPerPixel], c[:])
	}
	return nil
}

package io

import (
	"strings"

	"github.com/ezrec/chip8/cpu"
)

// Screen is the 64x32 monochrome display.
type Screen struct {
	Pixels [cpu.DISPLAY_HEIGHT][cpu.DISPLAY_WIDTH]bool

	dirty bool
}

// XorPixel toggles a pixel, returning its previous state.
func (sc *Screen) XorPixel(x, y int) (prev bool) {
	x = wrap(x, cpu.DISPLAY_WIDTH)
	y = wrap(y, cpu.DISPLAY_HEIGHT)

	prev = sc.Pixels[y][x]
	sc.Pixels[y][x] = !prev
	sc.dirty = true
	return
}

// Clear turns all pixels off.
func (sc *Screen) Clear() {
	sc.Pixels = [cpu.DISPLAY_HEIGHT][cpu.DISPLAY_WIDTH]bool{}
	sc.dirty = true
}

// Pixel returns the state of a pixel. Off-screen pixels are off.
func (sc *Screen) Pixel(x, y int) bool {
	if x < 0 || x >= cpu.DISPLAY_WIDTH || y < 0 || y >= cpu.DISPLAY_HEIGHT {
		return false
	}

	return sc.Pixels[y][x]
}

// Dirty reports whether the screen changed since the last call.
func (sc *Screen) Dirty() (dirty bool) {
	dirty = sc.dirty
	sc.dirty = false
	return
}

// String renders the screen one text line per row, '#' for lit pixels.
func (sc *Screen) String() string {
	var sb strings.Builder

	sb.Grow((cpu.DISPLAY_WIDTH + 1) * cpu.DISPLAY_HEIGHT)
	for _, row := range sc.Pixels {
		for _, lit := range row {
			if lit {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

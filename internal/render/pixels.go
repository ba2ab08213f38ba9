package render

import (
	"image/color"

	"falling-sand/internal/sand"
)

// SandColor is the fill used for sand particles.
var SandColor = color.RGBA{R: 255, G: 214, B: 0, A: 255}

// fillFrameRGBA paints a frame into buf, one RGBA pixel per cell: off for
// every cell, then on for each active particle. Particles outside the frame's
// dimensions are skipped.
func fillFrameRGBA(buf []byte, f sand.Frame, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	total := f.Rows * f.Cols
	for i := 0; i < total && i*4+3 < len(buf); i++ {
		base := i * 4
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
	for _, p := range f.ActiveParticles {
		row, col := p[0], p[1]
		if row < 0 || row >= f.Rows || col < 0 || col >= f.Cols {
			continue
		}
		base := (row*f.Cols + col) * 4
		if base+3 >= len(buf) {
			continue
		}
		buf[base+0] = uint8(rOn >> 8)
		buf[base+1] = uint8(gOn >> 8)
		buf[base+2] = uint8(bOn >> 8)
		buf[base+3] = uint8(aOn >> 8)
	}
}

// CellAt converts a pixel position to grid coordinates for the given cell
// size. ok is false for negative positions or a non-positive cell size.
func CellAt(x, y, cellSize int) (row, col int, ok bool) {
	if cellSize <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	return y / cellSize, x / cellSize, true
}

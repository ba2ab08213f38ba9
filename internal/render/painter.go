//go:build ebiten

package render

import (
	"image/color"

	"falling-sand/internal/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps a one-pixel-per-cell image in sync with the latest frame.
type GridPainter struct {
	rows, cols int
	img        *ebiten.Image
	buf        []byte
}

// NewGridPainter allocates a painter for a rows x cols grid.
func NewGridPainter(rows, cols int) *GridPainter {
	gp := &GridPainter{rows: rows, cols: cols, buf: make([]byte, 4*rows*cols)}
	gp.img = ebiten.NewImage(cols, rows)
	return gp
}

// Blit uploads f into the painter image and draws it scaled by cellSize.
func (gp *GridPainter) Blit(dst *ebiten.Image, f sand.Frame, on, off color.Color, cellSize int) {
	if f.Rows != gp.rows || f.Cols != gp.cols {
		return
	}
	fillFrameRGBA(gp.buf, f, on, off)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(cellSize), float64(cellSize))
	dst.DrawImage(gp.img, op)
}

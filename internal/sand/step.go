package sand

import (
	"fmt"

	"falling-sand/internal/core"
)

// Cell values.
const (
	Empty int8 = 0
	Sand  int8 = 1
	// water is reserved and has no behaviour yet.
	water int8 = 2
)

// Step computes the next frame from src into dst. dst must have the same
// dimensions as src and be cleared beforehand; src is never modified.
//
// Cells are visited in row-major order and every decision reads only src, so
// when two particles pick the same target cell the later write lands on an
// already-set cell and one particle is lost.
func Step(src, dst *core.Grid, coin Coin, frame uint64) {
	if !src.SameSize(dst) {
		panic(fmt.Sprintf("sand: step grids differ in size: %dx%d vs %dx%d", src.Rows, src.Cols, dst.Rows, dst.Cols))
	}
	rows, cols := src.Rows, src.Cols
	last := rows - 1
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if src.Get(row, col) != Sand {
				continue
			}
			if row == last {
				dst.Set(row, col, Sand)
				continue
			}
			if src.Get(row+1, col) == Empty {
				dst.Set(row+1, col, Sand)
				continue
			}

			// Blocked below: try the diagonals. Off-grid neighbours count as occupied.
			leftFree := col > 0 && src.Get(row+1, col-1) == Empty
			rightFree := col < cols-1 && src.Get(row+1, col+1) == Empty

			switch {
			case leftFree && rightFree:
				if coin.Left(row, col, frame) {
					dst.Set(row+1, col-1, Sand)
				} else {
					dst.Set(row+1, col+1, Sand)
				}
			case leftFree:
				dst.Set(row+1, col-1, Sand)
			case rightFree:
				dst.Set(row+1, col+1, Sand)
			default:
				dst.Set(row, col, Sand)
			}
		}
	}
}

package render

import (
	"image/color"
	"testing"

	"falling-sand/internal/sand"
)

func TestFillFrameRGBA(t *testing.T) {
	f := sand.Frame{Rows: 2, Cols: 3, ActiveParticles: [][2]int{{0, 1}, {1, 2}, {5, 5}}}
	buf := make([]byte, 4*6)
	for i := range buf {
		buf[i] = 0xAA
	}
	off := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	fillFrameRGBA(buf, f, SandColor, off)

	for i := 0; i < 6; i++ {
		px := color.RGBA{R: buf[i*4], G: buf[i*4+1], B: buf[i*4+2], A: buf[i*4+3]}
		want := off
		if i == 1 || i == 5 {
			want = SandColor
		}
		if px != want {
			t.Fatalf("pixel %d = %v, want %v", i, px, want)
		}
	}
}

func TestCellAt(t *testing.T) {
	row, col, ok := CellAt(9, 17, 4)
	if !ok || row != 4 || col != 2 {
		t.Fatalf("CellAt(9,17,4) = (%d,%d,%v), want (4,2,true)", row, col, ok)
	}
	if _, _, ok := CellAt(-1, 0, 4); ok {
		t.Fatal("negative x must be rejected")
	}
	if _, _, ok := CellAt(0, 0, 0); ok {
		t.Fatal("zero cell size must be rejected")
	}
}

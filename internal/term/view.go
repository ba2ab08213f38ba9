// Package term renders the sand simulation in a terminal with tcell.
package term

import (
	"fmt"

	"falling-sand/internal/sand"

	"github.com/gdamore/tcell/v2"
)

const particleRune = '█'

var (
	sandStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 214, 0))
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Canvas is the part of tcell.Screen the view draws on.
type Canvas interface {
	Clear()
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Draw paints f with one terminal cell per grid cell. The last terminal row
// holds the status line; particles beyond the visible area are clipped.
func Draw(c Canvas, f sand.Frame, status string) {
	c.Clear()
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return
	}
	visibleRows := h - 1
	for _, p := range f.ActiveParticles {
		row, col := p[0], p[1]
		if row >= visibleRows || col >= w {
			continue
		}
		c.SetContent(col, row, particleRune, nil, sandStyle)
	}
	x := 0
	for _, r := range status {
		if x >= w {
			break
		}
		c.SetContent(x, h-1, r, nil, statusStyle)
		x++
	}
}

// Status formats the status line.
func Status(frame uint64, f sand.Frame, paused bool) string {
	state := "running"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf(" frame %d  sand %d  grid %dx%d  %s  [space] pause [n] step [q] quit ",
		frame, f.Len(), f.Rows, f.Cols, state)
}

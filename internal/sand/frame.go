package sand

import "falling-sand/internal/core"

// Frame is the transfer object handed to renderers after each step: the grid
// dimensions and the coordinates of every sand cell in row-major order.
// Particles serialize as two-element [row, col] arrays.
type Frame struct {
	Rows            int      `json:"rows"`
	Cols            int      `json:"cols"`
	ActiveParticles [][2]int `json:"active_particles"`
}

// Collect builds a Frame from the occupied cells of g.
func Collect(g *core.Grid) Frame {
	f := Frame{Rows: g.Rows, Cols: g.Cols, ActiveParticles: make([][2]int, 0, g.Count(Sand))}
	cells := g.Cells()
	for i, v := range cells {
		if v == Sand {
			f.ActiveParticles = append(f.ActiveParticles, [2]int{i / g.Cols, i % g.Cols})
		}
	}
	return f
}

// Len returns the number of particles in the frame.
func (f Frame) Len() int { return len(f.ActiveParticles) }

package core

// World dimensions in pixels. Grid geometry is derived from these and the
// cell size.
const (
	WorldWidth  = 1200
	WorldHeight = 800
)

// Grid stores a rows x cols array of signed cell values in row-major order.
// Dimensions are fixed for the lifetime of the grid.
type Grid struct {
	Rows, Cols int
	CellSize   int
	data       []int8
}

// NewWorldGrid allocates a zeroed grid covering the fixed world area with
// square cells of the given pixel size. cellSize must be positive.
func NewWorldGrid(cellSize int) *Grid {
	return NewGrid(WorldHeight/cellSize, WorldWidth/cellSize, cellSize)
}

// NewGrid allocates a zeroed grid with explicit dimensions.
func NewGrid(rows, cols, cellSize int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{Rows: rows, Cols: cols, CellSize: cellSize, data: make([]int8, rows*cols)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []int8 { return g.data }

// Get returns the value at (row, col). No bounds checking is performed.
func (g *Grid) Get(row, col int) int8 { return g.data[row*g.Cols+col] }

// Set writes v at (row, col). No bounds checking is performed.
func (g *Grid) Set(row, col int, v int8) { g.data[row*g.Cols+col] = v }

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// SameSize reports whether both grids have identical dimensions.
func (g *Grid) SameSize(o *Grid) bool { return g.Rows == o.Rows && g.Cols == o.Cols }

// Count returns the number of cells holding v.
func (g *Grid) Count(v int8) int {
	n := 0
	for _, c := range g.data {
		if c == v {
			n++
		}
	}
	return n
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

package sand

import (
	"errors"
	"fmt"

	"falling-sand/internal/core"
)

// ErrOutOfBounds is returned when a placement targets a cell outside the grid.
var ErrOutOfBounds = errors.New("coordinates out of bounds")

// Simulation owns the double-buffered grids. It is not safe for concurrent
// use; one owner drives it from one goroutine at a time.
type Simulation struct {
	cfg   Config
	cur   *core.Grid
	nxt   *core.Grid
	coin  Coin
	frame uint64
}

// New allocates both buffers for cfg. Invalid cell sizes fall back to the
// default.
func New(cfg Config) *Simulation {
	if cfg.CellSize <= 0 {
		cfg.CellSize = DefaultConfig().CellSize
	}
	return NewWithGrid(cfg, core.NewWorldGrid(cfg.CellSize), cfg.coin())
}

// NewWithGrid wraps an existing grid as the current buffer and tie-breaks
// with coin. The next buffer is allocated to match.
func NewWithGrid(cfg Config, g *core.Grid, coin Coin) *Simulation {
	return &Simulation{
		cfg:  cfg,
		cur:  g,
		nxt:  core.NewGrid(g.Rows, g.Cols, g.CellSize),
		coin: coin,
	}
}

// Rows returns the grid height in cells.
func (s *Simulation) Rows() int { return s.cur.Rows }

// Cols returns the grid width in cells.
func (s *Simulation) Cols() int { return s.cur.Cols }

// CellSize returns the pixel edge length of a cell.
func (s *Simulation) CellSize() int { return s.cur.CellSize }

// FrameNumber returns how many steps have run.
func (s *Simulation) FrameNumber() uint64 { return s.frame }

// Current exposes the grid holding the latest frame.
func (s *Simulation) Current() *core.Grid { return s.cur }

// Place puts a sand particle at (row, col) in the current buffer.
func (s *Simulation) Place(row, col int) error {
	if !s.cur.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, row, col, s.cur.Rows, s.cur.Cols)
	}
	s.cur.Set(row, col, Sand)
	return nil
}

// Step advances one frame: clear next, evaluate, swap.
func (s *Simulation) Step() {
	s.nxt.Clear()
	Step(s.cur, s.nxt, s.coin, s.frame)
	s.cur, s.nxt = s.nxt, s.cur
	s.frame++
}

// Frame serializes the current buffer.
func (s *Simulation) Frame() Frame { return Collect(s.cur) }

// Parameters describes the running configuration.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("rows", "Rows", int64(s.cur.Rows)),
				core.IntParam("cols", "Columns", int64(s.cur.Cols)),
				core.IntParam("cell_size", "Cell size", int64(s.cur.CellSize)),
			},
		},
		{
			Name: "Tie-break",
			Params: []core.Parameter{
				core.StringParam("tie_break", "Mode", s.cfg.TieBreak),
				core.IntParam("seed", "Seed", s.cfg.Seed),
			},
		},
	}}
}

// Package bridge is the host-facing entry point to the sand simulation. A
// Bridge owns the simulation state explicitly; frontends create one and keep
// it for the life of the process.
package bridge

import (
	"errors"
	"fmt"

	"falling-sand/internal/core"
	"falling-sand/internal/sand"
)

// ErrNotInitialized is returned by calls made before Initialize.
var ErrNotInitialized = errors.New("simulation not initialized")

// Bridge lazily creates the simulation on Initialize and forwards host
// requests to it. The zero value is ready to use with the default config.
// A Bridge is not safe for concurrent use.
type Bridge struct {
	cfg sand.Config
	sim *sand.Simulation
}

// New returns a Bridge that will build its simulation from cfg.
func New(cfg sand.Config) *Bridge {
	return &Bridge{cfg: cfg}
}

// Initialize creates the simulation on first call and is a no-op afterwards.
func (b *Bridge) Initialize() {
	if b.sim != nil {
		return
	}
	cfg := b.cfg
	if cfg == (sand.Config{}) {
		cfg = sand.DefaultConfig()
	}
	b.sim = sand.New(cfg)
}

// PlaceParticle puts sand at (row, col) in the current buffer.
func (b *Bridge) PlaceParticle(row, col int) error {
	if b.sim == nil {
		return ErrNotInitialized
	}
	return b.sim.Place(row, col)
}

// AdvanceFrame runs one step and returns the resulting frame.
func (b *Bridge) AdvanceFrame() (sand.Frame, error) {
	if b.sim == nil {
		return sand.Frame{}, fmt.Errorf("failed to initialize simulation: %w", ErrNotInitialized)
	}
	b.sim.Step()
	return b.sim.Frame(), nil
}

// Snapshot returns the current frame without stepping.
func (b *Bridge) Snapshot() (sand.Frame, error) {
	if b.sim == nil {
		return sand.Frame{}, ErrNotInitialized
	}
	return b.sim.Frame(), nil
}

// FrameNumber returns how many frames have been advanced.
func (b *Bridge) FrameNumber() uint64 {
	if b.sim == nil {
		return 0
	}
	return b.sim.FrameNumber()
}

// CellSize returns the configured cell size in pixels.
func (b *Bridge) CellSize() int {
	if b.sim == nil {
		return 0
	}
	return b.sim.CellSize()
}

// Parameters describes the running simulation.
func (b *Bridge) Parameters() (core.ParameterSnapshot, error) {
	if b.sim == nil {
		return core.ParameterSnapshot{}, ErrNotInitialized
	}
	return b.sim.Parameters(), nil
}

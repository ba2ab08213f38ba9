//go:build ebiten

package app

import (
	"fmt"
	"image/color"

	"falling-sand/internal/bridge"
	"falling-sand/internal/render"
	"falling-sand/internal/sand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts the sand bridge to the ebiten.Game interface.
type Game struct {
	host    *bridge.Bridge
	painter *render.GridPainter
	frame   sand.Frame

	onColor  color.Color
	offColor color.Color

	cellSize int
	paused   bool
	tickOnce bool
}

// New constructs a Game around an initialized bridge.
func New(host *bridge.Bridge) (*Game, error) {
	frame, err := host.Snapshot()
	if err != nil {
		return nil, err
	}
	return &Game{
		host:     host,
		painter:  render.NewGridPainter(frame.Rows, frame.Cols),
		frame:    frame,
		onColor:  render.SandColor,
		offColor: color.Black,
		cellSize: host.CellSize(),
	}, nil
}

// Update handles input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if row, col, ok := render.CellAt(x, y, g.cellSize); ok {
			// Drags past the window edge are expected; ignore out-of-bounds.
			_ = g.host.PlaceParticle(row, col)
		}
	}

	if !g.paused || g.tickOnce {
		frame, err := g.host.AdvanceFrame()
		if err != nil {
			return err
		}
		g.frame = frame
		g.tickOnce = false
		return nil
	}

	frame, err := g.host.Snapshot()
	if err != nil {
		return err
	}
	g.frame = frame
	return nil
}

// Draw renders the latest frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.frame, g.onColor, g.offColor, g.cellSize)
	status := "running"
	if g.paused {
		status = "paused"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.0f  frame %d  sand %d  %s",
		ebiten.ActualTPS(), g.host.FrameNumber(), g.frame.Len(), status))
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.frame.Cols * g.cellSize, g.frame.Rows * g.cellSize
}

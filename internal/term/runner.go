package term

import (
	"time"

	"falling-sand/internal/bridge"
	"falling-sand/internal/core"

	"github.com/gdamore/tcell/v2"
)

// Runner drives a bridge from terminal input and redraws after each tick.
type Runner struct {
	screen tcell.Screen
	host   *bridge.Bridge
	pacer  *core.FixedStep

	paused   bool
	tickOnce bool
}

// NewRunner wires screen input to host, advancing at tps.
func NewRunner(screen tcell.Screen, host *bridge.Bridge, tps int) *Runner {
	return &Runner{screen: screen, host: host, pacer: core.NewFixedStep(tps)}
}

// HandleEvent applies one input event. It returns false when the user asked
// to quit.
func (r *Runner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				r.paused = !r.paused
			case 'n':
				r.tickOnce = true
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			// Clicks on the status line or past the grid are ignored.
			_ = r.host.PlaceParticle(y, x)
		}
	case *tcell.EventResize:
		r.screen.Sync()
	}
	return true
}

// Tick advances the simulation if it is due and redraws.
func (r *Runner) Tick() error {
	if r.pacer.ShouldStep() && (!r.paused || r.tickOnce) {
		if _, err := r.host.AdvanceFrame(); err != nil {
			return err
		}
		r.tickOnce = false
	}
	frame, err := r.host.Snapshot()
	if err != nil {
		return err
	}
	Draw(r.screen, frame, Status(r.host.FrameNumber(), frame, r.paused))
	r.screen.Show()
	return nil
}

// Run polls input and ticks until the user quits.
func (r *Runner) Run() error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(r.pacer.Interval() / 2)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !r.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := r.Tick(); err != nil {
				return err
			}
		}
	}
}

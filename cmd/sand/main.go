//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"falling-sand/internal/app"
	"falling-sand/internal/bridge"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	host := bridge.New(cfg.Sand())
	host.Initialize()

	game, err := app.New(host)
	if err != nil {
		log.Fatalf("create game: %v", err)
	}
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("falling-sand")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

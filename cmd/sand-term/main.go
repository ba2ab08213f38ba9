package main

import (
	"flag"
	"log"

	"falling-sand/internal/app"
	"falling-sand/internal/bridge"
	"falling-sand/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.CellSize = 16
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	host := bridge.New(cfg.Sand())
	host.Initialize()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init screen: %v", err)
	}
	screen.EnableMouse()

	runErr := term.NewRunner(screen, host, cfg.TPS).Run()
	screen.Fini()
	if runErr != nil {
		log.Fatal(runErr)
	}
}

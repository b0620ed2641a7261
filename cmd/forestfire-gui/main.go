//go:build ebiten

package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"forest-fire/internal/app"
	"forest-fire/internal/core"
	"forest-fire/internal/sims/forestfire"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(pflag.CommandLine)
	pflag.Parse()

	sim, err := core.Lookup(forestfire.Name, cfg.SimConfig())
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("forest-fire — " + sim.Name())
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/playmatatu/cuesim/internal/config"
	"github.com/playmatatu/cuesim/internal/game"
)

func main() {
	cfg := config.Load()
	sim := game.NewStandardSimulation(game.SettingsFromConfig(cfg.Physics))
	v := newViewer(sim)

	ebiten.SetWindowTitle("cuesim")
	ebiten.SetWindowSize(v.width, v.height)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/playmatatu/cuesim/internal/config"
	"github.com/playmatatu/cuesim/internal/game"
	"github.com/playmatatu/cuesim/internal/render"
)

// Runs one shot headless until every ball is at rest. Without -x/-y the cue
// ball breaks straight down the table.
func main() {
	aimX := flag.Float64("x", math.NaN(), "aim point x (world units)")
	aimY := flag.Float64("y", math.NaN(), "aim point y (world units)")
	pngPath := flag.String("png", "", "write the final table to this PNG file")
	maxTicks := flag.Int("max-ticks", 20000, "give up after this many ticks")
	events := flag.Bool("events", false, "print every contact")
	flag.Parse()

	physics, err := config.LoadPhysics(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read physics config %s: %v", flag.Arg(0), err)
	}

	sim := game.NewStandardSimulation(game.SettingsFromConfig(physics))
	cue := sim.CueBall()

	point := cue.Position.Minus(game.NewVec2(1, 0))
	if !math.IsNaN(*aimX) && !math.IsNaN(*aimY) {
		point = game.NewVec2(*aimX, *aimY)
	}
	if !sim.ApplyShot(point) {
		log.Fatalf("Shot toward (%.2f, %.2f) rejected", point.X, point.Y)
	}
	fmt.Printf("shot: direction=(%.4f, %.4f) power=%.2f\n", cue.Direction.X, cue.Direction.Y, cue.Power)

	ticks := sim.RunUntilRest(*maxTicks)
	contacts := sim.DrainEvents()
	if *events {
		for _, ev := range contacts {
			if ev.Type == game.ContactRail {
				fmt.Printf("tick %4d: ball %2d rail %-6s power=%.3f\n", ev.Tick, ev.BallNumber, ev.Rail, ev.Power)
			} else {
				fmt.Printf("tick %4d: ball %2d hit %2d     power=%.3f\n", ev.Tick, ev.BallNumber, ev.TargetNumber, ev.Power)
			}
		}
	}

	status := "at rest"
	if sim.IsAnyBallMoving() {
		status = "still moving"
	}
	fmt.Printf("%d ticks, %d contacts, %s\n", ticks, len(contacts), status)
	for _, b := range sim.Snapshot() {
		fmt.Printf("ball %2d %-8s (%8.2f, %8.2f)\n", b.Number, b.Color, b.X, b.Y)
	}

	if *pngPath != "" {
		f, err := os.Create(*pngPath)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *pngPath, err)
		}
		defer f.Close()
		if err := render.RenderPNG(f, sim.Table, sim.Snapshot()); err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
		fmt.Printf("wrote %s\n", *pngPath)
	}
}

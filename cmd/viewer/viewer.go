package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/playmatatu/cuesim/internal/game"
	"github.com/playmatatu/cuesim/internal/render"
	"golang.org/x/image/colornames"
)

// viewer advances the simulation once per ebiten update (60 TPS) and draws
// the table from the ball snapshot.
type viewer struct {
	sim       *game.Simulation
	width     int
	height    int
	prevClick bool
	shots     int
	contacts  int
	paused    bool
	prevPause bool
}

func newViewer(sim *game.Simulation) *viewer {
	t := sim.Table
	return &viewer{
		sim:    sim,
		width:  int(math.Ceil(t.Outer.X + t.Outer.Width)),
		height: int(math.Ceil(t.Outer.Y + t.Outer.Height)),
	}
}

func (v *viewer) Update() error {
	click := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if click && !v.prevClick {
		mx, my := ebiten.CursorPosition()
		if v.sim.ApplyShot(game.NewVec2(float64(mx), float64(my))) {
			v.shots++
		}
	}
	v.prevClick = click

	pause := ebiten.IsKeyPressed(ebiten.KeySpace)
	if pause && !v.prevPause {
		v.paused = !v.paused
	}
	v.prevPause = pause

	if ebiten.IsKeyPressed(ebiten.KeyR) && !v.sim.IsAnyBallMoving() {
		v.sim = game.NewStandardSimulation(v.sim.Settings)
		v.shots, v.contacts = 0, 0
	}

	if !v.paused {
		v.sim.Advance()
		v.contacts += len(v.sim.DrainEvents())
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	t := v.sim.Table
	screen.Fill(colornames.Black)
	vector.FillRect(screen, float32(t.Outer.X), float32(t.Outer.Y), float32(t.Outer.Width), float32(t.Outer.Height), colornames.Saddlebrown, false)
	vector.FillRect(screen, float32(t.Inner.X), float32(t.Inner.Y), float32(t.Inner.Width()), float32(t.Inner.Height()), colornames.Forestgreen, false)

	balls := v.sim.Snapshot()
	for _, b := range balls {
		drawBall(screen, b)
	}

	// aim line while the table is at rest
	if !v.sim.IsAnyBallMoving() && len(balls) > 0 {
		mx, my := ebiten.CursorPosition()
		cue := balls[0]
		vector.StrokeLine(screen, float32(mx), float32(my), float32(cue.X), float32(cue.Y), 1.5,
			color.RGBA{R: 255, G: 255, B: 255, A: 120}, true)
	}

	status := "at rest - click to shoot"
	if v.sim.IsAnyBallMoving() {
		status = "rolling"
	}
	if v.paused {
		status = "paused"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tick %d  shots %d  contacts %d  %s  [space] pause  [r] rerack",
		v.sim.Tick, v.shots, v.contacts, status), 8, 8)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

func drawBall(screen *ebiten.Image, b game.BallState) {
	x, y, r := float32(b.X), float32(b.Y), float32(b.Radius)
	c := render.BallColor(b.Color)
	if b.Half {
		vector.FillCircle(screen, x, y, r, colornames.White, true)
		vector.FillCircle(screen, x, y, r*0.6, c, true)
		return
	}
	vector.FillCircle(screen, x, y, r, c, true)
	if b.Number != 0 {
		// rolling highlight from the cosmetic rotation
		hx := x + r*0.5*float32(math.Sin(b.RotationY))
		hy := y + r*0.5*float32(math.Sin(b.RotationX))
		vector.FillCircle(screen, hx, hy, r*0.2, colornames.White, true)
	}
}

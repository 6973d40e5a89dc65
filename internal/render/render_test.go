package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/playmatatu/cuesim/internal/game"
	"golang.org/x/image/colornames"
)

func TestRenderPNGDimensions(t *testing.T) {
	sim := game.NewStandardSimulation(game.DefaultSettings())

	var buf bytes.Buffer
	if err := RenderPNG(&buf, sim.Table, sim.Snapshot()); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 1140 || b.Dy() != 740 {
		t.Errorf("image is %dx%d, want 1140x740", b.Dx(), b.Dy())
	}
}

func TestRenderImageDrawsBalls(t *testing.T) {
	table := game.InitTable()
	balls := []game.BallState{
		{Number: 0, Color: "white", X: 300, Y: 400, Radius: 12.5},
		{Number: 9, Color: "yellow", Half: true, X: 600, Y: 400, Radius: 12.5},
	}
	img := RenderImage(table, balls)

	if got := img.RGBAAt(300, 400); got != colornames.White {
		t.Errorf("cue ball centre = %v, want white", got)
	}
	if got := img.RGBAAt(600, 400); got != colornames.Yellow {
		t.Errorf("half ball band = %v, want yellow", got)
	}
	if got := img.RGBAAt(600, 389); got != colornames.White {
		t.Errorf("half ball cap = %v, want white", got)
	}
	if got := img.RGBAAt(500, 600); got != colornames.Forestgreen {
		t.Errorf("cloth = %v, want forestgreen", got)
	}
	if got := img.RGBAAt(20, 120); got != colornames.Saddlebrown {
		t.Errorf("rail = %v, want saddlebrown", got)
	}
}

func TestBallColorFallback(t *testing.T) {
	if BallColor("darkred") != colornames.Darkred {
		t.Error("darkred not resolved")
	}
	if BallColor("no-such-colour") != colornames.Magenta {
		t.Error("unknown colour should fall back to magenta")
	}
}

package game

import (
	"math"
	"testing"
)

func TestResolveRailReflects(t *testing.T) {
	table := InitTable()
	b := movingBall(0, 1050, 400, 1, 0, 20)
	c, ok := FindContact(b, []*Ball{b}, table)
	if !ok {
		t.Fatal("expected rail contact")
	}

	Resolve(c)

	if !approx(b.Position.X, 1057.5) || !approx(b.Position.Y, 400) {
		t.Errorf("position = %+v, want (1057.5, 400)", b.Position)
	}
	if b.Direction.X != -1 {
		t.Errorf("direction x not reflected: %+v", b.Direction)
	}
	if b.Power != 20 {
		t.Errorf("rail changed power: %v", b.Power)
	}
	if !approx(b.RemainingPower, 12.5) {
		t.Errorf("remaining = %v, want 12.5", b.RemainingPower)
	}
}

func TestResolveHeadOnTransfersAllPower(t *testing.T) {
	cue := movingBall(0, 100, 100, 1, 0, 10)
	target := restingBall(1, 120, 100)

	c, ok := FindContact(cue, []*Ball{cue, target}, InitTable())
	if !ok || c.Kind != ContactBall {
		t.Fatalf("expected ball contact, got %+v (%v)", c, ok)
	}
	impact := Resolve(c)

	if impact.PercentA != 0 || impact.PercentB != 1 {
		t.Errorf("impact = %+v, want full transfer", impact)
	}
	if target.Direction != NewVec2(1, 0) {
		t.Errorf("target direction = %+v, want (1, 0)", target.Direction)
	}
	if !approx(target.Power, 10) {
		t.Errorf("target power = %v, want 10", target.Power)
	}
	if cue.IsMoving() || !cue.Direction.IsZero() {
		t.Errorf("cue should stop dead: power=%v dir=%+v", cue.Power, cue.Direction)
	}
	// backed off the overlap to touching
	if !approx(cue.Position.Distance(target.Position), 25) {
		t.Errorf("centres %v apart, want 25", cue.Position.Distance(target.Position))
	}
}

func TestResolveGlancingSplitsPower(t *testing.T) {
	cue := movingBall(0, 200, 400, 1, 0, 30)
	target := restingBall(1, 230, 410)

	c, ok := FindContact(cue, []*Ball{cue, target}, InitTable())
	if !ok || c.Kind != ContactBall {
		t.Fatalf("expected ball contact, got %+v (%v)", c, ok)
	}
	distance := c.Distance
	Resolve(c)

	if !approx(cue.Power+target.Power, 30) {
		t.Errorf("power not conserved: %v + %v", cue.Power, target.Power)
	}
	line := target.Position.Minus(cue.Position).Normalize()
	if !approx(target.Direction.X, line.X) || !approx(target.Direction.Y, line.Y) {
		t.Errorf("target direction %+v, want line of centres %+v", target.Direction, line)
	}
	if cue.Direction.Y >= 0 || target.Direction.Y <= 0 {
		t.Errorf("balls should leave on opposite sides: cue=%+v target=%+v", cue.Direction, target.Direction)
	}
	want := (30 - distance) / 30
	if got := cue.RemainingPower / cue.Power; math.Abs(got-want) > 1e-9 {
		t.Errorf("leftover share = %v, want %v", got, want)
	}
}

func TestResolveMovingTargetSwaps(t *testing.T) {
	a := movingBall(0, 200, 400, 1, 0, 10)
	b := movingBall(1, 240, 400, -1, 0, 10)

	c, ok := FindContact(a, []*Ball{a, b}, InitTable())
	if !ok || c.Kind != ContactBall {
		t.Fatalf("expected ball contact, got %+v (%v)", c, ok)
	}
	Resolve(c)

	if !approx(a.Position.X, 207.5) || !approx(b.Position.X, 232.5) {
		t.Errorf("contact positions = %v, %v", a.Position.X, b.Position.X)
	}
	if a.Direction != NewVec2(-1, 0) || !approx(a.Power, 10) {
		t.Errorf("a = dir %+v power %v, want (-1,0) 10", a.Direction, a.Power)
	}
	if b.Direction != NewVec2(1, 0) || !approx(b.Power, 10) {
		t.Errorf("b = dir %+v power %v, want (1,0) 10", b.Direction, b.Power)
	}
	if !approx(a.RemainingPower, 2.5) || !approx(b.RemainingPower, 2.5) {
		t.Errorf("remaining = %v, %v, want 2.5", a.RemainingPower, b.RemainingPower)
	}
}

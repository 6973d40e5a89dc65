package game

import "testing"

func TestApplyShotDirectionPointsAwayFromAim(t *testing.T) {
	sim := NewStandardSimulation(DefaultSettings())
	cue := sim.CueBall()
	aim := cue.Position.Minus(NewVec2(100, 0))

	if !sim.ApplyShot(aim) {
		t.Fatal("shot rejected")
	}
	if cue.Direction != NewVec2(1, 0) {
		t.Errorf("direction = %+v, want (1, 0)", cue.Direction)
	}
	if cue.Power != ShotPower {
		t.Errorf("power = %v, want %v", cue.Power, ShotPower)
	}
}

func TestApplyShotRejectedWhileMoving(t *testing.T) {
	sim := NewStandardSimulation(DefaultSettings())
	cue := sim.CueBall()
	cue.Direction = NewVec2(0, 1)
	cue.Power = 5

	if sim.ApplyShot(NewVec2(0, 0)) {
		t.Fatal("shot accepted while the cue ball was moving")
	}
	if cue.Direction != NewVec2(0, 1) || cue.Power != 5 {
		t.Errorf("rejected shot changed the cue ball: dir=%+v power=%v", cue.Direction, cue.Power)
	}
}

func TestApplyShotRejectedWhileObjectBallMoving(t *testing.T) {
	sim := NewStandardSimulation(DefaultSettings())
	sim.Balls[5].Direction = NewVec2(1, 0)
	sim.Balls[5].Power = 1

	if sim.ApplyShot(NewVec2(0, 0)) {
		t.Error("shot accepted while an object ball was moving")
	}
}

func TestApplyShotAtCentreRejected(t *testing.T) {
	sim := NewStandardSimulation(DefaultSettings())
	if sim.ApplyShot(sim.CueBall().Position) {
		t.Error("shot with no direction accepted")
	}
	if sim.CueBall().IsMoving() {
		t.Error("cue ball set moving")
	}
}

func TestInitBallsRack(t *testing.T) {
	table := InitTable()
	balls := InitBalls(table, BallRadius)
	if len(balls) != NumBalls {
		t.Fatalf("racked %d balls, want %d", len(balls), NumBalls)
	}
	if balls[0].Number != 0 || balls[0].Position != CueSpot(table) {
		t.Errorf("cue ball = %+v", balls[0])
	}
	for i, a := range balls {
		if !table.Contains(a.Position, a.Radius, 0) {
			t.Errorf("ball %d racked off the cloth at %+v", a.Number, a.Position)
		}
		for _, b := range balls[i+1:] {
			if a.Position.Distance(b.Position) < a.Radius+b.Radius {
				t.Errorf("balls %d and %d overlap in the rack", a.Number, b.Number)
			}
		}
	}
}

func TestSnapshotReportsMotion(t *testing.T) {
	sim := NewStandardSimulation(DefaultSettings())
	sim.ApplyShot(sim.CueBall().Position.Minus(NewVec2(1, 0)))

	states := sim.Snapshot()
	if len(states) != NumBalls {
		t.Fatalf("snapshot has %d balls", len(states))
	}
	if !states[0].Moving || states[1].Moving {
		t.Errorf("moving flags wrong: cue=%v eight=%v", states[0].Moving, states[1].Moving)
	}
}

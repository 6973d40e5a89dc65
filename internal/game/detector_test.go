package game

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestSweptCircleOverlapReturnsNegativeDistance(t *testing.T) {
	d, ok := sweptCircle(NewVec2(100, 100), NewVec2(120, 100), NewVec2(10, 0), 25)
	if !ok {
		t.Fatal("expected contact for overlapping balls")
	}
	if !approx(d, -5) {
		t.Errorf("distance = %v, want -5", d)
	}
}

func TestSweptCircleHit(t *testing.T) {
	d, ok := sweptCircle(NewVec2(0, 0), NewVec2(50, 0), NewVec2(40, 0), 25)
	if !ok || !approx(d, 25) {
		t.Errorf("got (%v, %v), want (25, true)", d, ok)
	}
}

func TestSweptCircleMisses(t *testing.T) {
	cases := []struct {
		name    string
		a, b, m Vec2
	}{
		{"too short", NewVec2(0, 0), NewVec2(0, 100), NewVec2(10, 0)},
		{"moving away", NewVec2(100, 0), NewVec2(0, 0), NewVec2(200, 0)},
		{"passes wide", NewVec2(0, 0), NewVec2(50, 30), NewVec2(100, 0)},
		{"no movement", NewVec2(0, 0), NewVec2(20, 0), Vec2{}},
	}
	for _, tc := range cases {
		if _, ok := sweptCircle(tc.a, tc.b, tc.m, 25); ok {
			t.Errorf("%s: expected no contact", tc.name)
		}
	}
}

func TestRailFraction(t *testing.T) {
	if a, ok := railFraction(10, 1, 20); !ok || !approx(a, 0.5) {
		t.Errorf("got (%v, %v), want (0.5, true)", a, ok)
	}
	if _, ok := railFraction(10, 0, 20); ok {
		t.Error("zero component must have no solution")
	}
	if a, _ := railFraction(30, 1, 20); a != 1 {
		t.Errorf("fraction not clamped: %v", a)
	}
	if a, _ := railFraction(-1, 1, 20); a != 0 {
		t.Errorf("fraction not clamped: %v", a)
	}
}

func TestSplitRatio(t *testing.T) {
	if a, b := splitRatio(Vec2{}, NewVec2(1, 0)); a != 0 || b != 1 {
		t.Errorf("head-on split = (%v, %v), want (0, 1)", a, b)
	}
	if a, b := splitRatio(Vec2{}, Vec2{}); a != 0 || b != 1 {
		t.Errorf("degenerate split = (%v, %v), want (0, 1)", a, b)
	}
	if a, b := splitRatio(NewVec2(1, 0), NewVec2(0, 1)); !approx(a, 0.5) || !approx(b, 0.5) {
		t.Errorf("split = (%v, %v), want (0.5, 0.5)", a, b)
	}
}

func movingBall(n int, x, y, dx, dy, power float64) *Ball {
	return &Ball{
		Number:    n,
		Position:  NewVec2(x, y),
		Direction: NewVec2(dx, dy).Normalize(),
		Power:     power,
		Radius:    BallRadius,
	}
}

func restingBall(n int, x, y float64) *Ball {
	return &Ball{Number: n, Position: NewVec2(x, y), Radius: BallRadius}
}

func TestFindContactRail(t *testing.T) {
	table := InitTable()
	b := movingBall(0, 1050, 400, 1, 0, 20)

	c, ok := FindContact(b, []*Ball{b}, table)
	if !ok {
		t.Fatal("expected rail contact")
	}
	if c.Kind != ContactRail || c.Rail != RailRight || c.Axis != AxisX {
		t.Fatalf("unexpected contact: %+v", c)
	}
	if !approx(c.Fraction, 0.375) {
		t.Errorf("fraction = %v, want 0.375", c.Fraction)
	}
	if !approx(c.Edge, table.Inner.X2-BallRadius) {
		t.Errorf("edge = %v", c.Edge)
	}
}

func TestFindContactIgnoresRailBehind(t *testing.T) {
	table := InitTable()
	b := movingBall(0, 1055, 400, -1, 0, 10)
	if c, ok := FindContact(b, []*Ball{b}, table); ok {
		t.Errorf("unexpected contact: %+v", c)
	}
}

func TestFindContactEarliestWins(t *testing.T) {
	table := InitTable()
	b := movingBall(0, 1000, 400, 1, 0, 80)
	o := restingBall(1, 1040, 400)

	c, ok := FindContact(b, []*Ball{b, o}, table)
	if !ok {
		t.Fatal("expected contact")
	}
	if c.Kind != ContactBall || c.Other != o {
		t.Fatalf("expected ball contact before the rail, got %+v", c)
	}
	if !approx(c.Fraction, 15.0/80.0) {
		t.Errorf("fraction = %v, want %v", c.Fraction, 15.0/80.0)
	}
}

func TestFindContactAtRest(t *testing.T) {
	b := restingBall(0, 500, 400)
	if _, ok := FindContact(b, []*Ball{b}, InitTable()); ok {
		t.Error("a ball at rest has no contacts")
	}
}

func TestFindContactScalesMovingTarget(t *testing.T) {
	table := InitTable()
	// mover has half its tick left; the target's travel is scaled to match
	b := movingBall(0, 200, 400, 1, 0, 20)
	b.RemainingPower = 10
	o := movingBall(1, 240, 400, -1, 0, 20)

	c, ok := FindContact(b, []*Ball{b, o}, table)
	if !ok || c.Kind != ContactBall || c.Other != o {
		t.Fatalf("expected ball contact, got %+v (%v)", c, ok)
	}
	if !approx(c.Fraction, 0.75) {
		t.Errorf("fraction = %v, want 0.75", c.Fraction)
	}
	if !approx(c.OtherMove.X, -10) || !approx(c.OtherMove.Y, 0) {
		t.Errorf("target move = %+v, want (-10, 0)", c.OtherMove)
	}
}

func TestFindContactBlockedTargetStandsStill(t *testing.T) {
	table := InitTable()
	b := movingBall(0, 200, 400, 1, 0, 10)
	o := movingBall(1, 240, 400, -1, 0, 10)
	// sits in o's way but clear of b's path
	x := restingBall(2, 232, 424)

	if c, ok := FindContact(b, []*Ball{b, o, x}, table); ok {
		t.Errorf("unexpected contact: %+v", c)
	}
}

func TestFindContactCatchesUpWithRelativeMotion(t *testing.T) {
	table := InitTable()
	b := movingBall(0, 200, 400, 1, 0, 20)
	o := movingBall(1, 230, 400, 1, 0, 10)

	c, ok := FindContact(b, []*Ball{b, o}, table)
	if !ok || c.Kind != ContactBall {
		t.Fatalf("expected ball contact, got %+v (%v)", c, ok)
	}
	if !approx(c.Fraction, 0.5) {
		t.Errorf("fraction = %v, want 0.5", c.Fraction)
	}
}

func TestFindContactBlockedByFasterBall(t *testing.T) {
	table := InitTable()
	b := movingBall(0, 200, 400, 1, 0, 20)
	o := movingBall(1, 230, 400, 1, 0, 30)
	o.checked = true

	// o already moved this tick and pulls away, so b only runs up against it
	c, ok := FindContact(b, []*Ball{b, o}, table)
	if !ok || c.Kind != ContactBlock {
		t.Fatalf("expected block, got %+v (%v)", c, ok)
	}
	if !approx(c.Fraction, 0.25) {
		t.Errorf("fraction = %v, want 0.25", c.Fraction)
	}
}

func TestRailContactEarliestRailWins(t *testing.T) {
	table := InitTable()
	// heads for the top-left corner, reaching the top rail well before the left
	b := movingBall(0, 100, 200, -1, -2, 40)

	c, ok := FindContact(b, []*Ball{b}, table)
	if !ok || c.Kind != ContactRail {
		t.Fatalf("expected rail contact, got %+v (%v)", c, ok)
	}
	if c.Rail != RailTop {
		t.Errorf("rail = %v, want top", c.Rail)
	}
	Resolve(c)
	if !table.Contains(b.Position, b.Radius, 1e-9) {
		t.Errorf("contact point off the cloth: %+v", b.Position)
	}
}

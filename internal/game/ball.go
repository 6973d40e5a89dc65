package game

// Ball is the mutable per-ball record the detector, resolver and integrator
// operate on. Power == 0 means the ball is at rest and Direction is undefined.
type Ball struct {
	Number         int     `json:"number"`
	Color          string  `json:"color"`
	Half           bool    `json:"half"`
	Position       Vec2    `json:"position"`
	Direction      Vec2    `json:"direction"`
	Power          float64 `json:"power"`
	RemainingPower float64 `json:"remaining_power"`
	Radius         float64 `json:"radius"`
	Rotation       Vec2    `json:"rotation"` // cosmetic rolling angle in radians, render only

	checked bool // fully advanced this tick
}

// EffectivePower is the travel budget the detector works with: the leftover
// of a truncated tick if there is one, otherwise the full power.
func (b *Ball) EffectivePower() float64 {
	if b.RemainingPower != 0 {
		return b.RemainingPower
	}
	if b.Power != 0 {
		return b.Power
	}
	return 0
}

func (b *Ball) IsMoving() bool {
	return b.Power > 0
}

// Displacement is the vector the ball intends to travel for the rest of this tick.
func (b *Ball) Displacement() Vec2 {
	if !b.IsMoving() {
		return Vec2{}
	}
	return b.Direction.Times(b.EffectivePower())
}

// Stop puts the ball at rest.
func (b *Ball) Stop() {
	b.Power = 0
	b.RemainingPower = 0
	b.Direction = Vec2{}
}

// moveTo translates the ball and rolls the cosmetic rotation with the travel.
func (b *Ball) moveTo(p Vec2) {
	d := p.Minus(b.Position)
	b.Position = p
	if b.Radius > 0 {
		b.Rotation.X += d.Y / b.Radius
		b.Rotation.Y += d.X / b.Radius
	}
}

// RackSlot is one rack position: column and row offsets in RackSpacing units
// from the foot spot, plus identity. Fixed, when set, overrides the offsets.
type RackSlot struct {
	Number int
	Color  string
	Col    float64
	Row    float64
	Half   bool
	Fixed  *Vec2
}

// StandardRack is the 8-ball layout: cue ball first, then the triangle with
// the 8 at its centre column.
var StandardRack = []RackSlot{
	{Number: 0, Color: "white"},
	{Number: 8, Color: "black"},
	{Number: 1, Color: "yellow", Col: -2},
	{Number: 9, Color: "yellow", Col: -1, Row: 0.5, Half: true},
	{Number: 14, Color: "green", Col: -1, Row: -0.5, Half: true},
	{Number: 2, Color: "blue", Row: -1},
	{Number: 6, Color: "green", Row: 1},
	{Number: 13, Color: "orange", Col: 1, Row: -1.5, Half: true},
	{Number: 15, Color: "darkred", Col: 1, Row: -0.5, Half: true},
	{Number: 7, Color: "darkred", Col: 1, Row: 0.5},
	{Number: 10, Color: "blue", Col: 1, Row: 1.5, Half: true},
	{Number: 5, Color: "orange", Col: 2, Row: -2},
	{Number: 12, Color: "purple", Col: 2, Row: -1, Half: true},
	{Number: 4, Color: "purple", Col: 2},
	{Number: 11, Color: "red", Col: 2, Row: 1, Half: true},
	{Number: 3, Color: "red", Col: 2, Row: 2},
}

// NewBall builds a ball from a rack slot. Object balls sit relative to the
// foot spot at 3/4 of the cloth; the cue ball sits at the head spot (1/4).
func NewBall(t *Table, slot RackSlot, radius float64) *Ball {
	var pos Vec2
	switch {
	case slot.Fixed != nil:
		pos = *slot.Fixed
	case slot.Number == 0:
		pos = CueSpot(t)
	default:
		pos = FootSpot(t).Plus(NewVec2(slot.Col*RackSpacing, slot.Row*RackSpacing))
	}
	return &Ball{
		Number:   slot.Number,
		Color:    slot.Color,
		Half:     slot.Half,
		Position: pos,
		Radius:   radius,
	}
}

// CueSpot is where the cue ball starts.
func CueSpot(t *Table) Vec2 {
	return NewVec2(t.Inner.X+t.Inner.Width()/4, t.Inner.Y+t.Inner.Height()/2)
}

// FootSpot is the apex column reference of the object-ball rack.
func FootSpot(t *Table) Vec2 {
	return NewVec2(t.Inner.X+3*(t.Inner.Width()/4), t.Inner.Y+t.Inner.Height()/2)
}

// InitBalls racks the standard 16 balls on t. The cue ball is always index 0.
func InitBalls(t *Table, radius float64) []*Ball {
	balls := make([]*Ball, 0, len(StandardRack))
	for _, slot := range StandardRack {
		balls = append(balls, NewBall(t, slot, radius))
	}
	return balls
}

package game

import "math"

// ContactKind tells the resolver which response to apply. A block stops the
// mover against a ball it is not closing on; no power changes hands.
type ContactKind string

const (
	ContactRail  ContactKind = "rail"
	ContactBall  ContactKind = "ball"
	ContactBlock ContactKind = "block"
)

// Axis is the coordinate a rail reflection inverts.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Rail is one edge of the playable rectangle.
type Rail int

const (
	RailNone Rail = iota
	RailLeft
	RailRight
	RailTop
	RailBottom
)

// railOrder is the evaluation order for rail tests. It breaks ties between
// rails touched at the same fraction.
var railOrder = []Rail{RailLeft, RailRight, RailTop, RailBottom}

func (r Rail) String() string {
	switch r {
	case RailLeft:
		return "left"
	case RailRight:
		return "right"
	case RailTop:
		return "top"
	case RailBottom:
		return "bottom"
	}
	return "none"
}

func (r Rail) Axis() Axis {
	if r == RailLeft || r == RailRight {
		return AxisX
	}
	return AxisY
}

// Contact is a detected first time of impact for one ball this tick. It is
// produced by FindContact and consumed once by Resolve.
type Contact struct {
	Kind  ContactKind
	Ball  *Ball
	Other *Ball   // ball contacts only
	Rail  Rail    // rail contacts only
	Axis  Axis    // rail contacts only
	Edge  float64 // centre coordinate on Axis at which the ball touches the rail

	// Fraction of the remaining travel consumed before contact, and the same
	// distance in table units along the movement vector.
	Fraction float64
	Distance float64

	// Movement is the relative displacement used for a ball contact.
	// OtherMove is the struck ball's displacement over the same span; it is
	// zero when the struck ball was treated as standing still.
	Movement  Vec2
	OtherMove Vec2
}

// FindContact returns the earliest contact of b along its remaining travel
// this tick, against every other ball and the four rails.
//
// Balls are advanced one at a time, so every ball that does not move in the
// resolution bounds b at its current position. A ball still waiting for its
// own travel is tested with relative motion over b's share of the tick; that
// contact is only taken when its advance to the contact point is clear and
// no ball left standing is reached first.
func FindContact(b *Ball, balls []*Ball, t *Table) (Contact, bool) {
	if !b.IsMoving() {
		return Contact{}, false
	}

	move := b.Displacement()
	moveLen := move.Magnitude()
	share := b.EffectivePower() / b.Power

	still := make([]float64, len(balls))
	minStill, minIdx := math.Inf(1), -1
	for i, other := range balls {
		still[i] = math.Inf(1)
		if other == b {
			continue
		}
		if distance, ok := sweptCircle(b.Position, other.Position, move, b.Radius+other.Radius); ok {
			still[i] = distance / moveLen
			if still[i] < minStill {
				minStill, minIdx = still[i], i
			}
		}
	}

	var best Contact
	found := false
	if minIdx >= 0 {
		best = standingContact(b, balls[minIdx], minStill, move)
		found = true
	}

	// A clear relative contact is never later than any ball left standing, so
	// the earliest one wins over the standing candidate.
	relFound := false
	for i, other := range balls {
		if other == b || other.checked || !other.IsMoving() {
			continue
		}
		otherMove := other.Direction.Times(other.Power * share)
		rel := move.Minus(otherMove)
		distance, ok := sweptCircle(b.Position, other.Position, rel, b.Radius+other.Radius)
		if !ok || distance < 0 {
			continue
		}
		fraction := distance / rel.Magnitude()
		if relFound && fraction >= best.Fraction {
			continue
		}
		if !stillBallsClear(still, i, fraction) {
			continue
		}
		if !advanceClear(other, otherMove.Times(fraction), b, balls, t) {
			continue
		}
		best = Contact{
			Kind:      ContactBall,
			Ball:      b,
			Other:     other,
			Fraction:  fraction,
			Distance:  distance,
			Movement:  rel,
			OtherMove: otherMove,
		}
		found, relFound = true, true
	}

	if rail, a, edge, ok := railContact(b, t); ok {
		// Ties go to the ball contact. A rail beyond a standing ball is never
		// reached; that ball is struck instead.
		if !found || a < best.Fraction {
			if a < minStill {
				best = Contact{
					Kind:     ContactRail,
					Ball:     b,
					Rail:     rail,
					Axis:     rail.Axis(),
					Edge:     edge,
					Fraction: a,
					Distance: a * b.EffectivePower(),
				}
			} else {
				best = standingContact(b, balls[minIdx], minStill, move)
			}
			found = true
		}
	}

	return best, found
}

// standingContact builds the contact of b with o at o's current position. A
// ball that is not being closed on only blocks the mover.
func standingContact(b, o *Ball, fraction float64, move Vec2) Contact {
	kind := ContactBall
	rel := b.Direction.Times(b.Power)
	if o.IsMoving() {
		rel = rel.Minus(o.Direction.Times(o.Power))
	}
	if rel.Dot(o.Position.Minus(b.Position)) <= 0 {
		kind = ContactBlock
	}
	return Contact{
		Kind:     kind,
		Ball:     b,
		Other:    o,
		Fraction: fraction,
		Distance: fraction * move.Magnitude(),
		Movement: move,
	}
}

// stillBallsClear reports whether no ball other than skip is reached, at its
// current position, before fraction.
func stillBallsClear(still []float64, skip int, fraction float64) bool {
	for i, f := range still {
		if i != skip && f < fraction {
			return false
		}
	}
	return true
}

// advanceClear reports whether o can travel disp from its current position
// without touching a rail or any ball other than mover.
func advanceClear(o *Ball, disp Vec2, mover *Ball, balls []*Ball, t *Table) bool {
	if !t.Contains(o.Position.Plus(disp), o.Radius, 0) {
		return false
	}
	for _, x := range balls {
		if x == o || x == mover {
			continue
		}
		if _, ok := sweptCircle(o.Position, x.Position, disp, o.Radius+x.Radius); ok {
			return false
		}
	}
	return true
}

// railContact tests the naive end-of-tick position against each rail in
// railOrder. Only a rail the ball is heading into can be struck. When two rails
// are violated the one touched first wins, so the contact point never sits
// beyond the other rail.
func railContact(b *Ball, t *Table) (Rail, float64, float64, bool) {
	power := b.EffectivePower()
	end := b.Position.ScaleAndAdd(b.Direction, power)
	r := b.Radius
	in := t.Inner

	best, bestA, bestEdge := RailNone, 0.0, 0.0
	for _, rail := range railOrder {
		var violated bool
		var offset, component, edge float64

		switch rail {
		case RailLeft:
			violated = end.X-r < in.X && b.Direction.X < 0
			edge = in.X + r
			offset, component = edge-b.Position.X, b.Direction.X
		case RailRight:
			violated = end.X+r > in.X2 && b.Direction.X > 0
			edge = in.X2 - r
			offset, component = edge-b.Position.X, b.Direction.X
		case RailTop:
			violated = end.Y-r < in.Y && b.Direction.Y < 0
			edge = in.Y + r
			offset, component = edge-b.Position.Y, b.Direction.Y
		case RailBottom:
			violated = end.Y+r > in.Y2 && b.Direction.Y > 0
			edge = in.Y2 - r
			offset, component = edge-b.Position.Y, b.Direction.Y
		}
		if !violated {
			continue
		}
		a, ok := railFraction(offset, component, power)
		if !ok {
			continue
		}
		if best == RailNone || a < bestA {
			best, bestA, bestEdge = rail, a, edge
		}
	}
	return best, bestA, bestEdge, best != RailNone
}

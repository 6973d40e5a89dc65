package game

// Impact reports how a ball contact split the mover's power. Rail contacts
// leave both shares at zero.
type Impact struct {
	PercentA float64
	PercentB float64
}

// Resolve applies a detected contact in place. Positions move to the exact
// point of contact and the unconsumed part of the tick is carried in
// RemainingPower for the next contact check.
func Resolve(c Contact) Impact {
	switch c.Kind {
	case ContactRail:
		resolveRail(c)
	case ContactBall:
		return resolveBall(c)
	case ContactBlock:
		resolveBlock(c)
	}
	return Impact{}
}

// resolveRail reflects the component perpendicular to the struck rail. Rails
// do not absorb power; they only truncate and redirect the current tick.
func resolveRail(c Contact) {
	b := c.Ball
	power := b.EffectivePower()
	contact := b.Position.ScaleAndAdd(b.Direction, c.Fraction*power)

	// Snap onto the touching line so rounding never leaves the ball embedded.
	if c.Axis == AxisX {
		contact.X = c.Edge
		b.moveTo(contact)
		b.Direction.X = -b.Direction.X
	} else {
		contact.Y = c.Edge
		b.moveTo(contact)
		b.Direction.Y = -b.Direction.Y
	}
	b.RemainingPower = (1 - c.Fraction) * power
}

// resolveBlock moves the ball up to the blocking ball and keeps the rest of
// its travel for later.
func resolveBlock(c Contact) {
	b := c.Ball
	power := b.EffectivePower()
	moveLen := c.Movement.Magnitude()
	b.moveTo(b.Position.ScaleAndAdd(b.Displacement(), c.Distance/moveLen))

	consumed := c.Distance
	if consumed < 0 {
		consumed = 0
	}
	b.RemainingPower = power * clamp01((moveLen-consumed)/moveLen)
}

// resolveBall splits the mover's power between both balls by the geometric
// ratio of the two outgoing directions. The struck ball only advances when the
// contact was found with relative motion. The split runs in the frame of the
// struck ball, whose own velocity is added back to both results afterwards;
// for a ball at rest that term is zero.
func resolveBall(c Contact) Impact {
	a, b := c.Ball, c.Other

	// Fraction of the whole tick a still had left before this contact.
	var tickLeft float64
	if a.Power > 0 {
		tickLeft = a.EffectivePower() / a.Power
	}

	moveLen := c.Movement.Magnitude()
	t := c.Distance / moveLen

	a.moveTo(a.Position.ScaleAndAdd(a.Displacement(), t))
	if !c.OtherMove.IsZero() {
		b.moveTo(b.Position.ScaleAndAdd(c.OtherMove, t))
	}

	velA := a.Direction.Times(a.Power)
	velB := Vec2{}
	if b.IsMoving() {
		velB = b.Direction.Times(b.Power)
	}
	closing := velA.Minus(velB)
	closingPower := closing.Magnitude()
	n := closing.Normalize()
	if n.IsZero() {
		n = c.Movement.Normalize()
	}

	angleN := b.Position.Minus(a.Position).Normalize()
	if angleN.IsZero() {
		angleN = n
	}
	angleA := n.Minus(angleN)
	percentA, percentB := splitRatio(angleA, angleN)

	setVelocity(a, angleA.Normalize().Times(closingPower*percentA).Plus(velB))
	setVelocity(b, angleN.Times(closingPower*percentB).Plus(velB))

	consumed := c.Distance
	if consumed < 0 {
		consumed = 0
	}
	left := tickLeft * clamp01((moveLen-consumed)/moveLen)
	a.RemainingPower = a.Power * left
	b.RemainingPower = b.Power * left
	return Impact{PercentA: percentA, PercentB: percentB}
}

// setVelocity stores v as direction and power, stopping the ball when v is zero.
func setVelocity(b *Ball, v Vec2) {
	p := v.Magnitude()
	if p == 0 || !v.isFinite() {
		b.Stop()
		return
	}
	b.Power = p
	b.Direction = v.Times(1 / p)
}

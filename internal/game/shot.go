package game

// IsAnyBallMoving reports whether any ball has power.
func IsAnyBallMoving(balls []*Ball) bool {
	for _, b := range balls {
		if b.IsMoving() {
			return true
		}
	}
	return false
}

// ApplyShot aims the cue ball away from a world-space point: the direction
// runs from the point toward the ball centre. It is a no-op returning false
// while any ball is moving, or when the point is the ball centre.
func ApplyShot(cue *Ball, balls []*Ball, point Vec2, power float64) bool {
	if cue == nil || power <= 0 || IsAnyBallMoving(balls) {
		return false
	}
	dir := cue.Position.Minus(point).Normalize()
	if dir.IsZero() {
		return false
	}
	cue.Direction = dir
	cue.Power = power
	cue.RemainingPower = 0
	return true
}

// ApplyShot shoots the cue ball with the configured shot power.
func (s *Simulation) ApplyShot(point Vec2) bool {
	return ApplyShot(s.CueBall(), s.Balls, point, s.Settings.ShotPower)
}

// BallState is what the presentation layer needs to draw one ball.
type BallState struct {
	Number    int     `json:"number"`
	Color     string  `json:"color"`
	Half      bool    `json:"half"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	RotationX float64 `json:"rotation_x"`
	RotationY float64 `json:"rotation_y"`
	Moving    bool    `json:"moving"`
}

// Snapshot returns the render state of every ball in field order.
func (s *Simulation) Snapshot() []BallState {
	states := make([]BallState, len(s.Balls))
	for i, b := range s.Balls {
		states[i] = BallState{
			Number:    b.Number,
			Color:     b.Color,
			Half:      b.Half,
			X:         b.Position.X,
			Y:         b.Position.Y,
			Radius:    b.Radius,
			RotationX: b.Rotation.X,
			RotationY: b.Rotation.Y,
			Moving:    b.IsMoving(),
		}
	}
	return states
}

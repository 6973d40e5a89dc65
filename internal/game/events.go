package game

// CollisionEvent records a contact for logging, persistence and broadcast.
type CollisionEvent struct {
	Tick         int         `json:"tick"`
	Type         ContactKind `json:"type"` // "ball" or "rail"
	BallNumber   int         `json:"ball_number"`
	TargetNumber int         `json:"target_number,omitempty"` // struck ball for ball contacts
	Rail         string      `json:"rail,omitempty"`
	Power        float64     `json:"power"` // mover power after the contact
}

func newCollisionEvent(tick int, c Contact) CollisionEvent {
	ev := CollisionEvent{
		Tick:       tick,
		Type:       c.Kind,
		BallNumber: c.Ball.Number,
		Power:      c.Ball.Power,
	}
	if c.Kind == ContactBall {
		ev.TargetNumber = c.Other.Number
	} else {
		ev.Rail = c.Rail.String()
	}
	return ev
}

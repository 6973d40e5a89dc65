package game

import "log"

// Settings are the tunable physics parameters of one simulation.
type Settings struct {
	BallRadius         float64 `json:"ball_radius"`
	ShotPower          float64 `json:"shot_power"`
	DragFactor         float64 `json:"drag"`
	MinPower           float64 `json:"min_power"`
	MaxContactsPerTick int     `json:"max_contacts_per_tick"`
}

// DefaultSettings returns the standard table parameters.
func DefaultSettings() Settings {
	return Settings{
		BallRadius:         BallRadius,
		ShotPower:          ShotPower,
		DragFactor:         DragFactor,
		MinPower:           MinPower,
		MaxContactsPerTick: MaxContactsPerTick,
	}
}

// Simulation is one independent table: its geometry, balls and the contact
// log. It is not safe for concurrent use; callers serialize access.
type Simulation struct {
	Table    *Table
	Balls    []*Ball
	Settings Settings
	Events   []CollisionEvent
	Tick     int
}

// NewSimulation creates a simulation over an existing table and ball set.
func NewSimulation(table *Table, balls []*Ball, settings Settings) *Simulation {
	if settings.MaxContactsPerTick <= 0 {
		settings.MaxContactsPerTick = MaxContactsPerTick
	}
	return &Simulation{
		Table:    table,
		Balls:    balls,
		Settings: settings,
		Events:   make([]CollisionEvent, 0),
	}
}

// NewStandardSimulation racks the 16 balls on a standard table.
func NewStandardSimulation(settings Settings) *Simulation {
	table := InitTable()
	return NewSimulation(table, InitBalls(table, settings.BallRadius), settings)
}

// CueBall returns the ball numbered 0, or nil when the field has none.
func (s *Simulation) CueBall() *Ball {
	for _, b := range s.Balls {
		if b.Number == 0 {
			return b
		}
	}
	return nil
}

// IsAnyBallMoving reports whether any ball still has power.
func (s *Simulation) IsAnyBallMoving() bool {
	return IsAnyBallMoving(s.Balls)
}

// Advance runs one fixed simulation step. Balls are advanced in field order
// against the current positions of the others; a ball struck after it was
// already advanced is swept again for its leftover travel. Drag applies once
// per moving ball after every contact of the tick is resolved.
func (s *Simulation) Advance() {
	if !s.IsAnyBallMoving() {
		return
	}
	s.Tick++

	budget := s.Settings.MaxContactsPerTick * len(s.Balls)
	for {
		progressed := false
		for _, b := range s.Balls {
			if !b.IsMoving() || b.checked {
				continue
			}
			s.travel(b, &budget)
			progressed = true
		}
		if !progressed {
			break
		}
	}

	for _, b := range s.Balls {
		b.checked = false
		b.RemainingPower = 0
		if !b.IsMoving() {
			continue
		}
		b.Power *= s.Settings.DragFactor
		if b.Power < s.Settings.MinPower {
			b.Stop()
		}
	}
}

// travel consumes b's travel budget for this tick, resolving contacts until
// none remain or the per-ball cap is reached.
func (s *Simulation) travel(b *Ball, budget *int) {
	for contacts := 0; ; contacts++ {
		if contacts >= s.Settings.MaxContactsPerTick || *budget <= 0 {
			log.Printf("[PHYSICS] tick %d: contact cap reached for ball %d, dropping %.4f travel",
				s.Tick, b.Number, b.EffectivePower())
			break
		}

		c, ok := FindContact(b, s.Balls, s.Table)
		if !ok {
			b.moveTo(b.Position.ScaleAndAdd(b.Direction, b.EffectivePower()))
			break
		}

		*budget--
		Resolve(c)
		if c.Kind == ContactBlock {
			if c.Other.IsMoving() && !c.Other.checked && b.RemainingPower > 0 {
				// resumes once the blocking ball has moved on
				return
			}
			break
		}
		s.Events = append(s.Events, newCollisionEvent(s.Tick, c))

		if c.Kind == ContactBall {
			s.keepOnCloth(b)
			s.keepOnCloth(c.Other)
			markStruck(c.Other)
		}
		if !b.IsMoving() || b.RemainingPower <= 0 {
			break
		}
	}
	b.RemainingPower = 0
	b.checked = true
}

// markStruck decides whether a struck ball still has travel to do this tick.
func markStruck(o *Ball) {
	if o.IsMoving() && o.RemainingPower > 0 {
		o.checked = false
		return
	}
	o.RemainingPower = 0
	o.checked = true
}

// keepOnCloth clamps a ball that backed off an overlap past a rail.
func (s *Simulation) keepOnCloth(b *Ball) {
	in := s.Table.Inner
	p := b.Position
	if p.X < in.X+b.Radius {
		p.X = in.X + b.Radius
	}
	if p.X > in.X2-b.Radius {
		p.X = in.X2 - b.Radius
	}
	if p.Y < in.Y+b.Radius {
		p.Y = in.Y + b.Radius
	}
	if p.Y > in.Y2-b.Radius {
		p.Y = in.Y2 - b.Radius
	}
	b.Position = p
}

// RunUntilRest advances until every ball is at rest or maxTicks have run.
// It returns the number of ticks advanced.
func (s *Simulation) RunUntilRest(maxTicks int) int {
	ticks := 0
	for s.IsAnyBallMoving() && ticks < maxTicks {
		s.Advance()
		ticks++
	}
	return ticks
}

// DrainEvents returns the recorded contacts and clears the log.
func (s *Simulation) DrainEvents() []CollisionEvent {
	events := s.Events
	s.Events = make([]CollisionEvent, 0)
	return events
}

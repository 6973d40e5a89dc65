package game

import (
	"crypto/subtle"
	"log"
	"sync"
	"time"
)

// Frame is one rendered tick of a table, pushed to the presentation layer.
type Frame struct {
	SessionID string           `json:"session_id"`
	Tick      int              `json:"tick"`
	Balls     []BallState      `json:"balls"`
	Events    []CollisionEvent `json:"events,omitempty"`
	Moving    bool             `json:"moving"`
}

// ShotSummary describes a shot once every ball has come to rest.
type ShotSummary struct {
	SessionID  string      `json:"session_id"`
	ShotNumber int         `json:"shot_number"`
	Aim        Vec2        `json:"aim"`
	Direction  Vec2        `json:"direction"`
	Power      float64     `json:"power"`
	Ticks      int         `json:"ticks"`
	Contacts   int         `json:"contacts"`
	Balls      []BallState `json:"balls"`
}

// SessionState is the serializable view of a table.
type SessionState struct {
	ID           string        `json:"id"`
	Status       SessionStatus `json:"status"`
	ShotNumber   int           `json:"shot_number"`
	Tick         int           `json:"tick"`
	Moving       bool          `json:"moving"`
	Table        *Table        `json:"table"`
	Balls        []BallState   `json:"balls"`
	CreatedAt    time.Time     `json:"created_at"`
	LastActivity time.Time     `json:"last_activity"`
}

// TableSession owns one simulation. All access to the simulation goes
// through the session lock, so a table is only ever advanced by one caller.
type TableSession struct {
	ID           string
	Token        string
	Status       SessionStatus
	ShotNumber   int
	CreatedAt    time.Time
	LastActivity time.Time

	sim  *Simulation
	shot *ShotSummary // in flight while rolling
	mu   sync.Mutex
}

// NewTableSession racks a fresh standard table.
func NewTableSession(id, token string, settings Settings) *TableSession {
	now := time.Now()
	return &TableSession{
		ID:           id,
		Token:        token,
		Status:       StatusIdle,
		CreatedAt:    now,
		LastActivity: now,
		sim:          NewStandardSimulation(settings),
	}
}

// TokenMatches reports whether id is this table's shooter token id.
func (ts *TableSession) TokenMatches(id string) bool {
	return id != "" && subtle.ConstantTimeCompare([]byte(ts.Token), []byte(id)) == 1
}

// TakeShot aims the cue ball away from point. It is the table's only
// admission gate: while any ball is moving the shot is dropped and false is
// returned.
func (ts *TableSession) TakeShot(point Vec2) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.Status == StatusClosed {
		return false
	}
	if !ts.sim.ApplyShot(point) {
		log.Printf("[TABLE] %s: shot toward (%.2f, %.2f) rejected", ts.ID, point.X, point.Y)
		return false
	}

	cue := ts.sim.CueBall()
	ts.ShotNumber++
	ts.Status = StatusRolling
	ts.LastActivity = time.Now()
	ts.sim.DrainEvents()
	ts.shot = &ShotSummary{
		SessionID:  ts.ID,
		ShotNumber: ts.ShotNumber,
		Aim:        point,
		Direction:  cue.Direction,
		Power:      cue.Power,
	}
	log.Printf("[TABLE] %s: shot %d accepted, direction=(%.4f, %.4f) power=%.2f",
		ts.ID, ts.ShotNumber, cue.Direction.X, cue.Direction.Y, cue.Power)
	return true
}

// Step advances the table one tick. The summary is non-nil on the tick the
// last ball comes to rest.
func (ts *TableSession) Step() (Frame, *ShotSummary) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.sim.Advance()
	events := ts.sim.DrainEvents()
	moving := ts.sim.IsAnyBallMoving()

	frame := Frame{
		SessionID: ts.ID,
		Tick:      ts.sim.Tick,
		Balls:     ts.sim.Snapshot(),
		Events:    events,
		Moving:    moving,
	}

	var settled *ShotSummary
	if ts.shot != nil {
		ts.shot.Ticks++
		ts.shot.Contacts += len(events)
		if !moving {
			ts.shot.Balls = frame.Balls
			settled = ts.shot
			ts.shot = nil
			ts.Status = StatusIdle
			ts.LastActivity = time.Now()
		}
	}
	return frame, settled
}

// IsRolling reports whether a shot is in flight.
func (ts *TableSession) IsRolling() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.Status == StatusRolling
}

// State returns a copy of the table for serialization.
func (ts *TableSession) State() SessionState {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.stateLocked()
}

func (ts *TableSession) stateLocked() SessionState {
	return SessionState{
		ID:           ts.ID,
		Status:       ts.Status,
		ShotNumber:   ts.ShotNumber,
		Tick:         ts.sim.Tick,
		Moving:       ts.sim.IsAnyBallMoving(),
		Table:        ts.sim.Table,
		Balls:        ts.sim.Snapshot(),
		CreatedAt:    ts.CreatedAt,
		LastActivity: ts.LastActivity,
	}
}

// Snapshot returns the table geometry and current ball states for rendering.
func (ts *TableSession) Snapshot() (*Table, []BallState) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.sim.Table, ts.sim.Snapshot()
}

func (ts *TableSession) close() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.Status = StatusClosed
	for _, b := range ts.sim.Balls {
		b.Stop()
	}
	ts.shot = nil
}

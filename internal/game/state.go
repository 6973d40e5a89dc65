package game

// SessionStatus represents whether a table is waiting for a shot or rolling
type SessionStatus string

const (
	StatusIdle    SessionStatus = "IDLE"
	StatusRolling SessionStatus = "ROLLING"
	StatusClosed  SessionStatus = "CLOSED"
)

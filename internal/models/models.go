package models

import (
	"database/sql"
	"time"
)

// TableSession is the persistent record of one simulated table
type TableSession struct {
	ID           string       `db:"id" json:"id"`
	Token        string       `db:"token" json:"-"`
	ShotCount    int          `db:"shot_count" json:"shot_count"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	LastActivity time.Time    `db:"last_activity" json:"last_activity"`
	ClosedAt     sql.NullTime `db:"closed_at" json:"closed_at,omitempty"`
}

// Shot is one settled shot on a table
type Shot struct {
	ID         int       `db:"id" json:"id"`
	SessionID  string    `db:"session_id" json:"session_id"`
	ShotNumber int       `db:"shot_number" json:"shot_number"`
	AimX       float64   `db:"aim_x" json:"aim_x"`
	AimY       float64   `db:"aim_y" json:"aim_y"`
	DirectionX float64   `db:"direction_x" json:"direction_x"`
	DirectionY float64   `db:"direction_y" json:"direction_y"`
	Power      float64   `db:"power" json:"power"`
	Ticks      int       `db:"ticks" json:"ticks"`
	Contacts   int       `db:"contacts" json:"contacts"`
	FinalState string    `db:"final_state" json:"final_state"` // JSONB ball states
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AdminAudit is one admin action
type AdminAudit struct {
	ID        int       `db:"id" json:"id"`
	IP        string    `db:"ip" json:"ip"`
	Route     string    `db:"route" json:"route"`
	Action    string    `db:"action" json:"action"`
	Details   string    `db:"details" json:"details"` // JSONB
	Success   bool      `db:"success" json:"success"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/playmatatu/cuesim/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// EventsChannel is the pub/sub channel settled shots are announced on.
	EventsChannel = "table_events"
	snapshotTTL   = time.Hour
)

// TableEvent is the payload published on EventsChannel.
type TableEvent struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id"`
	Data      interface{} `json:"data,omitempty"`
}

func stateKey(id string) string {
	return "table:" + id + ":state"
}

// recordSession inserts the persistent table row.
func (sm *SessionManager) recordSession(ts *TableSession) {
	if sm == nil || sm.db == nil {
		return
	}
	_, err := sm.db.Exec(
		`INSERT INTO table_sessions (id, token, created_at, last_activity) VALUES ($1,$2,$3,$3) ON CONFLICT (id) DO NOTHING`,
		ts.ID, ts.Token, ts.CreatedAt,
	)
	if err != nil {
		log.Printf("[DB] Failed to record table %s: %v", ts.ID, err)
	}
}

// closeSession stamps closed_at on the table row.
func (sm *SessionManager) closeSession(ts *TableSession) {
	if sm == nil || sm.db == nil {
		return
	}
	if _, err := sm.db.Exec(`UPDATE table_sessions SET closed_at = NOW() WHERE id = $1`, ts.ID); err != nil {
		log.Printf("[DB] Failed to close table %s: %v", ts.ID, err)
	}
}

// RecordShot stores a settled shot with its final ball states as JSONB.
func (sm *SessionManager) RecordShot(ts *TableSession, s ShotSummary) {
	if sm == nil || sm.db == nil {
		return
	}

	finalState, err := json.Marshal(s.Balls)
	if err != nil {
		log.Printf("[DB] Failed to marshal final state for table %s: %v", ts.ID, err)
		return
	}

	tx, err := sm.db.Beginx()
	if err != nil {
		log.Printf("[DB] Failed to begin tx for table %s: %v", ts.ID, err)
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO shots (session_id, shot_number, aim_x, aim_y, direction_x, direction_y, power, ticks, contacts, final_state, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10::jsonb,NOW())`,
		s.SessionID, s.ShotNumber, s.Aim.X, s.Aim.Y, s.Direction.X, s.Direction.Y, s.Power, s.Ticks, s.Contacts, string(finalState),
	)
	if err != nil {
		log.Printf("[DB] Failed to record shot %d for table %s: %v", s.ShotNumber, ts.ID, err)
		return
	}
	if _, err := tx.Exec(`UPDATE table_sessions SET shot_count = $1, last_activity = NOW() WHERE id = $2`, s.ShotNumber, ts.ID); err != nil {
		log.Printf("[DB] Failed to update table %s: %v", ts.ID, err)
		return
	}
	if err := tx.Commit(); err != nil {
		log.Printf("[DB] Failed to commit shot for table %s: %v", ts.ID, err)
	}
}

// ListShots returns the recorded shots of a table in order.
func (sm *SessionManager) ListShots(id string) ([]models.Shot, error) {
	if sm.db == nil {
		return []models.Shot{}, nil
	}
	var shots []models.Shot
	err := sm.db.Select(&shots,
		`SELECT id, session_id, shot_number, aim_x, aim_y, direction_x, direction_y, power, ticks, contacts, final_state, created_at
		 FROM shots WHERE session_id = $1 ORDER BY shot_number`, id)
	if err != nil {
		return nil, fmt.Errorf("list shots for %s: %w", id, err)
	}
	if shots == nil {
		shots = []models.Shot{}
	}
	return shots, nil
}

// saveSessionToRedis snapshots the table so it survives a restart.
func (sm *SessionManager) saveSessionToRedis(ts *TableSession) error {
	if sm.rdb == nil {
		return nil
	}
	state := ts.State()
	payload := struct {
		SessionState
		Token string `json:"token"`
	}{state, ts.Token}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return sm.rdb.SetEx(context.Background(), stateKey(ts.ID), data, snapshotTTL).Err()
}

// loadSessionFromRedis rebuilds a table from its snapshot. Balls come back at
// rest at their snapshot positions.
func (sm *SessionManager) loadSessionFromRedis(id string) (*TableSession, error) {
	if sm.rdb == nil {
		return nil, errors.New("no redis client")
	}

	data, err := sm.rdb.Get(context.Background(), stateKey(id)).Result()
	if err == redis.Nil {
		return nil, errors.New("table not found in redis")
	}
	if err != nil {
		return nil, err
	}

	var snap struct {
		SessionState
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, err
	}
	if snap.Status == StatusClosed {
		return nil, errors.New("table closed")
	}

	ts := NewTableSession(snap.ID, snap.Token, SettingsFromConfig(sm.config.Physics))
	ts.ShotNumber = snap.ShotNumber
	ts.CreatedAt = snap.CreatedAt
	ts.LastActivity = time.Now()
	restoreBalls(ts.sim.Balls, snap.Balls)
	return ts, nil
}

// restoreBalls copies snapshot positions onto a freshly racked field,
// matched by ball number.
func restoreBalls(balls []*Ball, states []BallState) {
	byNumber := make(map[int]BallState, len(states))
	for _, s := range states {
		byNumber[s.Number] = s
	}
	for _, b := range balls {
		s, ok := byNumber[b.Number]
		if !ok {
			continue
		}
		b.Position = NewVec2(s.X, s.Y)
		b.Rotation = NewVec2(s.RotationX, s.RotationY)
		b.Stop()
	}
}

func (sm *SessionManager) deleteSessionFromRedis(id string) {
	if sm.rdb == nil {
		return
	}
	ctx := context.Background()
	if err := sm.rdb.Del(ctx, stateKey(id)).Err(); err != nil {
		log.Printf("[REDIS] Failed to delete table %s: %v", id, err)
	}
	sm.rdb.ZRem(ctx, expiryKey, id)
}

// publishEvent announces a table event to other server instances.
func (sm *SessionManager) publishEvent(eventType, id string, data interface{}) {
	if sm.rdb == nil {
		return
	}
	b, err := json.Marshal(TableEvent{Type: eventType, SessionID: id, Data: data})
	if err != nil {
		log.Printf("[REDIS] Failed to marshal %s event for %s: %v", eventType, id, err)
		return
	}
	if n, err := sm.rdb.Publish(context.Background(), EventsChannel, b).Result(); err != nil {
		log.Printf("[REDIS] publish %s failed: table=%s err=%v", eventType, id, err)
	} else {
		log.Printf("[REDIS] published %s: table=%s subscribers=%d", eventType, id, n)
	}
}

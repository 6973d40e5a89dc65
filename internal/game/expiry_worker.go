package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const expiryKey = "table_expiry"

// scheduleExpiry pushes the table's expiry deadline forward. Deadlines live in
// a Redis sorted set scored by unix time; without Redis the worker falls back
// to LastActivity.
func (sm *SessionManager) scheduleExpiry(ts *TableSession) {
	if sm.rdb == nil {
		return
	}
	deadline := time.Now().Add(sm.expiryAfter()).Unix()
	if err := sm.rdb.ZAdd(context.Background(), expiryKey, redis.Z{Score: float64(deadline), Member: ts.ID}).Err(); err != nil {
		log.Printf("[EXPIRY] Failed to schedule expiry for %s: %v", ts.ID, err)
	}
}

func (sm *SessionManager) expiryAfter() time.Duration {
	minutes := sm.config.SessionExpiryMinutes
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

// StartExpiryWorker starts a background worker that closes idle tables
func StartExpiryWorker(ctx context.Context, sm *SessionManager) {
	if sm == nil {
		log.Println("[EXPIRY] Session manager missing; expiry worker not started")
		return
	}

	poll := time.Duration(sm.config.ExpiryPollSeconds) * time.Second
	if poll <= 0 {
		poll = 30 * time.Second
	}

	log.Println("[EXPIRY] Expiry worker started")
	go func() {
		ticker := time.NewTicker(poll)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[EXPIRY] Expiry worker stopping")
				return
			case <-ticker.C:
				n := sm.ExpireIdle(ctx, time.Now())
				if n > 0 {
					log.Printf("[EXPIRY] Expired %d tables", n)
				}
			}
		}
	}()
}

// ExpireIdle removes every table whose deadline has passed and returns how
// many were removed. Rolling tables are left alone and rescheduled.
func (sm *SessionManager) ExpireIdle(ctx context.Context, now time.Time) int {
	var candidates []string
	if sm.rdb != nil {
		members, err := sm.rdb.ZRangeByScore(ctx, expiryKey, &redis.ZRangeBy{Min: "-inf", Max: fmt.Sprintf("%d", now.Unix())}).Result()
		if err != nil {
			log.Printf("[EXPIRY] Failed to fetch expired tables: %v", err)
		} else {
			for _, m := range members {
				// only the worker that removed the member acts on it
				if removed, _ := sm.rdb.ZRem(ctx, expiryKey, m).Result(); removed > 0 {
					candidates = append(candidates, m)
				}
			}
		}
	} else {
		cutoff := now.Add(-sm.expiryAfter())
		for _, st := range sm.ListSessions() {
			if st.LastActivity.Before(cutoff) {
				candidates = append(candidates, st.ID)
			}
		}
	}

	expired := 0
	for _, id := range candidates {
		sm.mu.RLock()
		ts, ok := sm.sessions[id]
		sm.mu.RUnlock()
		if !ok {
			sm.deleteSessionFromRedis(id)
			continue
		}
		if ts.IsRolling() {
			sm.scheduleExpiry(ts)
			continue
		}
		if err := sm.RemoveSession(id); err == nil {
			sm.publishEvent("table_expired", id, nil)
			expired++
		}
	}
	return expired
}

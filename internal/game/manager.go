package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/cuesim/internal/config"
	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound = errors.New("table session not found")
	ErrShotRejected    = errors.New("shot rejected: balls still moving")
)

// FrameSink receives every tick of a rolling table and the summary once the
// table settles. The websocket hub is the production sink.
type FrameSink interface {
	PublishFrame(f Frame)
	PublishSettled(s ShotSummary)
}

// SessionManager manages all live tables
type SessionManager struct {
	sessions map[string]*TableSession // keyed by session ID
	rdb      *redis.Client            // Redis client for snapshots and events
	db       *sqlx.DB                 // SQL DB for shot history
	config   *config.Config
	sink     FrameSink
	tick     time.Duration
	ctx      context.Context // parent of every frame loop
	mu       sync.RWMutex
}

var (
	// Global session manager instance
	Manager *SessionManager
)

// InitializeManager initializes the global session manager and starts the
// expiry worker.
func InitializeManager(ctx context.Context, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	Manager = NewSessionManager(db, rdb, cfg)
	Manager.ctx = ctx
	StartExpiryWorker(ctx, Manager)
}

// NewSessionManager creates a session manager. db and rdb may be nil, in which
// case persistence is skipped.
func NewSessionManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) *SessionManager {
	if cfg == nil {
		cfg = &config.Config{TickIntervalMS: 16, SessionExpiryMinutes: 30, ExpiryPollSeconds: 30, Physics: config.DefaultPhysics()}
	}
	tick := time.Duration(cfg.TickIntervalMS) * time.Millisecond
	if tick <= 0 {
		tick = 16 * time.Millisecond
	}
	return &SessionManager{
		sessions: make(map[string]*TableSession),
		rdb:      rdb,
		db:       db,
		config:   cfg,
		tick:     tick,
		ctx:      context.Background(),
	}
}

// SetSink installs the frame sink. Frames produced before a sink is set are dropped.
func (sm *SessionManager) SetSink(sink FrameSink) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sink = sink
}

func (sm *SessionManager) currentSink() FrameSink {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sink
}

// SettingsFromConfig maps the physics section of the config onto engine settings.
func SettingsFromConfig(p config.Physics) Settings {
	s := Settings{
		BallRadius:         p.BallRadius,
		ShotPower:          p.ShotPower,
		DragFactor:         p.Drag,
		MinPower:           p.MinPower,
		MaxContactsPerTick: p.MaxContactsPerTick,
	}
	def := DefaultSettings()
	if s.BallRadius <= 0 {
		s.BallRadius = def.BallRadius
	}
	// The rack spaces ball centres RackSpacing apart; anything larger overlaps.
	if s.BallRadius > RackSpacing/2 {
		log.Printf("[PHYSICS] ball radius %.2f exceeds rack spacing, using %.2f", s.BallRadius, RackSpacing/2)
		s.BallRadius = RackSpacing / 2
	}
	if s.ShotPower <= 0 {
		s.ShotPower = def.ShotPower
	}
	if s.DragFactor <= 0 || s.DragFactor >= 1 {
		s.DragFactor = def.DragFactor
	}
	if s.MinPower <= 0 {
		s.MinPower = def.MinPower
	}
	if s.MaxContactsPerTick <= 0 {
		s.MaxContactsPerTick = def.MaxContactsPerTick
	}
	return s
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// generateSessionID generates a unique table ID
func generateSessionID() string {
	return "table_" + generateToken(8)
}

// CreateSession racks a new table and registers it.
func (sm *SessionManager) CreateSession() *TableSession {
	ts := NewTableSession(generateSessionID(), generateToken(16), SettingsFromConfig(sm.config.Physics))

	sm.mu.Lock()
	sm.sessions[ts.ID] = ts
	sm.mu.Unlock()

	sm.recordSession(ts)
	sm.scheduleExpiry(ts)
	if err := sm.saveSessionToRedis(ts); err != nil {
		log.Printf("[REDIS] Failed to save table %s: %v", ts.ID, err)
	}
	log.Printf("[TABLE] Created table %s", ts.ID)
	return ts
}

// GetSession returns a live table, falling back to the Redis snapshot when
// the table is not in memory (e.g. after a restart).
func (sm *SessionManager) GetSession(id string) (*TableSession, error) {
	sm.mu.RLock()
	ts, ok := sm.sessions[id]
	sm.mu.RUnlock()
	if ok {
		return ts, nil
	}

	ts, err := sm.loadSessionFromRedis(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	sm.mu.Lock()
	if existing, ok := sm.sessions[id]; ok {
		ts = existing
	} else {
		sm.sessions[id] = ts
	}
	sm.mu.Unlock()
	log.Printf("[REDIS] Rehydrated table %s", id)
	return ts, nil
}

// ListSessions returns the state of every live table, oldest first.
func (sm *SessionManager) ListSessions() []SessionState {
	sm.mu.RLock()
	list := make([]*TableSession, 0, len(sm.sessions))
	for _, ts := range sm.sessions {
		list = append(list, ts)
	}
	sm.mu.RUnlock()

	states := make([]SessionState, 0, len(list))
	for _, ts := range list {
		states = append(states, ts.State())
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].CreatedAt.Before(states[j].CreatedAt)
	})
	return states
}

// IsLocal reports whether this instance holds the table in memory.
func (sm *SessionManager) IsLocal(id string) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	_, ok := sm.sessions[id]
	return ok
}

// ActiveCount returns the number of live tables.
func (sm *SessionManager) ActiveCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// RemoveSession closes a table and drops it from memory and Redis.
func (sm *SessionManager) RemoveSession(id string) error {
	sm.mu.Lock()
	ts, ok := sm.sessions[id]
	delete(sm.sessions, id)
	sm.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	ts.close()
	sm.closeSession(ts)
	sm.deleteSessionFromRedis(id)
	log.Printf("[TABLE] Removed table %s", id)
	return nil
}

// Shoot applies a shot to the table and, when accepted, starts the frame
// loop. Shots on a moving table return ErrShotRejected.
func (sm *SessionManager) Shoot(id string, point Vec2) (*TableSession, error) {
	ts, err := sm.GetSession(id)
	if err != nil {
		return nil, err
	}
	if !ts.TakeShot(point) {
		return ts, ErrShotRejected
	}
	sm.scheduleExpiry(ts)
	go sm.StartRolling(sm.ctx, ts)
	return ts, nil
}

// StartRolling drives one shot to rest on the configured frame interval,
// publishing every frame to the sink. It returns when the table settles, is
// closed, or ctx is done.
func (sm *SessionManager) StartRolling(ctx context.Context, ts *TableSession) {
	ticker := time.NewTicker(sm.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[TABLE] %s: frame loop stopping", ts.ID)
			return
		case <-ticker.C:
		}

		frame, settled := ts.Step()
		if sink := sm.currentSink(); sink != nil {
			sink.PublishFrame(frame)
		}
		if settled != nil {
			sm.settle(ts, *settled)
			return
		}
		if !frame.Moving {
			// closed mid-roll
			return
		}
	}
}

// settle persists a finished shot and notifies listeners.
func (sm *SessionManager) settle(ts *TableSession, summary ShotSummary) {
	log.Printf("[TABLE] %s: shot %d settled after %d ticks, %d contacts",
		ts.ID, summary.ShotNumber, summary.Ticks, summary.Contacts)

	sm.RecordShot(ts, summary)
	if err := sm.saveSessionToRedis(ts); err != nil {
		log.Printf("[REDIS] Failed to save table %s: %v", ts.ID, err)
	}
	sm.publishEvent("shot_settled", ts.ID, summary)
	if sink := sm.currentSink(); sink != nil {
		sink.PublishSettled(summary)
	}
}

package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/playmatatu/cuesim/internal/game"
	"github.com/redis/go-redis/v9"
)

// StartEventSubscriber relays table events published by other server
// instances to local clients. Events for tables this instance runs were
// already pushed by the frame sink and are skipped.
func StartEventSubscriber(ctx context.Context, rdb *redis.Client, hub *Hub, mgr *game.SessionManager) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; table event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, game.EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", game.EventsChannel)
		for msg := range ch {
			relayEvent(hub, mgr, []byte(msg.Payload))
		}
	}()
}

func relayEvent(hub *Hub, mgr *game.SessionManager, payload []byte) {
	var ev struct {
		Type      string          `json:"type"`
		SessionID string          `json:"session_id"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &ev); err != nil {
		log.Printf("[WS] invalid event payload: %v", err)
		return
	}
	if hub.RoomSize(ev.SessionID) == 0 {
		return
	}

	switch ev.Type {
	case "shot_settled":
		if mgr != nil && mgr.IsLocal(ev.SessionID) {
			return
		}
		var s game.ShotSummary
		if err := json.Unmarshal(ev.Data, &s); err != nil {
			log.Printf("[WS] invalid shot_settled payload for %s: %v", ev.SessionID, err)
			return
		}
		hub.PublishSettled(s)

	case "table_expired":
		hub.BroadcastToTable(ev.SessionID, map[string]interface{}{
			"type":    "table_closed",
			"message": "Table expired after inactivity",
		})

	default:
		log.Printf("[WS] unknown event type: %s", ev.Type)
	}
}

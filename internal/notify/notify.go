// Package notify broadcasts lifecycle events over Redis pub/sub for the
// mobile apps' realtime layer.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channels the mobile clients subscribe to.
const (
	ChannelStatusChanged     = "EVENT_STATUS_CHANGED"
	ChannelApprovalRequested = "EVENT_APPROVAL_REQUESTED"
	ChannelApprovalResolved  = "EVENT_APPROVAL_RESOLVED"
)

// Event is the payload published on every channel. Fields that do not apply
// to a given channel are left empty.
type Event struct {
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id,omitempty"`
	FromStatus    string    `json:"from_status,omitempty"`
	ToStatus      string    `json:"to_status,omitempty"`
	Actor         string    `json:"actor,omitempty"`
	ActorRole     string    `json:"actor_role,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	ApprovalID    string    `json:"approval_id,omitempty"`
	At            time.Time `json:"at"`
}

// Publisher pushes events to subscribers. Delivery is best-effort: the
// status write has already committed by the time an event goes out.
type Publisher interface {
	Publish(ctx context.Context, channel string, ev Event)
}

// RedisPublisher publishes events on Redis pub/sub channels. Failures are
// logged and swallowed so a flaky broker never rolls back a state change.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher returns a Publisher backed by rdb.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("failed to marshal event", "channel", channel, "error", err)
		return
	}
	if err := p.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		slog.Warn("failed to publish event", "channel", channel, "error", err)
	}
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) {}

package notify

import (
	"context"
	"encoding/json"
	"strings"

	"vivim-backend/internal/domain/event"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisPublisher hands lifecycle events to the external notification router
// over redis pub/sub. Channel: <prefix>.<event_type, lowercased>.
//
// Publish failures are logged and swallowed: a broken router must never roll
// back or block the state transition that produced the event. Delivery
// durability and read/unread bookkeeping are the router's responsibility.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
	log     zerolog.Logger
}

func NewRedisPublisher(rdb *redis.Client, channelPrefix string, log zerolog.Logger) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channelPrefix, log: log}
}

func (p *RedisPublisher) Publish(ctx context.Context, e event.Event) {
	if p.rdb == nil {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		p.log.Warn().Err(err).Str("event_type", string(e.Type)).Msg("notify: marshal event failed")
		return
	}
	channel := p.channel + "." + strings.ToLower(string(e.Type))
	if err := p.rdb.Publish(ctx, channel, data).Err(); err != nil {
		p.log.Warn().Err(err).
			Str("channel", channel).
			Str("entity_id", e.EntityID).
			Msg("notify: publish failed (non-fatal)")
		return
	}
	p.log.Debug().
		Str("channel", channel).
		Str("entity_id", e.EntityID).
		Str("project_id", e.ProjectID).
		Msg("notify: event published")
}

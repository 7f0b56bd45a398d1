package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Channel is the Redis pub/sub channel every event goes out on.
const Channel = "broadcast"

// Event is the wire form of a published event.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// RedisPublisher publishes events on the broadcast channel. Failures are
// logged and otherwise ignored.
type RedisPublisher struct {
	rdb *redis.Client
	log logrus.FieldLogger
}

func NewRedisPublisher(rdb *redis.Client, log logrus.FieldLogger) *RedisPublisher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RedisPublisher{rdb: rdb, log: log}
}

func (p *RedisPublisher) Publish(ctx context.Context, eventType string, payload any) {
	if p == nil || p.rdb == nil {
		return
	}
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		p.log.WithError(err).WithField("event", eventType).Warn("events: marshal event")
		return
	}
	if err := p.rdb.Publish(ctx, Channel, string(data)).Err(); err != nil {
		p.log.WithError(err).WithField("event", eventType).Warn("events: publish event")
	}
}

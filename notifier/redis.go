package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Itish41/asset-audit/models"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel carries reminders for downstream mail or chat workers.
const DefaultChannel = "audit:reminders"

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisDispatcher publishes reminders as JSON on a pub/sub channel.
type RedisDispatcher struct {
	rdb     publisher
	channel string
}

func NewRedisDispatcher(rdb publisher, channel string) *RedisDispatcher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisDispatcher{rdb: rdb, channel: channel}
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, r models.Reminder) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode reminder: %w", err)
	}
	if err := d.rdb.Publish(ctx, d.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish reminder for %s: %w", r.Assignee.ID, err)
	}
	return nil
}

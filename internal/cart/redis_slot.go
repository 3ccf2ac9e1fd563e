package cart

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// RedisSlot keeps every cart in a single hash keyed by SlotKey, one field per
// session, each field holding the JSON-encoded item sequence.
type RedisSlot struct {
	client *redis.Client
	field  string
}

func NewRedisSlot(client *redis.Client, sessionID string) *RedisSlot {
	return &RedisSlot{client: client, field: sessionID}
}

func (r *RedisSlot) Load(ctx context.Context) ([]Item, error) {
	val, err := r.client.HGet(ctx, SlotKey, r.field).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis HGET cart")
	}

	var items []Item
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, errors.Wrap(err, "parse cart data")
	}
	return items, nil
}

func (r *RedisSlot) Save(ctx context.Context, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := r.client.HSet(ctx, SlotKey, r.field, data).Err(); err != nil {
		return errors.Wrap(err, "redis HSET cart")
	}
	return nil
}

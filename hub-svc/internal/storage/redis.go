package storage

import (
	"context"
	"time"

	"marwad-digital-menu/hub-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const settingsKey = "settings"

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

// GetSettings returns the cached settings map; ok is false on a miss.
func (c *RedisCache) GetSettings(ctx context.Context) (domain.Settings, bool, error) {
	values, err := c.Client.HGetAll(ctx, settingsKey).Result()
	if err != nil {
		return nil, false, err
	}
	if len(values) == 0 {
		return nil, false, nil
	}
	return domain.Settings(values), true, nil
}

func (c *RedisCache) SetSettings(ctx context.Context, settings domain.Settings) error {
	if len(settings) == 0 {
		return nil
	}
	values := make(map[string]any, len(settings))
	for k, v := range settings {
		values[k] = v
	}
	pipe := c.Client.TxPipeline()
	pipe.Del(ctx, settingsKey)
	pipe.HSet(ctx, settingsKey, values)
	pipe.Expire(ctx, settingsKey, c.TTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisCache) InvalidateSettings(ctx context.Context) error {
	return c.Client.Del(ctx, settingsKey).Err()
}

func (c *RedisCache) CustomerMarkerKey(phone string) string {
	return "customer:" + phone
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	res, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisCache) SetMarker(ctx context.Context, key string) error {
	return c.Client.Set(ctx, key, "1", c.TTL).Err()
}

// ClearCustomerMarkers drops every first-time marker after history is wiped.
func (c *RedisCache) ClearCustomerMarkers(ctx context.Context) error {
	iter := c.Client.Scan(ctx, 0, c.CustomerMarkerKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

package storage

import (
	"context"
	"fmt"
	"time"

	"marwad-digital-menu/agg-svc/internal/domain"
	"marwad-digital-menu/reports"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore keeps daily keys for ttl; zero keeps them forever.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// RecordSale adds one sale to the day's totals and item rankings.
func (s *Store) RecordSale(ctx context.Context, day string, msg domain.KafkaMessage) error {
	dailyKey := reports.DailyKey(day)
	itemsKey := reports.ItemsKey(day)

	pipe := s.rdb.TxPipeline()
	pipe.HIncrByFloat(ctx, dailyKey, reports.FieldRevenue, msg.Total)
	pipe.HIncrByFloat(ctx, dailyKey, reports.RevenueField(msg.PaymentMode), msg.Total)
	pipe.HIncrBy(ctx, dailyKey, reports.FieldSalesCount, 1)
	for _, item := range msg.Items {
		if item.Qty <= 0 || item.Name == "" {
			continue
		}
		pipe.ZIncrBy(ctx, itemsKey, float64(item.Qty), item.Name)
		pipe.ZIncrBy(ctx, reports.AllTimeItemsKey, float64(item.Qty), item.Name)
	}
	s.expire(ctx, pipe, dailyKey, itemsKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record sale %d: %w", msg.SaleID, err)
	}
	return nil
}

// AdjustExpenses moves the day's expense total by delta.
func (s *Store) AdjustExpenses(ctx context.Context, day string, delta float64) error {
	dailyKey := reports.DailyKey(day)

	pipe := s.rdb.TxPipeline()
	pipe.HIncrByFloat(ctx, dailyKey, reports.FieldExpenses, delta)
	s.expire(ctx, pipe, dailyKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("adjust expenses for %s: %w", day, err)
	}
	return nil
}

// ClearReports deletes every report key.
func (s *Store) ClearReports(ctx context.Context) error {
	iter := s.rdb.Scan(ctx, 0, reports.KeyPattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan report keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete report keys: %w", err)
	}
	return nil
}

func (s *Store) expire(ctx context.Context, pipe redis.Pipeliner, keys ...string) {
	if s.ttl <= 0 {
		return
	}
	for _, key := range keys {
		pipe.Expire(ctx, key, s.ttl)
	}
}

package service

import (
	"context"

	"marwad-digital-menu/agg-svc/internal/domain"
	"marwad-digital-menu/agg-svc/internal/storage"
)

type StoreInterface interface {
	RecordSale(ctx context.Context, day string, msg domain.KafkaMessage) error
	AdjustExpenses(ctx context.Context, day string, delta float64) error
	ClearReports(ctx context.Context) error
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	Process(ctx context.Context, msg domain.KafkaMessage)
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)

package service

import (
	"context"

	"marwad-digital-menu/analytics-svc/internal/domain"
)

type AnalyticsInterface interface {
	Daily(ctx context.Context, date string) (*domain.DailyReport, error)
	TopItems(ctx context.Context, date string, limit int) ([]domain.ItemRank, error)
	Range(ctx context.Context, from, to string) (*domain.RangeReport, error)
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)

package service

import (
	"context"
	"log"
	"strconv"
	"strings"

	"marwad-digital-menu/hub-svc/internal/domain"
)

type SettingsService struct {
	repository SettingsRepository
	cache      SettingsCache
}

func NewSettingsService(repository SettingsRepository, cache SettingsCache) *SettingsService {
	return &SettingsService{repository: repository, cache: cache}
}

// Get reads through the cache; the database rows are authoritative.
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	if s.cache != nil {
		if settings, ok, err := s.cache.GetSettings(ctx); err == nil && ok {
			return settings, nil
		} else if err != nil {
			log.Printf("Error reading settings cache: %v", err)
		}
	}

	settings, err := s.repository.GetSettings(ctx)
	if err != nil {
		return nil, storeErr("get settings", err)
	}
	if s.cache != nil {
		if err := s.cache.SetSettings(ctx, settings); err != nil {
			log.Printf("Error caching settings: %v", err)
		}
	}
	return settings, nil
}

var numericSettings = map[string]struct{ min, max float64 }{
	domain.SettingDeliveryRadius: {min: 0, max: 1000},
	domain.SettingRestaurantLat:  {min: -90, max: 90},
	domain.SettingRestaurantLng:  {min: -180, max: 180},
}

// Update writes the given keys and returns the full refreshed map.
func (s *SettingsService) Update(ctx context.Context, values domain.Settings) (domain.Settings, error) {
	if len(values) == 0 {
		return nil, invalidf(ErrInvalidSettings, "no settings given")
	}
	clean := make(domain.Settings, len(values))
	for key, value := range values {
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" {
			return nil, invalidf(ErrInvalidSettings, "empty key")
		}
		if bounds, ok := numericSettings[key]; ok {
			f, err := strconv.ParseFloat(value, 64)
			if err != nil || f < bounds.min || f > bounds.max {
				return nil, invalidf(ErrInvalidSettings, "%s must be a number between %g and %g", key, bounds.min, bounds.max)
			}
		}
		clean[key] = value
	}

	if err := s.repository.UpsertSettings(ctx, clean); err != nil {
		return nil, storeErr("update settings", err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateSettings(ctx); err != nil {
			log.Printf("Error invalidating settings cache: %v", err)
		}
	}
	return s.Get(ctx)
}

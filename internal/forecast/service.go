package forecast

import (
	"context"
	"log/slog"

	"skycheck/internal/types"
)

// Fetcher is the upstream dependency of the Service, implemented by Provider
// and mocked in tests.
type Fetcher interface {
	FetchHourly(ctx context.Context, lat, lon float64, days int) ([]types.HourlySample, error)
}

// Service serves hourly forecast series, consulting the snapshot cache
// before the upstream. Cache failures degrade to upstream fetches; they are
// logged but never surfaced to callers.
type Service struct {
	fetcher Fetcher
	cache   *SnapshotCache
}

// NewService creates a Service over the given fetcher and cache. A nil cache
// disables caching entirely.
func NewService(fetcher Fetcher, cache *SnapshotCache) *Service {
	return &Service{fetcher: fetcher, cache: cache}
}

// GetHourly returns the hourly series for a coordinate over the given number
// of forecast days.
func (s *Service) GetHourly(ctx context.Context, lat, lon float64, days int) ([]types.HourlySample, error) {
	logger := types.LoggerFromContext(ctx)
	key := SnapshotKey(lat, lon, days)

	if s.cache != nil {
		cached, err := s.cache.Get(key)
		if err != nil {
			logger.Warn("forecast cache read failed, falling through to upstream",
				slog.String("key", key), slog.Any("error", err))
		} else if cached != nil {
			logger.Debug("forecast cache hit", slog.String("key", key))
			return cached, nil
		}
	}

	samples, err := s.fetcher.FetchHourly(ctx, lat, lon, days)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(key, samples); err != nil {
			logger.Warn("forecast cache write failed",
				slog.String("key", key), slog.Any("error", err))
		}
	}

	return samples, nil
}

package exchange

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Service serves rate tables, reusing a cached copy while it is fresh.
type Service struct {
	fetcher Fetcher
	cache   Cache
	key     string
	ttl     time.Duration
	logger  *zap.Logger
}

// NewService combines a fetcher and a cache. A nil cache or non-positive ttl
// disables caching.
func NewService(logger *zap.Logger, fetcher Fetcher, cache Cache, base string, ttl time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		key:     "emi-calculator:rates:" + base,
		ttl:     ttl,
		logger:  logger,
	}
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

// Rates returns the current rate table.
func (s *Service) Rates(ctx context.Context) (RateTable, error) {
	if s.cacheEnabled() {
		if raw, ok := s.cache.Get(ctx, s.key); ok {
			var table RateTable
			err := json.Unmarshal([]byte(raw), &table)
			if err == nil {
				return table, nil
			}
			s.logger.Warn("discarding unreadable cached rates",
				zap.String("op", "exchange.Rates"),
				zap.Error(err),
			)
		}
	}

	return s.Refresh(ctx)
}

// Refresh fetches a new rate table and replaces the cached copy.
func (s *Service) Refresh(ctx context.Context) (RateTable, error) {
	table, err := s.fetcher.FetchRates(ctx)
	if err != nil {
		return RateTable{}, err
	}

	if s.cacheEnabled() {
		raw, err := json.Marshal(table)
		if err == nil {
			err = s.cache.Set(ctx, s.key, string(raw), s.ttl)
		}
		if err != nil {
			s.logger.Warn("failed to cache exchange rates",
				zap.String("op", "exchange.Refresh"),
				zap.Error(err),
			)
		}
	}
	return table, nil
}

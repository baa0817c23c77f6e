package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubFetcher struct {
	calls int
	table RateTable
	err   error
}

func (s *stubFetcher) FetchRates(context.Context) (RateTable, error) {
	s.calls++
	return s.table, s.err
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "a", "1", 20*time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Set(ctx, "forever", "2", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if v, ok := cache.Get(ctx, "a"); !ok || v != "1" {
		t.Fatalf("Get(a) = %q, %v", v, ok)
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := cache.Get(ctx, "a"); ok {
		t.Error("expected entry to expire")
	}
	if v, ok := cache.Get(ctx, "forever"); !ok || v != "2" {
		t.Errorf("expected entry without ttl to persist, got %q, %v", v, ok)
	}
	if _, ok := cache.Get(ctx, "missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestServiceCachesRates(t *testing.T) {
	fetcher := &stubFetcher{table: newRateTable("USD", map[string]float64{"USD": 1, "INR": 83}, time.Time{})}
	svc := NewService(zap.NewNop(), fetcher, NewMemoryCache(), "USD", time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		table, err := svc.Rates(ctx)
		if err != nil {
			t.Fatalf("Rates() error = %v", err)
		}
		if len(table.Rates) != 2 {
			t.Fatalf("expected 2 rates, got %d", len(table.Rates))
		}
	}
	if fetcher.calls != 1 {
		t.Errorf("expected a single upstream fetch, got %d", fetcher.calls)
	}

	if _, err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if fetcher.calls != 2 {
		t.Errorf("expected refresh to fetch again, got %d calls", fetcher.calls)
	}
}

func TestServiceWithoutCache(t *testing.T) {
	fetcher := &stubFetcher{table: newRateTable("USD", map[string]float64{"USD": 1}, time.Time{})}
	svc := NewService(nil, fetcher, nil, "USD", time.Hour)

	for i := 0; i < 2; i++ {
		if _, err := svc.Rates(context.Background()); err != nil {
			t.Fatalf("Rates() error = %v", err)
		}
	}
	if fetcher.calls != 2 {
		t.Errorf("expected every call to fetch, got %d", fetcher.calls)
	}
}

func TestServiceDiscardsCorruptCache(t *testing.T) {
	cache := NewMemoryCache()
	fetcher := &stubFetcher{table: newRateTable("USD", map[string]float64{"USD": 1}, time.Time{})}
	svc := NewService(zap.NewNop(), fetcher, cache, "USD", time.Hour)
	_ = cache.Set(context.Background(), svc.key, "not json", time.Hour)

	if _, err := svc.Rates(context.Background()); err != nil {
		t.Fatalf("Rates() error = %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("expected corrupt entry to trigger a fetch, got %d calls", fetcher.calls)
	}
}

func TestServicePropagatesErrors(t *testing.T) {
	fetcher := &stubFetcher{err: ErrMissingAPIKey}
	svc := NewService(zap.NewNop(), fetcher, NewMemoryCache(), "USD", time.Hour)

	if _, err := svc.Rates(context.Background()); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestRedisCacheUnavailableIsMiss(t *testing.T) {
	cache := NewRedisCache("127.0.0.1:1")
	defer func() { _ = cache.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, ok := cache.Get(ctx, "anything"); ok {
		t.Error("expected a miss when redis is unreachable")
	}
	if err := cache.Ping(ctx); err == nil {
		t.Error("expected ping to fail when redis is unreachable")
	}
}

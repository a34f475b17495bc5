package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"skycheck/internal/types"
)

// fakeClock is an adjustable Clock for TTL tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func cacheSamples(n int) []types.HourlySample {
	var out []types.HourlySample
	for i := 0; i < n; i++ {
		out = append(out, types.HourlySample{
			Timestamp:    time.Date(2026, 6, 15, i, 0, 0, 0, time.UTC),
			TemperatureC: float64(10 + i),
			WindSpeedKmh: 12,
		})
	}
	return out
}

func TestSnapshotCache_RoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)}
	cache := NewSnapshotCache(time.Hour, clock)

	key := SnapshotKey(47.5, 11.25, 2)
	want := cacheSamples(24)
	if err := cache.Put(key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Timestamp.Equal(want[i].Timestamp) || got[i].TemperatureC != want[i].TemperatureC {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSnapshotCache_MissAndExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)}
	cache := NewSnapshotCache(time.Hour, clock)
	key := SnapshotKey(47.5, 11.25, 2)

	if got, err := cache.Get(key); err != nil || got != nil {
		t.Fatalf("empty cache: got %v, %v", got, err)
	}

	if err := cache.Put(key, cacheSamples(3)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	clock.now = clock.now.Add(time.Hour + time.Minute)
	if got, err := cache.Get(key); err != nil || got != nil {
		t.Fatalf("expired entry: got %v, %v", got, err)
	}
	if cache.Len() != 0 {
		t.Error("expired entry must be evicted on read")
	}
}

func TestSnapshotKey_Rounding(t *testing.T) {
	// ~100 m apart shares an entry; a different horizon does not.
	if SnapshotKey(47.50001, 11.25001, 2) != SnapshotKey(47.5, 11.25, 2) {
		t.Error("nearby coordinates must share a key")
	}
	if SnapshotKey(47.5, 11.25, 2) == SnapshotKey(47.5, 11.25, 3) {
		t.Error("different horizons must not share a key")
	}
}

// fakeFetcher counts upstream calls for cache-interaction tests.
type fakeFetcher struct {
	calls   int
	samples []types.HourlySample
	err     error
}

func (f *fakeFetcher) FetchHourly(ctx context.Context, lat, lon float64, days int) ([]types.HourlySample, error) {
	f.calls++
	return f.samples, f.err
}

func TestService_CachesUpstreamResult(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)}
	fetcher := &fakeFetcher{samples: cacheSamples(5)}
	svc := NewService(fetcher, NewSnapshotCache(time.Hour, clock))

	for i := 0; i < 3; i++ {
		got, err := svc.GetHourly(context.Background(), 47.5, 11.25, 2)
		if err != nil {
			t.Fatalf("GetHourly: %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("got %d samples, want 5", len(got))
		}
	}
	if fetcher.calls != 1 {
		t.Errorf("upstream called %d times, want 1", fetcher.calls)
	}
}

func TestService_UpstreamErrorPropagates(t *testing.T) {
	wantErr := types.NewAppError(types.ErrCodeUpstreamForecast, "down", nil)
	svc := NewService(&fakeFetcher{err: wantErr}, nil)

	_, err := svc.GetHourly(context.Background(), 47.5, 11.25, 2)
	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want %v", err, wantErr)
	}
}

func TestService_NilCacheAlwaysFetches(t *testing.T) {
	fetcher := &fakeFetcher{samples: cacheSamples(2)}
	svc := NewService(fetcher, nil)

	for i := 0; i < 2; i++ {
		if _, err := svc.GetHourly(context.Background(), 47.5, 11.25, 2); err != nil {
			t.Fatalf("GetHourly: %v", err)
		}
	}
	if fetcher.calls != 2 {
		t.Errorf("upstream called %d times, want 2", fetcher.calls)
	}
}

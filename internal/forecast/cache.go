package forecast

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"skycheck/internal/types"
)

// SnapshotCache is an in-memory TTL cache for hourly series, stored
// zstd-compressed. A full multi-day series for one coordinate is a few tens
// of kilobytes of JSON; compression keeps many cached coordinates cheap.
type SnapshotCache struct {
	mu      sync.Mutex
	entries map[string]snapshotEntry
	ttl     time.Duration
	clock   types.Clock

	encoderPool sync.Pool
	decoderPool sync.Pool
}

type snapshotEntry struct {
	compressed []byte
	storedAt   time.Time
}

// NewSnapshotCache creates a cache with the given entry TTL.
func NewSnapshotCache(ttl time.Duration, clock types.Clock) *SnapshotCache {
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &SnapshotCache{
		entries: make(map[string]snapshotEntry),
		ttl:     ttl,
		clock:   clock,
		encoderPool: sync.Pool{
			New: func() any {
				e, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
				if err != nil {
					// Cannot fail with nil output and default options.
					panic(fmt.Sprintf("failed to create zstd encoder: %v", err))
				}
				return e
			},
		},
		decoderPool: sync.Pool{
			New: func() any {
				d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
				if err != nil {
					panic(fmt.Sprintf("failed to create zstd decoder: %v", err))
				}
				return d
			},
		},
	}
}

// SnapshotKey derives the cache key for a coordinate and horizon. Coordinates
// are rounded to ~100 m so adjacent queries share an entry.
func SnapshotKey(lat, lon float64, days int) string {
	return fmt.Sprintf("%.3f:%.3f:%d", lat, lon, days)
}

// Get returns the cached series for the key, or nil when absent or expired.
// Expired entries are evicted on read.
func (c *SnapshotCache) Get(key string) ([]types.HourlySample, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && c.clock.Now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return nil, nil
	}

	dec := c.decoderPool.Get().(*zstd.Decoder)
	raw, err := dec.DecodeAll(entry.compressed, nil)
	c.decoderPool.Put(dec)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalCache, "failed to decompress cached forecast", err)
	}

	var samples []types.HourlySample
	if err := json.Unmarshal(raw, &samples); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalCache, "failed to decode cached forecast", err)
	}
	return samples, nil
}

// Put stores the series under the key, replacing any previous entry.
func (c *SnapshotCache) Put(key string, samples []types.HourlySample) error {
	raw, err := json.Marshal(samples)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalCache, "failed to encode forecast for caching", err)
	}

	enc := c.encoderPool.Get().(*zstd.Encoder)
	compressed := enc.EncodeAll(raw, nil)
	c.encoderPool.Put(enc)

	c.mu.Lock()
	c.entries[key] = snapshotEntry{compressed: compressed, storedAt: c.clock.Now()}
	c.mu.Unlock()
	return nil
}

// Len returns the number of live entries, counting expired ones not yet
// evicted.
func (c *SnapshotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

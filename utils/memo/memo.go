// Package memo caches the results of expensive upstream calls for a fixed window.
package memo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"newsbias/port/cache_port"
	"newsbias/utils/metrics"
)

const (
	// maxArgLength is the longest argument kept verbatim in a key; longer ones are hashed.
	maxArgLength = 64
	// maxComputeTime bounds a shared computation once it no longer follows its callers.
	maxComputeTime = 5 * time.Minute
)

// Memoizer stores JSON-encoded results in a CachePort. Concurrent misses for the
// same key share one computation. Failed computations are never stored.
type Memoizer struct {
	store  cache_port.CachePort
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func NewMemoizer(store cache_port.CachePort, ttl time.Duration, logger *slog.Logger) *Memoizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Memoizer{store: store, ttl: ttl, logger: logger}
}

func (m *Memoizer) TTL() time.Duration {
	return m.ttl
}

// Key builds "operation:arg1:arg2". Arguments longer than maxArgLength are
// replaced by their SHA-256 digest.
func Key(operation string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, operation)
	for _, a := range args {
		if len(a) > maxArgLength || strings.ContainsAny(a, ":\n") {
			sum := sha256.Sum256([]byte(a))
			a = hex.EncodeToString(sum[:])
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, ":")
}

// Do returns the stored value for (operation, args) or computes and stores it.
// Store failures degrade to computing without caching.
func Do[T any](ctx context.Context, m *Memoizer, operation string, args []string, compute func(context.Context) (T, error)) (T, error) {
	key := Key(operation, args...)

	if data, ok, err := m.store.Get(ctx, key); err != nil {
		m.logger.WarnContext(ctx, "cache lookup failed", "operation", operation, "error", err)
	} else if ok {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.RecordCacheLookup(operation, true)
			return cached, nil
		}
		m.logger.WarnContext(ctx, "discarding undecodable cache entry", "operation", operation, "key", key)
	}
	metrics.RecordCacheLookup(operation, false)

	// The computation is shared, so it must not stop when only the caller that
	// started it goes away. Each caller still returns on its own ctx.Done().
	ch := m.group.DoChan(key, func() (any, error) {
		computeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), maxComputeTime)
		defer cancel()

		result, err := compute(computeCtx)
		if err != nil {
			return result, err
		}
		data, err := json.Marshal(result)
		if err != nil {
			m.logger.WarnContext(ctx, "cannot encode result for cache", "operation", operation, "error", err)
			return result, nil
		}
		if err := m.store.Set(computeCtx, key, data, m.ttl); err != nil {
			m.logger.WarnContext(ctx, "cache store failed", "operation", operation, "error", err)
		}
		return result, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Shared {
			m.logger.DebugContext(ctx, "joined in-flight computation", "operation", operation)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

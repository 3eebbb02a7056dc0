package cache_port

//go:generate mockgen -source=cache_port.go -destination=../../mocks/mock_cache_port.go -package=mocks

import (
	"context"
	"time"
)

// CachePort stores opaque values under string keys with a per-entry lifetime.
type CachePort interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

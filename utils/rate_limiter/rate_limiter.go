package rate_limiter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	maxTrackedHosts = 256
	hostTTL         = 10 * time.Minute
)

// HostRateLimiter paces article page requests per news host; "www.cnn.com" and
// "cnn.com" share one limiter. Entries expire hostTTL after creation.
type HostRateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	interval time.Duration
}

// NewHostRateLimiter allows one request per interval per host. A non-positive
// interval disables waiting.
func NewHostRateLimiter(interval time.Duration) *HostRateLimiter {
	return &HostRateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxTrackedHosts, nil, hostTTL),
		interval: interval,
	}
}

func (h *HostRateLimiter) WaitForHost(ctx context.Context, rawURL string) error {
	host, err := HostKey(rawURL)
	if err != nil {
		return err
	}
	if h.interval <= 0 {
		return ctx.Err()
	}
	return h.limiterFor(host).Wait(ctx)
}

// HostKey is the lower-cased hostname without a leading "www.".
func HostKey(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return "", fmt.Errorf("missing host in URL %q", rawURL)
	}
	return host, nil
}

func (h *HostRateLimiter) limiterFor(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	if l, ok := h.limiters.Get(host); ok {
		return l
	}
	l := rate.NewLimiter(rate.Every(h.interval), 1)
	h.limiters.Add(host, l)
	return l
}

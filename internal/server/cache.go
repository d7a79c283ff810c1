package server

import (
	"sync"
	"time"

	"github.com/mj1618/focusd/internal/model"
	"github.com/mj1618/focusd/internal/platform"
)

// windowCache caches the full window list for a short TTL so bursts of tool
// calls (list then focus) enumerate windows once. A TTL of zero disables
// caching.
type windowCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	windows []model.Window
	fetched time.Time
}

func newWindowCache(ttl time.Duration) *windowCache {
	return &windowCache{ttl: ttl}
}

// List returns the cached window list or fetches a fresh one.
func (c *windowCache) List(wm platform.WindowManager) ([]model.Window, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl > 0 && c.windows != nil && time.Since(c.fetched) < c.ttl {
		return c.windows, nil
	}
	windows, err := wm.ListWindows(platform.ListOptions{})
	if err != nil {
		return nil, err
	}
	c.windows = windows
	c.fetched = time.Now()
	return windows, nil
}

// Invalidate drops the cached list. Called after focus actions, which change
// window ordering.
func (c *windowCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windows = nil
}

// Package cache keeps rendered pages in memory for a limited time.
package cache

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// PageCache is safe for concurrent use. Values are replaced as a whole,
// readers never see a partially written page.
type PageCache struct {
	items cmap.ConcurrentMap[string, entry]
	now   func() time.Time
}

func New() *PageCache {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *PageCache {
	return &PageCache{
		items: cmap.New[entry](),
		now:   now,
	}
}

// Get returns the cached value unless it is missing or expired
func (c *PageCache) Get(key string) ([]byte, bool) {
	e, ok := c.items.Get(key)
	if !ok {
		return nil, false
	}
	now := c.now()
	if e.expired(now) {
		// Only drop it if nobody stored a fresh value in the meantime
		c.items.RemoveCb(key, func(key string, v entry, exists bool) bool {
			return exists && v.expired(now)
		})
		return nil, false
	}
	return e.value, true
}

func (c *PageCache) Set(key string, value []byte, ttl time.Duration) {
	c.items.Set(key, entry{value: value, expiresAt: c.now().Add(ttl)})
}

// GetOrSet returns the cached value or stores whatever render produces.
// Errors are not cached.
func (c *PageCache) GetOrSet(key string, ttl time.Duration, render func() ([]byte, error)) ([]byte, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	value, err := render()
	if err != nil {
		return nil, err
	}
	c.Set(key, value, ttl)
	return value, nil
}

func (c *PageCache) Delete(key string) {
	c.items.Remove(key)
}

// Clear drops everything, the next request for any key recomputes it
func (c *PageCache) Clear() {
	c.items.Clear()
}

func (c *PageCache) Len() int {
	return c.items.Count()
}

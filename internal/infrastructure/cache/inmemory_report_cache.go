package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryReportCache implements ReportCache using process-local storage.
// Suitable for single-instance deployments and tests; state is not shared
// across processes.
type InMemoryReportCache struct {
	entries sync.Map // map[string]*reportEntry
	stopCh  chan struct{}
	stopped int32
}

type reportEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e *reportEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemoryReportCache creates an in-memory report cache with a
// background sweep for expired entries
func NewInMemoryReportCache() *InMemoryReportCache {
	c := &InMemoryReportCache{
		stopCh: make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// Get returns the cached payload for key
func (c *InMemoryReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*reportEntry)
		if !entry.isExpired() {
			return entry.value, true, nil
		}
		c.entries.Delete(key)
	}
	return nil, false, nil
}

// Set stores the payload with a TTL
func (c *InMemoryReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.entries.Store(key, &reportEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Delete removes a cached payload
func (c *InMemoryReportCache) Delete(ctx context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}

// Close stops the background sweep
func (c *InMemoryReportCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

func (c *InMemoryReportCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*reportEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

var _ ReportCache = (*InMemoryReportCache)(nil)

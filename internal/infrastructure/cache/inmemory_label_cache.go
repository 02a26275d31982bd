package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Interval between background sweeps of expired entries
const defaultCleanupInterval = 30 * time.Second

// InMemoryLabelCache implements LabelCache using process-local storage.
// Suitable for single-instance deployments and testing; entries are not
// shared across instances.
type InMemoryLabelCache struct {
	entries sync.Map // map[string]*labelEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// labelEntry wraps a cached label with its expiration time
type labelEntry struct {
	label     string
	expiresAt time.Time
}

func (e *labelEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryLabelCacheOption is a functional option for configuring the cache
type InMemoryLabelCacheOption func(*InMemoryLabelCache)

// WithInMemoryTTL sets the default TTL for cached labels
func WithInMemoryTTL(ttl time.Duration) InMemoryLabelCacheOption {
	return func(c *InMemoryLabelCache) {
		c.ttl = ttl
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryLabelCacheOption {
	return func(c *InMemoryLabelCache) {
		c.logger = logger
	}
}

// NewInMemoryLabelCache creates a new in-memory label cache
func NewInMemoryLabelCache(opts ...InMemoryLabelCacheOption) *InMemoryLabelCache {
	cache := &InMemoryLabelCache{
		ttl:    defaultLabelTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a cached label
func (c *InMemoryLabelCache) Get(ctx context.Context, kind string, id uuid.UUID) (string, bool, error) {
	key := labelKey(kind, id)

	if value, ok := c.entries.Load(key); ok {
		entry := value.(*labelEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.label, true, nil
		}
		// Expired, remove from cache
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	return "", false, nil
}

// Set stores a label in the cache
func (c *InMemoryLabelCache) Set(ctx context.Context, kind string, id uuid.UUID, label string, ttl time.Duration) error {
	if label == "" {
		return nil
	}

	if ttl == 0 {
		ttl = c.ttl
	}

	c.entries.Store(labelKey(kind, id), &labelEntry{
		label:     label,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Delete removes a cached label
func (c *InMemoryLabelCache) Delete(ctx context.Context, kind string, id uuid.UUID) error {
	c.entries.Delete(labelKey(kind, id))
	return nil
}

// Close stops the background cleanup goroutine
func (c *InMemoryLabelCache) Close() error {
	// Only close once
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryLabelCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of entries in the cache
func (c *InMemoryLabelCache) Count() int {
	count := 0
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemoryLabelCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.doCleanup()
		}
	}
}

// doCleanup removes expired entries
func (c *InMemoryLabelCache) doCleanup() {
	removed := 0
	c.entries.Range(func(key, value any) bool {
		entry := value.(*labelEntry)
		if entry.isExpired() {
			c.entries.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		c.logger.Debug("Cleaned up expired label cache entries",
			zap.Int("removed", removed))
	}
}

// Ensure InMemoryLabelCache implements LabelCache
var _ LabelCache = (*InMemoryLabelCache)(nil)

package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Default TTL applied when callers pass a zero duration
const defaultLabelTTL = 5 * time.Minute

// LabelCache stores display names for referenced aggregates keyed by
// kind and ID. Implementations must be safe for concurrent use.
type LabelCache interface {
	// Get retrieves a cached label. The second return value reports
	// whether the key was present.
	Get(ctx context.Context, kind string, id uuid.UUID) (string, bool, error)

	// Set stores a label with the given TTL. A zero TTL uses the
	// implementation default.
	Set(ctx context.Context, kind string, id uuid.UUID, label string, ttl time.Duration) error

	// Delete removes a cached label
	Delete(ctx context.Context, kind string, id uuid.UUID) error

	// Close releases any resources held by the cache
	Close() error
}

// labelKey builds the cache key for a kind/ID pair
func labelKey(kind string, id uuid.UUID) string {
	return "label:" + kind + ":" + id.String()
}

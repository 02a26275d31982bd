package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoaderFunc loads the display name for an aggregate when the cache
// misses. Returning an empty string means the aggregate was not found.
type LoaderFunc func(ctx context.Context, id uuid.UUID) (string, error)

// Resolver resolves display names for referenced aggregates through a
// LabelCache, falling through to registered loaders on a miss. Lookups
// are best effort: cache or loader failures yield an empty string so
// callers can fall back to their own repositories.
type Resolver struct {
	cache   LabelCache
	logger  *zap.Logger
	mu      sync.RWMutex
	loaders map[string]LoaderFunc
}

// NewResolver creates a resolver backed by the given cache
func NewResolver(cache LabelCache, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		cache:   cache,
		logger:  logger,
		loaders: make(map[string]LoaderFunc),
	}
}

// RegisterLoader registers the loader used to populate labels of the
// given kind on a cache miss
func (r *Resolver) RegisterLoader(kind string, loader LoaderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[kind] = loader
}

// Label resolves the display name for the given kind and ID. Returns an
// empty string when the aggregate is unknown or a lookup fails.
func (r *Resolver) Label(ctx context.Context, kind string, id uuid.UUID) string {
	label, found, err := r.cache.Get(ctx, kind, id)
	if err != nil {
		r.logger.Warn("label cache lookup failed",
			zap.String("kind", kind),
			zap.String("id", id.String()),
			zap.Error(err))
	}
	if found {
		return label
	}

	r.mu.RLock()
	loader, ok := r.loaders[kind]
	r.mu.RUnlock()
	if !ok {
		return ""
	}

	label, err = loader(ctx, id)
	if err != nil || label == "" {
		return ""
	}

	if err := r.cache.Set(ctx, kind, id, label, 0); err != nil {
		r.logger.Warn("failed to cache label",
			zap.String("kind", kind),
			zap.String("id", id.String()),
			zap.Error(err))
	}
	return label
}

// Invalidate removes a cached label, typically after the underlying
// aggregate was renamed or deleted
func (r *Resolver) Invalidate(ctx context.Context, kind string, id uuid.UUID) error {
	return r.cache.Delete(ctx, kind, id)
}

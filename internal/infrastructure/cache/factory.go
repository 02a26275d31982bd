package cache

import (
	"fmt"

	"github.com/hms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// LabelCacheFactory creates label caches based on configuration
type LabelCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// LabelCacheFactoryOption is a functional option for configuring the factory
type LabelCacheFactoryOption func(*LabelCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) LabelCacheFactoryOption {
	return func(f *LabelCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory
// cache when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) LabelCacheFactoryOption {
	return func(f *LabelCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewLabelCacheFactory creates a new factory
func NewLabelCacheFactory(cfg config.RedisConfig, opts ...LabelCacheFactoryOption) *LabelCacheFactory {
	f := &LabelCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based label cache
func (f *LabelCacheFactory) CreateRedisCache() (LabelCache, error) {
	cache, err := NewRedisLabelCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis label cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory label cache. In-memory caches
// do not share invalidations across process instances.
func (f *LabelCacheFactory) CreateInMemoryCache() LabelCache {
	return NewInMemoryLabelCache(WithInMemoryLogger(f.logger))
}

// CreateCache creates a label cache based on configuration. When Redis is
// disabled it returns the in-memory cache directly; otherwise it tries
// Redis first and falls back to in-memory if allowed.
func (f *LabelCacheFactory) CreateCache() (LabelCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-memory label cache")
		return f.CreateInMemoryCache(), nil
	}

	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis label cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for label cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory label cache. "+
		"Stale labels may be served across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}

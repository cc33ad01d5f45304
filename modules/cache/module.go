package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/redis/go-redis/v9"
)

// Config holds the plugin settings.
type Config struct {
	Addr   string
	Prefix string
	TTL    time.Duration
}

// PluginModule owns the Redis client shared by the catalog cache and the
// login rate limiter.
type PluginModule struct {
	container types.ServiceContainer
	cfg       Config
	client    *redis.Client
	store     *Store
	logger    types.Logger
}

// Compile-time interface checks.
var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates the cache plugin. The client is built eagerly so
// consumers can grab it from SetPlugin before Start runs.
func NewPluginModule(cfg Config, logger types.Logger) *PluginModule {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		PoolSize: 50,
	})
	return &PluginModule{
		cfg:    cfg,
		client: client,
		store:  NewStore(client, cfg.Prefix, cfg.TTL),
		logger: logger,
	}
}

// Name returns the module name.
func (m *PluginModule) Name() string {
	return "cache"
}

// Start verifies Redis is reachable.
func (m *PluginModule) Start(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := m.store.Ping(pingCtx); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", m.cfg.Addr, err)
	}
	m.logger.Info("Cache plugin started", "addr", m.cfg.Addr, "prefix", m.cfg.Prefix, "ttl", m.cfg.TTL.String())
	return nil
}

// Stop closes the Redis client.
func (m *PluginModule) Stop(_ context.Context) error {
	if err := m.client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis client: %w", err)
	}
	m.logger.Info("Cache plugin stopped")
	return nil
}

// SetContainer sets the service container for this plugin.
func (m *PluginModule) SetContainer(container types.ServiceContainer) {
	m.container = container
}

// Container returns the service container for this plugin.
func (m *PluginModule) Container() types.ServiceContainer {
	return m.container
}

// Store returns the JSON cache.
func (m *PluginModule) Store() *Store {
	return m.store
}

// Client returns the raw Redis client.
func (m *PluginModule) Client() *redis.Client {
	return m.client
}

// Health pings Redis and reports cache statistics.
func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	if err := m.store.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}

	stats := m.store.Stats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"addr":     m.cfg.Addr,
			"hits":     stats.Hits,
			"misses":   stats.Misses,
			"hit_rate": stats.HitRate,
		},
	}
}

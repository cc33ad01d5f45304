package database

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/gorm"
)

// PluginModule owns the shared GORM connection pool. Plugins start before and
// stop after regular modules, so every consumer sees an open pool.
type PluginModule struct {
	container types.ServiceContainer
	cfg       Config
	db        *gorm.DB
	logger    types.Logger
}

// Compile-time interface checks.
var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates the database plugin.
func NewPluginModule(cfg Config, logger types.Logger) *PluginModule {
	return &PluginModule{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *PluginModule) Name() string {
	return "database"
}

// Start opens the pool and migrates the schema.
func (m *PluginModule) Start(_ context.Context) error {
	db, err := Open(m.cfg)
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		_ = Close(db)
		return err
	}
	m.db = db

	m.logger.Info("Database plugin started", "driver", m.driver())
	return nil
}

// Stop closes the pool.
func (m *PluginModule) Stop(_ context.Context) error {
	if m.db != nil {
		if err := Close(m.db); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	m.logger.Info("Database plugin stopped")
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

// DB returns the shared handle. It is nil until Start has run.
func (m *PluginModule) DB() *gorm.DB {
	return m.db
}

// Health pings the store.
func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	stats := sqlDB.Stats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver":           m.driver(),
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
		},
	}
}

func (m *PluginModule) driver() string {
	if m.cfg.Driver == "" {
		return DriverSQLite
	}
	return m.cfg.Driver
}

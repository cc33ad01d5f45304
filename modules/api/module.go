// Package api exposes the task manager over HTTP with Fiber.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/example/task-manager-api/modules/annotation"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/cache"
	"github.com/example/task-manager-api/modules/catalog"
	"github.com/example/task-manager-api/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr            string
	AllowOrigins    string
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// APIModule is the HTTP API module.
type APIModule struct {
	cfg         Config
	app         *fiber.App
	cache       *cache.PluginModule
	authPort    auth.AuthPort
	catalogPort catalog.CatalogPort
	taskPort    task.TaskPort
	notesPort   annotation.AnnotationPort
	logger      types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.UsePluginModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(cfg Config, logger types.Logger) *APIModule {
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "*"
	}
	return &APIModule{cfg: cfg, logger: logger}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "catalog", "task", "annotation"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authPort = auth.NewAuthAdapter(container)
	case "catalog":
		m.catalogPort = catalog.NewCatalogAdapter(container)
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	case "annotation":
		m.notesPort = annotation.NewAnnotationAdapter(container)
	}
}

// SetPlugin receives the optional cache plugin backing the login limiter.
func (m *APIModule) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "cache" {
		return
	}
	if p, ok := plugin.(*cache.PluginModule); ok {
		m.cache = p
		return
	}
	m.logger.Error("Invalid plugin type", "alias", alias)
}

// Start builds the Fiber app and starts listening.
func (m *APIModule) Start(_ context.Context) error {
	if m.authPort == nil || m.catalogPort == nil || m.taskPort == nil || m.notesPort == nil {
		return fmt.Errorf("api dependencies not set")
	}

	m.app = NewApp(m.logger, m.cfg.AllowOrigins)

	var loginGuard fiber.Handler
	if m.cache != nil && m.cfg.LoginRateLimit > 0 {
		limiter := NewSlidingWindowLimiter(m.cache.Client(), m.cfg.LoginRateLimit, m.cfg.LoginRateWindow, "ratelimit:")
		loginGuard = RateLimit(limiter, "login", m.logger)
		m.logger.Info("Login rate limiting enabled",
			"limit", m.cfg.LoginRateLimit,
			"window", m.cfg.LoginRateWindow.String())
	}

	handlers := NewHandlers(m.authPort, m.catalogPort, m.taskPort, m.notesPort, m.logger)
	handlers.Mount(m.app, loginGuard)

	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.cfg.Addr); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", m.cfg.Addr)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr":          m.cfg.Addr,
			"rate_limiting": m.cache != nil && m.cfg.LoginRateLimit > 0,
		},
	}
}

// NewApp creates the Fiber app with the shared middleware stack.
func NewApp(appLogger types.Logger, allowOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Task Manager API",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(appLogger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	return app
}

// errorHandler renders errors that escape the handlers.
func errorHandler(log types.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"
		kind := "server_error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
			if code == fiber.StatusNotFound {
				kind = "not_found"
			}
		}

		log.Error("HTTP error", "code", code, "message", message, "error", err)

		return c.Status(code).JSON(ErrorResponse{
			Error:   kind,
			Message: message,
		})
	}
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/events"
	"github.com/example/task-manager-api/modules/cache"
	"github.com/example/task-manager-api/modules/database"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module owns categories and the cached category listing.
type Module struct {
	database *database.PluginModule
	cache    *cache.PluginModule
	service  *Service
	logger   types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the catalog module.
func NewModule(logger types.Logger) *Module {
	return &Module{logger: logger}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// SetPlugin receives the database and, when configured, the cache plugin.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	switch alias {
	case "db":
		if p, ok := plugin.(*database.PluginModule); ok {
			m.database = p
			return
		}
	case "cache":
		if p, ok := plugin.(*cache.PluginModule); ok {
			m.cache = p
			return
		}
	default:
		return
	}
	m.logger.Error("Invalid plugin type", "alias", alias)
}

// Start builds the service.
func (m *Module) Start(_ context.Context) error {
	if m.database == nil || m.database.DB() == nil {
		return fmt.Errorf("db plugin not set - ensure the database plugin is registered")
	}

	var c Cache
	if m.cache != nil {
		c = m.cache.Store()
	}
	m.service = NewService(NewRepository(m.database.DB()), c, m.logger)

	m.logger.Info("Catalog module started", "cache", m.cache != nil)
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Catalog module stopped")
	return nil
}

// Health reports whether the service is wired.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "not started"}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"cache": m.cache != nil},
	}
}

// RegisterEventConsumers subscribes to task and user events that change
// listings.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.onTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.onTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.onTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.UserUpdatedV1, m.onUserUpdated, m); err != nil {
		return fmt.Errorf("failed to register UserUpdated consumer: %w", err)
	}
	m.logger.Info("Registered event consumers",
		"events", []string{"TaskCreated.v1", "TaskUpdated.v1", "TaskDeleted.v1", "UserUpdated.v1"})
	return nil
}

func (m *Module) onTaskCreated(ctx context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.logger.Debug("Task created, dropping category cache", "task_id", event.TaskID, "category_id", event.CategoryID)
	m.invalidate(ctx)
	return nil
}

func (m *Module) onTaskUpdated(ctx context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.logger.Debug("Task updated, dropping category cache", "task_id", event.TaskID, "fields", event.Fields)
	m.invalidate(ctx)
	return nil
}

func (m *Module) onTaskDeleted(ctx context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.logger.Debug("Task deleted, dropping category cache", "task_id", event.TaskID, "category_id", event.CategoryID)
	m.invalidate(ctx)
	return nil
}

func (m *Module) onUserUpdated(ctx context.Context, event events.UserUpdatedEvent, _ *mono.Msg) error {
	if !event.Renamed() {
		return nil
	}
	m.logger.Debug("User renamed, dropping category cache", "user_id", event.UserID)
	m.invalidate(ctx)
	return nil
}

func (m *Module) invalidate(ctx context.Context) {
	if m.service != nil {
		m.service.invalidate(ctx)
	}
}

// RegisterServices registers the catalog request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"list-categories", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list-categories", json.Unmarshal, json.Marshal, m.handleList)
		}},
		{"get-category", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get-category", json.Unmarshal, json.Marshal, m.handleGet)
		}},
		{"list-category-tasks", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list-category-tasks", json.Unmarshal, json.Marshal, m.handleListTasks)
		}},
		{"create-category", func() error {
			return helper.RegisterTypedRequestReplyService(container, "create-category", json.Unmarshal, json.Marshal, m.handleCreate)
		}},
		{"relabel-category", func() error {
			return helper.RegisterTypedRequestReplyService(container, "relabel-category", json.Unmarshal, json.Marshal, m.handleRelabel)
		}},
		{"delete-category", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete-category", json.Unmarshal, json.Marshal, m.handleDelete)
		}},
		{"resolve-label", func() error {
			return helper.RegisterTypedRequestReplyService(container, "resolve-label", json.Unmarshal, json.Marshal, m.handleResolveLabel)
		}},
		{"invalidate-categories", func() error {
			return helper.RegisterTypedRequestReplyService(container, "invalidate-categories", json.Unmarshal, json.Marshal, m.handleInvalidate)
		}},
	}

	names := make([]string, 0, len(services))
	for _, s := range services {
		if err := s.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", s.name, err)
		}
		names = append(names, s.name)
	}
	m.logger.Info("Registered catalog services", "services", names)
	return nil
}

func (m *Module) handleList(ctx context.Context, _ ListCategoriesRequest, _ *mono.Msg) (ListCategoriesResponse, error) {
	categories, cached, err := m.service.List(ctx)
	if err != nil {
		return ListCategoriesResponse{}, err
	}
	return ListCategoriesResponse{Categories: categories, Cached: cached}, nil
}

func (m *Module) handleGet(ctx context.Context, req CategoryRequest, _ *mono.Msg) (task.CategoryView, error) {
	view, err := m.service.Get(ctx, req.CategoryID)
	if err != nil {
		return task.CategoryView{}, err
	}
	return *view, nil
}

func (m *Module) handleListTasks(ctx context.Context, req CategoryRequest, _ *mono.Msg) (CategoryTasksResponse, error) {
	tasks, err := m.service.ListTasks(ctx, req.CategoryID)
	if err != nil {
		return CategoryTasksResponse{}, err
	}
	return CategoryTasksResponse{Tasks: tasks}, nil
}

func (m *Module) handleCreate(ctx context.Context, req CreateCategoryRequest, _ *mono.Msg) (task.Detail, error) {
	detail, err := m.service.CreateForTask(ctx, req.TaskID, req.Label)
	if err != nil {
		return task.Detail{}, err
	}
	m.logger.Info("Category created", "label", detail.Category.Label, "task_id", req.TaskID)
	return *detail, nil
}

func (m *Module) handleRelabel(ctx context.Context, req RelabelCategoryRequest, _ *mono.Msg) (task.CategoryView, error) {
	view, err := m.service.Relabel(ctx, req.CategoryID, req.Label)
	if err != nil {
		return task.CategoryView{}, err
	}
	return *view, nil
}

func (m *Module) handleDelete(ctx context.Context, req CategoryRequest, _ *mono.Msg) (DeleteCategoryResponse, error) {
	label, err := m.service.Delete(ctx, req.CategoryID)
	if err != nil {
		return DeleteCategoryResponse{}, err
	}
	m.logger.Info("Category deleted", "category_id", req.CategoryID)
	return DeleteCategoryResponse{Message: fmt.Sprintf("Category '%s' deleted successfully", label)}, nil
}

func (m *Module) handleResolveLabel(ctx context.Context, req ResolveLabelRequest, _ *mono.Msg) (ResolveLabelResponse, error) {
	id, err := m.service.ResolveLabel(ctx, req.Label)
	if err != nil {
		return ResolveLabelResponse{}, err
	}
	return ResolveLabelResponse{CategoryID: id}, nil
}

func (m *Module) handleInvalidate(ctx context.Context, _ InvalidateCategoriesRequest, _ *mono.Msg) (InvalidateCategoriesResponse, error) {
	if err := m.service.Invalidate(ctx); err != nil {
		return InvalidateCategoriesResponse{}, err
	}
	return InvalidateCategoriesResponse{Invalidated: true}, nil
}

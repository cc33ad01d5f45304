package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/events"
	"github.com/example/task-manager-api/modules/catalog"
	"github.com/example/task-manager-api/modules/database"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module owns tasks and publishes task lifecycle events.
type Module struct {
	database   *database.PluginModule
	categories catalog.CatalogPort
	service    *Service
	eventBus   mono.EventBus
	logger     types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the task module.
func NewModule(logger types.Logger) *Module {
	return &Module{logger: logger}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "task"
}

// Dependencies returns the modules this module calls.
func (m *Module) Dependencies() []string {
	return []string{"catalog"}
}

// SetDependencyServiceContainer receives the catalog container.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "catalog" {
		m.categories = catalog.NewCatalogAdapter(container)
	}
}

// SetPlugin receives the database plugin.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "db" {
		return
	}
	db, ok := plugin.(*database.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for db", "alias", alias)
		return
	}
	m.database = db
}

// SetEventBus is called by the framework before Start.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

// Start builds the service.
func (m *Module) Start(_ context.Context) error {
	if m.database == nil || m.database.DB() == nil {
		return fmt.Errorf("db plugin not set - ensure the database plugin is registered")
	}
	if m.categories == nil {
		return fmt.Errorf("catalog dependency not set")
	}

	m.service = NewService(NewRepository(m.database.DB()), m.categories)
	m.logger.Info("Task module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Task module stopped")
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
		Details: map[string]any{"events": m.eventBus != nil},
	}
}

// RegisterServices registers the task request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-tasks", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-task", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get-task service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-task", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create-task service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "update-task", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update-task service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-task", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete-task service: %w", err)
	}

	m.logger.Info("Registered task services",
		"services", []string{"list-tasks", "get-task", "create-task", "update-task", "delete-task"})
	return nil
}

func (m *Module) handleList(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks}, nil
}

func (m *Module) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (domain.Detail, error) {
	detail, err := m.service.Get(ctx, req.TaskID)
	if err != nil {
		return domain.Detail{}, err
	}
	return *detail, nil
}

func (m *Module) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.Detail, error) {
	t, err := m.service.Create(ctx, req.UserID, CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		Priority:      req.Priority,
		CategoryLabel: req.CategoryLabel,
	})
	if err != nil {
		return domain.Detail{}, err
	}
	m.dropCategoryListing(ctx, t.ID)

	if m.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:     t.ID,
			Title:      t.Title,
			UserID:     t.UserID,
			CategoryID: t.CategoryID,
			CreatedAt:  time.Now(),
		}
		if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskCreated event", "task_id", t.ID, "error", err)
		}
	}
	return t.ToDetail(), nil
}

func (m *Module) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.Detail, error) {
	t, fields, err := m.service.Update(ctx, req.UserID, req.TaskID, Patch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		return domain.Detail{}, err
	}
	if len(fields) > 0 {
		m.dropCategoryListing(ctx, t.ID)
	}

	if m.eventBus != nil && len(fields) > 0 {
		event := events.TaskUpdatedEvent{
			TaskID:     t.ID,
			UserID:     t.UserID,
			CategoryID: t.CategoryID,
			Fields:     fields,
			UpdatedAt:  time.Now(),
		}
		if err := events.TaskUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskUpdated event", "task_id", t.ID, "error", err)
		}
	}
	return t.ToDetail(), nil
}

func (m *Module) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	t, err := m.service.Delete(ctx, req.UserID, req.TaskID)
	if err != nil {
		return DeleteTaskResponse{}, err
	}
	m.dropCategoryListing(ctx, t.ID)

	if m.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:     t.ID,
			UserID:     t.UserID,
			CategoryID: t.CategoryID,
			DeletedAt:  time.Now(),
		}
		if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskDeleted event", "task_id", t.ID, "error", err)
		}
	}
	m.logger.Info("Task deleted", "task_id", t.ID, "user_id", t.UserID)
	return DeleteTaskResponse{Message: fmt.Sprintf("Task '%s' deleted successfully", t.Title)}, nil
}

// dropCategoryListing invalidates the cached category listing before the
// write is acknowledged. The task events repeat it for other consumers.
func (m *Module) dropCategoryListing(ctx context.Context, taskID uint) {
	if m.categories == nil {
		return
	}
	if err := m.categories.Invalidate(ctx); err != nil {
		m.logger.Warn("Failed to invalidate category listing", "task_id", taskID, "error", err)
	}
}

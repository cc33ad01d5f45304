package annotation

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/modules/database"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module owns comments and time tracking.
type Module struct {
	database *database.PluginModule
	service  *Service
	logger   types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the annotation module.
func NewModule(logger types.Logger) *Module {
	return &Module{logger: logger}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "annotation"
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

// Start builds the service.
func (m *Module) Start(_ context.Context) error {
	if m.database == nil || m.database.DB() == nil {
		return fmt.Errorf("db plugin not set - ensure the database plugin is registered")
	}
	m.service = NewService(NewRepository(m.database.DB()))
	m.logger.Info("Annotation module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Annotation module stopped")
	return nil
}

// Health reports whether the service is wired.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "not started"}
	}
	return mono.HealthStatus{Healthy: true, Message: "operational"}
}

// RegisterServices registers the comment and tracking services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	// comments
	if err := helper.RegisterTypedRequestReplyService(
		container, "add-comment", json.Unmarshal, json.Marshal, m.handleAddComment,
	); err != nil {
		return fmt.Errorf("failed to register add-comment service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "edit-comment", json.Unmarshal, json.Marshal, m.handleEditComment,
	); err != nil {
		return fmt.Errorf("failed to register edit-comment service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-comment", json.Unmarshal, json.Marshal, m.handleDeleteComment,
	); err != nil {
		return fmt.Errorf("failed to register delete-comment service: %w", err)
	}

	// tracking
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-tracking", json.Unmarshal, json.Marshal, m.handleCreateTracking,
	); err != nil {
		return fmt.Errorf("failed to register create-tracking service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "update-tracking", json.Unmarshal, json.Marshal, m.handleUpdateTracking,
	); err != nil {
		return fmt.Errorf("failed to register update-tracking service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-tracking", json.Unmarshal, json.Marshal, m.handleGetTracking,
	); err != nil {
		return fmt.Errorf("failed to register get-tracking service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-trackings", json.Unmarshal, json.Marshal, m.handleListTrackings,
	); err != nil {
		return fmt.Errorf("failed to register list-trackings service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-tracking", json.Unmarshal, json.Marshal, m.handleDeleteTracking,
	); err != nil {
		return fmt.Errorf("failed to register delete-tracking service: %w", err)
	}

	m.logger.Info("Registered annotation services", "comments", 3, "tracking", 5)
	return nil
}

func (m *Module) handleAddComment(ctx context.Context, req AddCommentRequest, _ *mono.Msg) (domain.CommentView, error) {
	c, err := m.service.AddComment(ctx, req.UserID, req.TaskID, req.Content)
	if err != nil {
		return domain.CommentView{}, err
	}
	return c.ToView(), nil
}

func (m *Module) handleEditComment(ctx context.Context, req EditCommentRequest, _ *mono.Msg) (domain.CommentView, error) {
	c, err := m.service.EditComment(ctx, req.TaskID, req.CommentID, req.Content)
	if err != nil {
		return domain.CommentView{}, err
	}
	return c.ToView(), nil
}

func (m *Module) handleDeleteComment(ctx context.Context, req CommentRequest, _ *mono.Msg) (MessageResponse, error) {
	c, err := m.service.DeleteComment(ctx, req.TaskID, req.CommentID)
	if err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: fmt.Sprintf("Comment: %s has been deleted successfully", c.Content)}, nil
}

func (m *Module) handleCreateTracking(ctx context.Context, req CreateTrackingRequest, _ *mono.Msg) (domain.TrackingView, error) {
	tt, err := m.service.CreateTracking(ctx, req.TaskID, req.input())
	if err != nil {
		return domain.TrackingView{}, err
	}
	m.logger.Info("Tracking started", "task_id", req.TaskID, "tracking_id", tt.ID)
	return tt.ToView(), nil
}

func (m *Module) handleUpdateTracking(ctx context.Context, req UpdateTrackingRequest, _ *mono.Msg) (domain.TrackingView, error) {
	tt, err := m.service.UpdateTracking(ctx, req.TaskID, req.TrackingID, req.input())
	if err != nil {
		return domain.TrackingView{}, err
	}
	return tt.ToView(), nil
}

func (m *Module) handleGetTracking(ctx context.Context, req TrackingRequest, _ *mono.Msg) (domain.TrackingView, error) {
	tt, err := m.service.GetTracking(ctx, req.TaskID, req.TrackingID)
	if err != nil {
		return domain.TrackingView{}, err
	}
	return tt.ToView(), nil
}

func (m *Module) handleListTrackings(ctx context.Context, req ListTrackingsRequest, _ *mono.Msg) (ListTrackingsResponse, error) {
	trackings, err := m.service.ListTrackings(ctx, req.TaskID)
	if err != nil {
		return ListTrackingsResponse{}, err
	}
	views := make([]domain.TrackingView, 0, len(trackings))
	for i := range trackings {
		views = append(views, trackings[i].ToView())
	}
	return ListTrackingsResponse{Trackings: views}, nil
}

func (m *Module) handleDeleteTracking(ctx context.Context, req TrackingRequest, _ *mono.Msg) (MessageResponse, error) {
	if err := m.service.DeleteTracking(ctx, req.TaskID, req.TrackingID); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: fmt.Sprintf("Task tracking record with ID %d deleted successfully", req.TrackingID)}, nil
}

package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/modules/catalog"
	"github.com/example/task-manager-api/pkg/rpcerr"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort is what other modules use to reach the task module.
type TaskPort interface {
	List(ctx context.Context) ([]domain.Summary, error)
	Get(ctx context.Context, id uint) (*domain.Detail, error)
	Create(ctx context.Context, req CreateTaskRequest) (*domain.Detail, error)
	Update(ctx context.Context, req UpdateTaskRequest) (*domain.Detail, error)
	Delete(ctx context.Context, req DeleteTaskRequest) (string, error)
}

var knownErrors = []error{
	ErrTaskNotFound,
	ErrForbidden,
	catalog.ErrCategoryNotFound,
	domain.ErrInvalidTitle,
	domain.ErrInvalidPriority,
	domain.ErrInvalidLabel,
}

// TaskAdapter implements TaskPort over the task service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

var _ TaskPort = (*TaskAdapter)(nil)

// NewTaskAdapter creates a TaskAdapter. It panics on a nil container.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &TaskAdapter{container: container}
}

func (a *TaskAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, resp,
	); err != nil {
		return rpcerr.Translate(fmt.Errorf("%s request failed: %w", service, err), knownErrors...)
	}
	return nil
}

// List returns task summaries.
func (a *TaskAdapter) List(ctx context.Context) ([]domain.Summary, error) {
	var resp ListTasksResponse
	if err := a.call(ctx, "list-tasks", &ListTasksRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Get returns one task in detail.
func (a *TaskAdapter) Get(ctx context.Context, id uint) (*domain.Detail, error) {
	var resp domain.Detail
	if err := a.call(ctx, "get-task", &GetTaskRequest{TaskID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create stores a new task.
func (a *TaskAdapter) Create(ctx context.Context, req CreateTaskRequest) (*domain.Detail, error) {
	var resp domain.Detail
	if err := a.call(ctx, "create-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update patches a task.
func (a *TaskAdapter) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Detail, error) {
	var resp domain.Detail
	if err := a.call(ctx, "update-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a task and returns the confirmation message.
func (a *TaskAdapter) Delete(ctx context.Context, req DeleteTaskRequest) (string, error) {
	var resp DeleteTaskResponse
	if err := a.call(ctx, "delete-task", &req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/pkg/rpcerr"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CatalogPort is what other modules use to reach the catalog module.
type CatalogPort interface {
	List(ctx context.Context) ([]task.CategoryView, error)
	Get(ctx context.Context, id uint) (*task.CategoryView, error)
	ListTasks(ctx context.Context, id uint) ([]task.Summary, error)
	CreateForTask(ctx context.Context, taskID uint, label string) (*task.Detail, error)
	Relabel(ctx context.Context, id uint, label string) (*task.CategoryView, error)
	Delete(ctx context.Context, id uint) (string, error)
	ResolveLabel(ctx context.Context, label string) (uint, error)
	Invalidate(ctx context.Context) error
}

var knownErrors = []error{
	ErrCategoryNotFound,
	ErrDuplicateLabel,
	ErrTaskNotFound,
	ErrNoCategoryTasks,
	task.ErrInvalidLabel,
}

// CatalogAdapter implements CatalogPort over the catalog service container.
type CatalogAdapter struct {
	container mono.ServiceContainer
}

var _ CatalogPort = (*CatalogAdapter)(nil)

// NewCatalogAdapter creates a CatalogAdapter. It panics on a nil container.
func NewCatalogAdapter(container mono.ServiceContainer) *CatalogAdapter {
	if container == nil {
		panic("catalog adapter requires non-nil ServiceContainer")
	}
	return &CatalogAdapter{container: container}
}

func (a *CatalogAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, resp,
	); err != nil {
		return rpcerr.Translate(fmt.Errorf("%s request failed: %w", service, err), knownErrors...)
	}
	return nil
}

// List returns every category.
func (a *CatalogAdapter) List(ctx context.Context) ([]task.CategoryView, error) {
	var resp ListCategoriesResponse
	if err := a.call(ctx, "list-categories", &ListCategoriesRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Get returns one category with its tasks.
func (a *CatalogAdapter) Get(ctx context.Context, id uint) (*task.CategoryView, error) {
	var resp task.CategoryView
	if err := a.call(ctx, "get-category", &CategoryRequest{CategoryID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTasks returns the tasks of one category.
func (a *CatalogAdapter) ListTasks(ctx context.Context, id uint) ([]task.Summary, error) {
	var resp CategoryTasksResponse
	if err := a.call(ctx, "list-category-tasks", &CategoryRequest{CategoryID: id}, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// CreateForTask creates a category and files the task under it.
func (a *CatalogAdapter) CreateForTask(ctx context.Context, taskID uint, label string) (*task.Detail, error) {
	var resp task.Detail
	if err := a.call(ctx, "create-category", &CreateCategoryRequest{TaskID: taskID, Label: label}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Relabel renames a category.
func (a *CatalogAdapter) Relabel(ctx context.Context, id uint, label string) (*task.CategoryView, error) {
	var resp task.CategoryView
	if err := a.call(ctx, "relabel-category", &RelabelCategoryRequest{CategoryID: id, Label: label}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a category and returns the confirmation message.
func (a *CatalogAdapter) Delete(ctx context.Context, id uint) (string, error) {
	var resp DeleteCategoryResponse
	if err := a.call(ctx, "delete-category", &CategoryRequest{CategoryID: id}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResolveLabel maps a label to a category id.
func (a *CatalogAdapter) ResolveLabel(ctx context.Context, label string) (uint, error) {
	var resp ResolveLabelResponse
	if err := a.call(ctx, "resolve-label", &ResolveLabelRequest{Label: label}, &resp); err != nil {
		return 0, err
	}
	return resp.CategoryID, nil
}

// Invalidate drops the cached category listing and waits for the catalog
// module to confirm.
func (a *CatalogAdapter) Invalidate(ctx context.Context) error {
	var resp InvalidateCategoriesResponse
	return a.call(ctx, "invalidate-categories", &InvalidateCategoriesRequest{}, &resp)
}

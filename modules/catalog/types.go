package catalog

import (
	"github.com/example/task-manager-api/domain/task"
)

// ListCategoriesRequest has no parameters.
type ListCategoriesRequest struct{}

// ListCategoriesResponse carries every category with its tasks.
type ListCategoriesResponse struct {
	Categories []task.CategoryView `json:"categories"`
	Cached     bool                `json:"cached"`
}

// CategoryRequest addresses one category.
type CategoryRequest struct {
	CategoryID uint `json:"category_id"`
}

// CategoryTasksResponse carries the tasks of one category.
type CategoryTasksResponse struct {
	Tasks []task.Summary `json:"tasks"`
}

// CreateCategoryRequest creates a category for an existing task.
type CreateCategoryRequest struct {
	TaskID uint   `json:"task_id"`
	Label  string `json:"label"`
}

// RelabelCategoryRequest renames a category.
type RelabelCategoryRequest struct {
	CategoryID uint   `json:"category_id"`
	Label      string `json:"label"`
}

// DeleteCategoryResponse confirms a deletion.
type DeleteCategoryResponse struct {
	Message string `json:"message"`
}

// ResolveLabelRequest looks a category up by label.
type ResolveLabelRequest struct {
	Label string `json:"label"`
}

// ResolveLabelResponse carries the resolved category id.
type ResolveLabelResponse struct {
	CategoryID uint `json:"category_id"`
}

// InvalidateCategoriesRequest drops the cached category listing.
type InvalidateCategoriesRequest struct{}

// InvalidateCategoriesResponse confirms the listing was dropped.
type InvalidateCategoriesResponse struct {
	Invalidated bool `json:"invalidated"`
}

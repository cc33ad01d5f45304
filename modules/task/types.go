package task

import (
	domain "github.com/example/task-manager-api/domain/task"
)

// ListTasksRequest has no parameters.
type ListTasksRequest struct{}

// ListTasksResponse carries task summaries.
type ListTasksResponse struct {
	Tasks []domain.Summary `json:"tasks"`
}

// GetTaskRequest addresses one task.
type GetTaskRequest struct {
	TaskID uint `json:"task_id"`
}

// CreateTaskRequest creates a task owned by UserID.
type CreateTaskRequest struct {
	UserID        uint   `json:"user_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	CategoryLabel string `json:"category_label"`
}

// UpdateTaskRequest patches a task on behalf of UserID.
type UpdateTaskRequest struct {
	UserID      uint    `json:"user_id"`
	TaskID      uint    `json:"task_id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// DeleteTaskRequest deletes a task on behalf of UserID.
type DeleteTaskRequest struct {
	UserID uint `json:"user_id"`
	TaskID uint `json:"task_id"`
}

// DeleteTaskResponse confirms a deletion.
type DeleteTaskResponse struct {
	Message string `json:"message"`
}

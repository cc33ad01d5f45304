package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted after a task is stored.
type TaskCreatedEvent struct {
	TaskID     uint      `json:"task_id"`
	Title      string    `json:"title"`
	UserID     uint      `json:"user_id"`
	CategoryID uint      `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TaskCreatedV1 subject: events.task.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"task", "TaskCreated", "v1",
)

// TaskUpdatedEvent is emitted after an owner edits a task.
type TaskUpdatedEvent struct {
	TaskID     uint      `json:"task_id"`
	UserID     uint      `json:"user_id"`
	CategoryID uint      `json:"category_id"`
	Fields     []string  `json:"fields"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TaskUpdatedV1 subject: events.task.v1.task-updated
var TaskUpdatedV1 = helper.EventDefinition[TaskUpdatedEvent](
	"task", "TaskUpdated", "v1",
)

// TaskDeletedEvent is emitted after a task and its annotations are removed.
type TaskDeletedEvent struct {
	TaskID     uint      `json:"task_id"`
	UserID     uint      `json:"user_id"`
	CategoryID uint      `json:"category_id"`
	DeletedAt  time.Time `json:"deleted_at"`
}

// TaskDeletedV1 subject: events.task.v1.task-deleted
var TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
	"task", "TaskDeleted", "v1",
)

package task

import (
	"time"

	"github.com/example/task-manager-api/domain/user"
)

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
	PriorityRoutine  Priority = "Routine"
	PriorityOptional Priority = "Optional"
)

// Priorities lists every accepted priority in display order.
var Priorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
	PriorityRoutine,
	PriorityOptional,
}

// Category groups tasks under a unique label.
type Category struct {
	ID    uint   `gorm:"primaryKey"`
	Label string `gorm:"uniqueIndex;not null;size:100"`
	Tasks []Task `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for the Category entity.
func (Category) TableName() string {
	return "categories"
}

// Task is a unit of work owned by a single user.
type Task struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"not null;size:100"`
	Description string    `gorm:"type:text"`
	DueDate     time.Time `gorm:"not null;index"`
	Status      string    `gorm:"size:50"`
	Priority    Priority  `gorm:"not null;size:20"`
	CategoryID  uint      `gorm:"not null;index"`
	UserID      uint      `gorm:"not null;index"`

	Category Category      `gorm:"foreignKey:CategoryID"`
	User     user.User     `gorm:"foreignKey:UserID"`
	Comments []Comment     `gorm:"foreignKey:TaskID"`
	Tracking *TaskTracking `gorm:"foreignKey:TaskID"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// IsOwnedBy reports whether userID owns the task.
func (t *Task) IsOwnedBy(userID uint) bool {
	return t.UserID == userID
}

// Comment is a note a user leaves on a task.
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	Content   string    `gorm:"not null;type:text"`
	Timestamp time.Time `gorm:"not null"`
	UserID    uint      `gorm:"not null;index"`
	TaskID    uint      `gorm:"not null;index"`

	User user.User `gorm:"foreignKey:UserID"`
}

// TableName returns the table name for the Comment entity.
func (Comment) TableName() string {
	return "comments"
}

// TaskTracking records estimated and actual effort for a task.
// A task has at most one tracking record.
type TaskTracking struct {
	ID             uint    `gorm:"primaryKey"`
	TaskID         uint    `gorm:"uniqueIndex;not null"`
	EstimatedHours float64 `gorm:"not null"`
	StartedAt      *time.Time
	FinishedAt     *time.Time
	ActualHours    *float64
}

// TableName returns the table name for the TaskTracking entity.
func (TaskTracking) TableName() string {
	return "task_trackings"
}

package annotation

import (
	domain "github.com/example/task-manager-api/domain/task"
)

// AddCommentRequest posts a comment as UserID.
type AddCommentRequest struct {
	UserID  uint   `json:"user_id"`
	TaskID  uint   `json:"task_id"`
	Content string `json:"content"`
}

// EditCommentRequest rewrites a comment.
type EditCommentRequest struct {
	TaskID    uint    `json:"task_id"`
	CommentID uint    `json:"comment_id"`
	Content   *string `json:"content,omitempty"`
}

// CommentRequest addresses one comment of a task.
type CommentRequest struct {
	TaskID    uint `json:"task_id"`
	CommentID uint `json:"comment_id"`
}

// MessageResponse confirms a deletion.
type MessageResponse struct {
	Message string `json:"message"`
}

// TrackingFields carries optional tracking values in wire format.
type TrackingFields struct {
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	StartedAt      *string  `json:"started_at,omitempty"`
	FinishedAt     *string  `json:"finished_at,omitempty"`
}

// CreateTrackingRequest opens the tracking record of a task.
type CreateTrackingRequest struct {
	TaskID uint `json:"task_id"`
	TrackingFields
}

// UpdateTrackingRequest patches a tracking record.
type UpdateTrackingRequest struct {
	TaskID     uint `json:"task_id"`
	TrackingID uint `json:"tracking_id"`
	TrackingFields
}

// TrackingRequest addresses one tracking record of a task.
type TrackingRequest struct {
	TaskID     uint `json:"task_id"`
	TrackingID uint `json:"tracking_id"`
}

// ListTrackingsRequest addresses every tracking record of a task.
type ListTrackingsRequest struct {
	TaskID uint `json:"task_id"`
}

// ListTrackingsResponse carries tracking views.
type ListTrackingsResponse struct {
	Trackings []domain.TrackingView `json:"task_trackings"`
}

func (f TrackingFields) input() TrackingInput {
	return TrackingInput{
		EstimatedHours: f.EstimatedHours,
		StartedAt:      f.StartedAt,
		FinishedAt:     f.FinishedAt,
	}
}

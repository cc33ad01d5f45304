package annotation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/task-manager-api/domain/task"
)

var (
	ErrMissingContent  = errors.New("comment content is required")
	ErrMissingEstimate = errors.New("estimated_hours is required")
	ErrMissingStart    = errors.New("started_at is required")
)

// TrackingInput carries tracking fields as received on the wire. Timestamps
// use the DD/MM/YY HH:MM format.
type TrackingInput struct {
	EstimatedHours *float64
	StartedAt      *string
	FinishedAt     *string
}

// Service implements comments and time tracking on tasks.
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService creates a Service.
func NewService(repo *Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// AddComment posts content on task taskID as callerID.
func (s *Service) AddComment(ctx context.Context, callerID, taskID uint, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrMissingContent
	}

	c := &domain.Comment{
		Content:   content,
		Timestamp: s.now().UTC().Truncate(time.Second),
		UserID:    callerID,
		TaskID:    taskID,
	}
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		if err := tx.EnsureTask(ctx, taskID); err != nil {
			return err
		}
		return tx.CreateComment(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// EditComment replaces the content of comment commentID on task taskID.
// A nil content leaves the comment unchanged.
func (s *Service) EditComment(ctx context.Context, taskID, commentID uint, content *string) (*domain.Comment, error) {
	if content != nil && strings.TrimSpace(*content) == "" {
		return nil, ErrMissingContent
	}

	var c *domain.Comment
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		var err error
		c, err = tx.FindComment(ctx, taskID, commentID)
		if err != nil {
			return err
		}
		if content == nil {
			return nil
		}
		return tx.UpdateCommentContent(ctx, c, *content)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteComment removes comment commentID from task taskID and returns it.
func (s *Service) DeleteComment(ctx context.Context, taskID, commentID uint) (*domain.Comment, error) {
	var c *domain.Comment
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		var err error
		c, err = tx.FindComment(ctx, taskID, commentID)
		if err != nil {
			return err
		}
		return tx.DeleteComment(ctx, commentID)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateTracking opens the tracking record of task taskID. A task has at
// most one.
func (s *Service) CreateTracking(ctx context.Context, taskID uint, in TrackingInput) (*domain.TaskTracking, error) {
	if in.EstimatedHours == nil {
		return nil, ErrMissingEstimate
	}
	if in.StartedAt == nil || strings.TrimSpace(*in.StartedAt) == "" {
		return nil, ErrMissingStart
	}

	tt := &domain.TaskTracking{TaskID: taskID, EstimatedHours: *in.EstimatedHours}
	if err := applyTimestamps(tt, in); err != nil {
		return nil, err
	}
	tt.Recompute()

	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		if err := tx.EnsureTask(ctx, taskID); err != nil {
			return err
		}
		exists, err := tx.HasTracking(ctx, taskID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateTracking
		}
		return tx.CreateTracking(ctx, tt)
	})
	if err != nil {
		return nil, err
	}
	return tt, nil
}

// UpdateTracking applies the supplied fields and recomputes actual hours.
func (s *Service) UpdateTracking(ctx context.Context, taskID, trackingID uint, in TrackingInput) (*domain.TaskTracking, error) {
	var tt *domain.TaskTracking
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		var err error
		tt, err = tx.FindTracking(ctx, taskID, trackingID)
		if err != nil {
			return err
		}
		if in.EstimatedHours != nil {
			tt.EstimatedHours = *in.EstimatedHours
		}
		if err := applyTimestamps(tt, in); err != nil {
			return err
		}
		tt.Recompute()
		return tx.SaveTracking(ctx, tt)
	})
	if err != nil {
		return nil, err
	}
	return tt, nil
}

// GetTracking returns tracking trackingID of task taskID.
func (s *Service) GetTracking(ctx context.Context, taskID, trackingID uint) (*domain.TaskTracking, error) {
	return s.repo.FindTracking(ctx, taskID, trackingID)
}

// ListTrackings returns the tracking records of task taskID. None at all is
// reported as ErrNoTrackings.
func (s *Service) ListTrackings(ctx context.Context, taskID uint) ([]domain.TaskTracking, error) {
	if err := s.repo.EnsureTask(ctx, taskID); err != nil {
		return nil, err
	}
	out, err := s.repo.ListTrackings(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w for task %d", ErrNoTrackings, taskID)
	}
	return out, nil
}

// DeleteTracking removes tracking trackingID of task taskID.
func (s *Service) DeleteTracking(ctx context.Context, taskID, trackingID uint) error {
	return s.repo.Transaction(ctx, func(tx *Repository) error {
		if _, err := tx.FindTracking(ctx, taskID, trackingID); err != nil {
			return err
		}
		return tx.DeleteTracking(ctx, trackingID)
	})
}

func applyTimestamps(tt *domain.TaskTracking, in TrackingInput) error {
	if in.StartedAt != nil {
		t, err := domain.ParseTrackingTime(*in.StartedAt)
		if err != nil {
			return err
		}
		tt.StartedAt = &t
	}
	if in.FinishedAt != nil {
		t, err := domain.ParseTrackingTime(*in.FinishedAt)
		if err != nil {
			return err
		}
		tt.FinishedAt = &t
	}
	return nil
}

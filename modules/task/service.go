package task

import (
	"context"
	"strings"
	"time"

	domain "github.com/example/task-manager-api/domain/task"
)

// CategoryResolver maps a category label to its id.
type CategoryResolver interface {
	ResolveLabel(ctx context.Context, label string) (uint, error)
}

// CreateInput holds the fields of a new task.
type CreateInput struct {
	Title         string
	Description   string
	Status        string
	Priority      string
	CategoryLabel string
}

// Patch holds the optional fields of a task update.
type Patch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
}

// Service implements task management with owner-only mutation.
type Service struct {
	repo       *Repository
	categories CategoryResolver
	now        func() time.Time
}

// NewService creates a Service.
func NewService(repo *Repository, categories CategoryResolver) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		now:        time.Now,
	}
}

// List returns task summaries, latest due date first.
func (s *Service) List(ctx context.Context) ([]domain.Summary, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Summaries(tasks), nil
}

// Get returns the detail view of task id.
func (s *Service) Get(ctx context.Context, id uint) (*domain.Detail, error) {
	t, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := t.ToDetail()
	return &detail, nil
}

// Create validates in, resolves its category and stores a task owned by
// callerID, due today.
func (s *Service) Create(ctx context.Context, callerID uint, in CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if err := domain.ValidateTitle(title); err != nil {
		return nil, err
	}
	priority, err := domain.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	label, err := domain.NormalizeLabel(in.CategoryLabel)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.categories.ResolveLabel(ctx, label)
	if err != nil {
		return nil, err
	}

	t := &domain.Task{
		Title:       title,
		Description: in.Description,
		DueDate:     domain.Today(s.now()),
		Status:      in.Status,
		Priority:    priority,
		CategoryID:  categoryID,
		UserID:      callerID,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return s.repo.FindDetail(ctx, t.ID)
}

// Update applies patch to task id when callerID owns it. It returns the
// reloaded task and the names of the changed columns.
func (s *Service) Update(ctx context.Context, callerID, id uint, patch Patch) (*domain.Task, []string, error) {
	var columns []string
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		t, err := tx.Find(ctx, id)
		if err != nil {
			return err
		}
		if !t.IsOwnedBy(callerID) {
			return ErrForbidden
		}

		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if err := domain.ValidateTitle(title); err != nil {
				return err
			}
			t.Title = title
			columns = append(columns, "title")
		}
		if patch.Description != nil {
			t.Description = *patch.Description
			columns = append(columns, "description")
		}
		if patch.Status != nil {
			t.Status = *patch.Status
			columns = append(columns, "status")
		}
		if patch.Priority != nil {
			p, err := domain.ParsePriority(*patch.Priority)
			if err != nil {
				return err
			}
			t.Priority = p
			columns = append(columns, "priority")
		}
		return tx.UpdateColumns(ctx, t, columns)
	})
	if err != nil {
		return nil, nil, err
	}

	t, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return t, columns, nil
}

// Delete removes task id with its comments and tracking when callerID owns
// it. It returns the deleted row.
func (s *Service) Delete(ctx context.Context, callerID, id uint) (*domain.Task, error) {
	var deleted *domain.Task
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		t, err := tx.Find(ctx, id)
		if err != nil {
			return err
		}
		if !t.IsOwnedBy(callerID) {
			return ErrForbidden
		}
		if err := tx.DeleteCascade(ctx, id); err != nil {
			return err
		}
		deleted = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

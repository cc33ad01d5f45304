package task

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/task-manager-api/domain/task"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrForbidden    = errors.New("only the task owner can modify this task")
)

// Repository persists tasks.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction runs fn with a repository bound to a single transaction.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// List returns every task, latest due date first.
func (r *Repository) List(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Scopes(domain.WithOwner).
		Order("due_date DESC").
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindDetail loads a task with owner, category, comments and tracking.
func (r *Repository) FindDetail(ctx context.Context, id uint) (*domain.Task, error) {
	return r.find(r.db.WithContext(ctx).Scopes(domain.WithDetail), id)
}

// Find loads the bare task row.
func (r *Repository) Find(ctx context.Context, id uint) (*domain.Task, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *Repository) find(db *gorm.DB, id uint) (*domain.Task, error) {
	var t domain.Task
	if err := db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// Create inserts t. Associations are never written through a task.
func (r *Repository) Create(ctx context.Context, t *domain.Task) error {
	if err := r.db.WithContext(ctx).Omit("Category", "User", "Comments", "Tracking").Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("failed to create task: owner or category missing: %w", err)
		}
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// UpdateColumns writes the named columns of t.
func (r *Repository) UpdateColumns(ctx context.Context, t *domain.Task, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(t).Select(columns).Updates(t).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// DeleteCascade removes task id with its comments and tracking record.
func (r *Repository) DeleteCascade(ctx context.Context, id uint) error {
	n, err := domain.DeleteCascade(r.db.WithContext(ctx), "id = ?", id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

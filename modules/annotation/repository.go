package annotation

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/task-manager-api/domain/task"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrTrackingNotFound  = errors.New("task tracking not found")
	ErrNoTrackings       = errors.New("no task tracking records found")
	ErrDuplicateTracking = errors.New("task already has a tracking record")
)

// Repository persists comments and tracking records.
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

// EnsureTask fails with ErrTaskNotFound when task id does not exist.
func (r *Repository) EnsureTask(ctx context.Context, id uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}
	if count == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CreateComment inserts c and reloads it with its author.
func (r *Repository) CreateComment(ctx context.Context, c *domain.Comment) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("User").Create(c).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return db.Preload("User").First(c, c.ID).Error
}

// FindComment loads comment id of task taskID with its author.
func (r *Repository) FindComment(ctx context.Context, taskID, id uint) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("task_id = ?", taskID).
		First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return &c, nil
}

// UpdateCommentContent rewrites the content of c.
func (r *Repository) UpdateCommentContent(ctx context.Context, c *domain.Comment, content string) error {
	if err := r.db.WithContext(ctx).Model(c).Update("content", content).Error; err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	c.Content = content
	return nil
}

// DeleteComment removes comment id.
func (r *Repository) DeleteComment(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Comment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// HasTracking reports whether task taskID already has a tracking record.
func (r *Repository) HasTracking(ctx context.Context, taskID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.TaskTracking{}).Where("task_id = ?", taskID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check tracking: %w", err)
	}
	return count > 0, nil
}

// CreateTracking inserts tt. The unique index on task_id maps to
// ErrDuplicateTracking.
func (r *Repository) CreateTracking(ctx context.Context, tt *domain.TaskTracking) error {
	if err := r.db.WithContext(ctx).Create(tt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTracking
		}
		return fmt.Errorf("failed to create tracking: %w", err)
	}
	return nil
}

// FindTracking loads tracking id of task taskID.
func (r *Repository) FindTracking(ctx context.Context, taskID, id uint) (*domain.TaskTracking, error) {
	var tt domain.TaskTracking
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).First(&tt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackingNotFound
		}
		return nil, fmt.Errorf("failed to find tracking: %w", err)
	}
	return &tt, nil
}

// ListTrackings returns the tracking records of task taskID.
func (r *Repository) ListTrackings(ctx context.Context, taskID uint) ([]domain.TaskTracking, error) {
	var out []domain.TaskTracking
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list trackings: %w", err)
	}
	return out, nil
}

// SaveTracking writes every column of tt.
func (r *Repository) SaveTracking(ctx context.Context, tt *domain.TaskTracking) error {
	if err := r.db.WithContext(ctx).Save(tt).Error; err != nil {
		return fmt.Errorf("failed to save tracking: %w", err)
	}
	return nil
}

// DeleteTracking removes tracking id.
func (r *Repository) DeleteTracking(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.TaskTracking{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete tracking: %w", err)
	}
	return nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/task-manager-api/domain/task"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateLabel   = errors.New("category label already exists")
	ErrTaskNotFound     = errors.New("task not found")
	ErrNoCategoryTasks  = errors.New("no tasks found for category")
)

// Repository persists categories.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func withTasks(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.id ASC")
		}).
		Preload("Tasks.User")
}

// labelMatch compares labels ignoring case and surrounding whitespace.
func labelMatch(db *gorm.DB, label string) *gorm.DB {
	return db.Where("LOWER(label) = ?", strings.ToLower(strings.TrimSpace(label)))
}

// List returns every category ordered by label with its tasks.
func (r *Repository) List(ctx context.Context) ([]task.Category, error) {
	var categories []task.Category
	if err := r.db.WithContext(ctx).Scopes(withTasks).Order("label ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// FindByID loads a category with its tasks.
func (r *Repository) FindByID(ctx context.Context, id uint) (*task.Category, error) {
	return findCategory(r.db.WithContext(ctx).Scopes(withTasks), id)
}

// FindByLabel loads a category by label, ignoring case.
func (r *Repository) FindByLabel(ctx context.Context, label string) (*task.Category, error) {
	var category task.Category
	if err := labelMatch(r.db.WithContext(ctx), label).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// TasksOf returns the tasks filed under category id.
func (r *Repository) TasksOf(ctx context.Context, id uint) ([]task.Task, error) {
	var tasks []task.Task
	err := r.db.WithContext(ctx).
		Scopes(task.WithOwner).
		Where("category_id = ?", id).
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list category tasks: %w", err)
	}
	return tasks, nil
}

// CreateForTask creates a category with label and files task taskID under it.
// It returns the task reloaded with its details.
func (r *Repository) CreateForTask(ctx context.Context, taskID uint, label string) (*task.Task, error) {
	var result task.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t task.Task
		if err := tx.First(&t, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		if err := ensureLabelFree(tx, label, 0); err != nil {
			return err
		}

		category := task.Category{Label: label}
		if err := tx.Create(&category).Error; err != nil {
			return translateWriteError(err)
		}
		if err := tx.Model(&t).Update("category_id", category.ID).Error; err != nil {
			return fmt.Errorf("failed to reassign task: %w", err)
		}

		return tx.Scopes(task.WithDetail).First(&result, taskID).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Relabel changes the label of category id and returns it with its tasks.
func (r *Repository) Relabel(ctx context.Context, id uint, label string) (*task.Category, error) {
	var result *task.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := findCategory(tx, id)
		if err != nil {
			return err
		}
		if err := ensureLabelFree(tx, label, id); err != nil {
			return err
		}
		if err := tx.Model(category).Update("label", label).Error; err != nil {
			return translateWriteError(err)
		}

		result, err = findCategory(tx.Scopes(withTasks), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes category id together with its tasks and their comments and
// tracking records. It returns the deleted category.
func (r *Repository) Delete(ctx context.Context, id uint) (*task.Category, error) {
	var deleted *task.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := findCategory(tx, id)
		if err != nil {
			return err
		}
		if _, err := task.DeleteCascade(tx, "category_id = ?", id); err != nil {
			return err
		}
		if err := tx.Delete(&task.Category{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		deleted = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func findCategory(db *gorm.DB, id uint) (*task.Category, error) {
	var category task.Category
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// ensureLabelFree fails with ErrDuplicateLabel when another category (other
// than exceptID) already uses label in any letter case.
func ensureLabelFree(tx *gorm.DB, label string, exceptID uint) error {
	q := labelMatch(tx.Model(&task.Category{}), label)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check label: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateLabel, label)
	}
	return nil
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateLabel
	}
	return fmt.Errorf("failed to save category: %w", err)
}

package task

import (
	"fmt"

	"gorm.io/gorm"
)

// WithOwner preloads the owning user for summary projections.
func WithOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("User")
}

// WithDetail preloads everything ToDetail reads.
func WithDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Category").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.timestamp ASC, comments.id ASC")
		}).
		Preload("Comments.User").
		Preload("Tracking")
}

// DeleteCascade removes the tasks matching the condition together with their
// comments and tracking records. It must run inside a transaction.
func DeleteCascade(tx *gorm.DB, query any, args ...any) (int64, error) {
	var ids []uint
	if err := tx.Model(&Task{}).Where(query, args...).Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("failed to collect tasks: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := tx.Where("task_id IN ?", ids).Delete(&Comment{}).Error; err != nil {
		return 0, fmt.Errorf("failed to delete comments: %w", err)
	}
	if err := tx.Where("task_id IN ?", ids).Delete(&TaskTracking{}).Error; err != nil {
		return 0, fmt.Errorf("failed to delete task trackings: %w", err)
	}
	result := tx.Where("id IN ?", ids).Delete(&Task{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", result.Error)
	}
	return result.RowsAffected, nil
}

package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todo-list-api/internal/models"
)

// SubtaskStore handles durable CRUD for subtasks, keyed by parent task.
type SubtaskStore struct {
	db *gorm.DB
}

func NewSubtaskStore(db *gorm.DB) *SubtaskStore {
	return &SubtaskStore{db: db}
}

// WithTx returns a copy of the store scoped to the given transaction.
func (s *SubtaskStore) WithTx(tx *gorm.DB) *SubtaskStore {
	return &SubtaskStore{db: tx}
}

func (s *SubtaskStore) Create(ctx context.Context, subtask *models.Subtask) error {
	if err := s.db.WithContext(ctx).Create(subtask).Error; err != nil {
		return fmt.Errorf("create subtask: %w", err)
	}
	return nil
}

// FindByTaskID returns all subtasks of a task, oldest first.
func (s *SubtaskStore) FindByTaskID(ctx context.Context, taskID uint) ([]models.Subtask, error) {
	var subtasks []models.Subtask
	if err := s.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&subtasks).Error; err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}
	return subtasks, nil
}

// FindOne loads a subtask by id and parent task. Returns
// gorm.ErrRecordNotFound when absent.
func (s *SubtaskStore) FindOne(ctx context.Context, subtaskID, taskID uint) (*models.Subtask, error) {
	var subtask models.Subtask
	if err := s.db.WithContext(ctx).
		Where("id = ? AND task_id = ?", subtaskID, taskID).
		First(&subtask).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

// Update applies an explicit column set to the subtask.
func (s *SubtaskStore) Update(ctx context.Context, subtaskID, taskID uint, fields map[string]any) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Subtask{}).
		Where("id = ? AND task_id = ?", subtaskID, taskID).
		Updates(fields)
	if result.Error != nil {
		return 0, fmt.Errorf("update subtask: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// SetStatus transitions a single subtask.
func (s *SubtaskStore) SetStatus(ctx context.Context, subtaskID, taskID uint, status models.TaskStatus) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Subtask{}).
		Where("id = ? AND task_id = ?", subtaskID, taskID).
		Update("status", status)
	if result.Error != nil {
		return 0, fmt.Errorf("set subtask status: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *SubtaskStore) Delete(ctx context.Context, subtaskID, taskID uint) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND task_id = ?", subtaskID, taskID).
		Delete(&models.Subtask{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete subtask: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CompletionStats counts a task's subtasks, total and completed, in one pass.
type CompletionStats struct {
	Total     int64
	Completed int64
}

func (s *SubtaskStore) GetCompletionStats(ctx context.Context, taskID uint) (CompletionStats, error) {
	var stats CompletionStats
	err := s.db.WithContext(ctx).Model(&models.Subtask{}).
		Select("COUNT(*) as total, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as completed", models.StatusCompleted).
		Where("task_id = ?", taskID).
		Scan(&stats).Error
	if err != nil {
		return CompletionStats{}, fmt.Errorf("subtask completion stats: %w", err)
	}
	return stats, nil
}

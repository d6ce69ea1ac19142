package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todo-list-api/internal/models"
)

// TaskStore handles durable CRUD for tasks, always keyed by owning user.
type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

// WithTx returns a copy of the store scoped to the given transaction.
func (s *TaskStore) WithTx(tx *gorm.DB) *TaskStore {
	return &TaskStore{db: tx}
}

func (s *TaskStore) Create(ctx context.Context, task *models.Task) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// FindAll returns the user's tasks newest first, each with its subtasks
// oldest first. An empty status means no status filter.
func (s *TaskStore) FindAll(ctx context.Context, userID uint, status models.TaskStatus) ([]models.Task, error) {
	query := s.db.WithContext(ctx).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("subtasks.created_at ASC")
		}).
		Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// FindOne loads a task by id and owning user. Returns gorm.ErrRecordNotFound
// when the task does not exist or belongs to someone else.
func (s *TaskStore) FindOne(ctx context.Context, taskID, userID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindWithSubtasks is FindOne plus the subtask list, oldest first.
func (s *TaskStore) FindWithSubtasks(ctx context.Context, taskID, userID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("subtasks.created_at ASC")
		}).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies an explicit column set to the task. Returns the number of
// affected rows; 0 means the task vanished between check and update.
func (s *TaskStore) Update(ctx context.Context, taskID, userID uint, fields map[string]any) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(fields)
	if result.Error != nil {
		return 0, fmt.Errorf("update task: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// SetProgress persists the reconciled status/progress pair onto the task row.
// Keyed by task id alone; only the reconciler calls this, after the caller's
// ownership check has already passed.
func (s *TaskStore) SetProgress(ctx context.Context, taskID uint, status models.TaskStatus, progress float64) error {
	if err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{"status": status, "progress": progress}).Error; err != nil {
		return fmt.Errorf("set task progress: %w", err)
	}
	return nil
}

// Delete removes the task; dependent subtasks go with it via the FK cascade.
func (s *TaskStore) Delete(ctx context.Context, taskID, userID uint) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&models.Task{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete task: %w", result.Error)
	}
	return result.RowsAffected, nil
}

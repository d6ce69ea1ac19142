package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"todo-list-api/internal/models"
	"todo-list-api/internal/progress"
	"todo-list-api/internal/store"
)

// TaskService is the ownership-checked CRUD surface for tasks.
type TaskService struct {
	db         *gorm.DB
	tasks      *store.TaskStore
	reconciler *progress.Reconciler
}

func NewTaskService(db *gorm.DB, tasks *store.TaskStore, reconciler *progress.Reconciler) *TaskService {
	return &TaskService{db: db, tasks: tasks, reconciler: reconciler}
}

// CreateTaskInput carries the client-settable fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    models.TaskPriority
}

// UpdateTaskInput is an explicit field-update set: nil means "leave as is".
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *models.TaskPriority
	Status      *models.TaskStatus
	Progress    *float64
}

func (in UpdateTaskInput) fields() map[string]any {
	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.DueDate != nil {
		fields["due_date"] = *in.DueDate
	}
	if in.Priority != nil {
		fields["priority"] = *in.Priority
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Progress != nil {
		fields["progress"] = *in.Progress
	}
	return fields
}

// checkOwnership loads the task by (id, user). A task belonging to another
// user and a missing task fail identically.
func (s *TaskService) checkOwnership(ctx context.Context, taskID, userID uint) error {
	if _, err := s.tasks.FindOne(ctx, taskID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("Task with id=%d not found!", taskID)
		}
		return err
	}
	return nil
}

// Create persists a new pending task at 0% progress.
func (s *TaskService) Create(ctx context.Context, userID uint, in CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, validationf("Title cannot be empty!")
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, validationf("Priority must be 'low', 'medium' or 'high'")
	}

	task := models.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    priority,
		Status:      models.StatusPending,
		Progress:    0,
		UserID:      userID,
		Subtasks:    []models.Subtask{},
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the user's tasks with subtasks, optionally filtered by status.
func (s *TaskService) List(ctx context.Context, userID uint, status models.TaskStatus) ([]models.Task, error) {
	return s.tasks.FindAll(ctx, userID, status)
}

// Get returns one owned task with its subtasks.
func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*models.Task, error) {
	task, err := s.tasks.FindWithSubtasks(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("Task with id=%d not found!", taskID)
		}
		return nil, err
	}
	return task, nil
}

// Update applies a partial update; fields left nil are untouched.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, in UpdateTaskInput) (*models.Task, error) {
	if err := s.checkOwnership(ctx, taskID, userID); err != nil {
		return nil, err
	}

	if in.Status != nil && !models.ValidStatus(*in.Status) {
		return nil, validationf("Status must be either 'pending' or 'completed'")
	}
	if in.Priority != nil && !models.ValidPriority(*in.Priority) {
		return nil, validationf("Priority must be 'low', 'medium' or 'high'")
	}

	fields := in.fields()
	if len(fields) == 0 {
		return nil, validationf("No valid fields to update")
	}

	affected, err := s.tasks.Update(ctx, taskID, userID, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, notFoundf("Task with id=%d not found!", taskID)
	}

	return s.Get(ctx, userID, taskID)
}

// UpdateStatus handles the explicit status transition. Completing a task
// cascades completion to every subtask; moving it to pending re-derives
// status/progress from the subtasks instead. Both run in one transaction
// with their reconcile step.
func (s *TaskService) UpdateStatus(ctx context.Context, userID, taskID uint, status models.TaskStatus) (*models.Task, error) {
	if !models.ValidStatus(status) {
		return nil, validationf("Status must be either 'pending' or 'completed'")
	}
	if err := s.checkOwnership(ctx, taskID, userID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec := s.reconciler.WithTx(tx)
		if status == models.StatusCompleted {
			return rec.CascadeComplete(ctx, taskID)
		}
		return rec.CascadePending(ctx, taskID)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, taskID)
}

// Delete removes the task; the storage-layer cascade removes its subtasks.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	if err := s.checkOwnership(ctx, taskID, userID); err != nil {
		return err
	}

	affected, err := s.tasks.Delete(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		// Task vanished between check and delete.
		return notFoundf("Task with id=%d not found!", taskID)
	}
	return nil
}

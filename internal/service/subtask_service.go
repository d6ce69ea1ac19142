package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"todo-list-api/internal/models"
	"todo-list-api/internal/progress"
	"todo-list-api/internal/store"
)

// SubtaskService is the ownership-checked CRUD surface for subtasks. Every
// mutation runs in one transaction with the parent task's reconcile, so the
// progress invariant holds by the time the response is returned.
type SubtaskService struct {
	db         *gorm.DB
	tasks      *store.TaskStore
	subtasks   *store.SubtaskStore
	reconciler *progress.Reconciler
}

func NewSubtaskService(db *gorm.DB, tasks *store.TaskStore, subtasks *store.SubtaskStore, reconciler *progress.Reconciler) *SubtaskService {
	return &SubtaskService{db: db, tasks: tasks, subtasks: subtasks, reconciler: reconciler}
}

// CreateSubtaskInput carries the client-settable fields of a new subtask.
// Status is not settable at creation; subtasks always start pending.
type CreateSubtaskInput struct {
	Title       string
	Description string
}

// UpdateSubtaskInput is an explicit field-update set: nil means "leave as is".
type UpdateSubtaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

func (s *SubtaskService) checkOwnership(ctx context.Context, taskID, userID uint) error {
	if _, err := s.tasks.FindOne(ctx, taskID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("Task with id=%d not found!", taskID)
		}
		return err
	}
	return nil
}

func (s *SubtaskService) checkExists(ctx context.Context, subtaskID, taskID uint) error {
	if _, err := s.subtasks.FindOne(ctx, subtaskID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("Subtask with id=%d not found!", subtaskID)
		}
		return err
	}
	return nil
}

// Create inserts a pending subtask under an owned task and reconciles the
// parent in the same transaction.
func (s *SubtaskService) Create(ctx context.Context, userID, taskID uint, in CreateSubtaskInput) (*models.Subtask, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, validationf("Title cannot be empty!")
	}
	if err := s.checkOwnership(ctx, taskID, userID); err != nil {
		return nil, err
	}

	subtask := models.Subtask{
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusPending,
		TaskID:      taskID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.subtasks.WithTx(tx).Create(ctx, &subtask); err != nil {
			return err
		}
		return s.reconciler.WithTx(tx).Recompute(ctx, taskID)
	})
	if err != nil {
		return nil, err
	}
	return &subtask, nil
}

// List returns all subtasks of an owned task.
func (s *SubtaskService) List(ctx context.Context, userID, taskID uint) ([]models.Subtask, error) {
	if err := s.checkOwnership(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return s.subtasks.FindByTaskID(ctx, taskID)
}

// Update applies a partial update. A status outside pending/completed is
// dropped from the update set rather than rejected; the strict path for
// status changes is UpdateStatus. An update set that ends up empty is a
// validation error.
func (s *SubtaskService) Update(ctx context.Context, userID, taskID, subtaskID uint, in UpdateSubtaskInput) (*models.Subtask, error) {
	if err := s.checkOwnership(ctx, taskID, userID); err != nil {
		return nil, err
	}
	if err := s.checkExists(ctx, subtaskID, taskID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Status != nil && models.ValidStatus(*in.Status) {
		fields["status"] = *in.Status
	}
	if len(fields) == 0 {
		return nil, validationf("No valid fields to update")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		affected, err := s.subtasks.WithTx(tx).Update(ctx, subtaskID, taskID, fields)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFoundf("Subtask with id=%d not found!", subtaskID)
		}
		return s.reconciler.WithTx(tx).Recompute(ctx, taskID)
	})
	if err != nil {
		return nil, err
	}

	return s.subtasks.FindOne(ctx, subtaskID, taskID)
}

// UpdateStatus transitions one subtask and reconciles the parent.
func (s *SubtaskService) UpdateStatus(ctx context.Context, userID, taskID, subtaskID uint, status models.TaskStatus) (*models.Subtask, error) {
	if !models.ValidStatus(status) {
		return nil, validationf("Status must be either 'pending' or 'completed'")
	}
	if err := s.checkOwnership(ctx, taskID, userID); err != nil {
		return nil, err
	}
	if err := s.checkExists(ctx, subtaskID, taskID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		affected, err := s.subtasks.WithTx(tx).SetStatus(ctx, subtaskID, taskID, status)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFoundf("Subtask with id=%d not found!", subtaskID)
		}
		return s.reconciler.WithTx(tx).Recompute(ctx, taskID)
	})
	if err != nil {
		return nil, err
	}

	return s.subtasks.FindOne(ctx, subtaskID, taskID)
}

// Delete removes one subtask and reconciles the parent.
func (s *SubtaskService) Delete(ctx context.Context, userID, taskID, subtaskID uint) error {
	if err := s.checkOwnership(ctx, taskID, userID); err != nil {
		return err
	}
	if err := s.checkExists(ctx, subtaskID, taskID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		affected, err := s.subtasks.WithTx(tx).Delete(ctx, subtaskID, taskID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFoundf("Subtask with id=%d not found!", subtaskID)
		}
		return s.reconciler.WithTx(tx).Recompute(ctx, taskID)
	})
}

// Package progress keeps a task's status and progress consistent with the
// aggregate completion state of its subtasks.
//
// The rules: a task with no subtasks is pending at 0%; otherwise progress is
// 100 * completed / total and the task is completed exactly when every
// subtask is. Callers run each reconcile inside the same transaction as the
// subtask mutation that triggered it, so no observable state violates the
// rule and concurrent sibling mutations cannot produce a stale write.
package progress

import (
	"context"

	"gorm.io/gorm"

	"todo-list-api/internal/models"
	"todo-list-api/internal/store"
)

// Reconciler derives task status/progress from subtask state.
type Reconciler struct {
	tasks    *store.TaskStore
	subtasks *store.SubtaskStore
}

func NewReconciler(tasks *store.TaskStore, subtasks *store.SubtaskStore) *Reconciler {
	return &Reconciler{tasks: tasks, subtasks: subtasks}
}

// WithTx returns a copy of the reconciler scoped to the given transaction.
func (r *Reconciler) WithTx(tx *gorm.DB) *Reconciler {
	return &Reconciler{
		tasks:    r.tasks.WithTx(tx),
		subtasks: r.subtasks.WithTx(tx),
	}
}

// Recompute re-derives and persists the task's status and progress from its
// subtasks. A task with zero subtasks resolves to pending/0. Any storage
// failure is returned to the caller and must abort the enclosing request.
func (r *Reconciler) Recompute(ctx context.Context, taskID uint) error {
	stats, err := r.subtasks.GetCompletionStats(ctx, taskID)
	if err != nil {
		return err
	}

	if stats.Total == 0 {
		return r.tasks.SetProgress(ctx, taskID, models.StatusPending, 0)
	}

	pct := 100 * float64(stats.Completed) / float64(stats.Total)
	status := models.StatusPending
	if stats.Completed == stats.Total {
		status = models.StatusCompleted
	}
	return r.tasks.SetProgress(ctx, taskID, status, pct)
}

// CascadeComplete transitions every subtask of the task to completed, one at
// a time, then forces the task itself to completed/100.
func (r *Reconciler) CascadeComplete(ctx context.Context, taskID uint) error {
	subtasks, err := r.subtasks.FindByTaskID(ctx, taskID)
	if err != nil {
		return err
	}

	for _, sub := range subtasks {
		if _, err := r.subtasks.SetStatus(ctx, sub.ID, taskID, models.StatusCompleted); err != nil {
			return err
		}
	}

	return r.tasks.SetProgress(ctx, taskID, models.StatusCompleted, 100)
}

// CascadePending handles an explicit transition away from completed. Subtasks
// are left untouched and the task is re-derived from them, so a task whose
// subtasks are all complete stays completed regardless of the caller's
// literal "pending". That mirrors the original system; see DESIGN.md.
func (r *Reconciler) CascadePending(ctx context.Context, taskID uint) error {
	return r.Recompute(ctx, taskID)
}

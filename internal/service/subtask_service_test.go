package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"todo-list-api/internal/models"
)

func TestCreateSubtask_StartsPendingAndReconciles(t *testing.T) {
	ctx := context.Background()
	_, taskSvc, subSvc := newServices(t)

	task, err := taskSvc.Create(ctx, 1, CreateTaskInput{Title: "Groceries"})
	require.NoError(t, err)

	sub, err := subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "milk"})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, sub.Status)
	require.Equal(t, task.ID, sub.TaskID)

	got, err := taskSvc.Get(ctx, 1, task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, got.Status)
	require.Zero(t, got.Progress)
}

func TestCreateSubtask_EmptyTitle(t *testing.T) {
	ctx := context.Background()
	_, taskSvc, subSvc := newServices(t)

	task, err := taskSvc.Create(ctx, 1, CreateTaskInput{Title: "t"})
	require.NoError(t, err)

	_, err = subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Title cannot be empty!", verr.Message)
}

func TestCreateSubtask_ReopensCompletedTask(t *testing.T) {
	ctx := context.Background()
	_, taskSvc, subSvc := newServices(t)

	task, err := taskSvc.Create(ctx, 1, CreateTaskInput{Title: "t"})
	require.NoError(t, err)
	sub, err := subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "a"})
	require.NoError(t, err)
	_, err = subSvc.UpdateStatus(ctx, 1, task.ID, sub.ID, models.StatusCompleted)
	require.NoError(t, err)

	// A fresh pending subtask drags the completed task back to 50%.
	_, err = subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "b"})
	require.NoError(t, err)

	got, err := taskSvc.Get(ctx, 1, task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, got.Status)
	require.InDelta(t, 50, got.Progress, 1e-9)
}

func TestSubtaskStatus_DrivesTaskProgress(t *testing.T) {
	ctx := context.Background()
	_, taskSvc, subSvc := newServices(t)

	task, err := taskSvc.Create(ctx, 1, CreateTaskInput{Title: "Groceries"})
	require.NoError(t, err)
	milk, err := subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "milk"})
	require.NoError(t, err)
	eggs, err := subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "eggs"})
	require.NoError(t, err)

	_, err = subSvc.UpdateStatus(ctx, 1, task.ID, milk.ID, models.StatusCompleted)
	require.NoError(t, err)

	got, err := taskSvc.Get(ctx, 1, task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, got.Status)
	require.InDelta(t, 50, got.Progress, 1e-9)

	_, err = subSvc.UpdateStatus(ctx, 1, task.ID, eggs.ID, models.StatusCompleted)
	require.NoError(t, err)

	got, err = taskSvc.Get(ctx, 1, task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, got.Status)
	require.InDelta(t, 100, got.Progress, 1e-9)
}

func TestUpdateSubtask_InvalidStatusDropped(t *testing.T) {
	ctx := context.Background()
	_, taskSvc, subSvc := newServices(t)

	task, err := taskSvc.Create(ctx, 1, CreateTaskInput{Title: "t"})
	require.NoError(t, err)
	sub, err := subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "a"})
	require.NoError(t, err)

	// An unknown status is dropped from the update set; the title still lands.
	title := "renamed"
	bogus := models.TaskStatus("done")
	updated, err := subSvc.Update(ctx, 1, task.ID, sub.ID, UpdateSubtaskInput{Title: &title, Status: &bogus})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Title)
	require.Equal(t, models.StatusPending, updated.Status)
}

func TestUpdateSubtask_OnlyInvalidStatus(t *testing.T) {
	ctx := context.Background()
	_, taskSvc, subSvc := newServices(t)

	task, err := taskSvc.Create(ctx, 1, CreateTaskInput{Title: "t"})
	require.NoError(t, err)
	sub, err := subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "a"})
	require.NoError(t, err)

	bogus := models.TaskStatus("done")
	_, err = subSvc.Update(ctx, 1, task.ID, sub.ID, UpdateSubtaskInput{Status: &bogus})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "No valid fields to update", verr.Message)
}

func TestUpdateSubtask_EmptyUpdate(t *testing.T) {
	ctx := context.Background()
	_, taskSvc, subSvc := newServices(t)

	task, err := taskSvc.Create(ctx, 1, CreateTaskInput{Title: "t"})
	require.NoError(t, err)
	sub, err := subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "a"})
	require.NoError(t, err)

	_, err = subSvc.Update(ctx, 1, task.ID, sub.ID, UpdateSubtaskInput{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "No valid fields to update", verr.Message)
}

func TestUpdateSubtask_ValidStatusReconciles(t *testing.T) {
	ctx := context.Background()
	_, taskSvc, subSvc := newServices(t)

	task, err := taskSvc.Create(ctx, 1, CreateTaskInput{Title: "t"})
	require.NoError(t, err)
	sub, err := subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "a"})
	require.NoError(t, err)

	done := models.StatusCompleted
	updated, err := subSvc.Update(ctx, 1, task.ID, sub.ID, UpdateSubtaskInput{Status: &done})
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, updated.Status)

	got, err := taskSvc.Get(ctx, 1, task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, got.Status)
	require.InDelta(t, 100, got.Progress, 1e-9)
}

func TestSubtaskExistenceCheck(t *testing.T) {
	ctx := context.Background()
	_, taskSvc, subSvc := newServices(t)

	task, err := taskSvc.Create(ctx, 1, CreateTaskInput{Title: "t"})
	require.NoError(t, err)

	var nferr *NotFoundError
	_, err = subSvc.UpdateStatus(ctx, 1, task.ID, 99, models.StatusCompleted)
	require.ErrorAs(t, err, &nferr)
	require.Equal(t, "Subtask with id=99 not found!", nferr.Message)

	err = subSvc.Delete(ctx, 1, task.ID, 99)
	require.ErrorAs(t, err, &nferr)
}

func TestSubtaskStatus_InvalidOnStrictPath(t *testing.T) {
	ctx := context.Background()
	_, taskSvc, subSvc := newServices(t)

	task, err := taskSvc.Create(ctx, 1, CreateTaskInput{Title: "t"})
	require.NoError(t, err)
	sub, err := subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "a"})
	require.NoError(t, err)

	_, err = subSvc.UpdateStatus(ctx, 1, task.ID, sub.ID, "done")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Status must be either 'pending' or 'completed'", verr.Message)
}

func TestDeleteSubtask_Reconciles(t *testing.T) {
	ctx := context.Background()
	_, taskSvc, subSvc := newServices(t)

	task, err := taskSvc.Create(ctx, 1, CreateTaskInput{Title: "t"})
	require.NoError(t, err)
	done, err := subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "a"})
	require.NoError(t, err)
	pending, err := subSvc.Create(ctx, 1, task.ID, CreateSubtaskInput{Title: "b"})
	require.NoError(t, err)
	_, err = subSvc.UpdateStatus(ctx, 1, task.ID, done.ID, models.StatusCompleted)
	require.NoError(t, err)

	// Removing the last pending subtask leaves only completed ones, so the
	// task snaps to completed/100.
	require.NoError(t, subSvc.Delete(ctx, 1, task.ID, pending.ID))

	got, err := taskSvc.Get(ctx, 1, task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, got.Status)
	require.InDelta(t, 100, got.Progress, 1e-9)
	require.Len(t, got.Subtasks, 1)
}

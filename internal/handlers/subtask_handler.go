package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-list-api/internal/models"
	"todo-list-api/internal/realtime"
	"todo-list-api/internal/response"
	"todo-list-api/internal/service"
)

// SubtaskHandler serves the subtask CRUD surface nested under a task.
type SubtaskHandler struct {
	service *service.SubtaskService
	hub     *realtime.Hub
}

func NewSubtaskHandler(svc *service.SubtaskService, hub *realtime.Hub) *SubtaskHandler {
	return &SubtaskHandler{service: svc, hub: hub}
}

// CreateSubtaskRequest represents the request payload for creating a subtask.
// Any client-supplied status is ignored; subtasks always start pending.
type CreateSubtaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateSubtaskRequest represents the request payload for a partial subtask update
type UpdateSubtaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
}

// Create handles POST /api/tasks/:task_id/subtasks
func (h *SubtaskHandler) Create(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	var req CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := currentUserID(c)
	subtask, err := h.service.Create(c.Request.Context(), userID, taskID, service.CreateSubtaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err, "Some error occurred while creating the Subtask.")
		return
	}

	h.hub.Publish(userID, realtime.Event{Type: realtime.EventSubtaskCreated, TaskID: taskID, SubtaskID: subtask.ID})
	response.Success(c, http.StatusCreated, "Subtask created successfully!", subtask)
}

// List handles GET /api/tasks/:task_id/subtasks
func (h *SubtaskHandler) List(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	subtasks, err := h.service.List(c.Request.Context(), currentUserID(c), taskID)
	if err != nil {
		respondServiceError(c, err, "Some error occurred while retrieving subtasks.")
		return
	}
	response.Success(c, http.StatusOK, "Operation successful", subtasks)
}

// Update handles PUT /api/tasks/:task_id/subtasks/:subtask_id
func (h *SubtaskHandler) Update(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	subtaskID, ok := pathID(c, "subtask_id")
	if !ok {
		return
	}

	var req UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := currentUserID(c)
	subtask, err := h.service.Update(c.Request.Context(), userID, taskID, subtaskID, service.UpdateSubtaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondServiceError(c, err, "Error updating Subtask")
		return
	}

	h.hub.Publish(userID, realtime.Event{Type: realtime.EventSubtaskUpdated, TaskID: taskID, SubtaskID: subtaskID})
	response.Success(c, http.StatusOK, "Subtask was updated successfully.", subtask)
}

// UpdateStatus handles PATCH /api/tasks/:task_id/subtasks/:subtask_id/status
func (h *SubtaskHandler) UpdateStatus(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	subtaskID, ok := pathID(c, "subtask_id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Status must be either 'pending' or 'completed'")
		return
	}

	userID := currentUserID(c)
	subtask, err := h.service.UpdateStatus(c.Request.Context(), userID, taskID, subtaskID, req.Status)
	if err != nil {
		respondServiceError(c, err, "Error updating Subtask status")
		return
	}

	h.hub.Publish(userID, realtime.Event{Type: realtime.EventSubtaskStatusChanged, TaskID: taskID, SubtaskID: subtaskID})
	response.Success(c, http.StatusOK, "Subtask status was updated successfully.", subtask)
}

// Delete handles DELETE /api/tasks/:task_id/subtasks/:subtask_id
func (h *SubtaskHandler) Delete(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	subtaskID, ok := pathID(c, "subtask_id")
	if !ok {
		return
	}

	userID := currentUserID(c)
	if err := h.service.Delete(c.Request.Context(), userID, taskID, subtaskID); err != nil {
		respondServiceError(c, err, "Could not delete Subtask")
		return
	}

	h.hub.Publish(userID, realtime.Event{Type: realtime.EventSubtaskDeleted, TaskID: taskID, SubtaskID: subtaskID})
	response.Success(c, http.StatusOK, "Subtask was deleted successfully!", nil)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todo-list-api/internal/models"
	"todo-list-api/internal/realtime"
	"todo-list-api/internal/response"
	"todo-list-api/internal/service"
)

// TaskHandler serves the task CRUD surface.
type TaskHandler struct {
	service *service.TaskService
	hub     *realtime.Hub
}

func NewTaskHandler(svc *service.TaskService, hub *realtime.Hub) *TaskHandler {
	return &TaskHandler{service: svc, hub: hub}
}

// CreateTaskRequest represents the request payload for creating a task.
// Status and progress are derived state and not accepted here.
type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     *time.Time          `json:"dueDate"`
	Priority    models.TaskPriority `json:"priority"`
}

// UpdateTaskRequest represents the request payload for a partial task update
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	DueDate     *time.Time           `json:"dueDate"`
	Priority    *models.TaskPriority `json:"priority"`
	Status      *models.TaskStatus   `json:"status"`
	Progress    *float64             `json:"progress"`
}

// UpdateStatusRequest represents a minimal request to change status
type UpdateStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := currentUserID(c)
	task, err := h.service.Create(c.Request.Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		respondServiceError(c, err, "Some error occurred while creating the Task.")
		return
	}

	h.hub.Publish(userID, realtime.Event{Type: realtime.EventTaskCreated, TaskID: task.ID})
	response.Success(c, http.StatusCreated, "Task created successfully!", task)
}

// List handles GET /api/tasks with an optional ?status= filter
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.service.List(c.Request.Context(), currentUserID(c), models.TaskStatus(c.Query("status")))
	if err != nil {
		respondServiceError(c, err, "Some error occurred while retrieving tasks.")
		return
	}
	response.Success(c, http.StatusOK, "Operation successful", tasks)
}

// Get handles GET /api/tasks/:task_id
func (h *TaskHandler) Get(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	task, err := h.service.Get(c.Request.Context(), currentUserID(c), taskID)
	if err != nil {
		respondServiceError(c, err, "Error retrieving Task")
		return
	}
	response.Success(c, http.StatusOK, "Operation successful", task)
}

// Update handles PUT /api/tasks/:task_id
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := currentUserID(c)
	task, err := h.service.Update(c.Request.Context(), userID, taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
		Progress:    req.Progress,
	})
	if err != nil {
		respondServiceError(c, err, "Error updating Task")
		return
	}

	h.hub.Publish(userID, realtime.Event{Type: realtime.EventTaskUpdated, TaskID: task.ID})
	response.Success(c, http.StatusOK, "Task was updated successfully.", task)
}

// UpdateStatus handles PATCH /api/tasks/:task_id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Status must be either 'pending' or 'completed'")
		return
	}

	userID := currentUserID(c)
	task, err := h.service.UpdateStatus(c.Request.Context(), userID, taskID, req.Status)
	if err != nil {
		respondServiceError(c, err, "Error updating Task status")
		return
	}

	h.hub.Publish(userID, realtime.Event{Type: realtime.EventTaskStatusChanged, TaskID: task.ID})
	response.Success(c, http.StatusOK, "Task status was updated successfully.", task)
}

// Delete handles DELETE /api/tasks/:task_id
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	userID := currentUserID(c)
	if err := h.service.Delete(c.Request.Context(), userID, taskID); err != nil {
		respondServiceError(c, err, "Could not delete Task")
		return
	}

	h.hub.Publish(userID, realtime.Event{Type: realtime.EventTaskDeleted, TaskID: taskID})
	response.Success(c, http.StatusOK, "Task was deleted successfully!", nil)
}

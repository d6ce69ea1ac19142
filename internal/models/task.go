package models

import (
	"time"
)

// TaskStatus represents the completion state of a task or subtask
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// ValidStatus reports whether s is one of the two allowed states
func ValidStatus(s TaskStatus) bool {
	return s == StatusPending || s == StatusCompleted
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// ValidPriority reports whether p is one of the allowed priorities
func ValidPriority(p TaskPriority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a task in the system. Status and Progress are derived
// from the task's subtasks; clients never set them directly.
type Task struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	DueDate     *time.Time   `json:"dueDate" gorm:"column:due_date"`
	Priority    TaskPriority `json:"priority" gorm:"default:'medium'"`
	Status      TaskStatus   `json:"status" gorm:"not null;default:'pending'"`
	Progress    float64      `json:"progress" gorm:"default:0"`
	UserID      uint         `json:"-" gorm:"column:user_id;index;not null"`
	Subtasks    []Subtask    `json:"subtasks" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

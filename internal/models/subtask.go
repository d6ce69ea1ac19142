package models

import (
	"time"
)

// Subtask represents a child unit of a Task. A subtask always starts out
// pending; its status feeds the parent task's progress.
type Subtask struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status" gorm:"not null;default:'pending'"`
	TaskID      uint       `json:"taskId" gorm:"column:task_id;index;not null"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for Subtask Model
func (Subtask) TableName() string {
	return "subtasks"
}

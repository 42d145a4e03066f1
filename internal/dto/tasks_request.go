package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	ColumnID    int64       `json:"column_id" binding:"required"`
	Title       string      `json:"title" binding:"required,min=1"`
	Description string      `json:"description" binding:"required,min=1"`
	Priority    string      `json:"priority"`
	DueDate     *time.Time  `json:"due_date"`
	AssigneeIDs []uuid.UUID `json:"assignee_ids"`
}

type UpdateTaskRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Status      *string     `json:"status"`
	Priority    *string     `json:"priority"`
	DueDate     *time.Time  `json:"due_date"`
	AssigneeIDs []uuid.UUID `json:"assignee_ids"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          int64       `json:"id"`
	CreatorID   uuid.UUID   `json:"creator_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	Priority    string      `json:"priority"`
	DueDate     *time.Time  `json:"due_date"`
	AssigneeIDs []uuid.UUID `json:"assignee_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TaskContext is the board/project surrounding of a task, fetched from the
// plain-CRUD side of the system. It carries everything the audience resolver
// and the notification messages need.
type TaskContext struct {
	Task             Task        `json:"task"`
	ColumnID         int64       `json:"column_id"`
	ColumnTitle      string      `json:"column_title"`
	BoardID          int64       `json:"board_id"`
	BoardTitle       string      `json:"board_title"`
	ProjectID        int64       `json:"project_id"`
	ProjectManagerID uuid.UUID   `json:"project_manager_id"`
	MemberIDs        []uuid.UUID `json:"member_ids"`
}

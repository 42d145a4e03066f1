package model

type NotificationType string

const (
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeTask    NotificationType = "task"
	NotificationTypeBoard   NotificationType = "board"
	NotificationTypeColumn  NotificationType = "column"
	NotificationTypeProject NotificationType = "project"
)

// NotificationEvent is the wire-level payload pushed over a live connection.
// The field names are part of the client contract and must not change.
type NotificationEvent struct {
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Unread    bool             `json:"unread"`
	Timestamp string           `json:"timestamp"`
	UserID    string           `json:"userId"`
	TaskID    int64            `json:"taskId,omitempty"`
	CommentID int64            `json:"commentId,omitempty"`
	BoardID   int64            `json:"boardId,omitempty"`
	ProjectID int64            `json:"projectId,omitempty"`
}

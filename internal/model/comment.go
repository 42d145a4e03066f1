package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a node of a per-task reply tree stored with the nested-set
// encoding: the [Left, Right] interval of a comment strictly contains the
// intervals of all of its descendants. Left/Right are rewritten whenever a
// reply is inserted or a subtree is removed anywhere in the same task's tree.
type Comment struct {
	ID         int64     `json:"id"`
	TaskID     int64     `json:"task_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	ParentID   *int64    `json:"parent_id"`
	Content    string    `json:"content"`
	ImageURL   *string   `json:"image_url"`
	Left       int       `json:"left"`
	Right      int       `json:"right"`
	HasReplies bool      `json:"has_replies"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Descendants is the subtree size implied by the interval width.
func (c *Comment) Descendants() int {
	return (c.Right - c.Left - 1) / 2
}

type FullComment struct {
	Comment Comment    `json:"comment"`
	Author  UserAuthor `json:"author"`
}

package dto

type CreateCommentRequest struct {
	TaskID   int64   `json:"task_id" binding:"required"`
	ParentID *int64  `json:"parent_id"`
	Content  string  `json:"content" binding:"required,min=1"`
	ImageURL *string `json:"image_url"`
}

type EditCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

type DeleteCommentResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

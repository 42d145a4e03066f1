package service

import "errors"

var (
	ErrInternal              = errors.New("internal server error")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrParentCommentNotFound = errors.New("parent comment not found")
	ErrParentTaskMismatch    = errors.New("parent comment does not belong to this task")
	ErrEmptyContent          = errors.New("comment content is required")
	ErrNotCommentAuthor      = errors.New("user is not the comment author")
	ErrTaskNotFound          = errors.New("task not found")
	ErrTaskAlreadyExists     = errors.New("task with the same title already exists")
	ErrEmptyTaskFields       = errors.New("title and description cannot be empty")
)

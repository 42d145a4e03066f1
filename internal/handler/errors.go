package handler

import (
	"errors"
	"net/http"

	"github.com/huynhmanh2003/RAJI-BE/internal/service"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidTaskID = errors.New("invalid task ID")
	errInvalidID     = errors.New("invalid ID")
)

// statusFromError maps service sentinels onto HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrParentCommentNotFound),
		errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrParentTaskMismatch),
		errors.Is(err, service.ErrEmptyTaskFields):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTaskAlreadyExists):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotCommentAuthor):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

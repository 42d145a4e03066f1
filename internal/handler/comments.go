package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/huynhmanh2003/RAJI-BE/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdComment, err := h.services.Comment.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, createdComment)
}

func (h *Handler) commentsGetRoots(c *gin.Context) {
	taskIDString := strings.TrimSpace(c.Param("taskID"))
	taskID, err := strconv.ParseInt(taskIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidTaskID.Error()))
		return
	}

	comments, err := h.services.Comment.FindRoots(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) commentsGetReplies(c *gin.Context) {
	commentIDString := strings.TrimSpace(c.Param("commentID"))
	commentID, err := strconv.ParseInt(commentIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	replies, err := h.services.Comment.FindReplies(c.Request.Context(), commentID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, replies)
}

func (h *Handler) commentsEdit(c *gin.Context) {
	user := h.getUserFromRequest(c)

	commentIDString := strings.TrimSpace(c.Param("commentID"))
	commentID, err := strconv.ParseInt(commentIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var input dto.EditCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updatedComment, err := h.services.Comment.Edit(c.Request.Context(), commentID, user.ID, input.Content)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, updatedComment)
}

func (h *Handler) commentsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	commentIDString := strings.TrimSpace(c.Param("commentID"))
	commentID, err := strconv.ParseInt(commentIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	deletedCount, err := h.services.Comment.Delete(c.Request.Context(), commentID, user.ID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.DeleteCommentResponse{DeletedCount: deletedCount})
}

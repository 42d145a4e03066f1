package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/huynhmanh2003/RAJI-BE/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) tasksCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdTask, err := h.services.Task.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, createdTask)
}

func (h *Handler) tasksGetByID(c *gin.Context) {
	taskIDString := strings.TrimSpace(c.Param("taskID"))
	taskID, err := strconv.ParseInt(taskIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidTaskID.Error()))
		return
	}

	task, err := h.services.Task.FindByID(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *Handler) tasksUpdate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	taskIDString := strings.TrimSpace(c.Param("taskID"))
	taskID, err := strconv.ParseInt(taskIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidTaskID.Error()))
		return
	}

	var input dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updatedTask, err := h.services.Task.Update(c.Request.Context(), taskID, user.ID, input)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, updatedTask)
}

func (h *Handler) tasksDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	taskIDString := strings.TrimSpace(c.Param("taskID"))
	taskID, err := strconv.ParseInt(taskIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidTaskID.Error()))
		return
	}

	if err := h.services.Task.Delete(c.Request.Context(), taskID, user.ID); err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), caller)
	if err != nil {
		writeServiceError(c, err, apierrors.MsgFailListTask, apierrors.MsgInvalidTaskPayload)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), caller, taskID)
	if err != nil {
		writeServiceError(c, err, apierrors.MsgFailGetTask, apierrors.MsgInvalidTaskPayload)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	raw, ok := bindTaskBody(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), caller, input)
	if err != nil {
		writeServiceError(c, err, apierrors.MsgFailCreateTask, apierrors.MsgInvalidTaskPayload)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

// UpdateTask serves both PUT and PATCH; only the fields present are applied.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, ok := bindTaskBody(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), caller, taskID, input)
	if err != nil {
		writeServiceError(c, err, apierrors.MsgFailUpdateTask, apierrors.MsgInvalidTaskPayload)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), caller, taskID); err != nil {
		writeServiceError(c, err, apierrors.MsgFailDeleteTask, apierrors.MsgInvalidTaskPayload)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReorderTask answers with the tasks visible to the caller after the move.
func (h *TaskHandler) ReorderTask(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.ReorderTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}
	input, err := validation.BuildReorderTaskInput(req)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	tasks, err := h.taskService.ReorderTask(c.Request.Context(), caller, taskID, input)
	if err != nil {
		writeServiceError(c, err, apierrors.MsgFailReorderTask, apierrors.MsgInvalidTaskPayload)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func taskIDParam(c *gin.Context) (string, bool) {
	taskID := c.Param("id")
	if err := uuid.Validate(taskID); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID)
		return "", false
	}
	return taskID, true
}

// bindTaskBody keeps the raw fields next to the bound request so that an
// explicit null can be told apart from an absent field.
func bindTaskBody(c *gin.Context, req any) (map[string]json.RawMessage, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return nil, false
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &raw); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return nil, false
	}
	if err := binding.JSON.BindBody(body, req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return nil, false
	}
	return raw, true
}

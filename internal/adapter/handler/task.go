package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	taskDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/task"
	"github.com/collabsphere/collabsphere-ai/internal/adapter/presenter"
	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	taskUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/task"
)

// Task handles task board HTTP requests
type Task struct {
	tasks  *taskUsecase.Service
	logger *zap.Logger
}

// NewTaskHandler creates a new task board handler
func NewTaskHandler(tasks *taskUsecase.Service, logger *zap.Logger) *Task {
	return &Task{tasks: tasks, logger: logger}
}

// Board handles GET /meetings/:id/board
// @Summary      Get the task board
// @Description  Returns the normalized phases, tasks, and subtasks of the latest plan
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  task.BoardResponse
// @Router       /meetings/{id}/board [get]
func (h *Task) Board(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	plan, phases, err := h.tasks.Board(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToBoardResponse(plan, phases))
}

// Get handles GET /tasks/:id
// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  task.TaskResponse
// @Router       /tasks/{id} [get]
func (h *Task) Get(c echo.Context) error {
	taskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	found, err := h.tasks.Get(c.Request().Context(), taskID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTaskResponse(found))
}

// Move handles PATCH /tasks/:id/status
// @Summary      Move a task between board columns
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                true  "Task ID"
// @Param        request  body  task.MoveTaskRequest  true  "Target status"
// @Success      200  {object}  task.TaskResponse
// @Router       /tasks/{id}/status [patch]
func (h *Task) Move(c echo.Context) error {
	taskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req taskDTO.MoveTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	moved, err := h.tasks.MoveStatus(c.Request().Context(), taskID, entities.TaskStatus(req.Status))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTaskResponse(moved))
}

// Assign handles PATCH /tasks/:id/assignee
// @Summary      Assign a task to a user
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                  true  "Task ID"
// @Param        request  body  task.AssignTaskRequest  true  "Assignee"
// @Success      200  {object}  task.TaskResponse
// @Router       /tasks/{id}/assignee [patch]
func (h *Task) Assign(c echo.Context) error {
	taskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req taskDTO.AssignTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	var assigneeID *uuid.UUID
	if req.AssigneeID != nil {
		id, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "assignee_id must be a valid UUID")
		}
		assigneeID = &id
	}

	assigned, err := h.tasks.Assign(c.Request().Context(), taskID, assigneeID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTaskResponse(assigned))
}

// ToggleSubtask handles PATCH /subtasks/:id
// @Summary      Toggle a subtask's done flag
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                     true  "Subtask ID"
// @Param        request  body  task.ToggleSubtaskRequest  true  "Done flag"
// @Success      200  {object}  map[string]interface{}
// @Router       /subtasks/{id} [patch]
func (h *Task) ToggleSubtask(c echo.Context) error {
	subtaskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req taskDTO.ToggleSubtaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.tasks.ToggleSubtask(c.Request().Context(), subtaskID, req.Done); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"done": req.Done})
}

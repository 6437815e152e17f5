package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskboard/domain/dto"
	"taskboard/domain/query"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		msg := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Task validation failed", "message", msg)
		return utils.BadRequestResponse(c, msg)
	}

	task, err := h.taskService.Create(ctx, &req)
	if err != nil {
		return h.respondError(c, err, "Task creation failed")
	}

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

// ListTasks handles GET /tasks with optional sortBy, filterByPriority,
// filterByDate and tags parameters.
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	params, err := query.Parse(
		c.Query("sortBy"),
		c.Query("filterByPriority"),
		c.Query("filterByDate"),
		c.Query("tags"),
	)
	if err != nil {
		logger.WarnContext(ctx, "Invalid list query", "error", err)
		return utils.BadRequestResponse(c, err.Error())
	}

	tasks, err := h.taskService.List(ctx, params)
	if err != nil {
		return h.respondError(c, err, "Task listing failed")
	}

	return utils.SuccessResponse(c, dto.TasksToTaskResponses(tasks))
}

// CompleteTask handles PATCH /tasks/:id. No body: the only transition it
// offers is completed=true.
func (h *TaskHandler) CompleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := parseTaskID(c)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.NotFoundResponse(c, "Task not found")
	}

	task, err := h.taskService.Complete(ctx, id)
	if err != nil {
		return h.respondError(c, err, "Task completion failed")
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

// ReplaceTask handles PUT /tasks/:id.
func (h *TaskHandler) ReplaceTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := parseTaskID(c)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.NotFoundResponse(c, "Task not found")
	}

	var req dto.ReplaceTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		msg := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Task validation failed", "message", msg)
		return utils.BadRequestResponse(c, msg)
	}

	task, err := h.taskService.Replace(ctx, id, &req)
	if err != nil {
		return h.respondError(c, err, "Task replace failed")
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

// DeleteTask handles DELETE /tasks/:id.
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := parseTaskID(c)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.NotFoundResponse(c, "Task not found")
	}

	if err := h.taskService.Delete(ctx, id); err != nil {
		return h.respondError(c, err, "Task deletion failed")
	}

	return utils.NoContentResponse(c)
}

// respondError maps the service error taxonomy onto status codes: validation
// failures are 400, unknown ids 404, everything else (store unavailable) 500.
func (h *TaskHandler) respondError(c *fiber.Ctx, err error, logMsg string) error {
	ctx := c.UserContext()

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		logger.WarnContext(ctx, logMsg, "error", err)
		return utils.BadRequestResponse(c, verr.Message)
	case errors.Is(err, repositories.ErrNotFound):
		logger.WarnContext(ctx, logMsg, "error", err)
		return utils.NotFoundResponse(c, "Task not found")
	default:
		logger.ErrorContext(ctx, logMsg, "error", err)
		return utils.InternalServerErrorResponse(c, err.Error())
	}
}

func parseTaskID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/taskhub/task-manager-api/middleware"
	"github.com/taskhub/task-manager-api/models"
	"github.com/taskhub/task-manager-api/storage"
)

// TaskHandler serves the owner-scoped task CRUD endpoints. Every
// handler assumes RequireAuth already resolved the caller.
type TaskHandler struct {
	tasks *storage.TaskStore
}

func NewTaskHandler(tasks *storage.TaskStore) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List returns the caller's tasks, narrowed by search/status/sort.
// @Summary List tasks
// @Produce json
// @Param search query string false "case-insensitive title substring"
// @Param status query string false "pending | in_progress | completed"
// @Param sort query string false "asc | desc by creation time"
// @Success 200 {array} models.Task
// @Failure 401 {object} map[string]string
// @Router /api/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	filter := models.TaskFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	}

	tasks, err := h.tasks.List(c.Context(), user.ID, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to list tasks"})
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}

// Create adds a task owned by the caller.
// @Summary Create a task
// @Accept json
// @Produce json
// @Param task body models.CreateTaskInput true "New task"
// @Success 201 {object} models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	input := new(models.CreateTaskInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := input.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user := middleware.CurrentUser(c)
	task, err := h.tasks.Create(c.Context(), user.ID, *input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create task"})
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetOne fetches a single task. The fetch is owner-agnostic and the
// ownership check happens here: a foreign task is a 403, a missing one
// a 404.
// @Summary Get a task
// @Produce json
// @Param id path int true "Task id"
// @Success 200 {object} models.Task
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) GetOne(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task not found"})
	}

	task, err := h.tasks.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch task"})
	}
	if task == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task not found"})
	}
	if task.UserID != middleware.CurrentUser(c).ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

// Update applies a partial update to a task the caller owns. The store
// scopes by owner, so missing and not-owned both come back as 404.
// @Summary Update a task
// @Accept json
// @Produce json
// @Param id path int true "Task id"
// @Param task body models.UpdateTaskInput true "Fields to change"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/tasks/{id} [patch]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task not found"})
	}

	input := new(models.UpdateTaskInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := input.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	task, err := h.tasks.Update(c.Context(), id, middleware.CurrentUser(c).ID, *input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update task"})
	}
	if task == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task not found"})
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

// Delete removes a task the caller owns.
// @Summary Delete a task
// @Param id path int true "Task id"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task not found"})
	}

	deleted, err := h.tasks.Delete(c.Context(), id, middleware.CurrentUser(c).ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete task"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

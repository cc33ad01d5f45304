package api

import (
	"github.com/example/task-manager-api/modules/task"
	"github.com/gofiber/fiber/v2"
)

// ListCategories handles GET /categories/.
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(categories)
}

// GetCategory handles GET /categories/:id.
func (h *Handlers) GetCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c, "category not found")
	}
	category, err := h.categories.Get(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(category)
}

// ListCategoryTasks handles GET /categories/:id/tasks.
func (h *Handlers) ListCategoryTasks(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c, "category not found")
	}
	tasks, err := h.categories.ListTasks(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(tasks)
}

// CreateCategory handles POST /categories/tasks/:task_id/categories.
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return notFound(c, "task not found")
	}
	var body LabelBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}

	detail, err := h.categories.CreateForTask(c.UserContext(), taskID, body.Label)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

// RelabelCategory handles PUT/PATCH /categories/:id.
func (h *Handlers) RelabelCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c, "category not found")
	}
	var body LabelBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}

	category, err := h.categories.Relabel(c.UserContext(), id, body.Label)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /categories/:id.
func (h *Handlers) DeleteCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c, "category not found")
	}
	message, err := h.categories.Delete(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(MessageResponse{Message: message})
}

// ListTasks handles GET /tasks/.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.List(c.UserContext())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(tasks)
}

// GetTask handles GET /tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c, "task not found")
	}
	detail, err := h.tasks.Get(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(detail)
}

// CreateTask handles POST /tasks/.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var body CreateTaskBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}

	detail, err := h.tasks.Create(c.UserContext(), task.CreateTaskRequest{
		UserID:        currentUser(c),
		Title:         body.Title,
		Description:   body.Description,
		Status:        body.Status,
		Priority:      body.Priority,
		CategoryLabel: body.categoryLabel(),
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

// UpdateTask handles PUT/PATCH /tasks/:id. Only the owner may update.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c, "task not found")
	}
	var body UpdateTaskBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}

	detail, err := h.tasks.Update(c.UserContext(), task.UpdateTaskRequest{
		UserID:      currentUser(c),
		TaskID:      id,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(detail)
}

// DeleteTask handles DELETE /tasks/:id. Only the owner may delete.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c, "task not found")
	}
	message, err := h.tasks.Delete(c.UserContext(), task.DeleteTaskRequest{
		UserID: currentUser(c),
		TaskID: id,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(MessageResponse{Message: message})
}

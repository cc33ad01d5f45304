package api

import (
	"github.com/example/task-manager-api/modules/annotation"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/catalog"
	"github.com/example/task-manager-api/modules/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Handlers serves the HTTP routes on top of the module ports.
type Handlers struct {
	auth        auth.AuthPort
	categories  catalog.CatalogPort
	tasks       task.TaskPort
	annotations annotation.AnnotationPort
	logger      types.Logger
}

// NewHandlers creates Handlers.
func NewHandlers(
	authPort auth.AuthPort,
	catalogPort catalog.CatalogPort,
	taskPort task.TaskPort,
	annotationPort annotation.AnnotationPort,
	logger types.Logger,
) *Handlers {
	return &Handlers{
		auth:        authPort,
		categories:  catalogPort,
		tasks:       taskPort,
		annotations: annotationPort,
		logger:      logger,
	}
}

// Mount registers every route on router. loginGuard may be nil.
func (h *Handlers) Mount(router fiber.Router, loginGuard fiber.Handler) {
	requireAuth := AuthMiddleware(h.auth)

	router.Get("/health", h.Health)

	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.Register)
	if loginGuard != nil {
		authRoutes.Post("/login", loginGuard, h.Login)
	} else {
		authRoutes.Post("/login", h.Login)
	}
	authRoutes.Put("/users", requireAuth, h.UpdateUser)
	authRoutes.Patch("/users", requireAuth, h.UpdateUser)
	authRoutes.Get("/users/me", requireAuth, h.Me)

	categories := router.Group("/categories")
	categories.Get("/", h.ListCategories)
	categories.Post("/tasks/:task_id/categories", requireAuth, h.CreateCategory)
	categories.Get("/:id", h.GetCategory)
	categories.Get("/:id/tasks", h.ListCategoryTasks)
	categories.Put("/:id", requireAuth, h.RelabelCategory)
	categories.Patch("/:id", requireAuth, h.RelabelCategory)
	categories.Delete("/:id", requireAuth, h.DeleteCategory)

	tasks := router.Group("/tasks")
	tasks.Get("/", h.ListTasks)
	tasks.Post("/", requireAuth, h.CreateTask)
	tasks.Get("/:id", h.GetTask)
	tasks.Put("/:id", requireAuth, h.UpdateTask)
	tasks.Patch("/:id", requireAuth, h.UpdateTask)
	tasks.Delete("/:id", requireAuth, h.DeleteTask)

	comments := tasks.Group("/:task_id/comments", requireAuth)
	comments.Post("/", h.AddComment)
	comments.Put("/:comment_id", h.EditComment)
	comments.Patch("/:comment_id", h.EditComment)
	comments.Delete("/:comment_id", h.DeleteComment)

	trackings := tasks.Group("/:task_id/task_trackings", requireAuth)
	trackings.Post("/", h.CreateTracking)
	trackings.Get("/", h.ListTrackings)
	trackings.Get("/:tracking_id", h.GetTracking)
	trackings.Patch("/:tracking_id", h.UpdateTracking)
	trackings.Delete("/:tracking_id", h.DeleteTracking)
}

// Health handles GET /health.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"module": "api",
	})
}

// paramID reads a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// parseBody decodes the JSON body into dest.
func parseBody(c *fiber.Ctx, dest any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(dest)
}

package api

import (
	"errors"

	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/modules/annotation"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/catalog"
	"github.com/example/task-manager-api/modules/task"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorClass struct {
	status int
	kind   string
	errs   []error
}

// errorClasses is checked in order; the first class with a matching
// sentinel decides the response.
var errorClasses = []errorClass{
	{fiber.StatusBadRequest, "validation_error", []error{
		auth.ErrInvalidEmail,
		auth.ErrWeakPassword,
		auth.ErrPasswordTooLong,
		domain.ErrInvalidTitle,
		domain.ErrInvalidPriority,
		domain.ErrInvalidDate,
		domain.ErrInvalidLabel,
		annotation.ErrMissingContent,
		annotation.ErrMissingEstimate,
		annotation.ErrMissingStart,
		catalog.ErrDuplicateLabel,
	}},
	{fiber.StatusUnauthorized, "unauthorized", []error{
		auth.ErrInvalidCredentials,
		auth.ErrInvalidToken,
		auth.ErrExpiredToken,
	}},
	{fiber.StatusForbidden, "forbidden", []error{
		task.ErrForbidden,
	}},
	{fiber.StatusNotFound, "not_found", []error{
		auth.ErrUserNotFound,
		catalog.ErrCategoryNotFound,
		catalog.ErrTaskNotFound,
		catalog.ErrNoCategoryTasks,
		task.ErrTaskNotFound,
		annotation.ErrTaskNotFound,
		annotation.ErrCommentNotFound,
		annotation.ErrTrackingNotFound,
		annotation.ErrNoTrackings,
	}},
	{fiber.StatusConflict, "conflict", []error{
		auth.ErrDuplicateEmail,
		auth.ErrMissingField,
		annotation.ErrDuplicateTracking,
	}},
}

// classify maps err to a status and error kind. Unknown errors are internal.
func classify(err error) (int, string) {
	for _, class := range errorClasses {
		for _, target := range class.errs {
			if errors.Is(err, target) {
				return class.status, class.kind
			}
		}
	}
	return fiber.StatusInternalServerError, "server_error"
}

// respondError writes the ErrorResponse for err. Internal failures are
// logged and reported with a generic message.
func (h *Handlers) respondError(c *fiber.Ctx, err error) error {
	status, kind := classify(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		h.logger.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
		message = "an internal error occurred, the request was not applied"
	}
	return c.Status(status).JSON(ErrorResponse{Error: kind, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "validation_error",
		Message: message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: message,
	})
}

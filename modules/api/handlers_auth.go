package api

import (
	"github.com/example/task-manager-api/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// Register handles POST /auth/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body RegisterBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.auth.Register(c.UserContext(), auth.RegisterRequest{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /auth/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body LoginBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.auth.Login(c.UserContext(), auth.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdateUser handles PUT/PATCH /auth/users for the authenticated user.
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	var body UpdateUserBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.auth.UpdateUser(c.UserContext(), auth.UpdateUserRequest{
		UserID:   currentUser(c),
		Name:     body.Name,
		Password: body.Password,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(user)
}

// Me handles GET /auth/users/me.
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := h.auth.GetUser(c.UserContext(), currentUser(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(user)
}

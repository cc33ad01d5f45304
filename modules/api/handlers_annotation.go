package api

import (
	"github.com/example/task-manager-api/modules/annotation"
	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /tasks/:task_id/comments/.
func (h *Handlers) AddComment(c *fiber.Ctx) error {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return notFound(c, "task not found")
	}
	var body CommentBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}
	content := ""
	if body.Content != nil {
		content = *body.Content
	}

	comment, err := h.annotations.AddComment(c.UserContext(), annotation.AddCommentRequest{
		UserID:  currentUser(c),
		TaskID:  taskID,
		Content: content,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// EditComment handles PUT/PATCH /tasks/:task_id/comments/:comment_id.
func (h *Handlers) EditComment(c *fiber.Ctx) error {
	taskID, commentID, ok := commentParams(c)
	if !ok {
		return notFound(c, "comment not found")
	}
	var body CommentBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}

	comment, err := h.annotations.EditComment(c.UserContext(), annotation.EditCommentRequest{
		TaskID:    taskID,
		CommentID: commentID,
		Content:   body.Content,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /tasks/:task_id/comments/:comment_id.
func (h *Handlers) DeleteComment(c *fiber.Ctx) error {
	taskID, commentID, ok := commentParams(c)
	if !ok {
		return notFound(c, "comment not found")
	}
	message, err := h.annotations.DeleteComment(c.UserContext(), annotation.CommentRequest{
		TaskID:    taskID,
		CommentID: commentID,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(MessageResponse{Message: message})
}

// CreateTracking handles POST /tasks/:task_id/task_trackings/.
func (h *Handlers) CreateTracking(c *fiber.Ctx) error {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return notFound(c, "task not found")
	}
	var body TrackingBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}

	tracking, err := h.annotations.CreateTracking(c.UserContext(), annotation.CreateTrackingRequest{
		TaskID:         taskID,
		TrackingFields: body.fields(),
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tracking)
}

// ListTrackings handles GET /tasks/:task_id/task_trackings/.
func (h *Handlers) ListTrackings(c *fiber.Ctx) error {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return notFound(c, "task not found")
	}
	trackings, err := h.annotations.ListTrackings(c.UserContext(), taskID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(trackings)
}

// GetTracking handles GET /tasks/:task_id/task_trackings/:tracking_id.
func (h *Handlers) GetTracking(c *fiber.Ctx) error {
	req, ok := trackingParams(c)
	if !ok {
		return notFound(c, "task tracking not found")
	}
	tracking, err := h.annotations.GetTracking(c.UserContext(), req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(tracking)
}

// UpdateTracking handles PATCH /tasks/:task_id/task_trackings/:tracking_id.
func (h *Handlers) UpdateTracking(c *fiber.Ctx) error {
	req, ok := trackingParams(c)
	if !ok {
		return notFound(c, "task tracking not found")
	}
	var body TrackingBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid request body")
	}

	tracking, err := h.annotations.UpdateTracking(c.UserContext(), annotation.UpdateTrackingRequest{
		TaskID:         req.TaskID,
		TrackingID:     req.TrackingID,
		TrackingFields: body.fields(),
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(tracking)
}

// DeleteTracking handles DELETE /tasks/:task_id/task_trackings/:tracking_id.
func (h *Handlers) DeleteTracking(c *fiber.Ctx) error {
	req, ok := trackingParams(c)
	if !ok {
		return notFound(c, "task tracking not found")
	}
	message, err := h.annotations.DeleteTracking(c.UserContext(), req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(MessageResponse{Message: message})
}

func commentParams(c *fiber.Ctx) (uint, uint, bool) {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return 0, 0, false
	}
	commentID, ok := paramID(c, "comment_id")
	return taskID, commentID, ok
}

func trackingParams(c *fiber.Ctx) (annotation.TrackingRequest, bool) {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return annotation.TrackingRequest{}, false
	}
	trackingID, ok := paramID(c, "tracking_id")
	return annotation.TrackingRequest{TaskID: taskID, TrackingID: trackingID}, ok
}

func (b TrackingBody) fields() annotation.TrackingFields {
	return annotation.TrackingFields{
		EstimatedHours: b.EstimatedHours,
		StartedAt:      b.StartedAt,
		FinishedAt:     b.FinishedAt,
	}
}

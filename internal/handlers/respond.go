package handlers

import (
	"errors"

	"campustrade/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusFromError maps the domain error taxonomy to HTTP statuses.
// Anything outside the taxonomy is an internal error.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidArgument):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the standard error body for a failed operation.
func respondError(c *fiber.Ctx, err error, message string) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// currentUserID returns the authenticated user's ID placed in Locals by
// the auth middleware.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

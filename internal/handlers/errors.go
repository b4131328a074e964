package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
)

// statusForError maps the service error taxonomy onto HTTP statuses:
// not-found sentinels → 404, dependent-record and duplicate conflicts → 409,
// invalid enum values → 400, anything else → 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, repositories.ErrProductNotFound),
		errors.Is(err, repositories.ErrGroupNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrGroupHasProducts),
		errors.Is(err, repositories.ErrDuplicateBarcode):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidStatus):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error, message string) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

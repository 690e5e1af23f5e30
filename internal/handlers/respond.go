package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"photovault/internal/apperr"
)

func jsonOK(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(fiber.Map{"status": "ok", "data": payload})
}

func jsonErr(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": msg})
}

// fail maps sentinel errors onto HTTP statuses. Unrecognized errors become
// a generic 500 so adapter details never leak to the client.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperr.ErrBadRequest), errors.Is(err, apperr.ErrConflict):
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		return jsonErr(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		return jsonErr(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return jsonErr(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrRateLimited):
		return jsonErr(c, fiber.StatusTooManyRequests, err.Error())
	default:
		return jsonErr(c, fiber.StatusInternalServerError, "internal server error")
	}
}

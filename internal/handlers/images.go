package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"photovault/internal/middleware"
)

// GET /api/images/:imageKey: raw bytes, aggressively cacheable since blob
// keys are immutable once issued.
func (h *PhotoHandler) Image(c *fiber.Ctx) error {
	obj, err := h.photos.Image(c.Context(), c.Params("imageKey"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	if obj.ContentType != "" {
		c.Set(fiber.HeaderContentType, obj.ContentType)
	}
	return c.Send(obj.Data)
}

// GET /api/download/:photoId: attachment disposition.
func (h *PhotoHandler) Download(c *fiber.Ctx) error {
	photo, obj, err := h.photos.Download(c.Context(), middleware.UserID(c), c.Params("photoId"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", photo.FileName))
	if obj.ContentType != "" {
		c.Set(fiber.HeaderContentType, obj.ContentType)
	}
	return c.Send(obj.Data)
}

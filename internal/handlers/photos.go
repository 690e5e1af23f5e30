package handlers

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"photovault/internal/editor"
	"photovault/internal/gallery"
	"photovault/internal/middleware"
	"photovault/internal/repository"
	"photovault/internal/service"
)

type PhotoHandler struct {
	photos *service.PhotoService
	log    *zap.SugaredLogger
}

func NewPhotoHandler(photos *service.PhotoService, log *zap.SugaredLogger) *PhotoHandler {
	return &PhotoHandler{photos: photos, log: log}
}

// GET /api/photos
func (h *PhotoHandler) List(c *fiber.Ctx) error {
	q := gallery.Query{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     gallery.SortKey(c.Query("sort")),
		Desc:     c.Query("order") == "desc",
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return jsonErr(c, fiber.StatusBadRequest, "invalid from date")
		}
		q.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return jsonErr(c, fiber.StatusBadRequest, "invalid to date")
		}
		q.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	photos, err := h.photos.List(c.Context(), middleware.UserID(c), q)
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, photos)
}

type uploadRequest struct {
	FileName     string   `json:"fileName"`
	OriginalName string   `json:"originalName"`
	Category     string   `json:"category"`
	Type         string   `json:"type"`
	UploadDate   string   `json:"uploadDate"`
	ImageData    string   `json:"imageData"`
	Tags         []string `json:"tags"`
}

// POST /api/photos
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.FileName == "" || req.ImageData == "" {
		return jsonErr(c, fiber.StatusBadRequest, "fileName and imageData are required")
	}
	data, err := decodeImageData(req.ImageData)
	if err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "imageData is not valid base64")
	}
	var uploadedAt time.Time
	if req.UploadDate != "" {
		if t, err := time.Parse(time.RFC3339, req.UploadDate); err == nil {
			uploadedAt = t
		}
	}
	photo, err := h.photos.Upload(c.Context(), middleware.UserID(c), service.UploadInput{
		FileName:     req.FileName,
		OriginalName: req.OriginalName,
		Category:     req.Category,
		Tags:         req.Tags,
		ContentType:  req.Type,
		UploadedAt:   uploadedAt,
		Data:         data,
	})
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusCreated, fiber.Map{"id": photo.ID})
}

// decodeImageData accepts both bare base64 and data-URI payloads.
func decodeImageData(s string) ([]byte, error) {
	if idx := strings.Index(s, ","); idx != -1 && strings.HasPrefix(s, "data:") {
		s = s[idx+1:]
	}
	return base64.StdEncoding.DecodeString(s)
}

// PUT /api/photos/:id
func (h *PhotoHandler) Update(c *fiber.Ctx) error {
	var req struct {
		FileName *string   `json:"fileName"`
		Category *string   `json:"category"`
		Tags     *[]string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	err := h.photos.Update(c.Context(), middleware.UserID(c), c.Params("id"), repository.PhotoUpdate{
		FileName: req.FileName,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, fiber.Map{"updated": true})
}

// DELETE /api/photos/:id
func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	if err := h.photos.Delete(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// POST /api/photos/bulk-delete
func (h *PhotoHandler) BulkDelete(c *fiber.Ctx) error {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.IDs) == 0 {
		return jsonErr(c, fiber.StatusBadRequest, "ids are required")
	}
	outcome := h.photos.BulkDelete(c.Context(), middleware.UserID(c), req.IDs)
	return jsonOK(c, fiber.StatusOK, outcome)
}

// GET /api/photos/export?ids=a,b,c
func (h *PhotoHandler) Export(c *fiber.Ctx) error {
	raw := c.Query("ids")
	if raw == "" {
		return jsonErr(c, fiber.StatusBadRequest, "ids are required")
	}
	ids := strings.Split(raw, ",")
	data, skipped, err := h.photos.ExportZip(c.Context(), middleware.UserID(c), ids)
	if err != nil {
		return fail(c, err)
	}
	c.Set("X-Skipped-Count", strconv.Itoa(skipped))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="photos.zip"`)
	c.Set(fiber.HeaderContentType, "application/zip")
	return c.Send(data)
}

// POST /api/photos/:id/edit
func (h *PhotoHandler) Edit(c *fiber.Ctx) error {
	var adj editor.Adjustments
	if err := c.BodyParser(&adj); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	photo, err := h.photos.Edit(c.Context(), middleware.UserID(c), c.Params("id"), adj)
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, photo)
}

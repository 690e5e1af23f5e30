package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"photovault/internal/gallery"
	"photovault/internal/memories"
	"photovault/internal/metrics"
	"photovault/internal/middleware"
	"photovault/internal/models"
	"photovault/internal/service"
	"photovault/internal/story"
)

type MemoriesHandler struct {
	photos  *service.PhotoService
	stories *story.Client
	loc     *time.Location
	log     *zap.SugaredLogger
}

func NewMemoriesHandler(photos *service.PhotoService, stories *story.Client, log *zap.SugaredLogger) *MemoriesHandler {
	return &MemoriesHandler{photos: photos, stories: stories, loc: time.Local, log: log}
}

// GET /api/memories: the timeline is recomputed from the current photo
// list on every request; narratives are fetched separately.
func (h *MemoriesHandler) Timeline(c *fiber.Ctx) error {
	photos, err := h.photos.List(c.Context(), middleware.UserID(c), gallery.Query{})
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, memories.Build(photos, h.loc))
}

type storyRequest struct {
	Prompt string        `json:"prompt"`
	Memory models.Memory `json:"memory"`
}

// POST /api/generate-story: best-effort narrative for one memory group.
func (h *MemoriesHandler) GenerateStory(c *fiber.Ctx) error {
	var req storyRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Memory.Date == "" && req.Prompt == "" {
		return jsonErr(c, fiber.StatusBadRequest, "prompt or memory is required")
	}
	text, err := h.stories.Generate(c.Context(), req.Prompt, req.Memory)
	if err != nil {
		metrics.StoriesTotal.WithLabelValues("failed").Inc()
		return fail(c, err)
	}
	metrics.StoriesTotal.WithLabelValues("completed").Inc()
	return jsonOK(c, fiber.StatusOK, fiber.Map{"story": text})
}

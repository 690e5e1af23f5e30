// Package server assembles the fiber application: middleware chain, route
// table, and the handlers' dependencies.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"photovault/internal/auth"
	"photovault/internal/config"
	"photovault/internal/handlers"
	"photovault/internal/metrics"
	"photovault/internal/middleware"
	"photovault/internal/service"
	"photovault/internal/story"
	"photovault/internal/uploader"
)

type Deps struct {
	Cfg      *config.Config
	Log      *zap.SugaredLogger
	Users    *service.UserService
	Photos   *service.PhotoService
	Sessions *auth.Sessions
	Manager  *uploader.Manager
	Stories  *story.Client
	Redis    *redis.Client // nil when not configured
}

func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    64 * 1024 * 1024,
	})

	app.Use(middleware.Recovery(d.Log))
	app.Use(middleware.RequestLogger(d.Log))

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	authH := handlers.NewAuthHandler(d.Users, d.Sessions, d.Cfg.Session.CookieName, d.Log)
	photoH := handlers.NewPhotoHandler(d.Photos, d.Log)
	memH := handlers.NewMemoriesHandler(d.Photos, d.Stories, d.Log)

	requireSession := middleware.Session(d.Sessions, d.Cfg.Session.CookieName)

	api := app.Group("/api")
	api.Post("/register", authH.Register)
	api.Post("/login", authH.Login)
	api.Post("/logout", authH.Logout)
	api.Get("/user", requireSession, authH.CurrentUser)

	api.Get("/photos", requireSession, photoH.List)
	api.Post("/photos", requireSession, photoH.Upload)
	api.Post("/photos/batch", requireSession, photoH.BatchUpload(d.Manager))
	api.Post("/photos/bulk-delete", requireSession, photoH.BulkDelete)
	api.Get("/photos/export", requireSession, photoH.Export)
	api.Put("/photos/:id", requireSession, photoH.Update)
	api.Delete("/photos/:id", requireSession, photoH.Delete)
	api.Post("/photos/:id/edit", requireSession, photoH.Edit)

	api.Get("/images/:imageKey", photoH.Image)
	api.Get("/download/:photoId", requireSession, photoH.Download)

	api.Get("/memories", requireSession, memH.Timeline)
	api.Post("/generate-story", requireSession, storyLimiter(d), memH.GenerateStory)

	return app
}

// storyLimiter guards the narrative endpoint: Redis-backed when a Redis
// address is configured so the limit holds across replicas, otherwise an
// in-process token bucket.
func storyLimiter(d Deps) fiber.Handler {
	byUser := func(c *fiber.Ctx) string { return middleware.UserID(c) }
	if d.Redis != nil {
		return middleware.NewRedisRateLimiter(d.Redis, "story",
			d.Cfg.RateLimit.StoryPerMinute, time.Minute).Handler(byUser)
	}
	return middleware.NewLocalRateLimiter(d.Cfg.RateLimit.StoryPerMinute).Handler(byUser)
}

package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"photovault/internal/metrics"
)

// RequestLogger logs every request and records its latency histogram.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		log.Infow("request",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", status,
			"duration", duration,
		)
		metrics.RequestDuration.
			WithLabelValues(c.Method(), strconv.Itoa(status)).
			Observe(duration.Seconds())
		return err
	}
}

// Recovery turns handler panics into 500 responses.
func Recovery(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("panic recovered", "panic", r, "path", c.Path())
				_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"status": "error", "message": "internal server error",
				})
			}
		}()
		return c.Next()
	}
}

package middleware

import (
	"github.com/gofiber/fiber/v2"

	"photovault/internal/auth"
)

const (
	LocalUserID   = "userID"
	LocalUsername = "username"
)

// Session authenticates requests from the session cookie and places the
// user identity in fiber Locals.
func Session(sessions *auth.Sessions, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := sessions.Verify(c.Cookies(cookieName))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": "error", "message": "not authenticated",
			})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		return c.Next()
	}
}

// UserID reads the authenticated user id set by Session.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

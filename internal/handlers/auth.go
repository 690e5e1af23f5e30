package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"photovault/internal/auth"
	"photovault/internal/middleware"
	"photovault/internal/service"
)

type AuthHandler struct {
	users      *service.UserService
	sessions   *auth.Sessions
	cookieName string
	log        *zap.SugaredLogger
}

func NewAuthHandler(users *service.UserService, sessions *auth.Sessions, cookieName string, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, cookieName: cookieName, log: log}
}

// POST /api/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	user, err := h.users.Register(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusCreated, user)
}

// POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	user, err := h.users.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		return fail(c, err)
	}
	token, err := h.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return fail(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  time.Now().Add(h.sessions.TTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return jsonOK(c, fiber.StatusOK, user)
}

// POST /api/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
	return jsonOK(c, fiber.StatusOK, fiber.Map{"loggedOut": true})
}

// GET /api/user
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, user)
}

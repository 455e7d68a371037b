package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gamerhub/marketplace/internal/api/dto"
	"github.com/gamerhub/marketplace/internal/auth"
	"github.com/gamerhub/marketplace/internal/domain"
	"github.com/gamerhub/marketplace/internal/service"
	apperrors "github.com/gamerhub/marketplace/pkg/util"
)

// LogoutMessage is the fixed body returned by the logout endpoint.
const LogoutMessage = "Logout realizado."

// SessionService is the part of the auth service the session endpoints need.
type SessionService interface {
	Register(ctx context.Context, username, email, password string) (*service.Session, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Logout(ctx context.Context, identity *domain.Identity)
}

// CookieConfig describes the session cookie attributes.
type CookieConfig struct {
	Name   string
	Secure bool
}

// SessionHandler exposes the identity, login and logout endpoints.
type SessionHandler struct {
	sessions SessionService
	codec    *auth.Codec
	guard    *auth.SessionGuard
	cookie   CookieConfig
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions SessionService, codec *auth.Codec, guard *auth.SessionGuard, cookie CookieConfig) *SessionHandler {
	if cookie.Name == "" {
		cookie.Name = "session_token"
	}
	return &SessionHandler{sessions: sessions, codec: codec, guard: guard, cookie: cookie}
}

// Me handles GET /api/auth/me. It re-validates the token on every call.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	identity, err := h.codec.Decode(h.guard.Token(c))
	if err != nil {
		return apperrors.NewUnauthorized(auth.ErrUnauthenticated.Error())
	}
	return c.JSON(dto.IdentityResponse{User: *identity})
}

// Logout handles POST /api/auth/logout. It always succeeds.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	identity, _ := h.codec.Decode(h.guard.Token(c))
	h.sessions.Logout(c.UserContext(), identity)

	c.Cookie(h.sessionCookie("", time.Unix(0, 0)))
	return c.JSON(dto.MessageResponse{Message: LogoutMessage})
}

// Register handles POST /api/auth/register.
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		return fiber.NewError(http.StatusBadRequest, "usuario, email, password required")
	}

	session, err := h.sessions.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	c.Cookie(h.sessionCookie(session.Token, session.ExpiresAt))
	return c.Status(http.StatusCreated).JSON(dto.IdentityResponse{User: session.Identity})
}

// Login handles POST /api/auth/login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	session, err := h.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	c.Cookie(h.sessionCookie(session.Token, session.ExpiresAt))
	return c.JSON(dto.IdentityResponse{User: session.Identity})
}

// LoginPage handles GET on the login path; rendering is left to the web client.
func (h *SessionHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login", "action": "/api/auth/login"})
}

func (h *SessionHandler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

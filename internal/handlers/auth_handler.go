package handlers

import (
	"net/http"

	"github.com/bluenote/backend/internal/middleware"
	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles verification codes, signup, login and logout
type AuthHandler struct {
	auth  *services.AuthService
	codes *services.VerificationService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *services.AuthService, codes *services.VerificationService) *AuthHandler {
	return &AuthHandler{auth: auth, codes: codes}
}

// RegisterAuthRoutes registers authentication routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, requireSession echo.MiddlewareFunc) {
	g.GET("/request_code", h.RequestCode)
	g.POST("/sign_up", h.Signup)
	g.POST("/log_in", h.Login)
	g.POST("/log_out", h.Logout, requireSession)
}

// RequestCode issues a one-time verification code
func (h *AuthHandler) RequestCode(c echo.Context) error {
	code, err := h.codes.RequestCode(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, code)
}

// Signup registers a new user after consuming a verification code
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.Signup(c.Request().Context(), &req); err != nil {
		return err
	}
	return message(c, http.StatusOK, "signup success")
}

// Login opens a session after consuming a verification code
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	data, err := h.auth.Login(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, data)
}

// Logout ends the caller's session
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.CurrentToken(c)); err != nil {
		return err
	}
	return message(c, http.StatusOK, "logout success")
}

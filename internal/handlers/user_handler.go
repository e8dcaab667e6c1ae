package handlers

import (
	"net/http"

	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user profile lookups
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterUserRoutes registers profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, requireSession echo.MiddlewareFunc) {
	g.POST("/search_user", h.SearchUser, requireSession)
}

// SearchUser returns a user's public profile
func (h *UserHandler) SearchUser(c echo.Context) error {
	var req models.SearchUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	profile, err := h.users.SearchUser(c.Request().Context(), req.Username)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, profile)
}

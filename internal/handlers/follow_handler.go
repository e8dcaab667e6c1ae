package handlers

import (
	"net/http"

	"github.com/bluenote/backend/internal/middleware"
	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow relationships
type FollowHandler struct {
	users *services.UserService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(users *services.UserService) *FollowHandler {
	return &FollowHandler{users: users}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, requireSession echo.MiddlewareFunc) {
	g.POST("/follow_user", h.FollowUser, requireSession)
	g.POST("/unfollow_user", h.UnfollowUser, requireSession)
}

// FollowUser adds a user to the caller's following list
func (h *FollowHandler) FollowUser(c echo.Context) error {
	var req models.FollowRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.users.Follow(c.Request().Context(), middleware.CurrentUser(c), req.Username); err != nil {
		return err
	}
	return message(c, http.StatusOK, "successfully followed "+req.Username)
}

// UnfollowUser removes a user from the caller's following list
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	var req models.FollowRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.users.Unfollow(c.Request().Context(), middleware.CurrentUser(c), req.Username); err != nil {
		return err
	}
	return message(c, http.StatusOK, "successfully unfollowed "+req.Username)
}

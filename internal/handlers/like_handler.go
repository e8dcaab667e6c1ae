package handlers

import (
	"net/http"

	"github.com/bluenote/backend/internal/middleware"
	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	articles *services.ArticleService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(articles *services.ArticleService) *LikeHandler {
	return &LikeHandler{articles: articles}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, requireSession echo.MiddlewareFunc) {
	g.POST("/like_article", h.LikeArticle, requireSession)
	g.POST("/unlike_article", h.UnlikeArticle, requireSession)
}

// LikeArticle handles liking an article
func (h *LikeHandler) LikeArticle(c echo.Context) error {
	var req models.ArticleIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.articles.Like(c.Request().Context(), middleware.CurrentUser(c), req.ArticleID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "successfully liked the article")
}

// UnlikeArticle handles unliking an article
func (h *LikeHandler) UnlikeArticle(c echo.Context) error {
	var req models.ArticleIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.articles.Unlike(c.Request().Context(), middleware.CurrentUser(c), req.ArticleID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "successfully unliked the article")
}

package handlers

import (
	"net/http"

	"github.com/bluenote/backend/internal/middleware"
	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SavedArticleHandler handles collecting articles into the caller's saved list
type SavedArticleHandler struct {
	articles *services.ArticleService
}

func NewSavedArticleHandler(articles *services.ArticleService) *SavedArticleHandler {
	return &SavedArticleHandler{articles: articles}
}

func (h *SavedArticleHandler) RegisterSavedArticleRoutes(g *echo.Group, requireSession echo.MiddlewareFunc) {
	g.POST("/collect_article", h.CollectArticle, requireSession)
	g.POST("/uncollect_article", h.UncollectArticle, requireSession)
}

func (h *SavedArticleHandler) CollectArticle(c echo.Context) error {
	var req models.ArticleIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.articles.Collect(c.Request().Context(), middleware.CurrentUser(c), req.ArticleID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "successfully collected the article")
}

func (h *SavedArticleHandler) UncollectArticle(c echo.Context) error {
	var req models.ArticleIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.articles.Uncollect(c.Request().Context(), middleware.CurrentUser(c), req.ArticleID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "successfully uncollected the article")
}

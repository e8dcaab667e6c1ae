package handlers

import (
	"net/http"

	"github.com/bluenote/backend/internal/middleware"
	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ArticleHandler handles HTTP requests related to articles
type ArticleHandler struct {
	articles *services.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articles *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// RegisterArticleRoutes registers article routes. Browsing is public.
func (h *ArticleHandler) RegisterArticleRoutes(g *echo.Group, requireSession echo.MiddlewareFunc) {
	g.POST("/browse_article", h.BrowseArticles)
	g.POST("/create_article", h.CreateArticle, requireSession)
	g.POST("/article_detail", h.ArticleDetail, requireSession)
	g.GET("/get_user_articles", h.GetUserArticles, requireSession)
	g.POST("/delete_article", h.DeleteArticle, requireSession)
}

// CreateArticle handles creating a new article
func (h *ArticleHandler) CreateArticle(c echo.Context) error {
	var req models.CreateArticleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	article, err := h.articles.Create(c.Request().Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, article)
}

// BrowseArticles returns one page of articles
func (h *ArticleHandler) BrowseArticles(c echo.Context) error {
	var req models.BrowseArticleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	list, err := h.articles.Browse(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, list)
}

// ArticleDetail returns an article with the caller's like/collect state and its comments
func (h *ArticleHandler) ArticleDetail(c echo.Context) error {
	var req models.ArticleIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	detail, err := h.articles.Detail(c.Request().Context(), middleware.CurrentUser(c), req.ArticleID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, detail)
}

// GetUserArticles lists the caller's own articles
func (h *ArticleHandler) GetUserArticles(c echo.Context) error {
	list, err := h.articles.UserArticles(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, list)
}

// DeleteArticle deletes an article written by the caller
func (h *ArticleHandler) DeleteArticle(c echo.Context) error {
	var req models.ArticleIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.articles.Delete(c.Request().Context(), middleware.CurrentUser(c), req.ArticleID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "successfully deleted the article")
}

package handlers

import (
	"net/http"

	"github.com/bluenote/backend/internal/middleware"
	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, requireSession echo.MiddlewareFunc) {
	g.POST("/create_comment", h.CreateComment, requireSession)
	g.POST("/delete_comment", h.DeleteComment, requireSession)
	g.POST("/create_reply", h.CreateReply, requireSession)
}

// CreateComment handles creating a new comment on an article
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.comments.AddComment(c.Request().Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, comment)
}

// DeleteComment handles deleting a comment. Only the author may delete it.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	var req models.DeleteCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.comments.DeleteComment(c.Request().Context(), middleware.CurrentUser(c), req.CommentID); err != nil {
		return err
	}
	return message(c, http.StatusCreated, "successfully deleted the comment")
}

// CreateReply handles replying to a comment
func (h *CommentHandler) CreateReply(c echo.Context) error {
	var req models.CreateReplyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	reply, err := h.comments.AddReply(c.Request().Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, reply)
}

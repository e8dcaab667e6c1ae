package handlers

import (
	"errors"
	"net/http"

	"github.com/bluenote/backend/internal/middleware"
	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FileHandler handles file upload and deletion
type FileHandler struct {
	files *services.FileService
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(files *services.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// RegisterFileRoutes registers file routes
func (h *FileHandler) RegisterFileRoutes(g *echo.Group, requireSession echo.MiddlewareFunc) {
	g.POST("/upload_file", h.UploadFile, requireSession)
	g.DELETE("/delete_file", h.DeleteFile, requireSession)
	g.GET("/get_user_files", h.GetUserFiles, requireSession)
}

// UploadFile stores the multipart "file" field
func (h *FileHandler) UploadFile(c echo.Context) error {
	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return services.ErrMissingFile
	}
	if err != nil {
		return err
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := h.files.Upload(c.Request().Context(), middleware.CurrentUser(c), src, fh.Size)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, data)
}

// DeleteFile removes a previously uploaded file
func (h *FileHandler) DeleteFile(c echo.Context) error {
	var req models.DeleteFileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.FileURL == "" {
		return services.ErrMissingFileName
	}
	if err := h.files.Delete(c.Request().Context(), middleware.CurrentUser(c), req.FileURL); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Successfully deleted the file")
}

// GetUserFiles lists the uploads of the current user
func (h *FileHandler) GetUserFiles(c echo.Context) error {
	list, err := h.files.UserFiles(middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, list)
}

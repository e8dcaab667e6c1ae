package router

import (
	"github.com/bluenote/backend/internal/handlers"
	"github.com/bluenote/backend/internal/middleware"
	"github.com/bluenote/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Options configures optional routes
type Options struct {
	// UploadDir, when set, is served statically under UploadURLPrefix
	UploadDir       string
	UploadURLPrefix string
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, svc *services.Services, opts Options, log zerolog.Logger) {
	e.GET("/health", handlers.HealthCheck)

	if opts.UploadDir != "" {
		e.Static(opts.UploadURLPrefix, opts.UploadDir)
		log.Debug().Str("prefix", opts.UploadURLPrefix).Str("dir", opts.UploadDir).Msg("Serving uploads")
	}

	requireSession := middleware.SessionAuthMiddleware(svc.Auth)
	root := e.Group("")

	handlers.NewAuthHandler(svc.Auth, svc.Codes).RegisterAuthRoutes(root, requireSession)
	handlers.NewArticleHandler(svc.Articles).RegisterArticleRoutes(root, requireSession)
	handlers.NewLikeHandler(svc.Articles).RegisterLikeRoutes(root, requireSession)
	handlers.NewSavedArticleHandler(svc.Articles).RegisterSavedArticleRoutes(root, requireSession)
	handlers.NewCommentHandler(svc.Comments).RegisterCommentRoutes(root, requireSession)
	handlers.NewUserHandler(svc.Users).RegisterUserRoutes(root, requireSession)
	handlers.NewFollowHandler(svc.Users).RegisterFollowRoutes(root, requireSession)
	handlers.NewFileHandler(svc.Files).RegisterFileRoutes(root, requireSession)

	log.Debug().Int("routes", len(e.Routes())).Msg("All routes configured")
}

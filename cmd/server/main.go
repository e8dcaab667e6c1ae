package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bluenote/backend/internal/handlers"
	"github.com/bluenote/backend/internal/repositories"
	"github.com/bluenote/backend/internal/router"
	"github.com/bluenote/backend/internal/services"
	"github.com/bluenote/backend/internal/storage"
	"github.com/bluenote/backend/pkg/config"
	"github.com/bluenote/backend/pkg/firebase"
	"github.com/bluenote/backend/pkg/logger"
	"github.com/bluenote/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type indexed interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	log.Info().Msg("Starting bluenote backend...")

	ctx := context.Background()

	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize databases")
	}
	defer db.CloseDB()

	userRepo := repositories.NewMongoUserRepository(db.Database)
	sessionRepo := repositories.NewMongoSessionRepository(db.Database)
	codeRepo := repositories.NewMongoVerificationCodeRepository(db.Database, cfg.VerificationCodeTTL)
	articleRepo := repositories.NewMongoArticleRepository(db.Database)
	commentRepo := repositories.NewMongoCommentRepository(db.Database)
	fileRepo := repositories.NewGormFileLedgerRepository(db.Ledger)

	for _, repo := range []indexed{userRepo, sessionRepo, codeRepo, articleRepo, commentRepo} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to create MongoDB indexes")
		}
	}
	if err := fileRepo.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate file ledger")
	}

	store, routeOpts, err := openFileStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize file storage")
	}

	svc := services.New(services.Repositories{
		Users:    userRepo,
		Sessions: sessionRepo,
		Codes:    codeRepo,
		Articles: articleRepo,
		Comments: commentRepo,
		Files:    fileRepo,
	}, store, services.Options{
		CodeTTL: cfg.VerificationCodeTTL,
		Logger:  log,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(log)

	config.SetupMiddleware(e, cfg, log)
	router.SetupRoutes(e, svc, routeOpts, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

func openFileStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storage.FileStore, router.Options, error) {
	if cfg.StorageBackend == config.StorageFirebase {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket)
		if err != nil {
			return nil, router.Options{}, err
		}
		log.Info().Str("bucket", app.BucketName).Msg("Using Firebase storage")
		return storage.NewFirebaseFileStore(app.Bucket, app.BucketName), router.Options{}, nil
	}

	store, err := storage.NewLocalFileStore(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		return nil, router.Options{}, err
	}
	log.Info().Str("dir", store.Dir()).Msg("Using local file storage")
	return store, router.Options{UploadDir: store.Dir(), UploadURLPrefix: cfg.UploadURLPrefix}, nil
}

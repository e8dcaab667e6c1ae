// Package services holds the domain logic behind the HTTP handlers.
package services

import (
	"time"

	"github.com/bluenote/backend/internal/repositories"
	"github.com/bluenote/backend/internal/storage"
	"github.com/rs/zerolog"
)

// DefaultCodeTTL is how long a verification code stays valid
const DefaultCodeTTL = 180 * time.Second

// Repositories groups the stores the services depend on
type Repositories struct {
	Users    repositories.UserRepository
	Sessions repositories.SessionRepository
	Codes    repositories.VerificationCodeRepository
	Articles repositories.ArticleRepository
	Comments repositories.CommentRepository
	Files    repositories.FileLedgerRepository
}

// Options tunes service behaviour; zero values select defaults
type Options struct {
	CodeTTL time.Duration
	Now     func() time.Time
	Logger  zerolog.Logger
}

// Services is the set of domain services wired to one set of repositories
type Services struct {
	Auth     *AuthService
	Codes    *VerificationService
	Articles *ArticleService
	Comments *CommentService
	Users    *UserService
	Files    *FileService
}

func New(repos Repositories, store storage.FileStore, opts Options) *Services {
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = DefaultCodeTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	codes := NewVerificationService(repos.Codes, opts.CodeTTL, opts.Now)
	files := NewFileService(store, repos.Files, opts.Now, opts.Logger)
	return &Services{
		Auth:     NewAuthService(repos.Users, repos.Sessions, codes, opts.Logger),
		Codes:    codes,
		Articles: NewArticleService(repos.Articles, repos.Users, repos.Comments, files, opts.Now, opts.Logger),
		Comments: NewCommentService(repos.Comments, repos.Articles, repos.Users, opts.Now),
		Users:    NewUserService(repos.Users, repos.Articles, repos.Comments),
		Files:    files,
	}
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/bluenote/backend/internal/mocks"
	"github.com/bluenote/backend/internal/models"
	"github.com/rs/zerolog"
)

type testEnv struct {
	svc      *Services
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionRepository
	codes    *mocks.MockVerificationCodeRepository
	articles *mocks.MockArticleRepository
	comments *mocks.MockCommentRepository
	files    *mocks.MockFileLedgerRepository
	store    *mocks.MockFileStore
	clock    *fakeClock
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:    mocks.NewMockUserRepository(),
		sessions: mocks.NewMockSessionRepository(),
		codes:    mocks.NewMockVerificationCodeRepository(),
		articles: mocks.NewMockArticleRepository(),
		comments: mocks.NewMockCommentRepository(),
		files:    mocks.NewMockFileLedgerRepository(),
		store:    mocks.NewMockFileStore(),
		clock:    &fakeClock{t: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
	env.svc = New(Repositories{
		Users:    env.users,
		Sessions: env.sessions,
		Codes:    env.codes,
		Articles: env.articles,
		Comments: env.comments,
		Files:    env.files,
	}, env.store, Options{Now: env.clock.Now, Logger: zerolog.Nop()})
	return env
}

func (e *testEnv) code(t *testing.T) *models.CodeData {
	t.Helper()
	c, err := e.svc.Codes.RequestCode(context.Background())
	if err != nil {
		t.Fatalf("RequestCode failed: %v", err)
	}
	return c
}

func (e *testEnv) signup(t *testing.T, username, password string) {
	t.Helper()
	c := e.code(t)
	req := &models.SignupRequest{Username: username, Password: password, CodeID: c.ID, Code: c.Code}
	if err := e.svc.Auth.Signup(context.Background(), req); err != nil {
		t.Fatalf("Signup(%s) failed: %v", username, err)
	}
}

// user signs up username and returns the freshly loaded record
func (e *testEnv) user(t *testing.T, username string) *models.User {
	t.Helper()
	e.signup(t, username, "secret")
	return e.reload(t, username)
}

func (e *testEnv) reload(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := e.users.GetUserByUsername(context.Background(), username)
	if err != nil {
		t.Fatalf("user %s not found: %v", username, err)
	}
	return u
}

func (e *testEnv) article(t *testing.T, author *models.User, title, category string) string {
	t.Helper()
	created, err := e.svc.Articles.Create(context.Background(), author, &models.CreateArticleRequest{
		Title: title, Category: category, Content: "body",
	})
	if err != nil {
		t.Fatalf("Create article failed: %v", err)
	}
	e.clock.Advance(time.Second)
	return created.ArticleID
}

package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository is an in-memory implementation of UserRepository
type MockUserRepository struct {
	mu    sync.Mutex
	Users map[primitive.ObjectID]*models.User
	// GetError, when set, is returned by every lookup
	GetError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[primitive.ObjectID]*models.User)}
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Username == user.Username {
			return repositories.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	stored := copyUser(user)
	m.Users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, u := range m.Users {
		if u.Username == username {
			out := copyUser(u)
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *MockUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := []models.User{}
	for _, id := range ids {
		if u, ok := m.Users[id]; ok {
			users = append(users, copyUser(u))
		}
	}
	return users, nil
}

func (m *MockUserRepository) AddToSet(ctx context.Context, userID primitive.ObjectID, set repositories.UserSet, id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[userID]
	if !ok {
		return false, repositories.ErrNotFound
	}
	field := setField(u, set)
	for _, v := range *field {
		if v == id {
			return false, nil
		}
	}
	*field = append(*field, id)
	return true, nil
}

func (m *MockUserRepository) PullFromSet(ctx context.Context, userID primitive.ObjectID, set repositories.UserSet, id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[userID]
	if !ok {
		return false, repositories.ErrNotFound
	}
	return pull(setField(u, set), id), nil
}

func (m *MockUserRepository) PullFromAllUsers(ctx context.Context, set repositories.UserSet, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		pull(setField(u, set), id)
	}
	return nil
}

func setField(u *models.User, set repositories.UserSet) *[]primitive.ObjectID {
	switch set {
	case repositories.LikedArticles:
		return &u.LikedArticles
	case repositories.SavedArticles:
		return &u.SavedArticles
	case repositories.Following:
		return &u.Following
	default:
		return &u.WrittenComments
	}
}

func pull(ids *[]primitive.ObjectID, id primitive.ObjectID) bool {
	kept := (*ids)[:0]
	removed := false
	for _, v := range *ids {
		if v == id {
			removed = true
			continue
		}
		kept = append(kept, v)
	}
	*ids = kept
	return removed
}

func copyIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	return append([]primitive.ObjectID{}, ids...)
}

func copyUser(u *models.User) models.User {
	out := *u
	out.LikedArticles = copyIDs(u.LikedArticles)
	out.SavedArticles = copyIDs(u.SavedArticles)
	out.Following = copyIDs(u.Following)
	out.WrittenComments = copyIDs(u.WrittenComments)
	return out
}

// MockSessionRepository is an in-memory implementation of SessionRepository
type MockSessionRepository struct {
	mu       sync.Mutex
	Sessions map[string]*models.Session
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{Sessions: make(map[string]*models.Session)}
}

func (m *MockSessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Sessions[session.Token]; ok {
		return repositories.ErrDuplicateKey
	}
	session.ID = primitive.NewObjectID()
	stored := *session
	m.Sessions[session.Token] = &stored
	return nil
}

func (m *MockSessionRepository) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Sessions[token]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Sessions, token)
	return nil
}

// MockVerificationCodeRepository is an in-memory implementation of VerificationCodeRepository
type MockVerificationCodeRepository struct {
	mu    sync.Mutex
	Codes map[primitive.ObjectID]*models.VerificationCode
}

func NewMockVerificationCodeRepository() *MockVerificationCodeRepository {
	return &MockVerificationCodeRepository{Codes: make(map[primitive.ObjectID]*models.VerificationCode)}
}

func (m *MockVerificationCodeRepository) CreateCode(ctx context.Context, code *models.VerificationCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	code.ID = primitive.NewObjectID()
	stored := *code
	m.Codes[code.ID] = &stored
	return nil
}

func (m *MockVerificationCodeRepository) ConsumeCode(ctx context.Context, id primitive.ObjectID, code string, issuedAfter time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Codes[id]
	if !ok || c.Code != code || !c.CreatedAt.After(issuedAfter) {
		return false, nil
	}
	delete(m.Codes, id)
	return true, nil
}

// MockArticleRepository is an in-memory implementation of ArticleRepository
type MockArticleRepository struct {
	mu       sync.Mutex
	Articles map[primitive.ObjectID]*models.Article
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[primitive.ObjectID]*models.Article)}
}

func (m *MockArticleRepository) CreateArticle(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	article.ID = primitive.NewObjectID()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}
	if article.Comments == nil {
		article.Comments = []primitive.ObjectID{}
	}
	stored := copyArticle(article)
	m.Articles[article.ID] = &stored
	return nil
}

func (m *MockArticleRepository) GetArticleByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := copyArticle(a)
	return &out, nil
}

func (m *MockArticleRepository) ArticleExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Articles[id]
	return ok, nil
}

func (m *MockArticleRepository) BrowseArticles(ctx context.Context, query repositories.BrowseQuery) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []models.Article{}
	for _, a := range m.Articles {
		if query.Category != "" && a.Category != query.Category {
			continue
		}
		all = append(all, copyArticle(a))
	}
	sort.Slice(all, func(i, j int) bool {
		if query.SortBy == models.SortByLikes && all[i].Likes != all[j].Likes {
			return all[i].Likes > all[j].Likes
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if query.Start >= int64(len(all)) {
		return []models.Article{}, nil
	}
	end := query.Start + query.Limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[query.Start:end], nil
}

func (m *MockArticleRepository) GetArticlesByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Article{}
	for _, a := range m.Articles {
		if a.Author == authorID {
			out = append(out, copyArticle(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockArticleRepository) GetArticlesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Article{}
	for _, id := range ids {
		if a, ok := m.Articles[id]; ok {
			out = append(out, copyArticle(a))
		}
	}
	return out, nil
}

func (m *MockArticleRepository) DeleteArticle(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Articles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) IncrementLikes(ctx context.Context, id primitive.ObjectID) error {
	return m.mutate(id, func(a *models.Article) { a.Likes++ })
}

func (m *MockArticleRepository) DecrementLikes(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.Articles[id]; ok && a.Likes > 0 {
		a.Likes--
	}
	return nil
}

func (m *MockArticleRepository) AppendComment(ctx context.Context, articleID, commentID primitive.ObjectID) error {
	return m.mutate(articleID, func(a *models.Article) { a.Comments = append(a.Comments, commentID) })
}

func (m *MockArticleRepository) RemoveComment(ctx context.Context, articleID, commentID primitive.ObjectID) error {
	return m.mutate(articleID, func(a *models.Article) { pull(&a.Comments, commentID) })
}

func (m *MockArticleRepository) mutate(id primitive.ObjectID, fn func(*models.Article)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return repositories.ErrNotFound
	}
	fn(a)
	return nil
}

func copyArticle(a *models.Article) models.Article {
	out := *a
	out.Comments = copyIDs(a.Comments)
	return out
}

// MockCommentRepository is an in-memory implementation of CommentRepository
type MockCommentRepository struct {
	mu       sync.Mutex
	Comments map[primitive.ObjectID]*models.Comment
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[primitive.ObjectID]*models.Comment)}
}

func (m *MockCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	if comment.Replies == nil {
		comment.Replies = []models.Reply{}
	}
	stored := copyComment(comment)
	m.Comments[comment.ID] = &stored
	return nil
}

func (m *MockCommentRepository) GetCommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := copyComment(c)
	return &out, nil
}

func (m *MockCommentRepository) GetCommentsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Comment{}
	for _, id := range ids {
		if c, ok := m.Comments[id]; ok {
			out = append(out, copyComment(c))
		}
	}
	return out, nil
}

func (m *MockCommentRepository) GetCommentsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Comment, error) {
	return m.filter(func(c *models.Comment) bool { return c.Author == authorID }), nil
}

func (m *MockCommentRepository) GetCommentsByArticle(ctx context.Context, articleID primitive.ObjectID) ([]models.Comment, error) {
	return m.filter(func(c *models.Comment) bool { return c.Article == articleID }), nil
}

func (m *MockCommentRepository) filter(keep func(*models.Comment) bool) []models.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Comment{}
	for _, c := range m.Comments {
		if keep(c) {
			out = append(out, copyComment(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *MockCommentRepository) AppendReply(ctx context.Context, commentID primitive.ObjectID, reply models.Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Comments[commentID]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Replies = append(c.Replies, reply)
	return nil
}

func (m *MockCommentRepository) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.Comments, id)
	return nil
}

func (m *MockCommentRepository) DeleteCommentsByArticle(ctx context.Context, articleID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.Comments {
		if c.Article == articleID {
			delete(m.Comments, id)
		}
	}
	return nil
}

func copyComment(c *models.Comment) models.Comment {
	out := *c
	out.Replies = append([]models.Reply{}, c.Replies...)
	return out
}

// MockFileLedgerRepository is an in-memory implementation of FileLedgerRepository
type MockFileLedgerRepository struct {
	mu    sync.Mutex
	Files map[string]*models.UploadedFile
	// CreateError, when set, is returned by CreateFile
	CreateError error
	nextID      uint
}

func NewMockFileLedgerRepository() *MockFileLedgerRepository {
	return &MockFileLedgerRepository{Files: make(map[string]*models.UploadedFile)}
}

func (m *MockFileLedgerRepository) CreateFile(file *models.UploadedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.Files[file.Name]; ok {
		return repositories.ErrDuplicateKey
	}
	m.nextID++
	file.ID = m.nextID
	stored := *file
	m.Files[file.Name] = &stored
	return nil
}

func (m *MockFileLedgerRepository) GetFileByName(name string) (*models.UploadedFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.Files[name]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *f
	return &out, nil
}

func (m *MockFileLedgerRepository) DeleteFileByName(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Files, name)
	return nil
}

func (m *MockFileLedgerRepository) GetFilesByOwner(ownerID string) ([]models.UploadedFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.UploadedFile{}
	for _, f := range m.Files {
		if f.OwnerID == ownerID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

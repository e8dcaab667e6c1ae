package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/repositories"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultBrowseLimit = 30
	maxBrowseLimit     = 100
)

// ArticleService handles articles, likes and collections
type ArticleService struct {
	articles repositories.ArticleRepository
	users    repositories.UserRepository
	comments repositories.CommentRepository
	files    *FileService
	now      func() time.Time
	log      zerolog.Logger

	// likeLocks serialize Like and Unlike for one user and article, so the
	// set update and the counter update land as a pair
	likeLocks [64]sync.Mutex
}

func NewArticleService(articles repositories.ArticleRepository, users repositories.UserRepository, comments repositories.CommentRepository, files *FileService, now func() time.Time, log zerolog.Logger) *ArticleService {
	return &ArticleService{articles: articles, users: users, comments: comments, files: files, now: now, log: log}
}

func (s *ArticleService) Create(ctx context.Context, author *models.User, req *models.CreateArticleRequest) (*models.ArticleCreated, error) {
	article := &models.Article{
		Title:     req.Title,
		Category:  req.Category,
		Content:   req.Content,
		Image:     req.Image,
		Author:    author.ID,
		CreatedAt: s.now(),
	}
	if err := s.articles.CreateArticle(ctx, article); err != nil {
		return nil, err
	}
	return &models.ArticleCreated{
		ArticleID: article.ID.Hex(),
		Title:     article.Title,
		Category:  article.Category,
		Content:   article.Content,
		Image:     article.Image,
		Author:    author.Username,
		Likes:     article.Likes,
		Comments:  []string{},
	}, nil
}

// Browse returns one page of articles. Unknown sort orders fall back to time.
func (s *ArticleService) Browse(ctx context.Context, req *models.BrowseArticleRequest) (*models.ArticleList, error) {
	query := repositories.BrowseQuery{
		SortBy:   models.SortByTime,
		Limit:    defaultBrowseLimit,
		Category: req.Category,
	}
	if req.SortBy == models.SortByLikes {
		query.SortBy = models.SortByLikes
	}
	if req.Start != nil && *req.Start > 0 {
		query.Start = int64(*req.Start)
	}
	if req.Limit != nil && *req.Limit > 0 {
		query.Limit = int64(min(*req.Limit, maxBrowseLimit))
	}

	articles, err := s.articles.BrowseArticles(ctx, query)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]primitive.ObjectID, 0, len(articles))
	for _, a := range articles {
		authorIDs = append(authorIDs, a.Author)
	}
	authors, err := s.userIndex(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	list := &models.ArticleList{Articles: make([]models.ArticleSummary, 0, len(articles))}
	for i := range articles {
		list.Articles = append(list.Articles, summarize(&articles[i], authors))
	}
	return list, nil
}

// Detail materializes an article with its comment tree for one viewer
func (s *ArticleService) Detail(ctx context.Context, viewer *models.User, articleID string) (*models.ArticleDetail, error) {
	id, err := parseID(articleID, ErrArticleNotFound)
	if err != nil {
		return nil, err
	}
	article, err := s.articles.GetArticleByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}

	// Ids left behind by an interrupted comment deletion simply find nothing here.
	found, err := s.comments.GetCommentsByIDs(ctx, article.Comments)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Comment, len(found))
	userIDs := []primitive.ObjectID{article.Author}
	for i := range found {
		byID[found[i].ID] = &found[i]
		userIDs = append(userIDs, found[i].Author)
		for _, r := range found[i].Replies {
			userIDs = append(userIDs, r.Author)
		}
	}
	users, err := s.userIndex(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	comments := make([]models.CommentView, 0, len(found))
	for _, cid := range article.Comments {
		c, ok := byID[cid]
		if !ok {
			continue
		}
		comments = append(comments, commentView(c, users, viewer.ID))
	}

	return &models.ArticleDetail{
		Article: models.ArticleView{
			ArticleSummary: summarize(article, users),
			Content:        article.Content,
		},
		Liked:     viewer.HasLiked(article.ID),
		Collected: viewer.HasSaved(article.ID),
		Comments:  comments,
	}, nil
}

// UserArticles lists the articles written by user, newest first
func (s *ArticleService) UserArticles(ctx context.Context, user *models.User) (*models.ArticleRefList, error) {
	articles, err := s.articles.GetArticlesByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.ArticleRefList{Articles: articleRefs(articles)}, nil
}

// Like records the like on the user and bumps the counter once per user
func (s *ArticleService) Like(ctx context.Context, user *models.User, articleID string) error {
	id, err := s.existingArticle(ctx, articleID)
	if err != nil {
		return err
	}
	mu := s.likeLock(user.ID, id)
	mu.Lock()
	defer mu.Unlock()

	changed, err := s.users.AddToSet(ctx, user.ID, repositories.LikedArticles, id)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.articles.IncrementLikes(ctx, id)
}

// Unlike reverses Like; the counter never drops below zero
func (s *ArticleService) Unlike(ctx context.Context, user *models.User, articleID string) error {
	id, err := s.existingArticle(ctx, articleID)
	if err != nil {
		return err
	}
	mu := s.likeLock(user.ID, id)
	mu.Lock()
	defer mu.Unlock()

	changed, err := s.users.PullFromSet(ctx, user.ID, repositories.LikedArticles, id)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.articles.DecrementLikes(ctx, id)
}

func (s *ArticleService) Collect(ctx context.Context, user *models.User, articleID string) error {
	id, err := s.existingArticle(ctx, articleID)
	if err != nil {
		return err
	}
	_, err = s.users.AddToSet(ctx, user.ID, repositories.SavedArticles, id)
	return err
}

func (s *ArticleService) Uncollect(ctx context.Context, user *models.User, articleID string) error {
	id, err := s.existingArticle(ctx, articleID)
	if err != nil {
		return err
	}
	_, err = s.users.PullFromSet(ctx, user.ID, repositories.SavedArticles, id)
	return err
}

// Delete removes an article owned by user together with its comments and
// every user reference to either
func (s *ArticleService) Delete(ctx context.Context, user *models.User, articleID string) error {
	id, err := parseID(articleID, ErrArticleNotFound)
	if err != nil {
		return err
	}
	article, err := s.articles.GetArticleByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrArticleNotFound
	}
	if err != nil {
		return err
	}
	if article.Author != user.ID {
		return ErrNotArticleAuthor
	}

	comments, err := s.comments.GetCommentsByArticle(ctx, id)
	if err != nil {
		return err
	}
	if err := s.articles.DeleteArticle(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	for _, c := range comments {
		if _, err := s.users.PullFromSet(ctx, c.Author, repositories.WrittenComments, c.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
	}
	if err := s.comments.DeleteCommentsByArticle(ctx, id); err != nil {
		return err
	}
	if err := s.users.PullFromAllUsers(ctx, repositories.LikedArticles, id); err != nil {
		return err
	}
	if err := s.users.PullFromAllUsers(ctx, repositories.SavedArticles, id); err != nil {
		return err
	}

	if article.Image != "" {
		if err := s.files.ReleaseOwned(ctx, user, article.Image); err != nil {
			s.log.Error().Err(err).Str("article", articleID).Str("image", article.Image).Msg("failed to remove article image")
		}
	}
	return nil
}

func (s *ArticleService) likeLock(userID, articleID primitive.ObjectID) *sync.Mutex {
	return &s.likeLocks[int(userID[11]^articleID[11])%len(s.likeLocks)]
}

func (s *ArticleService) existingArticle(ctx context.Context, articleID string) (primitive.ObjectID, error) {
	id, err := parseID(articleID, ErrArticleNotFound)
	if err != nil {
		return id, err
	}
	ok, err := s.articles.ArticleExists(ctx, id)
	if err != nil {
		return id, err
	}
	if !ok {
		return id, ErrArticleNotFound
	}
	return id, nil
}

func (s *ArticleService) userIndex(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserCompact, error) {
	return resolveUsers(ctx, s.users, ids)
}

// resolveUsers loads the compact form of every distinct user in ids
func resolveUsers(ctx context.Context, repo repositories.UserRepository, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserCompact, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := repo.GetUsersByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	index := make(map[primitive.ObjectID]models.UserCompact, len(users))
	for i := range users {
		index[users[i].ID] = users[i].ToCompact()
	}
	return index, nil
}

func summarize(a *models.Article, users map[primitive.ObjectID]models.UserCompact) models.ArticleSummary {
	return models.ArticleSummary{
		ArticleID: a.ID.Hex(),
		Title:     a.Title,
		Category:  a.Category,
		Author:    users[a.Author],
		Likes:     a.Likes,
		CreatedAt: a.CreatedAt,
		Image:     a.Image,
	}
}

func commentView(c *models.Comment, users map[primitive.ObjectID]models.UserCompact, viewerID primitive.ObjectID) models.CommentView {
	replies := make([]models.ReplyView, 0, len(c.Replies))
	for i := range c.Replies {
		replies = append(replies, replyView(&c.Replies[i], users[c.Replies[i].Author], viewerID))
	}
	return models.CommentView{
		ID:        c.ID.Hex(),
		Content:   c.Content,
		Author:    users[c.Author],
		CreatedAt: c.CreatedAt,
		IsMine:    c.Author == viewerID,
		Replies:   replies,
	}
}

func replyView(r *models.Reply, author models.UserCompact, viewerID primitive.ObjectID) models.ReplyView {
	return models.ReplyView{
		ID:        r.ID.Hex(),
		Content:   r.Content,
		Author:    author,
		CreatedAt: r.CreatedAt,
		IsMine:    r.Author == viewerID,
	}
}

func articleRefs(articles []models.Article) []models.ArticleRef {
	refs := make([]models.ArticleRef, 0, len(articles))
	for _, a := range articles {
		refs = append(refs, models.ArticleRef{ArticleID: a.ID.Hex(), Title: a.Title, CreatedAt: a.CreatedAt})
	}
	return refs
}

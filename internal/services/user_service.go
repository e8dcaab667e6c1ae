package services

import (
	"context"
	"errors"

	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/repositories"
)

// UserService handles profile lookup and follows
type UserService struct {
	users    repositories.UserRepository
	articles repositories.ArticleRepository
	comments repositories.CommentRepository
}

func NewUserService(users repositories.UserRepository, articles repositories.ArticleRepository, comments repositories.CommentRepository) *UserService {
	return &UserService{users: users, articles: articles, comments: comments}
}

// SearchUser builds the public profile of username
func (s *UserService) SearchUser(ctx context.Context, username string) (*models.UserProfile, error) {
	user, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.GetCommentsByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	written := make([]models.CommentRef, 0, len(comments))
	for _, c := range comments {
		written = append(written, models.CommentRef{
			CommentID: c.ID.Hex(),
			ArticleID: c.Article.Hex(),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}

	liked, err := s.articles.GetArticlesByIDs(ctx, user.LikedArticles)
	if err != nil {
		return nil, err
	}
	saved, err := s.articles.GetArticlesByIDs(ctx, user.SavedArticles)
	if err != nil {
		return nil, err
	}
	following, err := s.users.GetUsersByIDs(ctx, user.Following)
	if err != nil {
		return nil, err
	}
	followingCompact := make([]models.UserCompact, 0, len(following))
	for i := range following {
		followingCompact = append(followingCompact, following[i].ToCompact())
	}

	return &models.UserProfile{
		Username:        user.Username,
		Image:           user.Image,
		WrittenComments: written,
		LikedArticles:   articleRefs(liked),
		SavedArticles:   articleRefs(saved),
		Following:       followingCompact,
	}, nil
}

// Follow adds username to the follower's following set
func (s *UserService) Follow(ctx context.Context, follower *models.User, username string) error {
	target, err := s.followTarget(ctx, follower, username)
	if err != nil {
		return err
	}
	_, err = s.users.AddToSet(ctx, follower.ID, repositories.Following, target.ID)
	return err
}

// Unfollow removes username from the follower's following set
func (s *UserService) Unfollow(ctx context.Context, follower *models.User, username string) error {
	target, err := s.followTarget(ctx, follower, username)
	if err != nil {
		return err
	}
	_, err = s.users.PullFromSet(ctx, follower.ID, repositories.Following, target.ID)
	return err
}

func (s *UserService) followTarget(ctx context.Context, follower *models.User, username string) (*models.User, error) {
	if username == follower.Username {
		return nil, NewValidationError("Cannot follow yourself")
	}
	return s.lookup(ctx, username)
}

func (s *UserService) lookup(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

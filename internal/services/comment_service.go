package services

import (
	"context"
	"errors"
	"time"

	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentService handles comments and their embedded replies
type CommentService struct {
	comments repositories.CommentRepository
	articles repositories.ArticleRepository
	users    repositories.UserRepository
	now      func() time.Time
}

func NewCommentService(comments repositories.CommentRepository, articles repositories.ArticleRepository, users repositories.UserRepository, now func() time.Time) *CommentService {
	return &CommentService{comments: comments, articles: articles, users: users, now: now}
}

// AddComment stores a comment and links it from the article and the author
func (s *CommentService) AddComment(ctx context.Context, author *models.User, req *models.CreateCommentRequest) (*models.CommentCreated, error) {
	articleID, err := parseID(req.ArticleID, ErrArticleNotFound)
	if err != nil {
		return nil, err
	}
	ok, err := s.articles.ArticleExists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrArticleNotFound
	}

	comment := &models.Comment{
		Article:   articleID,
		Author:    author.ID,
		Content:   req.Content,
		CreatedAt: s.now(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.articles.AppendComment(ctx, articleID, comment.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	if _, err := s.users.AddToSet(ctx, author.ID, repositories.WrittenComments, comment.ID); err != nil {
		return nil, err
	}

	return &models.CommentCreated{
		CommentID: comment.ID.Hex(),
		ArticleID: articleID.Hex(),
		Author:    author.Username,
		Content:   comment.Content,
		Replies:   []models.ReplyView{},
	}, nil
}

// DeleteComment removes a comment owned by requester. The comment document
// goes first, then the article link, then the author link.
func (s *CommentService) DeleteComment(ctx context.Context, requester *models.User, commentID string) error {
	id, err := parseID(commentID, ErrCommentNotFound)
	if err != nil {
		return err
	}
	comment, err := s.comments.GetCommentByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCommentNotFound
	}
	if err != nil {
		return err
	}
	if comment.Author != requester.ID {
		return ErrNotCommentAuthor
	}

	if err := s.comments.DeleteComment(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if err := s.articles.RemoveComment(ctx, comment.Article, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if _, err := s.users.PullFromSet(ctx, comment.Author, repositories.WrittenComments, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	return nil
}

// AddReply appends a reply to an existing comment
func (s *CommentService) AddReply(ctx context.Context, author *models.User, req *models.CreateReplyRequest) (*models.ReplyView, error) {
	commentID, err := parseID(req.CommentID, ErrCommentNotFound)
	if err != nil {
		return nil, err
	}

	reply := models.Reply{
		ID:        primitive.NewObjectID(),
		Author:    author.ID,
		Content:   req.Content,
		CreatedAt: s.now(),
	}
	if err := s.comments.AppendReply(ctx, commentID, reply); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	view := replyView(&reply, author.ToCompact(), author.ID)
	return &view, nil
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a first-level reply to an article. Replies are embedded.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Article   primitive.ObjectID `json:"article" bson:"article"`
	Author    primitive.ObjectID `json:"author" bson:"author"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	Replies   []Reply            `json:"replies" bson:"replies"`
}

// Reply is a second-level comment owned by its parent Comment
type Reply struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Author    primitive.ObjectID `json:"author" bson:"author"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	ArticleID string `json:"article_id" validate:"required"`
	Content   string `json:"content" validate:"required,max=2000"`
}

// DeleteCommentRequest defines the request body for deleting a comment
type DeleteCommentRequest struct {
	CommentID string `json:"comment_id" validate:"required"`
}

// CreateReplyRequest defines the request body for replying to a comment
type CreateReplyRequest struct {
	CommentID string `json:"comment_id" validate:"required"`
	Content   string `json:"content" validate:"required,max=2000"`
}

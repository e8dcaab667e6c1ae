package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article is a published post stored in MongoDB
type Article struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string               `json:"title" bson:"title"`
	Category  string               `json:"category" bson:"category"`
	Content   string               `json:"content" bson:"content"`
	Likes     int                  `json:"likes" bson:"likes"`
	Author    primitive.ObjectID   `json:"author" bson:"author"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	Image     string               `json:"image" bson:"image"`
	Comments  []primitive.ObjectID `json:"comments" bson:"comments"`
}

// Article sort orders accepted by browse
const (
	SortByTime  = "time"
	SortByLikes = "likes"
)

// CreateArticleRequest defines the request body for creating a new article
type CreateArticleRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Category string `json:"category" validate:"required,max=50"`
	Content  string `json:"content"`
	Image    string `json:"image" validate:"omitempty,max=500"`
}

// BrowseArticleRequest defines the request body for browsing articles.
// Start and Limit are pointers so that an explicit 0 can be told apart from absence.
type BrowseArticleRequest struct {
	SortBy   string `json:"sort_by"`
	Start    *int   `json:"start"`
	Limit    *int   `json:"limit"`
	Category string `json:"category"`
}

// ArticleIDRequest is the body shared by detail, like, collect and delete endpoints
type ArticleIDRequest struct {
	ArticleID string `json:"article_id" validate:"required"`
}

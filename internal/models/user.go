package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account stored in MongoDB
type User struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username        string               `json:"username" bson:"username"`
	Password        string               `json:"-" bson:"password"` // bcrypt hash, never serialized
	Image           string               `json:"image" bson:"image"`
	LikedArticles   []primitive.ObjectID `json:"liked_articles" bson:"liked_articles"`
	SavedArticles   []primitive.ObjectID `json:"saved_articles" bson:"saved_articles"`
	Following       []primitive.ObjectID `json:"following" bson:"following"`
	WrittenComments []primitive.ObjectID `json:"written_comments" bson:"written_comments"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
}

// UserCompact is the author block embedded in article and comment views
type UserCompact struct {
	Username string `json:"username"`
	Image    string `json:"image"`
}

// ToCompact converts a user into its compact representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{Username: u.Username, Image: u.Image}
}

// HasLiked reports whether the article id is in the user's liked set
func (u *User) HasLiked(articleID primitive.ObjectID) bool {
	return containsID(u.LikedArticles, articleID)
}

// HasSaved reports whether the article id is in the user's saved set
func (u *User) HasSaved(articleID primitive.ObjectID) bool {
	return containsID(u.SavedArticles, articleID)
}

// IsFollowing reports whether the user follows the given user id
func (u *User) IsFollowing(userID primitive.ObjectID) bool {
	return containsID(u.Following, userID)
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// SignupRequest is the body of POST /sign_up
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
	CodeID   string `json:"_id" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// LoginRequest is the body of POST /log_in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	CodeID   string `json:"_id" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// SearchUserRequest is the body of POST /search_user
type SearchUserRequest struct {
	Username string `json:"username" validate:"required"`
}

// FollowRequest is the body of POST /follow_user and /unfollow_user
type FollowRequest struct {
	Username string `json:"username" validate:"required"`
}

package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind classifies a domain error for transport mapping
type Kind int

const (
	KindValidation Kind = iota + 1
	KindMissingToken
	KindAuth
	KindConflict
	KindOwnership
	KindNotFound
)

// Error is a domain error with a message safe to show to clients
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError reports a malformed or incomplete request
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

var (
	ErrMissingToken       = &Error{Kind: KindMissingToken, Message: "Missing token"}
	ErrInvalidToken       = &Error{Kind: KindAuth, Message: "Invalid token"}
	ErrSessionUserMissing = &Error{Kind: KindAuth, Message: "User not found"}
	ErrCodeInvalid        = &Error{Kind: KindAuth, Message: "Verification code is wrong"}
	ErrCredentialMismatch = &Error{Kind: KindAuth, Message: "username and password do not match"}
	ErrUserAlreadyExists  = &Error{Kind: KindConflict, Message: "user already exists"}
	ErrNotArticleAuthor   = &Error{Kind: KindOwnership, Message: "only author can delete this article"}
	ErrNotCommentAuthor   = &Error{Kind: KindOwnership, Message: "Unauthorized: You are not the author of this comment"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrArticleNotFound    = &Error{Kind: KindNotFound, Message: "Article not found"}
	ErrCommentNotFound    = &Error{Kind: KindNotFound, Message: "Comment not found"}
	ErrFileNotFound       = &Error{Kind: KindNotFound, Message: "File does not exist"}
)

// KindOf returns the Kind of err, or 0 when err is not a domain error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// parseID decodes a hex object id; malformed ids resolve to notFound
func parseID(hex string, notFound error) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return id, nil
}

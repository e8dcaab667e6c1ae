package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session binds an opaque bearer token to a username.
// Created at login, removed at logout; there is no expiry.
type Session struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Token     string             `json:"token" bson:"token"`
	Username  string             `json:"username" bson:"username"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// VerificationCode is a one-time 4-digit code gating signup and login.
// The collection carries a TTL index on created_at.
type VerificationCode struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Code      string             `json:"code" bson:"code"`
	CreatedAt time.Time          `json:"-" bson:"created_at"`
}

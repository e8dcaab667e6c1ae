package repositories

import (
	"context"
	"time"

	"github.com/bluenote/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionRepository defines the interface for login session operations
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// MongoSessionRepository implements SessionRepository for MongoDB
type MongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new MongoSessionRepository
func NewMongoSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{collection: db.Collection("login_users")}
}

// EnsureIndexes creates the unique token index
func (r *MongoSessionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoSessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = primitive.NewObjectID()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, session)
	return translate(err)
}

func (r *MongoSessionRepository) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	if err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&session); err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

// DeleteSession removes the session for token; a missing session is not an error
func (r *MongoSessionRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"token": token})
	return err
}

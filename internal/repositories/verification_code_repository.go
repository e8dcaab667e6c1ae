package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/bluenote/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VerificationCodeRepository defines the interface for one-time code operations
type VerificationCodeRepository interface {
	CreateCode(ctx context.Context, code *models.VerificationCode) error
	// ConsumeCode atomically deletes the record matching id and code if it was
	// created after issuedAfter, and reports whether such a record existed
	ConsumeCode(ctx context.Context, id primitive.ObjectID, code string, issuedAfter time.Time) (bool, error)
}

// MongoVerificationCodeRepository implements VerificationCodeRepository for MongoDB
type MongoVerificationCodeRepository struct {
	collection *mongo.Collection
	ttl        time.Duration
}

// NewMongoVerificationCodeRepository creates a new MongoVerificationCodeRepository.
// ttl is applied as a TTL index by EnsureIndexes.
func NewMongoVerificationCodeRepository(db *mongo.Database, ttl time.Duration) *MongoVerificationCodeRepository {
	return &MongoVerificationCodeRepository{collection: db.Collection("verification_codes"), ttl: ttl}
}

// EnsureIndexes creates the TTL index that expires codes ttl after creation
func (r *MongoVerificationCodeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(r.ttl / time.Second)),
	})
	return err
}

func (r *MongoVerificationCodeRepository) CreateCode(ctx context.Context, code *models.VerificationCode) error {
	code.ID = primitive.NewObjectID()
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, code)
	return err
}

func (r *MongoVerificationCodeRepository) ConsumeCode(ctx context.Context, id primitive.ObjectID, code string, issuedAfter time.Time) (bool, error) {
	filter := bson.M{
		"_id":        id,
		"code":       code,
		"created_at": bson.M{"$gt": issuedAfter},
	}
	err := r.collection.FindOneAndDelete(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

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

// UserSet names one of the id-set fields carried by a user document
type UserSet string

const (
	LikedArticles   UserSet = "liked_articles"
	SavedArticles   UserSet = "saved_articles"
	Following       UserSet = "following"
	WrittenComments UserSet = "written_comments"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	// AddToSet inserts id into the named set and reports whether the set changed
	AddToSet(ctx context.Context, userID primitive.ObjectID, set UserSet, id primitive.ObjectID) (bool, error)
	// PullFromSet removes id from the named set and reports whether the set changed
	PullFromSet(ctx context.Context, userID primitive.ObjectID, set UserSet, id primitive.ObjectID) (bool, error)
	// PullFromAllUsers removes id from the named set of every user
	PullFromAllUsers(ctx context.Context, set UserSet, id primitive.ObjectID) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique username index
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateUser inserts a user with empty relationship sets
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	// $addToSet and $pull fail on null fields, so sets are stored as empty arrays
	if user.LikedArticles == nil {
		user.LikedArticles = []primitive.ObjectID{}
	}
	if user.SavedArticles == nil {
		user.SavedArticles = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	if user.WrittenComments == nil {
		user.WrittenComments = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	return translate(err)
}

// GetUserByUsername retrieves a user by username
func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUsersByIDs retrieves every user whose id is in ids; missing ids are skipped
func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUserRepository) AddToSet(ctx context.Context, userID primitive.ObjectID, set UserSet, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$addToSet": bson.M{string(set): id}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount == 1, nil
}

func (r *MongoUserRepository) PullFromSet(ctx context.Context, userID primitive.ObjectID, set UserSet, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{string(set): id}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount == 1, nil
}

func (r *MongoUserRepository) PullFromAllUsers(ctx context.Context, set UserSet, id primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx, bson.M{string(set): id}, bson.M{"$pull": bson.M{string(set): id}})
	return err
}

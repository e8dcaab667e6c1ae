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

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	GetCommentsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error)
	GetCommentsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Comment, error)
	GetCommentsByArticle(ctx context.Context, articleID primitive.ObjectID) ([]models.Comment, error)
	AppendReply(ctx context.Context, commentID primitive.ObjectID, reply models.Reply) error
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
	DeleteCommentsByArticle(ctx context.Context, articleID primitive.ObjectID) error
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// EnsureIndexes creates the article and author lookup indexes
func (r *MongoCommentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "article", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	if comment.Replies == nil {
		comment.Replies = []models.Reply{}
	}
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID from MongoDB
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// GetCommentsByIDs retrieves every comment whose id is in ids; missing ids are skipped
func (r *MongoCommentRepository) GetCommentsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error) {
	if len(ids) == 0 {
		return []models.Comment{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

// GetCommentsByAuthor retrieves every comment written by a user, newest first
func (r *MongoCommentRepository) GetCommentsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Comment, error) {
	return r.find(ctx, bson.M{"author": authorID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// GetCommentsByArticle retrieves every comment attached to an article
func (r *MongoCommentRepository) GetCommentsByArticle(ctx context.Context, articleID primitive.ObjectID) ([]models.Comment, error) {
	return r.find(ctx, bson.M{"article": articleID}, options.Find())
}

func (r *MongoCommentRepository) find(ctx context.Context, filter interface{}, findOptions *options.FindOptions) ([]models.Comment, error) {
	comments := []models.Comment{}
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AppendReply pushes a reply onto the comment's embedded reply list
func (r *MongoCommentRepository) AppendReply(ctx context.Context, commentID primitive.ObjectID, reply models.Reply) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": commentID}, bson.M{"$push": bson.M{"replies": reply}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteComment deletes a comment by ID from MongoDB
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCommentsByArticle deletes every comment attached to an article
func (r *MongoCommentRepository) DeleteCommentsByArticle(ctx context.Context, articleID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"article": articleID})
	return err
}

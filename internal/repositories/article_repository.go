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

// BrowseQuery selects one page of articles
type BrowseQuery struct {
	SortBy   string // models.SortByTime or models.SortByLikes
	Start    int64
	Limit    int64
	Category string // empty matches every category
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	CreateArticle(ctx context.Context, article *models.Article) error
	GetArticleByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error)
	ArticleExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	BrowseArticles(ctx context.Context, query BrowseQuery) ([]models.Article, error)
	GetArticlesByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Article, error)
	GetArticlesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Article, error)
	DeleteArticle(ctx context.Context, id primitive.ObjectID) error
	IncrementLikes(ctx context.Context, id primitive.ObjectID) error
	DecrementLikes(ctx context.Context, id primitive.ObjectID) error
	AppendComment(ctx context.Context, articleID, commentID primitive.ObjectID) error
	RemoveComment(ctx context.Context, articleID, commentID primitive.ObjectID) error
}

// MongoArticleRepository implements ArticleRepository for MongoDB
type MongoArticleRepository struct {
	collection *mongo.Collection
}

// NewMongoArticleRepository creates a new MongoArticleRepository
func NewMongoArticleRepository(db *mongo.Database) *MongoArticleRepository {
	return &MongoArticleRepository{collection: db.Collection("articles")}
}

// EnsureIndexes creates the indexes backing browse and per-author listing
func (r *MongoArticleRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "likes", Value: -1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
	})
	return err
}

// CreateArticle creates a new article in MongoDB
func (r *MongoArticleRepository) CreateArticle(ctx context.Context, article *models.Article) error {
	article.ID = primitive.NewObjectID()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}
	if article.Comments == nil {
		article.Comments = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, article)
	return err
}

// GetArticleByID retrieves an article by ID from MongoDB
func (r *MongoArticleRepository) GetArticleByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error) {
	var article models.Article
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&article); err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

// ArticleExists reports whether an article with id is stored
func (r *MongoArticleRepository) ArticleExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BrowseArticles returns one page ordered descending by time or likes
func (r *MongoArticleRepository) BrowseArticles(ctx context.Context, query BrowseQuery) ([]models.Article, error) {
	sort := bson.D{{Key: "created_at", Value: -1}}
	if query.SortBy == models.SortByLikes {
		sort = bson.D{{Key: "likes", Value: -1}, {Key: "created_at", Value: -1}}
	}

	filter := bson.M{}
	if query.Category != "" {
		filter["category"] = query.Category
	}

	findOptions := options.Find().
		SetSort(sort).
		SetSkip(query.Start).
		SetLimit(query.Limit).
		SetProjection(bson.M{"comments": 0, "content": 0})
	return r.find(ctx, filter, findOptions)
}

// GetArticlesByAuthor retrieves an author's articles, newest first
func (r *MongoArticleRepository) GetArticlesByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Article, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"author": authorID}, findOptions)
}

// GetArticlesByIDs retrieves every article whose id is in ids; missing ids are skipped
func (r *MongoArticleRepository) GetArticlesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Article, error) {
	if len(ids) == 0 {
		return []models.Article{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *MongoArticleRepository) find(ctx context.Context, filter interface{}, findOptions *options.FindOptions) ([]models.Article, error) {
	articles := []models.Article{}
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// DeleteArticle deletes an article by ID from MongoDB
func (r *MongoArticleRepository) DeleteArticle(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementLikes increments the likes counter of an article
func (r *MongoArticleRepository) IncrementLikes(ctx context.Context, id primitive.ObjectID) error {
	return r.update(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}})
}

// DecrementLikes decrements the likes counter of an article, never below zero
func (r *MongoArticleRepository) DecrementLikes(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "likes": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"likes": -1}},
	)
	return err
}

// AppendComment pushes a comment id onto the article's comment list
func (r *MongoArticleRepository) AppendComment(ctx context.Context, articleID, commentID primitive.ObjectID) error {
	return r.update(ctx, bson.M{"_id": articleID}, bson.M{"$push": bson.M{"comments": commentID}})
}

// RemoveComment pulls a comment id from the article's comment list
func (r *MongoArticleRepository) RemoveComment(ctx context.Context, articleID, commentID primitive.ObjectID) error {
	return r.update(ctx, bson.M{"_id": articleID}, bson.M{"$pull": bson.M{"comments": commentID}})
}

func (r *MongoArticleRepository) update(ctx context.Context, filter, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

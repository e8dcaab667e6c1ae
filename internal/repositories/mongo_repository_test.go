package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bluenote/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockMongo(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

// updateResult answers an update command with the given matched and modified counts
func updateResult(matched, modified int32) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: matched}, bson.E{Key: "nModified", Value: modified})
}

// command returns the next command the client sent
func command(mt *mtest.T) bson.Raw {
	mt.Helper()
	evt := mt.GetStartedEvent()
	if evt == nil {
		mt.Fatal("no command was sent")
	}
	return evt.Command
}

// updateStatement returns the filter and update document of the next update command
func updateStatement(mt *mtest.T) (filter, update bson.Raw) {
	mt.Helper()
	cmd := command(mt)
	stmt := cmd.Lookup("updates").Array().Index(0).Value().Document()
	return stmt.Lookup("q").Document(), stmt.Lookup("u").Document()
}

func TestMongoArticleRepository_Likes(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()
	id := primitive.NewObjectID()

	mt.Run("increment", func(mt *mtest.T) {
		repo := NewMongoArticleRepository(mt.DB)
		mt.AddMockResponses(updateResult(1, 1))

		if err := repo.IncrementLikes(ctx, id); err != nil {
			mt.Fatalf("IncrementLikes: %v", err)
		}
		filter, update := updateStatement(mt)
		if filter.Lookup("_id").ObjectID() != id {
			mt.Errorf("unexpected filter %v", filter)
		}
		if n := update.Lookup("$inc", "likes").AsInt64(); n != 1 {
			mt.Errorf("expected $inc likes 1, got %d", n)
		}
	})

	mt.Run("increment missing article", func(mt *mtest.T) {
		repo := NewMongoArticleRepository(mt.DB)
		mt.AddMockResponses(updateResult(0, 0))

		if err := repo.IncrementLikes(ctx, id); !errors.Is(err, ErrNotFound) {
			mt.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("decrement floors at zero", func(mt *mtest.T) {
		repo := NewMongoArticleRepository(mt.DB)
		mt.AddMockResponses(updateResult(0, 0))

		// an article already at zero matches nothing and is left alone
		if err := repo.DecrementLikes(ctx, id); err != nil {
			mt.Fatalf("DecrementLikes: %v", err)
		}
		filter, update := updateStatement(mt)
		if filter.Lookup("_id").ObjectID() != id {
			mt.Errorf("unexpected filter %v", filter)
		}
		floor, err := filter.LookupErr("likes", "$gt")
		if err != nil || floor.AsInt64() != 0 {
			mt.Errorf("expected likes > 0 in filter, got %v", filter)
		}
		if n := update.Lookup("$inc", "likes").AsInt64(); n != -1 {
			mt.Errorf("expected $inc likes -1, got %d", n)
		}
	})
}

func TestMongoArticleRepository_CommentList(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()
	articleID, commentID := primitive.NewObjectID(), primitive.NewObjectID()

	mt.Run("append and remove", func(mt *mtest.T) {
		repo := NewMongoArticleRepository(mt.DB)
		mt.AddMockResponses(updateResult(1, 1), updateResult(1, 1))

		if err := repo.AppendComment(ctx, articleID, commentID); err != nil {
			mt.Fatalf("AppendComment: %v", err)
		}
		_, update := updateStatement(mt)
		if update.Lookup("$push", "comments").ObjectID() != commentID {
			mt.Errorf("unexpected push %v", update)
		}

		if err := repo.RemoveComment(ctx, articleID, commentID); err != nil {
			mt.Fatalf("RemoveComment: %v", err)
		}
		_, update = updateStatement(mt)
		if update.Lookup("$pull", "comments").ObjectID() != commentID {
			mt.Errorf("unexpected pull %v", update)
		}
	})

	mt.Run("delete missing article", func(mt *mtest.T) {
		repo := NewMongoArticleRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))

		if err := repo.DeleteArticle(ctx, articleID); !errors.Is(err, ErrNotFound) {
			mt.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMongoArticleRepository_Browse(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("likes order with category", func(mt *mtest.T) {
		repo := NewMongoArticleRepository(mt.DB)
		ns := mt.DB.Name() + ".articles"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "a"}, {Key: "likes", Value: int32(3)}},
		))

		articles, err := repo.BrowseArticles(context.Background(), BrowseQuery{SortBy: models.SortByLikes, Start: 10, Limit: 5, Category: "travel"})
		if err != nil {
			mt.Fatalf("BrowseArticles: %v", err)
		}
		if len(articles) != 1 || articles[0].Likes != 3 {
			mt.Errorf("unexpected articles %+v", articles)
		}

		cmd := command(mt)
		if c := cmd.Lookup("filter", "category").StringValue(); c != "travel" {
			mt.Errorf("expected category filter, got %q", c)
		}
		sort := cmd.Lookup("sort")
		keys, _ := sort.Document().Elements()
		if len(keys) != 2 || keys[0].Key() != "likes" || keys[1].Key() != "created_at" {
			mt.Errorf("unexpected sort %v", sort)
		}
		if cmd.Lookup("skip").AsInt64() != 10 || cmd.Lookup("limit").AsInt64() != 5 {
			mt.Errorf("unexpected paging in %v", cmd)
		}
		if cmd.Lookup("projection", "content").AsInt64() != 0 {
			mt.Errorf("content should be projected out: %v", cmd.Lookup("projection"))
		}
	})
}

func TestMongoUserRepository_Sets(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()
	userID, articleID := primitive.NewObjectID(), primitive.NewObjectID()

	mt.Run("add reports change", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(updateResult(1, 1), updateResult(1, 0), updateResult(0, 0))

		changed, err := repo.AddToSet(ctx, userID, LikedArticles, articleID)
		if err != nil || !changed {
			mt.Fatalf("first add: changed=%v err=%v", changed, err)
		}
		filter, update := updateStatement(mt)
		if filter.Lookup("_id").ObjectID() != userID {
			mt.Errorf("unexpected filter %v", filter)
		}
		if update.Lookup("$addToSet", "liked_articles").ObjectID() != articleID {
			mt.Errorf("unexpected update %v", update)
		}

		changed, err = repo.AddToSet(ctx, userID, LikedArticles, articleID)
		if err != nil || changed {
			mt.Errorf("repeated add: changed=%v err=%v", changed, err)
		}

		if _, err := repo.AddToSet(ctx, userID, LikedArticles, articleID); !errors.Is(err, ErrNotFound) {
			mt.Errorf("expected ErrNotFound for unknown user, got %v", err)
		}
	})

	mt.Run("pull reports change", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(updateResult(1, 1), updateResult(1, 0))

		changed, err := repo.PullFromSet(ctx, userID, SavedArticles, articleID)
		if err != nil || !changed {
			mt.Fatalf("first pull: changed=%v err=%v", changed, err)
		}
		_, update := updateStatement(mt)
		if update.Lookup("$pull", "saved_articles").ObjectID() != articleID {
			mt.Errorf("unexpected update %v", update)
		}

		changed, err = repo.PullFromSet(ctx, userID, SavedArticles, articleID)
		if err != nil || changed {
			mt.Errorf("repeated pull: changed=%v err=%v", changed, err)
		}
	})

	mt.Run("pull from every user", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(updateResult(3, 3))

		if err := repo.PullFromAllUsers(ctx, LikedArticles, articleID); err != nil {
			mt.Fatalf("PullFromAllUsers: %v", err)
		}
		cmd := command(mt)
		stmt := cmd.Lookup("updates").Array().Index(0).Value().Document()
		if !stmt.Lookup("multi").Boolean() {
			mt.Error("expected a multi update")
		}
		if stmt.Lookup("q", "liked_articles").ObjectID() != articleID {
			mt.Errorf("unexpected filter %v", stmt.Lookup("q"))
		}
	})

	mt.Run("duplicate username", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))

		err := repo.CreateUser(ctx, &models.User{Username: "alice", Password: "hash"})
		if !errors.Is(err, ErrDuplicateKey) {
			mt.Fatalf("expected ErrDuplicateKey, got %v", err)
		}
		doc := command(mt).Lookup("documents").Array().Index(0).Value().Document()
		for _, set := range []UserSet{LikedArticles, SavedArticles, Following, WrittenComments} {
			if _, ok := doc.Lookup(string(set)).ArrayOK(); !ok {
				mt.Errorf("%s should be stored as an empty array", set)
			}
		}
	})

	mt.Run("unknown username", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".users", mtest.FirstBatch))

		if _, err := repo.GetUserByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
			mt.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMongoVerificationCodeRepository_ConsumeCode(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()
	id := primitive.NewObjectID()
	issuedAfter := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("matching code is deleted", func(mt *mtest.T) {
		repo := NewMongoVerificationCodeRepository(mt.DB, 3*time.Minute)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "code", Value: "4821"},
		}}))

		ok, err := repo.ConsumeCode(ctx, id, "4821", issuedAfter)
		if err != nil || !ok {
			mt.Fatalf("ConsumeCode: ok=%v err=%v", ok, err)
		}

		cmd := command(mt)
		if !cmd.Lookup("remove").Boolean() {
			mt.Error("expected findAndModify with remove")
		}
		query := cmd.Lookup("query").Document()
		if query.Lookup("_id").ObjectID() != id || query.Lookup("code").StringValue() != "4821" {
			mt.Errorf("unexpected query %v", query)
		}
		if got := query.Lookup("created_at", "$gt").Time(); !got.Equal(issuedAfter) {
			mt.Errorf("expected created_at > %v, got %v", issuedAfter, got)
		}
	})

	mt.Run("no match", func(mt *mtest.T) {
		repo := NewMongoVerificationCodeRepository(mt.DB, 3*time.Minute)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		ok, err := repo.ConsumeCode(ctx, id, "0000", issuedAfter)
		if err != nil || ok {
			mt.Errorf("expected no match, got ok=%v err=%v", ok, err)
		}
	})
}

func TestMongoCommentRepository_AppendReply(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()
	commentID := primitive.NewObjectID()
	reply := models.Reply{ID: primitive.NewObjectID(), Author: primitive.NewObjectID(), Content: "agreed"}

	mt.Run("pushes embedded reply", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB)
		mt.AddMockResponses(updateResult(1, 1))

		if err := repo.AppendReply(ctx, commentID, reply); err != nil {
			mt.Fatalf("AppendReply: %v", err)
		}
		filter, update := updateStatement(mt)
		if filter.Lookup("_id").ObjectID() != commentID {
			mt.Errorf("unexpected filter %v", filter)
		}
		pushed := update.Lookup("$push", "replies").Document()
		if pushed.Lookup("_id").ObjectID() != reply.ID || pushed.Lookup("content").StringValue() != "agreed" {
			mt.Errorf("unexpected reply %v", pushed)
		}
	})

	mt.Run("missing comment", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB)
		mt.AddMockResponses(updateResult(0, 0))

		if err := repo.AppendReply(ctx, commentID, reply); !errors.Is(err, ErrNotFound) {
			mt.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("delete missing comment", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))

		if err := repo.DeleteComment(ctx, commentID); !errors.Is(err, ErrNotFound) {
			mt.Errorf("expected ErrNotFound, got %v", err)
		}
		stmt := command(mt).Lookup("deletes").Array().Index(0).Value().Document()
		if stmt.Lookup("q", "_id").ObjectID() != commentID {
			mt.Errorf("unexpected delete %v", stmt)
		}
	})
}

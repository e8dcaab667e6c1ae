package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bluenote/backend/internal/models"
)

func TestSearchUser_Profile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	id := env.article(t, bob, "bob's post", "c")

	if _, err := env.svc.Comments.AddComment(ctx, alice, &models.CreateCommentRequest{ArticleID: id, Content: "nice"}); err != nil {
		t.Fatal(err)
	}
	if err := env.svc.Articles.Like(ctx, alice, id); err != nil {
		t.Fatal(err)
	}
	if err := env.svc.Articles.Collect(ctx, alice, id); err != nil {
		t.Fatal(err)
	}
	if err := env.svc.Users.Follow(ctx, alice, "bob"); err != nil {
		t.Fatal(err)
	}

	profile, err := env.svc.Users.SearchUser(ctx, "alice")
	if err != nil {
		t.Fatalf("SearchUser failed: %v", err)
	}
	if profile.Username != "alice" {
		t.Errorf("unexpected username %s", profile.Username)
	}
	if len(profile.WrittenComments) != 1 || profile.WrittenComments[0].ArticleID != id || profile.WrittenComments[0].Content != "nice" {
		t.Errorf("written comments = %+v", profile.WrittenComments)
	}
	if len(profile.LikedArticles) != 1 || profile.LikedArticles[0].Title != "bob's post" {
		t.Errorf("liked articles = %+v", profile.LikedArticles)
	}
	if len(profile.SavedArticles) != 1 {
		t.Errorf("saved articles = %+v", profile.SavedArticles)
	}
	if len(profile.Following) != 1 || profile.Following[0].Username != bob.Username {
		t.Errorf("following = %+v", profile.Following)
	}
}

func TestSearchUser_NotFound(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.svc.Users.SearchUser(context.Background(), "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFollowUnfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	for i := 0; i < 2; i++ {
		if err := env.svc.Users.Follow(ctx, alice, "bob"); err != nil {
			t.Fatalf("Follow failed: %v", err)
		}
	}
	if got := env.reload(t, "alice").Following; len(got) != 1 || got[0] != bob.ID {
		t.Errorf("following = %v", got)
	}

	if err := env.svc.Users.Unfollow(ctx, alice, "bob"); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	if env.reload(t, "alice").IsFollowing(bob.ID) {
		t.Error("still following after unfollow")
	}

	if err := env.svc.Users.Follow(ctx, alice, "alice"); KindOf(err) != KindValidation {
		t.Errorf("expected validation error on self-follow, got %v", err)
	}
	if err := env.svc.Users.Follow(ctx, alice, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

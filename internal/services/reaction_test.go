package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"postlike/internal/db/dbtest"
	"postlike/internal/models"
	"postlike/internal/repository"

	"gorm.io/gorm"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// seed creates n users and one post owned by the first of them.
func seed(t *testing.T, repo *repository.Repository, n int) ([]Identity, *models.Post) {
	t.Helper()
	ctx := context.Background()

	ids := make([]Identity, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Name:     "user",
			Email:    "user" + string(rune('a'+i)) + "@example.com",
			Password: "x",
		}
		if err := repo.CreateUser(ctx, &user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		ids = append(ids, Identity{UserID: user.ID})
	}

	post := models.Post{UserID: ids[0].UserID, Title: "first", Content: "hello"}
	if err := repo.CreatePost(ctx, &post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	return ids, &post
}

// assertLedger checks the post counters against its association rows.
func assertLedger(t *testing.T, repo *repository.Repository, postID uint, liked, unliked int) {
	t.Helper()
	ctx := context.Background()

	post, err := repo.FindPost(ctx, postID)
	if err != nil {
		t.Fatalf("FindPost failed: %v", err)
	}
	if post.Liked != liked || post.Unliked != unliked {
		t.Errorf("Expected counters %d/%d, got %d/%d", liked, unliked, post.Liked, post.Unliked)
	}

	likes, err := repo.CountPostReactions(ctx, postID, models.ReactionLike)
	if err != nil {
		t.Fatal(err)
	}
	unlikes, err := repo.CountPostReactions(ctx, postID, models.ReactionUnlike)
	if err != nil {
		t.Fatal(err)
	}
	if int(likes) != post.Liked || int(unlikes) != post.Unliked {
		t.Errorf("Counters %d/%d disagree with ledger %d/%d", post.Liked, post.Unliked, likes, unlikes)
	}
}

func TestReactionApplyLikeIsIdempotent(t *testing.T) {
	repo := repository.New(dbtest.Open(t))
	ids, post := seed(t, repo, 1)
	svc := NewReactionService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := svc.Apply(ctx, ids[0], post.ID, models.ReactionLike)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if got.Liked != 1 || got.Unliked != 0 {
			t.Errorf("Attempt %d: expected 1/0, got %d/%d", i, got.Liked, got.Unliked)
		}
	}
	assertLedger(t, repo, post.ID, 1, 0)
}

func TestReactionApplyFlipsInPlace(t *testing.T) {
	repo := repository.New(dbtest.Open(t))
	ids, post := seed(t, repo, 1)
	svc := NewReactionService(repo)
	ctx := context.Background()

	steps := []struct {
		reaction       models.Reaction
		liked, unliked int
	}{
		{models.ReactionLike, 1, 0},
		{models.ReactionUnlike, 0, 1},
		{models.ReactionUnlike, 0, 1},
		{models.ReactionLike, 1, 0},
	}
	for _, step := range steps {
		got, err := svc.Apply(ctx, ids[0], post.ID, step.reaction)
		if err != nil {
			t.Fatalf("Apply(%s) failed: %v", step.reaction, err)
		}
		if got.Liked != step.liked || got.Unliked != step.unliked {
			t.Errorf("After %s: expected %d/%d, got %d/%d", step.reaction, step.liked, step.unliked, got.Liked, got.Unliked)
		}
		assertLedger(t, repo, post.ID, step.liked, step.unliked)
	}

	assoc, err := repo.FindAssociation(ctx, post.ID, ids[0].UserID)
	if err != nil || assoc == nil {
		t.Fatalf("Expected one association row, got %v (err %v)", assoc, err)
	}
	if assoc.WhichOne != models.ReactionLike {
		t.Errorf("Expected final reaction like, got %s", assoc.WhichOne)
	}
}

func TestReactionApplyMultipleUsers(t *testing.T) {
	repo := repository.New(dbtest.Open(t))
	ids, post := seed(t, repo, 3)
	svc := NewReactionService(repo)
	ctx := context.Background()

	for _, id := range ids[:2] {
		if _, err := svc.Apply(ctx, id, post.ID, models.ReactionLike); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.Apply(ctx, ids[2], post.ID, models.ReactionUnlike); err != nil {
		t.Fatal(err)
	}
	assertLedger(t, repo, post.ID, 2, 1)

	if _, err := svc.Apply(ctx, ids[0], post.ID, models.ReactionUnlike); err != nil {
		t.Fatal(err)
	}
	assertLedger(t, repo, post.ID, 1, 2)
}

func TestReactionApplyEmptyIsNoop(t *testing.T) {
	repo := repository.New(dbtest.Open(t))
	ids, post := seed(t, repo, 1)
	svc := NewReactionService(repo)
	ctx := context.Background()

	got, err := svc.Apply(ctx, ids[0], post.ID, "")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got.ID != post.ID || got.Liked != 0 || got.Unliked != 0 {
		t.Errorf("Expected untouched post, got %+v", got)
	}
	assoc, err := repo.FindAssociation(ctx, post.ID, ids[0].UserID)
	if err != nil {
		t.Fatal(err)
	}
	if assoc != nil {
		t.Errorf("Expected no association, got %+v", assoc)
	}
}

func TestReactionApplyUnknownPost(t *testing.T) {
	repo := repository.New(dbtest.Open(t))
	ids, _ := seed(t, repo, 1)
	svc := NewReactionService(repo)

	_, err := svc.Apply(context.Background(), ids[0], 9999, models.ReactionLike)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestReactionApplyStampsDate(t *testing.T) {
	repo := repository.New(dbtest.Open(t))
	ids, post := seed(t, repo, 1)
	at := time.Date(2021, 7, 2, 10, 30, 15, 999, time.UTC)
	svc := NewReactionService(repo).WithClock(fixedClock(at))
	ctx := context.Background()

	if _, err := svc.Apply(ctx, ids[0], post.ID, models.ReactionLike); err != nil {
		t.Fatal(err)
	}
	assoc, err := repo.FindAssociation(ctx, post.ID, ids[0].UserID)
	if err != nil || assoc == nil {
		t.Fatalf("FindAssociation: %v %v", assoc, err)
	}
	if !assoc.Date.Equal(at.Truncate(time.Second)) {
		t.Errorf("Expected date %s, got %s", at.Truncate(time.Second), assoc.Date)
	}
}

func TestReactionInputDesired(t *testing.T) {
	tests := []struct {
		body string
		want models.Reaction
	}{
		{`{"liked": "True"}`, models.ReactionLike},
		{`{"unliked": "True"}`, models.ReactionUnlike},
		{`{"liked": true, "unliked": true}`, models.ReactionLike},
		{`{"liked": "False", "unliked": "1"}`, models.ReactionUnlike},
		{`{"liked": "no"}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var in ReactionInput
		if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", tt.body, err)
		}
		if got := in.Desired(); got != tt.want {
			t.Errorf("Desired(%s) = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestReactionApplyConcurrentLikes(t *testing.T) {
	repo := repository.New(dbtest.Open(t))
	ids, post := seed(t, repo, 8)
	svc := NewReactionService(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, len(ids))
	for _, id := range ids {
		wg.Add(1)
		go func(id Identity) {
			defer wg.Done()
			if _, err := svc.Apply(ctx, id, post.ID, models.ReactionLike); err != nil {
				errs <- err
			}
		}(id)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent Apply failed: %v", err)
	}
	assertLedger(t, repo, post.ID, len(ids), 0)
}

func TestReactionApplyRollsBackOnCounterFailure(t *testing.T) {
	conn := dbtest.Open(t)
	repo := repository.New(conn)
	ids, post := seed(t, repo, 1)
	ctx := context.Background()

	errCounter := errors.New("counter update failed")
	err := conn.Callback().Update().Before("gorm:update").Register("test:fail_post_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "posts" {
			_ = tx.AddError(errCounter)
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewReactionService(repo).Apply(ctx, ids[0], post.ID, models.ReactionLike)
	if !errors.Is(err, errCounter) {
		t.Fatalf("Expected counter failure, got %v", err)
	}

	assoc, err := repo.FindAssociation(ctx, post.ID, ids[0].UserID)
	if err != nil {
		t.Fatal(err)
	}
	if assoc != nil {
		t.Errorf("Expected association insert to roll back, found %+v", assoc)
	}
	assertLedger(t, repo, post.ID, 0, 0)
}

func TestReactionApplyClampsDriftedCounter(t *testing.T) {
	conn := dbtest.Open(t)
	repo := repository.New(conn)
	ids, post := seed(t, repo, 1)
	svc := NewReactionService(repo)
	ctx := context.Background()

	if _, err := svc.Apply(ctx, ids[0], post.ID, models.ReactionLike); err != nil {
		t.Fatal(err)
	}
	if err := conn.Model(&models.Post{}).Where("id = ?", post.ID).UpdateColumn("liked", 0).Error; err != nil {
		t.Fatal(err)
	}

	got, err := svc.Apply(ctx, ids[0], post.ID, models.ReactionUnlike)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got.Liked != 0 || got.Unliked != 1 {
		t.Errorf("Expected clamped counters 0/1, got %d/%d", got.Liked, got.Unliked)
	}
	assertLedger(t, repo, post.ID, 0, 1)
}

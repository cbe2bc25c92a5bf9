package service

import (
	"errors"
	"testing"
	"time"

	"quill/internal/models"
)

func TestCreatePostSetsOwnerAndTimestamp(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := registerUser(t, db, "alice")

	post, err := svc.Create(principalOf(alice), PostInput{Title: "Hello World wide", Content: "first post content"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.AuthorID != alice.ID {
		t.Errorf("AuthorID = %d, want %d", post.AuthorID, alice.ID)
	}
	if post.Author == nil || post.Author.Username != "alice" {
		t.Error("expected author to be loaded")
	}
	if post.PublicationDate.IsZero() {
		t.Error("publication date not set")
	}
}

func TestUpdatePostOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")

	post, err := svc.Create(principalOf(alice), PostInput{Title: "Original title", Content: "original content"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A non-owner without the admin role is rejected.
	if _, err := svc.Update(principalOf(bob), post.ID, PostInput{Title: "Hijacked!", Content: "nope"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner update err = %v, want ErrForbidden", err)
	}

	// The owner succeeds.
	updated, err := svc.Update(principalOf(alice), post.ID, PostInput{Title: "Edited title", Content: "edited content"})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != "Edited title" {
		t.Errorf("title = %q, want Edited title", updated.Title)
	}

	// An admin succeeds too.
	if _, err := svc.Update(adminPrincipal(), post.ID, PostInput{Title: "Admin edit", Content: "admin content"}); err != nil {
		t.Errorf("admin update failed: %v", err)
	}
}

func TestUpdatePostKeepsPublicationDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := registerUser(t, db, "alice")

	post, err := svc.Create(principalOf(alice), PostInput{Title: "Dated post", Content: "content"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	original := post.PublicationDate

	updated, err := svc.Update(principalOf(alice), post.ID, PostInput{Title: "Dated post v2", Content: "content v2"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.PublicationDate.Equal(original) {
		t.Errorf("publication date changed: %v -> %v", original, updated.PublicationDate)
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := registerUser(t, db, "alice")

	if _, err := svc.Update(principalOf(alice), 404, PostInput{Title: "Ghost post", Content: "boo"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(principalOf(alice), 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete err = %v, want ErrNotFound", err)
	}
}

func TestDeletePostCascadesComments(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db)
	comments := NewCommentService(db)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")

	post, err := posts.Create(principalOf(alice), PostInput{Title: "Commented post", Content: "content"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := comments.Create(principalOf(bob), post.ID, "a comment of note"); err != nil {
			t.Fatalf("comment create failed: %v", err)
		}
	}

	// Bob may not delete Alice's post.
	if err := posts.Delete(principalOf(bob), post.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner delete err = %v, want ErrForbidden", err)
	}

	if err := posts.Delete(principalOf(alice), post.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	var orphans int64
	if err := db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&orphans).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if orphans != 0 {
		t.Errorf("found %d orphan comments after post deletion", orphans)
	}

	if _, err := posts.Get(post.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
}

func TestSummariesOrderAndCounts(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db)
	comments := NewCommentService(db)
	alice := registerUser(t, db, "alice")

	older, err := posts.Create(principalOf(alice), PostInput{Title: "Older post", Content: "content"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	newer, err := posts.Create(principalOf(alice), PostInput{Title: "Newer post", Content: "content"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Spread the timestamps so ordering is unambiguous.
	base := time.Now()
	if err := db.Model(&models.Post{}).Where("id = ?", older.ID).Update("publication_date", base.Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate failed: %v", err)
	}
	if err := db.Model(&models.Post{}).Where("id = ?", newer.ID).Update("publication_date", base).Error; err != nil {
		t.Fatalf("backdate failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := comments.Create(principalOf(alice), older.ID, "comment content"); err != nil {
			t.Fatalf("comment create failed: %v", err)
		}
	}

	summaries, err := posts.Summaries()
	if err != nil {
		t.Fatalf("Summaries failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("len(summaries) = %d, want 2", len(summaries))
	}
	if summaries[0].ID != newer.ID {
		t.Errorf("first summary is post %d, want newest %d", summaries[0].ID, newer.ID)
	}
	if summaries[0].CommentCount != 0 {
		t.Errorf("newer post comment count = %d, want 0", summaries[0].CommentCount)
	}
	if summaries[1].CommentCount != 2 {
		t.Errorf("older post comment count = %d, want 2", summaries[1].CommentCount)
	}
	if summaries[1].Author != "alice" {
		t.Errorf("author = %q, want alice", summaries[1].Author)
	}
}

func TestGetPostLoadsCommentsInOrder(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db)
	comments := NewCommentService(db)
	alice := registerUser(t, db, "alice")

	post, err := posts.Create(principalOf(alice), PostInput{Title: "Discussion", Content: "content"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	first, err := comments.Create(principalOf(alice), post.ID, "first comment")
	if err != nil {
		t.Fatalf("comment create failed: %v", err)
	}
	if err := db.Model(&models.Comment{}).Where("id = ?", first.ID).
		Update("publication_date", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("backdate failed: %v", err)
	}
	if _, err := comments.Create(principalOf(alice), post.ID, "second comment"); err != nil {
		t.Fatalf("comment create failed: %v", err)
	}

	got, err := posts.Get(post.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Comments) != 2 {
		t.Fatalf("len(comments) = %d, want 2", len(got.Comments))
	}
	if got.Comments[0].ID != first.ID {
		t.Error("comments not ordered oldest first")
	}
	if got.Comments[0].Author == nil {
		t.Error("comment author not loaded")
	}
}

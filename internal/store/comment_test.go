package store

import (
	"testing"

	"weblog/internal/models"
)

func TestCommentStoreCreateAndList(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	user := testUser(t, db)
	article := testArticle(t, db, models.ArticleStatusPublished)

	first, err := s.Create(article.ID, user.ID, nil, "Great read!")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !first.IsActive {
		t.Error("new comments should default to active")
	}
	if first.ParentID != nil {
		t.Error("expected top-level comment")
	}

	reply, err := s.Create(article.ID, user.ID, &first.ID, "Agreed.")
	if err != nil {
		t.Fatalf("Create reply: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != first.ID {
		t.Error("reply should carry its parent id")
	}

	// Listing is flat, newest first, with author names.
	list, err := s.ListActiveByArticle(article.ID)
	if err != nil {
		t.Fatalf("ListActiveByArticle: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list: got %d comments, want 2", len(list))
	}
	if list[0].ID != reply.ID {
		t.Error("newest comment should come first")
	}
	if list[0].AuthorName != user.DisplayName {
		t.Errorf("author name: got %q, want %q", list[0].AuthorName, user.DisplayName)
	}
}

func TestCommentStoreModerationGate(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	user := testUser(t, db)
	article := testArticle(t, db, models.ArticleStatusPublished)

	c, err := s.Create(article.ID, user.ID, nil, "soon hidden")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.SetActive(c.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	list, err := s.ListActiveByArticle(article.ID)
	if err != nil {
		t.Fatalf("ListActiveByArticle: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("deactivated comment leaked into public listing (%d rows)", len(list))
	}

	// The row survives; moderation never deletes.
	found, err := s.FindByID(c.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("deactivated comment should still exist")
	}
	if found.IsActive {
		t.Error("comment should be inactive")
	}
}

func TestCommentStoreCascadeOnParentDelete(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	user := testUser(t, db)
	article := testArticle(t, db, models.ArticleStatusPublished)

	parent, err := s.Create(article.ID, user.ID, nil, "parent")
	if err != nil {
		t.Fatalf("Create parent: %v", err)
	}
	reply, err := s.Create(article.ID, user.ID, &parent.ID, "child")
	if err != nil {
		t.Fatalf("Create reply: %v", err)
	}

	// Hard-delete the parent row (admin SQL, not moderation): the
	// subtree must cascade.
	if _, err := db.Exec("DELETE FROM comments WHERE id = $1", parent.ID); err != nil {
		t.Fatalf("delete parent: %v", err)
	}

	found, err := s.FindByID(reply.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("reply should cascade away with its parent")
	}
}

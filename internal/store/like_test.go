package store

import (
	"sync"
	"testing"

	"weblog/internal/models"
)

func TestLikeStoreTogglePair(t *testing.T) {
	db := testDB(t)
	s := NewLikeStore(db)
	user := testUser(t, db)
	article := testArticle(t, db, models.ArticleStatusPublished)

	// First toggle creates.
	liked, err := s.Toggle(user.ID, article.ID)
	if err != nil {
		t.Fatalf("first Toggle: %v", err)
	}
	if !liked {
		t.Error("first toggle should report liked = true")
	}
	if exists, _ := s.Exists(user.ID, article.ID); !exists {
		t.Error("like row should exist after first toggle")
	}
	if count, _ := s.CountByArticle(article.ID); count != 1 {
		t.Errorf("count after first toggle: got %d, want 1", count)
	}

	// Second toggle deletes; the pair is idempotent.
	liked, err = s.Toggle(user.ID, article.ID)
	if err != nil {
		t.Fatalf("second Toggle: %v", err)
	}
	if liked {
		t.Error("second toggle should report liked = false")
	}
	if exists, _ := s.Exists(user.ID, article.ID); exists {
		t.Error("like row should be gone after second toggle")
	}
	if count, _ := s.CountByArticle(article.ID); count != 0 {
		t.Errorf("count after second toggle: got %d, want 0", count)
	}
}

func TestLikeStoreToggleConcurrent(t *testing.T) {
	db := testDB(t)
	s := NewLikeStore(db)
	user := testUser(t, db)
	article := testArticle(t, db, models.ArticleStatusPublished)

	// Hammer the same (user, article) pair from many goroutines. Whatever
	// interleaving occurs, the unique constraint must keep the set at
	// zero or one row, never two.
	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Toggle(user.ID, article.ID); err != nil {
				t.Errorf("concurrent Toggle: %v", err)
			}
		}()
	}
	wg.Wait()

	count, err := s.CountByArticle(article.ID)
	if err != nil {
		t.Fatalf("CountByArticle: %v", err)
	}
	if count > 1 {
		t.Errorf("like set holds %d rows for one (user, article) pair, want at most 1", count)
	}
}

func TestLikeStoreCascadeOnArticleDelete(t *testing.T) {
	db := testDB(t)
	likes := NewLikeStore(db)
	articles := NewArticleStore(db)
	user := testUser(t, db)
	article := testArticle(t, db, models.ArticleStatusPublished)

	if _, err := likes.Toggle(user.ID, article.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if err := articles.Delete(article.ID); err != nil {
		t.Fatalf("delete article: %v", err)
	}

	if exists, _ := likes.Exists(user.ID, article.ID); exists {
		t.Error("likes should cascade away with their article")
	}
}

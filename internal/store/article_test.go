package store

import (
	"testing"

	"github.com/google/uuid"

	"weblog/internal/models"
)

func TestArticleStoreCreateGeneratesSlug(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	author := testUser(t, db)

	suffix := uuid.NewString()[:8]
	title := "Slugless Draft " + suffix
	t.Cleanup(func() { cleanArticles(t, db, "slugless-draft-"+suffix) })

	created, err := s.Create(&models.Article{
		Title:    title,
		Body:     "body",
		Status:   models.ArticleStatusDraft,
		AuthorID: author.ID,
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.Slug != "slugless-draft-"+suffix {
		t.Errorf("slug: got %q, want %q", created.Slug, "slugless-draft-"+suffix)
	}
	if created.PublishedAt != nil {
		t.Error("expected nil published_at for draft")
	}
}

func TestArticleStoreSlugCollisionSuffixed(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	author := testUser(t, db)

	suffix := uuid.NewString()[:8]
	base := "collide-" + suffix
	t.Cleanup(func() { cleanArticles(t, db, base, base+"-2") })

	// Two distinct titles that slugify to the same base.
	first, err := s.Create(&models.Article{
		Title: "Collide " + suffix, Body: "a",
		Status: models.ArticleStatusDraft, AuthorID: author.ID,
	}, nil)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := s.Create(&models.Article{
		Title: "Collide! " + suffix, Body: "b",
		Status: models.ArticleStatusDraft, AuthorID: author.ID,
	}, nil)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}

	if first.Slug != base {
		t.Errorf("first slug: got %q, want %q", first.Slug, base)
	}
	if second.Slug != base+"-2" {
		t.Errorf("second slug: got %q, want %q", second.Slug, base+"-2")
	}
}

func TestArticleStorePublishedVisibility(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	draft := testArticle(t, db, models.ArticleStatusDraft)
	published := testArticle(t, db, models.ArticleStatusPublished)

	// Drafts are invisible through the public slug lookup.
	if got, err := s.FindPublishedBySlug(draft.Slug); err != nil {
		t.Fatalf("FindPublishedBySlug(draft): %v", err)
	} else if got != nil {
		t.Error("draft should not be findable through the public path")
	}

	got, err := s.FindPublishedBySlug(published.Slug)
	if err != nil {
		t.Fatalf("FindPublishedBySlug(published): %v", err)
	}
	if got == nil {
		t.Fatal("published article should be findable")
	}
	if got.PublishedAt == nil {
		t.Error("expected non-nil published_at")
	}
	if got.AuthorName == "" {
		t.Error("expected author name to be joined in")
	}

	// The admin lookup sees drafts.
	if got, err := s.FindByID(draft.ID); err != nil || got == nil {
		t.Errorf("FindByID(draft): got %v, err %v", got, err)
	}
}

func TestArticleStoreSearchPublished(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	author := testUser(t, db)

	suffix := uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanArticles(t, db, "needle-published-"+suffix, "needle-draft-"+suffix)
	})

	if _, err := s.Create(&models.Article{
		Title: "Needle Published " + suffix, Body: "x",
		Status: models.ArticleStatusPublished, AuthorID: author.ID,
	}, nil); err != nil {
		t.Fatalf("Create published: %v", err)
	}
	if _, err := s.Create(&models.Article{
		Title: "Needle Draft " + suffix, Body: "x",
		Status: models.ArticleStatusDraft, AuthorID: author.ID,
	}, nil); err != nil {
		t.Fatalf("Create draft: %v", err)
	}

	// Case-insensitive substring match, published only.
	results, err := s.SearchPublished("nEeDlE", 50, 0)
	if err != nil {
		t.Fatalf("SearchPublished: %v", err)
	}
	var foundPublished, foundDraft bool
	for _, a := range results {
		switch a.Title {
		case "Needle Published " + suffix:
			foundPublished = true
		case "Needle Draft " + suffix:
			foundDraft = true
		}
	}
	if !foundPublished {
		t.Error("published article missing from search results")
	}
	if foundDraft {
		t.Error("draft article leaked into search results")
	}

	// Empty query is an empty result set, not an unfiltered listing.
	empty, err := s.SearchPublished("", 50, 0)
	if err != nil {
		t.Fatalf("SearchPublished(empty): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty query: got %d results, want 0", len(empty))
	}
}

func TestArticleStoreCategories(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	cs := NewCategoryStore(db)
	author := testUser(t, db)

	suffix := uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanArticles(t, db, "categorized-"+suffix)
		cleanCategories(t, db, "Cat "+suffix)
	})

	cat, err := cs.Create("Cat " + suffix)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	created, err := s.Create(&models.Article{
		Title: "Categorized " + suffix, Body: "x",
		Status: models.ArticleStatusPublished, AuthorID: author.ID,
	}, []uuid.UUID{cat.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(found.Categories) != 1 || found.Categories[0].ID != cat.ID {
		t.Fatalf("categories: got %v, want the assigned category", found.Categories)
	}

	inCat, err := s.ListPublishedByCategory(cat.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListPublishedByCategory: %v", err)
	}
	if len(inCat) != 1 || inCat[0].ID != created.ID {
		t.Errorf("category listing: got %d items", len(inCat))
	}

	// Deleting the category removes the assignment but not the article.
	if err := cs.Delete(cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if found, err := s.FindByID(created.ID); err != nil || found == nil {
		t.Errorf("article should survive category deletion: %v, err %v", found, err)
	}
}

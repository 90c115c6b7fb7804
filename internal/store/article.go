// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"weblog/internal/models"
	"weblog/internal/slug"
)

// ArticleStore handles all article-related database operations.
//
// Every public read path goes through a method whose query carries the
// status = 'published' predicate; admin paths use the unfiltered methods.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `a.id, a.title, a.slug, a.body, a.image, a.status,
	a.author_id, a.published_at, a.created_at, a.updated_at, u.display_name`

// scanArticle scans a joined articles×users row into an Article.
func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Body, &a.Image, &a.Status,
		&a.AuthorID, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt, &a.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *ArticleStore) scanArticles(rows *sql.Rows) ([]models.Article, error) {
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// Create inserts a new article and its category assignments in one
// transaction. If the slug is empty it is generated from the title; a
// numeric suffix is appended until the slug is unique across all
// articles, drafts included. The slug column's unique index remains the
// backstop.
func (s *ArticleStore) Create(a *models.Article, categoryIDs []uuid.UUID) (*models.Article, error) {
	if a.Slug == "" {
		a.Slug = slug.Generate(a.Title)
	}
	unique, err := s.uniqueSlug(a.Slug)
	if err != nil {
		return nil, err
	}
	a.Slug = unique

	// If publishing, set the published_at timestamp.
	if a.Status == models.ArticleStatusPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create article: begin: %w", err)
	}
	defer tx.Rollback()

	result := &models.Article{AuthorName: a.AuthorName}
	err = tx.QueryRow(`
		INSERT INTO articles (title, slug, body, image, status, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, slug, body, image, status, author_id, published_at, created_at, updated_at
	`, a.Title, a.Slug, a.Body, a.Image, a.Status, a.AuthorID, a.PublishedAt,
	).Scan(
		&result.ID, &result.Title, &result.Slug, &result.Body, &result.Image,
		&result.Status, &result.AuthorID, &result.PublishedAt, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	for _, catID := range categoryIDs {
		if _, err := tx.Exec(`
			INSERT INTO article_categories (article_id, category_id) VALUES ($1, $2)
		`, result.ID, catID); err != nil {
			return nil, fmt.Errorf("create article: assign category: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create article: commit: %w", err)
	}
	return result, nil
}

// Update modifies an existing article and replaces its category assignments.
func (s *ArticleStore) Update(a *models.Article, categoryIDs []uuid.UUID) error {
	// If transitioning to published and no published_at set, set it now.
	if a.Status == models.ArticleStatusPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update article: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE articles SET
			title = $1, slug = $2, body = $3, image = $4, status = $5,
			published_at = $6, updated_at = NOW()
		WHERE id = $7
	`, a.Title, a.Slug, a.Body, a.Image, a.Status, a.PublishedAt, a.ID)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM article_categories WHERE article_id = $1`, a.ID); err != nil {
		return fmt.Errorf("update article: clear categories: %w", err)
	}
	for _, catID := range categoryIDs {
		if _, err := tx.Exec(`
			INSERT INTO article_categories (article_id, category_id) VALUES ($1, $2)
		`, a.ID, catID); err != nil {
			return fmt.Errorf("update article: assign category: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update article: commit: %w", err)
	}
	return nil
}

// Delete removes an article. Its comments and likes cascade away with it.
func (s *ArticleStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// FindByID retrieves an article of any status, with categories loaded.
// Admin/author-facing only. Returns nil if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(`
		SELECT `+articleColumns+`
		FROM articles a JOIN users u ON u.id = a.author_id
		WHERE a.id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	if a.Categories, err = s.categoriesOf(a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

// FindPublishedBySlug retrieves a published article by slug, with
// categories loaded. This is the lookup every user-facing path uses:
// drafts are invisible here. Returns nil if not found or not published.
func (s *ArticleStore) FindPublishedBySlug(slugParam string) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(`
		SELECT `+articleColumns+`
		FROM articles a JOIN users u ON u.id = a.author_id
		WHERE a.slug = $1 AND a.status = 'published'
	`, slugParam))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	if a.Categories, err = s.categoriesOf(a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

// ListPublished returns a page of published articles, most recent first.
func (s *ArticleStore) ListPublished(limit, offset int) ([]models.Article, error) {
	rows, err := s.db.Query(`
		SELECT `+articleColumns+`
		FROM articles a JOIN users u ON u.id = a.author_id
		WHERE a.status = 'published'
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	return s.scanArticles(rows)
}

// CountPublished returns the number of published articles.
func (s *ArticleStore) CountPublished() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE status = 'published'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count published articles: %w", err)
	}
	return count, nil
}

// ListPublishedByCategory returns a page of published articles assigned
// to the given category, most recent first.
func (s *ArticleStore) ListPublishedByCategory(categoryID uuid.UUID, limit, offset int) ([]models.Article, error) {
	rows, err := s.db.Query(`
		SELECT `+articleColumns+`
		FROM articles a
		JOIN users u ON u.id = a.author_id
		JOIN article_categories ac ON ac.article_id = a.id
		WHERE ac.category_id = $1 AND a.status = 'published'
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles by category: %w", err)
	}
	return s.scanArticles(rows)
}

// CountPublishedByCategory returns the number of published articles in a category.
func (s *ArticleStore) CountPublishedByCategory(categoryID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM articles a
		JOIN article_categories ac ON ac.article_id = a.id
		WHERE ac.category_id = $1 AND a.status = 'published'
	`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count articles by category: %w", err)
	}
	return count, nil
}

// SearchPublished returns a page of published articles whose title
// contains the query, case-insensitively. An empty query yields an empty
// result set, never an unfiltered listing.
func (s *ArticleStore) SearchPublished(query string, limit, offset int) ([]models.Article, error) {
	if query == "" {
		return nil, nil
	}
	rows, err := s.db.Query(`
		SELECT `+articleColumns+`
		FROM articles a JOIN users u ON u.id = a.author_id
		WHERE a.status = 'published' AND a.title ILIKE '%' || $1 || '%'
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return s.scanArticles(rows)
}

// CountSearchPublished returns the number of published articles matching the query.
func (s *ArticleStore) CountSearchPublished(query string) (int, error) {
	if query == "" {
		return 0, nil
	}
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM articles
		WHERE status = 'published' AND title ILIKE '%' || $1 || '%'
	`, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count search articles: %w", err)
	}
	return count, nil
}

// ListRecentPublished returns the n most recent published articles (sidebar).
func (s *ArticleStore) ListRecentPublished(n int) ([]models.Article, error) {
	return s.ListPublished(n, 0)
}

// ListPublishedWithImage returns the n most recent published articles
// that carry an image, for the homepage banner strip.
func (s *ArticleStore) ListPublishedWithImage(n int) ([]models.Article, error) {
	rows, err := s.db.Query(`
		SELECT `+articleColumns+`
		FROM articles a JOIN users u ON u.id = a.author_id
		WHERE a.status = 'published' AND a.image IS NOT NULL AND a.image <> ''
		ORDER BY a.created_at DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("list banner articles: %w", err)
	}
	return s.scanArticles(rows)
}

// ListAll returns every article regardless of status, most recent first.
// Admin-facing only.
func (s *ArticleStore) ListAll() ([]models.Article, error) {
	rows, err := s.db.Query(`
		SELECT ` + articleColumns + `
		FROM articles a JOIN users u ON u.id = a.author_id
		ORDER BY a.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all articles: %w", err)
	}
	return s.scanArticles(rows)
}

// Count returns the total number of articles of any status.
func (s *ArticleStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// categoriesOf loads the categories assigned to an article.
func (s *ArticleStore) categoriesOf(articleID uuid.UUID) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.title, c.slug, c.created_at
		FROM categories c
		JOIN article_categories ac ON ac.category_id = c.id
		WHERE ac.article_id = $1
		ORDER BY c.title
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("load article categories: %w", err)
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// uniqueSlug probes for slug collisions and appends -2, -3, ... until
// the candidate is free. Distinct titles can still slugify identically,
// so generation alone does not guarantee uniqueness.
func (s *ArticleStore) uniqueSlug(base string) (string, error) {
	if base == "" {
		base = "article"
	}
	candidate := base
	for i := 2; ; i++ {
		var exists bool
		err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1)`, candidate).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("probe slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

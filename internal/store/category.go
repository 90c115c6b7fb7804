// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"weblog/internal/models"
	"weblog/internal/slug"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories ordered by title, each with its count of
// published articles. The count is the public-facing number: drafts are
// excluded.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.title, c.slug, c.created_at,
		       COUNT(a.id) FILTER (WHERE a.status = 'published') AS article_count
		FROM categories c
		LEFT JOIN article_categories ac ON ac.category_id = c.id
		LEFT JOIN articles a ON a.id = ac.article_id
		GROUP BY c.id
		ORDER BY c.title
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.CreatedAt, &c.ArticleCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, title, slug, created_at FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Title, &c.Slug, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category; the slug is generated from the title.
func (s *CategoryStore) Create(title string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		INSERT INTO categories (title, slug) VALUES ($1, $2)
		RETURNING id, title, slug, created_at
	`, title, slug.Generate(title)).Scan(&c.ID, &c.Title, &c.Slug, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Update renames a category and regenerates its slug.
func (s *CategoryStore) Update(id uuid.UUID, title string) error {
	_, err := s.db.Exec(`
		UPDATE categories SET title = $1, slug = $2 WHERE id = $3
	`, title, slug.Generate(title), id)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category. Its article assignments cascade away; the
// articles themselves are untouched.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Count returns the total number of categories.
func (s *CategoryStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

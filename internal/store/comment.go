// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"weblog/internal/models"
)

// CommentStore manages the flat comment collection. Threading lives in
// parent_id links only; models.ThreadComments assembles the tree for
// display.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore returns a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Create inserts a new comment. parentID may be nil for a top-level
// comment; resolution of parent ids happens in the interaction service,
// not here.
func (s *CommentStore) Create(articleID, userID uuid.UUID, parentID *int64, body string) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (article_id, user_id, parent_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, article_id, user_id, parent_id, body, is_active, created_at
	`, articleID, userID, parentID, body).Scan(
		&c.ID, &c.ArticleID, &c.UserID, &c.ParentID, &c.Body, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// FindByID retrieves a comment by its numeric id. Returns nil if not found.
func (s *CommentStore) FindByID(id int64) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		SELECT id, article_id, user_id, parent_id, body, is_active, created_at
		FROM comments WHERE id = $1
	`, id).Scan(
		&c.ID, &c.ArticleID, &c.UserID, &c.ParentID, &c.Body, &c.IsActive, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// ListActiveByArticle returns an article's active comments flat and most
// recent first, with author display names attached.
func (s *CommentStore) ListActiveByArticle(articleID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.article_id, c.user_id, c.parent_id, c.body, c.is_active, c.created_at,
		       u.display_name
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.article_id = $1 AND c.is_active
		ORDER BY c.created_at DESC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return scanComments(rows)
}

// ListAll returns every comment of any moderation state, most recent
// first. Admin-facing only.
func (s *CommentStore) ListAll() ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.article_id, c.user_id, c.parent_id, c.body, c.is_active, c.created_at,
		       u.display_name
		FROM comments c JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all comments: %w", err)
	}
	return scanComments(rows)
}

func scanComments(rows *sql.Rows) ([]models.Comment, error) {
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.ArticleID, &c.UserID, &c.ParentID, &c.Body, &c.IsActive,
			&c.CreatedAt, &c.AuthorName,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// SetActive flips the moderation gate. Deactivation hides a comment from
// public listings; the row is never deleted by moderation.
func (s *CommentStore) SetActive(id int64, active bool) error {
	_, err := s.db.Exec(`UPDATE comments SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set comment active: %w", err)
	}
	return nil
}

// CountByArticle returns the number of active comments on an article.
func (s *CommentStore) CountByArticle(articleID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM comments WHERE article_id = $1 AND is_active
	`, articleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

// Count returns the total number of comments of any state.
func (s *CommentStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count all comments: %w", err)
	}
	return count, nil
}

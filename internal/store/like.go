// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// LikeStore manages the per-(user, article) like set. The
// UNIQUE (user_id, article_id) constraint in the database is the
// authority on membership; Toggle leans on it rather than on a
// check-then-act sequence.
type LikeStore struct {
	db *sql.DB
}

// NewLikeStore returns a new LikeStore.
func NewLikeStore(db *sql.DB) *LikeStore {
	return &LikeStore{db: db}
}

// Toggle flips like membership for (user, article) and reports the new
// state: true if the like now exists, false if it was removed.
//
// The create path is a conditional insert, ON CONFLICT DO NOTHING
// against the unique constraint, so two concurrent toggles can never
// produce duplicate rows: one insert wins, the other observes the
// conflict and takes the delete path.
func (s *LikeStore) Toggle(userID, articleID uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`
		INSERT INTO likes (user_id, article_id) VALUES ($1, $2)
		ON CONFLICT (user_id, article_id) DO NOTHING
	`, userID, articleID)
	if err != nil {
		return false, fmt.Errorf("toggle like: insert: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("toggle like: rows affected: %w", err)
	}
	if inserted == 1 {
		return true, nil
	}

	// Already liked: remove. Physical delete, no tombstone.
	if _, err := s.db.Exec(`
		DELETE FROM likes WHERE user_id = $1 AND article_id = $2
	`, userID, articleID); err != nil {
		return false, fmt.Errorf("toggle like: delete: %w", err)
	}
	return false, nil
}

// Exists reports whether the user has liked the article.
func (s *LikeStore) Exists(userID, articleID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND article_id = $2)
	`, userID, articleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("like exists: %w", err)
	}
	return exists, nil
}

// CountByArticle returns the number of likes on an article.
func (s *LikeStore) CountByArticle(articleID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM likes WHERE article_id = $1`, articleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

// Count returns the total number of likes across all articles.
func (s *LikeStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM likes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count all likes: %w", err)
	}
	return count, nil
}

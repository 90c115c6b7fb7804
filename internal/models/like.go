package models

import (
	"time"

	"github.com/google/uuid"
)

// Like records one user's approval of one article. At most one row exists
// per (user, article) pair, enforced by a unique constraint in the database.
// Unliking deletes the row; there is no tombstone state.
type Like struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ArticleID uuid.UUID `json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Package interactions implements the comment and like operations that
// mutate state in response to reader actions. It sits between the HTTP
// handlers and the entity stores: handlers supply an authenticated user
// identity and an article slug, the service enforces the publish and
// moderation invariants, and the stores do the persistence.
package interactions

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"weblog/internal/models"
	"weblog/internal/store"
)

var (
	// ErrArticleNotFound covers both unknown slugs and drafts: an
	// unpublished article does not exist as far as readers are concerned.
	ErrArticleNotFound = errors.New("article not found")

	// ErrEmptyBody rejects comments whose body is empty after trimming.
	ErrEmptyBody = errors.New("comment body is empty")
)

// Service coordinates comment submission and like toggling.
type Service struct {
	articles *store.ArticleStore
	comments *store.CommentStore
	likes    *store.LikeStore
}

// New creates an interaction service over the given stores.
func New(articles *store.ArticleStore, comments *store.CommentStore, likes *store.LikeStore) *Service {
	return &Service{articles: articles, comments: comments, likes: likes}
}

// SubmitComment creates a comment by userID on the published article
// named by slug.
//
// An unresolved parentID is not an error: if it names no existing
// comment, or names a comment on a different article, the new comment
// is silently created top-level. Linking is best-effort with silent
// fallback; do not turn this into a hard failure, callers depend on
// the lenient behavior.
//
// On any rejection (ErrArticleNotFound, ErrEmptyBody) nothing is
// persisted.
func (s *Service) SubmitComment(slug string, userID uuid.UUID, body string, parentID *int64) (*models.Comment, error) {
	article, err := s.articles.FindPublishedBySlug(slug)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}

	var parent *int64
	if parentID != nil {
		existing, err := s.comments.FindByID(*parentID)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ArticleID == article.ID {
			parent = &existing.ID
		}
	}

	return s.comments.Create(article.ID, userID, parent, body)
}

// ToggleLike flips userID's like membership on the published article
// named by slug and reports the new state. The storage layer's unique
// constraint makes the flip race-safe; this method adds only the
// publish check.
func (s *Service) ToggleLike(slug string, userID uuid.UUID) (bool, error) {
	article, err := s.articles.FindPublishedBySlug(slug)
	if err != nil {
		return false, err
	}
	if article == nil {
		return false, ErrArticleNotFound
	}

	return s.likes.Toggle(userID, article.ID)
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the publishing state of an article.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
)

// Article represents a blog article. Only published articles are visible
// through public read paths; drafts are admin/author-facing only.
type Article struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Body        string        `json:"body"`
	Image       *string       `json:"image,omitempty"` // Optional path/URL to a banner image
	Status      ArticleStatus `json:"status"`
	AuthorID    uuid.UUID     `json:"author_id"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Virtual fields populated by store methods.
	Categories []Category `json:"categories,omitempty"`
	AuthorName string     `json:"author_name,omitempty"`
}

// IsPublished returns true if the article is in published status.
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

// HasImage returns true if the article carries a non-empty banner image.
func (a *Article) HasImage() bool {
	return a.Image != nil && *a.Image != ""
}

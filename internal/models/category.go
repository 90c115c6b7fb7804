// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents an article category. Articles and categories are
// linked many-to-many through the article_categories table.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`

	// Virtual field populated by store methods: number of published
	// articles assigned to this category.
	ArticleCount int `json:"article_count"`
}

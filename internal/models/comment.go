// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a threaded reply attached to an article. A comment may reply
// to another comment on the same article via ParentID; comments are stored
// flat and the tree is assembled from parent links. Parent links always
// point at an earlier-created comment, so the chain is acyclic by
// construction.
//
// Moderation deactivates comments rather than deleting them: IsActive
// gates public visibility and nothing else.
type Comment struct {
	ID        int64     `json:"id"`
	ArticleID uuid.UUID `json:"article_id"`
	UserID    uuid.UUID `json:"user_id"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Body      string    `json:"body"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	// Virtual fields populated by store methods.
	AuthorName string    `json:"author_name,omitempty"`
	Replies    []Comment `json:"replies,omitempty"`
}

// IsReply returns true if the comment is nested under a parent comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// ThreadComments assembles a flat, newest-first comment slice into a
// two-level tree: top-level comments in input order, each carrying its
// replies (also newest-first). Replies nested deeper than one level are
// flattened into their thread's reply list, so a reply to a reply stays
// visible under the same top-level comment. Replies whose parent is
// absent from the input (e.g. the parent was deactivated) are promoted
// to top level so they remain visible.
func ThreadComments(flat []Comment) []Comment {
	byID := make(map[int64]*Comment, len(flat))
	for i := range flat {
		byID[flat[i].ID] = &flat[i]
	}

	// threadOf follows parent links to the comment that will render at
	// top level. Parent links always point at earlier comments, so the
	// walk terminates.
	threadOf := func(c *Comment) int64 {
		for c.ParentID != nil {
			parent, ok := byID[*c.ParentID]
			if !ok {
				break
			}
			c = parent
		}
		return c.ID
	}

	replies := make(map[int64][]Comment)
	var roots []Comment
	for _, c := range flat {
		if c.ParentID != nil && byID[*c.ParentID] != nil {
			id := threadOf(byID[c.ID])
			replies[id] = append(replies[id], c)
			continue
		}
		roots = append(roots, c)
	}

	for i := range roots {
		roots[i].Replies = replies[roots[i].ID]
	}
	return roots
}

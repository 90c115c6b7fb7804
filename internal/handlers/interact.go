// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"weblog/internal/cache"
	"weblog/internal/interactions"
	"weblog/internal/middleware"
)

// Interact groups the handlers for reader interactions on published
// articles: comments and likes. Both require an authenticated session,
// which the router enforces before these handlers run.
type Interact struct {
	svc       *interactions.Service
	pageCache *cache.PageCache
}

// NewInteract creates a new Interact handler group.
func NewInteract(svc *interactions.Service, pageCache *cache.PageCache) *Interact {
	return &Interact{svc: svc, pageCache: pageCache}
}

// CommentSubmit posts a comment on a published article. An optional
// parent_id form field threads the comment under an existing one; a
// parent that no longer exists is silently dropped and the comment is
// stored top-level. An invalid body redirects back to the article view
// with nothing stored.
func (h *Interact) CommentSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	slugParam := chi.URLParam(r, "slug")
	body := r.FormValue("body")

	// Rejected input recovers locally: back to the article view with
	// nothing persisted.
	if msg := validateComment(body); msg != "" {
		http.Redirect(w, r, "/article/"+slugParam, http.StatusSeeOther)
		return
	}

	var parentID *int64
	if raw := r.FormValue("parent_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			parentID = &id
		}
	}

	_, err := h.svc.SubmitComment(slugParam, sess.UserID, body, parentID)
	if err != nil {
		switch {
		case errors.Is(err, interactions.ErrArticleNotFound):
			http.NotFound(w, r)
		case errors.Is(err, interactions.ErrEmptyBody):
			http.Redirect(w, r, "/article/"+slugParam, http.StatusSeeOther)
		default:
			slog.Error("submit comment failed", "error", err, "slug", slugParam)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	h.pageCache.InvalidatePage(r.Context(), cache.SlugKey(slugParam))
	http.Redirect(w, r, "/article/"+slugParam+"#comments", http.StatusSeeOther)
}

// CommentRedirect sends plain navigation of the comment endpoint back to
// the article view. The endpoint only mutates via form posts.
func (h *Interact) CommentRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/article/"+chi.URLParam(r, "slug"), http.StatusSeeOther)
}

// LikeToggle flips the session user's like on a published article and
// redirects back to the article page. Repeated toggles alternate between
// liked and not liked; concurrent requests never produce duplicates.
func (h *Interact) LikeToggle(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	slugParam := chi.URLParam(r, "slug")

	_, err := h.svc.ToggleLike(slugParam, sess.UserID)
	if err != nil {
		if errors.Is(err, interactions.ErrArticleNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("toggle like failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pageCache.InvalidatePage(r.Context(), cache.SlugKey(slugParam))
	http.Redirect(w, r, "/article/"+slugParam, http.StatusSeeOther)
}

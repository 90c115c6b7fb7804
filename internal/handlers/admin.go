// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"weblog/internal/cache"
	"weblog/internal/middleware"
	"weblog/internal/models"
	"weblog/internal/render"
	"weblog/internal/store"
)

// Admin groups the handlers behind /admin: content management, comment
// moderation, contact messages, and the user list. The router gates the
// whole subtree behind authentication and admin 2FA.
type Admin struct {
	renderer   *render.Renderer
	articles   *store.ArticleStore
	categories *store.CategoryStore
	comments   *store.CommentStore
	messages   *store.MessageStore
	users      *store.UserStore
	likes      *store.LikeStore
	pageCache  *cache.PageCache
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(renderer *render.Renderer, articles *store.ArticleStore, categories *store.CategoryStore, comments *store.CommentStore, messages *store.MessageStore, users *store.UserStore, likes *store.LikeStore, pageCache *cache.PageCache) *Admin {
	return &Admin{
		renderer:   renderer,
		articles:   articles,
		categories: categories,
		comments:   comments,
		messages:   messages,
		users:      users,
		likes:      likes,
		pageCache:  pageCache,
	}
}

// Dashboard shows content and interaction counts.
func (h *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts := map[string]any{}
	set := func(key string, count int, err error) {
		if err != nil {
			slog.Error("dashboard count failed", "key", key, "error", err)
			count = 0
		}
		counts[key] = count
	}

	articleCount, err := h.articles.Count()
	set("articleCount", articleCount, err)
	publishedCount, err := h.articles.CountPublished()
	set("publishedCount", publishedCount, err)
	categoryCount, err := h.categories.Count()
	set("categoryCount", categoryCount, err)
	commentCount, err := h.comments.Count()
	set("commentCount", commentCount, err)
	likeCount, err := h.likes.Count()
	set("likeCount", likeCount, err)
	messageCount, err := h.messages.Count()
	set("messageCount", messageCount, err)
	userCount, err := h.users.Count()
	set("userCount", userCount, err)

	h.renderer.Page(w, r, "admin_dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data:    counts,
	})
}

// ArticlesList shows every article regardless of status.
func (h *Admin) ArticlesList(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListAll()
	if err != nil {
		slog.Error("list all articles failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "admin_articles", &render.PageData{
		Title:   "Articles",
		Section: "articles",
		Data:    map[string]any{"articles": articles},
	})
}

// ArticleNew renders an empty article form.
func (h *Admin) ArticleNew(w http.ResponseWriter, r *http.Request) {
	h.renderArticleForm(w, r, "New article", "/admin/articles", nil, nil, "")
}

// ArticleCreate stores a new article authored by the session user.
func (h *Admin) ArticleCreate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	article, categoryIDs := h.articleFromForm(r)
	article.AuthorID = sess.UserID

	if msg := validateArticle(article.Title, article.Body); msg != "" {
		h.renderArticleForm(w, r, "New article", "/admin/articles", article, categoryIDs, msg)
		return
	}

	if _, err := h.articles.Create(article, categoryIDs); err != nil {
		slog.Error("create article failed", "error", err)
		h.renderArticleForm(w, r, "New article", "/admin/articles", article, categoryIDs, "An unexpected error occurred.")
		return
	}

	h.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
}

// ArticleEdit renders the form prefilled with an existing article.
func (h *Admin) ArticleEdit(w http.ResponseWriter, r *http.Request) {
	article := h.findArticle(w, r)
	if article == nil {
		return
	}

	var selected []uuid.UUID
	for _, c := range article.Categories {
		selected = append(selected, c.ID)
	}

	action := "/admin/articles/" + article.ID.String()
	h.renderArticleForm(w, r, "Edit article", action, article, selected, "")
}

// ArticleUpdate saves changes to an existing article.
func (h *Admin) ArticleUpdate(w http.ResponseWriter, r *http.Request) {
	existing := h.findArticle(w, r)
	if existing == nil {
		return
	}

	article, categoryIDs := h.articleFromForm(r)
	article.ID = existing.ID
	article.Slug = existing.Slug
	article.AuthorID = existing.AuthorID

	action := "/admin/articles/" + existing.ID.String()
	if msg := validateArticle(article.Title, article.Body); msg != "" {
		h.renderArticleForm(w, r, "Edit article", action, article, categoryIDs, msg)
		return
	}

	if err := h.articles.Update(article, categoryIDs); err != nil {
		slog.Error("update article failed", "error", err)
		h.renderArticleForm(w, r, "Edit article", action, article, categoryIDs, "An unexpected error occurred.")
		return
	}

	h.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
}

// ArticleDelete removes an article along with its comments and likes.
func (h *Admin) ArticleDelete(w http.ResponseWriter, r *http.Request) {
	article := h.findArticle(w, r)
	if article == nil {
		return
	}

	if err := h.articles.Delete(article.ID); err != nil {
		slog.Error("delete article failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
}

// CategoriesPage lists categories with their published article counts.
func (h *Admin) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	h.renderCategories(w, r, "")
}

// CategoryCreate adds a category.
func (h *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	if msg := validateCategoryTitle(title); msg != "" {
		h.renderCategories(w, r, msg)
		return
	}

	if _, err := h.categories.Create(title); err != nil {
		slog.Error("create category failed", "error", err)
		h.renderCategories(w, r, "Could not create category. Is the title unique?")
		return
	}

	h.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CategoryDelete removes a category. Articles in it survive; only the
// grouping disappears.
func (h *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.categories.Delete(id); err != nil {
		slog.Error("delete category failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CommentsPage lists every comment for moderation.
func (h *Admin) CommentsPage(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListAll()
	if err != nil {
		slog.Error("list comments failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "admin_comments", &render.PageData{
		Title:   "Comments",
		Section: "comments",
		Data:    map[string]any{"comments": comments},
	})
}

// CommentToggle flips a comment between visible and hidden. The row is
// kept either way so moderation can be reversed.
func (h *Admin) CommentToggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	comment, err := h.comments.FindByID(id)
	if err != nil {
		slog.Error("find comment failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if comment == nil {
		http.NotFound(w, r)
		return
	}

	if err := h.comments.SetActive(id, !comment.IsActive); err != nil {
		slog.Error("toggle comment failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// The article page embeds its comments, so drop its cached copy.
	if article, err := h.articles.FindByID(comment.ArticleID); err == nil && article != nil {
		h.pageCache.InvalidatePage(r.Context(), cache.SlugKey(article.Slug))
	}

	http.Redirect(w, r, "/admin/comments", http.StatusSeeOther)
}

// MessagesPage lists contact form messages.
func (h *Admin) MessagesPage(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.List()
	if err != nil {
		slog.Error("list messages failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "admin_messages", &render.PageData{
		Title:   "Messages",
		Section: "messages",
		Data:    map[string]any{"messages": messages},
	})
}

// MessageDelete removes a contact message.
func (h *Admin) MessageDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.messages.Delete(id); err != nil {
		slog.Error("delete message failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/messages", http.StatusSeeOther)
}

// UsersPage lists registered users.
func (h *Admin) UsersPage(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		slog.Error("list users failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "admin_users", &render.PageData{
		Title:   "Users",
		Section: "users",
		Data:    map[string]any{"users": users},
	})
}

// findArticle loads the article from the id URL param, writing a 404 or
// 500 and returning nil when it cannot.
func (h *Admin) findArticle(w http.ResponseWriter, r *http.Request) *models.Article {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return nil
	}

	article, err := h.articles.FindByID(id)
	if err != nil {
		slog.Error("find article failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	if article == nil {
		http.NotFound(w, r)
		return nil
	}
	return article
}

// articleFromForm builds an article from the submitted form values.
func (h *Admin) articleFromForm(r *http.Request) (*models.Article, []uuid.UUID) {
	article := &models.Article{
		Title:  r.FormValue("title"),
		Body:   r.FormValue("body"),
		Status: models.ArticleStatusDraft,
	}
	if r.FormValue("status") == string(models.ArticleStatusPublished) {
		article.Status = models.ArticleStatusPublished
	}
	if image := r.FormValue("image"); image != "" {
		article.Image = &image
	}

	r.ParseForm()
	var categoryIDs []uuid.UUID
	for _, raw := range r.Form["category_ids"] {
		if id, err := uuid.Parse(raw); err == nil {
			categoryIDs = append(categoryIDs, id)
		}
	}
	return article, categoryIDs
}

// renderArticleForm renders the shared article form for create and edit.
func (h *Admin) renderArticleForm(w http.ResponseWriter, r *http.Request, heading, action string, article *models.Article, selected []uuid.UUID, errMsg string) {
	categories, err := h.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	selectedMap := make(map[string]bool, len(selected))
	for _, id := range selected {
		selectedMap[id.String()] = true
	}

	data := map[string]any{
		"heading":    heading,
		"action":     action,
		"categories": categories,
		"selected":   selectedMap,
		"error":      errMsg,
		"title":      "",
		"image":      "",
		"body":       "",
		"status":     string(models.ArticleStatusDraft),
	}
	if article != nil {
		data["title"] = article.Title
		data["body"] = article.Body
		data["status"] = string(article.Status)
		if article.Image != nil {
			data["image"] = *article.Image
		}
	}

	h.renderer.Page(w, r, "admin_article_form", &render.PageData{
		Title:   heading,
		Section: "articles",
		Data:    data,
	})
}

// renderCategories renders the category management page.
func (h *Admin) renderCategories(w http.ResponseWriter, r *http.Request, errMsg string) {
	categories, err := h.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "admin_categories", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Data:    map[string]any{"categories": categories, "error": errMsg},
	})
}

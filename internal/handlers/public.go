// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"weblog/internal/cache"
	"weblog/internal/markdown"
	"weblog/internal/middleware"
	"weblog/internal/models"
	"weblog/internal/render"
	"weblog/internal/store"
)

const (
	// pageSize is the number of articles per listing page.
	pageSize = 3

	// sidebarRecent is how many recent posts the sidebar shows.
	sidebarRecent = 5

	// bannerCount is how many image articles the homepage banner rotates.
	bannerCount = 3
)

// Public groups handlers for the public-facing blog pages. Anonymous
// page loads are served from the Redis page cache when possible; pages
// rendered for a logged-in session are never cached because they embed
// session-specific state (like buttons, comment forms).
type Public struct {
	renderer   *render.Renderer
	articles   *store.ArticleStore
	categories *store.CategoryStore
	comments   *store.CommentStore
	likes      *store.LikeStore
	messages   *store.MessageStore
	pageCache  *cache.PageCache
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, articles *store.ArticleStore, categories *store.CategoryStore, comments *store.CommentStore, likes *store.LikeStore, messages *store.MessageStore, pageCache *cache.PageCache) *Public {
	return &Public{
		renderer:   renderer,
		articles:   articles,
		categories: categories,
		comments:   comments,
		likes:      likes,
		messages:   messages,
		pageCache:  pageCache,
	}
}

// sidebar fills the shared sidebar data (recent posts, category counts).
func (p *Public) sidebar(data map[string]any) {
	recent, err := p.articles.ListRecentPublished(sidebarRecent)
	if err != nil {
		slog.Error("sidebar recent articles failed", "error", err)
	}
	categories, err := p.categories.List()
	if err != nil {
		slog.Error("sidebar categories failed", "error", err)
	}
	data["recent"] = recent
	data["categories"] = categories
}

// cacheable reports whether the response for this request may be served
// from and stored in the page cache.
func cacheable(r *http.Request) bool {
	return middleware.SessionFromCtx(r.Context()) == nil
}

// Home renders the homepage: banner articles (published posts with an
// image) plus the latest published articles and the sidebar.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cacheable(r) {
		if cached, ok := p.pageCache.Get(ctx, cache.HomepageKey()); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(cached)
			return
		}
	}

	banners, err := p.articles.ListPublishedWithImage(bannerCount)
	if err != nil {
		slog.Error("banner articles failed", "error", err)
	}
	latest, err := p.articles.ListPublished(sidebarRecent, 0)
	if err != nil {
		slog.Error("latest articles failed", "error", err)
	}

	data := map[string]any{
		"banners":  banners,
		"articles": latest,
	}
	p.sidebar(data)

	html, err := p.renderer.Render(r, "home", &render.PageData{
		Title:   "Home",
		Section: "home",
		Data:    data,
	})
	if err != nil {
		slog.Error("home render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if cacheable(r) {
		p.pageCache.Set(ctx, cache.HomepageKey(), html)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// ArticlesList renders the paginated list of published articles.
func (p *Public) ArticlesList(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)

	articles, err := p.articles.ListPublished(pageSize, (page-1)*pageSize)
	if err != nil {
		slog.Error("list articles failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	total, err := p.articles.CountPublished()
	if err != nil {
		slog.Error("count articles failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderList(w, r, "All articles", "/articles", "", articles, page, total)
}

// CategoryArticles renders published articles in one category, paginated.
// Unknown category IDs return 404.
func (p *Public) CategoryArticles(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	category, err := p.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if category == nil {
		http.NotFound(w, r)
		return
	}

	page := pageParam(r)
	articles, err := p.articles.ListPublishedByCategory(id, pageSize, (page-1)*pageSize)
	if err != nil {
		slog.Error("list category articles failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	total, err := p.articles.CountPublishedByCategory(id)
	if err != nil {
		slog.Error("count category articles failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderList(w, r, "Category: "+category.Title, "/category/"+id.String(), "", articles, page, total)
}

// Search renders published articles whose title contains the query,
// case-insensitively. An empty query yields an empty result set.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := pageParam(r)

	var articles []models.Article
	var total int
	if query != "" {
		var err error
		articles, err = p.articles.SearchPublished(query, pageSize, (page-1)*pageSize)
		if err != nil {
			slog.Error("search articles failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		total, err = p.articles.CountSearchPublished(query)
		if err != nil {
			slog.Error("count search failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	suffix := "&q=" + url.QueryEscape(query)
	p.renderList(w, r, "Search: "+query, "/search", suffix, articles, page, total)
}

// renderList renders the shared article listing template.
func (p *Public) renderList(w http.ResponseWriter, r *http.Request, heading, basePath, querySuffix string, articles []models.Article, page, total int) {
	totalPages := (total + pageSize - 1) / pageSize

	data := map[string]any{
		"heading":     heading,
		"articles":    articles,
		"page":        page,
		"totalPages":  totalPages,
		"basePath":    basePath,
		"querySuffix": querySuffix,
	}
	p.sidebar(data)

	p.renderer.Page(w, r, "articles", &render.PageData{
		Title:   heading,
		Section: "articles",
		Data:    data,
	})
}

// ArticleDetail renders one published article with its rendered Markdown
// body, like count, and threaded comments. Draft and unknown slugs 404.
func (p *Public) ArticleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	if cacheable(r) {
		if cached, ok := p.pageCache.Get(ctx, cache.SlugKey(slugParam)); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(cached)
			return
		}
	}

	article, err := p.articles.FindPublishedBySlug(slugParam)
	if err != nil {
		slog.Error("find article failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if article == nil {
		http.NotFound(w, r)
		return
	}

	bodyHTML, err := markdown.ToHTML(article.Body)
	if err != nil {
		slog.Error("markdown render failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	likeCount, err := p.likes.CountByArticle(article.ID)
	if err != nil {
		slog.Error("like count failed", "error", err)
	}

	liked := false
	if sess := middleware.SessionFromCtx(ctx); sess != nil {
		liked, err = p.likes.Exists(sess.UserID, article.ID)
		if err != nil {
			slog.Error("like lookup failed", "error", err)
		}
	}

	flat, err := p.comments.ListActiveByArticle(article.ID)
	if err != nil {
		slog.Error("list comments failed", "error", err)
	}

	data := map[string]any{
		"article":   article,
		"bodyHTML":  template.HTML(bodyHTML),
		"likeCount": likeCount,
		"liked":     liked,
		"comments":  models.ThreadComments(flat),
	}
	p.sidebar(data)

	html, err := p.renderer.Render(r, "article", &render.PageData{
		Title:   article.Title,
		Section: "articles",
		Data:    data,
	})
	if err != nil {
		slog.Error("article render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if cacheable(r) {
		p.pageCache.Set(ctx, cache.SlugKey(slugParam), html)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// ContactPage renders the contact form.
func (p *Public) ContactPage(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "contact", &render.PageData{
		Title:   "Contact",
		Section: "contact",
		Data:    contactFormData("", "", "", "", false),
	})
}

// ContactSubmit validates and stores a contact form message.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	email := r.FormValue("email")
	body := r.FormValue("body")

	if msg := validateMessage(title, email, body); msg != "" {
		p.renderer.Page(w, r, "contact", &render.PageData{
			Title:   "Contact",
			Section: "contact",
			Data:    contactFormData(title, email, body, msg, false),
		})
		return
	}

	if _, err := p.messages.Create(title, body, email); err != nil {
		slog.Error("store message failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderer.Page(w, r, "contact", &render.PageData{
		Title:   "Contact",
		Section: "contact",
		Data:    contactFormData("", "", "", "", true),
	})
}

func contactFormData(title, email, body, errMsg string, sent bool) map[string]any {
	return map[string]any{
		"title": title,
		"email": email,
		"body":  body,
		"error": errMsg,
		"sent":  sent,
	}
}

// pageParam parses the 1-based page query parameter, defaulting to 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

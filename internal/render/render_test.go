// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"weblog/internal/session"

	"github.com/google/uuid"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestNewParsesAllTemplates(t *testing.T) {
	r := newRenderer(t)

	want := []string{
		"home", "articles", "article", "contact",
		"login", "register", "password_change",
		"2fa_setup", "2fa_verify",
		"admin_dashboard", "admin_articles", "admin_article_form",
		"admin_categories", "admin_comments", "admin_messages", "admin_users",
	}
	for _, name := range want {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := newRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := r.Render(req, "does-not-exist", &PageData{})
	if err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestRenderStandaloneLogin(t *testing.T) {
	r := newRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	html, err := r.Render(req, "login", &PageData{
		Title: "Log in",
		Data:  map[string]any{"error": "", "email": "user@weblog.local"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "<form action=\"/login\"") {
		t.Error("expected login form in output")
	}
	if !strings.Contains(out, "user@weblog.local") {
		t.Error("expected prefilled email in output")
	}
	// Standalone pages carry their own document shell.
	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Error("expected full document for standalone template")
	}
}

func TestRenderContactWithBaseLayout(t *testing.T) {
	r := newRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	html, err := r.Render(req, "contact", &PageData{
		Title:   "Contact",
		Section: "contact",
		Data: map[string]any{
			"sent": false, "error": "",
			"title": "", "email": "", "body": "",
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "Contact | Weblog") {
		t.Error("expected page title from base layout")
	}
	if !strings.Contains(out, "Contact us") {
		t.Error("expected contact heading")
	}
}

func TestRenderShowsSessionNav(t *testing.T) {
	r := newRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	sess := &session.Data{
		UserID:      uuid.New(),
		DisplayName: "Jamie",
		Role:        "admin",
	}
	html, err := r.Render(req, "contact", &PageData{
		Title:   "Contact",
		Session: sess,
		Data: map[string]any{
			"sent": false, "error": "",
			"title": "", "email": "", "body": "",
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "Jamie") {
		t.Error("expected display name in nav for authenticated session")
	}
	if !strings.Contains(out, "/admin") {
		t.Error("expected admin link for admin session")
	}
	if strings.Contains(out, ">Register<") {
		t.Error("did not expect register link for authenticated session")
	}
}

func TestPageWritesHTML(t *testing.T) {
	r := newRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rr := httptest.NewRecorder()
	r.Page(rr, req, "login", &PageData{
		Title: "Log in",
		Data:  map[string]any{"error": "", "email": ""},
	})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type: got %q", ct)
	}
	if rr.Body.Len() == 0 {
		t.Error("expected non-empty body")
	}
}

func TestRenderHomeWithEmptyData(t *testing.T) {
	r := newRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	html, err := r.Render(req, "home", &PageData{
		Title: "Home",
		Data: map[string]any{
			"banners": nil, "articles": nil,
			"recent": nil, "categories": nil,
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "No articles yet.") {
		t.Error("expected empty state message")
	}
}

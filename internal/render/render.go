// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public blog
// and the admin interface. Pages are rendered into a buffer first so
// template errors surface before any bytes reach the client, and so
// handlers can store the rendered HTML in the page cache.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"embed"

	"weblog/internal/middleware"
	"weblog/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active nav section (e.g. "home", "articles", "contact")
	Session   *session.Data  // Current user session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":      true,
	"register":   true,
	"2fa_setup":  true,
	"2fa_verify": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with the base layout unless
// it is standalone.
func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		// deref safely dereferences a string pointer for use in templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"formatTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		// excerpt truncates plain text for article list previews.
		"excerpt": func(s string, n int) string {
			runes := []rune(s)
			if len(runes) <= n {
				return s
			}
			return strings.TrimSpace(string(runes[:n])) + "…"
		},
		// add and sub support pagination links.
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"activeClass": func(current, target string) string {
			if current == target {
				return "active"
			}
			return ""
		},
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		var parseErr error

		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(funcMap).ParseFS(
				templateFS, "templates/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(funcMap).ParseFS(
				templateFS, "templates/base.html", "templates/"+name,
			)
		}

		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Render executes the named template into a byte slice. Session and CSRF
// token are injected from the request context when not already set.
func (rn *Renderer) Render(r *http.Request, name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	if data.CSRFToken == "" {
		data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	}
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders a full page to the response writer.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	html, err := rn.Render(r, name, data)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

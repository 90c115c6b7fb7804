// Package router sets up all HTTP routes and middleware chains for the
// weblog server. It organizes routes into public, account, and admin
// groups with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"weblog/internal/handlers"
	"weblog/internal/middleware"
	"weblog/internal/session"
	"weblog/web"
)

// Deps carries everything the router needs to wire the route tree.
type Deps struct {
	Sessions *session.Store
	Public   *handlers.Public
	Interact *handlers.Interact
	Auth     *handlers.Auth
	Admin    *handlers.Admin
	Secure   bool // controls the Secure flag on the CSRF cookie

	// AuthLimiter rate-limits credential endpoints (login, register).
	AuthLimiter *middleware.RateLimiter
	// FormLimiter rate-limits public form submissions (contact, comments).
	FormLimiter *middleware.RateLimiter
}

// NewAuthLimiter returns the rate limiter used for credential endpoints.
func NewAuthLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(10, 1*time.Minute)
}

// NewFormLimiter returns the rate limiter used for public form posts.
func NewFormLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(30, 1*time.Minute)
}

// New creates and returns the configured chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	csrf := middleware.NewCSRF(d.Secure)

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(d.Sessions))

	// Health check, no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Public pages. CSRF runs here too so the logout button and the forms
	// rendered into these pages carry a token.
	r.Group(func(r chi.Router) {
		r.Use(csrf)

		r.Get("/", d.Public.Home)
		r.Get("/articles", d.Public.ArticlesList)
		r.Get("/article/{slug}", d.Public.ArticleDetail)
		r.Get("/category/{id}", d.Public.CategoryArticles)
		r.Get("/search", d.Public.Search)

		r.Get("/contact", d.Public.ContactPage)
		r.With(d.FormLimiter.Middleware).Post("/contact", d.Public.ContactSubmit)

		// Account endpoints.
		r.Get("/register", d.Auth.RegisterPage)
		r.With(d.AuthLimiter.Middleware).Post("/register", d.Auth.RegisterSubmit)
		r.Get("/login", d.Auth.LoginPage)
		r.With(d.AuthLimiter.Middleware).Post("/login", d.Auth.LoginSubmit)
		r.Post("/logout", d.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/password/change", d.Auth.PasswordChangePage)
			r.Post("/password/change", d.Auth.PasswordChangeSubmit)

			// Reader interactions on published articles. The like toggle
			// accepts GET as well so plain links work; both paths mutate,
			// so CSRF still applies to the POST.
			r.With(d.FormLimiter.Middleware).Post("/article/{slug}/comment", d.Interact.CommentSubmit)
			r.Get("/article/{slug}/comment", d.Interact.CommentRedirect)
			r.Get("/article/{slug}/like", d.Interact.LikeToggle)
			r.Post("/article/{slug}/like", d.Interact.LikeToggle)
		})
	})

	// Admin routes.
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrf)
		r.Use(middleware.RequireAuth)

		// 2FA enrollment and verification, before Require2FA gates.
		// Admin-only: members never enroll, and setup writes a TOTP
		// secret onto the account.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/2fa/setup", d.Auth.TwoFASetupPage)
			r.Get("/2fa/verify", d.Auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", d.Auth.TwoFAVerifySubmit)
		})

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Require2FA)
			r.Use(middleware.RequireAdmin)

			r.Get("/", d.Admin.Dashboard)

			r.Route("/articles", func(r chi.Router) {
				r.Get("/", d.Admin.ArticlesList)
				r.Get("/new", d.Admin.ArticleNew)
				r.Post("/", d.Admin.ArticleCreate)
				r.Get("/{id}/edit", d.Admin.ArticleEdit)
				r.Post("/{id}", d.Admin.ArticleUpdate)
				r.Post("/{id}/delete", d.Admin.ArticleDelete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", d.Admin.CategoriesPage)
				r.Post("/", d.Admin.CategoryCreate)
				r.Post("/{id}/delete", d.Admin.CategoryDelete)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", d.Admin.CommentsPage)
				r.Post("/{id}/toggle", d.Admin.CommentToggle)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Get("/", d.Admin.MessagesPage)
				r.Post("/{id}/delete", d.Admin.MessageDelete)
			})

			r.Get("/users", d.Admin.UsersPage)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

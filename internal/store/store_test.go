// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"weblog/internal/database"
	"weblog/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "weblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "weblog")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a throwaway member user and registers its removal.
// Comments and likes it owns cascade away with it.
func testUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	suffix := uuid.NewString()[:8]
	u := NewUserStore(db)
	user, err := u.Create("test-"+suffix+"@example.com", "pass1234", "tester-"+suffix, models.RoleMember)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", user.ID) })
	return user
}

// testArticle creates an article owned by a fresh user and registers its
// removal. Pass the status the test needs.
func testArticle(t *testing.T, db *sql.DB, status models.ArticleStatus) *models.Article {
	t.Helper()

	author := testUser(t, db)
	suffix := uuid.NewString()[:8]
	s := NewArticleStore(db)
	article, err := s.Create(&models.Article{
		Title:    "Test Article " + suffix,
		Body:     "body",
		Status:   status,
		AuthorID: author.ID,
	}, nil)
	if err != nil {
		t.Fatalf("create test article: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM articles WHERE id = $1", article.ID) })
	return article
}

// cleanArticles removes test articles by slug. Call in t.Cleanup().
func cleanArticles(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM articles WHERE slug = $1", slug)
	}
}

// cleanCategories removes test categories by title. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM categories WHERE title = $1", title)
	}
}

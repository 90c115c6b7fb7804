package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"weblog/internal/models"
)

// MessageStore persists contact-form submissions for the admin inbox.
type MessageStore struct {
	db *sql.DB
}

// NewMessageStore returns a new MessageStore.
func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

// Create stores a new contact message.
func (s *MessageStore) Create(title, body, email string) (*models.Message, error) {
	m := &models.Message{}
	err := s.db.QueryRow(`
		INSERT INTO messages (title, body, email) VALUES ($1, $2, $3)
		RETURNING id, title, body, email, created_at
	`, title, body, email).Scan(&m.ID, &m.Title, &m.Body, &m.Email, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return m, nil
}

// List returns all messages, most recent first.
func (s *MessageStore) List() ([]models.Message, error) {
	rows, err := s.db.Query(`
		SELECT id, title, body, email, created_at FROM messages ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var items []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Title, &m.Body, &m.Email, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// Delete removes a message from the inbox.
func (s *MessageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// Count returns the total number of messages.
func (s *MessageStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

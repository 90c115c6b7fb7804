package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a contact-form submission, readable from the admin inbox.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

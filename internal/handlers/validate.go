package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation limits for user-submitted fields.
const (
	maxTitleLen       = 300
	maxBodyLen        = 100_000
	maxCommentLen     = 2_000
	maxMessageLen     = 5_000
	maxDisplayNameLen = 100
	maxEmailLen       = 254
	minPasswordLen    = 8
)

// validateComment checks a comment body and returns the first error found.
func validateComment(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return "Comment cannot be empty."
	}
	if utf8.RuneCountInString(body) > maxCommentLen {
		return "Comment is too long (max 2,000 characters)."
	}
	return ""
}

// validateMessage checks contact form inputs and returns the first error found.
func validateMessage(title, email, body string) string {
	if strings.TrimSpace(title) == "" {
		return "Subject is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Subject is too long (max 300 characters)."
	}
	if !validEmail(email) {
		return "A valid email address is required."
	}
	if strings.TrimSpace(body) == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(body) > maxMessageLen {
		return "Message is too long (max 5,000 characters)."
	}
	return ""
}

// validateRegistration checks registration form inputs.
func validateRegistration(displayName, email, password, confirm string) string {
	if strings.TrimSpace(displayName) == "" {
		return "Display name is required."
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameLen {
		return "Display name is too long (max 100 characters)."
	}
	if !validEmail(email) {
		return "A valid email address is required."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	if password != confirm {
		return "Passwords do not match."
	}
	return ""
}

// validateArticle checks article form inputs and returns the first error found.
func validateArticle(title, body string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if strings.TrimSpace(body) == "" {
		return "Body is required."
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Body is too long (max 100,000 characters)."
	}
	return ""
}

// validateCategoryTitle checks a category title.
func validateCategoryTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Category title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Category title is too long (max 300 characters)."
	}
	return ""
}

// validEmail reports whether addr parses as a bare RFC 5322 address.
// The comparison against the parsed form rejects display names and
// surrounding whitespace, so callers get the address exactly as stored.
func validEmail(addr string) bool {
	if addr == "" || utf8.RuneCountInString(addr) > maxEmailLen {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}

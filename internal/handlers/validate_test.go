package handlers

import (
	"strings"
	"testing"
)

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", "Nice article!", false},
		{"empty", "", true},
		{"whitespace only", "   \n\t ", true},
		{"at limit", strings.Repeat("x", maxCommentLen), false},
		{"over limit", strings.Repeat("x", maxCommentLen+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateComment(tt.body)
			if (got != "") != tt.wantErr {
				t.Errorf("validateComment(%q): got %q, wantErr=%v", tt.name, got, tt.wantErr)
			}
		})
	}
}

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		email   string
		body    string
		wantErr bool
	}{
		{"valid", "Hello", "reader@example.com", "A question about your latest post.", false},
		{"missing title", "", "reader@example.com", "body", true},
		{"bad email", "Hello", "not-an-email", "body", true},
		{"missing body", "Hello", "reader@example.com", "", true},
		{"body too long", "Hello", "reader@example.com", strings.Repeat("x", maxMessageLen+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateMessage(tt.title, tt.email, tt.body)
			if (got != "") != tt.wantErr {
				t.Errorf("got %q, wantErr=%v", got, tt.wantErr)
			}
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		email       string
		password    string
		confirm     string
		wantErr     bool
	}{
		{"valid", "Reader", "reader@example.com", "s3cret-pass", "s3cret-pass", false},
		{"missing name", "", "reader@example.com", "s3cret-pass", "s3cret-pass", true},
		{"bad email", "Reader", "reader@", "s3cret-pass", "s3cret-pass", true},
		{"short password", "Reader", "reader@example.com", "short", "short", true},
		{"mismatch", "Reader", "reader@example.com", "s3cret-pass", "different", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateRegistration(tt.displayName, tt.email, tt.password, tt.confirm)
			if (got != "") != tt.wantErr {
				t.Errorf("got %q, wantErr=%v", got, tt.wantErr)
			}
		})
	}
}

func TestValidateArticle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		body    string
		wantErr bool
	}{
		{"valid", "A Title", "Some body text.", false},
		{"missing title", "", "Some body text.", true},
		{"missing body", "A Title", "", true},
		{"title too long", strings.Repeat("x", maxTitleLen+1), "body", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateArticle(tt.title, tt.body)
			if (got != "") != tt.wantErr {
				t.Errorf("got %q, wantErr=%v", got, tt.wantErr)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.com"}
	invalid := []string{"", "no-at-sign", "Name <a@b.co>", "a@b.co ", strings.Repeat("x", maxEmailLen) + "@example.com"}

	for _, addr := range valid {
		if !validEmail(addr) {
			t.Errorf("validEmail(%q) = false, want true", addr)
		}
	}
	for _, addr := range invalid {
		if validEmail(addr) {
			t.Errorf("validEmail(%q) = true, want false", addr)
		}
	}
}

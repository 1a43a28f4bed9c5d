package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernamePattern(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"leo_tolstoy", true},
		{"leo.tolstoy", true},
		{"leo+tolstoy", true},
		{"leo@yasnaya", true},
		{"leo-tolstoy", true},
		{"Author1877", true},
		{"leo tolstoy", false},
		{"leo/tolstoy", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			assert.Equal(t, tt.valid, CompiledPatterns.Username.MatchString(tt.username))
		})
	}
}

func TestSlugPattern(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"classic-prose", true},
		{"poetry_2024", true},
		{"Essays", true},
		{"classic prose", false},
		{"prose/classic", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.valid, CompiledPatterns.Slug.MatchString(tt.slug))
		})
	}
}

func TestEmailPattern(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"leo@yasnaya.ru", true},
		{"leo.tolstoy+drafts@example.com", true},
		{"no-at-sign.example.com", false},
		{"leo@", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, CompiledPatterns.Email.MatchString(tt.email))
		})
	}
}


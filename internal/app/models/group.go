package models

import "time"

// Group represents a named category that posts may belong to
type Group struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"` // Unique, stable, used in /group/<slug>/ URLs
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Posts []*Post `json:"posts,omitempty"`
}

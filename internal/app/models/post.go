package models

import "time"

// Post represents a published post in the database. Listings order posts
// newest first (pub_date DESC, id DESC).
type Post struct {
	ID        int64     `db:"id" json:"id"`
	Text      string    `db:"text" json:"text"`
	PubDate   time.Time `db:"pub_date" json:"pubDate"`
	AuthorID  int64     `db:"author_id" json:"authorId"` // Immutable after creation
	GroupID   *int64    `db:"group_id" json:"groupId,omitempty"`
	ImageURL  *string   `db:"image_url" json:"imageUrl,omitempty"` // Served under /media/
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Related entities
	Author   *User      `json:"author,omitempty"`
	Group    *Group     `json:"group,omitempty"`
	Comments []*Comment `json:"comments,omitempty"`
}

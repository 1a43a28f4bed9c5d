package models

import "time"

// Comment represents a comment on a post, ordered oldest first
type Comment struct {
	ID       int64     `db:"id" json:"id"`
	PostID   int64     `db:"post_id" json:"postId"`
	AuthorID int64     `db:"author_id" json:"authorId"`
	Text     string    `db:"text" json:"text"`
	Created  time.Time `db:"created" json:"created"`

	// Related entities
	Author *User `json:"author,omitempty"`
}

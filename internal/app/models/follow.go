package models

import "time"

// Follow represents a directional subscription: the follower sees the
// author's posts in their feed. The (follower_id, author_id) pair is unique
// and a user never follows themselves.
type Follow struct {
	ID         int64     `db:"id" json:"id"`
	FollowerID int64     `db:"follower_id" json:"followerId"`
	AuthorID   int64     `db:"author_id" json:"authorId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`

	// Related entities
	Follower *User `json:"follower,omitempty"`
	Author   *User `json:"author,omitempty"`
}

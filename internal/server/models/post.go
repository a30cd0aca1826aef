package models

import "time"

// Post is a user-authored post. AuthorID references users.id without a
// cascading delete.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	AuthorID    string    `json:"authorId"`
}

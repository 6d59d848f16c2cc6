package domain

import "time"

// ReactionType is the verdict an account gives a blog.
type ReactionType string

const (
	ReactionYummy ReactionType = "yummy"
	ReactionYucky ReactionType = "yucky"
)

// Reaction is unique per (blog, username); a new submission overwrites the old one.
type Reaction struct {
	ID        string       `json:"_id"`
	Type      ReactionType `json:"type"`
	Blog      string       `json:"blog"`
	Username  string       `json:"username"`
	Timestamp time.Time    `json:"timestamp"`
}

package domain

import "time"

// Blog is a post written by a blogger about a restaurant.
type Blog struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Restaurant string    `json:"restaurant"`
	Blogger    string    `json:"blogger"`
	Timestamp  time.Time `json:"timestamp"`
	CoverImage string    `json:"coverImage,omitempty"`
}

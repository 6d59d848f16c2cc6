package domain

import "time"

const (
	MinStars = 1
	MaxStars = 5
)

// Rating is unique per (restaurant, blogger); a new submission overwrites the old one.
type Rating struct {
	ID         string    `json:"_id"`
	Stars      int       `json:"stars"`
	Restaurant string    `json:"restaurant"`
	Blogger    string    `json:"blogger"`
	Timestamp  time.Time `json:"timestamp"`
}

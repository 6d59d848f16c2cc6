package domain

import "time"

// Comment is free text left on a blog by any account.
type Comment struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Blog      string    `json:"blog"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// Package notes implements the notes service: per-user note storage with
// full CRUD. Every mutation publishes a note event for the analytics service.
package notes

import "time"

// Note is a stored note. Notes are strictly owner-scoped: a user can never
// read or modify another user's notes.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

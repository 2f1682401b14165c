// Package models defines the client-side view of the wire shapes returned by
// the identity, notes and analytics services. All of these are derived state:
// snapshots of a service response, fully replaced on every refresh and never
// mutated locally.
package models

import "time"

// User is the identity resolved from the bearer token via the identity
// service.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Note as owned by the notes service.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersonalStatistics is the per-user analytics snapshot. The nullable
// timestamps are absent until the analytics service has seen a matching
// event.
type PersonalStatistics struct {
	UserID            int64      `json:"user_id"`
	TotalNotes        int64      `json:"total_notes"`
	TotalNotesCreated int64      `json:"total_notes_created"`
	TotalNotesUpdated int64      `json:"total_notes_updated"`
	TotalNotesDeleted int64      `json:"total_notes_deleted"`
	TotalLogins       int64      `json:"total_logins"`
	LastActivity      *time.Time `json:"last_activity"`
	LastLogin         *time.Time `json:"last_login"`
	RegisteredAt      *time.Time `json:"registered_at"`
}

// SystemStatistics is the global analytics snapshot, independent of any
// identity.
type SystemStatistics struct {
	TotalUsers        int64 `json:"total_users"`
	TotalNotesCreated int64 `json:"total_notes_created"`
	TotalNotesUpdated int64 `json:"total_notes_updated"`
	TotalNotesDeleted int64 `json:"total_notes_deleted"`
	TotalLogins       int64 `json:"total_logins"`
	ActiveUsersToday  int64 `json:"active_users_today"`
}

// ActivityEvent is one entry of the recent note activity feed,
// most-recent-first as returned by the analytics service.
type ActivityEvent struct {
	ID        int64     `json:"id"`
	EventType string    `json:"event_type"`
	NoteID    int64     `json:"note_id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

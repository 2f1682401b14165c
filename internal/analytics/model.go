// Package analytics implements the analytics service. It consumes the user
// and note event channels, maintains per-user aggregates and raw event
// history, and serves them over HTTP. It never talks to the other services
// directly: events are its only input.
package analytics

import "time"

// UserStatistics is the per-user aggregate row, keyed by user id. A user
// without a row reads as all-zero.
//
// TotalNotes can go negative if deletion events arrive for notes whose
// creation was never observed.
type UserStatistics struct {
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

// SystemStatistics is the global aggregate over all user rows.
type SystemStatistics struct {
	TotalUsers        int64 `json:"total_users"`
	TotalNotesCreated int64 `json:"total_notes_created"`
	TotalNotesUpdated int64 `json:"total_notes_updated"`
	TotalNotesDeleted int64 `json:"total_notes_deleted"`
	TotalLogins       int64 `json:"total_logins"`
	ActiveUsersToday  int64 `json:"active_users_today"`
}

// NoteEventRow is one stored note event.
type NoteEventRow struct {
	ID        int64     `json:"id"`
	EventType string    `json:"event_type"`
	NoteID    int64     `json:"note_id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// UserEventRow is one stored user event.
type UserEventRow struct {
	ID        int64     `json:"id"`
	EventType string    `json:"event_type"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

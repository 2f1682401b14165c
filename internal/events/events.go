// Package events defines the event shapes exchanged between the noteboard
// services and the bus that carries them. The identity and notes services
// publish fire-and-forget events; the analytics service is the only consumer.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Channel names. Fanout: every subscriber of a channel sees every event.
const (
	UsersChannel = "users.events"
	NotesChannel = "notes.events"
)

// Event type discriminators.
const (
	TypeUserRegistered = "user.registered"
	TypeUserLoggedIn   = "user.logged_in"
	TypeNoteCreated    = "note.created"
	TypeNoteUpdated    = "note.updated"
	TypeNoteDeleted    = "note.deleted"
)

// UserEvent is published on UsersChannel when an account is created or a
// user logs in.
type UserEvent struct {
	ID        string    `json:"id"`
	EventType string    `json:"event_type"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NoteEvent is published on NotesChannel for every note mutation.
// Title is empty for deletions.
type NoteEvent struct {
	ID        string    `json:"id"`
	EventType string    `json:"event_type"`
	NoteID    int64     `json:"note_id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewUserRegistered(userID int64, username, email string) UserEvent {
	return UserEvent{
		ID:        uuid.NewString(),
		EventType: TypeUserRegistered,
		UserID:    userID,
		Username:  username,
		Email:     email,
		Timestamp: time.Now().UTC(),
	}
}

func NewUserLoggedIn(userID int64, username string) UserEvent {
	return UserEvent{
		ID:        uuid.NewString(),
		EventType: TypeUserLoggedIn,
		UserID:    userID,
		Username:  username,
		Timestamp: time.Now().UTC(),
	}
}

func NewNoteCreated(noteID, userID int64, title string) NoteEvent {
	return NoteEvent{
		ID:        uuid.NewString(),
		EventType: TypeNoteCreated,
		NoteID:    noteID,
		UserID:    userID,
		Title:     title,
		Timestamp: time.Now().UTC(),
	}
}

func NewNoteUpdated(noteID, userID int64, title string) NoteEvent {
	return NoteEvent{
		ID:        uuid.NewString(),
		EventType: TypeNoteUpdated,
		NoteID:    noteID,
		UserID:    userID,
		Title:     title,
		Timestamp: time.Now().UTC(),
	}
}

func NewNoteDeleted(noteID, userID int64) NoteEvent {
	return NoteEvent{
		ID:        uuid.NewString(),
		EventType: TypeNoteDeleted,
		NoteID:    noteID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}

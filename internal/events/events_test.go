package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoteEvent_WireShape(t *testing.T) {
	ev := NewNoteCreated(5, 42, "Groceries")

	require.Equal(t, TypeNoteCreated, ev.EventType)
	require.NotEmpty(t, ev.ID)
	require.False(t, ev.Timestamp.IsZero())

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	require.Equal(t, "note.created", m["event_type"])
	require.Equal(t, float64(5), m["note_id"])
	require.Equal(t, float64(42), m["user_id"])
	require.Equal(t, "Groceries", m["title"])
}

func TestNoteDeleted_OmitsTitle(t *testing.T) {
	raw, err := json.Marshal(NewNoteDeleted(5, 42))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	require.Equal(t, "note.deleted", m["event_type"])
	require.NotContains(t, m, "title")
}

func TestUserEvents_Types(t *testing.T) {
	reg := NewUserRegistered(1, "alice", "a@x.com")
	require.Equal(t, TypeUserRegistered, reg.EventType)
	require.Equal(t, "a@x.com", reg.Email)

	login := NewUserLoggedIn(1, "alice")
	require.Equal(t, TypeUserLoggedIn, login.EventType)
	require.Empty(t, login.Email)
}

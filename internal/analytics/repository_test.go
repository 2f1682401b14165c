package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noteboard/noteboard/internal/common"
)

func TestPostgresRepositoryInsertNoteEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Now()
	mock.ExpectQuery("INSERT INTO note_events").
		WithArgs("note.created", int64(10), int64(1), "title", ts).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	repo := NewPostgresRepository(db)
	ev := &NoteEventRow{EventType: "note.created", NoteID: 10, UserID: 1, Title: "title", Timestamp: ts}

	require.NoError(t, repo.InsertNoteEvent(context.Background(), ev))
	require.Equal(t, int64(5), ev.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryInsertUserEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Now()
	mock.ExpectQuery("INSERT INTO user_events").
		WithArgs("user.registered", int64(1), "alice", "alice@example.com", ts).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	repo := NewPostgresRepository(db)
	ev := &UserEventRow{EventType: "user.registered", UserID: 1, Username: "alice", Email: "alice@example.com", Timestamp: ts}

	require.NoError(t, repo.InsertUserEvent(context.Background(), ev))
	require.Equal(t, int64(3), ev.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetStatistics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Now()
	rows := sqlmock.NewRows([]string{
		"user_id", "total_notes", "total_notes_created", "total_notes_updated",
		"total_notes_deleted", "total_logins", "last_activity", "last_login", "registered_at",
	}).AddRow(int64(1), int64(2), int64(3), int64(1), int64(1), int64(4), ts, ts, nil)

	mock.ExpectQuery("SELECT user_id, total_notes").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	stats, err := repo.GetStatistics(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalNotes)
	require.Equal(t, int64(4), stats.TotalLogins)
	require.NotNil(t, stats.LastLogin)
	require.Nil(t, stats.RegisteredAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetStatisticsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, total_notes").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"user_id", "total_notes", "total_notes_created", "total_notes_updated",
			"total_notes_deleted", "total_logins", "last_activity", "last_login", "registered_at",
		}))

	repo := NewPostgresRepository(db)
	_, err = repo.GetStatistics(context.Background(), 9)

	require.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositorySaveStatistics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Now()
	mock.ExpectExec("INSERT INTO user_statistics").
		WithArgs(int64(1), int64(2), int64(3), int64(1), int64(1), int64(4),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	err = repo.SaveStatistics(context.Background(), &UserStatistics{
		UserID: 1, TotalNotes: 2, TotalNotesCreated: 3, TotalNotesUpdated: 1,
		TotalNotesDeleted: 1, TotalLogins: 4, LastActivity: &ts,
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryListNoteEvents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Now()
	rows := sqlmock.NewRows([]string{"id", "event_type", "note_id", "user_id", "title", "timestamp"}).
		AddRow(int64(2), "note.updated", int64(10), int64(1), "t2", ts).
		AddRow(int64(1), "note.created", int64(10), int64(1), "t1", ts.Add(-time.Minute))

	mock.ExpectQuery("SELECT id, event_type, note_id").
		WithArgs(int64(1), 50).
		WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	events, err := repo.ListNoteEvents(context.Background(), 1, 50)

	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "note.updated", events[0].EventType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositorySystemStatistics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"count", "created", "updated", "deleted", "logins", "active"}).
		AddRow(int64(10), int64(25), int64(5), int64(3), int64(40), int64(2))

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	stats, err := repo.SystemStatistics(context.Background())

	require.NoError(t, err)
	require.Equal(t, int64(10), stats.TotalUsers)
	require.Equal(t, int64(25), stats.TotalNotesCreated)
	require.Equal(t, int64(2), stats.ActiveUsersToday)
	require.NoError(t, mock.ExpectationsWereMet())
}

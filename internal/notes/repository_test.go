package notes

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noteboard/noteboard/internal/common"
)

func TestPostgresRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("INSERT INTO notes").
		WithArgs("title", "content", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

	repo := NewPostgresRepository(db)
	note, err := repo.Create(context.Background(), &Note{Title: "title", Content: "content", UserID: 1})

	require.NoError(t, err)
	require.Equal(t, int64(10), note.ID)
	require.Equal(t, now, note.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetByIDScopedToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, title, content, user_id, created_at, updated_at FROM notes").
		WithArgs(int64(10), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "user_id", "created_at", "updated_at"}))

	repo := NewPostgresRepository(db)
	_, err = repo.GetByID(context.Background(), 10, 2)

	require.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "content", "user_id", "created_at", "updated_at"}).
		AddRow(int64(1), "a", "x", int64(1), now, now).
		AddRow(int64(2), "b", "y", int64(1), now, now)

	mock.ExpectQuery("SELECT id, title, content, user_id, created_at, updated_at FROM notes").
		WithArgs(int64(1), 0, 100).
		WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	notes, err := repo.List(context.Background(), 1, 0, 100)

	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "b", notes[1].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("UPDATE notes SET").
		WithArgs("new", "body", int64(10), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	repo := NewPostgresRepository(db)
	note, err := repo.Update(context.Background(), &Note{ID: 10, UserID: 1, Title: "new", Content: "body"})

	require.NoError(t, err)
	require.Equal(t, now, note.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryUpdateNotOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE notes SET").
		WithArgs("new", "body", int64(10), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	repo := NewPostgresRepository(db)
	_, err = repo.Update(context.Background(), &Note{ID: 10, UserID: 2, Title: "new", Content: "body"})

	require.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM notes").
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.Delete(context.Background(), 10, 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM notes").
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	require.ErrorIs(t, repo.Delete(context.Background(), 10, 1), common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

package analytics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/noteboard/noteboard/internal/common"
	"github.com/noteboard/noteboard/internal/dbx"
)

// Repository is the storage contract for the analytics database.
type Repository interface {
	InsertUserEvent(ctx context.Context, ev *UserEventRow) error
	InsertNoteEvent(ctx context.Context, ev *NoteEventRow) error
	GetStatistics(ctx context.Context, userID int64) (*UserStatistics, error)
	SaveStatistics(ctx context.Context, stats *UserStatistics) error
	ListNoteEvents(ctx context.Context, userID int64, limit int) ([]NoteEventRow, error)
	ListUserEvents(ctx context.Context, userID int64, limit int) ([]UserEventRow, error)
	SystemStatistics(ctx context.Context) (*SystemStatistics, error)
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) InsertUserEvent(ctx context.Context, ev *UserEventRow) error {

	query :=
		`INSERT INTO user_events (event_type, user_id, username, email, timestamp)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		ev.EventType, ev.UserID, ev.Username, ev.Email, ev.Timestamp).Scan(&ev.ID)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) InsertNoteEvent(ctx context.Context, ev *NoteEventRow) error {

	query :=
		`INSERT INTO note_events (event_type, note_id, user_id, title, timestamp)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		ev.EventType, ev.NoteID, ev.UserID, ev.Title, ev.Timestamp).Scan(&ev.ID)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetStatistics(ctx context.Context, userID int64) (*UserStatistics, error) {
	query :=
		`SELECT user_id, total_notes, total_notes_created, total_notes_updated,
		        total_notes_deleted, total_logins, last_activity, last_login, registered_at
		 FROM user_statistics
		 WHERE user_id = $1
		 `

	stats := &UserStatistics{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.UserID, &stats.TotalNotes, &stats.TotalNotesCreated, &stats.TotalNotesUpdated,
		&stats.TotalNotesDeleted, &stats.TotalLogins, &stats.LastActivity, &stats.LastLogin,
		&stats.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return stats, nil
}

func (r *PostgresRepository) SaveStatistics(ctx context.Context, stats *UserStatistics) error {

	query :=
		`INSERT INTO user_statistics
		     (user_id, total_notes, total_notes_created, total_notes_updated,
		      total_notes_deleted, total_logins, last_activity, last_login, registered_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
		     total_notes = EXCLUDED.total_notes,
		     total_notes_created = EXCLUDED.total_notes_created,
		     total_notes_updated = EXCLUDED.total_notes_updated,
		     total_notes_deleted = EXCLUDED.total_notes_deleted,
		     total_logins = EXCLUDED.total_logins,
		     last_activity = EXCLUDED.last_activity,
		     last_login = EXCLUDED.last_login,
		     registered_at = EXCLUDED.registered_at,
		     updated_at = now()
		 `

	_, err := r.db.ExecContext(ctx, query,
		stats.UserID, stats.TotalNotes, stats.TotalNotesCreated, stats.TotalNotesUpdated,
		stats.TotalNotesDeleted, stats.TotalLogins, stats.LastActivity, stats.LastLogin,
		stats.RegisteredAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListNoteEvents(ctx context.Context, userID int64, limit int) ([]NoteEventRow, error) {
	query :=
		`SELECT id, event_type, note_id, user_id, COALESCE(title, ''), timestamp
		 FROM note_events
		 WHERE user_id = $1
		 ORDER BY timestamp DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	events := make([]NoteEventRow, 0)
	for rows.Next() {
		var ev NoteEventRow
		if err := rows.Scan(&ev.ID, &ev.EventType, &ev.NoteID, &ev.UserID, &ev.Title, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return events, nil
}

func (r *PostgresRepository) ListUserEvents(ctx context.Context, userID int64, limit int) ([]UserEventRow, error) {
	query :=
		`SELECT id, event_type, user_id, username, COALESCE(email, ''), timestamp
		 FROM user_events
		 WHERE user_id = $1
		 ORDER BY timestamp DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	events := make([]UserEventRow, 0)
	for rows.Next() {
		var ev UserEventRow
		if err := rows.Scan(&ev.ID, &ev.EventType, &ev.UserID, &ev.Username, &ev.Email, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return events, nil
}

func (r *PostgresRepository) SystemStatistics(ctx context.Context) (*SystemStatistics, error) {
	query :=
		`SELECT COUNT(user_id),
		        COALESCE(SUM(total_notes_created), 0),
		        COALESCE(SUM(total_notes_updated), 0),
		        COALESCE(SUM(total_notes_deleted), 0),
		        COALESCE(SUM(total_logins), 0),
		        COUNT(user_id) FILTER (WHERE last_activity::date = now()::date)
		 FROM user_statistics
		 `

	stats := &SystemStatistics{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalNotesCreated, &stats.TotalNotesUpdated,
		&stats.TotalNotesDeleted, &stats.TotalLogins, &stats.ActiveUsersToday)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return stats, nil
}

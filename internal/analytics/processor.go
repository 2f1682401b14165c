package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/noteboard/noteboard/internal/common"
	"github.com/noteboard/noteboard/internal/dbx"
	"github.com/noteboard/noteboard/internal/events"
	"github.com/noteboard/noteboard/internal/logging"
)

// Processor consumes raw event payloads and folds them into the analytics
// database. Each event is stored and applied to the owner's aggregate row
// inside one transaction.
type Processor struct {
	db     *sql.DB
	logger logging.Logger
}

func NewProcessor(db *sql.DB, logger logging.Logger) *Processor {
	return &Processor{db: db, logger: logger}
}

// HandleUserEvent processes one payload from the users channel.
func (p *Processor) HandleUserEvent(ctx context.Context, payload []byte) error {
	var ev events.UserEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("decode user event: %w", err)
	}

	err := dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return p.processUserEvent(ctx, NewPostgresRepository(tx), ev)
	})
	if err != nil {
		return err
	}

	p.logger.Info(ctx, "processed user event", "event_type", ev.EventType, "user_id", ev.UserID)
	return nil
}

// HandleNoteEvent processes one payload from the notes channel.
func (p *Processor) HandleNoteEvent(ctx context.Context, payload []byte) error {
	var ev events.NoteEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("decode note event: %w", err)
	}

	err := dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return p.processNoteEvent(ctx, NewPostgresRepository(tx), ev)
	})
	if err != nil {
		return err
	}

	p.logger.Info(ctx, "processed note event", "event_type", ev.EventType, "note_id", ev.NoteID)
	return nil
}

func (p *Processor) processUserEvent(ctx context.Context, repo Repository, ev events.UserEvent) error {

	if err := repo.InsertUserEvent(ctx, &UserEventRow{
		EventType: ev.EventType,
		UserID:    ev.UserID,
		Username:  ev.Username,
		Email:     ev.Email,
		Timestamp: ev.Timestamp,
	}); err != nil {
		return err
	}

	stats, err := loadOrInitStatistics(ctx, repo, ev.UserID)
	if err != nil {
		return err
	}

	applyUserEvent(stats, ev)

	return repo.SaveStatistics(ctx, stats)
}

func (p *Processor) processNoteEvent(ctx context.Context, repo Repository, ev events.NoteEvent) error {

	if err := repo.InsertNoteEvent(ctx, &NoteEventRow{
		EventType: ev.EventType,
		NoteID:    ev.NoteID,
		UserID:    ev.UserID,
		Title:     ev.Title,
		Timestamp: ev.Timestamp,
	}); err != nil {
		return err
	}

	stats, err := loadOrInitStatistics(ctx, repo, ev.UserID)
	if err != nil {
		return err
	}

	applyNoteEvent(stats, ev)

	return repo.SaveStatistics(ctx, stats)
}

func loadOrInitStatistics(ctx context.Context, repo Repository, userID int64) (*UserStatistics, error) {
	stats, err := repo.GetStatistics(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &UserStatistics{UserID: userID}, nil
		}
		return nil, err
	}
	return stats, nil
}

func applyUserEvent(stats *UserStatistics, ev events.UserEvent) {
	ts := ev.Timestamp

	switch ev.EventType {
	case events.TypeUserRegistered:
		stats.RegisteredAt = &ts
	case events.TypeUserLoggedIn:
		stats.TotalLogins++
		stats.LastLogin = &ts
	}

	stats.LastActivity = &ts
}

func applyNoteEvent(stats *UserStatistics, ev events.NoteEvent) {
	ts := ev.Timestamp

	switch ev.EventType {
	case events.TypeNoteCreated:
		stats.TotalNotes++
		stats.TotalNotesCreated++
	case events.TypeNoteUpdated:
		stats.TotalNotesUpdated++
	case events.TypeNoteDeleted:
		stats.TotalNotes--
		stats.TotalNotesDeleted++
	}

	stats.LastActivity = &ts
}

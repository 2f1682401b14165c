package notes

import (
	"context"

	"github.com/noteboard/noteboard/internal/events"
	"github.com/noteboard/noteboard/internal/logging"
)

// EventPublisher is the slice of the event bus the service uses.
// Publishing is best-effort: a bus failure never fails the request.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, v any) error
}

// Service implements the note operations behind the HTTP handlers.
type Service struct {
	repo   Repository
	bus    EventPublisher
	logger logging.Logger
}

func NewService(repo Repository, bus EventPublisher, logger logging.Logger) *Service {
	return &Service{repo: repo, bus: bus, logger: logger}
}

func (s *Service) publish(ctx context.Context, ev events.NoteEvent) {
	if err := s.bus.Publish(ctx, events.NotesChannel, ev); err != nil {
		s.logger.Warn(ctx, "failed to publish note event",
			"event_type", ev.EventType, "note_id", ev.NoteID, "error", err.Error())
	}
}

// Create stores a new note for userID.
func (s *Service) Create(ctx context.Context, userID int64, title, content string) (*Note, error) {
	note, err := s.repo.Create(ctx, &Note{Title: title, Content: content, UserID: userID})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewNoteCreated(note.ID, note.UserID, note.Title))

	return note, nil
}

// Get returns one of userID's notes.
func (s *Service) Get(ctx context.Context, id, userID int64) (*Note, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// List returns a page of userID's notes.
func (s *Service) List(ctx context.Context, userID int64, skip, limit int) ([]Note, error) {
	return s.repo.List(ctx, userID, skip, limit)
}

// Update changes the fields of one of userID's notes that are non-nil in
// the request. A nil title or content leaves the stored value untouched.
func (s *Service) Update(ctx context.Context, id, userID int64, title, content *string) (*Note, error) {
	note, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		note.Title = *title
	}
	if content != nil {
		note.Content = *content
	}

	note, err = s.repo.Update(ctx, note)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewNoteUpdated(note.ID, note.UserID, note.Title))

	return note, nil
}

// Delete removes one of userID's notes. The deletion event is published
// before the row is removed.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	note, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	s.publish(ctx, events.NewNoteDeleted(note.ID, userID))

	return s.repo.Delete(ctx, id, userID)
}

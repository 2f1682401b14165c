// Package orchestrator owns all client application state and sequences the
// calls to the three backend services. The view layer renders whatever the
// orchestrator currently holds and feeds user intents back into it.
//
// Consistency policy: the three backends are independently owned and share no
// transaction boundary, so after every server-confirmed mutation the
// orchestrator re-reads everything relevant (notes, both statistics panels,
// the activity feed) instead of patching local state.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/noteboard/noteboard/internal/client/models"
	"github.com/noteboard/noteboard/internal/common"
	"github.com/noteboard/noteboard/internal/logging"
)

// recentEventsLimit bounds the activity feed to the latest entries.
const recentEventsLimit = 10

// IdentityGateway is the slice of the identity service the orchestrator uses.
type IdentityGateway interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, email, password string) error
	CurrentIdentity(ctx context.Context, token string) (*models.User, error)
}

// NotesGateway is the slice of the notes service the orchestrator uses.
type NotesGateway interface {
	List(ctx context.Context, token string) ([]models.Note, error)
	Create(ctx context.Context, token, title, content string) (*models.Note, error)
	Update(ctx context.Context, token string, id int64, title, content string) (*models.Note, error)
	Delete(ctx context.Context, token string, id int64) error
}

// AnalyticsGateway is the slice of the analytics service the orchestrator
// uses. All of it is best-effort.
type AnalyticsGateway interface {
	PersonalStatistics(ctx context.Context, token string) (*models.PersonalStatistics, error)
	SystemStatistics(ctx context.Context) (*models.SystemStatistics, error)
	RecentNoteEvents(ctx context.Context, token string, userID int64, limit int) ([]models.ActivityEvent, error)
}

// SessionStore persists the bearer token across restarts.
type SessionStore interface {
	Load() (string, error)
	Set(token string) error
	Clear() error
}

// State is the session state derived from token/identity presence.
type State string

const (
	// StateAnonymous: no token held.
	StateAnonymous State = "anonymous"
	// StateAuthenticating: token held, identity not yet resolved.
	StateAuthenticating State = "authenticating"
	// StateAuthenticated: token held and identity resolved.
	StateAuthenticated State = "authenticated"
)

// Deps carries the orchestrator's constructor-injected collaborators.
// Confirm is the blocking yes/no prompt used to guard note deletion; a nil
// Confirm declines every deletion.
type Deps struct {
	Identity  IdentityGateway
	Notes     NotesGateway
	Analytics AnalyticsGateway
	Sessions  SessionStore
	Logger    logging.Logger
	Confirm   func(prompt string) bool
}

// Orchestrator sequences gateway calls and holds every piece of derived
// application state.
//
// It is not safe for concurrent use: intents are expected to be serialized by
// the caller (the REPL loop), each running to completion, chained re-fetches
// included, before the next is issued. In-flight requests are never cancelled
// when the session changes; a late response for an old identity may land and
// is accepted as-is.
type Orchestrator struct {
	identity  IdentityGateway
	notes     NotesGateway
	analytics AnalyticsGateway
	sessions  SessionStore
	logger    logging.Logger
	confirm   func(prompt string) bool

	token     string
	user      *models.User
	noteList  []models.Note
	personal  *models.PersonalStatistics
	system    *models.SystemStatistics
	events    []models.ActivityEvent
	editingID int64
	loading   bool
	errMsg    string
}

// New builds an Orchestrator in the Anonymous state.
func New(d Deps) *Orchestrator {
	return &Orchestrator{
		identity:  d.Identity,
		notes:     d.Notes,
		analytics: d.Analytics,
		sessions:  d.Sessions,
		logger:    d.Logger,
		confirm:   d.Confirm,
	}
}

// State derives the session state from what is currently held.
func (o *Orchestrator) State() State {
	switch {
	case o.token == "":
		return StateAnonymous
	case o.user == nil:
		return StateAuthenticating
	default:
		return StateAuthenticated
	}
}

// Startup loads a previously persisted token and, when one exists, resolves
// the session from it. Called once at process start. A stale persisted token
// resolves to a clean Anonymous state, not an error surfaced to the user.
func (o *Orchestrator) Startup(ctx context.Context) error {
	tok, err := o.sessions.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if tok == "" {
		return nil
	}
	o.token = tok
	if err := o.resolveSession(ctx); err != nil {
		o.logger.Warn(ctx, "stored session rejected", "error", err.Error())
	}
	return nil
}

// Login exchanges credentials for a token, persists it, and resolves the new
// session. On authentication failure the state stays Anonymous and the error
// slot is set. The password is never stored.
func (o *Orchestrator) Login(ctx context.Context, username, password string) error {
	o.errMsg = ""

	tok, err := o.identity.Login(ctx, username, password)
	if err != nil {
		o.errMsg = "Login failed"
		o.logger.Warn(ctx, "login rejected", "username", username, "error", err.Error())
		return fmt.Errorf("%w: %v", common.ErrAuthenticationFailed, err)
	}

	o.token = tok
	if err := o.sessions.Set(tok); err != nil {
		// The in-memory session is still valid; only the reload path suffers.
		o.logger.Warn(ctx, "failed to persist session", "error", err.Error())
	}

	return o.resolveSession(ctx)
}

// Register creates the account and then chains Login with the same
// credentials; registration never yields its own session. When registration
// succeeds but the chained login fails, the surfaced error is the login one.
func (o *Orchestrator) Register(ctx context.Context, username, email, password string) error {
	o.errMsg = ""

	if err := o.identity.Register(ctx, username, email, password); err != nil {
		o.errMsg = "Registration failed"
		o.logger.Warn(ctx, "registration rejected", "username", username, "error", err.Error())
		return fmt.Errorf("%w: %v", common.ErrRegistrationFailed, err)
	}

	return o.Login(ctx, username, password)
}

// resolveSession turns a freshly-set token into a full Authenticated state:
// resolve identity, then refresh every panel. An identity-resolution failure
// means the token is invalid or expired, so the whole session is silently
// reset rather than retried.
func (o *Orchestrator) resolveSession(ctx context.Context) error {
	user, err := o.identity.CurrentIdentity(ctx, o.token)
	if err != nil {
		o.logger.Warn(ctx, "identity resolution failed, resetting session", "error", err.Error())
		o.Logout(ctx)
		return fmt.Errorf("%w: %v", common.ErrSessionExpired, err)
	}

	o.user = user
	o.refreshAll(ctx)
	return nil
}

// refreshAll re-reads notes, both statistics panels and the activity feed.
// The loading flag stays up until all four finish. Only the notes list
// failure reaches the user-visible error slot; the statistics panels and the
// feed are best-effort and keep their previous (possibly stale) snapshot.
func (o *Orchestrator) refreshAll(ctx context.Context) {
	o.loading = true
	defer func() { o.loading = false }()

	notes, err := o.notes.List(ctx, o.token)
	if err != nil {
		o.errMsg = "Failed to fetch notes"
		o.logger.Error(ctx, "notes fetch failed", "error", err.Error())
	} else {
		o.noteList = notes
	}

	personal, err := o.analytics.PersonalStatistics(ctx, o.token)
	if err != nil {
		o.logger.Warn(ctx, "personal statistics fetch failed", "error", err.Error())
	} else {
		o.personal = personal
	}

	system, err := o.analytics.SystemStatistics(ctx)
	if err != nil {
		o.logger.Warn(ctx, "system statistics fetch failed", "error", err.Error())
	} else {
		o.system = system
	}

	// Gated on resolved identity, not on token presence: the call needs the
	// numeric user id.
	if o.user != nil {
		evs, err := o.analytics.RecentNoteEvents(ctx, o.token, o.user.ID, recentEventsLimit)
		if err != nil {
			o.logger.Warn(ctx, "note events fetch failed", "error", err.Error())
		} else {
			o.events = evs
		}
	}
}

// Logout clears the persisted token, the identity, the notes collection and
// the personal statistics. System statistics and the activity feed are left
// to go stale. Calling Logout while already Anonymous is a no-op.
func (o *Orchestrator) Logout(ctx context.Context) {
	if err := o.sessions.Clear(); err != nil {
		o.logger.Warn(ctx, "failed to clear persisted session", "error", err.Error())
	}
	o.token = ""
	o.user = nil
	o.noteList = nil
	o.personal = nil
	o.editingID = 0
}

// CreateNote stores a new note and re-reads every panel before returning.
func (o *Orchestrator) CreateNote(ctx context.Context, title, content string) error {
	if o.token == "" {
		return common.ErrUnauthorized
	}
	if title == "" || content == "" {
		o.errMsg = "Title and content are required"
		return fmt.Errorf("%w: empty title or content", common.ErrMutationFailed)
	}
	o.errMsg = ""

	if _, err := o.notes.Create(ctx, o.token, title, content); err != nil {
		o.errMsg = "Failed to create note"
		o.logger.Error(ctx, "note create failed", "error", err.Error())
		return fmt.Errorf("%w: %v", common.ErrMutationFailed, err)
	}

	o.refreshAll(ctx)
	return nil
}

// UpdateNote rewrites an existing note. The editing selection is cleared on
// success only, so a failed save keeps the form populated.
func (o *Orchestrator) UpdateNote(ctx context.Context, id int64, title, content string) error {
	if o.token == "" {
		return common.ErrUnauthorized
	}
	if title == "" || content == "" {
		o.errMsg = "Title and content are required"
		return fmt.Errorf("%w: empty title or content", common.ErrMutationFailed)
	}
	o.errMsg = ""

	if _, err := o.notes.Update(ctx, o.token, id, title, content); err != nil {
		o.errMsg = "Failed to update note"
		o.logger.Error(ctx, "note update failed", "id", id, "error", err.Error())
		return fmt.Errorf("%w: %v", common.ErrMutationFailed, err)
	}

	o.editingID = 0
	o.refreshAll(ctx)
	return nil
}

// DeleteNote asks for confirmation and, when affirmed, deletes the note and
// re-reads every panel. Declining leaves all state untouched and never
// reaches the delete endpoint.
func (o *Orchestrator) DeleteNote(ctx context.Context, id int64) error {
	if o.token == "" {
		return common.ErrUnauthorized
	}
	if o.confirm == nil || !o.confirm(fmt.Sprintf("Delete note %d?", id)) {
		return nil
	}
	o.errMsg = ""

	if err := o.notes.Delete(ctx, o.token, id); err != nil {
		o.errMsg = "Failed to delete note"
		o.logger.Error(ctx, "note delete failed", "id", id, "error", err.Error())
		return fmt.Errorf("%w: %v", common.ErrMutationFailed, err)
	}

	o.refreshAll(ctx)
	return nil
}

// StartEditing marks a note as the current editing selection.
func (o *Orchestrator) StartEditing(id int64) { o.editingID = id }

// StopEditing drops the editing selection without saving.
func (o *Orchestrator) StopEditing() { o.editingID = 0 }

// EditingID returns the current editing selection, 0 when none.
func (o *Orchestrator) EditingID() int64 { return o.editingID }

// User returns the resolved identity, nil while not authenticated.
func (o *Orchestrator) User() *models.User { return o.user }

// Notes returns the last notes snapshot.
func (o *Orchestrator) Notes() []models.Note { return o.noteList }

// PersonalStatistics returns the last personal snapshot, possibly nil.
func (o *Orchestrator) PersonalStatistics() *models.PersonalStatistics { return o.personal }

// SystemStatistics returns the last global snapshot, possibly nil.
func (o *Orchestrator) SystemStatistics() *models.SystemStatistics { return o.system }

// RecentEvents returns the last activity feed snapshot.
func (o *Orchestrator) RecentEvents() []models.ActivityEvent { return o.events }

// Loading reports whether a refresh of the notes panel is in progress.
func (o *Orchestrator) Loading() bool { return o.loading }

// ErrorMessage returns the transient user-visible error, "" when none.
func (o *Orchestrator) ErrorMessage() string { return o.errMsg }

package identity

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noteboard/noteboard/internal/common"
	"github.com/noteboard/noteboard/internal/events"
	"github.com/noteboard/noteboard/internal/logging"
	"github.com/noteboard/noteboard/internal/token"
)

type fakeRepo struct {
	users  map[int64]*User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int64]*User), nextID: 1}
}

func (r *fakeRepo) Create(ctx context.Context, user *User) (*User, error) {
	u := *user
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.users[u.ID] = &u
	r.nextID++
	return &u, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context, skip, limit int) ([]User, error) {
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, user *User) (*User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, common.ErrNotFound
	}
	u := *user
	r.users[user.ID] = &u
	return &u, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type published struct {
	channel string
	event   any
}

type fakeBus struct {
	published []published
	err       error
}

func (b *fakeBus) Publish(ctx context.Context, channel string, v any) error {
	if b.err != nil {
		return b.err
	}
	b.published = append(b.published, published{channel: channel, event: v})
	return nil
}

func newTestService(repo Repository, bus EventPublisher) *Service {
	return NewService(repo, bus, logging.NewJSON(io.Discard), []byte("test-secret"), time.Minute)
}

func TestServiceRegister(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, bus)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw123")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)

	// Password must be stored hashed.
	require.NotEqual(t, "pw123", user.HashedPassword)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("pw123")))

	require.Len(t, bus.published, 1)
	require.Equal(t, events.UsersChannel, bus.published[0].channel)
	ev, ok := bus.published[0].event.(events.UserEvent)
	require.True(t, ok)
	require.Equal(t, events.TypeUserRegistered, ev.EventType)
	require.Equal(t, int64(1), ev.UserID)
}

func TestServiceRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other@example.com", "pw")
	require.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "bob", "alice@example.com", "pw")
	require.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestServiceRegisterBusFailureDoesNotFail(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{err: context.DeadlineExceeded}
	svc := newTestService(repo, bus)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw")
	require.NoError(t, err)
}

func TestServiceLogin(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, bus)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw123")
	require.NoError(t, err)
	bus.published = nil

	tok, err := svc.Login(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	userID, err := token.UserIDFromToken(tok, []byte("test-secret"))
	require.NoError(t, err)
	require.Equal(t, int64(1), userID)

	require.Len(t, bus.published, 1)
	ev, ok := bus.published[0].event.(events.UserEvent)
	require.True(t, ok)
	require.Equal(t, events.TypeUserLoggedIn, ev.EventType)
}

func TestServiceLoginWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw123")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestServiceLoginUnknownUser(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeBus{})

	_, err := svc.Login(context.Background(), "ghost", "pw")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestServiceUpdateUser(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	newName := "alice2"
	updated, err := svc.UpdateUser(context.Background(), user.ID, &newName, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "alice2", updated.Username)
	require.Equal(t, "alice@example.com", updated.Email)
}

func TestServiceUpdateUserTakenUsername(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw")
	require.NoError(t, err)
	bob, err := svc.Register(context.Background(), "bob", "bob@example.com", "pw")
	require.NoError(t, err)

	taken := "alice"
	_, err = svc.UpdateUser(context.Background(), bob.ID, &taken, nil, nil)
	require.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestServiceDeleteUser(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))
	require.ErrorIs(t, svc.DeleteUser(context.Background(), user.ID), common.ErrNotFound)
}

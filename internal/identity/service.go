package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/noteboard/noteboard/internal/common"
	"github.com/noteboard/noteboard/internal/events"
	"github.com/noteboard/noteboard/internal/logging"
	"github.com/noteboard/noteboard/internal/token"
)

// EventPublisher is the slice of the event bus the service uses.
// Publishing is best-effort: a bus failure never fails the request.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, v any) error
}

// Service implements the account operations behind the HTTP handlers.
type Service struct {
	repo          Repository
	bus           EventPublisher
	logger        logging.Logger
	secretKey     []byte
	tokenValidity time.Duration
}

func NewService(repo Repository, bus EventPublisher, logger logging.Logger, secretKey []byte, tokenValidity time.Duration) *Service {
	return &Service{
		repo:          repo,
		bus:           bus,
		logger:        logger,
		secretKey:     secretKey,
		tokenValidity: tokenValidity,
	}
}

// Register creates a new account. Username and email must both be free.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username already registered", common.ErrAlreadyExists)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", common.ErrAlreadyExists)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{
		Username:       username,
		Email:          email,
		HashedPassword: string(hash),
	})
	if err != nil {
		return nil, err
	}

	if err := s.bus.Publish(ctx, events.UsersChannel, events.NewUserRegistered(user.ID, user.Username, user.Email)); err != nil {
		s.logger.Warn(ctx, "failed to publish user registered event", "user_id", user.ID, "error", err.Error())
	}

	return user, nil
}

// Login verifies the credentials and returns a signed bearer token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", common.ErrUnauthorized
	}

	tok, err := token.Generate(user.ID, s.secretKey, s.tokenValidity)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	if err := s.bus.Publish(ctx, events.UsersChannel, events.NewUserLoggedIn(user.ID, user.Username)); err != nil {
		s.logger.Warn(ctx, "failed to publish user logged in event", "user_id", user.ID, "error", err.Error())
	}

	return tok, nil
}

// GetUser returns one account by id.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns a page of accounts.
func (s *Service) ListUsers(ctx context.Context, skip, limit int) ([]User, error) {
	return s.repo.List(ctx, skip, limit)
}

// UpdateUser changes the fields of the account that are non-nil in the
// request. New usernames and emails must not collide with another account.
func (s *Service) UpdateUser(ctx context.Context, id int64, username, email, password *string) (*User, error) {

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if username != nil {
		existing, err := s.repo.GetByUsername(ctx, *username)
		if err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: username already taken", common.ErrAlreadyExists)
		} else if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		user.Username = *username
	}

	if email != nil {
		existing, err := s.repo.GetByEmail(ctx, *email)
		if err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: email already taken", common.ErrAlreadyExists)
		} else if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		user.Email = *email
	}

	if password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.HashedPassword = string(hash)
	}

	return s.repo.Update(ctx, user)
}

// DeleteUser removes the account.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

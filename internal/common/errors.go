// Package common defines shared constants and sentinel errors used across
// the client and service layers of noteboard. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal      = errors.New("internal error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAlreadyExists = errors.New("already exists")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Client-side flow errors. The orchestrator maps these onto its single
	// user-visible error slot.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRegistrationFailed   = errors.New("registration failed")
	ErrSessionExpired       = errors.New("session expired")
	ErrMutationFailed       = errors.New("mutation failed")
	ErrFetchFailed          = errors.New("fetch failed")
)

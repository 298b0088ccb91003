// Package common defines shared constants and sentinel errors used across
// the accountkeeper server and client. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("conflict")

	// ErrLoginTaken reports a uniqueness violation on the login. It matches
	// ErrConflict.
	ErrLoginTaken = fmt.Errorf("%w: login already exists", ErrConflict)

	// ErrStaleAccount reports a lost optimistic-concurrency race on a single
	// account record. It matches ErrConflict as well.
	ErrStaleAccount = fmt.Errorf("%w: account was modified concurrently", ErrConflict)

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrValidation           = errors.New("validation error")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrInvalidCredentials   = errors.New("invalid current password")
	ErrAuthenticationFailed = errors.New("invalid login or password, or account is inactive")

	// Account state transition errors.
	ErrAlreadyActive  = errors.New("account is already active")
	ErrAlreadyRevoked = errors.New("account is already revoked")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
)

package domain

import (
	"errors"
	"fmt"
)

// Authentication failures (401).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = fmt.Errorf("%w: expired", ErrTokenInvalid)
	ErrTokenRevoked       = fmt.Errorf("%w: revoked", ErrTokenInvalid)
)

// Authorization failures (403).
var (
	ErrTokenMissing     = errors.New("token missing")
	ErrUnregisteredUser = errors.New("user not registered")
	ErrInactiveUser     = errors.New("user inactive")
	ErrForbidden        = errors.New("access forbidden")
)

var ErrUserNotFound = errors.New("user not found")

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// Dependency kinds carried by *DependencyError.
var (
	ErrDirectoryUnavailable  = errors.New("directory unavailable")
	ErrStoreUnavailable      = errors.New("relational store unavailable")
	ErrRevocationUnavailable = errors.New("revocation store unavailable")
)

// ValidationError is a malformed or incomplete request. Message is safe to
// show to the caller.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DependencyError wraps a failure of an external system. It matches both its
// Kind sentinel and the underlying cause.
type DependencyError struct {
	Kind error
	Err  error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *DependencyError) Unwrap() []error { return []error{e.Kind, e.Err} }

func DirectoryFailure(err error) error {
	return &DependencyError{Kind: ErrDirectoryUnavailable, Err: err}
}

func StoreFailure(err error) error {
	return &DependencyError{Kind: ErrStoreUnavailable, Err: err}
}

func RevocationFailure(err error) error {
	return &DependencyError{Kind: ErrRevocationUnavailable, Err: err}
}

package models

import "errors"

// Domain error taxonomy. Repositories and services wrap these with
// fmt.Errorf("...: %w", ...) and handlers map them to HTTP statuses
// with errors.Is.
var (
	// ErrUnauthorized means the caller presented no usable identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but not entitled
	// (not the post owner, not a transaction participant).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the operation collides with existing state
	// (duplicate transaction, already favorited, already confirmed).
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument means the request is self-inconsistent
	// (messaging yourself, picking yourself as buyer, bad email domain).
	ErrInvalidArgument = errors.New("invalid argument")
)

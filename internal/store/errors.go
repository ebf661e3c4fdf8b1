package store

import "errors"

var (
	// ErrNotFound is returned when a row targeted by an update does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert violates a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)

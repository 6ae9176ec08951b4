// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConflict signals that a record with the same identifier
// already exists, while the per-entity not-found errors map to 404.
package repository

import "errors"

// ErrConflict is returned when an insert collides with an existing
// primary key. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrHallNotFound is returned when a hall lookup fails.
var ErrHallNotFound = errors.New("hall not found")

// ErrCandidateNotFound is returned when a candidate lookup fails.
var ErrCandidateNotFound = errors.New("candidate not found")

// ErrArrangementNotFound is returned when no arrangement has been published.
var ErrArrangementNotFound = errors.New("arrangement not found")

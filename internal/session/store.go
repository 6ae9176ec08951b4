// Package session keeps the working arrangement of an editing session
// between requests.  A session is created by a generation run and then
// patched by manual overrides until it is published or expires.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/exam-seating/internal/model"
)

var (
	// ErrNotFound is returned for unknown or expired session ids.
	ErrNotFound = errors.New("session not found")
	// ErrBusy is returned when an update kept losing to concurrent edits.
	ErrBusy = errors.New("session busy, retry")
)

// Session is the unit stored per id.  Version increases on every update so
// clients can tell whether the arrangement they display is current.
type Session struct {
	ID          string            `json:"id"`
	Seed        int64             `json:"seed"`
	Version     int               `json:"version"`
	Arrangement model.Arrangement `json:"arrangement"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// UpdateFunc mutates s in place.  Returning an error aborts the update and
// leaves the stored session untouched.
type UpdateFunc func(s *Session) error

// Store persists sessions.  Update must apply fn atomically with respect to
// other updates of the same id; overrides rely on it to stay serialized.
type Store interface {
	Create(ctx context.Context, seed int64, arr model.Arrangement) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (*Session, error)
	Delete(ctx context.Context, id string) error
}

func clone(s *Session) *Session {
	c := *s
	c.Arrangement = s.Arrangement.Clone()
	return &c
}

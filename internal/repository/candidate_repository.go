package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/exam-seating/internal/model"
)

// CandidateRepo persists the exam roster.
type CandidateRepo struct {
	db *sql.DB
}

// NewCandidateRepo constructs a CandidateRepo with the given DB handle.
func NewCandidateRepo(db *sql.DB) *CandidateRepo {
	return &CandidateRepo{db: db}
}

// Create inserts a candidate.  A duplicate ID yields ErrConflict.
func (r *CandidateRepo) Create(ctx context.Context, c *model.Candidate) error {
	const q = `INSERT INTO candidates (id, name, group_code) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, c.ID, c.Name, string(c.Group)); err != nil {
		return mapInsertErr(err)
	}
	return nil
}

// GetByID returns ErrCandidateNotFound when no row matches.
func (r *CandidateRepo) GetByID(ctx context.Context, id string) (*model.Candidate, error) {
	const q = `SELECT id, name, group_code FROM candidates WHERE id = ?`
	var c model.Candidate
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Group); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns the roster ordered by ID.  Order does not influence
// placement because the engine shuffles, but it keeps responses stable.
func (r *CandidateRepo) List(ctx context.Context) ([]model.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, group_code FROM candidates ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Candidate{}
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Group); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a candidate.  Published arrangements keep their own copy
// of the candidate's name and group.
func (r *CandidateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

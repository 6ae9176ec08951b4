package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/exam-seating/internal/model"
)

// PublishedArrangement is a frozen copy of a session's arrangement, kept
// for report generation and audit after the session expires.
type PublishedArrangement struct {
	ID          uint64
	SessionID   string
	Seed        int64
	Conflicts   int
	PublishedAt time.Time
	Seats       model.Arrangement
}

// ArrangementRepo stores published arrangements.
type ArrangementRepo struct {
	db *sql.DB
}

// NewArrangementRepo constructs an ArrangementRepo with the given DB handle.
func NewArrangementRepo(db *sql.DB) *ArrangementRepo {
	return &ArrangementRepo{db: db}
}

// Save writes the header row and every seat in one transaction and sets
// p.ID on success.
func (r *ArrangementRepo) Save(ctx context.Context, p *PublishedArrangement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO arrangements (session_id, seed, seat_count, conflicts) VALUES (?, ?, ?, ?)`,
		p.SessionID, p.Seed, len(p.Seats), p.Conflicts)
	if err != nil {
		return fmt.Errorf("insert arrangement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO arrangement_seats
        (arrangement_id, hall_id, seat_row, seat_col, candidate_id, candidate_name, group_code)
        VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, s := range p.Seats {
		if _, err := stmt.ExecContext(ctx, id, s.HallID, s.Row, s.Col, s.Candidate.ID, s.Candidate.Name, string(s.Candidate.Group)); err != nil {
			return fmt.Errorf("insert seat %s: %w", s.Key(), mapInsertErr(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Latest loads the most recently published arrangement.  It returns
// ErrArrangementNotFound when nothing has been published yet.
func (r *ArrangementRepo) Latest(ctx context.Context) (*PublishedArrangement, error) {
	var p PublishedArrangement
	err := r.db.QueryRowContext(ctx,
		`SELECT id, session_id, seed, conflicts, published_at FROM arrangements ORDER BY id DESC LIMIT 1`).
		Scan(&p.ID, &p.SessionID, &p.Seed, &p.Conflicts, &p.PublishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArrangementNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT hall_id, seat_row, seat_col, candidate_id, candidate_name, group_code
        FROM arrangement_seats WHERE arrangement_id = ? ORDER BY hall_id, seat_row, seat_col`, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p.Seats = model.Arrangement{}
	for rows.Next() {
		var s model.AssignedSeat
		if err := rows.Scan(&s.HallID, &s.Row, &s.Col, &s.Candidate.ID, &s.Candidate.Name, &s.Candidate.Group); err != nil {
			return nil, err
		}
		p.Seats = append(p.Seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

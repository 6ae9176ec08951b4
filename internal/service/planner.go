package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iliyamo/exam-seating/internal/model"
	"github.com/iliyamo/exam-seating/internal/queue"
	"github.com/iliyamo/exam-seating/internal/repository"
	"github.com/iliyamo/exam-seating/internal/seating"
	"github.com/iliyamo/exam-seating/internal/session"
)

// ErrSeatOutOfRange is returned when a move targets a hall that does not
// exist or a seat outside its grid.
var ErrSeatOutOfRange = errors.New("seat out of range")

// HallLister supplies the halls to seat candidates into.
type HallLister interface {
	List(ctx context.Context) ([]model.Hall, error)
}

// CandidateLister supplies the roster.
type CandidateLister interface {
	List(ctx context.Context) ([]model.Candidate, error)
}

// ArrangementSaver freezes an arrangement for reporting.
type ArrangementSaver interface {
	Save(ctx context.Context, p *repository.PublishedArrangement) error
}

// PlannerConfig carries the engine tuning knobs.
type PlannerConfig struct {
	LookAhead int
	Restarts  int
	// Seed, when non-zero, is used for every generation without an
	// explicit seed.  Zero draws a fresh seed per run.
	Seed int64
}

// Planner runs generations into sessions, applies manual overrides and
// publishes finished arrangements.
type Planner struct {
	Halls        HallLister
	Candidates   CandidateLister
	Sessions     session.Store
	Arrangements ArrangementSaver // optional; Publish fails without it
	Events       EventPublisher   // optional
	Config       PlannerConfig
	Logger       *slog.Logger

	seedFn func() int64
}

// View is a session together with its derived conflict keys and stats.
// Conflicts are recomputed on every read, never stored.
type View struct {
	Session   *session.Session `json:"session"`
	Conflicts []model.SeatKey  `json:"conflicts"`
	Stats     seating.Stats    `json:"stats"`
}

func (p *Planner) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Planner) nextSeed() int64 {
	if p.Config.Seed != 0 {
		return p.Config.Seed
	}
	if p.seedFn != nil {
		return p.seedFn()
	}
	return time.Now().UnixNano()
}

func (p *Planner) generator(seed int64) *seating.Generator {
	return seating.NewSeededGenerator(seed,
		seating.WithLookAhead(p.Config.LookAhead),
		seating.WithRestarts(p.Config.Restarts))
}

func (p *Planner) load(ctx context.Context) ([]model.Candidate, []model.Hall, error) {
	cands, err := p.Candidates.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list candidates: %w", err)
	}
	halls, err := p.Halls.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list halls: %w", err)
	}
	return cands, halls, nil
}

func (p *Planner) view(s *session.Session, cands []model.Candidate, halls []model.Hall) *View {
	return &View{
		Session:   s,
		Conflicts: seating.DetectConflicts(s.Arrangement).Keys(),
		Stats:     seating.Summarize(cands, halls, s.Arrangement),
	}
}

func resolveSeed(seed *int64, p *Planner) int64 {
	if seed != nil {
		return *seed
	}
	return p.nextSeed()
}

// Generate seats the current roster into the current halls and stores the
// result in a new session.  A nil seed picks one; the seed used is kept on
// the session so the run can be reproduced.
func (p *Planner) Generate(ctx context.Context, seed *int64) (*View, error) {
	cands, halls, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	s := resolveSeed(seed, p)
	arr := p.generator(s).Generate(cands, halls)
	sess, err := p.Sessions.Create(ctx, s, arr)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	v := p.view(sess, cands, halls)
	p.logger().Info("arrangement generated",
		slog.String("session", sess.ID), slog.Int64("seed", s),
		slog.Int("seated", v.Stats.Seated), slog.Int("conflicts", v.Stats.Conflicts))
	return v, nil
}

// Regenerate replaces a session's arrangement wholesale with a fresh run.
func (p *Planner) Regenerate(ctx context.Context, id string, seed *int64) (*View, error) {
	cands, halls, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	s := resolveSeed(seed, p)
	arr := p.generator(s).Generate(cands, halls)
	sess, err := p.Sessions.Update(ctx, id, func(cur *session.Session) error {
		cur.Seed = s
		cur.Arrangement = arr
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.logger().Info("arrangement regenerated", slog.String("session", id), slog.Int64("seed", s))
	return p.view(sess, cands, halls), nil
}

// Get returns the session with freshly computed conflicts and stats.
func (p *Planner) Get(ctx context.Context, id string) (*View, error) {
	sess, err := p.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cands, halls, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	return p.view(sess, cands, halls), nil
}

// Conflicts returns the conflict keys of a session's arrangement.
func (p *Planner) Conflicts(ctx context.Context, id string) ([]model.SeatKey, error) {
	sess, err := p.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return seating.DetectConflicts(sess.Arrangement).Keys(), nil
}

// Apply runs a manual override against a session.  Move targets are
// checked against the current halls first.  The bool result is false when
// the override changed nothing (unknown candidate, same seat); the session
// is then left at its current version.
func (p *Planner) Apply(ctx context.Context, id string, op seating.Operation) (*View, bool, error) {
	cands, halls, err := p.load(ctx)
	if err != nil {
		return nil, false, err
	}
	if mv, ok := op.(seating.MoveOp); ok && !inRange(halls, mv.To) {
		return nil, false, fmt.Errorf("%w: %s", ErrSeatOutOfRange, mv.To.Key())
	}

	changed := false
	sess, err := p.Sessions.Update(ctx, id, func(cur *session.Session) error {
		next, ok := seating.Apply(cur.Arrangement, op)
		if !ok {
			return errUnchanged
		}
		cur.Arrangement = next
		changed = true
		return nil
	})
	if errors.Is(err, errUnchanged) {
		sess, err = p.Sessions.Get(ctx, id)
	}
	if err != nil {
		return nil, false, err
	}
	return p.view(sess, cands, halls), changed, nil
}

// errUnchanged aborts a session update without bumping its version.
var errUnchanged = errors.New("override changed nothing")

func inRange(halls []model.Hall, c model.Coordinate) bool {
	for _, h := range halls {
		if h.ID == c.HallID {
			return h.Contains(c.Row, c.Col)
		}
	}
	return false
}

// Publish freezes the session's arrangement in the database and announces
// it on the broker.  A broker failure is logged and does not fail the call.
func (p *Planner) Publish(ctx context.Context, id, by string) (*repository.PublishedArrangement, error) {
	if p.Arrangements == nil {
		return nil, errors.New("publishing is not configured")
	}
	sess, err := p.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cands, halls, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	stats := seating.Summarize(cands, halls, sess.Arrangement)

	pub := &repository.PublishedArrangement{
		SessionID: sess.ID,
		Seed:      sess.Seed,
		Conflicts: stats.Conflicts,
		Seats:     sess.Arrangement,
	}
	if err := p.Arrangements.Save(ctx, pub); err != nil {
		return nil, fmt.Errorf("save arrangement: %w", err)
	}
	pub.PublishedAt = time.Now().UTC()

	if p.Events != nil {
		perHall := map[string]int{}
		for _, s := range sess.Arrangement {
			perHall[s.HallID]++
		}
		ev := queue.ArrangementPublishedEvent{
			ArrangementID: pub.ID,
			SessionID:     sess.ID,
			Seed:          sess.Seed,
			Seated:        stats.Seated,
			Unseated:      stats.Unseated,
			Conflicts:     stats.Conflicts,
			SeatsPerHall:  perHall,
			PublishedBy:   by,
			PublishedAt:   pub.PublishedAt.Format(time.RFC3339),
		}
		if err := p.Events.PublishArrangement(ctx, ev); err != nil {
			p.logger().Warn("arrangement event not delivered", slog.String("session", id), slog.Any("err", err))
		}
	}
	p.logger().Info("arrangement published", slog.String("session", id), slog.Uint64("arrangement_id", pub.ID))
	return pub, nil
}

package seating

import (
	"math/rand"
	"sort"

	"github.com/iliyamo/exam-seating/internal/model"
)

// DefaultLookAhead is how many queued candidates the generator inspects
// when the next candidate would repeat its left neighbor's group.
const DefaultLookAhead = 10

// Generator produces seat arrangements.  The shuffle is the only source of
// randomness and is drawn from the Generator's own rng, so two generators
// built from the same seed produce the same arrangement for the same
// input.  A Generator is not safe for concurrent use.
type Generator struct {
	rng       *rand.Rand
	lookAhead int
	restarts  int
}

// Option configures a Generator.
type Option func(*Generator)

// WithLookAhead overrides DefaultLookAhead.  Values below zero are treated
// as zero, which disables the repair step.
func WithLookAhead(n int) Option {
	return func(g *Generator) {
		if n < 0 {
			n = 0
		}
		g.lookAhead = n
	}
}

// WithRestarts makes Generate run the placement up to n times with fresh
// shuffles and keep the arrangement with the fewest conflicts.  It stops
// early once a conflict-free arrangement is found.  n <= 1 keeps the
// single-pass behavior.
func WithRestarts(n int) Option {
	return func(g *Generator) {
		if n < 1 {
			n = 1
		}
		g.restarts = n
	}
}

// NewGenerator returns a Generator drawing from rng.  A nil rng is
// replaced by one seeded with 1.
func NewGenerator(rng *rand.Rand, opts ...Option) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	g := &Generator{rng: rng, lookAhead: DefaultLookAhead, restarts: 1}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewSeededGenerator is shorthand for NewGenerator(rand.New(rand.NewSource(seed)), opts...).
func NewSeededGenerator(seed int64, opts ...Option) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)), opts...)
}

// Generate seats candidates across halls.
//
// Candidates are shuffled, halls are filled in ascending ID order and
// seats row by row from the left.  When the next candidate would share a
// group with the seat on its left, the next few queued candidates are
// scanned for one of a different group and that one is brought forward.
// If none is found the conflict is accepted.  Seats already filled are
// never revisited and the seat to the right is not looked at, so the
// result can still contain conflicts; DetectConflicts reports them.
// WithRestarts repeats the whole pass and keeps the best outcome.
//
// The result holds min(len(candidates), total seats) entries.  Empty
// input yields an empty arrangement.
func (g *Generator) Generate(candidates []model.Candidate, halls []model.Hall) model.Arrangement {
	if len(candidates) == 0 || len(halls) == 0 {
		return model.Arrangement{}
	}

	best := g.place(candidates, halls)
	score := DetectConflicts(best).Len()
	for i := 1; i < g.restarts && score > 0; i++ {
		arr := g.place(candidates, halls)
		if n := DetectConflicts(arr).Len(); n < score {
			best, score = arr, n
		}
	}
	return best
}

func (g *Generator) place(candidates []model.Candidate, halls []model.Hall) model.Arrangement {
	queue := make([]model.Candidate, len(candidates))
	copy(queue, candidates)
	g.rng.Shuffle(len(queue), func(i, j int) { queue[i], queue[j] = queue[j], queue[i] })

	order := make([]model.Hall, len(halls))
	copy(order, halls)
	sort.SliceStable(order, func(i, j int) bool { return order[i].ID < order[j].ID })

	total := 0
	for _, h := range order {
		total += h.Seats()
	}
	size := len(queue)
	if total < size {
		size = total
	}
	arr := make(model.Arrangement, 0, size)

	next := 0
	for _, h := range order {
		if h.Seats() == 0 {
			continue
		}
		for r := 0; r < h.Rows && next < len(queue); r++ {
			for c := 0; c < h.Cols && next < len(queue); c++ {
				// The left neighbor, when present, is the last seat appended.
				if c > 0 && arr[len(arr)-1].Candidate.Group == queue[next].Group {
					g.repair(queue, next, queue[next].Group)
				}
				arr = append(arr, model.AssignedSeat{HallID: h.ID, Row: r, Col: c, Candidate: queue[next]})
				next++
			}
		}
		if next >= len(queue) {
			break
		}
	}
	return arr
}

// repair looks at up to min(lookAhead, remaining) candidates queued after
// position i and swaps the first one whose group differs from avoid into
// position i.  It reports whether a swap happened.
func (g *Generator) repair(queue []model.Candidate, i int, avoid model.Group) bool {
	window := len(queue) - i - 1
	if g.lookAhead < window {
		window = g.lookAhead
	}
	for k := 1; k <= window; k++ {
		if queue[i+k].Group != avoid {
			queue[i], queue[i+k] = queue[i+k], queue[i]
			return true
		}
	}
	return false
}

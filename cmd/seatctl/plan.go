package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iliyamo/exam-seating/internal/config"
	"github.com/iliyamo/exam-seating/internal/database"
	"github.com/iliyamo/exam-seating/internal/model"
	"github.com/iliyamo/exam-seating/internal/repository"
	"github.com/iliyamo/exam-seating/internal/seating"
)

type planOptions struct {
	seed      int64
	lookAhead int
	restarts  int
	output    string
	published bool
}

func newPlanCmd() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate an arrangement from the halls and candidates in the database",
		Long: `Reads halls and candidates from MySQL, runs the placement engine and
prints the result.  With --published the latest published arrangement is
printed instead of a new one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Shuffle seed; 0 picks one from the clock")
	cmd.Flags().IntVar(&opts.lookAhead, "lookahead", seating.DefaultLookAhead, "Queued candidates scanned to avoid a left-neighbor clash")
	cmd.Flags().IntVar(&opts.restarts, "restarts", 1, "Placement passes; the one with fewest conflicts is kept")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "grid", "Output format (grid, json, yaml)")
	cmd.Flags().BoolVar(&opts.published, "published", false, "Print the latest published arrangement")
	return cmd
}

func runPlan(ctx context.Context, w io.Writer, opts planOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format := strings.ToLower(opts.output)
	if format != "grid" && format != "json" && format != "yaml" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	cfg := config.Load()
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return err
	}
	defer db.Close()

	halls, err := repository.NewHallRepo(db).List(ctx)
	if err != nil {
		return fmt.Errorf("list halls: %w", err)
	}
	cands, err := repository.NewCandidateRepo(db).List(ctx)
	if err != nil {
		return fmt.Errorf("list candidates: %w", err)
	}

	var p plan
	if opts.published {
		pub, err := repository.NewArrangementRepo(db).Latest(ctx)
		if err != nil {
			return err
		}
		p = newPlan(pub.Seed, cands, halls, pub.Seats)
	} else {
		seed := opts.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		gen := seating.NewSeededGenerator(seed, seating.WithLookAhead(opts.lookAhead), seating.WithRestarts(opts.restarts))
		p = newPlan(seed, cands, halls, gen.Generate(cands, halls))
	}
	return p.render(w, format)
}

// plan is what seatctl prints: an arrangement, its conflicts and stats.
type plan struct {
	Seed      int64         `json:"seed" yaml:"seed"`
	Seats     []planSeat    `json:"seats" yaml:"seats"`
	Conflicts []string      `json:"conflicts" yaml:"conflicts"`
	Stats     seating.Stats `json:"stats" yaml:"stats"`

	halls []model.Hall
	arr   model.Arrangement
	hits  model.ConflictSet
}

type planSeat struct {
	Seat      string `json:"seat" yaml:"seat"`
	Hall      string `json:"hall" yaml:"hall"`
	Row       int    `json:"row" yaml:"row"`
	Col       int    `json:"col" yaml:"col"`
	Candidate string `json:"candidate" yaml:"candidate"`
	Name      string `json:"name" yaml:"name"`
	Group     string `json:"group" yaml:"group"`
	Conflict  bool   `json:"conflict,omitempty" yaml:"conflict,omitempty"`
}

func newPlan(seed int64, cands []model.Candidate, halls []model.Hall, arr model.Arrangement) plan {
	hits := seating.DetectConflicts(arr)
	p := plan{
		Seed:      seed,
		Seats:     make([]planSeat, 0, len(arr)),
		Conflicts: make([]string, 0, hits.Len()),
		Stats:     seating.Summarize(cands, halls, arr),
		halls:     halls,
		arr:       arr,
		hits:      hits,
	}
	for _, s := range arr {
		p.Seats = append(p.Seats, planSeat{
			Seat:      string(s.Key()),
			Hall:      s.HallID,
			Row:       s.Row,
			Col:       s.Col,
			Candidate: s.Candidate.ID,
			Name:      s.Candidate.Name,
			Group:     string(s.Candidate.Group),
			Conflict:  hits.Has(s.Key()),
		})
	}
	for _, k := range hits.Keys() {
		p.Conflicts = append(p.Conflicts, string(k))
	}
	return p
}

func (p plan) render(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	default:
		return p.renderGrid(w)
	}
}

// renderGrid prints one block per hall with a cell per seat: the candidate
// id and group, "*" marking a conflict, "." an empty seat.
func (p plan) renderGrid(w io.Writer) error {
	bySeat := make(map[model.SeatKey]model.Candidate, len(p.arr))
	for _, s := range p.arr {
		bySeat[s.Key()] = s.Candidate
	}
	width := 1
	for _, s := range p.arr {
		if n := len(s.Candidate.ID) + len(s.Candidate.Group) + 2; n > width {
			width = n
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "seed %d\n", p.Seed)
	for _, h := range p.halls {
		fmt.Fprintf(&b, "\n%s %s (%dx%d)\n", h.ID, h.Name, h.Rows, h.Cols)
		for r := 0; r < h.Rows; r++ {
			cells := make([]string, 0, h.Cols)
			for c := 0; c < h.Cols; c++ {
				key := model.NewSeatKey(h.ID, r, c)
				cell := "."
				if cand, ok := bySeat[key]; ok {
					cell = cand.ID + "/" + string(cand.Group)
					if p.hits.Has(key) {
						cell += "*"
					}
				}
				cells = append(cells, fmt.Sprintf("%-*s", width, cell))
			}
			fmt.Fprintln(&b, strings.TrimRight(strings.Join(cells, " "), " "))
		}
	}
	fmt.Fprintf(&b, "\nseated %d/%d, unseated %d, conflicts %d\n",
		p.Stats.Seated, p.Stats.TotalCandidates, p.Stats.Unseated, len(p.Conflicts))
	_, err := io.WriteString(w, b.String())
	return err
}

package seating

import "github.com/iliyamo/exam-seating/internal/model"

// Stats summarizes an arrangement for dashboards.
type Stats struct {
	TotalCandidates  int  `json:"total_candidates" yaml:"total_candidates"`
	TotalHalls       int  `json:"total_halls" yaml:"total_halls"`
	TotalGroups      int  `json:"total_groups" yaml:"total_groups"`
	TotalSeats       int  `json:"total_seats" yaml:"total_seats"`
	Seated           int  `json:"seated" yaml:"seated"`
	Unseated         int  `json:"unseated" yaml:"unseated"`
	Conflicts        int  `json:"conflicts" yaml:"conflicts"`
	CapacityExceeded bool `json:"capacity_exceeded" yaml:"capacity_exceeded"`
}

// Summarize computes Stats for arr.  TotalSeats counts Rows*Cols per hall,
// not the advisory capacity.
func Summarize(candidates []model.Candidate, halls []model.Hall, arr model.Arrangement) Stats {
	groups := map[model.Group]struct{}{}
	for _, c := range candidates {
		groups[c.Group] = struct{}{}
	}
	seats := 0
	for _, h := range halls {
		seats += h.Seats()
	}
	st := Stats{
		TotalCandidates:  len(candidates),
		TotalHalls:       len(halls),
		TotalGroups:      len(groups),
		TotalSeats:       seats,
		Seated:           len(arr),
		Conflicts:        DetectConflicts(arr).Len(),
		CapacityExceeded: len(candidates) > seats,
	}
	if st.Unseated = len(candidates) - len(arr); st.Unseated < 0 {
		st.Unseated = 0
	}
	return st
}

// Package seating places exam candidates into hall seat grids and reports
// seats that sit horizontally next to a candidate of the same group.
//
// Every function here works on in-memory values only.  Nothing blocks,
// nothing is shared between calls, and inputs are never mutated.
package seating

import "github.com/iliyamo/exam-seating/internal/model"

// DetectConflicts returns the keys of every occupied seat whose left or
// right neighbor in the same hall row holds a candidate of the same group.
// Both seats of such a pair are flagged.  Vertical and diagonal neighbors
// are not considered.
func DetectConflicts(arr model.Arrangement) model.ConflictSet {
	out := model.ConflictSet{}
	if len(arr) == 0 {
		return out
	}

	groups := make(map[model.SeatKey]model.Group, len(arr))
	for _, s := range arr {
		groups[s.Key()] = s.Candidate.Group
	}

	for _, s := range arr {
		key := s.Key()
		for _, dc := range [2]int{-1, 1} {
			nk := model.NewSeatKey(s.HallID, s.Row, s.Col+dc)
			if g, ok := groups[nk]; ok && g == s.Candidate.Group {
				out[key] = struct{}{}
				out[nk] = struct{}{}
			}
		}
	}
	return out
}

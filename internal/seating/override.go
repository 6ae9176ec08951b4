package seating

import "github.com/iliyamo/exam-seating/internal/model"

// Operation is a manual edit applied to an existing arrangement.
type Operation interface {
	apply(model.Arrangement) (model.Arrangement, bool)
}

// MoveOp moves a seated candidate to To.  If To is occupied the two
// candidates trade seats.
type MoveOp struct {
	CandidateID string
	To          model.Coordinate
}

func (op MoveOp) apply(arr model.Arrangement) (model.Arrangement, bool) {
	return Move(arr, op.CandidateID, op.To)
}

// UnassignOp removes a candidate from its seat.
type UnassignOp struct {
	CandidateID string
}

func (op UnassignOp) apply(arr model.Arrangement) (model.Arrangement, bool) {
	return Unassign(arr, op.CandidateID)
}

// Apply runs op against arr and reports whether anything changed.  The
// input is never modified.  A nil op is a no-op.
func Apply(arr model.Arrangement, op Operation) (model.Arrangement, bool) {
	if op == nil {
		return arr, false
	}
	return op.apply(arr)
}

// Move relocates candidateID to target.  When target holds another
// candidate the two swap coordinates; otherwise the candidate simply moves.
// The number of seats never changes.
//
// If the candidate is not seated, or already sits at target, arr is
// returned as-is with false.  Move does not check target against hall
// bounds; callers validate coordinates against the hall first.
func Move(arr model.Arrangement, candidateID string, target model.Coordinate) (model.Arrangement, bool) {
	from := arr.IndexOf(candidateID)
	if from < 0 {
		return arr, false
	}
	src := arr[from].Coordinate()
	if src == target {
		return arr, false
	}

	out := arr.Clone()
	for i := range out {
		if i != from && out[i].Coordinate() == target {
			out[i].HallID, out[i].Row, out[i].Col = src.HallID, src.Row, src.Col
			break
		}
	}
	out[from].HallID, out[from].Row, out[from].Col = target.HallID, target.Row, target.Col
	return out, true
}

// Unassign removes candidateID from the arrangement, leaving its seat
// empty.  It returns arr with false when the candidate is not seated.
func Unassign(arr model.Arrangement, candidateID string) (model.Arrangement, bool) {
	idx := arr.IndexOf(candidateID)
	if idx < 0 {
		return arr, false
	}
	out := make(model.Arrangement, 0, len(arr)-1)
	out = append(out, arr[:idx]...)
	out = append(out, arr[idx+1:]...)
	return out, true
}

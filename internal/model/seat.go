package model

import (
	"sort"
	"strconv"
)

// SeatKey identifies one physical seat across all halls.  The format is
// hallID + "-" + row + "-" + col and is shared with clients that
// highlight conflicting seats, so it must not change.
type SeatKey string

// NewSeatKey builds the key for the seat at (row, col) in hallID.
func NewSeatKey(hallID string, row, col int) SeatKey {
	return SeatKey(hallID + "-" + strconv.Itoa(row) + "-" + strconv.Itoa(col))
}

// Coordinate is a seat position inside a hall.
type Coordinate struct {
	HallID string `json:"hall_id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// Key returns the SeatKey of the coordinate.
func (c Coordinate) Key() SeatKey { return NewSeatKey(c.HallID, c.Row, c.Col) }

// AssignedSeat binds one candidate to one seat coordinate.
type AssignedSeat struct {
	HallID    string    `json:"hall_id"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Candidate Candidate `json:"candidate"`
}

// Coordinate returns the position of the seat.
func (s AssignedSeat) Coordinate() Coordinate {
	return Coordinate{HallID: s.HallID, Row: s.Row, Col: s.Col}
}

// Key returns the SeatKey of the seat.
func (s AssignedSeat) Key() SeatKey { return NewSeatKey(s.HallID, s.Row, s.Col) }

// Arrangement is the full set of seat bindings.  Order carries no meaning.
// Within one arrangement no two entries share a coordinate and no two
// entries share a candidate ID.
type Arrangement []AssignedSeat

// Clone returns a copy that shares no backing array with a.
func (a Arrangement) Clone() Arrangement {
	if a == nil {
		return nil
	}
	out := make(Arrangement, len(a))
	copy(out, a)
	return out
}

// IndexOf returns the position of candidateID in a, or -1.
func (a Arrangement) IndexOf(candidateID string) int {
	for i, s := range a {
		if s.Candidate.ID == candidateID {
			return i
		}
	}
	return -1
}

// ConflictSet holds the keys of seats that sit horizontally next to a seat
// of the same group.
type ConflictSet map[SeatKey]struct{}

// Has reports whether k is flagged.
func (s ConflictSet) Has(k SeatKey) bool {
	_, ok := s[k]
	return ok
}

// Len returns the number of flagged seats.
func (s ConflictSet) Len() int { return len(s) }

// Keys returns the flagged keys in sorted order.
func (s ConflictSet) Keys() []SeatKey {
	out := make([]SeatKey, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

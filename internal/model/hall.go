package model

// Hall is an exam hall laid out as a fixed grid of Rows × Cols seats.
// Capacity is advisory metadata kept for display; the number of seats
// used for placement is always Rows*Cols.
//
// Fields:
//  ID       – unique identifier, also the hall fill order key.
//  Name     – display name.
//  Capacity – advisory seat count as entered by staff.
//  Rows     – number of seat rows (> 0).
//  Cols     – number of seats per row (> 0).
type Hall struct {
	ID       string `json:"id" validate:"required,max=64"`    // halls.id
	Name     string `json:"name" validate:"required,max=255"` // halls.name
	Capacity int    `json:"capacity" validate:"gte=0"`        // halls.capacity
	Rows     int    `json:"rows" validate:"gt=0,lte=500"`     // halls.seat_rows
	Cols     int    `json:"cols" validate:"gt=0,lte=500"`     // halls.seat_cols
}

// Seats returns the number of physical seats in the hall.  Halls with a
// non-positive dimension have no seats.
func (h Hall) Seats() int {
	if h.Rows <= 0 || h.Cols <= 0 {
		return 0
	}
	return h.Rows * h.Cols
}

// Contains reports whether (row, col) lies inside the hall grid.
func (h Hall) Contains(row, col int) bool {
	return row >= 0 && row < h.Rows && col >= 0 && col < h.Cols
}

package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeatKey_Format(t *testing.T) {
	assert.Equal(t, SeatKey("H1-0-2"), NewSeatKey("H1", 0, 2))
	assert.Equal(t, SeatKey("hall-a-10-3"), Coordinate{HallID: "hall-a", Row: 10, Col: 3}.Key())
}

func TestHall_Seats(t *testing.T) {
	assert.Equal(t, 12, Hall{Rows: 3, Cols: 4, Capacity: 50}.Seats(), "capacity is advisory")
	assert.Equal(t, 0, Hall{Rows: 0, Cols: 4}.Seats())
	assert.Equal(t, 0, Hall{Rows: 3, Cols: -1}.Seats())
}

func TestHall_Contains(t *testing.T) {
	h := Hall{Rows: 2, Cols: 3}
	assert.True(t, h.Contains(1, 2))
	assert.False(t, h.Contains(2, 0))
	assert.False(t, h.Contains(0, -1))
}

func TestGroup_Valid(t *testing.T) {
	for _, g := range Groups {
		assert.True(t, g.Valid(), g)
	}
	assert.False(t, Group("MBA").Valid())
	assert.False(t, Group("").Valid())
}

func TestValidateHall(t *testing.T) {
	require.NoError(t, ValidateHall(Hall{ID: "H1", Name: "Main", Capacity: 30, Rows: 5, Cols: 6}))

	err := ValidateHall(Hall{ID: "H1", Name: "Main", Rows: 0, Cols: 6})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "rows")

	err = ValidateHall(Hall{Name: "Main", Rows: 1, Cols: -2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id")
	assert.Contains(t, err.Error(), "cols")
}

func TestValidateCandidate(t *testing.T) {
	require.NoError(t, ValidateCandidate(Candidate{ID: "S1", Name: "Asha", Group: GroupCSE}))

	err := ValidateCandidate(Candidate{ID: "S1", Name: "Asha", Group: "LAW"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "group")
}

func TestArrangement_CloneAndIndexOf(t *testing.T) {
	a := Arrangement{
		{HallID: "H", Row: 0, Col: 0, Candidate: Candidate{ID: "a"}},
		{HallID: "H", Row: 0, Col: 1, Candidate: Candidate{ID: "b"}},
	}
	b := a.Clone()
	b[0].Col = 9
	assert.Equal(t, 0, a[0].Col)
	assert.Equal(t, 1, a.IndexOf("b"))
	assert.Equal(t, -1, a.IndexOf("zz"))
	assert.Nil(t, Arrangement(nil).Clone())
}

func TestConflictSet_Keys(t *testing.T) {
	s := ConflictSet{"H-0-1": {}, "H-0-0": {}}
	assert.Equal(t, []SeatKey{"H-0-0", "H-0-1"}, s.Keys())
	assert.True(t, s.Has("H-0-0"))
	assert.False(t, s.Has("H-1-0"))
	assert.Equal(t, 2, s.Len())
}

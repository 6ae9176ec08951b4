package model

// Group is the affiliation used for adjacency comparison.  Two candidates
// of the same group must not sit horizontally next to each other.
type Group string

const (
	GroupCSE Group = "CSE"
	GroupECE Group = "ECE"
	GroupME  Group = "ME"
	GroupCE  Group = "CE"
	GroupEEE Group = "EEE"
)

// Groups lists every accepted group in display order.
var Groups = []Group{GroupCSE, GroupECE, GroupME, GroupCE, GroupEEE}

// Valid reports whether g is one of the accepted groups.
func (g Group) Valid() bool {
	for _, x := range Groups {
		if g == x {
			return true
		}
	}
	return false
}

// Candidate is a person to be seated for an exam.  Candidates are
// immutable once placed and are identified by ID, which is assigned
// outside of this service (e.g. a roll number).
//
// Fields:
//  ID    – externally assigned unique identifier.
//  Name  – display name.
//  Group – affiliation used for conflict detection.
type Candidate struct {
	ID    string `json:"id" validate:"required,max=64"`    // candidates.id
	Name  string `json:"name" validate:"required,max=255"` // candidates.name
	Group Group  `json:"group" validate:"required,group"`  // candidates.group_code
}

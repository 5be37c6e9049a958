package roster

import (
	"errors"
	"sort"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxTeamNameLength   = 100
	MaxActivityLength   = 100
	MaxMemberNameLength = 50
)

// Age bounds for members.
const (
	MinMemberAge = 1
	MaxMemberAge = 100
)

// Domain errors
var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrMemberNotFound = errors.New("member not found")
)

// Member holds one roster entry within a team. Age stays string-typed
// because it arrives as a form value and is echoed back verbatim.
type Member struct {
	Name string `json:"name"`
	Age  string `json:"age"`
	Sex  string `json:"sex"`
}

// Team holds a named group of members.
type Team struct {
	Name     string   `json:"name"`
	Activity string   `json:"activity"`
	Members  []Member `json:"members"`
}

// Roster is the ordered collection of teams belonging to one session.
type Roster struct {
	Teams []Team `json:"teams"`
}

// FindTeam returns a pointer to the team with the given name.
// Name matching is exact (case-sensitive).
// PRE: none
// POST: returns pointer into r.Teams and true, or nil and false
func (r *Roster) FindTeam(name string) (*Team, bool) {
	for i := range r.Teams {
		if r.Teams[i].Name == name {
			return &r.Teams[i], true
		}
	}
	return nil, false
}

// HasTeam reports whether a team with the given name exists (case-sensitive).
// INVARIANT: Roster is not mutated
func (r *Roster) HasTeam(name string) bool {
	_, ok := r.FindTeam(name)
	return ok
}

// AddTeam appends a team to the roster.
// PRE: caller has verified the team name is unique within the roster
// POST: team appended; Members is never nil
func (r *Roster) AddTeam(t Team) {
	if t.Members == nil {
		t.Members = []Member{}
	}
	r.Teams = append(r.Teams, t)
}

// SortedTeams returns a copy of the teams sorted by case-insensitive name
// ascending. The sort is stable, so case-differing duplicates keep their
// insertion order. The roster's own ordering is left untouched.
// INVARIANT: Roster is not mutated
func (r *Roster) SortedTeams() []Team {
	sorted := make([]Team, len(r.Teams))
	copy(sorted, r.Teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareNames(sorted[i].Name, sorted[j].Name) < 0
	})
	return sorted
}

// FindMember returns a pointer to the member with the given name.
// Name matching is exact (case-sensitive).
// PRE: none
// POST: returns pointer into t.Members and true, or nil and false
func (t *Team) FindMember(name string) (*Member, bool) {
	for i := range t.Members {
		if t.Members[i].Name == name {
			return &t.Members[i], true
		}
	}
	return nil, false
}

// HasMember reports whether a member with the given name exists in the team.
// INVARIANT: Team is not mutated
func (t *Team) HasMember(name string) bool {
	_, ok := t.FindMember(name)
	return ok
}

// AddMember appends a member to the team.
// PRE: caller has verified the member name is unique within the team
// POST: member appended
func (t *Team) AddMember(m Member) {
	t.Members = append(t.Members, m)
}

// RemoveMember removes the first member with the given name.
// PRE: none
// POST: returns true and removes the member if found, false otherwise;
// the team's member list is unchanged when the member is absent
func (t *Team) RemoveMember(name string) bool {
	for i := range t.Members {
		if t.Members[i].Name == name {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return true
		}
	}
	return false
}

// SortedMembers returns a copy of the team's members sorted by
// case-insensitive name ascending. Stable, insertion order preserved for
// equal keys; the team's own ordering is left untouched.
// INVARIANT: Team is not mutated
func (t *Team) SortedMembers() []Member {
	sorted := make([]Member, len(t.Members))
	copy(sorted, t.Members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareNames(sorted[i].Name, sorted[j].Name) < 0
	})
	return sorted
}

// compareNames compares two names case-insensitively.
// POST: returns -1, 0 or 1 on less, equal, greater
func compareNames(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

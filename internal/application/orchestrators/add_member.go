package orchestrators

import (
	"log/slog"
	"strings"

	"teamroster/internal/application/forms"
	"teamroster/internal/domain/roster"
)

// AddMemberInput carries the raw form values for member creation plus the
// team name resolved from the route.
type AddMemberInput struct {
	TeamName string
	Name     string
	Age      string
	Sex      string
}

// ExecuteAddMember validates the input and appends a new member to the
// named team. The uniqueness check runs against the route's team and is
// skipped once an earlier rule on the member name has failed. Age must be
// an integer between 1 and 100.
// PRE: r is the session's roster
// POST: on success returns (nil, nil) and the team gains one member; on
// validation failure returns every violation message; returns
// roster.ErrTeamNotFound when the team does not exist
func ExecuteAddMember(r *roster.Roster, input AddMemberInput) ([]string, error) {
	team, ok := r.FindTeam(input.TeamName)
	if !ok {
		return nil, roster.ErrTeamNotFound
	}

	// The persisted limit is 50 characters; the message text predates it.
	messages := forms.Validate([]forms.Field{
		{Value: input.Name, Rules: []forms.Rule{
			{Check: forms.Required, Message: "Member name is required."},
			{Check: forms.MaxLen(roster.MaxMemberNameLength), Message: "Name must be less than 100 characters."},
			{Check: func(name string) bool { return !team.HasMember(name) }, Message: "Member name must be unique.", Bail: true},
		}},
		{Value: input.Age, Rules: []forms.Rule{
			{Check: forms.Required, Message: "Member age is required."},
			{Check: forms.IntBetween(roster.MinMemberAge, roster.MaxMemberAge), Message: "Age must be between 1 and 100."},
		}},
		{Value: input.Sex, Rules: []forms.Rule{
			{Check: forms.Required, Message: "Please choose one option of member's sex."},
		}},
	})
	if messages != nil {
		return messages, nil
	}

	member := roster.Member{
		Name: strings.TrimSpace(input.Name),
		Age:  strings.TrimSpace(input.Age),
		Sex:  input.Sex,
	}
	team.AddMember(member)

	slog.Info("roster_event", "event", "member_added", "team", team.Name, "member", member.Name)
	return nil, nil
}

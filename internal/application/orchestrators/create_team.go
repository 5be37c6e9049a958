package orchestrators

import (
	"log/slog"
	"strings"

	"teamroster/internal/application/forms"
	"teamroster/internal/domain/roster"
)

// CreateTeamInput carries the raw form values for team creation.
type CreateTeamInput struct {
	Name     string
	Activity string
}

// ExecuteCreateTeam validates the input and appends a new empty team to the
// roster. All violated rules are collected; the uniqueness check is skipped
// once an earlier rule on the name has failed.
// PRE: r is the session's roster
// POST: on success returns nil and the roster gains one team with no
// members; on failure returns every violation message and leaves the
// roster unchanged
func ExecuteCreateTeam(r *roster.Roster, input CreateTeamInput) []string {
	messages := forms.Validate([]forms.Field{
		{Value: input.Name, Rules: []forms.Rule{
			{Check: forms.Required, Message: "Team name is required."},
			{Check: forms.MaxLen(roster.MaxTeamNameLength), Message: "Team name must be less than 100 characters."},
			{Check: func(name string) bool { return !r.HasTeam(name) }, Message: "Team name must be unique.", Bail: true},
		}},
		{Value: input.Activity, Rules: []forms.Rule{
			{Check: forms.Required, Message: "Activity name is required."},
			{Check: forms.MaxLen(roster.MaxActivityLength), Message: "Activity name must be less than 100 characters."},
		}},
	})
	if messages != nil {
		return messages
	}

	team := roster.Team{
		Name:     strings.TrimSpace(input.Name),
		Activity: strings.TrimSpace(input.Activity),
	}
	r.AddTeam(team)

	slog.Info("roster_event", "event", "team_created", "team", team.Name)
	return nil
}

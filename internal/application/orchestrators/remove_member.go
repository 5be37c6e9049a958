package orchestrators

import (
	"log/slog"

	"teamroster/internal/domain/roster"
)

// RemoveMemberInput identifies the member to delete.
type RemoveMemberInput struct {
	TeamName   string
	MemberName string
}

// ExecuteRemoveMember removes the named member from the named team.
// PRE: r is the session's roster
// POST: on success the member is removed; returns roster.ErrTeamNotFound or
// roster.ErrMemberNotFound when the target is absent, leaving the roster
// unchanged
func ExecuteRemoveMember(r *roster.Roster, input RemoveMemberInput) error {
	team, ok := r.FindTeam(input.TeamName)
	if !ok {
		return roster.ErrTeamNotFound
	}
	if !team.RemoveMember(input.MemberName) {
		return roster.ErrMemberNotFound
	}

	slog.Info("roster_event", "event", "member_removed", "team", team.Name, "member", input.MemberName)
	return nil
}

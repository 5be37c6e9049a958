package web

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"teamroster/internal/adapters/http/middleware"
	"teamroster/internal/application/orchestrators"
	"teamroster/internal/domain/roster"
	"teamroster/internal/domain/session"
)

const templatesDir = "internal/adapters/http/templates"

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// notFound writes the generic not-found response used for missing teams,
// missing members, and malformed route parameters.
func notFound(w http.ResponseWriter) {
	http.Error(w, "Not found.", http.StatusNotFound)
}

// currentSession pulls the session document the middleware loaded. A miss
// means the handler is wired outside the session middleware.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		internalError(w, errors.New("no session in request context"))
		return nil, false
	}
	return sess, true
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	funcMap := template.FuncMap{
		"csrfToken": func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// teamDetailURL builds the redirect target for a team's detail page.
func teamDetailURL(teamName string) string {
	return "/teams/" + url.PathEscape(teamName)
}

// handleRoot handles GET / by redirecting to the team list.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}

// handleTeamList handles GET /teams: the roster sorted by team name.
func handleTeamList(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	renderTemplate(w, r, "teams.html", map[string]any{
		"Teams": sess.Roster.SortedTeams(),
		"Flash": sess.TakeFlash(),
	})
}

// handleNewTeamForm handles GET /teams/new: the empty creation form.
func handleNewTeamForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	renderTemplate(w, r, "new_team.html", map[string]any{
		"Flash":        sess.TakeFlash(),
		"TeamName":     "",
		"TeamActivity": "",
	})
}

// handleCreateTeam handles POST /teams.
// PRE: form fields teamName, teamActivity
// POST: on success the roster gains an empty team and the client is
// redirected to /teams; on validation failure the form is re-rendered with
// one flash message per violated rule and the submitted values echoed back
// untrimmed
func handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.CreateTeamInput{
		Name:     r.FormValue("teamName"),
		Activity: r.FormValue("teamActivity"),
	}
	messages := orchestrators.ExecuteCreateTeam(&sess.Roster, input)
	if messages != nil {
		for _, m := range messages {
			sess.AddFlash(session.FlashError, m)
		}
		renderTemplate(w, r, "new_team.html", map[string]any{
			"Flash":        sess.TakeFlash(),
			"TeamName":     input.Name,
			"TeamActivity": input.Activity,
		})
		return
	}

	sess.AddFlash(session.FlashSuccess, "New team created.")
	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}

// handleTeamDetail handles GET /teams/{teamName}: the team's members sorted
// by name. An unknown team is a 404, not a fault.
func handleTeamDetail(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	teamName := r.PathValue("teamName")
	if teamName == "" {
		notFound(w)
		return
	}
	team, ok := sess.Roster.FindTeam(teamName)
	if !ok {
		notFound(w)
		return
	}
	renderTemplate(w, r, "team.html", map[string]any{
		"Team":       team,
		"Members":    team.SortedMembers(),
		"Flash":      sess.TakeFlash(),
		"MemberName": "",
		"MemberAge":  "",
		"MemberSex":  "",
	})
}

// handleAddMember handles POST /teams/{teamName}/members/new.
// PRE: form fields memberName, memberAge, memberSex
// POST: on success the team gains a member and the client is redirected to
// the team detail page; on validation failure the detail page is
// re-rendered with one flash message per violated rule and the submitted
// values echoed back untrimmed
func handleAddMember(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.AddMemberInput{
		TeamName: r.PathValue("teamName"),
		Name:     r.FormValue("memberName"),
		Age:      r.FormValue("memberAge"),
		Sex:      r.FormValue("memberSex"),
	}
	messages, err := orchestrators.ExecuteAddMember(&sess.Roster, input)
	if err != nil {
		notFound(w)
		return
	}
	if messages != nil {
		team, _ := sess.Roster.FindTeam(input.TeamName)
		for _, m := range messages {
			sess.AddFlash(session.FlashError, m)
		}
		renderTemplate(w, r, "team.html", map[string]any{
			"Team":       team,
			"Members":    team.SortedMembers(),
			"Flash":      sess.TakeFlash(),
			"MemberName": input.Name,
			"MemberAge":  input.Age,
			"MemberSex":  input.Sex,
		})
		return
	}

	sess.AddFlash(session.FlashSuccess, "New member added.")
	http.Redirect(w, r, teamDetailURL(input.TeamName), http.StatusSeeOther)
}

// handleRemoveMember handles POST /teams/{teamName}/members/{memberName}/delete.
// POST: the member is removed and the client redirected to the team detail
// page; a missing team or member is a 404 and the roster is unchanged
func handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	input := orchestrators.RemoveMemberInput{
		TeamName:   r.PathValue("teamName"),
		MemberName: r.PathValue("memberName"),
	}
	if err := orchestrators.ExecuteRemoveMember(&sess.Roster, input); err != nil {
		if errors.Is(err, roster.ErrTeamNotFound) || errors.Is(err, roster.ErrMemberNotFound) {
			notFound(w)
			return
		}
		internalError(w, err)
		return
	}

	sess.AddFlash(session.FlashSuccess, "Member deleted.")
	http.Redirect(w, r, teamDetailURL(input.TeamName), http.StatusSeeOther)
}

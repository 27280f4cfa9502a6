package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetAllTeams returns every known team with its slug
// @Summary List Teams
// @Tags Teams
// @Produce json
// @Success 200 {array} models.Team "Teams"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /api/teams/all [get]
func (h *Handler) GetAllTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamStats.ListTeams(r.Context())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, teams)
}

// GetTeam returns a team's season page: totals, per-category stats, match log
// @Summary Team Page
// @Tags Teams
// @Produce json
// @Param slug path string true "Team slug"
// @Param season query string false "Season" default(2024-2025)
// @Param competition query string false "Competition" default(ENG-Premier League)
// @Param mode query string false "Scaling mode (total, per-game, per-90)" default(total)
// @Success 200 {object} models.TeamPage "Team Page"
// @Failure 404 {object} map[string]string "Unknown Team"
// @Router /api/team/{slug} [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	f, mode, _, err := h.statParams(r, 25)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	page, err := h.teamStats.GetTeamPage(r.Context(), slug, f, mode)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, page)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetPlayer returns a player's season page: totals, per-category stats and the
// per-team split
// @Summary Player Page
// @Tags Players
// @Produce json
// @Param slug path string true "Player slug"
// @Param season query string false "Season" default(2024-2025)
// @Param competition query string false "Competition" default(ENG-Premier League)
// @Param mode query string false "Scaling mode (total, per-game, per-90)" default(total)
// @Success 200 {object} models.PlayerPage "Player Page"
// @Failure 404 {object} map[string]string "Unknown Player"
// @Router /api/player/{slug} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	f, mode, _, err := h.statParams(r, 25)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	page, err := h.playerStats.GetPlayerPage(r.Context(), slug, f, mode)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, page)
}

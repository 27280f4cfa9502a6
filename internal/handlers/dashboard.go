package handlers

import "net/http"

// GetDashboard returns the landing-page panels: standings, schedule and the
// headline leaderboards
// @Summary Dashboard
// @Tags Dashboard
// @Produce json
// @Param season query string false "Season" default(2024-2025)
// @Param competition query string false "Competition" default(ENG-Premier League)
// @Param mode query string false "Scaling mode (total, per-game, per-90)" default(total)
// @Param limit query int false "Rows per panel" default(5)
// @Success 200 {object} models.Dashboard "Dashboard"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /api/dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	f, mode, limit, err := h.statParams(r, 5)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	dash, err := h.dashboard.GetDashboard(r.Context(), f, mode, limit)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, dash)
}

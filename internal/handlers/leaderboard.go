package handlers

import "net/http"

// defaultLeaderboardTable is used when no table param is given.
const defaultLeaderboardTable = "fbref_player_match_summary"

// GetLeaderboards returns ranked players for a stat table: every discovered
// numeric column, or a single column when the column param is set
// @Summary Leaderboards
// @Tags Leaderboards
// @Produce json
// @Param table query string false "Stat table" default(fbref_player_match_summary)
// @Param column query string false "Single stat column"
// @Param season query string false "Season" default(2024-2025)
// @Param competition query string false "Competition" default(ENG-Premier League)
// @Param mode query string false "Scaling mode (total, per-game, per-90)" default(total)
// @Param limit query int false "Rows per board" default(10)
// @Success 200 {object} map[string]interface{} "Leaderboards"
// @Failure 400 {object} map[string]string "Unknown Table or Column"
// @Router /api/leaderboards [get]
func (h *Handler) GetLeaderboards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, mode, limit, err := h.statParams(r, 10)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	table := r.URL.Query().Get("table")
	if table == "" {
		table = defaultLeaderboardTable
	}

	if column := r.URL.Query().Get("column"); column != "" {
		board, err := h.leaderboard.GetColumnLeaderboard(ctx, table, column, f, mode, limit)
		if err != nil {
			h.serviceError(w, err)
			return
		}
		h.jsonResponse(w, http.StatusOK, board)
		return
	}

	boards, err := h.leaderboard.GetLeaderboards(ctx, table, f, mode, limit)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, boards)
}

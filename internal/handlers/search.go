package handlers

import (
	"net/http"
	"strings"
)

// SearchEntities finds teams and players by name
// @Summary Entity Search
// @Tags Search
// @Produce json
// @Param q query string true "Name fragment"
// @Param limit query int false "Max results" default(10)
// @Success 200 {array} models.SearchResult "Results"
// @Failure 400 {object} map[string]string "Missing q"
// @Router /api/search [get]
func (h *Handler) SearchEntities(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing required query param: q")
		return
	}

	_, _, limit, err := h.statParams(r, 10)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	results, err := h.search.Search(r.Context(), q, limit)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, results)
}

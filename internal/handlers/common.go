package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fbsts/stats-api/internal/logic"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"postgres": h.pg.Ping(ctx) == nil,
		"redis":    h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

// AuthMiddleware enforces the bearer-token boundary on /api. Tokens are
// checked against the identity provider's JWKS; the dev bypass flag skips the
// whole check.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.authDisabled {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			h.errorResponse(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		if err := h.verifier.Verify(r.Context(), token); err != nil {
			h.logger.Infow("Rejected bearer token", "error", err)
			h.errorResponse(w, http.StatusUnauthorized, "Invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps logic-layer errors onto HTTP statuses.
func (h *Handler) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, logic.ErrNotFound):
		h.errorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrBadRequest):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Errorw("Request failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

// statQuery is the validated form of the common query params.
type statQuery struct {
	Mode  string `validate:"omitempty,oneof=total per-game per-90"`
	Limit int    `validate:"min=1,max=100"`
}

// statParams parses season/competition/mode/limit with the endpoint's limit
// default.
func (h *Handler) statParams(r *http.Request, defaultLimit int) (logic.MatchFilter, logic.Mode, int, error) {
	q := r.URL.Query()

	f := logic.MatchFilter{
		Season:      h.defaultSeason,
		Competition: h.defaultCompetition,
	}
	if s := q.Get("season"); s != "" {
		f.Season = s
	}
	if c := q.Get("competition"); c != "" {
		f.Competition = c
	}

	limit := defaultLimit
	if l := q.Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			return f, "", 0, errors.Join(logic.ErrBadRequest, errors.New("limit must be an integer"))
		}
		limit = parsed
	}

	sq := statQuery{Mode: q.Get("mode"), Limit: limit}
	if err := h.validator.Struct(sq); err != nil {
		return f, "", 0, errors.Join(logic.ErrBadRequest, err)
	}

	mode, err := logic.ParseMode(sq.Mode)
	if err != nil {
		return f, "", 0, err
	}
	return f, mode, limit, nil
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fbsts/stats-api/internal/metrics"
)

// Router wires the full HTTP surface: system endpoints openly, the /api tree
// behind CORS and the bearer-token check.
func (h *Handler) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(apiCORS(allowedOrigins))
		r.Use(h.AuthMiddleware)

		r.Get("/teams/all", h.GetAllTeams)
		r.Get("/team/{slug}", h.GetTeam)
		r.Get("/player/{slug}", h.GetPlayer)
		r.Get("/leaderboards", h.GetLeaderboards)
		r.Get("/dashboard", h.GetDashboard)
		r.Get("/search", h.SearchEntities)
	})

	return r
}

// apiCORS computes CORS headers with go-chi/cors and guarantees that every
// OPTIONS under /api terminates with an empty 204: go-chi/cors answers
// preflights itself with 200 and lets plain OPTIONS fall through, so both
// paths get normalized here.
func apiCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				c(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusNoContent)
				})).ServeHTTP(&preflightWriter{ResponseWriter: w}, r)
				return
			}
			c(next).ServeHTTP(w, r)
		})
	}
}

// preflightWriter rewrites the preflight success status to 204.
type preflightWriter struct {
	http.ResponseWriter
}

func (w *preflightWriter) WriteHeader(code int) {
	if code == http.StatusOK {
		code = http.StatusNoContent
	}
	w.ResponseWriter.WriteHeader(code)
}

// requestLogger tags each request with an ID, records latency and feeds the
// Prometheus counters.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}

		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		h.logger.Infow("Request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

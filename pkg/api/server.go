// Package api exposes the hand valuator, the strategy engine, the trainer
// and the statistics over JSON HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fadedpez/tucotrainer/internal/logging"
	"github.com/fadedpez/tucotrainer/pkg/services/statistics"
	"github.com/fadedpez/tucotrainer/pkg/services/trainer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 15 * time.Second

// Server holds the services the handlers call
type Server struct {
	trainer *trainer.Service
	stats   *statistics.Service
}

// NewServer creates the API server
func NewServer(trainerService *trainer.Service, statsService *statistics.Service) *Server {
	return &Server{trainer: trainerService, stats: statsService}
}

// Router returns the chi router with every route mounted under /api
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)

		r.Post("/hands/value", s.handValue)
		r.Post("/strategy", s.strategy)

		r.Route("/trainer/{player}", func(r chi.Router) {
			r.Post("/scenarios", s.newScenario)
			r.Post("/scenarios/{id}/answer", s.answerScenario)
			r.Get("/score", s.score)
			r.Delete("/score", s.resetScore)
		})

		r.Get("/players/{player}/stats", s.playerStats)
		r.Get("/leaderboard", s.leaderboard)
	})

	return r
}

// requestLogger logs each request with its status and duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.Default.Debug("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start),
			middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logging.Default.Error("Error encoding response: %v", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

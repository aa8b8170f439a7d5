// Package http exposes the workflow operations, the scoring calculator
// and the notification inbox over a JSON REST surface.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/grc-lab/riskdesk/pkg/usecase"
	"github.com/grc-lab/riskdesk/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(actorContext)

		r.Route("/processes", func(r chi.Router) {
			r.Post("/", s.handleCreateProcess)
			r.Get("/", s.handleListProcesses)

			r.Route("/{processID}", func(r chi.Router) {
				r.Get("/", s.handleGetProcess)
				r.Put("/", s.handleUpdateProcess)
				r.Get("/history", s.handleListHistory)
				r.Get("/observations", s.handleListObservations)
				r.Get("/evaluations", s.handleListEvaluations)
				r.Post("/evaluations", s.handleRecordEvaluation)

				r.Post("/submit", s.handleSubmit)
				r.Post("/approve", s.handleApprove)
				r.Post("/return", s.handleReturn)
				r.Post("/resolve", s.handleResolve)
			})
		})

		r.Post("/score", s.handleScore)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", s.handleListNotifications)
			r.Post("/{notificationID}/read", s.handleMarkRead)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Default().Error("failed to encode response", "error", err)
	}
}

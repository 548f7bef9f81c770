package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dangerclosesec/crmboard/internal/auth"
	"github.com/dangerclosesec/crmboard/internal/metrics"
	"github.com/dangerclosesec/crmboard/internal/middleware"
	"github.com/dangerclosesec/crmboard/internal/realtime"
	"github.com/dangerclosesec/crmboard/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps is everything the HTTP API is built from.
type Deps struct {
	Logger       *slog.Logger
	TokenManager *auth.TokenManager
	Metrics      *metrics.Metrics
	Hub          *realtime.Hub
	Pipelines    *service.PipelineService
	Cards        *service.CardService
	Clients      *service.ClientService
	Calendar     *service.CalendarService
	Activity     *service.ActivityService
	CORSOrigins  []string
	Version      string
	// Shutdown ends open realtime streams when done.
	Shutdown context.Context
}

// NewRouter mounts the API routes.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestMetadata)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(deps.Metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": deps.Version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	pipelines := NewPipelineHandler(deps.Pipelines, deps.Cards)
	stages := NewStageHandler(deps.Pipelines)
	cards := NewCardHandler(deps.Cards)
	clients := NewClientHandler(deps.Clients)
	calendar := NewCalendarHandler(deps.Calendar)
	activity := NewActivityHandler(deps.Activity)
	stream := NewRealtimeHandler(deps.Shutdown, deps.Hub, deps.Metrics, deps.CORSOrigins)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(deps.TokenManager))

		r.Route("/pipeline", func(r chi.Router) {
			r.Get("/", pipelines.List)
			r.Post("/", pipelines.Create)
			r.Put("/", pipelines.Update)
			r.Delete("/", pipelines.Delete)
			r.Post("/batch", pipelines.Batch)

			r.Route("/stages", func(r chi.Router) {
				r.Get("/", stages.List)
				r.Post("/", stages.Create)
				r.Put("/", stages.Update)
				r.Delete("/", stages.Delete)
				r.Patch("/reorder", stages.Reorder)
				r.Post("/batch", stages.CreateBatch)
			})

			r.Route("/cards", func(r chi.Router) {
				r.Get("/", cards.List)
				r.Post("/", cards.Create)
				r.Put("/", cards.Update)
				r.Delete("/", cards.Delete)
				r.Patch("/", cards.Move)
				r.Patch("/move", cards.Move)
			})

			r.Get("/{pipelineId}", pipelines.Board)
			r.Post("/{pipelineId}/move", pipelines.Move)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clients.List)
			r.Post("/", clients.Create)
			r.Get("/{id}", clients.Get)
			r.Put("/{id}", clients.Update)
			r.Delete("/{id}", clients.Delete)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/", calendar.List)
			r.Post("/", calendar.Create)
			r.Put("/{id}", calendar.Update)
			r.Delete("/{id}", calendar.Delete)
		})

		r.Get("/activity", activity.List)
		r.Get("/realtime", stream.Stream)
	})

	return r
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregMSThompson/family-savings/internal/handlers"
	"github.com/GregMSThompson/family-savings/internal/middleware"
)

// NewRouter serves the savings API under /api behind auth, and /metrics
// and /healthz without it.
func NewRouter(deps *handlers.Deps, auth *middleware.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ush := handlers.NewUserHandlers(deps)
	chh := handlers.NewChildHandlers(deps)
	smh := handlers.NewSimulationHandlers(deps)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.FirebaseAuth)
		r.Use(middleware.CallerLogger)
		r.Mount("/me", ush.MeRoutes())
		r.Mount("/children", chh.ChildRoutes())
		r.Mount("/simulate", smh.SimulationRoutes())
	})
	return r
}

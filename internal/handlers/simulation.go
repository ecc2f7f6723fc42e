package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/middleware"
	"github.com/GregMSThompson/family-savings/internal/response"
)

type simulationService interface {
	RunMonthly(ctx context.Context, ownerID string) (int, error)
}

type simulationHandlers struct {
	ResponseHandler response.ResponseHandler
	SimulationSvc   simulationService
}

func NewSimulationHandlers(deps *Deps) *simulationHandlers {
	return &simulationHandlers{
		ResponseHandler: deps.ResponseHandler,
		SimulationSvc:   deps.SimulationSvc,
	}
}

func (h *simulationHandlers) SimulationRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/monthly", h.RunMonthly)
	return r
}

// RunMonthly credits one simulated month for the caller's goals.
func (h *simulationHandlers) RunMonthly(w http.ResponseWriter, r *http.Request) {
	n, err := h.SimulationSvc.RunMonthly(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.SimulationResult{GoalsProcessed: n})
}

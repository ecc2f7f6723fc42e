package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/middleware"
	"github.com/GregMSThompson/family-savings/internal/response"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

type childService interface {
	List(ctx context.Context, parentID string) ([]dto.ChildRecord, error)
	Create(ctx context.Context, parentID string, req dto.ChildRequest) (dto.ChildRecord, error)
	Update(ctx context.Context, parentID, childID string, req dto.ChildRequest) (dto.ChildRecord, error)
	Delete(ctx context.Context, parentID, childID string) error
	Detail(ctx context.Context, parentID, childID string) (dto.ChildDetail, error)
	MyGoal(ctx context.Context, ownerID string) (dto.ChildDetail, error)
}

type goalService interface {
	Set(ctx context.Context, parentID, childID string, req dto.GoalRequest) (dto.GoalRecord, error)
}

type contributionService interface {
	Contribute(ctx context.Context, parentID, childID string, req dto.ContributeRequest) (dto.TransactionRecord, error)
}

type investmentService interface {
	Set(ctx context.Context, parentID, childID string, req dto.InvestmentRequest) (dto.InvestmentRecord, error)
}

type directiveService interface {
	Get(ctx context.Context, parentID, childID string) (dto.DirectiveRecord, error)
	Set(ctx context.Context, parentID, childID string, req dto.DirectiveRequest) (dto.DirectiveRecord, error)
}

type childHandlers struct {
	ResponseHandler response.ResponseHandler
	ChildSvc        childService
	GoalSvc         goalService
	ContributionSvc contributionService
	InvestmentSvc   investmentService
	DirectiveSvc    directiveService
}

func NewChildHandlers(deps *Deps) *childHandlers {
	return &childHandlers{
		ResponseHandler: deps.ResponseHandler,
		ChildSvc:        deps.ChildSvc,
		GoalSvc:         deps.GoalSvc,
		ContributionSvc: deps.ContributionSvc,
		InvestmentSvc:   deps.InvestmentSvc,
		DirectiveSvc:    deps.DirectiveSvc,
	}
}

func (h *childHandlers) ChildRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListChildren)
	r.Post("/", h.CreateChild)
	r.Route("/{childId}", func(r chi.Router) {
		r.Use(childLogger)
		r.Get("/", h.GetChild)
		r.Put("/", h.UpdateChild)
		r.Delete("/", h.DeleteChild)
		r.Post("/goal", h.SetGoal)
		r.Post("/contribute", h.Contribute)
		r.Post("/investment", h.SetInvestment)
		r.Get("/directive", h.GetDirective)
		r.Post("/directive", h.SetDirective)
	})
	return r
}

func childLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ctx := logger.With(r.Context(), "child_id", chi.URLParam(r, "childId"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *childHandlers) ListChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.ChildSvc.List(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, children)
}

func (h *childHandlers) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req dto.ChildRequest
	if err := decode(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	child, err := h.ChildSvc.Create(r.Context(), middleware.UID(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusCreated, child)
}

func (h *childHandlers) GetChild(w http.ResponseWriter, r *http.Request) {
	childID := chi.URLParam(r, "childId")
	d, err := h.ChildSvc.Detail(r.Context(), middleware.UID(r.Context()), childID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, d)
}

func (h *childHandlers) UpdateChild(w http.ResponseWriter, r *http.Request) {
	childID := chi.URLParam(r, "childId")
	var req dto.ChildRequest
	if err := decode(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	child, err := h.ChildSvc.Update(r.Context(), middleware.UID(r.Context()), childID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, child)
}

func (h *childHandlers) DeleteChild(w http.ResponseWriter, r *http.Request) {
	childID := chi.URLParam(r, "childId")
	if err := h.ChildSvc.Delete(r.Context(), middleware.UID(r.Context()), childID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusNoContent, nil)
}

func (h *childHandlers) SetGoal(w http.ResponseWriter, r *http.Request) {
	childID := chi.URLParam(r, "childId")
	var req dto.GoalRequest
	if err := decode(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	goal, err := h.GoalSvc.Set(r.Context(), middleware.UID(r.Context()), childID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, goal)
}

func (h *childHandlers) Contribute(w http.ResponseWriter, r *http.Request) {
	childID := chi.URLParam(r, "childId")
	var req dto.ContributeRequest
	if err := decode(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	tx, err := h.ContributionSvc.Contribute(r.Context(), middleware.UID(r.Context()), childID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, tx)
}

func (h *childHandlers) SetInvestment(w http.ResponseWriter, r *http.Request) {
	childID := chi.URLParam(r, "childId")
	var req dto.InvestmentRequest
	if err := decode(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	inv, err := h.InvestmentSvc.Set(r.Context(), middleware.UID(r.Context()), childID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, inv)
}

func (h *childHandlers) GetDirective(w http.ResponseWriter, r *http.Request) {
	childID := chi.URLParam(r, "childId")
	d, err := h.DirectiveSvc.Get(r.Context(), middleware.UID(r.Context()), childID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, d)
}

func (h *childHandlers) SetDirective(w http.ResponseWriter, r *http.Request) {
	childID := chi.URLParam(r, "childId")
	var req dto.DirectiveRequest
	if err := decode(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	d, err := h.DirectiveSvc.Set(r.Context(), middleware.UID(r.Context()), childID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, d)
}

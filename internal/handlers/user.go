package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/middleware"
	"github.com/GregMSThompson/family-savings/internal/response"
)

type UserService interface {
	GetOrCreate(ctx context.Context, uid, email string) (dto.Profile, error)
	UpdateProfile(ctx context.Context, uid, email string, req dto.ProfileRequest) (dto.Profile, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
	ChildSvc        childService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
		ChildSvc:        deps.ChildSvc,
	}
}

func (h *userHandlers) MeRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetProfile)
	r.Put("/", h.UpdateProfile)
	r.Get("/goal", h.GetMyGoal)
	return r
}

func (h *userHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.UserSvc.GetOrCreate(ctx, middleware.UID(ctx), middleware.Email(ctx))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, p)
}

func (h *userHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.ProfileRequest
	if err := decode(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	ctx := r.Context()
	p, err := h.UserSvc.UpdateProfile(ctx, middleware.UID(ctx), middleware.Email(ctx), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, p)
}

// GetMyGoal writes the linked child's detail, or {} when there is none.
func (h *userHandlers) GetMyGoal(w http.ResponseWriter, r *http.Request) {
	d, err := h.ChildSvc.MyGoal(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if d.IsEmpty() {
		h.ResponseHandler.WriteJSON(w, r, http.StatusOK, struct{}{})
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, d)
}

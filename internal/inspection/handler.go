package inspection

import (
	"context"
	"net/http"

	"github.com/frahmantamala/firedept-portal/internal/application"
	"github.com/frahmantamala/firedept-portal/internal/transport"
	"github.com/frahmantamala/firedept-portal/internal/user"
)

type ServiceAPI interface {
	Schedule(ctx context.Context, dto ScheduleInspectionDTO, requester *user.User) (*Inspection, error)
	ListAll(ctx context.Context, requester *user.User, opts application.ListOptions) ([]*View, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

type InspectionsResponse struct {
	Inspections []*View `json:"inspections"`
}

// ScheduleInspection handles POST /admin/inspections
func (h *Handler) ScheduleInspection(w http.ResponseWriter, r *http.Request) {
	u, ok := user.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ScheduleInspectionDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("ScheduleInspection: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	insp, err := h.Service.Schedule(r.Context(), dto, u)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, insp)
}

// ListInspections handles GET /admin/inspections
func (h *Handler) ListInspections(w http.ResponseWriter, r *http.Request) {
	u, ok := user.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := h.Pagination(r)
	views, err := h.Service.ListAll(r.Context(), u, application.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, InspectionsResponse{Inspections: views})
}

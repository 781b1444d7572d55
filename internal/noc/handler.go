package noc

import (
	"context"
	"net/http"

	"github.com/frahmantamala/firedept-portal/internal/application"
	"github.com/frahmantamala/firedept-portal/internal/transport"
	"github.com/frahmantamala/firedept-portal/internal/user"
)

type ServiceAPI interface {
	Issue(ctx context.Context, dto IssueNOCDTO, requester *user.User) (*NOC, error)
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

type NOCsResponse struct {
	NOCs []*View `json:"nocs"`
}

// IssueNOC handles POST /admin/nocs
func (h *Handler) IssueNOC(w http.ResponseWriter, r *http.Request) {
	u, ok := user.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto IssueNOCDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("IssueNOC: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	issued, err := h.Service.Issue(r.Context(), dto, u)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, issued)
}

// ListNOCs handles GET /admin/nocs
func (h *Handler) ListNOCs(w http.ResponseWriter, r *http.Request) {
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

	h.WriteJSON(w, http.StatusOK, NOCsResponse{NOCs: views})
}

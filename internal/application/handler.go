package application

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/firedept-portal/internal/transport"
	"github.com/frahmantamala/firedept-portal/internal/user"
)

type ServiceAPI interface {
	Submit(ctx context.Context, applicant *user.User, dto SubmitApplicationDTO) (*Application, error)
	Get(ctx context.Context, id int64, requester *user.User) (*Detail, error)
	ListForUser(ctx context.Context, u *user.User, opts ListOptions) ([]*Application, error)
	ListAll(ctx context.Context, requester *user.User, opts ListOptions) ([]*Application, error)
	ListByTypes(ctx context.Context, requester *user.User, types []string, opts ListOptions) ([]*Application, error)
	UpdateStatus(ctx context.Context, id int64, dto UpdateStatusDTO, requester *user.User) (*Application, error)
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

type ApplicationsResponse struct {
	Applications []*Application `json:"applications"`
}

// SubmitApplication handles POST /applications
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	u, ok := user.UserFromContext(r.Context())
	if !ok {
		h.Logger.Error("SubmitApplication: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitApplicationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("SubmitApplication: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := h.Service.Submit(r.Context(), u, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, app)
}

// GetApplication handles GET /applications/{id}
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	u, ok := user.UserFromContext(r.Context())
	if !ok {
		h.Logger.Error("GetApplication: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.PathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid application ID")
		return
	}

	detail, err := h.Service.Get(r.Context(), id, u)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

// ListMyApplications handles GET /applications
func (h *Handler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	u, ok := user.UserFromContext(r.Context())
	if !ok {
		h.Logger.Error("ListMyApplications: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	apps, err := h.Service.ListForUser(r.Context(), u, h.listOptions(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ApplicationsResponse{Applications: apps})
}

// ListApplications handles GET /admin/applications. Repeated or comma
// separated type parameters narrow the result.
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	u, ok := user.UserFromContext(r.Context())
	if !ok {
		h.Logger.Error("ListApplications: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var types []string
	for _, raw := range r.URL.Query()["type"] {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	var (
		apps []*Application
		err  error
	)
	if len(types) > 0 {
		apps, err = h.Service.ListByTypes(r.Context(), u, types, h.listOptions(r))
	} else {
		apps, err = h.Service.ListAll(r.Context(), u, h.listOptions(r))
	}
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ApplicationsResponse{Applications: apps})
}

// UpdateStatus handles PATCH /admin/applications/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	u, ok := user.UserFromContext(r.Context())
	if !ok {
		h.Logger.Error("UpdateStatus: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.PathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid application ID")
		return
	}

	var dto UpdateStatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := h.Service.UpdateStatus(r.Context(), id, dto, u)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) listOptions(r *http.Request) ListOptions {
	limit, offset := h.Pagination(r)
	return ListOptions{Limit: limit, Offset: offset}
}

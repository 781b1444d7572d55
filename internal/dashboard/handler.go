package dashboard

import (
	"context"
	"net/http"

	"github.com/frahmantamala/firedept-portal/internal/transport"
	"github.com/frahmantamala/firedept-portal/internal/user"
)

type ServiceAPI interface {
	Summary(ctx context.Context, requester *user.User) (*Summary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: svc}
}

// GetSummary handles GET /admin/dashboard
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	u, ok := user.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.Service.Summary(r.Context(), u)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

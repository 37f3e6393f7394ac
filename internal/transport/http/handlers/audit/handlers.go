package audithandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"utamahr/internal/domain/audit"
	"utamahr/internal/domain/auth"
	"utamahr/internal/requestctx"
	"utamahr/internal/transport/http/api"
	"utamahr/internal/transport/http/middleware"
	"utamahr/internal/transport/http/shared"
)

type EventReader interface {
	Count(ctx context.Context, tenantID string, filter audit.Filter) (int, error)
	List(ctx context.Context, tenantID string, filter audit.Filter, limit, offset int) ([]audit.Event, error)
}

type Handler struct {
	Service EventReader
	Perms   middleware.PermissionStore
}

func NewHandler(service EventReader, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAuditRead, h.Perms)).Get("/events", h.handleListEvents)
	})
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 100, 500)
	filter := audit.Filter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		ActorUser:  r.URL.Query().Get("actorUserId"),
	}
	total, err := h.Service.Count(r.Context(), user.TenantID, filter)
	if err != nil {
		requestctx.Logger(r.Context()).WithError(err).Warn("audit count failed")
	}

	events, err := h.Service.List(r.Context(), user.TenantID, filter, page.Limit, page.Offset)
	if err != nil {
		requestctx.Logger(r.Context()).WithError(err).Error("audit list failed")
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to list audit events", middleware.GetRequestID(r.Context()))
		return
	}

	shared.SetTotal(w, total)
	api.Success(w, events, middleware.GetRequestID(r.Context()))
}

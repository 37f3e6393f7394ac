package corehandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"utamahr/internal/domain/auth"
	"utamahr/internal/domain/core"
	"utamahr/internal/requestctx"
	"utamahr/internal/transport/http/api"
	"utamahr/internal/transport/http/middleware"
	"utamahr/internal/transport/http/shared"
)

type DirectoryService interface {
	Directory(ctx context.Context, user auth.UserContext) ([]core.Employee, error)
}

type Handler struct {
	Service DirectoryService
	Perms   middleware.PermissionStore
}

func NewHandler(service DirectoryService, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleListEmployees)
	})
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Service.Directory(r.Context(), user)
	if err != nil {
		requestctx.Logger(r.Context()).WithError(err).Error("list employees failed")
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	shared.SetTotal(w, len(employees))
	api.Success(w, shared.Page(employees, page), middleware.GetRequestID(r.Context()))
}

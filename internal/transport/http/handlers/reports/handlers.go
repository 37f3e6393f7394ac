package reportshandler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"utamahr/internal/domain/auth"
	"utamahr/internal/domain/leave"
	"utamahr/internal/requestctx"
	"utamahr/internal/transport/http/api"
	"utamahr/internal/transport/http/middleware"
	"utamahr/internal/transport/http/shared"
)

const contentTypePDF = "application/pdf"

type LeaveReporter interface {
	ReportPDF(ctx context.Context, tenantID string, filter leave.Filter) ([]byte, error)
}

type DirectoryReporter interface {
	DirectoryPDF(ctx context.Context, user auth.UserContext) ([]byte, error)
}

type Handler struct {
	Leave     LeaveReporter
	Directory DirectoryReporter
	Perms     middleware.PermissionStore
	Audit     shared.Auditor
}

func NewHandler(leaveSvc LeaveReporter, directory DirectoryReporter, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Leave: leaveSvc, Directory: directory, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/leave.pdf", h.handleLeaveReport)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/employees.pdf", h.handleEmployeeReport)
	})
}

func (h *Handler) handleLeaveReport(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	year, _ := v.Int("year", r.URL.Query().Get("year"), 2000, 2100)
	department := strings.TrimSpace(r.URL.Query().Get("department"))
	if len(department) > 100 {
		v.Add("department", "must be at most 100 characters")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	filter := leave.Filter{Department: department, Year: year}
	body, err := h.Leave.ReportPDF(r.Context(), user.TenantID, filter)
	if err != nil {
		requestctx.Logger(r.Context()).WithError(err).Error("leave report failed")
		api.Fail(w, http.StatusInternalServerError, "render_failed", "failed to render leave report", middleware.GetRequestID(r.Context()))
		return
	}

	filename := "leave-report.pdf"
	if year != 0 {
		filename = "leave-report-" + strconv.Itoa(year) + ".pdf"
	}
	shared.AuditDownload(r, h.Audit, user, "leave_report", filename, filter)
	api.WriteFile(w, filename, contentTypePDF, body)
}

func (h *Handler) handleEmployeeReport(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	body, err := h.Directory.DirectoryPDF(r.Context(), user)
	if err != nil {
		requestctx.Logger(r.Context()).WithError(err).Error("employee report failed")
		api.Fail(w, http.StatusInternalServerError, "render_failed", "failed to render employee report", middleware.GetRequestID(r.Context()))
		return
	}
	shared.AuditDownload(r, h.Audit, user, "employee_report", "employees.pdf", nil)
	api.WriteFile(w, "employee-report.pdf", contentTypePDF, body)
}

package paysliphandler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"utamahr/internal/domain/auth"
	"utamahr/internal/domain/payslip"
	"utamahr/internal/requestctx"
	"utamahr/internal/transport/http/api"
	"utamahr/internal/transport/http/middleware"
	"utamahr/internal/transport/http/shared"
)

const maxRecordBytes = 512 * 1024

type PayslipService interface {
	Load(ctx context.Context, user auth.UserContext, payslipID string) (payslip.Payslip, error)
	Document(ctx context.Context, user auth.UserContext, payslipID string, format payslip.Format) (payslip.Document, error)
	RenderRecord(ctx context.Context, user auth.UserContext, rec payslip.Record, format payslip.Format) (payslip.Document, error)
}

type Handler struct {
	Service PayslipService
	Perms   middleware.PermissionStore
	Audit   shared.Auditor
}

func NewHandler(service PayslipService, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payslips", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRender, h.Perms)).Post("/render", h.handleRender)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/{payslipID}/document", h.handleDocument)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/{payslipID}/preview", h.handlePreview)
	})
}

func (h *Handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	format, ok := parseFormat(w, r)
	if !ok {
		return
	}

	payslipID := chi.URLParam(r, "payslipID")
	doc, err := h.Service.Document(r.Context(), user, payslipID, format)
	if err != nil {
		writeError(w, r, err)
		return
	}
	shared.AuditDownload(r, h.Audit, user, "payslip", payslipID, map[string]string{"format": string(format)})
	api.WriteFile(w, doc.Filename, doc.ContentType, doc.Body)
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	format, ok := parseFormat(w, r)
	if !ok {
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRecordBytes+1))
	if err != nil {
		shared.FailDecode(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if len(raw) > maxRecordBytes {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Reason: "request body too large"}})
		return
	}
	rec, err := payslip.DecodeRecord(raw)
	if err != nil {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Reason: "payslip record must be valid JSON"}})
		return
	}
	v := shared.NewValidator()
	v.Required("employee.fullName", rec.Employee.FullName, "is required")
	v.Required("period.month", rec.Period.Month, "is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	doc, err := h.Service.RenderRecord(r.Context(), user, rec, format)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.WriteFile(w, doc.Filename, doc.ContentType, doc.Body)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	p, err := h.Service.Load(r.Context(), user, chi.URLParam(r, "payslipID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

func parseFormat(w http.ResponseWriter, r *http.Request) (payslip.Format, bool) {
	format, err := payslip.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{
			Field:  "format",
			Reason: "must be one of pdf, html, xlsx, template, vector",
		}})
		return "", false
	}
	return format, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payslip.ErrPayslipNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", reqID)
	case errors.Is(err, payslip.ErrUnsupportedFormat):
		api.Fail(w, http.StatusBadRequest, "unsupported_format", "format not available", reqID)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		api.Fail(w, http.StatusGatewayTimeout, "render_timeout", "rendering timed out", reqID)
	default:
		requestctx.Logger(r.Context()).WithError(err).Error("payslip render failed")
		api.Fail(w, http.StatusInternalServerError, "render_failed", "failed to render payslip", reqID)
	}
}

package voucherhandler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"utamahr/internal/domain/auth"
	"utamahr/internal/domain/voucher"
	"utamahr/internal/platform/amount"
	"utamahr/internal/requestctx"
	"utamahr/internal/transport/http/api"
	"utamahr/internal/transport/http/middleware"
	"utamahr/internal/transport/http/shared"
)

type VoucherService interface {
	Document(ctx context.Context, user auth.UserContext, voucherID string, format voucher.Format) (voucher.Document, error)
}

type Handler struct {
	Service VoucherService
	Perms   middleware.PermissionStore
	Audit   shared.Auditor
}

func NewHandler(service VoucherService, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

type wordsRequest struct {
	Amount json.Number `json:"amount" validate:"required"`
}

type wordsResponse struct {
	Amount string `json:"amount"`
	Words  string `json:"words"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/vouchers", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermVouchersRead, h.Perms)).Post("/words", h.handleWords)
		r.With(middleware.RequirePermission(auth.PermVouchersRead, h.Perms)).Get("/{voucherID}/document", h.handleDocument)
	})
}

func (h *Handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	format, err := voucher.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "format", Reason: "must be one of pdf, html"}})
		return
	}

	voucherID := chi.URLParam(r, "voucherID")
	doc, err := h.Service.Document(r.Context(), user, voucherID, format)
	if err != nil {
		reqID := middleware.GetRequestID(r.Context())
		switch {
		case errors.Is(err, voucher.ErrVoucherNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "voucher not found", reqID)
		case errors.Is(err, voucher.ErrUnsupportedFormat):
			api.Fail(w, http.StatusBadRequest, "unsupported_format", "format not available", reqID)
		default:
			requestctx.Logger(r.Context()).WithError(err).WithField("voucher_id", voucherID).Error("voucher render failed")
			api.Fail(w, http.StatusInternalServerError, "render_failed", "failed to render voucher", reqID)
		}
		return
	}
	shared.AuditDownload(r, h.Audit, user, "payment_voucher", voucherID, map[string]string{"format": string(format)})
	api.WriteFile(w, doc.Filename, doc.ContentType, doc.Body)
}

// handleWords spells an amount the way the voucher footer does.
func (h *Handler) handleWords(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload wordsRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, reqID)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}
	value, err := decimal.NewFromString(payload.Amount.String())
	if err != nil {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "amount", Reason: "must be a number"}})
		return
	}
	if !voucher.Spellable(value) {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "amount", Reason: "must be between 0 and 999999999999.99"}})
		return
	}
	api.Success(w, wordsResponse{
		Amount: amount.Fixed(value),
		Words:  voucher.AmountToWords(value),
	}, reqID)
}

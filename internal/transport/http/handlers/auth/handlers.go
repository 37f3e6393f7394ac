package authhandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"utamahr/internal/domain/audit"
	"utamahr/internal/domain/auth"
	"utamahr/internal/requestctx"
	"utamahr/internal/transport/http/api"
	"utamahr/internal/transport/http/middleware"
	"utamahr/internal/transport/http/shared"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (auth.LoginResult, error)
}

type Handler struct {
	Service Authenticator
	Audit   shared.Auditor
}

func NewHandler(service Authenticator, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Audit: auditor}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// RegisterPublicRoutes mounts the routes reachable without a token.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Get("/me", h.HandleMe)
		r.Post("/logout", h.HandleLogout)
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, reqID)
		return
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}
	if err != nil {
		requestctx.Logger(r.Context()).WithError(err).Error("login failed")
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to sign in", reqID)
		return
	}

	if h.Audit != nil {
		if err := h.Audit.Record(r.Context(), audit.Entry{
			TenantID:   result.User.TenantID,
			ActorID:    result.User.UserID,
			Action:     audit.ActionLogin,
			EntityType: "user",
			EntityID:   result.User.UserID,
			RequestID:  reqID,
			IP:         shared.ClientIP(r),
		}); err != nil {
			requestctx.Logger(r.Context()).WithError(err).Warn("audit login failed")
		}
	}
	api.Success(w, result, reqID)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

// HandleLogout is stateless; the client discards its token.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

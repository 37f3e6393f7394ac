package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utamahr/internal/domain/auth"
	"utamahr/internal/transport/http/api"
)

type permissionStub struct {
	allowed bool
	err     error
	role    string
}

func (p *permissionStub) HasPermission(_ context.Context, role, _ string) (bool, error) {
	p.role = role
	return p.allowed, p.err
}

type recordedRequest struct {
	method string
	status int
}

type recorderStub struct {
	calls []recordedRequest
}

func (r *recorderStub) Record(method string, status int, _ time.Duration) {
	r.calls = append(r.calls, recordedRequest{method: method, status: status})
}

func decodeEnvelope(t *testing.T, body io.Reader) api.Envelope {
	t.Helper()
	var env api.Envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func TestRequirePermission(t *testing.T) {
	hr := auth.UserContext{UserID: "u1", TenantID: "t1", RoleName: auth.RoleHR}

	cases := []struct {
		name   string
		user   *auth.UserContext
		store  *permissionStub
		status int
		code   string
	}{
		{name: "anonymous", store: &permissionStub{allowed: true}, status: http.StatusUnauthorized, code: "unauthorized"},
		{name: "denied", user: &hr, store: &permissionStub{}, status: http.StatusForbidden, code: "forbidden"},
		{name: "store error", user: &hr, store: &permissionStub{err: errors.New("down")}, status: http.StatusInternalServerError, code: "permission_error"},
		{name: "allowed", user: &hr, store: &permissionStub{allowed: true}, status: http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequirePermission(auth.PermReportsRead, tc.store)(http.HandlerFunc(noContent))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.user != nil {
				req = req.WithContext(WithUser(req.Context(), *tc.user))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.code != "" {
				env := decodeEnvelope(t, rec.Body)
				require.NotNil(t, env.Error)
				assert.Equal(t, tc.code, env.Error.Code)
			}
			if tc.user != nil {
				assert.Equal(t, auth.RoleHR, tc.store.role)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDKeepsIncomingHeader(t *testing.T) {
	handler := RequestID(nil)(http.HandlerFunc(noContent))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestRecovererReturnsEnvelope(t *testing.T) {
	logger, hook := test.NewNullLogger()
	handler := RequestID(logger)(Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec.Body)
	require.NotNil(t, env.Error)
	assert.Equal(t, "internal_error", env.Error.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "boom", hook.LastEntry().Data["panic"])
}

func TestLoggerRecordsStatus(t *testing.T) {
	logger, hook := test.NewNullLogger()
	metrics := &recorderStub{}
	handler := RequestID(logger)(Logger(metrics)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("tea"))
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/brew", nil))

	require.Len(t, metrics.calls, 1)
	assert.Equal(t, recordedRequest{method: http.MethodPost, status: http.StatusTeapot}, metrics.calls[0])
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, 3, entry.Data["bytes"])
	assert.Equal(t, "/brew", entry.Data["path"])
	assert.NotEmpty(t, entry.Data["request_id"])
}

func TestBodyLimitRejectsLargeBodies(t *testing.T) {
	handler := BodyLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	assert.Contains(t, rec.Body.String(), "payload_too_large")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("small")))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	undeclared := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewBufferString("0123456789")))
	undeclared.ContentLength = -1
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, undeclared)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecureHeaders(true)(http.HandlerFunc(noContent)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))

	assert.Empty(t, rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	SecureHeaders(false)(http.HandlerFunc(noContent)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/payslips/p1/document", nil))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

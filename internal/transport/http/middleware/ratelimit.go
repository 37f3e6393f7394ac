package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"utamahr/internal/requestctx"
	"utamahr/internal/transport/http/api"
)

type RateLimitKeyFunc func(r *http.Request) string

type RateLimitOption func(*rateLimiter)

type rateLimiter struct {
	limit  int
	window time.Duration
	keyFn  RateLimitKeyFunc
	store  limiter.Store
	prefix string
	lim    *limiter.Limiter
}

func WithKeyFunc(fn RateLimitKeyFunc) RateLimitOption {
	return func(rl *rateLimiter) {
		if fn != nil {
			rl.keyFn = fn
		}
	}
}

// WithStore swaps the in-process counter store, e.g. for one shared through redis.
func WithStore(store limiter.Store) RateLimitOption {
	return func(rl *rateLimiter) {
		if store != nil {
			rl.store = store
		}
	}
}

func WithPrefix(prefix string) RateLimitOption {
	return func(rl *rateLimiter) {
		rl.prefix = prefix
	}
}

// NewRedisStore keeps rate counters in redis so every replica shares them.
func NewRedisStore(client redis.UniversalClient, prefix string) (limiter.Store, error) {
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   prefix,
		MaxRetry: 3,
	})
}

func RateLimit(limit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	rl := newRateLimiter(limit, window, actorOrIPKey, opts...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.enforce(w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoginRateLimit throttles sign-in attempts per client IP and per submitted email.
func LoginRateLimit(baseLimit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	authLimit := max(baseLimit/4, 1)
	withPrefix := func(prefix string) []RateLimitOption {
		out := make([]RateLimitOption, 0, len(opts)+1)
		return append(append(out, opts...), WithPrefix(prefix))
	}
	byIP := newRateLimiter(authLimit, window, clientIPKey, withPrefix("login-ip")...)
	byEmail := newRateLimiter(authLimit, window, AuthEmailOrIPKey("email"), withPrefix("login-email")...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isLoginAttempt(r) {
				if !byIP.enforce(w, r) {
					return
				}
				if !byEmail.enforce(w, r) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func AuthEmailOrIPKey(field string) RateLimitKeyFunc {
	normalizedField := strings.TrimSpace(field)
	if normalizedField == "" {
		normalizedField = "email"
	}
	return func(r *http.Request) string {
		email := extractJSONField(r, normalizedField)
		if email == "" {
			return clientIPKey(r)
		}
		return "email:" + strings.ToLower(email)
	}
}

func actorOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.UserID != "" {
		return "user:" + user.TenantID + ":" + user.UserID
	}
	return clientIPKey(r)
}

func clientIPKey(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		parts := strings.Split(fwd, ",")
		if value := strings.TrimSpace(parts[0]); value != "" {
			return value
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

func newRateLimiter(limit int, window time.Duration, keyFn RateLimitKeyFunc, opts ...RateLimitOption) *rateLimiter {
	rl := &rateLimiter{
		limit:  limit,
		window: window,
		keyFn:  keyFn,
		prefix: "global",
	}
	for _, opt := range opts {
		opt(rl)
	}
	if rl.keyFn == nil {
		rl.keyFn = actorOrIPKey
	}
	if rl.store == nil {
		rl.store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          "ratelimit",
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}
	if limit > 0 {
		rl.lim = limiter.New(rl.store, limiter.Rate{Period: window, Limit: int64(limit)})
	}
	return rl
}

func (rl *rateLimiter) enforce(w http.ResponseWriter, r *http.Request) bool {
	if rl.lim == nil {
		return true
	}

	key := rl.keyFn(r)
	if key == "" {
		key = clientIPKey(r)
	}
	res, err := rl.lim.Get(r.Context(), rl.prefix+":"+key)
	if err != nil {
		requestctx.Logger(r.Context()).WithError(err).Warn("rate limit store unavailable")
		return true
	}

	resetIn := durationSeconds(time.Until(time.Unix(res.Reset, 0)))
	w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
	w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
	w.Header().Set("X-RateLimit-Reset", strconv.Itoa(resetIn))

	if res.Reached {
		w.Header().Set("Retry-After", strconv.Itoa(max(resetIn, 1)))
		requestctx.Logger(r.Context()).WithFields(logrus.Fields{
			"key":        key,
			"path":       r.URL.Path,
			"method":     r.Method,
			"limit":      rl.limit,
			"window_sec": int(rl.window.Seconds()),
		}).Warn("rate limit exceeded")
		api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
		return false
	}
	return true
}

func durationSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	seconds := int(d.Seconds())
	if seconds <= 0 {
		return 1
	}
	return seconds
}

func extractJSONField(r *http.Request, field string) string {
	if r == nil || r.Body == nil {
		return ""
	}
	contentType := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Type")))
	if !strings.Contains(contentType, "application/json") {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if len(raw) == 0 {
		return ""
	}
	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	value, _ := payload[field].(string)
	return strings.TrimSpace(value)
}

func isLoginAttempt(r *http.Request) bool {
	if r == nil || r.Method != http.MethodPost {
		return false
	}
	return normalizedAPIPath(r.URL.Path) == "/auth/login"
}

func normalizedAPIPath(path string) string {
	cleaned := strings.TrimPrefix(strings.TrimSpace(path), "/api/v1")
	if cleaned == "" {
		return "/"
	}
	if !strings.HasPrefix(cleaned, "/") {
		return "/" + cleaned
	}
	return cleaned
}

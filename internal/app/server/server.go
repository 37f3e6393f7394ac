package server

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"utamahr/internal/domain/audit"
	"utamahr/internal/domain/auth"
	"utamahr/internal/domain/company"
	"utamahr/internal/domain/core"
	"utamahr/internal/domain/leave"
	"utamahr/internal/domain/payslip"
	"utamahr/internal/domain/voucher"
	"utamahr/internal/platform/browser"
	"utamahr/internal/platform/config"
	"utamahr/internal/platform/crypto"
	"utamahr/internal/platform/db"
	"utamahr/internal/platform/jobs"
	"utamahr/internal/platform/metrics"
	"utamahr/internal/platform/querier"
	"utamahr/internal/transport/http/api"
	audithandler "utamahr/internal/transport/http/handlers/audit"
	authhandler "utamahr/internal/transport/http/handlers/auth"
	corehandler "utamahr/internal/transport/http/handlers/core"
	paysliphandler "utamahr/internal/transport/http/handlers/payslip"
	reportshandler "utamahr/internal/transport/http/handlers/reports"
	voucherhandler "utamahr/internal/transport/http/handlers/voucher"
	"utamahr/internal/transport/http/middleware"
)

// Pinger is the readiness probe target, normally the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Config  config.Config
	Log     *logrus.Logger
	DB      querier.Querier
	Ready   Pinger
	Redis   *redis.Client
	Metrics *metrics.Collector
	Printer payslip.PDFPrinter
}

// PayslipRenderers wires every payslip output format available with the given config.
func PayslipRenderers(cfg config.Config, printer payslip.PDFPrinter) payslip.Registry {
	htmlTemplate := filepath.Join(cfg.TemplatesDir, "payslip.html")
	renderers := []payslip.Renderer{
		payslip.NewHTMLRenderer(htmlTemplate),
		payslip.NewFormRenderer(cfg.PayslipTemplatePath()),
		payslip.NewVectorRenderer(),
		payslip.NewXLSXRenderer(),
	}
	if printer != nil {
		renderers = append(renderers, payslip.NewBrowserPDFRenderer(htmlTemplate, printer))
	}
	return payslip.NewRegistry(renderers...)
}

func VoucherRenderers(cfg config.Config) voucher.Registry {
	return voucher.NewRegistry(
		voucher.NewPDFRenderer(),
		voucher.NewHTMLRenderer(filepath.Join(cfg.TemplatesDir, "voucher.html")),
	)
}

// NewRouter assembles the HTTP surface. Nil Redis and Metrics are allowed.
func NewRouter(d Deps) (http.Handler, error) {
	cfg := d.Config
	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	enforcer, err := auth.NewDefaultEnforcer()
	if err != nil {
		return nil, err
	}

	sealer, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, err
	}

	var companies company.Source = company.NewCachedSource(company.NewStore(d.DB), d.Redis, cfg.CompanyCacheTTL, log)
	auditSvc := audit.New(d.DB)
	var observer *metrics.Collector
	if cfg.MetricsEnabled {
		observer = d.Metrics
	}

	payslipSvc := payslip.NewService(payslip.NewStore(d.DB), companies, PayslipRenderers(cfg, d.Printer), observer, log)
	voucherSvc := voucher.NewService(voucher.NewStore(d.DB, sealer), companies, VoucherRenderers(cfg), observer, log)
	leaveSvc := leave.NewService(leave.NewStore(d.DB), companies, observer, log)
	coreSvc := core.NewService(core.NewStore(d.DB, sealer), observer, log)
	authSvc := auth.NewService(auth.NewStore(d.DB), cfg.JWTSecret, cfg.JWTExpiresIn, log)

	var limitOpts []middleware.RateLimitOption
	if d.Redis != nil {
		store, err := middleware.NewRedisStore(d.Redis, "utamahr:ratelimit")
		if err != nil {
			log.WithError(err).Warn("redis rate limit store unavailable, using memory")
		} else {
			limitOpts = append(limitOpts, middleware.WithStore(store))
		}
	}

	router := chi.NewRouter()
	router.Use(chimw.RealIP)
	router.Use(middleware.RequestID(log))
	router.Use(middleware.Logger(observer))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", middleware.RequestIDHeader, "X-Total-Count"},
		MaxAge:         300,
	}).Handler)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret, log))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready == nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.Ready.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	if observer != nil {
		router.Method(http.MethodGet, "/metrics", observer.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute, limitOpts...))
		r.Use(middleware.LoginRateLimit(cfg.RateLimitPerMinute, time.Minute, limitOpts...))

		authHandler := authhandler.NewHandler(authSvc, auditSvc)
		authHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			authHandler.RegisterRoutes(r)
			paysliphandler.NewHandler(payslipSvc, enforcer, auditSvc).RegisterRoutes(r)
			voucherhandler.NewHandler(voucherSvc, enforcer, auditSvc).RegisterRoutes(r)
			reportshandler.NewHandler(leaveSvc, coreSvc, enforcer, auditSvc).RegisterRoutes(r)
			corehandler.NewHandler(coreSvc, enforcer).RegisterRoutes(r)
			audithandler.NewHandler(auditSvc, enforcer).RegisterRoutes(r)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})
	return router, nil
}

// Run connects to the database, prepares it, and serves until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir, log); err != nil {
			return err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, db.SeedOptions{
			TenantName:    cfg.SeedTenantName,
			AdminEmail:    cfg.SeedAdminEmail,
			AdminPassword: cfg.SeedAdminPassword,
		}); err != nil {
			return errors.Wrap(err, "seed")
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return errors.Wrap(err, "parse REDIS_URL")
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	jobs.New(pool, audit.New(pool), jobs.Options{
		RetentionInterval: cfg.RetentionInterval,
		AuditRetention:    cfg.AuditRetention,
	}, log).Start(ctx)

	router, err := NewRouter(Deps{
		Config:  cfg,
		Log:     log,
		DB:      pool,
		Ready:   pool,
		Redis:   redisClient,
		Metrics: metrics.New(),
		Printer: browser.NewChrome(cfg.ChromePath, cfg.BrowserTimeout, log),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.BrowserTimeout + 30*time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("UtamaHR server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}


package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/resend/resend-go/v2"

	"github.com/msomdec/eventpass/internal/config"
	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/handler"
	"github.com/msomdec/eventpass/internal/mail"
	"github.com/msomdec/eventpass/internal/metrics"
	"github.com/msomdec/eventpass/internal/notify"
	"github.com/msomdec/eventpass/internal/pass"
	"github.com/msomdec/eventpass/internal/repository/postgres"
	"github.com/msomdec/eventpass/internal/repository/sqlite"
	"github.com/msomdec/eventpass/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	authService := service.NewAuthService(store.Users(), cfg.JWTSecret, cfg.BcryptCost)
	if cfg.AdminEmail != "" {
		created, err := authService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminName, cfg.AdminPassword)
		if err != nil {
			slog.Error("failed to seed admin", "error", err)
			os.Exit(1)
		}
		if created {
			slog.Info("admin account created", "email", cfg.AdminEmail)
		}
	}

	var mailer domain.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendMailer(resend.NewClient(cfg.ResendAPIKey))
	} else {
		slog.Warn("RESEND_API_KEY not set, emails will only be logged")
		mailer = mail.NewLogMailer(logger)
	}

	notifyCfg := notify.Config{
		From:          cfg.MailFrom,
		Development:   cfg.Development(),
		OperatorEmail: cfg.OperatorEmail,
	}
	if notifyCfg.Development {
		slog.Info("development mode, all email goes to the operator", "operator_email", cfg.OperatorEmail)
	}
	dispatcher := notify.NewDispatcher(mailer, store.NotificationLog(), notifyCfg, m)

	categoryService := service.NewCategoryService(store.Categories(), cfg.CategoryCacheTTL)
	registrationService := service.NewRegistrationService(service.RegistrationDeps{
		Registrations: store.Registrations(),
		Audit:         store.NotificationLog(),
		Files:         store.FileStore(),
		Categories:    categoryService,
		Notifier:      dispatcher,
		Renderer:      pass.NewRenderer(),
		Metrics:       m,
	})

	limiter := service.NewRateLimiter(cfg.SubmitRate, cfg.SubmitBurst)
	defer limiter.Stop()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, registrationService, categoryService, limiter, reg, cfg.CookieSecure)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore picks PostgreSQL when DATABASE_URL is set and SQLite otherwise.
func openStore(ctx context.Context, cfg config.Config) (domain.Store, error) {
	if cfg.DatabaseURL != "" {
		slog.Info("using postgres backend")
		return postgres.Open(ctx, cfg.DatabaseURL)
	}
	slog.Info("using sqlite backend", "path", cfg.DatabasePath)
	return sqlite.New(cfg.DatabasePath)
}

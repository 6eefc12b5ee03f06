package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"

	"voicebilling-platform/internal/analytics"
	"voicebilling-platform/internal/audit"
	"voicebilling-platform/internal/auth"
	"voicebilling-platform/internal/billing"
	"voicebilling-platform/internal/config"
	"voicebilling-platform/internal/directory"
	"voicebilling-platform/internal/httpapi"
	"voicebilling-platform/internal/ingest"
	"voicebilling-platform/internal/observability"
	"voicebilling-platform/internal/stream"
	"voicebilling-platform/internal/wallet"
	"voicebilling-platform/pkg/logger"
	"voicebilling-platform/pkg/utils"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	metrics := observability.NewMetrics("voicebilling")

	auditSvc := audit.NewService(audit.NewPostgresRepo(db))
	walletSvc := wallet.NewService(db)

	resolver := directory.NewResolver(directory.NewPostgresRepo(db))
	ingestSvc := ingest.NewService(ingest.NewPostgresStore(db), resolver, billing.MinuteProrated{}).
		WithAudit(auditSvc).
		WithMetrics(metrics)

	analyticsSvc := analytics.NewService(
		analytics.NewPostgresRepo(db),
		rdb,
		cfg.Billing.DefaultRatePerMinuteMinor,
	)

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, routeDeps{
		authMW: auth.RequireAccessToken(authManager),
		handlers: httpapi.Handlers{
			Auth:   authManager,
			Wallet: walletSvc,
			Audit:  auditSvc,
		},
		ingest:    ingest.Handler{Service: ingestSvc},
		analytics: analytics.NewHTTPHandler(analyticsSvc),
		demo:      stream.NewHandler(cfg.App.Env != "production"),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}

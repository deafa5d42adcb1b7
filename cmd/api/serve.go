package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/xxayder/NFC-Check/internal/config"
	"github.com/xxayder/NFC-Check/internal/handler"
	"github.com/xxayder/NFC-Check/internal/logging"
	"github.com/xxayder/NFC-Check/internal/middleware"
	"github.com/xxayder/NFC-Check/internal/repo"
	"github.com/xxayder/NFC-Check/internal/service"
	"github.com/xxayder/NFC-Check/internal/validation"
	"github.com/xxayder/NFC-Check/spec"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// --- Logger -----------------------------------------------------------
	logger, closeLog := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer closeLog()
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	pool, err := newPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	slog.Info("database connection established")

	// --- Services ---------------------------------------------------------
	tags := repo.NewTagRepo(pool)
	resolver := service.NewResolver(tags, cfg.RedirectTemplate)
	v := validation.New()

	srv := handler.NewServer(handler.Services{
		Scans:        service.NewScanService(repo.NewScanRepo(pool), resolver),
		Resolver:     resolver,
		Registrar:    service.NewRegistrationService(tags, v, cfg.AdminKey),
		Transactions: service.NewTransactionService(repo.NewTransactionRepo(pool), v),
		Stats:        service.NewStatsService(repo.NewStatsRepo(pool)),
		Store:        pool,
	}, handler.Options{
		StoreTimeout: cfg.StoreTimeout,
		AdminMiddleware: []func(http.Handler) http.Handler{
			middleware.NewRateLimitHandler(middleware.NewKeyedLimiter(cfg.AdminRateLimit, cfg.AdminRateBurst)),
		},
		OpenAPI: spec.OpenAPI,
	}, logger)

	// --- Router -----------------------------------------------------------
	r := newRouter(cfg, srv, logger)

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "version", version)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// newRouter applies the global middleware in order: [RealIP] → RequestID →
// Logger → Recoverer → CORS → body limit. RealIP is installed only when
// TRUST_PROXY is set; otherwise a client could pick its own rate-limit bucket
// by sending a fresh X-Forwarded-For on every request.
func newRouter(cfg config.Config, srv *handler.Server, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Routes())
	return r
}

// newPool opens the connection pool and verifies the store is reachable
// before the server accepts traffic.
func newPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if cfg.DBMaxConns > 0 {
		poolCfg.MaxConns = cfg.DBMaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

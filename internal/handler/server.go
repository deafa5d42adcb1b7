// Package handler implements the HTTP handlers for the NFC-Check API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (scan.go, tag.go, transaction.go, ...) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xxayder/NFC-Check/internal/domain"
)

// The service interfaces below are defined here, in the consumer package,
// so handler tests can inject mocks without a database.

// ScanRecorder records a physical scan and resolves its redirect.
type ScanRecorder interface {
	RecordScanAndResolve(ctx context.Context, tagID string, now time.Time) (domain.ScanResult, error)
}

// TagResolver resolves a tag without recording a scan.
type TagResolver interface {
	Resolve(ctx context.Context, tagID string) (domain.Resolution, error)
}

// TagRegistrar performs the administrative tag upsert.
type TagRegistrar interface {
	Register(ctx context.Context, adminKey string, reg domain.Registration) (domain.RegistrationResult, error)
}

// TransactionServicer ingests and lists transactions.
type TransactionServicer interface {
	Add(ctx context.Context, in domain.NewTransaction) (domain.Transaction, error)
	List(ctx context.Context, businessID string, p domain.ListParams) ([]domain.Transaction, error)
}

// StatsServicer aggregates business statistics.
type StatsServicer interface {
	BusinessStats(ctx context.Context, businessID string, mode domain.StatsMode) (domain.BusinessStats, error)
}

// Pinger reports whether the store is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the Server's dependencies. Nil entries are allowed in
// tests that only exercise some routes.
type Services struct {
	Scans        ScanRecorder
	Resolver     TagResolver
	Registrar    TagRegistrar
	Transactions TransactionServicer
	Stats        StatsServicer
	Store        Pinger
}

// Options tunes request handling.
type Options struct {
	// StoreTimeout bounds every store-backed request. Zero disables the bound.
	StoreTimeout time.Duration

	// AdminMiddleware wraps the administrative routes (tag registration),
	// e.g. with a rate limiter.
	AdminMiddleware []func(http.Handler) http.Handler

	// OpenAPI is served verbatim at GET /openapi.yaml when non-empty.
	OpenAPI []byte
}

// Server holds the dependencies of every handler.
type Server struct {
	svc    Services
	opts   Options
	logger *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{svc: svc, opts: opts, logger: logger}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Services{}, Options{}, nil)
}

// Routes returns the chi router serving every endpoint. Unknown paths get a
// JSON 404 and known paths with the wrong method a JSON 405.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Get("/healthz", s.GetHealth)
	r.Get("/readyz", s.GetReady)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/t/{tagID}", s.ScanRedirect)
	r.Get("/redirect", s.ScanRedirectQuery)
	r.Get("/tags/route", s.GetTagRoute)
	r.With(s.opts.AdminMiddleware...).Post("/tags", s.RegisterTag)

	r.Post("/transactions", s.CreateTransaction)
	r.Get("/transactions", s.ListTransactions)
	r.Get("/stats", s.GetStats)

	return r
}

// storeContext derives the per-request deadline for store work.
func (s *Server) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.opts.StoreTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.opts.StoreTimeout)
}

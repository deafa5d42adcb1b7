package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xxayder/NFC-Check/internal/domain"
	"github.com/xxayder/NFC-Check/internal/handler"
)

// Test doubles for the handler's service interfaces. Set only the method
// fields your test needs.

type mockScanRecorder struct {
	record func(ctx context.Context, tagID string, now time.Time) (domain.ScanResult, error)
}

func (m *mockScanRecorder) RecordScanAndResolve(ctx context.Context, tagID string, now time.Time) (domain.ScanResult, error) {
	return m.record(ctx, tagID, now)
}

type mockTagResolver struct {
	resolve func(ctx context.Context, tagID string) (domain.Resolution, error)
}

func (m *mockTagResolver) Resolve(ctx context.Context, tagID string) (domain.Resolution, error) {
	return m.resolve(ctx, tagID)
}

type mockTagRegistrar struct {
	register func(ctx context.Context, adminKey string, reg domain.Registration) (domain.RegistrationResult, error)
}

func (m *mockTagRegistrar) Register(ctx context.Context, adminKey string, reg domain.Registration) (domain.RegistrationResult, error) {
	return m.register(ctx, adminKey, reg)
}

type mockTransactionServicer struct {
	add  func(ctx context.Context, in domain.NewTransaction) (domain.Transaction, error)
	list func(ctx context.Context, businessID string, p domain.ListParams) ([]domain.Transaction, error)
}

func (m *mockTransactionServicer) Add(ctx context.Context, in domain.NewTransaction) (domain.Transaction, error) {
	return m.add(ctx, in)
}
func (m *mockTransactionServicer) List(ctx context.Context, businessID string, p domain.ListParams) ([]domain.Transaction, error) {
	return m.list(ctx, businessID, p)
}

type mockStatsServicer struct {
	businessStats func(ctx context.Context, businessID string, mode domain.StatsMode) (domain.BusinessStats, error)
}

func (m *mockStatsServicer) BusinessStats(ctx context.Context, businessID string, mode domain.StatsMode) (domain.BusinessStats, error) {
	return m.businessStats(ctx, businessID, mode)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

// compile-time checks
var (
	_ handler.ScanRecorder        = (*mockScanRecorder)(nil)
	_ handler.TagResolver         = (*mockTagResolver)(nil)
	_ handler.TagRegistrar        = (*mockTagRegistrar)(nil)
	_ handler.TransactionServicer = (*mockTransactionServicer)(nil)
	_ handler.StatsServicer       = (*mockStatsServicer)(nil)
	_ handler.Pinger              = (*mockPinger)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given services into its chi router,
// the same way main.go does in production.
func newHTTPHandler(svc handler.Services) http.Handler {
	return handler.NewServer(svc, handler.Options{StoreTimeout: time.Second}, nil).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) handler.ErrorResponse {
	t.Helper()
	var e handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&e))
	return e
}

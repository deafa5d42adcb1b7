package service_test

import (
	"context"
	"time"

	"github.com/xxayder/NFC-Check/internal/domain"
	"github.com/xxayder/NFC-Check/internal/repo"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockTagRepo struct {
	upsert     func(ctx context.Context, reg domain.Registration) (domain.RegistrationResult, error)
	findActive func(ctx context.Context, tagID string) (domain.Tag, error)
	getByID    func(ctx context.Context, tagID string) (domain.Tag, error)
}

func (m *mockTagRepo) Upsert(ctx context.Context, reg domain.Registration) (domain.RegistrationResult, error) {
	return m.upsert(ctx, reg)
}
func (m *mockTagRepo) FindActive(ctx context.Context, tagID string) (domain.Tag, error) {
	return m.findActive(ctx, tagID)
}
func (m *mockTagRepo) GetByID(ctx context.Context, tagID string) (domain.Tag, error) {
	return m.getByID(ctx, tagID)
}

var _ repo.TagRepo = (*mockTagRepo)(nil)

// mockScanRepo runs InTx callbacks against itself and counts commits and rollbacks
// so tests can assert on the outcome.
type mockScanRepo struct {
	claimDay           func(ctx context.Context, tagID string, at time.Time) (string, bool, error)
	incrementIfClaimed func(ctx context.Context, canonicalID string, at time.Time) error

	commits   int
	rollbacks int
}

func (m *mockScanRepo) ClaimDay(ctx context.Context, tagID string, at time.Time) (string, bool, error) {
	return m.claimDay(ctx, tagID, at)
}
func (m *mockScanRepo) IncrementIfClaimed(ctx context.Context, canonicalID string, at time.Time) error {
	return m.incrementIfClaimed(ctx, canonicalID, at)
}
func (m *mockScanRepo) InTx(_ context.Context, fn func(repo.ScanRepo) error) error {
	if err := fn(m); err != nil {
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

var _ repo.ScanRepo = (*mockScanRepo)(nil)

type mockTransactionRepo struct {
	create         func(ctx context.Context, t domain.Transaction) (domain.Transaction, error)
	listByBusiness func(ctx context.Context, businessID string, p domain.ListParams) ([]domain.Transaction, error)
}

func (m *mockTransactionRepo) Create(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	return m.create(ctx, t)
}
func (m *mockTransactionRepo) ListByBusiness(ctx context.Context, businessID string, p domain.ListParams) ([]domain.Transaction, error) {
	return m.listByBusiness(ctx, businessID, p)
}

var _ repo.TransactionRepo = (*mockTransactionRepo)(nil)

type mockStatsRepo struct {
	summary func(ctx context.Context, businessID string) (domain.Summary, error)
	series  func(ctx context.Context, businessID string, g domain.Granularity) ([]domain.Bucket, error)
}

func (m *mockStatsRepo) Summary(ctx context.Context, businessID string) (domain.Summary, error) {
	return m.summary(ctx, businessID)
}
func (m *mockStatsRepo) Series(ctx context.Context, businessID string, g domain.Granularity) ([]domain.Bucket, error) {
	return m.series(ctx, businessID, g)
}

var _ repo.StatsRepo = (*mockStatsRepo)(nil)

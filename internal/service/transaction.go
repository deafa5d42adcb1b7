package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/xxayder/NFC-Check/internal/domain"
	"github.com/xxayder/NFC-Check/internal/repo"
)

// TransactionService ingests and lists purchases.
type TransactionService struct {
	txs      repo.TransactionRepo
	validate Validator
}

// NewTransactionService constructs a TransactionService.
func NewTransactionService(txs repo.TransactionRepo, v Validator) *TransactionService {
	return &TransactionService{txs: txs, validate: v}
}

// Add validates in and appends it to the transaction log. The amount must be
// finite and positive both before and after rounding to whole cents. The tag
// reference is stored trimmed and lowercased.
func (s *TransactionService) Add(ctx context.Context, in domain.NewTransaction) (domain.Transaction, error) {
	in.BusinessID = strings.TrimSpace(in.BusinessID)
	in.TagID = domain.NormalizeTransactionTagID(in.TagID)
	if err := s.validate.Validate(in); err != nil {
		return domain.Transaction{}, err
	}

	amount := in.AmountCents
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return domain.Transaction{}, fmt.Errorf("%w: amount_cents must be a positive number", domain.ErrValidation)
	}
	cents := int64(math.Round(amount))
	if cents <= 0 {
		return domain.Transaction{}, fmt.Errorf("%w: amount_cents must be at least one cent after rounding", domain.ErrValidation)
	}

	t, err := s.txs.Create(ctx, domain.Transaction{
		BusinessID:  in.BusinessID,
		TagID:       in.TagID,
		AmountCents: cents,
	})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("service.TransactionService.Add: %w", err)
	}
	return t, nil
}

// List returns the most recent transactions of businessID, newest first.
func (s *TransactionService) List(ctx context.Context, businessID string, p domain.ListParams) ([]domain.Transaction, error) {
	businessID = strings.TrimSpace(businessID)
	if businessID == "" {
		return nil, fmt.Errorf("%w: business_id is required", domain.ErrValidation)
	}

	txs, err := s.txs.ListByBusiness(ctx, businessID, p)
	if err != nil {
		return nil, fmt.Errorf("service.TransactionService.List: %w", err)
	}
	return txs, nil
}

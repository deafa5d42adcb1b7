package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/xxayder/NFC-Check/internal/domain"
)

// TransactionRepo defines the persistence operations for the append-only
// transaction log.
type TransactionRepo interface {
	// Create inserts a transaction and returns the persisted record with the
	// DB-generated id. A zero OccurredAt means the store's current time.
	Create(ctx context.Context, t domain.Transaction) (domain.Transaction, error)

	// ListByBusiness returns the most recent transactions of a business,
	// newest first, at most p.Limit rows.
	ListByBusiness(ctx context.Context, businessID string, p domain.ListParams) ([]domain.Transaction, error)
}

// pgTransactionRepo is the Postgres implementation of TransactionRepo.
type pgTransactionRepo struct {
	db db
}

// NewTransactionRepo constructs a TransactionRepo backed by the provided db connection.
func NewTransactionRepo(db db) TransactionRepo {
	return &pgTransactionRepo{db: db}
}

// Create inserts a new transaction row.
func (r *pgTransactionRepo) Create(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	const q = `
		INSERT INTO nfc_transactions (business_id, tag_id, amount_cents, occurred_at)
		VALUES (@business_id, @tag_id, @amount_cents, COALESCE(@occurred_at::timestamptz, now()))
		RETURNING id, business_id, tag_id, amount_cents, occurred_at`

	args := pgx.NamedArgs{
		"business_id":  t.BusinessID,
		"tag_id":       t.TagID,
		"amount_cents": t.AmountCents,
		"occurred_at":  nullableTime(t.OccurredAt),
	}

	result, err := scanTransaction(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("repo.TransactionRepo.Create: %w", err)
	}
	return result, nil
}

// ListByBusiness returns one business's transactions ordered by occurred_at descending.
func (r *pgTransactionRepo) ListByBusiness(ctx context.Context, businessID string, p domain.ListParams) ([]domain.Transaction, error) {
	const q = `
		SELECT id, business_id, tag_id, amount_cents, occurred_at
		FROM nfc_transactions
		WHERE business_id = @business_id
		ORDER BY occurred_at DESC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"business_id": businessID, "limit": p.Limit})
	if err != nil {
		return nil, fmt.Errorf("repo.TransactionRepo.ListByBusiness: %w", err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TransactionRepo.ListByBusiness: scan: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TransactionRepo.ListByBusiness: rows: %w", err)
	}
	return txs, nil
}

// scanTransaction maps a single database row into a domain.Transaction.
func scanTransaction(s scanner) (domain.Transaction, error) {
	var (
		t          domain.Transaction
		id         pgtype.UUID
		occurredAt time.Time
	)
	if err := s.Scan(&id, &t.BusinessID, &t.TagID, &t.AmountCents, &occurredAt); err != nil {
		return domain.Transaction{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	t.OccurredAt = occurredAt
	return t, nil
}
